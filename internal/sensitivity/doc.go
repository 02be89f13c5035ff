// Package sensitivity explores how run outcomes depend on the input
// parameters: one-at-a-time sweeps for tornado-style tables and Latin
// Hypercube Sampling with Spearman rank-correlation scoring.
//
// Sample grids are drawn up front from a single seeded source, so a given
// seed produces a bit-identical grid whether the runs then execute
// sequentially or across workers.
package sensitivity
