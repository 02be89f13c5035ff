// Package world defines the AI-World3 stock-and-flow model: the six stocks,
// the full parameter table, and the derivative engine coupling them.
//
// The model tracks AI capital, unemployment, social stability, a public
// fiscal pool, environmental quality, and a finite resource base. [Engine]
// implements the feedback equations as a pure function of the current
// [StockVector], the [Params], and a small amount of auxiliary state
// (smoothed tax rate, previous capital growth) carried by the integrator:
//
//	eng, _ := world.NewEngine(world.DefaultParams())
//	rates, flows := eng.Derive(stocks, aux, t)
//
// All clamping of bounded stocks happens at the integration boundary, never
// inside Derive.
package world
