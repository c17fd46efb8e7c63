// Package analysis provides post-processing for contagion trajectories.
//
//   - [ConvergenceOrder]: empirical order of a fixed-step integrator
//   - [Totals] and [Shares]: country totals and per-country compartment shares
//   - [SharePortrait]: the path of two compartment shares through time
//
// # Convergence
//
// For a smooth deterministic instance the classical RK4 step reduces the
// final-state error by about 16 each time the step is halved:
//
//	conv, err := analysis.ConvergenceOrder(ctx, model, integrators.NewRK4(), x0, 0, 50, []int{50, 100, 200}, 6400)
//	// conv.Orders ≈ [4, 4]
package analysis
