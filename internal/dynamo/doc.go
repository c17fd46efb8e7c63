// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types for fixed-step
// numerical integration of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: one-step numerical integrator interface
//   - [Solver]: advances an initial condition across a time grid
//
// # Example
//
//	model := models.NewDeterministic(params)
//	solver := dynamo.NewSolver(model, integrators.NewRK4())
//	_ = solver.SetInitialCondition(x0)
//	result, err := solver.Solve(ctx, dynamo.Linspace(0, 200, 1001))
//
// # Thread Safety
//
// Solver instances are NOT thread-safe, and neither are systems that carry a
// random source. Parallel replicates must each own their solver and system;
// see package ensemble.
package dynamo
