// Package dynamo provides the shared data model for the planets simulator.
//
// The package defines the value types every other package exchanges:
//
//   - [Vec2]: 2D vector in world units
//   - [Body]: point mass with position, velocity and mass
//   - [Population]: ordered, fixed-length sequence of bodies
//
// The index of a body inside a [Population] is its identity. Nothing in
// this module reorders a population or changes its length after creation,
// so drivers may correlate index i with their own per-body state.
//
// # Example
//
//	pop := scenario.Generate(scenario.DefaultConfig())
//	g := physics.NewGravity()
//	g.Step(pop)
//	x, y := pop[0].Position.X, pop[0].Position.Y
//
// # Thread Safety
//
// A Population is owned by a single driver. It must not be read or mutated
// concurrently with a step.
package dynamo
