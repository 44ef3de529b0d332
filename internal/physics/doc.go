// Package physics advances a [dynamo.Population] under pairwise Newtonian
// gravity.
//
// [Gravity.Step] applies one tick of semi-implicit Euler with a fixed unit
// time step:
//
//	for each pair i < j (positions as of the start of the tick):
//	    d = p[j] - p[i]
//	    r = max(|d|, MinDistance)
//	    f = d/r * G*m[i]*m[j]/r
//	    v[i] += f/m[i]
//	    v[j] -= f/m[j]
//	for each body:
//	    p[i] += v[i]
//
// There is no time-delta parameter; simulated speed is tied to how often the
// driver calls Step.
//
// # Preconditions
//
// Every mass must be positive. Step does not check this; a zero or negative
// mass produces Inf/NaN that propagates silently. Drivers that want a fast
// failure call [dynamo.Population.Validate] first.
//
// # Energy Diagnostics
//
// The force falls off as 1/r, so the pair potential [Gravity.Energy] uses is
// G*m[i]*m[j]*ln(r), with a harmonic well below MinDistance where the force
// is linear. [Gravity.Energy], [Gravity.Momentum] and [Gravity.CenterOfMass]
// are meant for monitoring drift:
//
//	g := physics.NewGravity()
//	e0 := g.Energy(pop)
//	g.Step(pop)
//	drift := math.Abs(g.Energy(pop)-e0) / math.Abs(e0)
package physics
