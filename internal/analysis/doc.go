// Package analysis provides post-run and comparative tools for N-body runs.
//
//   - [PowerSpectrum] and [DominantPeriod]: periodicity of a sampled series
//   - [LyapunovExponent]: growth rate of a small initial perturbation
//   - [TrajectoryOf] and [TrajectoryToASCII]: the path of one body
//   - [SweepG]: how spread responds to the gravitational constant
//
// # Chaos Detection
//
// A positive exponent means nearby initial conditions diverge:
//
//	lambda := analysis.LyapunovExponent(g, pop, 2000, 1e-6)
//	if lambda > 0 {
//	    // sensitive to initial conditions
//	}
package analysis
