// Package physics integrates the gravitational three-body problem.
//
// [ThreeBody] owns a primary, a secondary and a test body and advances
// them with a fixed-step semi-implicit Euler scheme:
//
//	F_ij  = G * m_i * m_j / r_ij^3
//	v_i  += dt * sum_j F_ij * (p_j - p_i) / m_i
//	p_i  += v_i * dt
//
// All three velocities are updated from the same pre-step positions
// before any position moves. Swapping the order would turn the scheme
// into textbook explicit Euler and change its long-run behaviour.
//
// # Mass Perturbation
//
// [ThreeBody.PerturbMass] models accretion or ablation: once the step
// counter passes round(NumSteps/3), every call adds fixed deltas to the
// masses for the rest of the run.
//
//	sim, _ := physics.New(cfg)
//	hist := sim.Run(cfg.NumSteps, physics.MassDeltas{0, 0, 5})
package physics
