// Package dynamo provides the primitives shared by the three-body
// simulator and its presentation layers.
//
//   - [Vec3]: Cartesian vector in meters or meters/second
//   - [Trajectory]: ordered position history of one body
//   - [Histories]: the three trajectories produced by a run
//
// # Example
//
//	sim, _ := physics.New(cfg)
//	hist := sim.Run(cfg.NumSteps, physics.MassDeltas{})
//	xy := hist[2].XY()
//
// # Thread Safety
//
// Values in this package are plain data. A Trajectory handed out by the
// simulator is a copy and may be read from any goroutine.
package dynamo
