package dynamo

import "errors"

// Domain errors for simulation setup. Stepping itself never fails; see
// the physics package for the numerical hazards it lets through.
var (
	// ErrInvalidConfig indicates a time step or step count outside the
	// valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid simulation config")

	// ErrHistoryMismatch indicates trajectories of different lengths were
	// handed to a consumer that expects one sample per step for every body.
	ErrHistoryMismatch = errors.New("dynamo: trajectory lengths differ")
)
