package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/threebody/internal/dynamo"
	"go.uber.org/zap"
)

// GravitationalConstant in m^3 kg^-1 s^-2.
const GravitationalConstant = 6.67430e-11

// Body is one point mass. Indices 0, 1, 2 hold the primary, secondary and
// test body and are never reordered.
type Body struct {
	Mass     float64     // kg
	Position dynamo.Vec3 // m
	Velocity dynamo.Vec3 // m/s
}

// Config describes one run. Masses are copied into the simulator and may
// be perturbed; everything else stays fixed.
type Config struct {
	Dt       float64 // seconds, strictly positive
	NumSteps int     // planned run length, also gates mass perturbation
	G        float64 // zero selects GravitationalConstant
	Bodies   [dynamo.NumBodies]Body
}

// MassDeltas are added to body masses by PerturbMass once the run is
// past a third of NumSteps.
type MassDeltas [dynamo.NumBodies]float64

type Option func(*ThreeBody)

// WithLogger attaches a logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(t *ThreeBody) {
		if l != nil {
			t.logger = l
		}
	}
}

// ThreeBody integrates three gravitating bodies with semi-implicit Euler:
// velocities are kicked from the pre-step positions, then positions drift
// with the new velocities.
//
// Nothing is guarded. Coincident bodies or a mass driven to zero produce
// Inf/NaN that propagate through later steps; callers inspect the
// histories if they care.
type ThreeBody struct {
	dt        float64
	g         float64
	numSteps  int
	threshold int

	bodies  [dynamo.NumBodies]Body
	step    int
	history dynamo.Histories

	logger    *zap.Logger
	perturbed bool
}

// New validates the time step and step count and seeds every history with
// the initial positions.
func New(cfg Config, opts ...Option) (*ThreeBody, error) {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 1) {
		return nil, fmt.Errorf("%w: dt must be positive and finite, got %v", dynamo.ErrInvalidConfig, cfg.Dt)
	}
	if cfg.NumSteps < 0 {
		return nil, fmt.Errorf("%w: num_steps must be non-negative, got %d", dynamo.ErrInvalidConfig, cfg.NumSteps)
	}

	g := cfg.G
	if g == 0 {
		g = GravitationalConstant
	}

	t := &ThreeBody{
		dt:        cfg.Dt,
		g:         g,
		numSteps:  cfg.NumSteps,
		threshold: int(math.Round(float64(cfg.NumSteps) / 3)),
		bodies:    cfg.Bodies,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	for i, b := range t.bodies {
		t.history[i] = dynamo.Trajectory{b.Position}
	}

	return t, nil
}

// Step advances the system by one dt and records the new positions.
func (t *ThreeBody) Step() {
	t.step++

	b := &t.bodies
	p1, p2, p3 := b[0].Position, b[1].Position, b[2].Position

	d12 := p2.Sub(p1)
	d13 := p3.Sub(p1)
	d23 := p3.Sub(p2)

	r12 := d12.Norm()
	r13 := d13.Norm()
	r23 := d23.Norm()

	// Magnitudes divided by r once more so that F_ij*(p_j-p_i) is the
	// force vector on i. One scalar per pair serves both bodies.
	f12 := t.g * (b[0].Mass * b[1].Mass) / (r12 * r12 * r12)
	f13 := t.g * (b[0].Mass * b[2].Mass) / (r13 * r13 * r13)
	f23 := t.g * (b[1].Mass * b[2].Mass) / (r23 * r23 * r23)

	force1 := d12.Scale(f12).Add(d13.Scale(f13))
	force2 := d12.Scale(-f12).Add(d23.Scale(f23))
	force3 := d13.Scale(-f13).Sub(d23.Scale(f23))

	b[0].Velocity = kick(b[0].Velocity, force1, t.dt, b[0].Mass)
	b[1].Velocity = kick(b[1].Velocity, force2, t.dt, b[1].Mass)
	b[2].Velocity = kick(b[2].Velocity, force3, t.dt, b[2].Mass)

	for i := range b {
		b[i].Position = b[i].Position.Add(b[i].Velocity.Scale(t.dt))
		t.history[i] = append(t.history[i], b[i].Position)
	}
}

func kick(v, force dynamo.Vec3, dt, mass float64) dynamo.Vec3 {
	return dynamo.Vec3{
		X: v.X + dt*force.X/mass,
		Y: v.Y + dt*force.Y/mass,
		Z: v.Z + dt*force.Z/mass,
	}
}

// PerturbMass adds d to the body masses once the step counter exceeds
// round(NumSteps/3). Earlier calls are no-ops. Masses are not bounded.
func (t *ThreeBody) PerturbMass(d MassDeltas) {
	if t.step <= t.threshold {
		return
	}
	if !t.perturbed {
		t.perturbed = true
		t.logger.Debug("mass perturbation active",
			zap.Int("step", t.step),
			zap.Int("threshold", t.threshold),
			zap.Float64s("deltas", d[:]),
		)
	}
	for i := range t.bodies {
		t.bodies[i].Mass += d[i]
	}
}

// Run calls Step then PerturbMass n times and returns copies of the
// trajectories.
func (t *ThreeBody) Run(n int, d MassDeltas) dynamo.Histories {
	for i := 0; i < n; i++ {
		t.Step()
		t.PerturbMass(d)
	}

	t.logger.Debug("run complete",
		zap.Int("steps", t.step),
		zap.Float64("sim_time", t.Time()),
		zap.Bool("finite", t.finite()),
	)

	return t.Histories()
}

func (t *ThreeBody) finite() bool {
	for _, b := range t.bodies {
		if !b.Position.IsValid() || !b.Velocity.IsValid() {
			return false
		}
	}
	return true
}

// Histories returns copies of the three trajectories.
func (t *ThreeBody) Histories() dynamo.Histories {
	var h dynamo.Histories
	for i := range t.history {
		h[i] = t.history[i].Clone()
	}
	return h
}

func (t *ThreeBody) Bodies() [dynamo.NumBodies]Body { return t.bodies }
func (t *ThreeBody) StepCount() int                 { return t.step }
func (t *ThreeBody) Dt() float64                    { return t.dt }
func (t *ThreeBody) NumSteps() int                  { return t.numSteps }

// Time is the simulated time elapsed, in seconds.
func (t *ThreeBody) Time() float64 { return float64(t.step) * t.dt }

// PerturbationThreshold is the step count that must be exceeded before
// PerturbMass has any effect.
func (t *ThreeBody) PerturbationThreshold() int { return t.threshold }

// GetParams exposes the current masses and G, keyed m1..m3 and g.
func (t *ThreeBody) GetParams() map[string]float64 {
	return map[string]float64{
		"m1": t.bodies[0].Mass,
		"m2": t.bodies[1].Mass,
		"m3": t.bodies[2].Mass,
		"g":  t.g,
	}
}
