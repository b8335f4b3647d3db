package physics

import "github.com/san-kum/threebody/internal/dynamo"

const (
	EarthMass      = 5.972e24  // kg
	MoonMass       = 7.3477e22 // kg
	SpacecraftMass = 1000.0    // kg

	EarthMoonDistance = 3.844e8 // m
	EarthRadius       = 6.371e6 // m
	MoonOrbitalSpeed  = 1022.0  // m/s
	SpacecraftSpeed   = 7700.0  // m/s
)

// EarthMoon places the Earth at the origin, the Moon on the +x axis moving
// along +y, and a 1000 kg spacecraft at the Earth's surface on its way to
// orbit.
func EarthMoon(dt float64, numSteps int) Config {
	return Config{
		Dt:       dt,
		NumSteps: numSteps,
		G:        GravitationalConstant,
		Bodies: [dynamo.NumBodies]Body{
			{Mass: EarthMass},
			{
				Mass:     MoonMass,
				Position: dynamo.Vec3{X: EarthMoonDistance},
				Velocity: dynamo.Vec3{Y: MoonOrbitalSpeed},
			},
			{
				Mass:     SpacecraftMass,
				Position: dynamo.Vec3{X: EarthRadius},
				Velocity: dynamo.Vec3{Y: SpacecraftSpeed},
			},
		},
	}
}

// FigureEight is the equal-mass choreography in units where G = 1.
// Net momentum is zero.
func FigureEight(dt float64, numSteps int) Config {
	return Config{
		Dt:       dt,
		NumSteps: numSteps,
		G:        1,
		Bodies: [dynamo.NumBodies]Body{
			{
				Mass:     1,
				Position: dynamo.Vec3{X: -0.97000436, Y: 0.24308753},
				Velocity: dynamo.Vec3{X: 0.4662036850, Y: 0.4323657300},
			},
			{
				Mass:     1,
				Position: dynamo.Vec3{X: 0.97000436, Y: -0.24308753},
				Velocity: dynamo.Vec3{X: 0.4662036850, Y: 0.4323657300},
			},
			{
				Mass:     1,
				Velocity: dynamo.Vec3{X: -0.93240737, Y: -0.86473146},
			},
		},
	}
}
