package main

// Position is a particle's location in frame units.
type Position struct {
	X, Y float64
}

// Velocity is a particle's velocity in frame units per second.
type Velocity struct {
	X, Y float64
}

// Body holds a particle's splat weight and smoothing length.
type Body struct {
	Weight float64
	Hsml   float64
}
