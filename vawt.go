// Package vawt models vertical axis wind turbine parts as signed distance
// functions. Shapes are composed from 2D sections, extruded into solids and
// meshed by the render package.
package vawt

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// SDF2 is the interface to a 2d signed distance function object.
type SDF2 interface {
	// Evaluate takes a point in 2D space as input and returns
	// the minimum distance of the SDF2 to the point. The distance
	// is negative if the point is contained within the SDF2.
	Evaluate(p r2.Vec) float64

	// Bounds returns the bounding box that completely contains the SDF2.
	Bounds() r2.Box
}

// SDF3 is the interface to a 3d signed distance function object.
type SDF3 interface {
	// Evaluate returns the minimum distance of the SDF3 to p.
	// The distance is negative if p is contained within the SDF3.
	Evaluate(p r3.Vec) float64

	// Bounds returns the bounding box that completely contains the SDF3.
	Bounds() r3.Box
}

// SDF2Union is an SDF2 union with configurable blending.
type SDF2Union interface {
	SDF2
	SetMin(MinFunc)
}

// SDF3Union is an SDF3 union with configurable blending.
type SDF3Union interface {
	SDF3
	SetMin(MinFunc)
}

// SDF3Diff is an SDF3 difference with configurable blending.
type SDF3Diff interface {
	SDF3
	SetMax(MaxFunc)
}

// MinFunc is a minimum functions for SDF blending.
type MinFunc func(a, b float64) float64

// MaxFunc is a maximum function for SDF blending.
type MaxFunc func(a, b float64) float64

// ExtrudeFunc maps a 3d point to the 2d point used to evaluate the SDF2.
type ExtrudeFunc func(p r3.Vec) r2.Vec
