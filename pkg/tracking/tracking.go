// Package tracking implements single-axis solar tracking as a Mount: the
// rotation that keeps the module plane pointed at the sun, optionally
// backing off to avoid row-to-row shading, resolved into a surface tilt
// and azimuth per solar position.
package tracking

import (
	"math"

	"github.com/goliatone/go-pvsim/pkg/pverr"
	"github.com/goliatone/go-pvsim/pkg/pvsystem"
	"github.com/goliatone/go-pvsim/pkg/solarposition"
)

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// DefaultMaxAngle is the rotation limit assumed when none is configured.
const DefaultMaxAngle = 90.0

// DefaultGCR is the ground coverage ratio assumed for backtracking: a
// collector two sevenths as wide as the row pitch.
const DefaultGCR = 2.0 / 7.0

// Option customises a single-axis mount during construction.
type Option func(*SingleAxisMount)

// WithAxisTilt tilts the rotation axis up from horizontal, in degrees.
func WithAxisTilt(deg float64) Option {
	return func(m *SingleAxisMount) {
		m.axisTilt = deg
	}
}

// WithAxisAzimuth points the rotation axis, in degrees east of north. The
// default 180 runs the axis north-south with positive rotation toward the
// west.
func WithAxisAzimuth(deg float64) Option {
	return func(m *SingleAxisMount) {
		m.axisAzimuth = deg
	}
}

// WithMaxAngle limits the rotation to [-deg, +deg] from horizontal.
func WithMaxAngle(deg float64) Option {
	return func(m *SingleAxisMount) {
		m.maxAngle = deg
	}
}

// WithBacktracking enables shade-avoiding backtracking for the given
// ground coverage ratio (collector width over row pitch, in (0, 1]).
func WithBacktracking(gcr float64) Option {
	return func(m *SingleAxisMount) {
		m.backtrack = true
		m.gcr = gcr
	}
}

// WithoutBacktracking keeps the tracker pointing at the sun regardless of
// row-to-row shading.
func WithoutBacktracking() Option {
	return func(m *SingleAxisMount) {
		m.backtrack = false
	}
}

// WithCrossAxisTilt sets the slope, in degrees, of the ground plane in the
// direction perpendicular to the axis. Relevant to backtracking on sloped
// sites.
func WithCrossAxisTilt(deg float64) Option {
	return func(m *SingleAxisMount) {
		m.crossAxisTilt = deg
	}
}

// SingleAxisMount steers modules around one rotation axis. The zero
// rotation holds the modules flat along the axis; when the sun is below
// the horizon the tracker parks there.
type SingleAxisMount struct {
	axisTilt      float64
	axisAzimuth   float64
	maxAngle      float64
	backtrack     bool
	gcr           float64
	crossAxisTilt float64
}

// NewSingleAxis builds a mount with a horizontal north-south axis,
// backtracking at the default ground coverage ratio and a 90 degree
// rotation limit unless options say otherwise.
func NewSingleAxis(options ...Option) *SingleAxisMount {
	m := &SingleAxisMount{
		axisAzimuth: 180,
		maxAngle:    DefaultMaxAngle,
		backtrack:   true,
		gcr:         DefaultGCR,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

// AxisTilt returns the axis tilt in degrees from horizontal.
func (m *SingleAxisMount) AxisTilt() float64 { return m.axisTilt }

// AxisAzimuth returns the axis direction in degrees east of north.
func (m *SingleAxisMount) AxisAzimuth() float64 { return m.axisAzimuth }

// MaxAngle returns the rotation limit in degrees.
func (m *SingleAxisMount) MaxAngle() float64 { return m.maxAngle }

// Backtracking reports whether the tracker backs off to avoid row shade.
func (m *SingleAxisMount) Backtracking() bool { return m.backtrack }

// GCR returns the ground coverage ratio used for backtracking.
func (m *SingleAxisMount) GCR() float64 { return m.gcr }

// CrossAxisTilt returns the cross-axis ground slope in degrees.
func (m *SingleAxisMount) CrossAxisTilt() float64 { return m.crossAxisTilt }

// Validate implements pvsystem.Mount.
func (m *SingleAxisMount) Validate() error {
	if err := pverr.CheckRange("axis_tilt", m.axisTilt, 0, 90); err != nil {
		return err
	}
	if err := pverr.CheckRange("axis_azimuth", m.axisAzimuth, 0, 360); err != nil {
		return err
	}
	if err := pverr.CheckRange("max_angle", m.maxAngle, 0, 180); err != nil {
		return err
	}
	if err := pverr.CheckRange("cross_axis_tilt", m.crossAxisTilt, -90, 90); err != nil {
		return err
	}
	if m.backtrack {
		if math.IsNaN(m.gcr) || m.gcr <= 0 || m.gcr > 1 {
			return &pverr.InputRangeError{Field: "gcr", Value: m.gcr, Min: 0, Max: 1}
		}
	}
	return nil
}

// Rotation returns the tracker rotation in degrees for a solar position.
// Zero is flat along the axis; the sign follows the axis azimuth (for a
// south-pointing axis, negative is toward the east). Below the horizon the
// tracker parks at zero.
func (m *SingleAxisMount) Rotation(pos solarposition.Position) float64 {
	if pos.ApparentZenith > 90 || math.IsNaN(pos.ApparentZenith) {
		return 0
	}

	// Sun unit vector in east/north/up coordinates, rotated into the
	// frame of the tracker axis.
	sinZenith := math.Sin(pos.ApparentZenith * degToRad)
	x := sinZenith * math.Sin(pos.Azimuth*degToRad)
	y := sinZenith * math.Cos(pos.Azimuth*degToRad)
	z := math.Cos(pos.ApparentZenith * degToRad)

	cosAz := math.Cos(m.axisAzimuth * degToRad)
	sinAz := math.Sin(m.axisAzimuth * degToRad)
	cosTilt := math.Cos(m.axisTilt * degToRad)
	sinTilt := math.Sin(m.axisTilt * degToRad)

	xp := x*cosAz - y*sinAz
	zp := x*sinAz*sinTilt + y*cosAz*sinTilt + z*cosTilt

	// The rotation that brings the module normal into the plane holding
	// the axis and the sun.
	rotation := math.Atan2(xp, zp) * radToDeg

	if m.backtrack {
		axesDistance := 1 / (m.gcr * math.Cos(m.crossAxisTilt*degToRad))
		projection := math.Abs(axesDistance * math.Cos((rotation-m.crossAxisTilt)*degToRad))
		// Above unity projection the rows cannot shade each other and
		// true tracking proceeds.
		if projection < 1 {
			rotation -= sign(rotation) * math.Acos(projection) * radToDeg
		}
	}

	return clamp(rotation, -m.maxAngle, m.maxAngle)
}

// Orientation implements pvsystem.Mount: the module plane for a solar
// position, resolved from the tracker rotation.
func (m *SingleAxisMount) Orientation(pos solarposition.Position) pvsystem.Orientation {
	return surfaceOrientation(m.Rotation(pos), m.axisTilt, m.axisAzimuth)
}

// surfaceOrientation converts a rotation about a tilted axis into the
// equivalent fixed tilt and azimuth.
func surfaceOrientation(rotation, axisTilt, axisAzimuth float64) pvsystem.Orientation {
	surfaceTilt := math.Acos(math.Cos(rotation*degToRad)*math.Cos(axisTilt*degToRad)) * radToDeg

	var azimuthDelta float64
	if sinTilt := math.Sin(surfaceTilt * degToRad); sinTilt != 0 {
		ratio := clamp(math.Sin(rotation*degToRad)/sinTilt, -1, 1)
		azimuthDelta = math.Asin(ratio) * radToDeg
		if math.Abs(rotation) >= 90 {
			azimuthDelta = -azimuthDelta + sign(rotation)*180
		}
	} else {
		// Flat plane: the azimuth is degenerate and fixed by convention.
		azimuthDelta = 90
	}

	surfaceAzimuth := math.Mod(axisAzimuth+azimuthDelta, 360)
	if surfaceAzimuth < 0 {
		surfaceAzimuth += 360
	}
	return pvsystem.Orientation{SurfaceTilt: surfaceTilt, SurfaceAzimuth: surfaceAzimuth}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
