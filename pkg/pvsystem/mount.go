package pvsystem

import (
	"github.com/goliatone/go-pvsim/pkg/pverr"
	"github.com/goliatone/go-pvsim/pkg/solarposition"
)

// Orientation is the instantaneous pointing of the module plane. Tilt is
// degrees from horizontal (0 flat, 90 vertical); azimuth is degrees east of
// north (90 east, 180 south, 270 west).
type Orientation struct {
	SurfaceTilt    float64
	SurfaceAzimuth float64
}

// Mount resolves the module plane for a solar position. Fixed mounts ignore
// the position; trackers steer with it.
type Mount interface {
	Orientation(pos solarposition.Position) Orientation
	Validate() error
}

// FixedMount holds the modules at a constant tilt and azimuth.
type FixedMount struct {
	SurfaceTilt    float64
	SurfaceAzimuth float64
}

// Orientation implements Mount.
func (m FixedMount) Orientation(solarposition.Position) Orientation {
	return Orientation{SurfaceTilt: m.SurfaceTilt, SurfaceAzimuth: m.SurfaceAzimuth}
}

// Validate checks the tilt is within [0, 90] and the azimuth within
// [0, 360].
func (m FixedMount) Validate() error {
	if err := pverr.CheckRange("surface_tilt", m.SurfaceTilt, 0, 90); err != nil {
		return err
	}
	return pverr.CheckRange("surface_azimuth", m.SurfaceAzimuth, 0, 360)
}
