// Package solarposition computes sun coordinates for a time and place. Two
// algorithms are provided: Ephemeris, a mean-anomaly ephemeris with
// atmospheric refraction correction, and PSA, a compact closed-form
// alternative. Both are pure functions of their inputs and carry no lookup
// tables.
//
// Angle conventions: latitude is positive north, longitude positive east,
// azimuth degrees clockwise from north (east = 90), elevation degrees above
// the horizon, zenith = 90 - elevation.
package solarposition

import (
	"math"
	"time"
)

const (
	// DefaultPressure is standard sea-level air pressure in pascals, used
	// by the refraction correction when no site pressure is known.
	DefaultPressure = 101325.0
	// DefaultTemperature is the air temperature in °C assumed by the
	// refraction correction when none is supplied.
	DefaultTemperature = 12.0

	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// Position is the sun's coordinates at one instant.
type Position struct {
	Elevation         float64 // degrees above horizon, geometric
	ApparentElevation float64 // degrees above horizon, refraction-corrected
	Zenith            float64 // 90 - Elevation
	ApparentZenith    float64 // 90 - ApparentElevation
	Azimuth           float64 // degrees clockwise from north
	Declination       float64 // degrees
	SolarTime         float64 // local apparent time, decimal hours
}

// Ephemeris computes the sun position using the low-precision ephemeris
// (mean anomaly, eccentric anomaly iteration, apparent ecliptic longitude)
// with a three-regime refraction correction scaled by site pressure (Pa) and
// air temperature (°C). Accuracy is a few hundredths of a degree, adequate
// for irradiance modeling.
func Ephemeris(t time.Time, latitude, longitude, pressure, temperature float64) Position {
	utc := t.UTC()
	latR := latitude * degToRad

	dayOfYear := float64(utc.YearDay())
	decHours := float64(utc.Hour()) + float64(utc.Minute())/60 + float64(utc.Second())/3600 +
		float64(utc.Nanosecond())/3.6e12

	// Days since the 1900 reference epoch, matching the ephemeris
	// constants below.
	yr := float64(utc.Year() - 1900)
	yrBegin := 365*yr + math.Floor((yr-1)/4) - 0.5
	ezero := yrBegin + dayOfYear

	tCent := ezero / 36525
	gmst0 := 6/24.0 + 38/1440.0 + (45.836+8640184.542*tCent+0.0929*tCent*tCent)/86400
	gmst0 = 360 * (gmst0 - math.Floor(gmst0))
	gmsti := math.Mod(gmst0+360*(1.0027379093+8.9e-11*tCent)*decHours/24, 360)

	// Local apparent sidereal time; longitude east-positive.
	locAST := math.Mod(360+gmsti+longitude, 360)

	epochDate := ezero + decHours/24
	t1 := epochDate / 36525
	obliquityR := (23.452294 - 0.0130125*t1 - 1.64e-06*t1*t1 + 5.03e-07*t1*t1*t1) * degToRad
	mlPerigee := 281.22083 + 4.70684e-05*epochDate + 0.000453*t1*t1 + 3e-06*t1*t1*t1
	meanAnom := math.Mod(358.47583+0.985600267*epochDate-0.00015*t1*t1-3e-06*t1*t1*t1, 360)
	eccen := 0.01675104 - 4.18e-05*t1 - 1.26e-07*t1*t1

	eccenAnom := meanAnom
	e := 0.0
	for math.Abs(eccenAnom-e) > 0.0001 {
		e = eccenAnom
		eccenAnom = meanAnom + eccen*radToDeg*math.Sin(e*degToRad)
	}

	trueAnom := 2 * math.Mod(radToDeg*math.Atan2(math.Sqrt((1+eccen)/(1-eccen))*math.Tan(eccenAnom*degToRad/2), 1), 360)
	const aberration = 20.0 / 3600
	ecLon := math.Mod(mlPerigee+trueAnom, 360) - aberration
	ecLonR := ecLon * degToRad

	decR := math.Asin(math.Sin(obliquityR) * math.Sin(ecLonR))
	rtAscen := radToDeg * math.Atan2(math.Cos(obliquityR)*math.Sin(ecLonR), math.Cos(ecLonR))

	hrAngle := locAST - rtAscen
	if math.Abs(hrAngle) > 180 {
		hrAngle -= 360 * sign(hrAngle)
	}
	hrAngleR := hrAngle * degToRad

	azimuth := radToDeg * math.Atan2(-math.Sin(hrAngleR), math.Cos(latR)*math.Tan(decR)-math.Sin(latR)*math.Cos(hrAngleR))
	if azimuth < 0 {
		azimuth += 360
	}

	elevation := radToDeg * math.Asin(math.Cos(latR)*math.Cos(decR)*math.Cos(hrAngleR)+math.Sin(latR)*math.Sin(decR))
	solarTime := (180 + hrAngle) / 15

	apparent := elevation + refraction(elevation, pressure, temperature)

	return Position{
		Elevation:         elevation,
		ApparentElevation: apparent,
		Zenith:            90 - elevation,
		ApparentZenith:    90 - apparent,
		Azimuth:           azimuth,
		Declination:       decR * radToDeg,
		SolarTime:         solarTime,
	}
}

// refraction returns the atmospheric refraction correction in degrees for a
// geometric elevation, using the three-regime fit (high sun, near horizon,
// just below horizon) scaled to site pressure and temperature. Outside
// (-1°, 85°] the correction is zero.
func refraction(elevation, pressure, temperature float64) float64 {
	tanEl := math.Tan(elevation * degToRad)

	var refract float64
	switch {
	case elevation > 5 && elevation <= 85:
		refract = 58.1/tanEl - 0.07/math.Pow(tanEl, 3) + 8.6e-05/math.Pow(tanEl, 5)
	case elevation > -0.575 && elevation <= 5:
		refract = elevation*(-518.2+elevation*(103.4+elevation*(-12.79+elevation*0.711))) + 1735
	case elevation > -1 && elevation <= -0.575:
		refract = -20.774 / tanEl
	default:
		return 0
	}

	return refract * (283 / (273 + temperature)) * (pressure / 101325) / 3600
}

// PSA computes the sun position with the closed-form PSA algorithm (Julian
// day polynomial fit, parallax-corrected zenith). It models no refraction:
// apparent values equal geometric ones. Valid for 1999-2015 fit epoch but
// drifts under 0.01° per decade outside it.
func PSA(t time.Time, latitude, longitude float64) Position {
	utc := t.UTC()
	latR := latitude * degToRad

	// Elapsed Julian days since J2000.0.
	julian := float64(utc.Unix())/86400.0 + 2440587.5
	if ns := utc.Nanosecond(); ns != 0 {
		julian += float64(ns) / (86400 * 1e9)
	}
	n := julian - 2451545.0

	decHours := float64(utc.Hour()) + float64(utc.Minute())/60 + float64(utc.Second())/3600 +
		float64(utc.Nanosecond())/3.6e12

	omega := 2.1429 - 0.0010394594*n
	meanLon := 4.8950630 + 0.017202791698*n
	meanAnom := 6.2400600 + 0.0172019699*n
	eclipticLon := meanLon + 0.03341607*math.Sin(meanAnom) + 0.00034894*math.Sin(2*meanAnom) -
		0.0001134 - 0.0000203*math.Sin(omega)
	obliquity := 0.4090928 - 6.2140e-9*n + 0.0000396*math.Cos(omega)

	ra := math.Atan2(math.Cos(obliquity)*math.Sin(eclipticLon), math.Cos(eclipticLon))
	if ra < 0 {
		ra += 2 * math.Pi
	}
	dec := math.Asin(math.Sin(obliquity) * math.Sin(eclipticLon))

	gmst := 6.6974243242 + 0.0657098283*n + decHours
	lmst := (gmst*15 + longitude) * degToRad
	hourAngle := lmst - ra

	zenith := math.Acos(math.Cos(latR)*math.Cos(hourAngle)*math.Cos(dec) + math.Sin(dec)*math.Sin(latR))
	azimuth := math.Atan2(-math.Sin(hourAngle), math.Tan(dec)*math.Cos(latR)-math.Sin(latR)*math.Cos(hourAngle))
	if azimuth < 0 {
		azimuth += 2 * math.Pi
	}

	// Parallax: shift from geocentric to topocentric zenith.
	const earthMeanRadiusKm = 6371.01
	const astronomicalUnitKm = 149597890.0
	zenith += (earthMeanRadiusKm / astronomicalUnitKm) * math.Sin(zenith)

	zenithDeg := zenith * radToDeg
	elevation := 90 - zenithDeg

	// Wrap the hour angle before deriving solar time so noon lands at 12.
	haDeg := math.Mod(hourAngle*radToDeg+180, 360) - 180

	return Position{
		Elevation:         elevation,
		ApparentElevation: elevation,
		Zenith:            zenithDeg,
		ApparentZenith:    zenithDeg,
		Azimuth:           azimuth * radToDeg,
		Declination:       dec * radToDeg,
		SolarTime:         (180 + haDeg) / 15,
	}
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
