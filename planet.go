/*
Copyright © 2026 the Globe authors.
This file is part of Globe.

Globe is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Globe is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Globe.  If not, see <http://www.gnu.org/licenses/>.
*/

package globe

import (
	"math"

	"github.com/golang/geo/s2"
)

// Planet describes the surface that polygons lie on: an ellipsoid of
// revolution, normalized so that its mean radius is 1. Points (x, y, z)
// on the surface satisfy
//
//	(x/XYScaling)² + (y/XYScaling)² + (z/ZScaling)² = 1.
type Planet struct {
	// XYScaling is the equatorial radius.
	XYScaling float64
	// ZScaling is the polar radius.
	ZScaling float64

	inverseXYScalingSquared float64
	inverseZScalingSquared  float64
}

// NewPlanet returns a planet with the given equatorial and polar radii.
func NewPlanet(xyScaling, zScaling float64) Planet {
	return Planet{
		XYScaling:               xyScaling,
		ZScaling:                zScaling,
		inverseXYScalingSquared: 1 / (xyScaling * xyScaling),
		inverseZScalingSquared:  1 / (zScaling * zScaling),
	}
}

var (
	// Sphere is a spherical planet of radius 1.
	Sphere = NewPlanet(1, 1)

	// WGS84 is the WGS84 reference ellipsoid, normalized to a mean
	// radius of 1.
	WGS84 = NewPlanet(1.0011188539924791, 0.9977622539852008)
)

// PointFromLatLng returns the surface point with the given geographic
// coordinates.
func (m Planet) PointFromLatLng(ll s2.LatLng) Point {
	lat := ll.Lat.Radians()
	lng := ll.Lng.Radians()
	cosLat := math.Cos(lat)
	return NewPoint(
		m.XYScaling*cosLat*math.Cos(lng),
		m.XYScaling*cosLat*math.Sin(lng),
		m.ZScaling*math.Sin(lat),
	)
}

// PointFromDegrees returns the surface point at the given latitude and
// longitude in degrees.
func (m Planet) PointFromDegrees(lat, lng float64) Point {
	return m.PointFromLatLng(s2.LatLngFromDegrees(lat, lng))
}

// OnSurface reports whether v lies on the planet surface to within
// MinimumResolution.
func (m Planet) OnSurface(v Point) bool {
	return math.Abs(m.surfaceEvaluate(v)) < MinimumResolution
}

// surfaceEvaluate returns the value of the ellipsoid equation at v, minus
// one, so that surface points evaluate to zero.
func (m Planet) surfaceEvaluate(v Point) float64 {
	return v.X*v.X*m.inverseXYScalingSquared +
		v.Y*v.Y*m.inverseXYScalingSquared +
		v.Z*v.Z*m.inverseZScalingSquared - 1
}
