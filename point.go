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

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"gonum.org/v1/gonum/floats"
)

// Point is a location in 3-dimensional space, relative to the center of
// the planet. Points handed to Polygon and Plane operations are expected
// to lie on the planet surface.
type Point struct {
	r3.Vector
}

// NewPoint returns the point with the given Cartesian coordinates.
func NewPoint(x, y, z float64) Point {
	return Point{r3.Vector{X: x, Y: y, Z: z}}
}

// ApproxEqual reports whether p and o are the same location to within
// MinimumResolution on each axis.
func (p Point) ApproxEqual(o Point) bool {
	return floats.EqualWithinAbs(p.X, o.X, MinimumResolution) &&
		floats.EqualWithinAbs(p.Y, o.Y, MinimumResolution) &&
		floats.EqualWithinAbs(p.Z, o.Z, MinimumResolution)
}

// LatLng returns the geographic coordinates of p, which must lie on the
// surface of planet m.
func (p Point) LatLng(m Planet) s2.LatLng {
	sinLat := p.Z / m.ZScaling
	if sinLat > 1 {
		sinLat = 1
	} else if sinLat < -1 {
		sinLat = -1
	}
	return s2.LatLng{
		Lat: s1.Angle(math.Asin(sinLat)),
		Lng: s1.Angle(math.Atan2(p.Y, p.X)),
	}
}
