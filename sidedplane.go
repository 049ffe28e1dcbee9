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

// Membership is a spatial inclusion test.
type Membership interface {
	// IsWithin reports whether the given point lies inside the bound.
	IsWithin(Point) bool
}

// SidedPlane is a plane that remembers which of its two sides is the
// inside. Points on the plane itself count as within, so a point is
// always within at least one of a plane's two sided versions.
type SidedPlane struct {
	Plane
	sig float64
}

// NewSidedPlane returns the plane that contains through and the center
// of the planet and is perpendicular to perpendicular, sided so that
// inside is within it. When inside lies on the constructed plane, which
// happens when inside, through and the center are collinear, the
// positive side is chosen.
func NewSidedPlane(inside Point, perpendicular Plane, through Point) SidedPlane {
	pl := Plane{Normal: perpendicular.Normal.Cross(through.Vector).Normalize()}
	sig := 1.0
	if pl.Evaluate(inside) < -MinimumResolution {
		sig = -1
	}
	return SidedPlane{Plane: pl, sig: sig}
}

// NewSidedPlaneFromPoints returns the plane through a, b and the center
// of the planet, sided so that inside is within it. It returns an error
// when a and b are coincident or antipodal.
func NewSidedPlaneFromPoints(inside, a, b Point) (SidedPlane, error) {
	pl, err := NewPlaneThroughPoints(a, b)
	if err != nil {
		return SidedPlane{}, err
	}
	sig := 1.0
	if pl.Evaluate(inside) < -MinimumResolution {
		sig = -1
	}
	return SidedPlane{Plane: pl, sig: sig}, nil
}

// IsWithin reports whether v is on the inside of the plane or on the
// plane itself.
func (s SidedPlane) IsWithin(v Point) bool {
	e := s.Evaluate(v)
	if s.sig > 0 {
		return e >= -MinimumResolution
	}
	return e <= MinimumResolution
}
