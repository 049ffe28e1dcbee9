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

/*
Package globe implements point-in-polygon and plane-intersection tests for
polygons on the surface of a sphere or an ellipsoid of revolution.

A Polygon is built once with NewPolygon from one or more rings of surface
points plus a test point whose inside/outside status is already known, and
can be queried concurrently afterwards. Construction time grows linearly
with the number of edges and queries run in roughly logarithmic time, so
polygons with very large numbers of edges stay practical.
*/
package globe

// Version gives the version number of this version of Globe.
const Version = "0.1.0"

const (
	// MinimumResolution is the smallest difference between two coordinate
	// values that this package treats as meaningful. Coordinates closer
	// together than this are considered numerically identical.
	MinimumResolution = 1e-12

	// MinimumResolutionSquared is the tolerance for comparing squared
	// quantities such as quadratic discriminants.
	MinimumResolutionSquared = MinimumResolution * MinimumResolution
)
