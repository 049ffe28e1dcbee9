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

import "math"

// Bounds holds the axis-aligned spatial extent of a shape.
type Bounds struct {
	Min, Max Point
}

// NewBounds initializes a new, empty bounds object.
func NewBounds() *Bounds {
	return &Bounds{
		Min: NewPoint(math.Inf(1), math.Inf(1), math.Inf(1)),
		Max: NewPoint(math.Inf(-1), math.Inf(-1), math.Inf(-1)),
	}
}

// NewBoundsPoint creates a bounds object covering a single point.
func NewBoundsPoint(point Point) *Bounds {
	return &Bounds{Min: point, Max: point}
}

// Extend increases the extent of b to include b2.
func (b *Bounds) Extend(b2 *Bounds) {
	if b2 == nil || b2.Empty() {
		return
	}
	b.ExtendPoint(b2.Min)
	b.ExtendPoint(b2.Max)
}

// ExtendPoint increases the extent of b to include point.
func (b *Bounds) ExtendPoint(point Point) {
	b.Min.X = math.Min(b.Min.X, point.X)
	b.Min.Y = math.Min(b.Min.Y, point.Y)
	b.Min.Z = math.Min(b.Min.Z, point.Z)
	b.Max.X = math.Max(b.Max.X, point.X)
	b.Max.Y = math.Max(b.Max.Y, point.Y)
	b.Max.Z = math.Max(b.Max.Z, point.Z)
}

// Empty returns true if b does not contain any points.
func (b *Bounds) Empty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// Overlaps returns whether b and b2 overlap.
func (b *Bounds) Overlaps(b2 *Bounds) bool {
	return b.Min.X <= b2.Max.X && b.Min.Y <= b2.Max.Y && b.Min.Z <= b2.Max.Z &&
		b.Max.X >= b2.Min.X && b.Max.Y >= b2.Min.Y && b.Max.Z >= b2.Min.Z
}

// boundsFudge is the margin added around every curve point recorded into
// a Bounds, so that range queries built from recorded extents never miss
// a curve by roundoff.
const boundsFudge = 1e-10

// extendPointFudge extends b to cover point plus a boundsFudge margin on
// every axis.
func (b *Bounds) extendPointFudge(point Point) {
	b.ExtendPoint(NewPoint(point.X-boundsFudge, point.Y-boundsFudge, point.Z-boundsFudge))
	b.ExtendPoint(NewPoint(point.X+boundsFudge, point.Y+boundsFudge, point.Z+boundsFudge))
}

// span returns the extent of b along the given axis.
func (b *Bounds) span(a axis) (lo, hi float64) {
	switch a {
	case axisX:
		return b.Min.X, b.Max.X
	case axisY:
		return b.Min.Y, b.Max.Y
	default:
		return b.Min.Z, b.Max.Z
	}
}
