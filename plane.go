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
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Plane is a plane in 3-dimensional space, described by the unit normal
// vector (A, B, C) and the constant D in the plane equation
//
//	Ax + By + Cz + D = 0.
//
// The planes used by this package either pass through the center of the
// planet (D = 0) or are horizontal.
type Plane struct {
	Normal r3.Vector
	D      float64
}

// NewPlaneThroughPoints returns the plane that contains the center of the
// planet and both of the given surface points. It returns an error when
// the points and the center are collinear, that is, when the points are
// coincident or antipodal, because then no unique plane exists.
func NewPlaneThroughPoints(a, b Point) (Plane, error) {
	n := a.Cross(b.Vector)
	if n.Norm() < MinimumResolution {
		return Plane{}, fmt.Errorf("globe: no unique plane through %v and %v: points are coincident or antipodal", a.Vector, b.Vector)
	}
	return Plane{Normal: n.Normalize()}, nil
}

// NewMeridianPlane returns the vertical plane that contains the z axis
// and the location (x, y). The second return value is false when (x, y)
// is within MinimumResolution of the axis, as happens at the poles,
// where no meridian is defined.
func NewMeridianPlane(x, y float64) (Plane, bool) {
	d := math.Sqrt(x*x + y*y)
	if d < MinimumResolution {
		return Plane{}, false
	}
	return Plane{Normal: r3.Vector{X: y / d, Y: -x / d}}, true
}

// NewHorizontalPlane returns the plane of constant z through the given
// z value.
func NewHorizontalPlane(z float64) Plane {
	return Plane{Normal: r3.Vector{Z: 1}, D: -z}
}

// Offset returns the plane parallel to p, displaced to just beyond
// MinimumResolution on the chosen side. Probing an arc with both offset
// planes distinguishes arcs that depart from p from arcs that merely
// touch it.
func (p Plane) Offset(above bool) Plane {
	// Displacing the plane along its normal shifts D the opposite way:
	// points on p evaluate to -ε against the above offset.
	if above {
		return Plane{Normal: p.Normal, D: math.Nextafter(p.D-MinimumResolution, math.Inf(-1))}
	}
	return Plane{Normal: p.Normal, D: math.Nextafter(p.D+MinimumResolution, math.Inf(1))}
}

// Evaluate returns the value of the plane equation at v. The result is
// zero for points on the plane and its sign tells which side v is on.
func (p Plane) Evaluate(v Point) float64 {
	return p.Normal.Dot(v.Vector) + p.D
}

// EvaluateIsZero reports whether v lies on the plane to within
// MinimumResolution.
func (p Plane) EvaluateIsZero(v Point) bool {
	return math.Abs(p.Evaluate(v)) < MinimumResolution
}

// ApproxEqual reports whether p and q describe the same plane, allowing
// for normals of opposite orientation.
func (p Plane) ApproxEqual(q Plane) bool {
	if p.Normal.Cross(q.Normal).Norm() >= MinimumResolution {
		return false
	}
	if p.Normal.Dot(q.Normal) > 0 {
		return math.Abs(p.D-q.D) < MinimumResolution
	}
	return math.Abs(p.D+q.D) < MinimumResolution
}

// FindIntersections returns the surface points of planet that lie on
// both p and q, keeping only points within all of the given bounds.
// There are at most two. Parallel or coincident planes return none,
// because no unique intersection line exists.
func (p Plane) FindIntersections(planet Planet, q Plane, bounds ...Membership) []Point {
	return p.findLineIntersections(planet, q, false, bounds)
}

// FindCrossings is like FindIntersections except that a tangent contact,
// where the intersection line touches the surface without passing
// through it, returns no points: a touch is not a crossing.
func (p Plane) FindCrossings(planet Planet, q Plane, bounds ...Membership) []Point {
	return p.findLineIntersections(planet, q, true, bounds)
}

func (p Plane) findLineIntersections(planet Planet, q Plane, crossingsOnly bool, bounds []Membership) []Point {
	u := p.Normal.Cross(q.Normal)
	if u.Norm() < MinimumResolution {
		return nil
	}
	// The point of the intersection line closest to the center lies in
	// the span of the two normals.
	k := p.Normal.Dot(q.Normal)
	denom := 1 - k*k
	a := (-p.D + q.D*k) / denom
	b := (-q.D + p.D*k) / denom
	p0 := p.Normal.Mul(a).Add(q.Normal.Mul(b))

	// Substituting p0 + t·u into the surface equation gives a quadratic
	// in t.
	qa := u.X*u.X*planet.inverseXYScalingSquared +
		u.Y*u.Y*planet.inverseXYScalingSquared +
		u.Z*u.Z*planet.inverseZScalingSquared
	qb := 2 * (p0.X*u.X*planet.inverseXYScalingSquared +
		p0.Y*u.Y*planet.inverseXYScalingSquared +
		p0.Z*u.Z*planet.inverseZScalingSquared)
	qc := p0.X*p0.X*planet.inverseXYScalingSquared +
		p0.Y*p0.Y*planet.inverseXYScalingSquared +
		p0.Z*p0.Z*planet.inverseZScalingSquared - 1

	disc := qb*qb - 4*qa*qc
	if math.Abs(disc) < MinimumResolutionSquared {
		if crossingsOnly {
			return nil
		}
		pt := Point{p0.Add(u.Mul(-qb / (2 * qa)))}
		if !meetsAll(pt, bounds) {
			return nil
		}
		return []Point{pt}
	}
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	var out []Point
	for _, t := range [2]float64{(-qb + sq) / (2 * qa), (-qb - sq) / (2 * qa)} {
		pt := Point{p0.Add(u.Mul(t))}
		if meetsAll(pt, bounds) {
			out = append(out, pt)
		}
	}
	return out
}

// RecordBounds extends b to cover the curve where p meets the surface of
// planet, restricted to the arc that lies within all of the given bound
// planes. The recorded extents carry a small safety margin so that range
// queries built from them never miss the curve by roundoff.
func (p Plane) RecordBounds(planet Planet, b *Bounds, arc ...SidedPlane) {
	// Scaling the surface onto the unit sphere turns the curve into a
	// circle. The plane n·v + D = 0 becomes ŝ·w = d for unit-sphere
	// points w, where s is the normal with each component multiplied by
	// its axis scaling.
	s := r3.Vector{
		X: p.Normal.X * planet.XYScaling,
		Y: p.Normal.Y * planet.XYScaling,
		Z: p.Normal.Z * planet.ZScaling,
	}
	norm := s.Norm()
	d := -p.D / norm
	if d*d > 1 {
		// The plane misses the surface entirely.
		return
	}
	sHat := s.Mul(1 / norm)
	center := sHat.Mul(d)
	r := math.Sqrt(math.Max(0, 1-d*d))

	// The candidate extreme points of the circle along each axis, kept
	// when they lie on the requested arc.
	for _, axisVec := range []r3.Vector{{X: 1}, {Y: 1}, {Z: 1}} {
		g := axisVec.Sub(sHat.Mul(axisVec.Dot(sHat)))
		if g.Norm() < MinimumResolution {
			// The circle holds this coordinate constant, so any
			// point of it records the right value.
			g = sHat.Ortho()
		}
		g = g.Normalize()
		for _, sign := range [2]float64{1, -1} {
			w := center.Add(g.Mul(r * sign))
			pt := NewPoint(w.X*planet.XYScaling, w.Y*planet.XYScaling, w.Z*planet.ZScaling)
			if withinAllSided(pt, arc) {
				b.extendPointFudge(pt)
			}
		}
	}

	if len(arc) == 0 {
		return
	}
	// The endpoints of the arc, where the curve meets a bound plane,
	// can be more extreme than any unrestricted extreme that survives
	// the arc filter.
	members := make([]Membership, len(arc))
	for i, sp := range arc {
		members[i] = sp
	}
	for _, sp := range arc {
		for _, pt := range p.FindIntersections(planet, sp.Plane, members...) {
			b.extendPointFudge(pt)
		}
	}
}

// Intersects reports whether the surface curves of p and q cross within
// all of the given bounds. Coincident planes have no unique crossing
// line; for those, any notable point of either plane satisfying the
// bounds counts as an intersection.
func (p Plane) Intersects(planet Planet, q Plane, notable, qNotable []Point, within []Membership, more ...Membership) bool {
	all := make([]Membership, 0, len(within)+len(more))
	all = append(all, within...)
	all = append(all, more...)
	if p.ApproxEqual(q) {
		for _, pt := range notable {
			if meetsAll(pt, all) {
				return true
			}
		}
		for _, pt := range qNotable {
			if meetsAll(pt, all) {
				return true
			}
		}
		return false
	}
	return len(p.FindIntersections(planet, q, all...)) > 0
}

// meetsAll reports whether pt is within every one of the given bounds.
func meetsAll(pt Point, bounds []Membership) bool {
	for _, b := range bounds {
		if !b.IsWithin(pt) {
			return false
		}
	}
	return true
}

// withinAllSided reports whether pt is within every one of the given
// sided planes.
func withinAllSided(pt Point, arc []SidedPlane) bool {
	for _, sp := range arc {
		if !sp.IsWithin(pt) {
			return false
		}
	}
	return true
}
