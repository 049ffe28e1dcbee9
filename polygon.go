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
	"github.com/golang/geo/s2"
)

// A Polygon answers containment and plane-intersection queries for a
// shape on a planet surface made of one or more closed rings. Outer
// boundaries and holes are structurally identical: containment follows
// from the even/odd rule relative to a test point whose inside/outside
// status the caller supplies at construction.
//
// A Polygon is immutable once built, so any number of goroutines may
// query it concurrently. There is no update API; a changed shape needs a
// new Polygon.
type Polygon struct {
	planet Planet

	xTree *edgeTree
	yTree *edgeTree
	zTree *edgeTree

	rings      []*ring
	startEdges []*edge
	edgePoints []Point

	testPoint      Point
	testPointInSet bool
	// testPointPlane is the meridian plane through the test point, the
	// default cutting plane for containment queries. A test point at a
	// pole has no meridian; the x = 0 plane stands in for it there.
	testPointPlane Plane
}

// NewPolygon builds a polygon on planet from rings of surface points.
// Each ring is an ordered sequence of points with an implied closing
// edge from the last point back to the first, so N points describe N
// edges. testPoint is a surface point whose containment status,
// testPointInSet, is already known.
//
// The caller guarantees that no ring self-intersects, that rings do not
// intersect each other, and that no ring has adjacent coincident points;
// none of that is validated here.
func NewPolygon(planet Planet, rings [][]Point, testPoint Point, testPointInSet bool) (*Polygon, error) {
	if len(rings) == 0 {
		return nil, fmt.Errorf("globe: a polygon needs at least one ring")
	}
	p := &Polygon{
		planet:         planet,
		xTree:          newEdgeTree(axisX),
		yTree:          newEdgeTree(axisY),
		zTree:          newEdgeTree(axisZ),
		testPoint:      testPoint,
		testPointInSet: testPointInSet,
	}
	pl, ok := NewMeridianPlane(testPoint.X, testPoint.Y)
	if !ok {
		pl = Plane{Normal: r3.Vector{X: 1}}
	}
	p.testPointPlane = pl

	for ri, points := range rings {
		if len(points) < 3 {
			return nil, fmt.Errorf("globe: ring %d has %d points; a ring needs at least 3", ri, len(points))
		}
		r := &ring{edges: make([]edge, len(points))}
		last := points[len(points)-1]
		for i, pt := range points {
			e, err := newEdge(planet, r, i, last, pt)
			if err != nil {
				return nil, fmt.Errorf("globe: ring %d, edge ending at point %d: %w", ri, i, err)
			}
			r.edges[i] = e
			last = pt
		}
		for i := range r.edges {
			e := &r.edges[i]
			p.xTree.add(e)
			p.yTree.add(e)
			p.zTree.add(e)
		}
		p.rings = append(p.rings, r)
		p.startEdges = append(p.startEdges, &r.edges[0])
		p.edgePoints = append(p.edgePoints, points[len(points)-1])
	}
	return p, nil
}

// NewPolygonFromLatLngs is NewPolygon for rings given as geographic
// coordinates.
func NewPolygonFromLatLngs(planet Planet, rings [][]s2.LatLng, testPoint s2.LatLng, testPointInSet bool) (*Polygon, error) {
	pointRings := make([][]Point, len(rings))
	for i, ring := range rings {
		pointRings[i] = make([]Point, len(ring))
		for j, ll := range ring {
			pointRings[i][j] = planet.PointFromLatLng(ll)
		}
	}
	return NewPolygon(planet, pointRings, planet.PointFromLatLng(testPoint), testPointInSet)
}

// Planet returns the surface model the polygon was built on.
func (p *Polygon) Planet() Planet {
	return p.planet
}

// IsWithin reports whether pt, a point on the planet surface, lies
// inside the polygon. Points on the boundary count as inside.
func (p *Polygon) IsWithin(pt Point) bool {
	if pt.ApproxEqual(p.testPoint) {
		return p.testPointInSet
	}
	var crossings int
	if pt.ApproxEqual(antipode(p.testPoint)) {
		// The antipode is on the test point's meridian plane, but the
		// cutoff planes of a single arc between antipodal points
		// degenerate: each endpoint lies on the other's cutoff, so the
		// arc selection collapses. Break the journey at a waypoint a
		// quarter turn along the meridian and count both legs.
		way := p.meridianWaypoint()
		count1, _ := p.countCrossings(p.testPointPlane, p.testPoint, way, false)
		count2, onBoundary := p.countCrossings(p.testPointPlane, way, pt, false)
		if onBoundary {
			return true
		}
		crossings = count1 + count2
	} else if p.testPointPlane.EvaluateIsZero(pt) {
		// The test point's meridian plane passes through the query
		// point too, so one cutting plane connects them.
		count, onBoundary := p.countCrossings(p.testPointPlane, p.testPoint, pt, false)
		if onBoundary {
			// The query point sits exactly on the polygon boundary;
			// boundary points count as inside.
			return true
		}
		crossings = count
	} else {
		// The query point is off the test point's meridian, so the path
		// between them needs two cutting planes: down the meridian to
		// the query point's latitude circle, then around that circle to
		// the query point.
		travel := NewHorizontalPlane(pt.Z)
		relay := p.relayPoint(travel, pt)
		if !relay.ApproxEqual(p.testPoint) {
			count, _ := p.countCrossings(p.testPointPlane, p.testPoint, relay, false)
			crossings = count
		}
		if !relay.ApproxEqual(pt) {
			count, onBoundary := p.countCrossings(travel, relay, pt, true)
			if onBoundary {
				return true
			}
			crossings += count
		}
	}
	if crossings%2 == 0 {
		return p.testPointInSet
	}
	return !p.testPointInSet
}

// IsWithinCoords is IsWithin for a point given as raw coordinates.
func (p *Polygon) IsWithinCoords(x, y, z float64) bool {
	return p.IsWithin(NewPoint(x, y, z))
}

// IsWithinLatLng is IsWithin for a point given as geographic
// coordinates.
func (p *Polygon) IsWithinLatLng(ll s2.LatLng) bool {
	return p.IsWithin(p.planet.PointFromLatLng(ll))
}

// antipode returns the point diametrically opposite pt, which lies on
// the planet surface whenever pt does.
func antipode(pt Point) Point {
	return NewPoint(-pt.X, -pt.Y, -pt.Z)
}

// meridianWaypoint returns a surface point on the test point's meridian
// plane a quarter turn from the test point, suitable as a stopover when
// the query point is the test point's antipode. It is never within
// resolution of either endpoint.
func (p *Polygon) meridianWaypoint() Point {
	u := p.testPointPlane.Normal.Cross(p.testPoint.Vector).Normalize()
	// Per-axis scaling keeps the point on the surface and, because the
	// meridian plane contains the z axis, on the plane as well.
	return NewPoint(u.X*p.planet.XYScaling, u.Y*p.planet.XYScaling, u.Z*p.planet.ZScaling)
}

// relayPoint returns a surface point lying on both the test point's
// meridian plane and the horizontal travel plane, preferring the
// candidate on the test point's side of the planet so that the meridian
// leg stays at the test point's longitude.
func (p *Polygon) relayPoint(travel Plane, queryPt Point) Point {
	candidates := p.testPointPlane.FindIntersections(p.planet, travel)
	switch len(candidates) {
	case 0:
		// The travel plane grazes a pole and roundoff hid the tangent
		// point; the pole itself lies on every meridian plane.
		return NewPoint(0, 0, math.Copysign(p.planet.ZScaling, queryPt.Z))
	case 1:
		return candidates[0]
	}
	a, b := candidates[0], candidates[1]
	refX, refY := p.testPoint.X, p.testPoint.Y
	if refX*refX+refY*refY < MinimumResolutionSquared {
		// A polar test point is at every longitude at once, so stay on
		// the query point's side instead.
		refX, refY = queryPt.X, queryPt.Y
	}
	if a.X*refX+a.Y*refY >= b.X*refX+b.Y*refY {
		return a
	}
	return b
}

// countCrossings counts boundary crossings on the arc of the cutting
// plane between from and to, and reports whether one of the crossings is
// the to point itself, meaning to lies on the polygon boundary. The
// traversal uses whichever axis tree spans the smallest extent of the
// arc's bounding box. The z tree only helps for horizontal cutting
// planes, whose arcs have near-zero z extent; useZ admits it as a
// candidate.
func (p *Polygon) countCrossings(cutting Plane, from, to Point, useZ bool) (int, bool) {
	fromCutoff := NewSidedPlane(to, cutting, from)
	toCutoff := NewSidedPlane(from, cutting, to)
	b := NewBounds()
	cutting.RecordBounds(p.planet, b, fromCutoff, toCutoff)
	counter := newCrossingCounter(p.planet, cutting, fromCutoff, toCutoff, to)

	xDelta := b.Max.X - b.Min.X
	yDelta := b.Max.Y - b.Min.Y
	zDelta := math.Inf(1)
	if useZ {
		zDelta = b.Max.Z - b.Min.Z
	}
	switch {
	case xDelta <= yDelta && xDelta <= zDelta:
		p.xTree.traverseBounds(counter.visit, b)
	case yDelta <= xDelta && yDelta <= zDelta:
		p.yTree.traverseBounds(counter.visit, b)
	default:
		p.zTree.traverseBounds(counter.visit, b)
	}
	return counter.count, counter.onTarget
}

// Intersects reports whether any polygon edge intersects plane pl within
// all of the given bounds. notablePoints are points known to lie on pl,
// consulted when pl coincides with an edge's own supporting plane.
func (p *Polygon) Intersects(pl Plane, notablePoints []Point, bounds ...Membership) bool {
	it := &intersector{planet: p.planet, plane: pl, notable: notablePoints, bounds: bounds}
	b := NewBounds()
	pl.RecordBounds(p.planet, b)

	xDelta := b.Max.X - b.Min.X
	yDelta := b.Max.Y - b.Min.Y
	zDelta := b.Max.Z - b.Min.Z
	switch {
	case xDelta <= yDelta && xDelta <= zDelta:
		return p.xTree.traverseBounds(it.visit, b) == traverseStop
	case yDelta <= xDelta && yDelta <= zDelta:
		return p.yTree.traverseBounds(it.visit, b) == traverseStop
	default:
		return p.zTree.traverseBounds(it.visit, b) == traverseStop
	}
}

// RecordBounds extends b to cover the whole polygon boundary by walking
// each ring cycle once and folding in every edge's precomputed arc
// bounds.
func (p *Polygon) RecordBounds(b *Bounds) {
	for _, start := range p.startEdges {
		e := start
		for {
			b.Extend(e.bounds)
			e = e.next()
			if e == start {
				break
			}
		}
	}
}

// EdgePoints returns one representative boundary point per ring, for
// callers that need an anchor point known to be on each ring.
func (p *Polygon) EdgePoints() []Point {
	pts := make([]Point, len(p.edgePoints))
	copy(pts, p.edgePoints)
	return pts
}
