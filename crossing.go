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

// A crossingCounter counts how often the polygon boundary truly crosses
// the arc of a cutting plane between two cutoff bounds. It is the visitor
// for one containment query: each query allocates its own counter, so
// concurrent queries never share state.
//
// The delicate part is a crossing that lands exactly on a ring vertex.
// Both edges meeting at that vertex report the same geometric crossing
// point, which would double-count, and a vertex where the boundary only
// touches the cutting plane without passing through it must not count at
// all. Both cases are resolved by checking which side of the cutting
// plane each edge departs toward, using a pair of planes offset just
// above and just below it.
type crossingCounter struct {
	planet Planet
	plane  Plane
	above  Plane
	below  Plane
	bound1 Membership
	bound2 Membership
	// target is the far endpoint of the cutting-plane arc. A crossing
	// that lands on it means the target itself is on the boundary.
	target Point

	count    int
	onTarget bool
}

func newCrossingCounter(planet Planet, cutting Plane, bound1, bound2 Membership, target Point) *crossingCounter {
	return &crossingCounter{
		planet: planet,
		plane:  cutting,
		above:  cutting.Offset(true),
		below:  cutting.Offset(false),
		bound1: bound1,
		bound2: bound2,
		target: target,
	}
}

// visit counts the crossings that candidate edge e contributes. It never
// stops the traversal; every candidate must be examined.
func (c *crossingCounter) visit(e *edge) traverseAction {
	for _, pt := range c.plane.FindCrossings(c.planet, e.plane, c.bound1, c.bound2, e.startPlane, e.endPlane) {
		c.countCrossing(pt, e)
	}
	return traverseContinue
}

func (c *crossingCounter) countCrossing(pt Point, e *edge) {
	if pt.ApproxEqual(c.target) {
		// The arc endpoint itself is a boundary crossing, so the target
		// lies on the polygon boundary. The crossing still takes part in
		// the ordinary count below: a relay point between two query legs
		// can land on the boundary too, and then both legs must treat
		// its crossing the same way to keep the summed parity right.
		c.onTarget = true
	}
	switch {
	case pt.ApproxEqual(e.startPoint):
		// The crossing is the vertex shared with the previous edge, so
		// this edge is the later of the two that meet there.
		edgeAbove, departs := c.departure(e)
		if !departs {
			// The edge lies in the cutting plane; a neighbor that leaves
			// the plane will make the decision for this vertex.
			return
		}
		assess, assessAbove := c.walkDeparting(e, (*edge).previous)
		// By convention the earlier edge owns a shared crossing. When
		// the cutting plane reports this vertex as a crossing of the
		// assessed edge too, the count happens there; defer here.
		for _, other := range c.plane.FindCrossings(c.planet, assess.plane, c.bound1, c.bound2, assess.startPlane, assess.endPlane) {
			if other.ApproxEqual(assess.endPoint) {
				return
			}
		}
		if assessAbove != edgeAbove {
			c.count++
		}
	case pt.ApproxEqual(e.endPoint):
		// The vertex is shared with the next edge and this edge is the
		// earlier one, so the decision is made here; when the later edge
		// sees the same vertex it will look back and defer.
		edgeAbove, departs := c.departure(e)
		if !departs {
			return
		}
		_, assessAbove := c.walkDeparting(e, (*edge).next)
		if assessAbove != edgeAbove {
			c.count++
		}
	default:
		c.count++
	}
}

// departure reports which side of the cutting plane the arc of e departs
// toward. departs is false when the arc stays within resolution of the
// plane, which means the edge itself cannot decide a vertex crossing.
func (c *crossingCounter) departure(e *edge) (above, departs bool) {
	aboveHits := c.above.FindIntersections(c.planet, e.plane, e.startPlane, e.endPlane)
	belowHits := c.below.FindIntersections(c.planet, e.plane, e.startPlane, e.endPlane)
	if len(aboveHits) > 0 && len(belowHits) > 0 {
		panic("globe: edge arc departs the cutting plane on both sides")
	}
	return len(aboveHits) > 0, len(aboveHits) > 0 || len(belowHits) > 0
}

// walkDeparting steps through the ring neighbors of e, in the direction
// given by step, until it reaches an edge that departs the cutting plane
// to one side, and reports which side that is. A full lap without any
// departing edge would mean the whole ring lies in the cutting plane,
// which no valid polygon can do.
func (c *crossingCounter) walkDeparting(e *edge, step func(*edge) *edge) (*edge, bool) {
	assess := e
	for i := 0; i < len(e.ring.edges); i++ {
		assess = step(assess)
		if above, departs := c.departure(assess); departs {
			return assess, above
		}
	}
	panic("globe: polygon ring lies entirely within the cutting plane")
}

// An intersector is the visitor for one Intersects query: it stops the
// traversal at the first edge whose arc meets the query plane within the
// given bounds.
type intersector struct {
	planet  Planet
	plane   Plane
	notable []Point
	bounds  []Membership
}

func (it *intersector) visit(e *edge) traverseAction {
	if it.plane.Intersects(it.planet, e.plane, it.notable, e.notablePoints, it.bounds, e.startPlane, e.endPlane) {
		return traverseStop
	}
	return traverseContinue
}
