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

// axis selects one of the three coordinate axes that edges are indexed
// by.
type axis int

const (
	axisX axis = iota
	axisY
	axisZ
)

func (a axis) String() string {
	switch a {
	case axisX:
		return "x"
	case axisY:
		return "y"
	default:
		return "z"
	}
}

// A ring is one closed loop of polygon boundary. Its edges are stored in
// traversal order in a single slice; the edge after the last one is the
// first one again.
type ring struct {
	edges []edge
}

// An edge is a single arc of a polygon ring, running from startPoint to
// endPoint along the circle where its supporting plane meets the planet
// surface. The supporting plane passes through both endpoints and the
// center of the planet; startPlane and endPlane cut the circle down to
// the arc. Edges are immutable once their ring is built.
type edge struct {
	ring  *ring
	index int

	startPoint Point
	endPoint   Point
	// notablePoints are points known to lie on the supporting plane,
	// used when a plane comparison degenerates to a point check.
	notablePoints []Point
	plane         Plane
	startPlane    SidedPlane
	endPlane      SidedPlane
	// bounds is the recorded extent of the arc, used as the indexing
	// key in the axis trees.
	bounds *Bounds
}

// newEdge builds the edge from start to end on planet m and stores it at
// position index in r.
func newEdge(m Planet, r *ring, index int, start, end Point) (edge, error) {
	plane, err := NewPlaneThroughPoints(start, end)
	if err != nil {
		return edge{}, err
	}
	e := edge{
		ring:          r,
		index:         index,
		startPoint:    start,
		endPoint:      end,
		notablePoints: []Point{start, end},
		plane:         plane,
		startPlane:    NewSidedPlane(end, plane, start),
		endPlane:      NewSidedPlane(start, plane, end),
		bounds:        NewBounds(),
	}
	e.plane.RecordBounds(m, e.bounds, e.startPlane, e.endPlane)
	e.bounds.extendPointFudge(start)
	e.bounds.extendPointFudge(end)
	return e, nil
}

// next returns the edge that follows e around its ring.
func (e *edge) next() *edge {
	return &e.ring.edges[(e.index+1)%len(e.ring.edges)]
}

// previous returns the edge that precedes e around its ring.
func (e *edge) previous() *edge {
	n := len(e.ring.edges)
	return &e.ring.edges[(e.index+n-1)%n]
}

// span returns the recorded extent of the edge along the given axis.
func (e *edge) span(a axis) (lo, hi float64) {
	return e.bounds.span(a)
}

// traverseAction tells an edge tree traversal whether to keep going
// after visiting an edge.
type traverseAction int

const (
	traverseContinue traverseAction = iota
	traverseStop
)

// An edgeTree indexes edges by their extent along one axis, so that all
// edges whose extent touches a query range can be visited without
// examining every edge. Insertion compares the new edge's range against
// each node three ways: entirely below goes to the lesser child,
// entirely above to the greater child, and anything else onto the
// overlaps chain. There is no rebalancing; the shape of the tree is
// determined by insertion order.
type edgeTree struct {
	axis axis
	root *treeNode
}

// A treeNode holds one edge and the edge's extent along the tree's
// axis. Edges on the overlaps chain may extend past this node's own
// range on either side, so no traversal may skip the overlaps subtree.
type treeNode struct {
	edge     *edge
	lo, hi   float64
	lesser   *treeNode
	greater  *treeNode
	overlaps *treeNode
}

func newEdgeTree(a axis) *edgeTree {
	return &edgeTree{axis: a}
}

// add inserts e into the tree.
func (t *edgeTree) add(e *edge) {
	lo, hi := e.span(t.axis)
	n := &treeNode{edge: e, lo: lo, hi: hi}
	if t.root == nil {
		t.root = n
		return
	}
	cur := t.root
	for {
		switch {
		case hi < cur.lo:
			if cur.lesser == nil {
				cur.lesser = n
				return
			}
			cur = cur.lesser
		case lo > cur.hi:
			if cur.greater == nil {
				cur.greater = n
				return
			}
			cur = cur.greater
		default:
			if cur.overlaps == nil {
				cur.overlaps = n
				return
			}
			cur = cur.overlaps
		}
	}
}

// traverse calls visit for every edge whose recorded extent touches the
// range [lo, hi], stopping early when visit returns traverseStop. The
// returned action is traverseStop if the traversal was cut short.
func (t *edgeTree) traverse(visit func(*edge) traverseAction, lo, hi float64) traverseAction {
	return t.root.traverse(visit, lo, hi)
}

func (n *treeNode) traverse(visit func(*edge) traverseAction, lo, hi float64) traverseAction {
	if n == nil {
		return traverseContinue
	}
	switch {
	case hi < n.lo:
		// The query is entirely below this node, so nothing in the
		// greater subtree can touch it.
		if n.lesser.traverse(visit, lo, hi) == traverseStop {
			return traverseStop
		}
	case lo > n.hi:
		if n.greater.traverse(visit, lo, hi) == traverseStop {
			return traverseStop
		}
	default:
		if visit(n.edge) == traverseStop {
			return traverseStop
		}
		if n.lesser.traverse(visit, lo, hi) == traverseStop {
			return traverseStop
		}
		if n.greater.traverse(visit, lo, hi) == traverseStop {
			return traverseStop
		}
	}
	// Overlapping edges can stick out past this node's range on either
	// side, so the overlaps chain is visited no matter how the query
	// compares to this node.
	return n.overlaps.traverse(visit, lo, hi)
}

// traverseBounds is a convenience that traverses using the extent of b
// along the tree's axis.
func (t *edgeTree) traverseBounds(visit func(*edge) traverseAction, b *Bounds) traverseAction {
	lo, hi := b.span(t.axis)
	return t.traverse(visit, lo, hi)
}
