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
	"sync"
	"testing"

	"github.com/golang/geo/s2"
)

// squareRing returns a ring of the four corners of a square spanning
// ±halfwidth degrees of latitude and longitude around (0, 0).
func squareRing(planet Planet, halfwidth float64) []Point {
	return []Point{
		planet.PointFromDegrees(-halfwidth, -halfwidth),
		planet.PointFromDegrees(-halfwidth, halfwidth),
		planet.PointFromDegrees(halfwidth, halfwidth),
		planet.PointFromDegrees(halfwidth, -halfwidth),
	}
}

// squarePolygon returns the ±10° square with an interior test point at
// (0, 5).
func squarePolygon(t *testing.T) *Polygon {
	t.Helper()
	p, err := NewPolygon(Sphere, [][]Point{squareRing(Sphere, 10)},
		Sphere.PointFromDegrees(0, 5), true)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestPolygonTestPointIdentity(t *testing.T) {
	p := squarePolygon(t)
	if !p.IsWithin(Sphere.PointFromDegrees(0, 5)) {
		t.Error("the test point itself must report its own containment flag")
	}
	// The same location reconstructed through different arithmetic
	// must hit the identity fast path too.
	tp := Sphere.PointFromDegrees(0, 5)
	rebuilt := NewPoint(tp.X/7*7, tp.Y+0, tp.Z*1)
	if !p.IsWithin(rebuilt) {
		t.Error("a reconstructed test point must report the containment flag")
	}

	// An exterior test point with a false flag reports false for
	// itself.
	out, err := NewPolygon(Sphere, [][]Point{squareRing(Sphere, 10)},
		Sphere.PointFromDegrees(0, 40), false)
	if err != nil {
		t.Fatal(err)
	}
	if out.IsWithin(Sphere.PointFromDegrees(0, 40)) {
		t.Error("an exterior test point must report false")
	}
}

func TestPolygonSquare(t *testing.T) {
	p := squarePolygon(t)
	tests := []struct {
		lat, lng float64
		want     bool
	}{
		{0, 0, true},
		{5, 5, true},
		{5, -5, true},
		{-5, -5, true},
		{9, 9, true},
		{0, 100, false},
		{50, 0, false},
		{-30, 0, false},
		{0, -15, false},
		{11, 0, false},
		{0, 180, false},
	}
	for _, test := range tests {
		if have := p.IsWithinLatLng(s2.LatLngFromDegrees(test.lat, test.lng)); have != test.want {
			t.Errorf("(%g, %g): have %v, want %v", test.lat, test.lng, have, test.want)
		}
	}
}

// The same square queried from an exterior reference point must give
// the same answers: parity inverts, results do not.
func TestPolygonExteriorTestPoint(t *testing.T) {
	p, err := NewPolygon(Sphere, [][]Point{squareRing(Sphere, 10)},
		Sphere.PointFromDegrees(0, 40), false)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		lat, lng float64
		want     bool
	}{
		{0, 0, true},
		{5, -5, true},
		{0, 60, false},
		{-40, 0, false},
	}
	for _, test := range tests {
		if have := p.IsWithinLatLng(s2.LatLngFromDegrees(test.lat, test.lng)); have != test.want {
			t.Errorf("(%g, %g): have %v, want %v", test.lat, test.lng, have, test.want)
		}
	}
}

// Boundary points count as inside: both an edge midpoint and a ring
// vertex.
func TestPolygonBoundaryInclusive(t *testing.T) {
	ring := squareRing(Sphere, 10)
	p, err := NewPolygon(Sphere, [][]Point{ring}, Sphere.PointFromDegrees(0, 0), true)
	if err != nil {
		t.Fatal(err)
	}
	// The arc midpoint of the northern edge, at longitude 0.
	top1 := Sphere.PointFromDegrees(10, 10)
	top2 := Sphere.PointFromDegrees(10, -10)
	mid := Point{top1.Add(top2.Vector).Normalize()}
	if !p.IsWithin(mid) {
		t.Error("an edge midpoint should count as inside")
	}
	for _, corner := range ring {
		if !p.IsWithin(corner) {
			t.Errorf("ring vertex %+v should count as inside", corner.Vector)
		}
	}
}

func TestPolygonWithHole(t *testing.T) {
	outer := squareRing(Sphere, 30)
	hole := squareRing(Sphere, 10)
	p, err := NewPolygon(Sphere, [][]Point{outer, hole},
		Sphere.PointFromDegrees(0, 20), true)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		lat, lng float64
		want     bool
	}{
		{0, 0, false},  // inside the hole
		{5, 5, false},  // inside the hole
		{0, 25, true},  // between hole and outer boundary
		{20, 0, true},  // above the hole, inside the outer ring
		{0, -20, true}, // other side of the hole
		{0, 40, false}, // outside the outer ring
		{45, 0, false}, // outside the outer ring
	}
	for _, test := range tests {
		if have := p.IsWithinLatLng(s2.LatLngFromDegrees(test.lat, test.lng)); have != test.want {
			t.Errorf("(%g, %g): have %v, want %v", test.lat, test.lng, have, test.want)
		}
	}
}

// A query at the exact antipode of the test point cannot use a single
// arc: the cutoffs between antipodal points degenerate. The journey is
// split at a waypoint instead.
func TestPolygonAntipode(t *testing.T) {
	p, err := NewPolygon(WGS84, [][]Point{squareRing(WGS84, 10)},
		WGS84.PointFromDegrees(0, 0), true)
	if err != nil {
		t.Fatal(err)
	}
	if p.IsWithinLatLng(s2.LatLngFromDegrees(0, 180)) {
		t.Error("the test point's antipode should be outside the square")
	}
	if p.IsWithinLatLng(s2.LatLngFromDegrees(0, -179)) {
		t.Error("(0, -179) should be outside the square")
	}

	// A polygon that does contain the antipode.
	far, err := NewPolygon(WGS84, [][]Point{{
		WGS84.PointFromDegrees(-10, 170),
		WGS84.PointFromDegrees(-10, -170),
		WGS84.PointFromDegrees(10, -170),
		WGS84.PointFromDegrees(10, 170),
	}}, WGS84.PointFromDegrees(0, 0), false)
	if err != nil {
		t.Fatal(err)
	}
	if !far.IsWithinLatLng(s2.LatLngFromDegrees(0, 180)) {
		t.Error("the test point's antipode should be inside the far square")
	}

	// A polar test point exercises the stand-in cutting plane together
	// with the antipode split.
	polar, err := NewPolygon(Sphere, [][]Point{{
		Sphere.PointFromDegrees(80, 45),
		Sphere.PointFromDegrees(80, 135),
		Sphere.PointFromDegrees(80, -135),
		Sphere.PointFromDegrees(80, -45),
	}}, Sphere.PointFromDegrees(90, 0), true)
	if err != nil {
		t.Fatal(err)
	}
	if polar.IsWithinLatLng(s2.LatLngFromDegrees(-90, 0)) {
		t.Error("the south pole should be outside the polar cap")
	}
}

func TestPolygonRingCycle(t *testing.T) {
	outer := squareRing(Sphere, 30)
	hole := squareRing(Sphere, 10)
	p, err := NewPolygon(Sphere, [][]Point{outer, hole},
		Sphere.PointFromDegrees(0, 20), true)
	if err != nil {
		t.Fatal(err)
	}
	for ri, r := range p.rings {
		n := len(r.edges)
		e := &r.edges[0]
		seen := map[*edge]bool{}
		for i := 0; i < n; i++ {
			if seen[e] {
				t.Fatalf("ring %d: edge revisited before the cycle closed", ri)
			}
			seen[e] = true
			if e.previous().next() != e {
				t.Errorf("ring %d: previous then next should return the same edge", ri)
			}
			e = e.next()
		}
		if e != &r.edges[0] {
			t.Errorf("ring %d: %d next steps should return to the start edge", ri, n)
		}
	}
}

// The three axis trees index the same edge set, so forcing the same
// crossing query through each must give identical counts.
func TestPolygonAxisIndependence(t *testing.T) {
	p := squarePolygon(t)
	cutting, ok := NewMeridianPlane(1, 0)
	if !ok {
		t.Fatal("no meridian plane")
	}
	counts := make([]int, 3)
	for i, tree := range []*edgeTree{p.xTree, p.yTree, p.zTree} {
		c := newCrossingCounter(Sphere, cutting, everywhere{}, everywhere{}, farPoint)
		tree.traverse(c.visit, -1.1, 1.1)
		counts[i] = c.count
	}
	if counts[0] != counts[1] || counts[1] != counts[2] {
		t.Errorf("axis trees disagree on crossing counts: %v", counts)
	}
	// The full meridian circle crosses the square's boundary at its
	// northern and southern edges.
	if counts[0] != 2 {
		t.Errorf("have %d crossings for the full meridian, want 2", counts[0])
	}
}

func TestPolygonIntersects(t *testing.T) {
	p := squarePolygon(t)
	meridian0, _ := NewMeridianPlane(1, 0)
	notable0 := []Point{NewPoint(1, 0, 0), NewPoint(0, 0, 1), NewPoint(-1, 0, 0), NewPoint(0, 0, -1)}
	if !p.Intersects(meridian0, notable0) {
		t.Error("the longitude-0 meridian plane should intersect the square")
	}

	meridian90, _ := NewMeridianPlane(0, 1)
	notable90 := []Point{NewPoint(0, 1, 0), NewPoint(0, 0, 1), NewPoint(0, -1, 0), NewPoint(0, 0, -1)}
	if p.Intersects(meridian90, notable90) {
		t.Error("the longitude-90 meridian plane should miss the square")
	}

	// A bound that excludes the hemisphere holding the square turns the
	// intersection off.
	farSide, err := NewSidedPlaneFromPoints(NewPoint(-1, 0, 0), NewPoint(0, 1, 0), NewPoint(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if p.Intersects(meridian0, notable0, farSide) {
		t.Error("bounded away from the square, no intersection should be found")
	}
}

func TestPolygonRecordBounds(t *testing.T) {
	ring := squareRing(Sphere, 10)
	p, err := NewPolygon(Sphere, [][]Point{ring}, Sphere.PointFromDegrees(0, 0), true)
	if err != nil {
		t.Fatal(err)
	}
	b := NewBounds()
	p.RecordBounds(b)
	if b.Empty() {
		t.Fatal("bounds of a polygon should not be empty")
	}
	for _, pt := range ring {
		if pt.X < b.Min.X || pt.X > b.Max.X ||
			pt.Y < b.Min.Y || pt.Y > b.Max.Y ||
			pt.Z < b.Min.Z || pt.Z > b.Max.Z {
			t.Errorf("ring point %+v outside recorded bounds %+v", pt.Vector, b)
		}
	}
	// The boundary stays near the square: z never exceeds the bulge of
	// the northern edge and x stays in the positive hemisphere.
	if b.Max.Z > math.Sin(11.0/180*math.Pi) {
		t.Errorf("have max z %v, want at most the northern edge bulge", b.Max.Z)
	}
	if b.Min.X < 0.9 {
		t.Errorf("have min x %v, want at least 0.9", b.Min.X)
	}
}

func TestPolygonEdgePoints(t *testing.T) {
	outer := squareRing(Sphere, 30)
	hole := squareRing(Sphere, 10)
	p, err := NewPolygon(Sphere, [][]Point{outer, hole},
		Sphere.PointFromDegrees(0, 20), true)
	if err != nil {
		t.Fatal(err)
	}
	pts := p.EdgePoints()
	if len(pts) != 2 {
		t.Fatalf("have %d edge points, want one per ring", len(pts))
	}
	if !pts[0].ApproxEqual(outer[len(outer)-1]) || !pts[1].ApproxEqual(hole[len(hole)-1]) {
		t.Error("each edge point should be its ring's last input point")
	}
}

func TestNewPolygonErrors(t *testing.T) {
	if _, err := NewPolygon(Sphere, nil, NewPoint(1, 0, 0), false); err == nil {
		t.Error("no rings should be an error")
	}
	short := [][]Point{{Sphere.PointFromDegrees(0, 0), Sphere.PointFromDegrees(0, 10)}}
	if _, err := NewPolygon(Sphere, short, NewPoint(1, 0, 0), false); err == nil {
		t.Error("a two-point ring should be an error")
	}
	dup := [][]Point{{
		Sphere.PointFromDegrees(0, 0),
		Sphere.PointFromDegrees(0, 0),
		Sphere.PointFromDegrees(10, 10),
	}}
	if _, err := NewPolygon(Sphere, dup, NewPoint(0, 1, 0), false); err == nil {
		t.Error("adjacent coincident points should be an error")
	}
}

func TestNewPolygonFromLatLngs(t *testing.T) {
	rings := [][]s2.LatLng{{
		s2.LatLngFromDegrees(-10, -10),
		s2.LatLngFromDegrees(-10, 10),
		s2.LatLngFromDegrees(10, 10),
		s2.LatLngFromDegrees(10, -10),
	}}
	p, err := NewPolygonFromLatLngs(WGS84, rings, s2.LatLngFromDegrees(0, 0), true)
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsWithinLatLng(s2.LatLngFromDegrees(3, -3)) {
		t.Error("(3, -3) should be inside the square")
	}
	if p.IsWithinLatLng(s2.LatLngFromDegrees(3, 30)) {
		t.Error("(3, 30) should be outside the square")
	}
}

func TestPolygonConcurrent(t *testing.T) {
	p := squarePolygon(t)
	queries := []struct {
		lat, lng float64
		want     bool
	}{
		{0, 0, true},
		{5, 5, true},
		{0, 100, false},
		{50, 0, false},
	}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rep := 0; rep < 50; rep++ {
				for _, q := range queries {
					if have := p.IsWithinLatLng(s2.LatLngFromDegrees(q.lat, q.lng)); have != q.want {
						t.Errorf("(%g, %g): have %v, want %v", q.lat, q.lng, have, q.want)
					}
				}
			}
		}()
	}
	wg.Wait()
}

func BenchmarkIsWithin(b *testing.B) {
	// A many-edged ring approximating a circle of radius 20° around
	// (0, 0).
	const n = 1024
	ring := make([]Point, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / n
		ring[i] = Sphere.PointFromDegrees(20*math.Sin(theta), 20*math.Cos(theta))
	}
	p, err := NewPolygon(Sphere, [][]Point{ring}, Sphere.PointFromDegrees(0, 0), true)
	if err != nil {
		b.Fatal(err)
	}
	queries := []Point{
		Sphere.PointFromDegrees(5, 5),
		Sphere.PointFromDegrees(0, 30),
		Sphere.PointFromDegrees(-45, 120),
		Sphere.PointFromDegrees(19, 0),
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.IsWithin(queries[i%len(queries)])
	}
}
