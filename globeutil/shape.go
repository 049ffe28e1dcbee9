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

// Package globeutil wires the globe containment engine to shape files,
// configuration, a command-line interface, and an HTTP query server.
package globeutil

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/proj"
	"github.com/golang/geo/s2"

	"github.com/spatialmodel/globe"
)

// longLatProj is the spatial reference shapefile rings are converted to
// before they are put on the globe.
const longLatProj = "+proj=longlat"

// LoadShape reads the polygon rings in the given GeoJSON file or
// shapefile as a single 2-D longitude/latitude polygon. The path can
// include environment variables.
func LoadShape(filename string) (geom.Polygon, error) {
	switch filepath.Ext(filename) {
	case ".shp":
		return loadShapefile(filename)
	case ".geojson", ".json":
		return loadGeoJSON(filename)
	default:
		return nil, fmt.Errorf("globeutil: invalid shape file type %s; valid types are .shp, .geojson and .json", filepath.Ext(filename))
	}
}

// loadGeoJSON returns the polygon represented by the given GeoJSON
// file, which is assumed to hold longitude/latitude coordinates.
func loadGeoJSON(filename string) (geom.Polygon, error) {
	f, err := os.Open(os.ExpandEnv(filename))
	if err != nil {
		return nil, fmt.Errorf("opening shape file: %w", err)
	}
	b, err := ioutil.ReadAll(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("reading shape file: %w", err)
	}
	// The geojson package predates MultiPolygon support, so those are
	// split into their member rings here before decoding.
	var head struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	}
	if err := json.Unmarshal(b, &head); err == nil && head.Type == "MultiPolygon" {
		var polys [][][][]float64
		if err := json.Unmarshal(head.Coordinates, &polys); err != nil {
			return nil, fmt.Errorf("decoding MultiPolygon coordinates: %w", err)
		}
		var shape geom.Polygon
		for _, poly := range polys {
			for _, ring := range poly {
				r := make([]geom.Point, len(ring))
				for i, c := range ring {
					if len(c) < 2 {
						return nil, fmt.Errorf("globeutil: MultiPolygon coordinate %v needs two values", c)
					}
					r[i] = geom.Point{X: c[0], Y: c[1]}
				}
				shape = append(shape, r)
			}
		}
		return shape, nil
	}
	j, err := geojson.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("decoding shape file GeoJSON: %w", err)
	}
	shape, ok := j.(geom.Polygon)
	if !ok {
		return nil, fmt.Errorf("globeutil: invalid shape geometry type %T", j)
	}
	return shape, nil
}

// loadShapefile returns the combined rings of all polygons in the given
// shapefile, reprojected to longitude/latitude using the accompanying
// .prj file.
func loadShapefile(filename string) (geom.Polygon, error) {
	d, err := shp.NewDecoder(os.ExpandEnv(filename))
	if err != nil {
		return nil, err
	}
	defer d.Close()
	fileSR, err := d.SR()
	if err != nil {
		return nil, err
	}
	outSR, err := proj.Parse(longLatProj)
	if err != nil {
		return nil, err
	}
	trans, err := fileSR.NewTransform(outSR)
	if err != nil {
		return nil, err
	}
	var shape geom.Polygon
	for {
		g, _, more := d.DecodeRowFields()
		if !more {
			break
		}
		gg, err := g.Transform(trans)
		if err != nil {
			return nil, err
		}
		switch p := gg.(type) {
		case geom.Polygon:
			shape = append(shape, p...)
		case geom.MultiPolygon:
			for _, pp := range p {
				shape = append(shape, pp...)
			}
		default:
			return nil, fmt.Errorf("globeutil: shapefile shapes need to be polygons but %s holds %T", filename, gg)
		}
	}
	if err := d.Error(); err != nil {
		return nil, err
	}
	return shape, nil
}

// Rings converts the rings of a 2-D longitude/latitude polygon to
// geographic coordinates for globe.NewPolygonFromLatLngs. A ring that
// repeats its first point at the end, as GeoJSON and shapefile rings
// usually do, loses the repeat: globe rings close implicitly.
func Rings(p geom.Polygon) [][]s2.LatLng {
	rings := make([][]s2.LatLng, 0, len(p))
	for _, ring := range p {
		pts := ring
		if len(pts) > 1 && pts[0].Equals(pts[len(pts)-1]) {
			pts = pts[:len(pts)-1]
		}
		if len(pts) < 3 {
			continue
		}
		lls := make([]s2.LatLng, len(pts))
		for i, pt := range pts {
			lls[i] = s2.LatLngFromDegrees(pt.Y, pt.X)
		}
		rings = append(rings, lls)
	}
	return rings
}

// TestPoint chooses a reference point of known containment for the
// given 2-D longitude/latitude polygon: the centroid when it falls
// inside the polygon, otherwise a point nudged just outside the
// polygon's bounding box. The boolean reports whether the chosen point
// is inside.
func TestPoint(p geom.Polygon) (s2.LatLng, bool, error) {
	c := p.Centroid()
	if c.Within(p) == geom.Inside {
		return s2.LatLngFromDegrees(c.Y, c.X), true, nil
	}
	b := p.Bounds()
	for _, cand := range []geom.Point{
		{X: b.Max.X + 1, Y: c.Y},
		{X: b.Min.X - 1, Y: c.Y},
		{X: c.X, Y: b.Max.Y + 1},
		{X: c.X, Y: b.Min.Y - 1},
	} {
		if cand.X < -180 || cand.X > 180 || cand.Y < -89 || cand.Y > 89 {
			// Off the globe, or so close to a pole that every
			// longitude collapses together.
			continue
		}
		if cand.Within(p) == geom.Outside {
			return s2.LatLngFromDegrees(cand.Y, cand.X), false, nil
		}
	}
	return s2.LatLng{}, false, fmt.Errorf("globeutil: cannot find a reference point of known containment for the polygon")
}

// LoadPolygon builds a globe.Polygon on planet from the rings in the
// given GeoJSON file or shapefile, deriving the reference test point
// automatically.
func LoadPolygon(filename string, planet globe.Planet) (*globe.Polygon, error) {
	shape, err := LoadShape(filename)
	if err != nil {
		return nil, err
	}
	rings := Rings(shape)
	if len(rings) == 0 {
		return nil, fmt.Errorf("globeutil: %s contains no usable rings", filename)
	}
	testPoint, inSet, err := TestPoint(shape)
	if err != nil {
		return nil, err
	}
	return globe.NewPolygonFromLatLngs(planet, rings, testPoint, inSet)
}
