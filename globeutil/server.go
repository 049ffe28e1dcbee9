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

package globeutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/golang/geo/s2"
	"github.com/sirupsen/logrus"

	"github.com/spatialmodel/globe"
)

// QueryServer serves polygon containment queries over HTTP. The polygon
// is immutable, so the server handles concurrent requests without
// locking.
type QueryServer struct {
	// Polygon is the shape queries are answered against.
	Polygon *globe.Polygon

	Log logrus.FieldLogger

	mux *http.ServeMux
}

// NewQueryServer creates a server answering containment queries against
// polygon p.
func NewQueryServer(p *globe.Polygon, log logrus.FieldLogger) *QueryServer {
	s := &QueryServer{
		Polygon: p,
		Log:     log,
		mux:     http.NewServeMux(),
	}
	s.mux.HandleFunc("/within", s.within)
	s.mux.HandleFunc("/bounds", s.bounds)
	return s
}

func (s *QueryServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type withinResponse struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Within bool    `json:"within"`
}

// within answers GET /within?lat=..&lng=.. with a JSON containment
// result for the given geographic coordinates in degrees.
func (s *QueryServer) within(w http.ResponseWriter, r *http.Request) {
	lat, err := parseDegrees(r, "lat", 90)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	lng, err := parseDegrees(r, "lng", 180)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	within := s.Polygon.IsWithinLatLng(s2.LatLngFromDegrees(lat, lng))
	s.Log.WithFields(logrus.Fields{
		"lat":    lat,
		"lng":    lng,
		"within": within,
	}).Info("within query")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(withinResponse{Lat: lat, Lng: lng, Within: within})
}

type boundsResponse struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

// bounds answers GET /bounds with the polygon's axis-aligned bounding
// box in planet-radius units.
func (s *QueryServer) bounds(w http.ResponseWriter, r *http.Request) {
	b := globe.NewBounds()
	s.Polygon.RecordBounds(b)
	s.Log.Info("bounds query")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(boundsResponse{
		Min: [3]float64{b.Min.X, b.Min.Y, b.Min.Z},
		Max: [3]float64{b.Max.X, b.Max.Y, b.Max.Z},
	})
}

// parseDegrees reads the named query parameter as degrees, requiring it
// to be within ±limit.
func parseDegrees(r *http.Request, name string, limit float64) (float64, error) {
	v, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	if err != nil {
		return 0, fmt.Errorf("globeutil: invalid %s: %v", name, err)
	}
	if v < -limit || v > limit {
		return 0, fmt.Errorf("globeutil: %s %g is out of range [%g, %g]", name, v, -limit, limit)
	}
	return v, nil
}
