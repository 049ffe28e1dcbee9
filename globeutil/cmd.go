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
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/GaryBoone/GoStats/stats"
	"github.com/golang/geo/s2"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spatialmodel/globe"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to Globe.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "ShapeFile",
			usage: `
              ShapeFile is the path to the GeoJSON file or shapefile holding the
              polygon rings to query against. Shapefile coordinates are
              reprojected to longitude and latitude using the accompanying .prj
              file; GeoJSON coordinates are assumed to already be longitude and
              latitude. The path can include environment variables.`,
			shorthand:  "f",
			defaultVal: "shape.geojson",
			flagsets:   []*pflag.FlagSet{queryCmd.Flags(), serveCmd.Flags(), benchCmd.Flags()},
		},
		{
			name: "Planet",
			usage: `
              Planet chooses the surface model polygons lie on. Valid options
              are "sphere" and "wgs84".`,
			defaultVal: "wgs84",
			flagsets:   []*pflag.FlagSet{queryCmd.Flags(), serveCmd.Flags(), benchCmd.Flags()},
		},
		{
			name: "lat",
			usage: `
              lat is the latitude of the query point in degrees.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{queryCmd.Flags()},
		},
		{
			name: "lng",
			usage: `
              lng is the longitude of the query point in degrees.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{queryCmd.Flags()},
		},
		{
			name: "addr",
			usage: `
              addr is the address the query server listens on.`,
			defaultVal: ":8080",
			flagsets:   []*pflag.FlagSet{serveCmd.Flags()},
		},
		{
			name: "queries",
			usage: `
              queries is the number of random containment queries the benchmark
              runs.`,
			shorthand:  "n",
			defaultVal: 10000,
			flagsets:   []*pflag.FlagSet{benchCmd.Flags()},
		},
		{
			name: "seed",
			usage: `
              seed is the random seed for benchmark query point generation, so
              runs can be repeated.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{benchCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("GLOBE")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(queryCmd)
	Root.AddCommand(serveCmd)
	Root.AddCommand(benchCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("globe: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// getPlanet returns the surface model named by the Planet option.
func getPlanet(name string) (globe.Planet, error) {
	switch strings.ToLower(name) {
	case "sphere":
		return globe.Sphere, nil
	case "wgs84":
		return globe.WGS84, nil
	default:
		return globe.Planet{}, fmt.Errorf("globe: invalid Planet %q; valid options are 'sphere' and 'wgs84'", name)
	}
}

// loadConfiguredPolygon builds the query polygon from the current
// configuration.
func loadConfiguredPolygon() (*globe.Polygon, error) {
	planet, err := getPlanet(Cfg.GetString("Planet"))
	if err != nil {
		return nil, err
	}
	return LoadPolygon(Cfg.GetString("ShapeFile"), planet)
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "globe",
	Short: "A point-in-polygon engine for shapes on a planet surface.",
	Long: `Globe answers point-in-polygon and plane-intersection queries for polygons
on a spherical or ellipsoidal surface, built for shapes with very large
numbers of edges. Use the subcommands specified below to access the
functionality.

Refer to the subcommand documentation for configuration options and default
settings. Configuration can be changed by using a configuration file (and
providing the path to the file using the --config flag), by using
command-line arguments, or by setting environment variables in the format
'GLOBE_var' where 'var' is the name of the variable to be set. Many
configuration variables are additionally allowed to contain environment
variables within them.
Refer to https://github.com/spf13/viper for additional configuration
information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of Globe.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("Globe v%s\n", globe.Version)
	},
	DisableAutoGenTag: true,
}

// queryCmd answers a single containment query from the command line.
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Check whether a point is inside the polygon.",
	Long: `query builds the polygon from the configured shape file and reports
whether the point at the given latitude and longitude lies inside it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadConfiguredPolygon()
		if err != nil {
			return err
		}
		lat, err := cast.ToFloat64E(Cfg.Get("lat"))
		if err != nil {
			return fmt.Errorf("globe: invalid lat: %v", err)
		}
		lng, err := cast.ToFloat64E(Cfg.Get("lng"))
		if err != nil {
			return fmt.Errorf("globe: invalid lng: %v", err)
		}
		if p.IsWithinLatLng(s2.LatLngFromDegrees(lat, lng)) {
			cmd.Printf("(%g, %g): within\n", lat, lng)
		} else {
			cmd.Printf("(%g, %g): not within\n", lat, lng)
		}
		return nil
	},
	DisableAutoGenTag: true,
}

// serveCmd starts the HTTP query server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve containment queries over HTTP.",
	Long: `serve builds the polygon from the configured shape file and answers
containment queries at GET /within?lat=..&lng=.. until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadConfiguredPolygon()
		if err != nil {
			return err
		}
		log := logrus.StandardLogger()
		addr := Cfg.GetString("addr")
		log.WithFields(logrus.Fields{
			"addr": addr,
		}).Info("globe: starting query server")
		return http.ListenAndServe(addr, NewQueryServer(p, log))
	},
	DisableAutoGenTag: true,
}

// benchCmd measures query latency against the configured shape.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure containment query latency.",
	Long: `bench builds the polygon from the configured shape file, runs the
configured number of containment queries at random surface points, and
prints latency statistics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		p, err := loadConfiguredPolygon()
		if err != nil {
			return err
		}
		cmd.Printf("construction: %v\n", time.Since(start))

		rnd := rand.New(rand.NewSource(int64(Cfg.GetInt("seed"))))
		n := Cfg.GetInt("queries")
		var latency stats.Stats
		var within int
		for i := 0; i < n; i++ {
			ll := s2.LatLngFromDegrees(rnd.Float64()*180-90, rnd.Float64()*360-180)
			qStart := time.Now()
			if p.IsWithinLatLng(ll) {
				within++
			}
			latency.Update(time.Since(qStart).Seconds() * 1e6)
		}
		cmd.Printf("%d queries, %d within\n", n, within)
		cmd.Printf("latency µs: mean %.2f, stddev %.2f, min %.2f, max %.2f\n",
			latency.Mean(), latency.SampleStandardDeviation(), latency.Min(), latency.Max())
		return nil
	},
	DisableAutoGenTag: true,
}
