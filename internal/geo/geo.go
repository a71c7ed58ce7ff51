// Package geo provides place-name resolution against a static gazetteer and
// distance-based similarity scoring for the matching engine.
package geo

import (
	"math"
	"strings"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

const (
	// deadZoneKm is the distance under which two places score as identical.
	deadZoneKm = 2.0
	// halfLifeKm halves the score every 200km beyond the dead zone.
	halfLifeKm = 200.0
)

// Coords is a latitude/longitude pair in decimal degrees.
type Coords struct {
	Lat float64
	Lon float64
}

// Gazetteer maps lowercased place names to coordinates. It is immutable after
// construction and safe for concurrent lookups.
type Gazetteer map[string]Coords

// Resolve looks up a place name. The second return value is false when the
// place is unknown; callers fall back to string heuristics in that case.
func (g Gazetteer) Resolve(place string) (Coords, bool) {
	key := strings.ToLower(strings.TrimSpace(place))
	if key == "" {
		return Coords{}, false
	}
	c, ok := g[key]
	return c, ok
}

// DefaultGazetteer returns the built-in city table, including common aliases.
// There is deliberately no network geocoding fallback.
func DefaultGazetteer() Gazetteer {
	return Gazetteer{
		"san francisco": {37.7749, -122.4194},
		"sf":            {37.7749, -122.4194},
		"new york":      {40.7128, -74.0060},
		"nyc":           {40.7128, -74.0060},
		"london":        {51.5074, -0.1278},
		"singapore":     {1.3521, 103.8198},
		"bengaluru":     {12.9716, 77.5946},
		"bangalore":     {12.9716, 77.5946},
		"mumbai":        {19.0760, 72.8777},
		"delhi":         {28.6139, 77.2090},
		"hyderabad":     {17.3850, 78.4867},
		"chennai":       {13.0827, 80.2707},
		"pune":          {18.5204, 73.8567},
		"kolkata":       {22.5726, 88.3639},
	}
}

// HaversineKm returns the great-circle distance between two coordinates in
// kilometers.
func HaversineKm(a, b Coords) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	s := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*math.Pow(math.Sin(dLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(s), math.Sqrt(1-s))

	return EarthRadiusKm * c
}

// DistanceScore converts a distance in kilometers into a similarity score in
// [0,1]. Distances within the dead zone score 1.0; beyond it the score decays
// exponentially, halving every 200km.
func DistanceScore(km float64) float64 {
	if math.IsNaN(km) || math.IsInf(km, 0) {
		return 0
	}
	if km <= deadZoneKm {
		return 1.0
	}
	lambda := math.Ln2 / halfLifeKm
	score := math.Exp(-lambda * (km - deadZoneKm))
	return math.Max(0, math.Min(1, score))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
