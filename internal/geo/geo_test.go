package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_KnownCities(t *testing.T) {
	gaz := DefaultGazetteer()

	c, ok := gaz.Resolve("Bengaluru")
	assert.True(t, ok)
	assert.InDelta(t, 12.9716, c.Lat, 0.001)

	// Aliases resolve to the same coordinates.
	alias, ok := gaz.Resolve("bangalore")
	assert.True(t, ok)
	assert.Equal(t, c, alias)
}

func TestResolve_Unknown(t *testing.T) {
	gaz := DefaultGazetteer()

	_, ok := gaz.Resolve("Atlantis")
	assert.False(t, ok)

	_, ok = gaz.Resolve("")
	assert.False(t, ok)

	// "remote" is not a place.
	_, ok = gaz.Resolve("remote")
	assert.False(t, ok)
}

func TestResolve_TrimsAndLowercases(t *testing.T) {
	gaz := DefaultGazetteer()

	c, ok := gaz.Resolve("  NEW YORK  ")
	assert.True(t, ok)
	assert.InDelta(t, 40.7128, c.Lat, 0.001)
}

func TestHaversineKm_BengaluruMumbai(t *testing.T) {
	gaz := DefaultGazetteer()
	a, _ := gaz.Resolve("bengaluru")
	b, _ := gaz.Resolve("mumbai")

	km := HaversineKm(a, b)
	assert.InDelta(t, 843, km, 10)
}

func TestHaversineKm_SamePoint(t *testing.T) {
	c := Coords{51.5074, -0.1278}
	assert.InDelta(t, 0, HaversineKm(c, c), 0.001)
}

func TestDistanceScore_DeadZone(t *testing.T) {
	assert.Equal(t, 1.0, DistanceScore(0))
	assert.Equal(t, 1.0, DistanceScore(2))
}

func TestDistanceScore_HalfLife(t *testing.T) {
	// 200km past the dead zone should halve the score.
	assert.InDelta(t, 0.5, DistanceScore(202), 0.001)
	assert.InDelta(t, 0.25, DistanceScore(402), 0.001)
}

func TestDistanceScore_Monotonic(t *testing.T) {
	prev := 1.0
	for km := 0.0; km <= 2000; km += 50 {
		score := DistanceScore(km)
		assert.LessOrEqual(t, score, prev, "score must not increase with distance (km=%v)", km)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
		prev = score
	}
}

func TestDistanceScore_FarApart(t *testing.T) {
	gaz := DefaultGazetteer()
	a, _ := gaz.Resolve("bengaluru")
	b, _ := gaz.Resolve("mumbai")

	// ~843km is far past the half-life, so the score is small but positive.
	score := DistanceScore(HaversineKm(a, b))
	assert.InDelta(t, 0.05, score, 0.01)
}
