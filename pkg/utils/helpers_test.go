package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	// Same point
	assert.Zero(t, Haversine(19.0760, 72.8777, 19.0760, 72.8777))

	// London to Paris, roughly 344 km
	d := Haversine(51.5074, -0.1278, 48.8566, 2.3522)
	assert.InDelta(t, 344, d, 5)

	// Seattle to San Francisco, roughly 1090 km
	d = Haversine(47.6026, -122.3393, 37.8063, -122.4659)
	assert.InDelta(t, 1090, d, 10)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5.0, Clamp(5, 0, 10))
	assert.Equal(t, 0.0, Clamp(-3, 0, 10))
	assert.Equal(t, 10.0, Clamp(42, 0, 10))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 3.14, RoundTo(3.14159, 2))
	assert.Equal(t, 3.1, RoundTo(3.14159, 1))
	assert.Equal(t, 3.0, RoundTo(3.14159, 0))
	assert.Equal(t, -2.7, RoundTo(-2.66, 1))
}
