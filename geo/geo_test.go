package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMetersSymmetric(t *testing.T) {
	pairs := [][4]float64{
		{0, 0, 0, 0.01},
		{59.33, 18.06, 40.71, -74.0},
		{-33.86, 151.2, 35.68, 139.69},
		{89.9, 0, -89.9, 180},
	}
	for _, p := range pairs {
		assert.Equal(t,
			DistanceMeters(p[0], p[1], p[2], p[3]),
			DistanceMeters(p[2], p[3], p[0], p[1]),
		)
	}
}

func TestDistanceMetersIdentity(t *testing.T) {
	assert.Equal(t, 0.0, DistanceMeters(0, 0, 0, 0))
	assert.Equal(t, 0.0, DistanceMeters(59.33, 18.06, 59.33, 18.06))
}

func TestDistanceMetersKnownValues(t *testing.T) {
	// One hundredth of a degree of longitude at the equator is
	// roughly 1.11 km.
	d := DistanceMeters(0, 0, 0, 0.01)
	assert.InDelta(t, 1112.0, d, 5.0)

	// A full degree is roughly 111 km.
	d = DistanceMeters(0, 0, 0, 1)
	assert.InDelta(t, 111195.0, d, 200.0)

	// Stockholm to Gothenburg is just under 400 km.
	d = DistanceMeters(59.3293, 18.0686, 57.7089, 11.9746)
	assert.InDelta(t, 398000, d, 5000)
}

func TestDistanceMetersNonNegative(t *testing.T) {
	assert.GreaterOrEqual(t, DistanceMeters(12.3, 45.6, 12.3001, 45.6001), 0.0)
}
