package transit

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitboard.dev/transit/model"
)

func nearbyCatalog() []model.Stop {
	return []model.Stop{
		// A at the origin, B ~1.1km east, C ~111km east.
		{ID: "C", Name: "Far", Lat: 0, Lon: 1},
		{ID: "A", Name: "Origin", Lat: 0, Lon: 0},
		{ID: "B", Name: "Near", Lat: 0, Lon: 0.01},
	}
}

func TestNearbyStopsWithinRadius(t *testing.T) {
	engine := NewEngine(&memStore{stops: nearbyCatalog()})

	stops, err := engine.NearbyStops(context.Background(), 0, 0, 2000, 5)
	require.NoError(t, err)
	require.Len(t, stops, 2)

	assert.Equal(t, "A", stops[0].ID)
	assert.Equal(t, "B", stops[1].ID)

	// Every returned stop lies within the radius, in ascending
	// distance order.
	for i, stop := range stops {
		assert.LessOrEqual(t, stop.DistanceMeters, 2000.0)
		if i > 0 {
			assert.GreaterOrEqual(t, stop.DistanceMeters, stops[i-1].DistanceMeters)
		}
	}
}

func TestNearbyStopsFallbackWhenNothingInRadius(t *testing.T) {
	engine := NewEngine(&memStore{stops: nearbyCatalog()})

	// 1 meter radius matches nothing at lat 1, but the result is
	// never empty for a non-empty catalog: the closest stops come
	// back instead.
	stops, err := engine.NearbyStops(context.Background(), 1, 0, 1, 2)
	require.NoError(t, err)
	require.Len(t, stops, 2)
	assert.Equal(t, "A", stops[0].ID)
	assert.Equal(t, "B", stops[1].ID)
	assert.Greater(t, stops[0].DistanceMeters, 1.0)
}

func TestNearbyStopsMaxResults(t *testing.T) {
	engine := NewEngine(&memStore{stops: nearbyCatalog()})

	stops, err := engine.NearbyStops(context.Background(), 0, 0, 200000, 1)
	require.NoError(t, err)
	require.Len(t, stops, 1)
	assert.Equal(t, "A", stops[0].ID)
}

func TestNearbyStopsTiesBreakOnStopID(t *testing.T) {
	engine := NewEngine(&memStore{stops: []model.Stop{
		{ID: "z", Lat: 0, Lon: 0.01},
		{ID: "a", Lat: 0, Lon: 0.01},
		{ID: "m", Lat: 0, Lon: 0.01},
	}})

	stops, err := engine.NearbyStops(context.Background(), 0, 0, 2000, 5)
	require.NoError(t, err)
	require.Len(t, stops, 3)
	assert.Equal(t, "a", stops[0].ID)
	assert.Equal(t, "m", stops[1].ID)
	assert.Equal(t, "z", stops[2].ID)
}

func TestNearbyStopsEmptyCatalog(t *testing.T) {
	engine := NewEngine(&memStore{})

	stops, err := engine.NearbyStops(context.Background(), 0, 0, 2000, 5)
	require.NoError(t, err)
	assert.NotNil(t, stops)
	assert.Empty(t, stops)
}

func TestNearbyStopsCatalogCap(t *testing.T) {
	stops := []model.Stop{}
	for i := 0; i < 20; i++ {
		stops = append(stops, model.Stop{ID: fmt.Sprintf("s%02d", i), Lat: 0, Lon: float64(i) * 0.001})
	}
	engine := NewEngine(&memStore{stops: stops})
	engine.StopCatalogCap = 5

	ranked, err := engine.NearbyStops(context.Background(), 0, 0, 1e9, 0)
	require.NoError(t, err)
	assert.Len(t, ranked, 5)
}

func TestNearbyStopsPropagatesStoreErrors(t *testing.T) {
	engine := NewEngine(&memStore{err: fmt.Errorf("boom")})

	_, err := engine.NearbyStops(context.Background(), 0, 0, 2000, 5)
	require.Error(t, err)
}
