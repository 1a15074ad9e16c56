package transit

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"transitboard.dev/transit/geo"
	"transitboard.dev/transit/metrics"
	"transitboard.dev/transit/model"
)

// NearbyStops returns stops ordered by distance from lat,lon,
// restricted to radiusMeters. Ties in distance break on stop id.
//
// If no stop falls within the radius, the maxResults closest stops
// are returned instead of an empty list. A rider at the edge of
// coverage gets the nearest stops rather than a dead end; this
// fallback is deliberate, documented behavior.
//
// An empty stop catalog yields an empty result, not an error. If
// maxResults is <= 0, no count cap applies.
func (e *Engine) NearbyStops(ctx context.Context, lat, lon, radiusMeters float64, maxResults int) ([]model.RankedStop, error) {
	timer := prometheus.NewTimer(metrics.QueryDuration.WithLabelValues("nearby_stops"))
	defer timer.ObserveDuration()

	stops, err := e.store.Stops(ctx, e.StopCatalogCap)
	if err != nil {
		return nil, errors.Wrap(err, "fetching stop catalog")
	}

	ranked := make([]model.RankedStop, 0, len(stops))
	for _, stop := range stops {
		ranked = append(ranked, model.RankedStop{
			Stop:           stop,
			DistanceMeters: geo.DistanceMeters(lat, lon, stop.Lat, stop.Lon),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].DistanceMeters != ranked[j].DistanceMeters {
			return ranked[i].DistanceMeters < ranked[j].DistanceMeters
		}
		return ranked[i].ID < ranked[j].ID
	})

	within := ranked[:0:0]
	for _, rs := range ranked {
		if rs.DistanceMeters <= radiusMeters {
			within = append(within, rs)
		}
	}

	result := within
	if len(within) == 0 && len(ranked) > 0 {
		e.Logger.Debug().
			Float64("radius_m", radiusMeters).
			Msg("no stops in radius, falling back to closest")
		result = ranked
	}

	if maxResults > 0 && len(result) > maxResults {
		result = result[:maxResults]
	}

	return result, nil
}
