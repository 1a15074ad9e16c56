package transit

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"transitboard.dev/transit/metrics"
	"transitboard.dev/transit/model"
)

// StopsForRoute returns the stops a route serves on the given date,
// ordered along the route and deduplicated across its trips.
//
// Different trips on the same route can number the same stops
// differently (branch variants, skipped stops), so no single trip is
// canonical. Instead each stop is positioned by the average of its
// stop_sequence values across all of the route's active trips, which
// gives a stable composite ordering. Ties break on stop id.
//
// A route with no active trips on the date yields an empty list, not
// an error.
func (e *Engine) StopsForRoute(ctx context.Context, routeID string, on time.Time) ([]model.RouteStop, error) {
	timer := prometheus.NewTimer(metrics.QueryDuration.WithLabelValues("stops_for_route"))
	defer timer.ObserveDuration()

	serviceIDs, err := e.ActiveServices(ctx, on)
	if err != nil {
		return nil, errors.Wrap(err, "resolving active services")
	}
	if len(serviceIDs) == 0 {
		return []model.RouteStop{}, nil
	}

	trips, err := e.store.TripsForRoute(ctx, routeID, serviceIDs)
	if err != nil {
		return nil, errors.Wrap(err, "fetching route trips")
	}
	if len(trips) == 0 {
		return []model.RouteStop{}, nil
	}

	tripIDs := make([]string, 0, len(trips))
	for _, trip := range trips {
		tripIDs = append(tripIDs, trip.ID)
	}

	stopTimes, err := e.store.StopTimesForTrips(ctx, tripIDs)
	if err != nil {
		return nil, errors.Wrap(err, "fetching stop times")
	}
	if len(stopTimes) == 0 {
		return []model.RouteStop{}, nil
	}

	seqSum := map[string]int{}
	seqCount := map[string]int{}
	for _, st := range stopTimes {
		seqSum[st.StopID] += st.StopSequence
		seqCount[st.StopID]++
	}

	stopIDs := make([]string, 0, len(seqSum))
	for stopID := range seqSum {
		stopIDs = append(stopIDs, stopID)
	}
	sort.Strings(stopIDs)

	stops, err := e.store.StopsByIDs(ctx, stopIDs)
	if err != nil {
		return nil, errors.Wrap(err, "fetching stops")
	}

	routeStops := make([]model.RouteStop, 0, len(stops))
	for _, stop := range stops {
		routeStops = append(routeStops, model.RouteStop{
			Stop:        stop,
			AvgSequence: float64(seqSum[stop.ID]) / float64(seqCount[stop.ID]),
		})
	}

	sort.Slice(routeStops, func(i, j int) bool {
		if routeStops[i].AvgSequence != routeStops[j].AvgSequence {
			return routeStops[i].AvgSequence < routeStops[j].AvgSequence
		}
		return routeStops[i].ID < routeStops[j].ID
	})

	return routeStops, nil
}
