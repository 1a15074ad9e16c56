package transit

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"transitboard.dev/transit/metrics"
	"transitboard.dev/transit/model"
)

const secondsPerDay = 86400

// etaMinutes computes whole minutes until a scheduled instant,
// relative to the wall clock of at. targetSeconds is an offset past
// service day midnight and may exceed 86399 for past-midnight trips.
// A target earlier in the clock than now is taken to mean the next
// calendar day, wrapping exactly once; targets two or more days out
// are not representable.
func etaMinutes(targetSeconds int, at time.Time) int {
	nowSeconds := at.Hour()*3600 + at.Minute()*60 + at.Second()
	aheadSeconds := targetSeconds - nowSeconds
	if aheadSeconds < 0 {
		aheadSeconds += secondsPerDay
	}
	return int(math.Round(float64(aheadSeconds) / 60))
}

// Departures assembles the departure board for a stop: every
// scheduled departure of a service active on at's date, with ETA in
// whole minutes relative to at, ascending, deduplicated, capped at
// limit and restricted to [0, horizonMinutes].
//
// A horizonMinutes <= 0 means the default horizon; limit <= 0 means
// no count cap. Empty results at any join stage (no active services,
// no trips, no stop times) yield an empty board, not an error.
func (e *Engine) Departures(ctx context.Context, stopID string, at time.Time, limit, horizonMinutes int) ([]model.Departure, error) {
	timer := prometheus.NewTimer(metrics.QueryDuration.WithLabelValues("departures"))
	defer timer.ObserveDuration()

	if horizonMinutes <= 0 {
		horizonMinutes = DefaultHorizonMinutes
	}

	serviceIDs, err := e.ActiveServices(ctx, at)
	if err != nil {
		return nil, errors.Wrap(err, "resolving active services")
	}
	if len(serviceIDs) == 0 {
		return []model.Departure{}, nil
	}

	trips, err := e.store.TripsByServiceIDs(ctx, serviceIDs)
	if err != nil {
		return nil, errors.Wrap(err, "fetching active trips")
	}
	if len(trips) == 0 {
		return []model.Departure{}, nil
	}

	tripByID := make(map[string]model.Trip, len(trips))
	tripIDs := make([]string, 0, len(trips))
	for _, trip := range trips {
		tripByID[trip.ID] = trip
		tripIDs = append(tripIDs, trip.ID)
	}

	stopTimes, err := e.store.StopTimesForStop(ctx, stopID, tripIDs)
	if err != nil {
		return nil, errors.Wrap(err, "fetching stop times")
	}
	if len(stopTimes) == 0 {
		return []model.Departure{}, nil
	}

	routeIDSet := map[string]bool{}
	for _, st := range stopTimes {
		routeIDSet[tripByID[st.TripID].RouteID] = true
	}
	routeIDs := make([]string, 0, len(routeIDSet))
	for routeID := range routeIDSet {
		routeIDs = append(routeIDs, routeID)
	}
	sort.Strings(routeIDs)

	routes, err := e.store.RoutesByIDs(ctx, routeIDs)
	if err != nil {
		return nil, errors.Wrap(err, "fetching routes")
	}
	routeByID := make(map[string]model.Route, len(routes))
	for _, route := range routes {
		routeByID[route.ID] = route
	}

	type dedupeKey struct {
		tripID    string
		scheduled string
	}
	seen := map[dedupeKey]bool{}

	departures := []model.Departure{}
	for _, st := range stopTimes {
		scheduled := st.Scheduled()
		if scheduled == "" {
			continue
		}

		targetSeconds, err := model.ParseTime(scheduled)
		if err != nil {
			// A single bad row shouldn't take down the
			// whole board.
			e.Logger.Warn().
				Str("trip_id", st.TripID).
				Str("time", scheduled).
				Msg("skipping unparseable stop time")
			continue
		}

		eta := etaMinutes(targetSeconds, at)
		if eta > horizonMinutes {
			continue
		}

		key := dedupeKey{st.TripID, scheduled}
		if seen[key] {
			continue
		}
		seen[key] = true

		trip := tripByID[st.TripID]
		route := routeByID[trip.RouteID]
		departures = append(departures, model.Departure{
			TripID:         trip.ID,
			RouteID:        trip.RouteID,
			RouteShortName: route.ShortName,
			RouteLongName:  route.LongName,
			Headsign:       trip.Headsign,
			Scheduled:      scheduled,
			ETAMinutes:     eta,
		})
	}

	sort.Slice(departures, func(i, j int) bool {
		if departures[i].ETAMinutes != departures[j].ETAMinutes {
			return departures[i].ETAMinutes < departures[j].ETAMinutes
		}
		if departures[i].Scheduled != departures[j].Scheduled {
			return departures[i].Scheduled < departures[j].Scheduled
		}
		return departures[i].TripID < departures[j].TripID
	})

	if limit > 0 && len(departures) > limit {
		departures = departures[:limit]
	}

	return departures, nil
}

// GroupByRoute reorganizes a departure list into per-route groups for
// display, each group's departures ordered as given and groups
// ordered by their earliest ETA. Pure projection, no extra fetches.
func GroupByRoute(departures []model.Departure) []model.DepartureGroup {
	byRoute := map[string]*model.DepartureGroup{}
	order := []string{}

	for _, dep := range departures {
		group, found := byRoute[dep.RouteID]
		if !found {
			group = &model.DepartureGroup{
				RouteID:        dep.RouteID,
				RouteShortName: dep.RouteShortName,
				RouteLongName:  dep.RouteLongName,
			}
			byRoute[dep.RouteID] = group
			order = append(order, dep.RouteID)
		}
		group.Departures = append(group.Departures, dep)
	}

	groups := make([]model.DepartureGroup, 0, len(order))
	for _, routeID := range order {
		groups = append(groups, *byRoute[routeID])
	}

	// Input is ETA sorted, so first occurrence order is earliest
	// ETA order already. Sort anyway for callers passing their own
	// ordering.
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Departures[0].ETAMinutes < groups[j].Departures[0].ETAMinutes
	})

	return groups
}
