// Package transit answers schedule queries (nearby stops, departure
// boards, route stop sequences) over a remote, per-table data source.
// The remote side performs no joins; everything is reassembled client
// side from narrow per-table reads.
package transit

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"transitboard.dev/transit/model"
)

const (
	// DefaultStopCatalogCap bounds the stop catalog transfer for
	// nearby queries.
	DefaultStopCatalogCap = 1000

	// DefaultHorizonMinutes is the look-ahead window for departure
	// boards when the caller passes no horizon.
	DefaultHorizonMinutes = 120
)

// Store is the narrow read surface the engine needs from the remote
// data source. tableapi.Client is the production implementation. "No
// rows" is always an empty slice, never an error.
type Store interface {
	Stops(ctx context.Context, limit int) ([]model.Stop, error)
	StopsByIDs(ctx context.Context, ids []string) ([]model.Stop, error)
	RoutesByIDs(ctx context.Context, ids []string) ([]model.Route, error)
	RoutesByShortName(ctx context.Context, shortName string) ([]model.Route, error)
	TripsByServiceIDs(ctx context.Context, serviceIDs []string) ([]model.Trip, error)
	TripsForRoute(ctx context.Context, routeID string, serviceIDs []string) ([]model.Trip, error)
	StopTimesForStop(ctx context.Context, stopID string, tripIDs []string) ([]model.StopTime, error)
	StopTimesForTrips(ctx context.Context, tripIDs []string) ([]model.StopTime, error)
	CalendarsForWeekday(ctx context.Context, day time.Weekday) ([]model.Calendar, error)
	CalendarDatesOn(ctx context.Context, date string) ([]model.CalendarDate, error)
}

// Engine is the query engine. It owns no state beyond its
// configuration; every query fetches fresh rows, so concurrent use
// needs no locking.
type Engine struct {
	// StopCatalogCap caps how many stops a nearby query will pull.
	StopCatalogCap int

	Logger zerolog.Logger

	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{
		StopCatalogCap: DefaultStopCatalogCap,
		Logger:         zerolog.Nop(),
		store:          store,
	}
}

// RoutesByShortName looks up routes by their rider facing short name.
// Plain equality, no joins.
func (e *Engine) RoutesByShortName(ctx context.Context, shortName string) ([]model.Route, error) {
	return e.store.RoutesByShortName(ctx, shortName)
}
