package tableapi

import (
	"context"
	"time"

	"transitboard.dev/transit/model"
)

// Typed accessors for the transit tables. These are thin projections
// over Rows/RowsByIDSet and together satisfy the engine's Store
// interface.

// Stops returns the stop catalog, capped at limit rows. The cap
// bounds the transfer; callers pass a safety cap rather than trusting
// the remote side to stay small.
func (c *Client) Stops(ctx context.Context, limit int) ([]model.Stop, error) {
	return Rows[model.Stop](ctx, c, "stops", Query{Order: "stop_id", Limit: limit})
}

func (c *Client) StopsByIDs(ctx context.Context, ids []string) ([]model.Stop, error) {
	return RowsByIDSet[model.Stop](ctx, c, "stops", "stop_id", ids, Query{})
}

func (c *Client) RoutesByIDs(ctx context.Context, ids []string) ([]model.Route, error) {
	return RowsByIDSet[model.Route](ctx, c, "routes", "route_id", ids, Query{})
}

func (c *Client) RoutesByShortName(ctx context.Context, shortName string) ([]model.Route, error) {
	return Rows[model.Route](ctx, c, "routes", Query{
		Filters: []Filter{Eq("route_short_name", shortName)},
	})
}

func (c *Client) TripsByServiceIDs(ctx context.Context, serviceIDs []string) ([]model.Trip, error) {
	return RowsByIDSet[model.Trip](ctx, c, "trips", "service_id", serviceIDs, Query{})
}

func (c *Client) TripsForRoute(ctx context.Context, routeID string, serviceIDs []string) ([]model.Trip, error) {
	return RowsByIDSet[model.Trip](ctx, c, "trips", "service_id", serviceIDs, Query{
		Filters: []Filter{Eq("route_id", routeID)},
	})
}

func (c *Client) StopTimesForStop(ctx context.Context, stopID string, tripIDs []string) ([]model.StopTime, error) {
	return RowsByIDSet[model.StopTime](ctx, c, "stop_times", "trip_id", tripIDs, Query{
		Filters: []Filter{Eq("stop_id", stopID)},
	})
}

func (c *Client) StopTimesForTrips(ctx context.Context, tripIDs []string) ([]model.StopTime, error) {
	return RowsByIDSet[model.StopTime](ctx, c, "stop_times", "trip_id", tripIDs, Query{})
}

// CalendarsForWeekday returns calendar rows whose weekly flag for the
// given weekday is set. Date range membership is filtered by the
// caller; the remote side only sees the flag filter.
func (c *Client) CalendarsForWeekday(ctx context.Context, day time.Weekday) ([]model.Calendar, error) {
	return Rows[model.Calendar](ctx, c, "calendar", Query{
		Filters: []Filter{Eq(model.WeekdayColumn(day), "1")},
	})
}

func (c *Client) CalendarDatesOn(ctx context.Context, date string) ([]model.CalendarDate, error) {
	return Rows[model.CalendarDate](ctx, c, "calendar_dates", Query{
		Filters: []Filter{Eq("date", date)},
	})
}
