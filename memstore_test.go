package transit

import (
	"context"
	"time"

	"transitboard.dev/transit/model"
)

// In memory Store used by the engine tests. Filtering mirrors what
// the remote table API would do server side; no more, no less.
type memStore struct {
	stops         []model.Stop
	routes        []model.Route
	trips         []model.Trip
	stopTimes     []model.StopTime
	calendars     []model.Calendar
	calendarDates []model.CalendarDate

	// When set, every method fails with this error.
	err error
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func (m *memStore) Stops(ctx context.Context, limit int) ([]model.Stop, error) {
	if m.err != nil {
		return nil, m.err
	}
	stops := append([]model.Stop{}, m.stops...)
	if limit > 0 && len(stops) > limit {
		stops = stops[:limit]
	}
	return stops, nil
}

func (m *memStore) StopsByIDs(ctx context.Context, ids []string) ([]model.Stop, error) {
	if m.err != nil {
		return nil, m.err
	}
	set := idSet(ids)
	stops := []model.Stop{}
	for _, stop := range m.stops {
		if set[stop.ID] {
			stops = append(stops, stop)
		}
	}
	return stops, nil
}

func (m *memStore) RoutesByIDs(ctx context.Context, ids []string) ([]model.Route, error) {
	if m.err != nil {
		return nil, m.err
	}
	set := idSet(ids)
	routes := []model.Route{}
	for _, route := range m.routes {
		if set[route.ID] {
			routes = append(routes, route)
		}
	}
	return routes, nil
}

func (m *memStore) RoutesByShortName(ctx context.Context, shortName string) ([]model.Route, error) {
	if m.err != nil {
		return nil, m.err
	}
	routes := []model.Route{}
	for _, route := range m.routes {
		if route.ShortName == shortName {
			routes = append(routes, route)
		}
	}
	return routes, nil
}

func (m *memStore) TripsByServiceIDs(ctx context.Context, serviceIDs []string) ([]model.Trip, error) {
	if m.err != nil {
		return nil, m.err
	}
	set := idSet(serviceIDs)
	trips := []model.Trip{}
	for _, trip := range m.trips {
		if set[trip.ServiceID] {
			trips = append(trips, trip)
		}
	}
	return trips, nil
}

func (m *memStore) TripsForRoute(ctx context.Context, routeID string, serviceIDs []string) ([]model.Trip, error) {
	if m.err != nil {
		return nil, m.err
	}
	set := idSet(serviceIDs)
	trips := []model.Trip{}
	for _, trip := range m.trips {
		if trip.RouteID == routeID && set[trip.ServiceID] {
			trips = append(trips, trip)
		}
	}
	return trips, nil
}

func (m *memStore) StopTimesForStop(ctx context.Context, stopID string, tripIDs []string) ([]model.StopTime, error) {
	if m.err != nil {
		return nil, m.err
	}
	set := idSet(tripIDs)
	stopTimes := []model.StopTime{}
	for _, st := range m.stopTimes {
		if st.StopID == stopID && set[st.TripID] {
			stopTimes = append(stopTimes, st)
		}
	}
	return stopTimes, nil
}

func (m *memStore) StopTimesForTrips(ctx context.Context, tripIDs []string) ([]model.StopTime, error) {
	if m.err != nil {
		return nil, m.err
	}
	set := idSet(tripIDs)
	stopTimes := []model.StopTime{}
	for _, st := range m.stopTimes {
		if set[st.TripID] {
			stopTimes = append(stopTimes, st)
		}
	}
	return stopTimes, nil
}

func (m *memStore) CalendarsForWeekday(ctx context.Context, day time.Weekday) ([]model.Calendar, error) {
	if m.err != nil {
		return nil, m.err
	}
	calendars := []model.Calendar{}
	for _, cal := range m.calendars {
		if cal.RunsOn(day) {
			calendars = append(calendars, cal)
		}
	}
	return calendars, nil
}

func (m *memStore) CalendarDatesOn(ctx context.Context, date string) ([]model.CalendarDate, error) {
	if m.err != nil {
		return nil, m.err
	}
	dates := []model.CalendarDate{}
	for _, cd := range m.calendarDates {
		if cd.Date == date {
			dates = append(dates, cd)
		}
	}
	return dates, nil
}

// weekdayCalendar builds a calendar running every weekday of the
// given range.
func weekdayCalendar(serviceID, startDate, endDate string) model.Calendar {
	return model.Calendar{
		ServiceID: serviceID,
		Monday:    1,
		Tuesday:   1,
		Wednesday: 1,
		Thursday:  1,
		Friday:    1,
		StartDate: startDate,
		EndDate:   endDate,
	}
}
