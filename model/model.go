package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Holds all external facing types shared by the table client and the
// query engine. All rows are immutable snapshots of the remote
// tables; nothing here is ever mutated after decode.

// Dates travel as YYYYMMDD text. The format is lexically ordered, so
// date range checks are plain string comparisons.
const DateFormat = "20060102"

type Stop struct {
	ID   string  `json:"stop_id" csv:"stop_id"`
	Name string  `json:"stop_name" csv:"stop_name"`
	Lat  float64 `json:"stop_lat" csv:"stop_lat"`
	Lon  float64 `json:"stop_lon" csv:"stop_lon"`
}

type Route struct {
	ID        string `json:"route_id" csv:"route_id"`
	ShortName string `json:"route_short_name" csv:"route_short_name"`
	LongName  string `json:"route_long_name" csv:"route_long_name"`
}

type Trip struct {
	ID        string `json:"trip_id" csv:"trip_id"`
	RouteID   string `json:"route_id" csv:"route_id"`
	ServiceID string `json:"service_id" csv:"service_id"`
	Headsign  string `json:"trip_headsign" csv:"trip_headsign"`
}

type StopTime struct {
	TripID       string `json:"trip_id" csv:"trip_id"`
	StopID       string `json:"stop_id" csv:"stop_id"`
	StopSequence int    `json:"stop_sequence" csv:"stop_sequence"`
	Arrival      string `json:"arrival_time" csv:"arrival_time"`
	Departure    string `json:"departure_time" csv:"departure_time"`
}

// Scheduled returns the departure time when present, falling back to
// the arrival time. Boards display when a vehicle leaves, not when it
// rolls in.
func (st *StopTime) Scheduled() string {
	if st.Departure != "" {
		return st.Departure
	}
	return st.Arrival
}

type Calendar struct {
	ServiceID string `json:"service_id" csv:"service_id"`
	Monday    int    `json:"monday" csv:"monday"`
	Tuesday   int    `json:"tuesday" csv:"tuesday"`
	Wednesday int    `json:"wednesday" csv:"wednesday"`
	Thursday  int    `json:"thursday" csv:"thursday"`
	Friday    int    `json:"friday" csv:"friday"`
	Saturday  int    `json:"saturday" csv:"saturday"`
	Sunday    int    `json:"sunday" csv:"sunday"`
	StartDate string `json:"start_date" csv:"start_date"`
	EndDate   string `json:"end_date" csv:"end_date"`
}

// RunsOn reports whether the weekly flag for the given weekday is set.
// Date range membership is a separate check.
func (c *Calendar) RunsOn(day time.Weekday) bool {
	switch day {
	case time.Monday:
		return c.Monday == 1
	case time.Tuesday:
		return c.Tuesday == 1
	case time.Wednesday:
		return c.Wednesday == 1
	case time.Thursday:
		return c.Thursday == 1
	case time.Friday:
		return c.Friday == 1
	case time.Saturday:
		return c.Saturday == 1
	default:
		return c.Sunday == 1
	}
}

// InRange reports whether date (YYYYMMDD) falls within the calendar's
// inclusive [start_date, end_date] window.
func (c *Calendar) InRange(date string) bool {
	return c.StartDate <= date && date <= c.EndDate
}

// WeekdayColumn maps a weekday to its calendar table column name.
func WeekdayColumn(day time.Weekday) string {
	switch day {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	default:
		return "sunday"
	}
}

const (
	ExceptionAdded   = 1
	ExceptionRemoved = 2
)

type CalendarDate struct {
	ServiceID     string `json:"service_id" csv:"service_id"`
	Date          string `json:"date" csv:"date"`
	ExceptionType int    `json:"exception_type" csv:"exception_type"`
}

// ParseTime parses a GTFS HH:MM:SS offset into seconds past midnight
// of the service day. Hours may exceed 23 for trips running past
// local midnight, e.g. "25:10:00" is 90600 seconds.
func ParseTime(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed time %q", s)
	}
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	sec, errS := strconv.Atoi(parts[2])
	if errH != nil || errM != nil || errS != nil {
		return 0, fmt.Errorf("malformed time %q", s)
	}
	if h < 0 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return h*3600 + m*60 + sec, nil
}

// A stop ranked by its distance from a query point.
type RankedStop struct {
	Stop
	DistanceMeters float64
}

// A scheduled departure from a stop, with ETA relative to the query
// instant.
type Departure struct {
	TripID         string
	RouteID        string
	RouteShortName string
	RouteLongName  string
	Headsign       string
	Scheduled      string
	ETAMinutes     int
}

// A stop on a route, positioned by the average of the stop_sequence
// values observed across the route's trips. The average is only used
// for ordering.
type RouteStop struct {
	Stop
	AvgSequence float64
}

// Display projection of a departure list: one group per route, with
// the route's next departure first.
type DepartureGroup struct {
	RouteID        string
	RouteShortName string
	RouteLongName  string
	Departures     []Departure
}

// Next is the group's earliest departure.
func (g *DepartureGroup) Next() Departure {
	return g.Departures[0]
}
