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

// ActiveServices resolves the set of service ids operating on the
// given date: services whose weekly calendar flag is set for the
// date's weekday and whose date range covers it, minus services with
// a removal exception that day, plus services with an addition
// exception. A removal always wins over an addition for the same
// service and date. An empty result is a normal "nothing runs today",
// not an error.
func (e *Engine) ActiveServices(ctx context.Context, date time.Time) ([]string, error) {
	timer := prometheus.NewTimer(metrics.QueryDuration.WithLabelValues("active_services"))
	defer timer.ObserveDuration()

	day := date.Format(model.DateFormat)

	// The weekday flag is an equality filter the remote side can
	// apply; range membership it cannot, so that happens here.
	calendars, err := e.store.CalendarsForWeekday(ctx, date.Weekday())
	if err != nil {
		return nil, errors.Wrap(err, "fetching weekly calendars")
	}

	exceptions, err := e.store.CalendarDatesOn(ctx, day)
	if err != nil {
		return nil, errors.Wrap(err, "fetching calendar exceptions")
	}

	added := map[string]bool{}
	removed := map[string]bool{}
	for _, cd := range exceptions {
		switch cd.ExceptionType {
		case model.ExceptionAdded:
			added[cd.ServiceID] = true
		case model.ExceptionRemoved:
			removed[cd.ServiceID] = true
		}
	}

	active := map[string]bool{}
	for _, cal := range calendars {
		if !cal.InRange(day) {
			continue
		}
		if removed[cal.ServiceID] {
			continue
		}
		active[cal.ServiceID] = true
	}
	for serviceID := range added {
		if removed[serviceID] {
			// Contradictory input; removal wins.
			continue
		}
		active[serviceID] = true
	}

	serviceIDs := make([]string, 0, len(active))
	for serviceID := range active {
		serviceIDs = append(serviceIDs, serviceID)
	}
	sort.Strings(serviceIDs)

	e.Logger.Debug().
		Str("date", day).
		Int("services", len(serviceIDs)).
		Msg("resolved active services")

	return serviceIDs, nil
}
