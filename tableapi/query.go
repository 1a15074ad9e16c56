package tableapi

import (
	"net/url"
	"strconv"
	"strings"
)

// A single column filter. Only equality and membership are needed;
// the remote side supports nothing fancier that we rely on.
type Filter struct {
	Column string
	op     string
	value  string
}

// Eq filters rows where column equals value.
func Eq(column, value string) Filter {
	return Filter{Column: column, op: "eq", value: quoteValue(value)}
}

// In filters rows where column is one of values. Callers with large
// value sets should go through RowsByIDSet, which splits into bounded
// batches; In itself does no splitting.
func In(column string, values []string) Filter {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quoteValue(v)
	}
	return Filter{Column: column, op: "in", value: "(" + strings.Join(quoted, ",") + ")"}
}

// Values containing reserved characters must be double quoted, per
// PostgREST filter grammar.
func quoteValue(v string) string {
	if strings.ContainsAny(v, ",.:() \"") {
		return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
	}
	return v
}

// Query describes one bounded table read.
type Query struct {
	Filters []Filter
	Select  string
	Order   string
	Limit   int
}

func (q Query) with(f Filter) Query {
	filters := make([]Filter, len(q.Filters), len(q.Filters)+1)
	copy(filters, q.Filters)
	q.Filters = append(filters, f)
	return q
}

// encode renders the query as URL parameters.
func (q Query) encode() string {
	params := url.Values{}
	for _, f := range q.Filters {
		params.Add(f.Column, f.op+"."+f.value)
	}
	if q.Select != "" {
		params.Set("select", q.Select)
	}
	if q.Order != "" {
		params.Set("order", q.Order)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	return params.Encode()
}
