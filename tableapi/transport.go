package tableapi

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"transitboard.dev/transit/metrics"
)

// latencyTrackingRoundTripper wraps another RoundTripper to observe
// the duration of each outgoing request in a Prometheus histogram,
// labeled by path, method and response status.
type latencyTrackingRoundTripper struct {
	next http.RoundTripper
}

func (rt *latencyTrackingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := rt.next.RoundTrip(req)
	duration := time.Since(start).Seconds()

	status := "error"
	if err == nil && resp != nil {
		status = strconv.Itoa(resp.StatusCode)
	}

	// Path only; query params would blow up label cardinality.
	metrics.RemoteRequestLatency.WithLabelValues(
		req.URL.Path,
		req.Method,
		status,
	).Observe(duration)

	return resp, err
}

// NewPooledClient returns an HTTP client tuned for repeated calls
// against a single API host: keep-alive connection reuse, fail-fast
// dial and TLS handshake timeouts, and Prometheus latency tracking.
//
// The overall request deadline is left to the table client's per
// attempt context, so no http.Client.Timeout is set here.
func NewPooledClient() *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 5 * time.Second,
	}

	return &http.Client{
		Transport: &latencyTrackingRoundTripper{next: transport},
	}
}
