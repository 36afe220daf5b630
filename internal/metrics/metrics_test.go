package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorsRegistered(t *testing.T) {
	SubmissionsTotal.WithLabelValues(OutcomeAccepted).Inc()
	FieldErrorsTotal.WithLabelValues("email").Inc()
	RequestDuration.WithLabelValues("/contact", "GET", "200").Observe(0.01)

	n, err := testutil.GatherAndCount(prometheus.DefaultGatherer,
		"contact_submissions_total",
		"contact_field_errors_total",
		"http_request_duration_seconds",
	)
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n < 3 {
		t.Fatalf("got %d series, want at least 3", n)
	}
}
