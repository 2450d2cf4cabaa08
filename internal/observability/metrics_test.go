package observability_test

import (
	"testing"
	"time"

	"github.com/iludo/profile-service/internal/observability"
)

func TestMetricsSnapshot(t *testing.T) {
	m := observability.NewMetrics()
	m.RecordRequest("/me", "GET", 200, 5*time.Millisecond)
	m.RecordRequest("/me", "GET", 200, 7*time.Millisecond)
	m.RecordError("/me/invite", "POST", "CONFLICT")

	requests, errs := m.Snapshot()
	if requests["/me|GET|200"] != 2 {
		t.Errorf("request count = %d, want 2", requests["/me|GET|200"])
	}
	if errs["/me/invite|POST|CONFLICT"] != 1 {
		t.Errorf("error count = %d, want 1", errs["/me/invite|POST|CONFLICT"])
	}

	requests["/me|GET|200"] = 99
	fresh, _ := m.Snapshot()
	if fresh["/me|GET|200"] != 2 {
		t.Error("Snapshot returned a live map instead of a copy")
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *observability.Metrics
	m.RecordRequest("/me", "GET", 200, 0)
	m.RecordError("/me", "GET", "X")
	if requests, errs := m.Snapshot(); requests != nil || errs != nil {
		t.Error("nil Snapshot should return nil maps")
	}
}
