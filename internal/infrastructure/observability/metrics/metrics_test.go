package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAggregation(t *testing.T) {
	before := testutil.ToFloat64(Aggregations.WithLabelValues("test", "ok"))
	RecordAggregation("test", "ok", 0.001)
	after := testutil.ToFloat64(Aggregations.WithLabelValues("test", "ok"))

	if after-before != 1 {
		t.Fatalf("expected counter to grow by 1, got %v", after-before)
	}
}

func TestRecordElements(t *testing.T) {
	before := testutil.ToFloat64(Elements.WithLabelValues("string"))
	RecordElements("string", 3)
	after := testutil.ToFloat64(Elements.WithLabelValues("string"))

	if after-before != 3 {
		t.Fatalf("expected counter to grow by 3, got %v", after-before)
	}
}
