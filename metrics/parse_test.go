package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPartInc(t *testing.T) {
	before := testutil.ToFloat64(metricParts.WithLabelValues("embed"))
	PartInc("embed")
	PartInc("embed")
	if got := testutil.ToFloat64(metricParts.WithLabelValues("embed")); got != before+2 {
		t.Fatalf("got %v, expected %v", got, before+2)
	}
}

func TestCharsetConvertInc(t *testing.T) {
	before := testutil.ToFloat64(metricCharset.WithLabelValues("guessed"))
	CharsetConvertInc("guessed")
	if got := testutil.ToFloat64(metricCharset.WithLabelValues("guessed")); got != before+1 {
		t.Fatalf("got %v, expected %v", got, before+1)
	}
}
