package observability

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheusMetrics(reg, "test")
	ctx := context.Background()

	m.RecordOperationAttempt(ctx, "CreateBulkEditions", "CatalogService")
	m.RecordOperationAttempt(ctx, "CreateBulkEditions", "CatalogService")
	m.RecordOperationSuccess(ctx, "CreateBulkEditions", "CatalogService")
	m.RecordOperationFailure(ctx, "CreateBulkEditions", "CatalogService")
	m.RecordOperationDuration(ctx, "CreateBulkEditions", "CatalogService", 20*time.Millisecond)
	m.RecordResolutionDefault(ctx, "city")
	m.RecordTimeParseFailure(ctx)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.attempts.WithLabelValues("CreateBulkEditions", "CatalogService")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.successes.WithLabelValues("CreateBulkEditions", "CatalogService")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("CreateBulkEditions", "CatalogService")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resolutionDefault.WithLabelValues("city")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.timeParseFailures))

	count, err := testutil.GatherAndCount(reg, "test_operation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{ServiceName: "wwtrail", Environment: "production", LogLevel: "warn"}, &buf)

	logger.Info("hidden")
	logger.Warn("shown", "edition_id", "e1")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "{"), "expected JSON output, got %q", out)
	assert.Contains(t, out, `"service":"wwtrail"`)
	assert.Contains(t, out, `"edition_id":"e1"`)
}
