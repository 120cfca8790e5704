package telemetry

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestAppMetrics_AuthDomainCounters(t *testing.T) {
	metrics := NewAppMetrics(prometheus.NewRegistry())
	ctx := context.Background()

	metrics.RecordAuthOperation(ctx, "login", "success")
	metrics.RecordAuthOperation(ctx, "login", "success")
	metrics.RecordAuthOperation(ctx, "login", "failure")
	metrics.RecordTwoFactorCheck(ctx, "enable", "success")
	metrics.RecordCodeExchange(ctx, "miss")

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.authOperations.WithLabelValues("login", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.authOperations.WithLabelValues("login", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.twoFactorChecks.WithLabelValues("enable", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.codeExchanges.WithLabelValues("miss")))
}

func TestAppMetrics_RegistersWithoutCollision(t *testing.T) {
	registry := prometheus.NewRegistry()

	assert.NotPanics(t, func() { NewAppMetrics(registry) })

	families, err := registry.Gather()
	assert.NoError(t, err)
	assert.NotNil(t, families)
}
