package telemetry

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap/zaptest"
)

func TestTracerProviderDisabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), Config{Enabled: false}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.Shutdown(context.Background()))
	assert.NoError(t, tp.ForceFlush(context.Background()))

	// span profiles need a live provider
	assert.NoError(t, tp.EnableSpanProfiles())
	assert.False(t, tp.IsSpanProfilesEnabled())
}

func TestMeterProviderDisabled(t *testing.T) {
	mp, err := NewMeterProvider(context.Background(), MetricsConfig{Enabled: false}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestLoggerProviderDisabled(t *testing.T) {
	lp, err := NewLoggerProvider(context.Background(), LogsConfig{Enabled: false}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, lp.IsEnabled())
	assert.NoError(t, lp.Shutdown(context.Background()))
}

func TestProfilerValidation(t *testing.T) {
	t.Run("disabled is a no-op", func(t *testing.T) {
		p, err := NewProfiler(ProfilerConfig{Enabled: false}, zaptest.NewLogger(t))
		require.NoError(t, err)
		assert.False(t, p.IsEnabled())
		assert.NoError(t, p.Stop())
		assert.NoError(t, p.Stop())
	})

	t.Run("enabled requires server address", func(t *testing.T) {
		_, err := NewProfiler(ProfilerConfig{Enabled: true, ApplicationName: "plantstore"}, zaptest.NewLogger(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server address")
	})

	t.Run("enabled requires application name", func(t *testing.T) {
		_, err := NewProfiler(ProfilerConfig{Enabled: true, ServerAddress: "http://pyroscope:4040"}, zaptest.NewLogger(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "application name")
	})
}

type fakeCatalogProvider struct {
	lowStock int64
	soldOut  int64
	calls    atomic.Int64
}

func (f *fakeCatalogProvider) LowStockCount(ctx context.Context, threshold int) (int64, error) {
	f.calls.Add(1)
	return f.lowStock, nil
}

func (f *fakeCatalogProvider) SoldOutCount(ctx context.Context) (int64, error) {
	return f.soldOut, nil
}

func TestStoreMetrics(t *testing.T) {
	meter := sdkmetric.NewMeterProvider().Meter("test")

	t.Run("requires a meter", func(t *testing.T) {
		_, err := NewStoreMetrics(StoreMetricsConfig{})
		assert.ErrorIs(t, err, ErrMeterNil)
	})

	t.Run("records without panicking", func(t *testing.T) {
		sm, err := NewStoreMetrics(StoreMetricsConfig{
			Meter:  meter,
			Logger: zaptest.NewLogger(t),
		})
		require.NoError(t, err)

		ctx := context.Background()
		sm.RecordOrderPlaced(ctx, decimal.NewFromInt(360))
		sm.RecordPayment(ctx, "paid")
		sm.RecordReviewSubmitted(ctx)
		sm.RecordCheckoutDuration(ctx, 120*time.Millisecond)
	})

	t.Run("periodic collection polls the provider", func(t *testing.T) {
		provider := &fakeCatalogProvider{lowStock: 3, soldOut: 1}
		sm, err := NewStoreMetrics(StoreMetricsConfig{
			Meter:           meter,
			Logger:          zaptest.NewLogger(t),
			CatalogProvider: provider,
		})
		require.NoError(t, err)
		defer sm.Stop()

		sm.StartPeriodicCollection(context.Background(), 10*time.Millisecond, 5)

		require.Eventually(t, func() bool {
			return provider.calls.Load() >= 2
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		sm, err := NewStoreMetrics(StoreMetricsConfig{Meter: meter})
		require.NoError(t, err)
		sm.Stop()
		sm.Stop()
	})
}

func TestDefaultDBTracingConfig(t *testing.T) {
	cfg := DefaultDBTracingConfig()
	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.LogFullSQL)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)
	assert.Equal(t, "postgresql", cfg.DBSystem)
}
