package pubsub

import (
	"context"
	"testing"

	"github.com/nfrund/hallrush/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupOTel(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled tracing", func(t *testing.T) {
		tracer, cleanup, err := SetupOTel(ctx, config.TracingConfig{Enabled: false}, "test")
		require.NoError(t, err)
		require.NotNil(t, tracer)
		require.NotNil(t, cleanup)

		_, span := tracer.Start(ctx, "test")
		assert.False(t, span.SpanContext().IsValid())
		span.End()
		cleanup()
	})

	t.Run("enabled tracing", func(t *testing.T) {
		cfg := config.TracingConfig{
			Enabled:     true,
			ServiceName: "hallrush-test",
			ZipkinURL:   "http://localhost:9411/api/v2/spans",
		}
		tracer, cleanup, err := SetupOTel(ctx, cfg, "test")
		require.NoError(t, err)
		require.NotNil(t, tracer)

		_, span := tracer.Start(ctx, "test")
		assert.True(t, span.SpanContext().IsValid())
		span.End()
		cleanup()
	})
}
