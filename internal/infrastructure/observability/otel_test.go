package observability

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/faizxmak/latilong/internal/config"
)

func TestSetupDisabledInstallsNoopProvider(t *testing.T) {
	cfg := &config.Config{ServiceName: "latilong-test", EnableTracing: false, OTLPEndpoint: "collector:4318"}

	shutdown, err := Setup(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	// Spans must be valid but unrecorded while tracing is off.
	_, span := otel.Tracer("test").Start(context.Background(), "turn")
	require.False(t, span.IsRecording())
	span.End()

	require.NoError(t, shutdown(context.Background()))
}

func TestSetupEnabledWithoutEndpoint(t *testing.T) {
	cfg := &config.Config{ServiceName: "latilong-test", Environment: "test", EnableTracing: true}

	shutdown, err := Setup(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
