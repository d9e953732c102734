package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"mesa-budget/internal/config/configs"
)

func TestSetupDisabledIsNoop(t *testing.T) {
	for _, cfg := range []configs.Otel{
		{Enabled: true},
		{Enabled: false, Endpoint: "http://collector:4318"},
	} {
		shutdown, err := Setup(context.Background(), cfg)
		require.NoError(t, err)
		require.NoError(t, shutdown(context.Background()))
	}
}
