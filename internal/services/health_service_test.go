package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WayPool/ElysiumBOT-sub001/pkg/contracts"
)

func TestHealthService(t *testing.T) {
	imports, _ := newTestImportService(t, 3)
	hs := NewHealthService(contracts.Version, imports, nil)
	ctx := context.Background()

	t.Run("health", func(t *testing.T) {
		status := hs.HealthCheck(ctx)
		assert.Equal(t, "ok", status.Status)
		assert.Equal(t, contracts.Version, status.Version)
		assert.False(t, status.Timestamp.IsZero())
	})

	t.Run("readiness", func(t *testing.T) {
		status := hs.ReadinessCheck(ctx)
		assert.Equal(t, "ready", status.Status)

		svc, ok := status.Services["imports"].(ServiceHealth)
		require.True(t, ok)
		assert.Equal(t, "0 of 3 import slots in use", svc.Message)
		require.NotNil(t, svc.Imports)
		assert.Equal(t, int64(3), svc.Imports.Capacity)
	})

	t.Run("liveness", func(t *testing.T) {
		status := hs.LivenessCheck(ctx)
		assert.Equal(t, "alive", status.Status)
		assert.Contains(t, status.Runtime, "go_version")
		assert.Contains(t, status.Runtime, "goroutines")
	})

	t.Run("version", func(t *testing.T) {
		info := hs.Version()
		assert.Equal(t, contracts.Version, info.Version)
		assert.Equal(t, contracts.APIVersion, info.APIVersion)
	})
}

func TestHealthServiceNotReadyWithoutEngine(t *testing.T) {
	hs := NewHealthService("test", NewImportService(nil, 1, nil), nil)

	status := hs.ReadinessCheck(context.Background())
	assert.Equal(t, "not_ready", status.Status)

	svc := status.Services["imports"].(ServiceHealth)
	assert.Equal(t, "validation engine not configured", svc.Message)
	assert.Nil(t, svc.Imports)
}
