package schedo

import (
	"context"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Quantum = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Quantum1 = -5
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.BoostInterval = 0
	assert.Error(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	ctx := context.Background()
	URL := path.Join(t.TempDir(), "config.yaml")
	data := []byte("quantum: 80\nquantum0: 20\nmetricsURL: /tmp/result.csv\n")
	require.NoError(t, os.WriteFile(URL, data, 0o644))

	cfg, err := LoadConfig(ctx, URL)
	require.NoError(t, err)

	// Unset keys keep their defaults.
	assert.Equal(t, 80, cfg.Quantum)
	assert.Equal(t, 20, cfg.Quantum0)
	assert.Equal(t, 100, cfg.Quantum1)
	assert.Equal(t, 200, cfg.Quantum2)
	assert.Equal(t, "/tmp/result.csv", cfg.MetricsURL)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	URL := path.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(URL, []byte("quantum: -1\n"), 0o644))

	_, err := LoadConfig(ctx, URL)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(context.Background(), path.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
