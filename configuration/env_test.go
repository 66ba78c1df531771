package configuration

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProcessEnv(t *testing.T) {
	t.Run("defaults config dir", func(t *testing.T) {
		t.Setenv("NODE_ENV", "development")
		t.Setenv("CONFIG_DIR", "")
		require.NoError(t, os.Unsetenv("CONFIG_DIR"))

		p, err := ParseProcessEnv()
		require.NoError(t, err)
		assert.Equal(t, ProcessEnv{NodeEnv: "development", ConfigDir: "config"}, p)
		assert.False(t, p.IsProduction())
	})

	t.Run("custom config dir", func(t *testing.T) {
		t.Setenv("NODE_ENV", Production)
		t.Setenv("CONFIG_DIR", "/etc/orders")

		p, err := ParseProcessEnv()
		require.NoError(t, err)
		assert.Equal(t, "/etc/orders", p.ConfigDir)
		assert.True(t, p.IsProduction())
	})

	t.Run("empty NODE_ENV", func(t *testing.T) {
		t.Setenv("NODE_ENV", "")

		_, err := ParseProcessEnv()
		assert.ErrorIs(t, err, ErrNodeEnvNotDefined)
	})
}

func TestApplyEnv(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		assert.NoError(t, ApplyEnv(nil, "development"))
	})

	t.Run("kept outside production", func(t *testing.T) {
		t.Setenv("NODESVC_APPLY_A", "")
		cfg := &Config{Env: map[string]string{"NODESVC_APPLY_A": "1"}}

		require.NoError(t, ApplyEnv(cfg, "test"))
		assert.Equal(t, "1", os.Getenv("NODESVC_APPLY_A"))
		assert.NotNil(t, cfg.Env)
	})

	t.Run("stripped in production", func(t *testing.T) {
		t.Setenv("NODESVC_APPLY_B", "")
		cfg := &Config{Env: map[string]string{"NODESVC_APPLY_B": "2"}}

		require.NoError(t, ApplyEnv(cfg, Production))
		assert.Equal(t, "2", os.Getenv("NODESVC_APPLY_B"))
		assert.Nil(t, cfg.Env)
	})
}
