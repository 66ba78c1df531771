package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func newConfigDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		writeTempYAML(t, dir, name, content)
	}
	return dir
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_RequiresNodeEnv verifies that an empty NODE_ENV is
// recorded on the builder and surfaces from build.
func TestNewConfigBuilder_RequiresNodeEnv(t *testing.T) {
	b := newConfigBuilder(ProcessEnv{ConfigDir: t.TempDir()})
	require.Error(t, b.err)

	cfg, err := b.withDefaults().withBase().withEnvironment().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrNodeEnvNotDefined)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder(ProcessEnv{NodeEnv: "test"})
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// ── AssembleFrom ──────────────────────────────────────────────────────────────

func TestAssembleFrom_LayersFiles(t *testing.T) {
	dir := newConfigDir(t, map[string]string{
		"index.yaml":            "name: orders\ncore:\n  port: 4000\n  cors:\n    enabled: true\n",
		"node.development.yaml": "core:\n  port: 5000\n",
	})

	cfg, err := AssembleFrom(ProcessEnv{NodeEnv: "development", ConfigDir: dir})
	require.NoError(t, err)

	assert.Equal(t, "orders", cfg.Name)
	assert.Equal(t, 5000, cfg.Core.Port)
	assert.True(t, cfg.Core.Cors.Enabled)
	assert.Equal(t, DefaultHost, cfg.Core.Host)
	assert.Equal(t, "development", cfg.NodeEnv)
	assert.False(t, cfg.IsProduction())
}

// TestAssembleFrom_OptionalOverlay verifies that a missing environment file
// is not an error.
func TestAssembleFrom_OptionalOverlay(t *testing.T) {
	dir := newConfigDir(t, map[string]string{"index.yaml": "name: orders\n"})

	cfg, err := AssembleFrom(ProcessEnv{NodeEnv: "staging", ConfigDir: dir})
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Core.Port)
}

// TestAssembleFrom_EmptyBaseUsesDefaults verifies that an empty index.yaml
// still produces a valid configuration from the default layer.
func TestAssembleFrom_EmptyBaseUsesDefaults(t *testing.T) {
	dir := newConfigDir(t, map[string]string{"index.yaml": ""})

	cfg, err := AssembleFrom(ProcessEnv{NodeEnv: "test", ConfigDir: dir})
	require.NoError(t, err)
	assert.Equal(t, DefaultName, cfg.Name)
}

func TestAssembleFrom_Errors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		nodeEnv string
		wantErr error
	}{
		{
			name:    "missing base file",
			files:   map[string]string{},
			nodeEnv: "test",
			wantErr: ErrConfigNotFound,
		},
		{
			name:    "malformed overlay",
			files:   map[string]string{"index.yaml": "name: x\n", "node.test.yaml": "- not a mapping\n"},
			nodeEnv: "test",
			wantErr: ErrMalformedConfig,
		},
		{
			name:    "missing NODE_ENV",
			files:   map[string]string{"index.yaml": "name: x\n"},
			nodeEnv: "",
			wantErr: ErrNodeEnvNotDefined,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := newConfigDir(t, tt.files)

			cfg, err := AssembleFrom(ProcessEnv{NodeEnv: tt.nodeEnv, ConfigDir: dir})
			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestAssembleFrom_ValidationError verifies that schema violations surface as
// a *ValidationError carrying every issue.
func TestAssembleFrom_ValidationError(t *testing.T) {
	dir := newConfigDir(t, map[string]string{
		"index.yaml": "name: \"\"\ncore:\n  port: 99999\n",
	})

	_, err := AssembleFrom(ProcessEnv{NodeEnv: "test", ConfigDir: dir})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Issues, 2)
}

// TestAssembleFrom_StrictOption verifies that validate options reach Validate.
func TestAssembleFrom_StrictOption(t *testing.T) {
	dir := newConfigDir(t, map[string]string{"index.yaml": "name: x\ncustom: 1\n"})

	_, err := AssembleFrom(ProcessEnv{NodeEnv: "test", ConfigDir: dir})
	require.NoError(t, err)

	_, err = AssembleFrom(ProcessEnv{NodeEnv: "test", ConfigDir: dir}, WithStrict(true))
	require.Error(t, err)
}

// TestAssembleFrom_AppliesEnv verifies the env section reaches the process
// environment and is stripped only in production.
func TestAssembleFrom_AppliesEnv(t *testing.T) {
	dir := newConfigDir(t, map[string]string{
		"index.yaml": "name: x\nenv:\n  NODESVC_ASSEMBLE_TEST: from-config\n",
	})
	t.Setenv("NODESVC_ASSEMBLE_TEST", "")

	cfg, err := AssembleFrom(ProcessEnv{NodeEnv: "development", ConfigDir: dir})
	require.NoError(t, err)
	assert.Equal(t, "from-config", os.Getenv("NODESVC_ASSEMBLE_TEST"))
	assert.Equal(t, map[string]string{"NODESVC_ASSEMBLE_TEST": "from-config"}, cfg.Env)

	t.Setenv("NODESVC_ASSEMBLE_TEST", "")
	cfg, err = AssembleFrom(ProcessEnv{NodeEnv: Production, ConfigDir: dir})
	require.NoError(t, err)
	assert.Equal(t, "from-config", os.Getenv("NODESVC_ASSEMBLE_TEST"))
	assert.Nil(t, cfg.Env)
	assert.True(t, cfg.IsProduction())
}

// ── Assemble ──────────────────────────────────────────────────────────────────

func TestAssemble_ReadsProcessEnv(t *testing.T) {
	dir := newConfigDir(t, map[string]string{"index.yaml": "name: from-env\n"})
	t.Setenv("NODE_ENV", "test")
	t.Setenv("CONFIG_DIR", dir)

	cfg, err := Assemble()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Name)
}

func TestAssemble_MissingNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "")
	require.NoError(t, os.Unsetenv("NODE_ENV"))

	_, err := Assemble()
	assert.ErrorIs(t, err, ErrNodeEnvNotDefined)
}

// ── MergedTree ────────────────────────────────────────────────────────────────

func TestMergedTree(t *testing.T) {
	dir := newConfigDir(t, map[string]string{
		"index.yaml":     "core:\n  port: 4000\n",
		"node.test.yaml": "core:\n  host: 127.0.0.1\n",
	})

	tree, err := MergedTree(ProcessEnv{NodeEnv: "test", ConfigDir: filepath.Clean(dir)})
	require.NoError(t, err)

	port, _ := tree.Get("core", "port")
	host, _ := tree.Get("core", "host")
	name, _ := tree.Get("name")
	assert.Equal(t, 4000, port)
	assert.Equal(t, "127.0.0.1", host)
	assert.Equal(t, DefaultName, name)
}
