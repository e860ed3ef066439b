package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/chainset/internal/hashset"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chainset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "version: \"1.0\"\n"))
	require.NoError(t, err)

	assert.Equal(t, hashset.DefaultBucketCount, cfg.Set.BucketCount)
	assert.Equal(t, hashset.DefaultLoadFactorLimit, cfg.Set.LoadFactorLimit)
	assert.False(t, cfg.Set.PreserveOrderOnRehash)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeoutDuration())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeoutDuration())
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, time.Minute, cfg.Reporter.IntervalDuration())
	assert.Equal(t, 100000, cfg.Bench.Elements)
}

func TestLoadFullFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, `version: "1.0"
set:
  bucket_count: 4
  load_factor_limit: 1.5
  preserve_order_on_rehash: true
logging:
  level: DEBUG
  format: Json
server:
  addr: " 127.0.0.1:9000 "
metrics:
  enabled: true
reporter:
  interval: 0s
bench:
  elements: 50
  remove_ratio: 0.5
  seed: 9
`))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Set.BucketCount)
	assert.Equal(t, 1.5, cfg.Set.LoadFactorLimit)
	assert.True(t, cfg.Set.PreserveOrderOnRehash)
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Zero(t, cfg.Reporter.IntervalDuration())
	assert.Equal(t, BenchConfig{Elements: 50, RemoveRatio: 0.5, Seed: 9}, cfg.Bench)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("CHAINSET_BUCKETS", "32")
	cfg, err := Load(writeConfig(t, "version: \"1.0\"\nset:\n  bucket_count: ${CHAINSET_BUCKETS}\n"))
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Set.BucketCount)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"wrong version", "version: \"2.0\"\n"},
		{"negative buckets", "version: \"1.0\"\nset:\n  bucket_count: -1\n"},
		{"negative limit", "version: \"1.0\"\nset:\n  load_factor_limit: -0.5\n"},
		{"bad timeout", "version: \"1.0\"\nserver:\n  read_timeout: soon\n"},
		{"negative interval", "version: \"1.0\"\nreporter:\n  interval: -1s\n"},
		{"relative metrics path", "version: \"1.0\"\nmetrics:\n  path: metrics\n"},
		{"remove ratio out of range", "version: \"1.0\"\nbench:\n  remove_ratio: 1.5\n"},
		{"malformed yaml", "version: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorContains(t, err, "configuration file not found")
}

func TestInitRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chainset.yaml")
	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false), "existing file without force")
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, SupportedVersion, cfg.Version)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 0.25, cfg.Bench.RemoveRatio)
}

func TestSetOptionsBuildSet(t *testing.T) {
	cfg := Default()
	cfg.Set.BucketCount = 3
	s, err := hashset.New[hashset.Int](cfg.SetOptions()...)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Buckets())
	assert.Equal(t, hashset.DefaultLoadFactorLimit, s.LoadFactorLimit())
}

func TestNormalizers(t *testing.T) {
	assert.Equal(t, LogLevelWarn, NormalizeLogLevel(" Warning "))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("verbose"))
	assert.Equal(t, LogFormatJSON, NormalizeLogFormat("JSON"))
	assert.Equal(t, LogFormatText, NormalizeLogFormat("yaml"))
}

func TestLoadEnvFileDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, os.WriteFile(".env", []byte("CHAINSET_FROM_FILE=file\nCHAINSET_PRESET=file\n"), 0o600))
	t.Setenv("CHAINSET_PRESET", "process")
	t.Setenv("CHAINSET_FROM_FILE", "")
	require.NoError(t, os.Unsetenv("CHAINSET_FROM_FILE"))

	require.NoError(t, loadEnvFile())
	assert.Equal(t, "file", os.Getenv("CHAINSET_FROM_FILE"))
	assert.Equal(t, "process", os.Getenv("CHAINSET_PRESET"))
}
