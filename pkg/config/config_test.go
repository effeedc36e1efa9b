package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "check-hdfs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
hadoop_bin: /opt/hadoop/bin/hdfs
run_as: hdfs
timeout: 45s
checks:
  space-used:
    warning: "80"
    critical: "90"
  nodes-available:
    warning: "3"
    critical: "2"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/hadoop/bin/hdfs", cfg.HadoopBin)
	assert.Equal(t, "hdfs", cfg.RunAs)

	d, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, d)

	th, ok := cfg.CheckThresholds("space-used")
	require.True(t, ok)
	assert.Equal(t, "80", th.Warning)
	assert.Equal(t, "90", th.Critical)

	_, ok = cfg.CheckThresholds("balance")
	assert.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/check-hdfs.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfig(t, "checks: [not: a: map")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestTimeoutDuration(t *testing.T) {
	cfg := &Config{}
	d, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Zero(t, d)

	cfg.Timeout = "ten seconds"
	_, err = cfg.TimeoutDuration()
	assert.Error(t, err)
}
