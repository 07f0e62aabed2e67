package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name     string   `json:"name"`
	Interval Duration `json:"interval"`
}

func (c *testConfig) Validate() error {
	if time.Duration(c.Interval) == 0 {
		c.Interval = Duration(30 * time.Second)
	}

	return nil
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	require.NoError(t, os.WriteFile(path, []byte(`{"name": "test", "interval": "5m"}`), 0o600))

	var cfg testConfig
	require.NoError(t, LoadFile(path, &cfg))

	assert.Equal(t, "test", cfg.Name)
	assert.Equal(t, 5*time.Minute, time.Duration(cfg.Interval))
}

func TestLoadFileMissing(t *testing.T) {
	var cfg testConfig
	err := LoadFile(filepath.Join(t.TempDir(), "nope.json"), &cfg)
	assert.Error(t, err)
}

func TestLoadFileInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

	var cfg testConfig
	assert.Error(t, LoadFile(path, &cfg))
}

func TestLoadAndValidateDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	require.NoError(t, os.WriteFile(path, []byte(`{"name": "test"}`), 0o600))

	var cfg testConfig
	require.NoError(t, LoadAndValidate(path, &cfg))

	assert.Equal(t, 30*time.Second, time.Duration(cfg.Interval))
}

func TestDurationUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "string duration", input: `"5m"`, want: 5 * time.Minute},
		{name: "numeric nanoseconds", input: `300000000000`, want: 5 * time.Minute},
		{name: "invalid string", input: `"not-a-duration"`, wantErr: true},
		{name: "invalid type", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalJSON([]byte(tt.input))

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	in := testConfig{Name: "agent-1", Interval: Duration(time.Minute)}
	require.NoError(t, WriteFile(path, &in))

	var out testConfig
	require.NoError(t, LoadFile(path, &out))

	assert.Equal(t, in, out)

	// No leftover temp file
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
