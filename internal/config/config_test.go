package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		DatabaseURL:       "postgres://localhost:5432/scheduler",
		Timezone:          "Europe/London",
		DirectoryFile:     "directory.yaml",
		DefaultShiftStart: "09:00",
		DefaultShiftEnd:   "13:00",
		DefaultJobType:    "Coach",
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingTimezone(t *testing.T) {
	cfg := &Config{
		DefaultShiftStart: "09:00",
		DefaultShiftEnd:   "13:00",
		DefaultJobType:    "Coach",
	}

	err := Validate(cfg)
	assert.Error(t, err)
}

func TestValidate_BadClockString(t *testing.T) {
	cfg := Default()
	cfg.DefaultShiftStart = "9am"

	err := Validate(cfg)
	assert.Error(t, err)
}

func TestValidate_UnknownTimezone(t *testing.T) {
	cfg := Default()
	cfg.Timezone = "Mars/Olympus_Mons"

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timezone")
}

func TestLoadFromPath_AppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scheduler_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timezone: UTC\n"), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "09:00", cfg.DefaultShiftStart)
	assert.Equal(t, "13:00", cfg.DefaultShiftEnd)
	assert.Equal(t, "Coach", cfg.DefaultJobType)
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scheduler_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timezone: [broken\n"), 0644))

	_, err := LoadFromPath(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "UTC", cfg.Timezone)
	assert.NoError(t, Validate(cfg))

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}
