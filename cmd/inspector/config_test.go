package main

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"APP_PORT", "MAP_FILE", "BOARD_FILE", "QUEST_FILE", "LOG_LEVEL", "OCCUPANT_RADIUS", "ENABLE_PROFILING", "PPROF_PORT"} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfigFromEnv()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.MapFile)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 0.3, cfg.OccupantRadius)
	assert.False(t, cfg.Profiling.Enabled)
	assert.Equal(t, "42069", cfg.Profiling.Port)
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9000")
	t.Setenv("MAP_FILE", "maps/keep.yaml")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OCCUPANT_RADIUS", "0.1")
	t.Setenv("ENABLE_PROFILING", "true")
	t.Setenv("PPROF_PORT", "6060")
	t.Setenv("BOARD_FILE", "boards/base.json")
	t.Setenv("QUEST_FILE", "quests/q1.json")

	cfg, err := LoadConfigFromEnv()

	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "maps/keep.yaml", cfg.MapFile)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 0.1, cfg.OccupantRadius)
	assert.True(t, cfg.Profiling.Enabled)
	assert.Equal(t, "6060", cfg.Profiling.Port)
	assert.Equal(t, "boards/base.json", cfg.BoardFile)
	assert.Equal(t, "quests/q1.json", cfg.QuestFile)
}

func TestLoadConfigFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"log level", "LOG_LEVEL", "chatty"},
		{"radius not a number", "OCCUPANT_RADIUS", "wide"},
		{"negative radius", "OCCUPANT_RADIUS", "-0.2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfigFromEnv()

			assert.ErrorContains(t, err, tt.key)
		})
	}
}
