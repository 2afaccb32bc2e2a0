package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/Ko-stant/tactical-grid/internal/visibility"
)

type Config struct {
	Port           string
	MapFile        string
	BoardFile      string
	QuestFile      string
	LogLevel       logrus.Level
	OccupantRadius float64
	Profiling      ProfilingConfig
}

// LoadConfigFromEnv reads the server, map source, logging and occupant
// settings plus the profiling variables.
func LoadConfigFromEnv() (Config, error) {
	cfg := Config{
		Port:           os.Getenv("APP_PORT"),
		MapFile:        os.Getenv("MAP_FILE"),
		BoardFile:      os.Getenv("BOARD_FILE"),
		QuestFile:      os.Getenv("QUEST_FILE"),
		LogLevel:       logrus.InfoLevel,
		OccupantRadius: visibility.DefaultOccupantRadius,
		Profiling:      GetProfilingConfigFromEnv(),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	if v := os.Getenv("OCCUPANT_RADIUS"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid OCCUPANT_RADIUS: %w", err)
		}
		if r < 0 {
			return Config{}, fmt.Errorf("invalid OCCUPANT_RADIUS: %v is negative", r)
		}
		cfg.OccupantRadius = r
	}

	return cfg, nil
}
