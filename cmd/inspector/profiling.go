package main

import (
	"context"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Ko-stant/tactical-grid/internal/inspector"
)

type ProfilingConfig struct {
	Enabled bool
	Port    string
}

// StartProfiling serves net/http/pprof on its own port when enabled.
func StartProfiling(config ProfilingConfig, log logrus.FieldLogger) {
	if !config.Enabled {
		return
	}

	runtime.SetBlockProfileRate(1)
	runtime.SetMutexProfileFraction(1)

	go func() {
		log.Infof("starting pprof server on :%s", config.Port)
		log.Infof("CPU profile: curl http://localhost:%s/debug/pprof/profile?seconds=30 > cpu.prof", config.Port)
		log.Infof("heap profile: curl http://localhost:%s/debug/pprof/heap > mem.prof", config.Port)
		if err := http.ListenAndServe(":"+config.Port, nil); err != nil {
			log.Errorf("pprof server failed: %v", err)
		}
	}()
}

func GetProfilingConfigFromEnv() ProfilingConfig {
	port := os.Getenv("PPROF_PORT")
	if port == "" {
		port = "42069"
	}
	return ProfilingConfig{
		Enabled: os.Getenv("ENABLE_PROFILING") == "true",
		Port:    port,
	}
}

// StartMetricsReporting logs query statistics and runtime figures every
// interval until ctx is done.
func StartMetricsReporting(ctx context.Context, metrics *inspector.Metrics, interval time.Duration, log logrus.FieldLogger) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				reportMetrics(metrics, log)
			}
		}
	}()
}

func reportMetrics(metrics *inspector.Metrics, log logrus.FieldLogger) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	log.WithFields(logrus.Fields{
		"uptime":     metrics.Uptime().Round(time.Second),
		"goroutines": runtime.NumGoroutine(),
		"heapMB":     mem.HeapAlloc / 1024 / 1024,
	}).Info("runtime")
	for intent, s := range metrics.Snapshot() {
		log.WithFields(logrus.Fields{"intent": intent, "count": s.Count, "avg": s.Avg}).Info("queries")
	}
}
