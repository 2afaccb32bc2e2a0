package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Ko-stant/tactical-grid/internal/geometry"
	"github.com/Ko-stant/tactical-grid/internal/inspector"
	"github.com/Ko-stant/tactical-grid/internal/ws"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.LogLevel)

	StartProfiling(cfg.Profiling, log)

	def, mapID, err := loadMap(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if res := geometry.ValidateMap(def); !res.Valid {
		for _, issue := range res.Issues {
			log.WithField("map", mapID).Warn(issue)
		}
	}

	session := inspector.NewSession(def,
		inspector.WithMapID(mapID),
		inspector.WithOccupantRadius(cfg.OccupantRadius),
		inspector.WithLogger(log),
	)
	hub := ws.NewHub(log)
	sequence := inspector.NewSequence()
	metrics := inspector.NewMetrics()
	srv := &server{
		session:  session,
		handlers: inspector.NewHandlers(session, inspector.NewHubBroadcaster(hub, sequence, log), sequence, metrics, log),
		hub:      hub,
		sequence: sequence,
		log:      log,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	StartMetricsReporting(ctx, metrics, time.Minute, log)

	httpServer := &http.Server{Addr: ":" + cfg.Port, Handler: srv.routes()}
	go func() {
		log.Infof("listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	hub.CloseAll("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}
