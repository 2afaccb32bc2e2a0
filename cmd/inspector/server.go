package main

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"
	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/Ko-stant/tactical-grid/internal/geometry"
	"github.com/Ko-stant/tactical-grid/internal/inspector"
	"github.com/Ko-stant/tactical-grid/internal/ws"
)

type server struct {
	session  *inspector.Session
	handlers *inspector.Handlers
	hub      *ws.Hub
	sequence inspector.SequenceGenerator
	log      logrus.FieldLogger
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/snapshot", s.handleSnapshot)
	mux.HandleFunc("/stream", s.handleStream)
	return mux
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	templ.Handler(inspector.GridPage(s.session.Snapshot(s.sequence.Current()))).ServeHTTP(w, r)
}

func (s *server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.session.Snapshot(s.sequence.Current())); err != nil {
		s.log.Errorf("failed to write snapshot: %v", err)
	}
}

func (s *server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.log.Warnf("websocket accept failed: %v", err)
		return
	}
	s.hub.Add(conn)
	log := s.log.WithField("remote", r.RemoteAddr)
	log.Info("client connected")

	defer func() {
		s.hub.Remove(conn)
		_ = conn.Close(websocket.StatusNormalClosure, "")
		log.Info("client disconnected")
	}()

	ctx := r.Context()
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		reply := s.handlers.HandleMessage(data)
		if reply == nil {
			continue
		}
		if err := s.hub.Send(ctx, conn, reply); err != nil {
			log.Warnf("reply failed: %v", err)
			return
		}
	}
}

// loadMap picks the map source: a map file, then a board with an optional
// quest overlay, then the built-in dev map.
func loadMap(cfg Config) (geometry.MapDefinition, string, error) {
	switch {
	case cfg.MapFile != "":
		def, err := geometry.LoadMapFromFile(cfg.MapFile)
		if err != nil {
			return geometry.MapDefinition{}, "", err
		}
		return *def, fileID(cfg.MapFile), nil

	case cfg.BoardFile != "":
		board, err := geometry.LoadBoardFromFile(cfg.BoardFile)
		if err != nil {
			return geometry.MapDefinition{}, "", err
		}
		var quest *geometry.QuestDefinition
		if cfg.QuestFile != "" {
			if quest, err = geometry.LoadQuestFromFile(cfg.QuestFile); err != nil {
				return geometry.MapDefinition{}, "", err
			}
		}
		id := board.ID
		if id == "" {
			id = fileID(cfg.BoardFile)
		}
		if quest != nil && quest.ID != "" {
			id += "/" + quest.ID
		}
		return geometry.MapFromBoard(board, quest), id, nil
	}
	return geometry.DevMap(), "dev-map", nil
}

func fileID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
