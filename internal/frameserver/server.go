// Package frameserver exposes the engine's render output and a debug
// snapshot over HTTP/WebSocket to downstream consumers — a simulator,
// a physical LED driver — without them writing through to the model
// directly: consumers subscribe to the frame topic to refresh
// themselves.
package frameserver

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"github.com/tapelight/ledengine/internal/engine"
	"github.com/tapelight/ledengine/internal/events"
	"github.com/tapelight/ledengine/internal/model"
)

// Server is the frame/debug HTTP surface.
type Server struct {
	httpServer *http.Server
	bus        *events.Bus
	scene      *model.Scene
}

// Config configures the frameserver's listen address and CORS origin.
type Config struct {
	Addr       string
	CORSOrigin string
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // any origin may observe frames; the plane is read-only
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// NewServer builds the chi router and HTTP server, not yet listening.
func NewServer(cfg Config, scene *model.Scene, bus *events.Bus) *Server {
	s := &Server{bus: bus, scene: scene}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: []string{cfg.CORSOrigin, "*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})
	router.Use(corsMiddleware.Handler)

	router.Get("/health", s.handleHealth)
	router.Get("/debug/scene", s.handleDebugScene)
	router.Get("/ws/frames", s.handleWSFrames)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins serving in a background goroutine. Listen errors other
// than a clean shutdown are fatal.
func (s *Server) Start() {
	go func() {
		log.Printf("🎞️ frameserver listening on http://%s\n", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("frameserver: listen error: %v", err)
		}
	}()
}

// Stop closes the HTTP server immediately, without waiting for
// in-flight requests to finish.
func (s *Server) Stop() error {
	return s.httpServer.Close()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// sceneSnapshot is the /debug/scene payload: a plain-data inspector
// view, the same contract a GUI inspector would consume, not a UI
// itself.
type sceneSnapshot struct {
	SceneID         int    `json:"scene_id"`
	CurrentEffectID *int   `json:"current_effect_id"`
	CurrentPalette  string `json:"current_palette"`
	EffectIDs       []int  `json:"effect_ids"`
}

func (s *Server) handleDebugScene(w http.ResponseWriter, r *http.Request) {
	snap := sceneSnapshot{
		SceneID:         s.scene.ID(),
		CurrentEffectID: s.scene.CurrentEffectID(),
		CurrentPalette:  s.scene.CurrentPaletteName(),
		EffectIDs:       s.scene.EffectIDs(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		log.Printf("frameserver: encoding /debug/scene: %v", err)
	}
}

// handleWSFrames upgrades to a WebSocket and streams published frames
// as JSON until a write to the client fails. Frames published while the
// subscription's 8-frame buffer is full are skipped, not queued.
func (s *Server) handleWSFrames(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("frameserver: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	sub := s.bus.Subscribe(events.TopicFrame, 8)
	defer s.bus.Unsubscribe(sub)

	for msg := range sub.Channel {
		frame, ok := msg.(engine.Frame)
		if !ok {
			continue
		}
		if err := conn.WriteJSON(frame); err != nil {
			return
		}
	}
}
