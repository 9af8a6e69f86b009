package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"grape/internal/config"
	"grape/internal/server/game"
	"grape/internal/server/ws"
)

type Server struct {
	games *game.Manager
	cfg   *config.Store
	hub   *ws.Hub
	log   zerolog.Logger
}

func NewServer(cfg *config.Store, games *game.Manager, hub *ws.Hub, logger zerolog.Logger) *Server {
	return &Server{
		games: games,
		cfg:   cfg,
		hub:   hub,
		log:   logger.With().Str("component", "http").Logger(),
	}
}

// Handler 组装所有路由；desktopDir 为空时不挂静态页面
func (s *Server) Handler(desktopDir, mobileDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/api/new_game", s.handleNewGame)
	r.Post("/api/state", s.handleState)
	r.Post("/api/play", s.handlePlay)
	r.Post("/api/undo", s.handleUndo)
	r.Delete("/api/game/{gameID}", s.handleDeleteGame)
	r.Post("/api/ai_move", s.handleAiMove)
	r.Post("/api/pieces", s.handlePieces)
	r.Post("/api/moves_from", s.handleMovesFrom)
	r.Get("/api/config", s.handleGetConfig)
	r.Post("/api/config", s.handleSetConfig)
	r.Get("/ws/{gameID}", s.handleWS)

	if desktopDir != "" {
		RegisterStaticRoutes(r, desktopDir, mobileDir)
	}
	return r
}

// 每个请求一行日志
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
