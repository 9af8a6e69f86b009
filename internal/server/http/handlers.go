package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"grape/internal/config"
	"grape/internal/engine"
	"grape/internal/grape"
	"grape/internal/server/game"
	"grape/internal/server/ws"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, game.ErrGameNotFound) {
		status = http.StatusNotFound
	}
	s.log.Debug().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request rejected")
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

var errBadJSON = errors.New("bad json")

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errBadJSON
	}
	return nil
}

func gameResponse(g *game.GameState, withHistory bool) GameResponse {
	resp := GameResponse{
		GameID:     g.ID,
		Position:   g.Pos.Encode(),
		ToMove:     g.Pos.SideToMove,
		LegalMoves: movesToDTO(g.Pos.GenerateMoves()),
		Status:     g.Status(),
		Winner:     g.Pos.Winner,
	}
	if withHistory {
		resp.History = g.History
	}
	return resp
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	// 空 body 当作默认开局
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	g, err := s.games.NewGame(req.FEN)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info().Str("game", g.ID).Str("fen", g.Start).Msg("new game")
	writeJSON(w, http.StatusOK, gameResponse(g, false))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	g, err := s.games.Get(req.GameID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, gameResponse(g, true))
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var mv grape.Move
	switch {
	case req.Notation != "":
		parsed, err := grape.ParseMove(req.Notation)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		mv = parsed
	case req.Move != nil:
		mv = dtoToMove(*req.Move)
	default:
		s.writeError(w, r, errors.New("missing move"))
		return
	}

	g, captures, err := s.games.Play(req.GameID, mv)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.publishMove(g, mv, captures)

	if captures == nil {
		captures = []grape.Capture{}
	}
	writeJSON(w, http.StatusOK, PlayResponse{
		Position:            g.Pos.Encode(),
		ToMove:              g.Pos.SideToMove,
		Captured:            captures,
		Winner:              g.Pos.Winner,
		Status:              g.Status(),
		LegalMoves:          movesToDTO(g.Pos.GenerateMoves()),
		OrangutanThreatened: g.Pos.OrangutanThreatened(g.Pos.SideToMove),
	})
}

// 撤回最后一步；已经结束的对局也可以悔棋
func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	g, undone, err := s.games.Undo(req.GameID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info().Str("game", g.ID).Str("move", undone.Notation).Int("ply", undone.Ply).Msg("move taken back")
	if s.hub != nil {
		s.hub.Publish(g.ID, ws.StateEvent(g.ID, g.Pos))
	}
	writeJSON(w, http.StatusOK, UndoResponse{GameResponse: gameResponse(g, true), Undone: undone})
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	if !s.games.Delete(gameID) {
		s.writeError(w, r, game.ErrGameNotFound)
		return
	}
	if s.hub != nil {
		s.hub.CloseGame(gameID)
	}
	s.log.Info().Str("game", gameID).Msg("game deleted")
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) publishMove(g *game.GameState, mv grape.Move, captures []grape.Capture) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(g.ID, ws.MoveEvent(g.ID, mv, g.Pos, captures))
}

// positionFrom 请求里的局面：game_id 优先，否则解析 position
func (s *Server) positionFrom(gameID, fen string) (*grape.Position, error) {
	if gameID != "" {
		g, err := s.games.Get(gameID)
		if err != nil {
			return nil, err
		}
		return g.Pos, nil
	}
	if fen == "" {
		return nil, errors.New("missing position")
	}
	return grape.DecodePosition(fen)
}

func searchConfig(cfg config.Config, depth int) engine.SearchConfig {
	return engine.SearchConfig{
		MaxDepth: depth,
		UseTT:    cfg.UseTT,
		TTCap:    cfg.TTCap,
		Parallel: cfg.Parallel,
		Workers:  cfg.Workers,
	}
}

func (s *Server) handleAiMove(w http.ResponseWriter, r *http.Request) {
	var req AiMoveRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	pos, err := s.positionFrom(req.GameID, req.Position)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cfg := s.cfg.Get()
	depth := cfg.ClampDepth(req.MaxDepth)
	resp := AiMoveResponse{Position: pos.Encode(), Depth: depth}

	// 只思考不落子，除非 apply
	res, err := engine.NewEngine().Search(pos, searchConfig(cfg, depth))
	if errors.Is(err, engine.ErrTerminalPosition) {
		resp.Score = engine.TerminalScore(pos.Winner)
		resp.Status = "finished"
		writeJSON(w, http.StatusOK, resp)
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp.Score = res.Score
	resp.Nodes = res.Nodes
	resp.TimeMs = res.TimeUsed.Milliseconds()
	resp.Shortcut = res.Shortcut
	if !res.Found {
		resp.Status = "no_moves"
		writeJSON(w, http.StatusOK, resp)
		return
	}

	s.log.Info().
		Str("move", res.BestMove.String()).
		Float64("score", res.Score).
		Int("depth", res.Depth).
		Int64("nodes", res.Nodes).
		Dur("took", res.TimeUsed).
		Bool("shortcut", res.Shortcut).
		Msg("ai move")

	best := moveToDTO(res.BestMove)
	resp.BestMove = &best
	resp.Notation = best.Notation
	resp.Status = "ok"

	if req.Apply && req.GameID != "" {
		g, captures, err := s.games.Play(req.GameID, res.BestMove)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.publishMove(g, res.BestMove, captures)
		resp.ResultPosition = g.Pos.Encode()
	} else {
		next, err := pos.ApplyRotation(res.BestMove)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		resp.ResultPosition = next.Encode()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePieces(w http.ResponseWriter, r *http.Request) {
	var req PositionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	pos, err := grape.DecodePosition(req.Position)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	pieces, err := pos.Board.Orientations()
	resp := PiecesResponse{Pieces: pieces}
	if err != nil {
		// 只影响显示，不拒绝请求
		s.log.Warn().Err(err).Str("fen", req.Position).Msg("unrecognised piece shape")
		resp.Error = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMovesFrom(w http.ResponseWriter, r *http.Request) {
	var req MovesFromRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	pos, err := s.positionFrom(req.GameID, req.Position)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	pivot := grape.Square(req.Row, req.Col)
	if pivot < 0 {
		s.writeError(w, r, grape.ErrPivotOffBoard)
		return
	}

	resp := MovesFromResponse{Moves: []PreviewDTO{}}
	for _, mv := range pos.MovesFrom(pivot) {
		squares, err := pos.Preview(mv)
		if err != nil {
			continue
		}
		resp.Moves = append(resp.Moves, PreviewDTO{Move: moveToDTO(mv), Squares: squares})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.Get())
}

// 在当前配置上覆盖请求里给出的字段
func (s *Server) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	cfg := s.cfg.Get()
	if err := decodeJSON(r, &cfg); err != nil {
		s.writeError(w, r, err)
		return
	}
	cfg = s.cfg.Update(cfg)
	s.log.Info().Int("search_depth", cfg.SearchDepth).Bool("use_tt", cfg.UseTT).Bool("parallel", cfg.Parallel).Msg("config updated")
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	g, err := s.games.Get(gameID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.hub == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "websocket disabled"})
		return
	}
	hello := ws.StateEvent(g.ID, g.Pos)
	s.hub.Serve(w, r, gameID, &hello)
}
