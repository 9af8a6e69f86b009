package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"grape/internal/grape"
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrNothingToUndo = errors.New("no move to take back")
)

type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*GameState)}
}

// NewGame fen 为空时用默认开局
func (m *Manager) NewGame(fen string) (*GameState, error) {
	pos := grape.NewInitialPosition()
	if fen != "" {
		var err error
		pos, err = grape.DecodePosition(fen)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	g := &GameState{
		ID:        uuid.NewString(),
		Start:     pos.Encode(),
		Pos:       pos,
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.mu.Lock()
	m.games[g.ID] = g
	m.mu.Unlock()
	return g.clone(), nil
}

func (m *Manager) Get(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g.clone(), nil
}

// Play 在对局上走一步；非法走法原样返回规则层的错误，对局不变
func (m *Manager) Play(id string, mv grape.Move) (*GameState, []grape.Capture, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return nil, nil, ErrGameNotFound
	}

	side := g.Pos.SideToMove
	next, captures, err := g.Pos.Rotate(mv)
	if err != nil {
		return nil, nil, fmt.Errorf("move %s: %w", mv, err)
	}
	g.Pos = next
	g.History = append(g.History, HistoryEntry{
		Ply:      len(g.History) + 1,
		Side:     side,
		Move:     mv,
		Notation: mv.String(),
		Captured: captures,
		Position: next.Encode(),
	})
	g.UpdatedAt = time.Now()
	return g.clone(), captures, nil
}

// Undo 悔一步：回到上一步之后的局面（或开局），终局也可以悔
func (m *Manager) Undo(id string) (*GameState, HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return nil, HistoryEntry{}, ErrGameNotFound
	}
	n := len(g.History)
	if n == 0 {
		return nil, HistoryEntry{}, ErrNothingToUndo
	}

	fen := g.Start
	if n > 1 {
		fen = g.History[n-2].Position
	}
	prev, err := grape.DecodePosition(fen)
	if err != nil {
		// 这些串都是自己 Encode 出来的
		return nil, HistoryEntry{}, fmt.Errorf("restore %q: %w", fen, err)
	}
	undone := g.History[n-1]
	g.Pos = prev
	g.History = g.History[:n-1:n-1]
	g.UpdatedAt = time.Now()
	return g.clone(), undone, nil
}

func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return false
	}
	delete(m.games, id)
	return true
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
