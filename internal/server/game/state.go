package game

import (
	"time"

	"grape/internal/grape"
)

// HistoryEntry 一步棋的记录
type HistoryEntry struct {
	Ply      int             `json:"ply"`
	Side     grape.Side      `json:"side"`
	Move     grape.Move      `json:"move"`
	Notation string          `json:"notation"`
	Captured []grape.Capture `json:"captured,omitempty"`
	Position string          `json:"position"` // 走完之后的局面
}

type GameState struct {
	ID        string
	Start     string // 开局局面
	Pos       *grape.Position
	History   []HistoryEntry
	CreatedAt time.Time
	UpdatedAt time.Time
}

// clone 给外部的只读副本；Position 本身不会被改，只复制切片
func (g *GameState) clone() *GameState {
	cp := *g
	cp.History = append([]HistoryEntry(nil), g.History...)
	return &cp
}

func (g *GameState) Status() string {
	switch {
	case g.Pos.GameOver():
		return "finished"
	case !g.Pos.HasMoves():
		return "no_moves"
	}
	return "ongoing"
}
