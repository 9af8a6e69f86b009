package httpserver

import (
	"grape/internal/grape"
	"grape/internal/server/game"
)

// 前端用的招法结构
type MoveDTO struct {
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Steps    int    `json:"steps"`
	Notation string `json:"notation,omitempty"`
}

func dtoToMove(m MoveDTO) grape.Move {
	return grape.Move{Row: m.Row, Col: m.Col, Steps: m.Steps}
}

func moveToDTO(m grape.Move) MoveDTO {
	return MoveDTO{Row: m.Row, Col: m.Col, Steps: m.Steps, Notation: m.String()}
}

func movesToDTO(ms []grape.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

// NewGame 请求，fen 为空用默认开局
type NewGameRequest struct {
	FEN string `json:"fen"`
}

// NewGame / State 共用的返回
type GameResponse struct {
	GameID     string              `json:"game_id"`
	Position   string              `json:"position"`
	ToMove     grape.Side          `json:"to_move"`
	LegalMoves []MoveDTO           `json:"legal_moves"`
	Status     string              `json:"status"` // ongoing / finished / no_moves
	Winner     grape.Side          `json:"winner"`
	History    []game.HistoryEntry `json:"history,omitempty"`
}

type StateRequest struct {
	GameID string `json:"game_id"`
}

// 悔棋之后的对局，外加被撤掉的那一步
type UndoResponse struct {
	GameResponse
	Undone game.HistoryEntry `json:"undone"`
}

// Play 请求：move 和 notation 二选一，notation 优先
type PlayRequest struct {
	GameID   string   `json:"game_id"`
	Move     *MoveDTO `json:"move,omitempty"`
	Notation string   `json:"notation,omitempty"`
}

type PlayResponse struct {
	Position            string          `json:"position"`
	ToMove              grape.Side      `json:"to_move"`
	Captured            []grape.Capture `json:"captured"`
	Winner              grape.Side      `json:"winner"`
	Status              string          `json:"status"`
	LegalMoves          []MoveDTO       `json:"legal_moves"`
	OrangutanThreatened bool            `json:"orangutan_threatened"` // 轮到走的一方猩猩是否被威胁
}

// AiMoveRequest 让 AI 给出一步；game_id 和 position 二选一
type AiMoveRequest struct {
	GameID   string `json:"game_id"`
	Position string `json:"position"`
	MaxDepth int    `json:"max_depth"`
	Apply    bool   `json:"apply"` // 带 game_id 时直接在对局上落子
}

type AiMoveResponse struct {
	BestMove       *MoveDTO `json:"best_move"`
	Notation       string   `json:"notation,omitempty"`
	Score          float64  `json:"score"`
	Depth          int      `json:"depth"`
	Nodes          int64    `json:"nodes"`
	TimeMs         int64    `json:"time_ms"`
	Shortcut       bool     `json:"shortcut"`
	Position       string   `json:"position"`                  // 搜索时的局面
	ResultPosition string   `json:"result_position,omitempty"` // 走完之后的局面
	Status         string   `json:"status"`                    // ok / no_moves / finished
}

type PositionRequest struct {
	Position string `json:"position"`
}

type PiecesResponse struct {
	Pieces []grape.Orientation `json:"pieces"`
	Error  string              `json:"error,omitempty"` // 有无法识别的形状时给出第一个
}

// MovesFrom 请求：某个轴心的走法和落点
type MovesFromRequest struct {
	GameID   string `json:"game_id"`
	Position string `json:"position"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
}

type PreviewDTO struct {
	Move    MoveDTO `json:"move"`
	Squares []int   `json:"squares"`
}

type MovesFromResponse struct {
	Moves []PreviewDTO `json:"moves"`
}

type errorResponse struct {
	Error string `json:"error"`
}
