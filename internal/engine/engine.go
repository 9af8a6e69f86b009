package engine

import (
	"errors"

	"grape/internal/grape"
)

// ErrTerminalPosition 对已经结束的对局求最佳着法
var ErrTerminalPosition = errors.New("position is already decided")

type Engine struct {
	tt    *transTable // nil 表示不用置换表
	nodes int64
}

func NewEngine() *Engine {
	return &Engine{}
}

// FindBestMove 单线程、无置换表的便捷入口；ok=false 表示终局或无棋可走
func FindBestMove(pos *grape.Position, depth int) (grape.Move, float64, bool) {
	res, err := NewEngine().Search(pos, SearchConfig{MaxDepth: depth})
	if err != nil {
		return grape.Move{}, Evaluate(pos), false
	}
	return res.BestMove, res.Score, res.Found
}
