package engine

import "grape/internal/grape"

const defaultTTCap = 1_000_000

// 置换表条目：只存窗口内的精确值，并带上整个棋盘用来核对哈希碰撞
type ttEntry struct {
	Board grape.Board
	Side  grape.Side
	Depth int
	Score float64
}

type transTable struct {
	m   map[uint64]ttEntry
	cap int
}

func newTransTable(capacity int) *transTable {
	if capacity <= 0 {
		capacity = defaultTTCap
	}
	return &transTable{
		m:   make(map[uint64]ttEntry, 1<<14),
		cap: capacity,
	}
}

// probe 只在深度完全相同时命中，保证开不开置换表结果一致
func (t *transTable) probe(pos *grape.Position, depth int) (float64, bool) {
	if t == nil {
		return 0, false
	}
	entry, ok := t.m[pos.EnsureHash()]
	if !ok || entry.Depth != depth || entry.Side != pos.SideToMove || entry.Board != pos.Board {
		return 0, false
	}
	return entry.Score, true
}

func (t *transTable) store(pos *grape.Position, depth int, score float64) {
	if t == nil {
		return
	}
	// 不加锁：每个搜索线程各自一张表
	if len(t.m) >= t.cap {
		t.m = make(map[uint64]ttEntry, 1<<14)
	}
	t.m[pos.EnsureHash()] = ttEntry{
		Board: pos.Board,
		Side:  pos.SideToMove,
		Depth: depth,
		Score: score,
	}
}

func (t *transTable) size() int {
	if t == nil {
		return 0
	}
	return len(t.m)
}
