package engine

import (
	"math"
	"runtime"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"grape/internal/grape"
)

const defaultDepth = 3

// 搜索配置
type SearchConfig struct {
	MaxDepth int  // 搜索深度（ply），<=0 用默认 3
	UseTT    bool // 置换表，只影响速度
	TTCap    int  // 置换表条目上限，0 用默认值
	Parallel bool // 根节点各着法并行搜索
	Workers  int  // 并行时的 goroutine 上限，0 用 CPU 数
}

// 搜索结果
type SearchResult struct {
	BestMove grape.Move    // 最佳着法
	Found    bool          // false：走子方无棋可走，Score 为 ∓9999
	Score    float64       // 蓝方视角
	Depth    int           // 搜索深度
	Nodes    int64         // 节点数
	TimeUsed time.Duration // 花费时间
	Shortcut bool          // 一步直接获胜，没有进入搜索
}

type child struct {
	move     grape.Move
	pos      *grape.Position
	material int
}

// 按生成顺序展开所有子局面
func expand(pos *grape.Position) []child {
	moves := pos.GenerateMoves()
	out := make([]child, 0, len(moves))
	for _, mv := range moves {
		np, err := pos.ApplyRotation(mv)
		if err != nil {
			continue
		}
		out = append(out, child{move: mv, pos: np, material: np.Board.Material()})
	}
	return out
}

// 根节点：先找一步制胜；否则每个着法用完整窗口搜 depth-1，取第一个严格更优的
func (e *Engine) Search(pos *grape.Position, cfg SearchConfig) (SearchResult, error) {
	if pos.GameOver() {
		return SearchResult{}, ErrTerminalPosition
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = defaultDepth
	}
	start := time.Now()
	atomic.StoreInt64(&e.nodes, 1)
	if cfg.UseTT && e.tt == nil {
		e.tt = newTransTable(cfg.TTCap)
	}

	side := pos.SideToMove
	children := expand(pos)
	if len(children) == 0 {
		return SearchResult{
			Score:    noMoveScore(side),
			Depth:    cfg.MaxDepth,
			Nodes:    1,
			TimeUsed: time.Since(start),
		}, nil
	}

	// 绝杀剪枝：能直接赢就不搜了
	for _, ch := range children {
		if ch.pos.Winner == side {
			return SearchResult{
				BestMove: ch.move,
				Found:    true,
				Score:    TerminalScore(side),
				Depth:    1,
				Nodes:    atomic.LoadInt64(&e.nodes) + int64(len(children)),
				TimeUsed: time.Since(start),
				Shortcut: true,
			}, nil
		}
	}

	var scores []float64
	if cfg.Parallel && len(children) > 1 {
		scores = e.searchRootParallel(children, cfg)
	} else {
		scores = make([]float64, len(children))
		for i, ch := range children {
			scores[i] = e.alphaBeta(ch.pos, cfg.MaxDepth-1, math.Inf(-1), math.Inf(1))
		}
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if better(side, scores[i], scores[best]) {
			best = i
		}
	}

	return SearchResult{
		BestMove: children[best].move,
		Found:    true,
		Score:    scores[best],
		Depth:    cfg.MaxDepth,
		Nodes:    atomic.LoadInt64(&e.nodes),
		TimeUsed: time.Since(start),
	}, nil
}

// 每个 goroutine 用自己的 Engine/TT，窗口各自独立，结果按生成顺序汇总
func (e *Engine) searchRootParallel(children []child, cfg SearchConfig) []float64 {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	scores := make([]float64, len(children))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, ch := range children {
		g.Go(func() error {
			local := &Engine{}
			if cfg.UseTT {
				local.tt = newTransTable(cfg.TTCap)
			}
			scores[i] = local.alphaBeta(ch.pos, cfg.MaxDepth-1, math.Inf(-1), math.Inf(1))
			atomic.AddInt64(&e.nodes, local.nodes)
			return nil
		})
	}
	_ = g.Wait()
	return scores
}

func better(side grape.Side, a, b float64) bool {
	if side == grape.Blue {
		return a > b
	}
	return a < b
}

// 内部递归：标准 alpha-beta，蓝方走为极大层
func (e *Engine) alphaBeta(pos *grape.Position, depth int, alpha, beta float64) float64 {
	e.nodes++

	if pos.GameOver() {
		return TerminalScore(pos.Winner)
	}
	if depth <= 0 {
		return Evaluate(pos)
	}
	if score, ok := e.tt.probe(pos, depth); ok {
		return score
	}

	children := expand(pos)
	side := pos.SideToMove
	if len(children) == 0 {
		return noMoveScore(side)
	}
	orderChildren(side, children)

	alpha0, beta0 := alpha, beta
	var bestScore float64
	if side == grape.Blue {
		bestScore = math.Inf(-1)
		for _, ch := range children {
			score := e.alphaBeta(ch.pos, depth-1, alpha, beta)
			if score > bestScore {
				bestScore = score
			}
			if score > alpha {
				alpha = score
			}
			if beta <= alpha {
				break
			}
		}
	} else {
		bestScore = math.Inf(1)
		for _, ch := range children {
			score := e.alphaBeta(ch.pos, depth-1, alpha, beta)
			if score < bestScore {
				bestScore = score
			}
			if score < beta {
				beta = score
			}
			if beta <= alpha {
				break
			}
		}
	}

	// 只有落在原窗口内的值才是精确值
	if bestScore > alpha0 && bestScore < beta0 {
		e.tt.store(pos, depth, bestScore)
	}
	return bestScore
}

// 直接获胜的排最前，其余按子力：极大层降序，极小层升序；相同的保持生成顺序
func orderChildren(side grape.Side, children []child) {
	sort.SliceStable(children, func(i, j int) bool {
		wi := children[i].pos.Winner == side
		wj := children[j].pos.Winner == side
		if wi != wj {
			return wi
		}
		if side == grape.Blue {
			return children[i].material > children[j].material
		}
		return children[i].material < children[j].material
	})
}
