package grape

// rotateOffset 把相对轴心的偏移 (dr, dc) 顺时针转 steps 次：每次 (dr, dc) -> (-dc, dr)
func rotateOffset(dr, dc, steps int) (int, int) {
	for i := 0; i < steps; i++ {
		dr, dc = -dc, dr
	}
	return dr, dc
}

// checkPivot 检查轴心和转动步数，返回轴心上的棋子
func (p *Position) checkPivot(side Side, m Move) (Piece, error) {
	if m.Steps < 1 || m.Steps > 3 {
		return 0, ErrInvalidRotation
	}
	if !onBoard(m.Row, m.Col) {
		return 0, ErrPivotOffBoard
	}
	pc := p.Board.Squares[indexOf(m.Row, m.Col)]
	if pc == 0 {
		return 0, ErrEmptyPivot
	}
	if pc.Side() != side {
		return 0, ErrNotYourPiece
	}
	return pc, nil
}

// destinations 计算整块棋子 squares 绕 pivot 转 steps 后的落点。
// 任意一格出界或压到己方别的棋子都整体判非法。
func (b *Board) destinations(side Side, pivot int, squares []int, steps int) ([]int, error) {
	pr, pcol := rowOf(pivot), colOf(pivot)
	dests := make([]int, len(squares))
	for i, sq := range squares {
		dr, dc := rotateOffset(rowOf(sq)-pr, colOf(sq)-pcol, steps)
		r, c := pr+dr, pcol+dc
		if !onBoard(r, c) {
			return nil, ErrOutOfBounds
		}
		dests[i] = indexOf(r, c)
	}

	own := b.Squares[pivot]
	for _, to := range dests {
		occ := b.Squares[to]
		// 自己原来占的格子可以再落回去
		if occ == 0 || occ.Side() != side || (occ == own && containsSquare(squares, to)) {
			continue
		}
		return nil, ErrFriendlyFire
	}
	return dests, nil
}

func containsSquare(sorted []int, sq int) bool {
	lo, hi := 0, len(sorted)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case sorted[mid] == sq:
			return true
		case sorted[mid] < sq:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return false
}

// Rotate 执行一步旋转，返回新局面和被整块吃掉的棋子；原局面不变
func (p *Position) Rotate(m Move) (*Position, []Capture, error) {
	if p.GameOver() {
		return nil, nil, ErrGameAlreadyOver
	}
	side := p.SideToMove
	pc, err := p.checkPivot(side, m)
	if err != nil {
		return nil, nil, err
	}
	pivot := m.Pivot()
	squares := SquaresOf(&p.Board, pivot)
	dests, err := p.Board.destinations(side, pivot, squares, m.Steps)
	if err != nil {
		return nil, nil, err
	}

	np := *p
	// 不回写 p.Hash，父局面保持不变
	h := p.Hash
	if h == 0 {
		h = p.CalculateHash()
	}

	for _, sq := range squares {
		np.Board.Squares[sq] = 0
		h ^= pieceHashKey(pc, sq)
	}

	// 被压到的敌方棋子按走子前的棋盘整块移除；已清空的格子不会再算一次
	var captures []Capture
	for _, to := range dests {
		target := p.Board.Squares[to]
		if target == 0 || target.Side() == side || np.Board.Squares[to] == 0 {
			continue
		}
		block := SquaresOf(&p.Board, to)
		for _, sq := range block {
			np.Board.Squares[sq] = 0
			h ^= pieceHashKey(target, sq)
		}
		captures = append(captures, Capture{Kind: target.Kind(), Side: target.Side(), Squares: block})
	}

	for _, to := range dests {
		np.Board.Squares[to] = pc
		h ^= pieceHashKey(pc, to)
	}

	np.SideToMove = Opposite(side)
	h ^= zobristSide
	np.Hash = h

	np.Winner = NoSide
	for _, c := range captures {
		if c.Kind == KindOrangutan {
			np.Winner = Opposite(c.Side)
			break
		}
	}
	if np.Winner == NoSide {
		np.Winner = np.Board.centerOwner()
	}
	return &np, captures, nil
}

// ApplyRotation 同 Rotate，不关心吃子明细时用
func (p *Position) ApplyRotation(m Move) (*Position, error) {
	np, _, err := p.Rotate(m)
	return np, err
}

// MovesFrom 某个轴心上的合法走法，按步数 1→2→3
func (p *Position) MovesFrom(pivot int) []Move {
	if p.GameOver() || pivot < 0 || pivot >= NumSquares {
		return nil
	}
	pc := p.Board.Squares[pivot]
	if pc == 0 || pc.Side() != p.SideToMove {
		return nil
	}
	return p.appendMovesFrom(nil, p.SideToMove, pivot, SquaresOf(&p.Board, pivot))
}

func (p *Position) appendMovesFrom(moves []Move, side Side, pivot int, squares []int) []Move {
	for steps := 1; steps <= 3; steps++ {
		if _, err := p.Board.destinations(side, pivot, squares, steps); err != nil {
			continue
		}
		moves = append(moves, Move{Row: rowOf(pivot), Col: colOf(pivot), Steps: steps})
	}
	return moves
}

// GenerateMoves 当前走子方全部合法走法：轴心按行优先扫描（第 0 行起），同一轴心步数 1→2→3。
// 同一块棋子的每个格子都可以当轴心；终局返回 nil。
func (p *Position) GenerateMoves() []Move {
	if p.GameOver() {
		return nil
	}
	side := p.SideToMove
	moves := make([]Move, 0, 64)
	// 同一块棋子的格子集合只算一次
	var blockOf [NumSquares][]int
	for sq := 0; sq < NumSquares; sq++ {
		pc := p.Board.Squares[sq]
		if pc == 0 || pc.Side() != side {
			continue
		}
		if blockOf[sq] == nil {
			block := SquaresOf(&p.Board, sq)
			for _, s := range block {
				blockOf[s] = block
			}
		}
		moves = p.appendMovesFrom(moves, side, sq, blockOf[sq])
	}
	return moves
}

// HasMoves 是否至少有一步合法走法
func (p *Position) HasMoves() bool {
	if p.GameOver() {
		return false
	}
	side := p.SideToMove
	for sq := 0; sq < NumSquares; sq++ {
		pc := p.Board.Squares[sq]
		if pc == 0 || pc.Side() != side {
			continue
		}
		block := SquaresOf(&p.Board, sq)
		for steps := 1; steps <= 3; steps++ {
			if _, err := p.Board.destinations(side, sq, block, steps); err == nil {
				return true
			}
		}
	}
	return false
}
