package grape

import "sort"

// Preview 返回走法的落点（升序），不改动局面；非法走法返回与 Rotate 相同的错误
func (p *Position) Preview(m Move) ([]int, error) {
	if p.GameOver() {
		return nil, ErrGameAlreadyOver
	}
	if _, err := p.checkPivot(p.SideToMove, m); err != nil {
		return nil, err
	}
	pivot := m.Pivot()
	dests, err := p.Board.destinations(p.SideToMove, pivot, SquaresOf(&p.Board, pivot), m.Steps)
	if err != nil {
		return nil, err
	}
	sort.Ints(dests)
	return dests, nil
}

// IsThreatened 判断 bySide 是否能用一步旋转压到 sq（不管现在轮到谁走）
func (p *Position) IsThreatened(sq int, bySide Side) bool {
	if sq < 0 || sq >= NumSquares || bySide == NoSide {
		return false
	}
	var blockOf [NumSquares][]int
	for s := 0; s < NumSquares; s++ {
		pc := p.Board.Squares[s]
		if pc == 0 || pc.Side() != bySide {
			continue
		}
		if blockOf[s] == nil {
			block := SquaresOf(&p.Board, s)
			for _, b := range block {
				blockOf[b] = block
			}
		}
		for steps := 1; steps <= 3; steps++ {
			dests, err := p.Board.destinations(bySide, s, blockOf[s], steps)
			if err != nil {
				continue
			}
			for _, to := range dests {
				if to == sq {
					return true
				}
			}
		}
	}
	return false
}

// OrangutanThreatened 判断 side 的猩猩是否有任意一格会被对方下一步压到
func (p *Position) OrangutanThreatened(side Side) bool {
	want := MakePiece(side, KindOrangutan)
	if want == 0 {
		return false
	}
	enemy := Opposite(side)
	for sq, pc := range p.Board.Squares {
		if pc == want && p.IsThreatened(sq, enemy) {
			return true
		}
	}
	return false
}
