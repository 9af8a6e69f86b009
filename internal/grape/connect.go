package grape

import "sort"

var orthoDirs = [4][2]int{{-1, 0}, {+1, 0}, {0, -1}, {0, +1}}

// SquaresOf 从 seed 出发做四邻域洪水填充，只收完全相同的 (方, 种类) 格子。
// 结果按下标升序，空格返回 nil。棋子没有固定身份，每次都重新算，不做缓存。
func SquaresOf(b *Board, seed int) []int {
	if seed < 0 || seed >= NumSquares {
		return nil
	}
	target := b.Squares[seed]
	if target == 0 {
		return nil
	}

	var visited [NumSquares]bool
	visited[seed] = true
	stack := []int{seed}
	out := make([]int, 0, 4)
	for len(stack) > 0 {
		sq := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, sq)

		r, c := rowOf(sq), colOf(sq)
		for _, d := range orthoDirs {
			r2, c2 := r+d[0], c+d[1]
			if !onBoard(r2, c2) {
				continue
			}
			to := indexOf(r2, c2)
			if visited[to] || b.Squares[to] != target {
				continue
			}
			visited[to] = true
			stack = append(stack, to)
		}
	}
	sort.Ints(out)
	return out
}

// PieceSquares 当前局面下 seed 所在的整块棋子
func (p *Position) PieceSquares(seed int) []int {
	return SquaresOf(&p.Board, seed)
}

// Pieces 枚举棋盘上所有连通块，按每块最小下标排序
func (b *Board) Pieces() [][]int {
	var seen [NumSquares]bool
	var out [][]int
	for sq := 0; sq < NumSquares; sq++ {
		if b.Squares[sq] == 0 || seen[sq] {
			continue
		}
		block := SquaresOf(b, sq)
		for _, s := range block {
			seen[s] = true
		}
		out = append(out, block)
	}
	return out
}
