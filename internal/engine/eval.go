package engine

import "grape/internal/grape"

const (
	WinScore    = 10000 // 终局：蓝胜 +，红胜 -
	NoMoveScore = 9999  // 走子方无棋可走，按负处理，比真正的胜负略轻

	centerRow = 4.5
	centerCol = 4.5
)

// Evaluate 从蓝方视角的静态评价：正数蓝方好，负数红方好
// 子力按格子数算，再加上双方猩猩离中心远近的差
func Evaluate(pos *grape.Position) float64 {
	if pos.GameOver() {
		return TerminalScore(pos.Winner)
	}
	material := float64(pos.Board.Material())
	blueDist := orangutanCenterDistSq(&pos.Board, grape.Blue)
	redDist := orangutanCenterDistSq(&pos.Board, grape.Red)
	return material + 0.5*(redDist-blueDist)
}

func TerminalScore(winner grape.Side) float64 {
	switch winner {
	case grape.Blue:
		return WinScore
	case grape.Red:
		return -WinScore
	}
	return 0
}

// noMoveScore 无棋可走判走子方负
func noMoveScore(side grape.Side) float64 {
	if side == grape.Blue {
		return -NoMoveScore
	}
	return NoMoveScore
}

// 该方所有猩猩格子的平均位置到棋盘中心 (4.5, 4.5) 的距离平方；没有猩猩记 0
func orangutanCenterDistSq(b *grape.Board, side grape.Side) float64 {
	want := grape.MakePiece(side, grape.KindOrangutan)
	var sumR, sumC float64
	n := 0
	for sq, pc := range b.Squares {
		if pc != want {
			continue
		}
		r, c := grape.RowCol(sq)
		sumR += float64(r)
		sumC += float64(c)
		n++
	}
	if n == 0 {
		return 0
	}
	dr := sumR/float64(n) - centerRow
	dc := sumC/float64(n) - centerCol
	return dr*dr + dc*dc
}
