package grape

import "strings"

// Encode 输出规范棋盘串：10 行用“/”隔开，第 9 行在前；
// 空位用数字压缩，整行 10 个空位写成 A；空格后 w/b 表示轮到谁走
func (p *Position) Encode() string {
	var sb strings.Builder
	sb.Grow(NumSquares + Rows + 2)
	for r := Rows - 1; r >= 0; r-- {
		if r < Rows-1 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Cols; c++ {
			pc := p.Board.Squares[indexOf(r, c)]
			if pc == 0 {
				empty++
				continue
			}
			if empty > 0 {
				writeEmptyRun(&sb, empty)
				empty = 0
			}
			sb.WriteRune(pieceToChar(pc))
		}
		if empty > 0 {
			writeEmptyRun(&sb, empty)
		}
	}
	sb.WriteByte(' ')
	if p.SideToMove == Red {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	return sb.String()
}

func writeEmptyRun(sb *strings.Builder, n int) {
	if n == Cols {
		sb.WriteByte('A')
		return
	}
	sb.WriteByte(byte('0' + n))
}

// DecodePosition 解析棋盘串，任何格式问题都整体拒绝
func DecodePosition(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return nil, &NotationError{Kind: NotationRowCount, Got: 0}
	}
	if len(parts) > 2 {
		return nil, &NotationError{Kind: NotationSideToken}
	}
	rows := strings.Split(parts[0], "/")
	if len(rows) != Rows {
		return nil, &NotationError{Kind: NotationRowCount, Got: len(rows)}
	}

	var b Board
	for i, row := range rows {
		r := Rows - 1 - i
		c := 0
		for _, ch := range row {
			n := 0
			switch {
			case ch >= '1' && ch <= '9':
				n = int(ch - '0')
			case ch == 'A':
				n = Cols
			case ch == '.':
				n = 1
			}
			if n > 0 {
				c += n
				if c > Cols {
					return nil, &NotationError{Kind: NotationRowLength, Row: i, Got: c}
				}
				continue
			}
			pc, ok := charToPiece(ch)
			if !ok {
				return nil, &NotationError{Kind: NotationUnknownChar, Row: i, Char: ch}
			}
			if c >= Cols {
				return nil, &NotationError{Kind: NotationRowLength, Row: i, Got: c + 1}
			}
			b.Squares[indexOf(r, c)] = pc
			c++
		}
		if c != Cols {
			return nil, &NotationError{Kind: NotationRowLength, Row: i, Got: c}
		}
	}

	stm := Blue
	if len(parts) == 2 {
		switch parts[1] {
		case "w":
			stm = Blue
		case "b":
			stm = Red
		default:
			return nil, &NotationError{Kind: NotationSideToken}
		}
	}

	pos := &Position{
		Board:      b,
		SideToMove: stm,
	}
	pos.Winner = pos.detectWinner()
	pos.Hash = pos.CalculateHash()
	return pos, nil
}

// 载入局面时的胜负判定：猩猩占满中心，或只有一方的猩猩已经没了
func (p *Position) detectWinner() Side {
	if owner := p.Board.centerOwner(); owner != NoSide {
		return owner
	}
	blue := p.OrangutanExists(Blue)
	red := p.OrangutanExists(Red)
	switch {
	case blue && !red:
		return Blue
	case red && !blue:
		return Red
	}
	return NoSide
}
