package grape

import "unicode"

const (
	Rows       = 10
	Cols       = 10
	NumSquares = Rows * Cols
)

// 第 0 行在最下方（蓝方底线），第 9 行在最上方
func indexOf(row, col int) int { return row*Cols + col }
func rowOf(sq int) int         { return sq / Cols }
func colOf(sq int) int         { return sq % Cols }

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// Square 把 (row, col) 转成格子下标，越界返回 -1
func Square(row, col int) int {
	if !onBoard(row, col) {
		return -1
	}
	return indexOf(row, col)
}

// RowCol 格子下标拆回 (row, col)
func RowCol(sq int) (int, int) { return rowOf(sq), colOf(sq) }

func Opposite(side Side) Side {
	if side == Blue {
		return Red
	}
	if side == Red {
		return Blue
	}
	return NoSide
}

// 中心四格，猩猩占满即胜
var CenterSquares = [4]int{
	indexOf(4, 4), indexOf(4, 5),
	indexOf(5, 4), indexOf(5, 5),
}

var letterToKind = map[rune]PieceKind{
	'z': KindZebra,
	'j': KindJaguar,
	'v': KindVampire,
	'o': KindOrangutan,
	'l': KindLeopard,
	't': KindTiger,
	'i': KindInsect,
	's': KindSeahorse,
}

var kindToLetter = func() [numKinds]rune {
	var out [numKinds]rune
	for ch, k := range letterToKind {
		out[k] = ch
	}
	return out
}()

func pieceToChar(p Piece) rune {
	if p == 0 {
		return '.'
	}
	k := p.Kind()
	if k <= KindNone || int(k) >= numKinds {
		return '.'
	}
	base := kindToLetter[k]
	if p.Side() == Blue {
		return unicode.ToUpper(base)
	}
	return base
}

// String FEN 里的字母，空格子是 '.'
func (p Piece) String() string { return string(pieceToChar(p)) }

// 只认 16 个 ASCII 字母
func charToPiece(ch rune) (Piece, bool) {
	switch {
	case ch >= 'a' && ch <= 'z':
		if kind, ok := letterToKind[ch]; ok {
			return MakePiece(Red, kind), true
		}
	case ch >= 'A' && ch <= 'Z':
		if kind, ok := letterToKind[ch+('a'-'A')]; ok {
			return MakePiece(Blue, kind), true
		}
	}
	return 0, false
}

// 开局：红方（小写）在上，蓝方（大写）在下，蓝先
const DefaultFEN = "lllziiiioo/lvzzsstjoo/vvzssttjjj/6t3/A/A/3T6/JJJTTSSZVV/OOJTSSZZVL/OOIIIIZLLL w"

func NewInitialPosition() *Position {
	pos, err := DecodePosition(DefaultFEN)
	if err != nil {
		panic("DefaultFEN 无法解析: " + err.Error())
	}
	return pos
}

// Material 按格子计：蓝方格子数 - 红方格子数
func (b *Board) Material() int {
	score := 0
	for _, pc := range b.Squares {
		if pc > 0 {
			score++
		} else if pc < 0 {
			score--
		}
	}
	return score
}

// OrangutanExists 该方是否还有猩猩
func (p *Position) OrangutanExists(side Side) bool {
	want := MakePiece(side, KindOrangutan)
	for _, pc := range p.Board.Squares {
		if pc == want {
			return true
		}
	}
	return false
}

// centerOwner 中心四格全是同一方的猩猩时返回该方
func (b *Board) centerOwner() Side {
	first := b.Squares[CenterSquares[0]]
	if first == 0 || first.Kind() != KindOrangutan {
		return NoSide
	}
	for _, sq := range CenterSquares[1:] {
		if b.Squares[sq] != first {
			return NoSide
		}
	}
	return first.Side()
}
