package grape

import "fmt"

type Side int8

const (
	NoSide Side = -1
	Blue   Side = 0 // 先手，大写字母，FEN 中的 w
	Red    Side = 1 // 后手，小写字母，FEN 中的 b
)

func (s Side) String() string {
	switch s {
	case Blue:
		return "blue"
	case Red:
		return "red"
	default:
		return "none"
	}
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(b []byte) error {
	switch string(b) {
	case "blue", "w":
		*s = Blue
	case "red", "b":
		*s = Red
	case "none", "":
		*s = NoSide
	default:
		return fmt.Errorf("unknown side %q", b)
	}
	return nil
}

type PieceKind int8

const (
	KindNone      PieceKind = iota
	KindZebra               // Z
	KindJaguar              // J
	KindVampire             // V
	KindOrangutan           // O，相当于王
	KindLeopard             // L
	KindTiger               // T
	KindInsect              // I
	KindSeahorse            // S

	numKinds = 9
)

var kindNames = [numKinds]string{
	"", "zebra", "jaguar", "vampire", "orangutan", "leopard", "tiger", "insect", "seahorse",
}

func (k PieceKind) String() string {
	if k <= KindNone || int(k) >= numKinds {
		return "none"
	}
	return kindNames[k]
}

func (k PieceKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *PieceKind) UnmarshalText(b []byte) error {
	for i := 1; i < numKinds; i++ {
		if kindNames[i] == string(b) {
			*k = PieceKind(i)
			return nil
		}
	}
	if string(b) == "none" || len(b) == 0 {
		*k = KindNone
		return nil
	}
	return fmt.Errorf("unknown piece kind %q", b)
}

type Piece int8 // 0=空；>0 蓝；<0 红；abs=PieceKind

func MakePiece(side Side, kind PieceKind) Piece {
	if kind == KindNone || side == NoSide {
		return 0
	}
	if side == Blue {
		return Piece(kind)
	}
	return -Piece(kind)
}

func (p Piece) Kind() PieceKind {
	if p < 0 {
		return PieceKind(-p)
	}
	return PieceKind(p)
}

func (p Piece) Side() Side {
	if p == 0 {
		return NoSide
	}
	if p > 0 {
		return Blue
	}
	return Red
}

type Board struct {
	Squares [NumSquares]Piece
}

// At 越界返回空
func (b *Board) At(row, col int) Piece {
	if !onBoard(row, col) {
		return 0
	}
	return b.Squares[indexOf(row, col)]
}

// Move = 以 (Row, Col) 为轴心，把轴心上的那块棋子顺时针转 Steps×90°
type Move struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Steps int `json:"steps"`
}

func (m Move) Pivot() int { return indexOf(m.Row, m.Col) }

// Position = 棋盘 + 轮到谁走 + 胜负（NoSide 表示对局继续）
// 每一步都产生新的 Position，旧的不会被改动。
type Position struct {
	Board      Board
	SideToMove Side
	Winner     Side
	Hash       uint64
}

func (p *Position) GameOver() bool {
	return p.Winner != NoSide
}

// Capture 一次旋转吃掉的一整块棋子
type Capture struct {
	Kind    PieceKind `json:"kind"`
	Side    Side      `json:"side"`
	Squares []int     `json:"squares"`
}
