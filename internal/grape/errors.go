package grape

import (
	"errors"
	"fmt"
)

var ErrInvalidNotation = errors.New("invalid board notation")

// 走子被拒绝：都是用户层面的非法操作，局面保持不变
var (
	ErrPivotOffBoard   = errors.New("pivot off board")
	ErrEmptyPivot      = errors.New("pivot square is empty")
	ErrNotYourPiece    = errors.New("not your piece")
	ErrInvalidRotation = errors.New("rotation steps must be 1, 2 or 3")
	ErrOutOfBounds     = errors.New("rotation leaves the board")
	ErrFriendlyFire    = errors.New("rotation lands on a friendly piece")
	ErrGameAlreadyOver = errors.New("game already over")

	ErrInvalidMoveNotation = errors.New("invalid move notation")
	ErrUnknownShape        = errors.New("unknown piece shape")
)

type NotationErrorKind int

const (
	NotationRowCount NotationErrorKind = iota
	NotationRowLength
	NotationUnknownChar
	NotationSideToken
)

// NotationError 棋盘串解析失败；Row 为串中的行序号（0 = 第 9 行）
type NotationError struct {
	Kind NotationErrorKind
	Row  int
	Char rune
	Got  int
}

func (e *NotationError) Error() string {
	switch e.Kind {
	case NotationRowCount:
		return fmt.Sprintf("invalid board notation: %d rows, want %d", e.Got, Rows)
	case NotationRowLength:
		return fmt.Sprintf("invalid board notation: row %d has %d cells, want %d", e.Row, e.Got, Cols)
	case NotationUnknownChar:
		return fmt.Sprintf("invalid board notation: unknown character %q in row %d", e.Char, e.Row)
	case NotationSideToken:
		return "invalid board notation: bad side-to-move token"
	}
	return ErrInvalidNotation.Error()
}

func (e *NotationError) Unwrap() error { return ErrInvalidNotation }
