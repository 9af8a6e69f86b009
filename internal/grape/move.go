package grape

import (
	"fmt"
	"strconv"
	"strings"
)

// String 走法记号：rot<步数>@<行>,<列>
func (m Move) String() string {
	return "rot" + strconv.Itoa(m.Steps) + "@" + strconv.Itoa(m.Row) + "," + strconv.Itoa(m.Col)
}

// ParseMove 解析 rot<步数>@<行>,<列>；只做语法检查，合法性交给 Rotate
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	rest, ok := strings.CutPrefix(s, "rot")
	if !ok {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMoveNotation, s)
	}
	stepsStr, coords, ok := strings.Cut(rest, "@")
	if !ok {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMoveNotation, s)
	}
	rowStr, colStr, ok := strings.Cut(coords, ",")
	if !ok {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMoveNotation, s)
	}

	var nums [3]int
	for i, part := range [3]string{stepsStr, rowStr, colStr} {
		if !plainDigits(part) {
			return Move{}, fmt.Errorf("%w: %q", ErrInvalidMoveNotation, s)
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return Move{}, fmt.Errorf("%w: %q", ErrInvalidMoveNotation, s)
		}
		nums[i] = n
	}
	return Move{Steps: nums[0], Row: nums[1], Col: nums[2]}, nil
}

// 只接受不带符号、没有前导零的十进制数
func plainDigits(s string) bool {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
