package grape

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// 各棋子的基础形状（行向下为正，仅用于显示朝向的识别）
var baseShapes = map[PieceKind][][2]int{
	KindLeopard:  {{0, 0}, {0, 1}, {0, 2}, {1, 0}},
	KindTiger:    {{0, 1}, {1, 0}, {1, 1}, {2, 1}},
	KindInsect:   {{0, 0}, {0, 1}, {0, 2}, {0, 3}},
	KindJaguar:   {{0, 0}, {1, 0}, {1, 1}, {1, 2}},
	KindZebra:    {{0, 1}, {1, 0}, {1, 1}, {2, 0}},
	KindSeahorse: {{0, 1}, {0, 2}, {1, 0}, {1, 1}},
	KindVampire:  {{0, 1}, {1, 0}, {1, 1}},
}

// shapeRotations[kind][指纹] = 0/90/180/270，进程启动时算好，之后只读
var shapeRotations map[PieceKind]map[string]int

func init() {
	initShapeRotations()
}

func initShapeRotations() {
	shapeRotations = make(map[PieceKind]map[string]int, len(baseShapes))
	for kind, base := range baseShapes {
		table := make(map[string]int, 4)
		shape := base
		for rot := 0; rot < 360; rot += 90 {
			key := shapeFingerprint(shape)
			// 对称形状会重复出现，保留最小角度
			if _, ok := table[key]; !ok {
				table[key] = rot
			}
			shape = rotateShape90(shape)
		}
		shapeRotations[kind] = table
	}
}

func rotateShape90(shape [][2]int) [][2]int {
	maxR := 0
	for _, p := range shape {
		if p[0] > maxR {
			maxR = p[0]
		}
	}
	out := make([][2]int, len(shape))
	minR, minC := 1<<30, 1<<30
	for i, p := range shape {
		out[i] = [2]int{p[1], maxR - p[0]}
		minR = min(minR, out[i][0])
		minC = min(minC, out[i][1])
	}
	for i := range out {
		out[i][0] -= minR
		out[i][1] -= minC
	}
	return out
}

func shapeFingerprint(shape [][2]int) string {
	sorted := make([][2]int, len(shape))
	copy(sorted, shape)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i][0] != sorted[j][0] {
			return sorted[i][0] < sorted[j][0]
		}
		return sorted[i][1] < sorted[j][1]
	})
	parts := make([]string, len(sorted))
	for i, p := range sorted {
		parts[i] = strconv.Itoa(p[0]) + "," + strconv.Itoa(p[1])
	}
	return strings.Join(parts, "|")
}

// Orientation 一块棋子的显示信息
type Orientation struct {
	Kind     PieceKind `json:"kind"`
	Side     Side      `json:"side"`
	Rotation int       `json:"rotation"` // 度数
	Anchor   int       `json:"anchor"`   // 行号最大、同行列号最小的格子（显示上的左上角）
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	Squares  []int     `json:"squares"`
}

// OrientationOf 识别 seed 所在棋子的当前朝向。只给前端显示用，不参与走子合法性。
func OrientationOf(b *Board, seed int) (Orientation, error) {
	squares := SquaresOf(b, seed)
	if len(squares) == 0 {
		return Orientation{}, ErrEmptyPivot
	}
	pc := b.Squares[seed]

	anchor := squares[0]
	minR, maxR, minC, maxC := Rows, -1, Cols, -1
	for _, sq := range squares {
		r, c := rowOf(sq), colOf(sq)
		ar, ac := rowOf(anchor), colOf(anchor)
		if r > ar || (r == ar && c < ac) {
			anchor = sq
		}
		minR, maxR = min(minR, r), max(maxR, r)
		minC, maxC = min(minC, c), max(maxC, c)
	}

	o := Orientation{
		Kind:    pc.Kind(),
		Side:    pc.Side(),
		Anchor:  anchor,
		Width:   maxC - minC + 1,
		Height:  maxR - minR + 1,
		Squares: squares,
	}

	// 猩猩是 2×2，转多少都一样
	if o.Kind == KindOrangutan {
		return o, nil
	}

	normalized := make([][2]int, len(squares))
	for i, sq := range squares {
		normalized[i] = [2]int{maxR - rowOf(sq), colOf(sq) - minC}
	}
	rot, ok := shapeRotations[o.Kind][shapeFingerprint(normalized)]
	if !ok {
		return o, fmt.Errorf("%w: %s at square %d", ErrUnknownShape, o.Kind, seed)
	}
	if o.Side == Red {
		rot = (rot + 180) % 360
	}
	o.Rotation = rot
	return o, nil
}

// Orientations 整个棋盘所有棋子的朝向；识别失败的棋子仍然返回，并附带第一个错误
func (b *Board) Orientations() ([]Orientation, error) {
	var firstErr error
	pieces := b.Pieces()
	out := make([]Orientation, 0, len(pieces))
	for _, block := range pieces {
		o, err := OrientationOf(b, block[0])
		if err != nil && firstErr == nil {
			firstErr = err
		}
		out = append(out, o)
	}
	return out, firstErr
}
