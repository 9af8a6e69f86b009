package grape

import (
	"errors"
	"testing"
)

func TestOrientationOfInitialPieces(t *testing.T) {
	pos := NewInitialPosition()
	cases := []struct {
		name     string
		seed     int
		kind     PieceKind
		side     Side
		rotation int
		anchor   int
	}{
		{"blue tiger", Square(2, 3), KindTiger, Blue, 180, Square(3, 3)},
		{"red tiger", Square(7, 6), KindTiger, Red, 180, Square(8, 6)},
		{"blue insect", Square(0, 4), KindInsect, Blue, 0, Square(0, 2)},
		{"red insect", Square(9, 5), KindInsect, Red, 180, Square(9, 4)},
		{"blue orangutan", Square(0, 0), KindOrangutan, Blue, 0, Square(1, 0)},
		{"red orangutan", Square(9, 9), KindOrangutan, Red, 0, Square(9, 8)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o, err := OrientationOf(&pos.Board, tc.seed)
			if err != nil {
				t.Fatalf("orientation: %v", err)
			}
			if o.Kind != tc.kind || o.Side != tc.side {
				t.Fatalf("piece: got=%v/%v want=%v/%v", o.Side, o.Kind, tc.side, tc.kind)
			}
			if o.Rotation != tc.rotation {
				t.Fatalf("rotation: got=%d want=%d", o.Rotation, tc.rotation)
			}
			if o.Anchor != tc.anchor {
				t.Fatalf("anchor: got=%d want=%d", o.Anchor, tc.anchor)
			}
		})
	}
}

func TestOrientationFollowsRotation(t *testing.T) {
	pos := NewInitialPosition()
	// 蓝方老虎绕 (2,4) 转一步：180° -> 270°
	before, err := OrientationOf(&pos.Board, Square(2, 4))
	if err != nil {
		t.Fatalf("orientation: %v", err)
	}
	next, err := pos.ApplyRotation(Move{Row: 2, Col: 4, Steps: 1})
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	after, err := OrientationOf(&next.Board, Square(2, 4))
	if err != nil {
		t.Fatalf("orientation: %v", err)
	}
	if before.Rotation != 180 || after.Rotation != 270 {
		t.Fatalf("rotation before=%d after=%d", before.Rotation, after.Rotation)
	}
	if after.Width != 3 || after.Height != 2 {
		t.Fatalf("bounding box: %dx%d", after.Width, after.Height)
	}
}

func TestOrientationErrors(t *testing.T) {
	pos := mustDecode(t, "A/A/A/A/A/A/A/A/OO8/OOIIIII3 w")
	if _, err := OrientationOf(&pos.Board, Square(0, 3)); !errors.Is(err, ErrUnknownShape) {
		t.Fatalf("five-cell insect: got err=%v", err)
	}
	if _, err := OrientationOf(&pos.Board, Square(5, 5)); !errors.Is(err, ErrEmptyPivot) {
		t.Fatalf("empty seed: got err=%v", err)
	}

	all, err := pos.Board.Orientations()
	if !errors.Is(err, ErrUnknownShape) {
		t.Fatalf("orientations: got err=%v", err)
	}
	if len(all) != 2 {
		t.Fatalf("orientations: want 2 pieces, got %d", len(all))
	}
}

func TestRotationTableCoversEveryKind(t *testing.T) {
	for kind, base := range baseShapes {
		table := shapeRotations[kind]
		if len(table) == 0 {
			t.Fatalf("%v: empty rotation table", kind)
		}
		if table[shapeFingerprint(base)] != 0 {
			t.Fatalf("%v: base shape should map to 0", kind)
		}
	}
	// 直条旋转 180° 和原形一样，只剩 0 和 90 两种
	if got := len(shapeRotations[KindInsect]); got != 2 {
		t.Fatalf("insect rotations: got=%d want=2", got)
	}
}
