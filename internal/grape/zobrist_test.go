package grape

import "testing"

func TestHashInitializedFromInitialAndFEN(t *testing.T) {
	pos := NewInitialPosition()
	if pos.Hash != pos.CalculateHash() {
		t.Fatalf("initial hash mismatch: got=%d want=%d", pos.Hash, pos.CalculateHash())
	}

	red, err := DecodePosition(DefaultFEN[:len(DefaultFEN)-1] + "b")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if red.Hash == pos.Hash {
		t.Fatalf("side to move not part of hash")
	}
}

func TestRotateHashIncrementalMatchesFullRecompute(t *testing.T) {
	pos := NewInitialPosition()
	for ply := 0; ply < 24; ply++ {
		moves := pos.GenerateMoves()
		if len(moves) == 0 {
			return
		}
		mv := moves[len(moves)/2]
		next, err := pos.ApplyRotation(mv)
		if err != nil {
			t.Fatalf("apply move failed at ply %d: %v: %v", ply, mv, err)
		}
		got := next.Hash
		want := next.CalculateHash()
		if got != want {
			t.Fatalf("hash mismatch at ply %d: got=%d want=%d move=%v", ply, got, want, mv)
		}
		if next.GameOver() {
			return
		}
		pos = next
	}
}

func TestHashDistinguishesSideOfPiece(t *testing.T) {
	blue, err := DecodePosition("A/A/A/A/4I5/A/A/A/A/A w")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	red, err := DecodePosition("A/A/A/A/4i5/A/A/A/A/A w")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if blue.Hash == red.Hash {
		t.Fatalf("blue and red insect hash equal")
	}
	empty, err := DecodePosition("A/A/A/A/A/A/A/A/A/A w")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if empty.Hash != 0 {
		t.Fatalf("empty board with blue to move: got=%d want=0", empty.Hash)
	}
}

func TestRotateLeavesParentUntouched(t *testing.T) {
	pos := NewInitialPosition()
	pos.Hash = 0 // 手工拼出来的局面没有哈希
	before := *pos

	next, err := pos.ApplyRotation(Move{Row: 2, Col: 4, Steps: 1})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if *pos != before {
		t.Fatalf("parent position was modified: hash=%d", pos.Hash)
	}
	if next.Hash != next.CalculateHash() {
		t.Fatalf("child hash mismatch: got=%d want=%d", next.Hash, next.CalculateHash())
	}
}
