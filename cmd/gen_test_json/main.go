package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"grape/internal/grape"
)

// TestCase 一个局面上的一步以及走完之后的结果，给其他实现对拍用
type TestCase struct {
	FEN        string          `json:"fen"`
	LegalCount int             `json:"legal_count"`
	Move       string          `json:"move"`
	ResultFEN  string          `json:"result_fen"`
	Captured   []grape.Capture `json:"captured,omitempty"`
	Winner     grape.Side      `json:"winner"`
}

func main() {
	numGames := flag.Int("games", 10, "number of random games")
	maxMoves := flag.Int("maxmoves", 300, "max plies per game")
	seed := flag.Uint64("seed", 1, "random seed")
	out := flag.String("out", "rotation_test_data.json", "output file")
	flag.Parse()

	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	var testCases []TestCase

	for g := 0; g < *numGames; g++ {
		pos := grape.NewInitialPosition()
		for ply := 0; ply < *maxMoves && !pos.GameOver(); ply++ {
			legal := pos.GenerateMoves()
			if len(legal) == 0 {
				break
			}

			mv := legal[rng.IntN(len(legal))]
			next, captured, err := pos.Rotate(mv)
			if err != nil {
				fmt.Fprintf(os.Stderr, "game %d ply %d: %v\n", g+1, ply+1, err)
				os.Exit(1)
			}
			testCases = append(testCases, TestCase{
				FEN:        pos.Encode(),
				LegalCount: len(legal),
				Move:       mv.String(),
				ResultFEN:  next.Encode(),
				Captured:   captured,
				Winner:     next.Winner,
			})
			pos = next
		}
	}

	data, err := json.MarshalIndent(testCases, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "marshal:", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "write:", err)
		os.Exit(1)
	}
	fmt.Printf("Generated %d test cases from %d random games to %s\n", len(testCases), *numGames, *out)
}
