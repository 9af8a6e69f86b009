package main

import (
	"flag"
	"fmt"
	"os"

	"grape/internal/grape"
)

// 打印局面、合法走法和每块棋子的朝向
func main() {
	fen := flag.String("fen", grape.DefaultFEN, "position to inspect")
	flag.Parse()

	pos, err := grape.DecodePosition(*fen)
	if err != nil {
		fmt.Fprintln(os.Stderr, "decode:", err)
		os.Exit(1)
	}
	fmt.Println("FEN:", pos.Encode())
	fmt.Println("To move:", pos.SideToMove, "Winner:", pos.Winner)
	fmt.Println("Material (blue - red):", pos.Board.Material())

	for r := grape.Rows - 1; r >= 0; r-- {
		fmt.Printf("%d ", r)
		for c := 0; c < grape.Cols; c++ {
			fmt.Print(pos.Board.At(r, c))
		}
		fmt.Println()
	}

	moves := pos.GenerateMoves()
	fmt.Println("Legal moves:", len(moves))
	for _, mv := range moves {
		fmt.Print(mv, " ")
	}
	fmt.Println()

	orients, err := pos.Board.Orientations()
	for _, o := range orients {
		r, c := grape.RowCol(o.Anchor)
		fmt.Printf("%-9s %-4s %3d° anchor=(%d,%d) %dx%d\n", o.Kind, o.Side, o.Rotation, r, c, o.Width, o.Height)
	}
	if err != nil {
		fmt.Println("shape error:", err)
	}
	if pos.OrangutanThreatened(pos.SideToMove) {
		fmt.Println("Orangutan of side to move is threatened")
	}
}
