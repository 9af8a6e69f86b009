package main

import (
	"encoding/json"

	"grape/internal/grape"
)

// maskSize stage 0 用满 100 格，stage 1 只用前 4 个
const maskSize = grape.NumSquares

// 胜负编码：0 蓝，1 红，2 未分
const (
	winnerBlue    = 0
	winnerRed     = 1
	winnerOngoing = 2
)

func isLegal(fen, move string) bool {
	pos, err := grape.DecodePosition(fen)
	if err != nil {
		return false
	}
	mv, err := grape.ParseMove(move)
	if err != nil {
		return false
	}
	_, err = pos.Preview(mv)
	return err == nil
}

func legalMask(fen string, stage, pivot int, mask []int8) (int, error) {
	pos, err := grape.DecodePosition(fen)
	if err != nil {
		return 0, err
	}
	for i := range mask {
		mask[i] = 0
	}

	count := 0
	if stage == 0 {
		for _, mv := range pos.GenerateMoves() {
			sq := mv.Pivot()
			if mask[sq] == 0 {
				mask[sq] = 1
				count++
			}
		}
		return count, nil
	}
	if pivot < 0 || pivot >= grape.NumSquares {
		return 0, grape.ErrPivotOffBoard
	}
	for _, mv := range pos.MovesFrom(pivot) {
		mask[mv.Steps] = 1
		count++
	}
	return count, nil
}

func checkWinner(fen string) int {
	pos, err := grape.DecodePosition(fen)
	if err != nil {
		return winnerOngoing
	}
	switch pos.Winner {
	case grape.Blue:
		return winnerBlue
	case grape.Red:
		return winnerRed
	}
	return winnerOngoing
}

func applyMove(fen, move string) (string, error) {
	pos, err := grape.DecodePosition(fen)
	if err != nil {
		return "", err
	}
	mv, err := grape.ParseMove(move)
	if err != nil {
		return "", err
	}
	next, err := pos.ApplyRotation(mv)
	if err != nil {
		return "", err
	}
	return next.Encode(), nil
}

type legalMoves struct {
	Moves  []string   `json:"moves"`
	Winner grape.Side `json:"winner"`
}

func legalMovesJSON(fen string) (string, error) {
	pos, err := grape.DecodePosition(fen)
	if err != nil {
		return "", err
	}
	out := legalMoves{Moves: []string{}, Winner: pos.Winner}
	for _, mv := range pos.GenerateMoves() {
		out.Moves = append(out.Moves, mv.String())
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func main() {}
