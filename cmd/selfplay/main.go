package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"grape/internal/config"
	"grape/internal/engine"
	"grape/internal/grape"
	"grape/internal/server"
)

type player struct {
	Name string
	Cfg  engine.SearchConfig
}

// 一局的结果：Blue / Red / NoSide（走满 maxMoves 还没分出胜负）
func playGame(log zerolog.Logger, start *grape.Position, blue, red player, maxMoves int) (grape.Side, int) {
	pos := start
	for ply := 0; ply < maxMoves; ply++ {
		cur := blue
		if pos.SideToMove == grape.Red {
			cur = red
		}

		res, err := engine.NewEngine().Search(pos, cur.Cfg)
		if err != nil {
			return pos.Winner, ply
		}
		if !res.Found {
			// 无棋可走的一方判负
			log.Info().Int("ply", ply).Stringer("side", pos.SideToMove).Msg("no legal moves")
			return grape.Opposite(pos.SideToMove), ply
		}

		nps := int64(0)
		if secs := res.TimeUsed.Seconds(); secs > 0 {
			nps = int64(float64(res.Nodes) / secs)
		}
		log.Debug().
			Int("ply", ply+1).
			Str("player", cur.Name).
			Str("move", res.BestMove.String()).
			Float64("score", res.Score).
			Int64("nodes", res.Nodes).
			Dur("took", res.TimeUsed).
			Int64("nps", nps).
			Msg("move")

		next, err := pos.ApplyRotation(res.BestMove)
		if err != nil {
			log.Error().Err(err).Str("move", res.BestMove.String()).Msg("engine produced an illegal move")
			return grape.NoSide, ply
		}
		pos = next
		if pos.GameOver() {
			return pos.Winner, ply + 1
		}
	}
	return grape.NoSide, maxMoves
}

func main() {
	games := flag.Int("games", 2, "number of games to play")
	depthA := flag.Int("depth-a", 2, "search depth of player A")
	depthB := flag.Int("depth-b", 3, "search depth of player B")
	maxMoves := flag.Int("maxmoves", 200, "max plies per game")
	fen := flag.String("fen", grape.DefaultFEN, "start position")
	useTT := flag.Bool("tt", true, "use transposition table")
	parallel := flag.Bool("parallel", false, "search root moves in parallel")
	level := flag.String("log", "info", "log level (debug shows every move)")
	flag.Parse()

	cfg := config.DefaultConfig()
	cfg.LogLevel = *level
	log := server.NewLogger(cfg.Normalize(), nil)

	start, err := grape.DecodePosition(*fen)
	if err != nil {
		log.Fatal().Err(err).Str("fen", *fen).Msg("bad start position")
	}

	mk := func(depth int) player {
		return player{
			Name: fmt.Sprintf("depth-%d", depth),
			Cfg:  engine.SearchConfig{MaxDepth: depth, UseTT: *useTT, Parallel: *parallel},
		}
	}
	a, b := mk(*depthA), mk(*depthB)
	a.Name += "/A"
	b.Name += "/B"

	score := map[string]int{}
	began := time.Now()
	for g := 0; g < *games; g++ {
		// 轮流执蓝
		blue, red := a, b
		if g%2 == 1 {
			blue, red = b, a
		}
		gameLog := log.With().Int("game", g+1).Logger()
		gameLog.Info().Str("blue", blue.Name).Str("red", red.Name).Msg("game start")

		winner, plies := playGame(gameLog, start, blue, red, *maxMoves)
		result := "draw"
		switch winner {
		case grape.Blue:
			result = blue.Name
		case grape.Red:
			result = red.Name
		}
		score[result]++
		gameLog.Info().Str("winner", result).Int("plies", plies).Msg("game over")
	}

	log.Info().
		Int(a.Name, score[a.Name]).
		Int(b.Name, score[b.Name]).
		Int("draws", score["draw"]).
		Dur("elapsed", time.Since(began)).
		Msg("selfplay finished")
	os.Exit(0)
}
