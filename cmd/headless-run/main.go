package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/Halbrook/Dread-Maze/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	finalState   game.State
	ticks        int
	elapsed      float64
	pathCells    int
	captureTick  int
	capturedBy   string
}

func main() {
	var runs int
	var maxSeconds float64
	var seedBase int64
	var seedStep int64
	var mazeSize string
	var pursuers int

	flag.IntVar(&runs, "runs", 10, "number of headless sessions")
	flag.Float64Var(&maxSeconds, "max-seconds", 120, "simulated time budget per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&mazeSize, "maze", "15x15", "maze size, e.g. 15x15")
	flag.IntVar(&pursuers, "pursuers", 3, "pursuer count (0 = none)")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	w, h, err := parseMazeSize(mazeSize)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Printf("=== Headless Escape Report ===\n")
	fmt.Printf("maze=%dx%d pursuers=%d runs=%d budget=%.0fs seed_base=%d seed_step=%d\n\n",
		w, h, pursuers, runs, maxSeconds, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats, err := runSession(i+1, seed, w, h, pursuers, maxSeconds)
		if err != nil {
			fmt.Printf("error: run %d: %v\n", i+1, err)
			return
		}
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runSession(runIndex int, seed int64, w, h, pursuers int, maxSeconds float64) (runStats, error) {
	count := pursuers
	if count == 0 {
		count = -1 // Sim maps -1 to "no pursuers"
	}
	sim, err := game.NewSim(
		game.WithMazeSize(w, h),
		game.WithSeed(seed),
		game.WithPursuers(count),
	)
	if err != nil {
		return runStats{}, err
	}

	ticks := int(maxSeconds * 60)
	final := sim.RunTicks(ticks)

	stats := runStats{
		runIndex:    runIndex,
		seed:        seed,
		finalState:  final,
		ticks:       sim.Session.Tick(),
		elapsed:     sim.Session.Elapsed(),
		pathCells:   sim.PathLength(),
		captureTick: -1,
	}
	if captures := sim.Log.Filter("capture", "player_caught"); len(captures) > 0 {
		stats.captureTick = captures[0].Tick
		stats.capturedBy = captures[0].Actor
	}
	return stats, nil
}

func parseMazeSize(s string) (int, int, error) {
	var w, h int
	if _, err := fmt.Sscanf(strings.ToLower(s), "%dx%d", &w, &h); err != nil {
		return 0, 0, fmt.Errorf("invalid maze size %q (want WxH)", s)
	}
	if w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("maze size %q must be at least 1x1", s)
	}
	return w, h, nil
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("outcome=%s ticks=%d elapsed=%.2fs path_cells=%d\n",
		rs.finalState, rs.ticks, rs.elapsed, rs.pathCells)
	if rs.captureTick >= 0 {
		fmt.Printf("captured_by=%s at_tick=%d\n", rs.capturedBy, rs.captureTick)
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	escaped := 0
	caught := 0
	var escapeTimes []float64
	for _, rs := range all {
		switch rs.finalState {
		case game.StateWon:
			escaped++
			escapeTimes = append(escapeTimes, rs.elapsed)
		case game.StateLost:
			caught++
		}
	}
	timeouts := len(all) - escaped - caught

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d escaped=%d caught=%d timeout=%d escape_rate=%.0f%%\n",
		len(all), escaped, caught, timeouts, pct(escaped, len(all)))
	if len(escapeTimes) > 0 {
		fmt.Printf("escape_time: avg=%.2fs min=%.2fs max=%.2fs\n",
			mean(escapeTimes), minOf(escapeTimes), maxOf(escapeTimes))
	}
}

func pct(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func minOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
