package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/companion/internal/avatar"
	"github.com/vovakirdan/companion/internal/capability"
	"github.com/vovakirdan/companion/internal/companion"
	"github.com/vovakirdan/companion/internal/storage"
)

var (
	flagRuns   int
	flagRecord bool
	flagStep   float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play catch games headless with an autopilot",
	Long: `Run whole catch games on a virtual clock. The autopilot drags the
companion under the lowest falling object, the same way a player would.
Useful for tuning a config: the runs are deterministic for a given seed.

Examples:
  companion simulate --runs 10 --seed 42
  companion simulate --difficulty hard --record`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagRuns, "runs", 1, "Number of games to play")
	simulateCmd.Flags().BoolVar(&flagRecord, "record", false, "Save runs and progress to the database")
	simulateCmd.Flags().Float64Var(&flagStep, "step", 12, "Max pointer travel per frame, px")
}

// runCounter tallies finished runs on top of any other recorder.
type runCounter struct {
	next    companion.RunRecorder
	results []companion.RunResult
}

func (c *runCounter) RecordRun(r companion.RunResult) {
	c.results = append(c.results, r)
	if c.next != nil {
		c.next.RecordRun(r)
	}
}

func runSimulate(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagRuns < 1 {
		return fmt.Errorf("--runs must be at least 1, got %d", flagRuns)
	}

	logger, closeLog := newLogger(false)
	defer closeLog()

	var (
		sink     companion.ProgressSink
		recorder = &runCounter{}
	)
	if flagRecord {
		store := openStore(logger)
		if store != nil {
			defer store.Close()
		}
		s := storage.NewSink(store, logger)
		sink, recorder.next = s, s
	}

	fps := flagFPS
	if fps <= 0 {
		fps = 60
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	clock := companion.NewVirtualClock(time.Second / time.Duration(fps))
	motion := capability.NewSimulatedMotion(clock.Now)
	caps := capability.NewSet(logger)
	caps.Motion = motion

	engine := companion.NewEngine(cfg, caps, sink,
		companion.WithLogger(logger),
		companion.WithScheduler(clock),
		companion.WithRecorder(recorder),
		companion.WithSeed(seed))
	engine.Open(avatar.DefaultProfile())
	defer engine.Close()

	pilot := companion.NewAutopilot(flagStep)
	limit := cfg.Session.Duration + time.Minute

	fmt.Printf("Simulating %d run(s), seed %d, %d fps\n\n", flagRuns, seed, fps)
	fmt.Printf("%-4s %7s %7s %7s %7s %-11s %9s\n", "RUN", "SCORE", "CAUGHT", "MISSES", "COMBO", "REASON", "DURATION")

	for i := 0; i < flagRuns; i++ {
		if _, ended := pilot.Play(engine, clock, limit); !ended {
			engine.EndGame()
			clock.Tick()
		}
	}

	total := 0
	for i, r := range recorder.results {
		total += r.Score
		fmt.Printf("%-4d %7d %7d %7d %7d %-11s %9s\n",
			i+1, r.Score, r.Caught, r.Misses, r.BestCombo, r.Reason, r.Duration.Round(10*time.Millisecond))
	}
	if n := len(recorder.results); n > 0 {
		fmt.Printf("\nAverage score: %.1f\n", float64(total)/float64(n))
	}
	return nil
}
