// companion is a real-time pocket companion you can play with in the
// terminal, in a window, or over SSH.
//
// Usage:
//
//	companion play           - Hang out with your companion in the terminal
//	companion touch          - Open the touch/mouse window
//	companion serve          - Start SSH server for remote visitors
//	companion simulate       - Run catch games headless with an autopilot
//	companion challenges     - Show challenge progress and best runs
//	companion wardrobe       - List, equip and remove accessories
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.companion/companion.db)
//	--config <path>       - Use a custom companion YAML
//	--difficulty <preset> - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/companion/internal/config"
	"github.com/vovakirdan/companion/internal/storage"
)

// appName names the gdata save directory.
const appName = "companion"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "companion",
	Short: "Companion - a tiny friend that lives in your terminal",
	Long: `Companion is a real-time pocket pet. Drag it around, pinch it,
tap it for tricks, throw it energy orbs and treats, or start a timed catch
game where stars, hearts and coins fall from the sky.

Available commands:
  play        - Interactive terminal companion
  touch       - Touch/mouse window
  serve       - Start SSH server for remote visitors
  simulate    - Headless autopilot runs
  challenges  - Challenge progress and best runs
  wardrobe    - Accessories

Examples:
  companion play
  companion play --difficulty hard
  companion touch --scale 1.5
  companion serve --ssh :2222
  companion simulate --runs 5 --seed 42`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.companion/companion.db", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom companion config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(touchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(challengesCmd)
	rootCmd.AddCommand(wardrobeCmd)
}

// loadConfig reads the companion config and applies --difficulty.
func loadConfig() (config.CompanionConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyPreset(&cfg, preset)
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// newLogger builds the process logger. Full-screen frontends pass toFile
// so log lines never land on the alternate screen.
func newLogger(toFile bool) (*log.Logger, func()) {
	var w io.Writer = os.Stderr
	closeFn := func() {}

	if toFile {
		w = io.Discard
		if home, err := os.UserHomeDir(); err == nil {
			dir := filepath.Join(home, ".companion")
			if err := os.MkdirAll(dir, 0o755); err == nil {
				f, err := os.OpenFile(filepath.Join(dir, "companion.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
				if err == nil {
					w = f
					closeFn = func() { f.Close() }
				}
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "companion",
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
	}
	return logger, closeFn
}

// openStore opens the progress database. Failure is logged and the caller
// continues without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open progress database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// terminalSize returns the current terminal size or 80x24.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
