package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/companion/internal/capability"
	"github.com/vovakirdan/companion/internal/core"
	"github.com/vovakirdan/companion/internal/platform/tui"
	"github.com/vovakirdan/companion/internal/storage"
	"github.com/vovakirdan/companion/internal/wardrobe"
)

var (
	flagMute bool
	flagBell bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Hang out with your companion in the terminal",
	Long: `Open the main menu, then hang out with your companion or check
your challenges.

Controls:
  Mouse drag      - Move the companion (it springs back when released)
  Wheel, +/-      - Resize
  Click, Space    - Tap for a hop, twice quickly for a spin
  G / Enter       - Start a catch game
  E / Esc         - End the game
  O / F           - Throw an energy orb / feed a treat
  Left/Right/Down - Tilt / level the simulated device
  X               - Shake
  Tab             - Wardrobe
  Ctrl+S          - Screenshot to ~/.companion/screenshots
  Q / Ctrl+C      - Quit

Examples:
  companion play
  companion play --difficulty easy
  companion play --mute --bell`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable tones")
	playCmd.Flags().BoolVar(&flagBell, "bell", false, "Ring the terminal bell as haptic feedback")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog := newLogger(true)
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	sink := storage.NewSink(store, logger)
	wr := wardrobe.Open(appName, logger)

	opts := tui.Options{
		Config:   cfg,
		Sink:     sink,
		Recorder: sink,
		Wardrobe: wr,
		Logger:   logger,
	}
	if !flagMute {
		tone := capability.NewBeepTone(0.5)
		defer tone.Close()
		opts.Tone = tone
	}
	if flagBell {
		opts.Haptics = capability.NewBellHaptics(os.Stdout)
	}
	if home, err := os.UserHomeDir(); err == nil {
		opts.ScreenshotDir = filepath.Join(home, ".companion", "screenshots")
	}

	width, height := terminalSize()
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	for {
		result, err := tui.RunMenu(store, wr.Profile().Name, rc)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		if result.Quit {
			return nil
		}
		rc = result.Config

		switch result.Screen {
		case tui.ScreenCompanion:
			opts.Runtime = rc
			if err := tui.Run(opts); err != nil {
				return fmt.Errorf("companion: %w", err)
			}

		case tui.ScreenChallenges:
			goBack, err := tui.RunChallenges(store, cfg.Challenges, rc.ScreenW, rc.ScreenH)
			if err != nil {
				return fmt.Errorf("challenges: %w", err)
			}
			if !goBack {
				return nil
			}
		}
	}
}
