package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/companion/internal/capability"
	"github.com/vovakirdan/companion/internal/platform/touch"
	"github.com/vovakirdan/companion/internal/storage"
	"github.com/vovakirdan/companion/internal/wardrobe"
)

var flagScale float64

var touchCmd = &cobra.Command{
	Use:   "touch",
	Short: "Open the companion in a touch/mouse window",
	Long: `Open a window driven by the display refresh. Touch screens get full
multi-touch: drag with one finger, pinch with two. On desktop the left
mouse button acts as a single finger.

Keys: G start, E end, O orb, F treat, arrows tilt, X shake, Esc close.`,
	Args: cobra.NoArgs,
	RunE: runTouch,
}

func init() {
	touchCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window size multiplier")
	touchCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable tones")
}

func runTouch(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog := newLogger(false)
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	sink := storage.NewSink(store, logger)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := touch.Options{
		Config:      cfg,
		Seed:        seed,
		Profile:     wardrobe.Open(appName, logger).Profile(),
		Sink:        sink,
		Recorder:    sink,
		Logger:      logger,
		WindowScale: flagScale,
	}
	if !flagMute {
		tone := capability.NewBeepTone(0.5)
		defer tone.Close()
		opts.Tone = tone
	}

	return touch.Run(opts)
}
