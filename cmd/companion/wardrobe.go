package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/companion/internal/registry"
	"github.com/vovakirdan/companion/internal/wardrobe"
)

var wardrobeCmd = &cobra.Command{
	Use:   "wardrobe",
	Short: "List, equip and remove accessories",
	Long: `Manage the saved companion profile. Without a subcommand, prints the
profile and the accessory catalog. Items above the companion's level are
locked.

Examples:
  companion wardrobe
  companion wardrobe equip hat party-hat
  companion wardrobe unequip hat
  companion wardrobe stats 80 3
  companion wardrobe name Pip`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		w := openWardrobe()
		printWardrobe(w)
		return nil
	},
}

var equipCmd = &cobra.Command{
	Use:   "equip <slot> <item>",
	Short: "Wear an accessory",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		w := openWardrobe()
		if err := w.Equip(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Equipped %s.\n", args[1])
		return nil
	},
}

var unequipCmd = &cobra.Command{
	Use:   "unequip <slot>",
	Short: "Take off whatever is in a slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		w := openWardrobe()
		if err := w.Unequip(args[0]); err != nil {
			return err
		}
		fmt.Printf("Cleared %s.\n", args[0])
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <energy> <level>",
	Short: "Set energy (0-100) and level",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		energy, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("energy: %w", err)
		}
		level, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("level: %w", err)
		}
		w := openWardrobe()
		if err := w.SetStats(energy, level); err != nil {
			return err
		}
		p := w.Profile()
		fmt.Printf("Energy %d, level %d.\n", p.Energy, p.Level)
		return nil
	},
}

var nameCmd = &cobra.Command{
	Use:   "name <name>",
	Short: "Rename the companion",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		w := openWardrobe()
		if err := w.SetName(args[0]); err != nil {
			return err
		}
		fmt.Printf("Hello, %s!\n", w.Profile().Name)
		return nil
	},
}

func init() {
	wardrobeCmd.AddCommand(equipCmd, unequipCmd, statsCmd, nameCmd)
}

func openWardrobe() *wardrobe.Store {
	logger, _ := newLogger(false)
	w := wardrobe.Open(appName, logger)
	if !w.Persistent() {
		logger.Warn("changes will not be saved")
	}
	return w
}

func printWardrobe(w *wardrobe.Store) {
	p := w.Profile()
	fmt.Printf("%s  energy %d  level %d\n\n", p.Name, p.Energy, p.Level)

	for _, slot := range registry.Slots {
		fmt.Printf("%s\n", slot)
		for _, it := range registry.List(slot) {
			state := "    "
			switch {
			case p.Customization[string(slot)] == it.ID:
				state = "[on]"
			case !it.Unlocked(p.Level):
				state = fmt.Sprintf("L%-3d", it.MinLevel)
			}
			fmt.Printf("  %s %-14s %-12s %s\n", state, it.ID, it.Title, it.Glyph)
		}
	}
}
