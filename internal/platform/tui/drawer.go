package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/companion/internal/avatar"
	"github.com/vovakirdan/companion/internal/registry"
)

// drawerWidth is the drawer column width including its border.
const drawerWidth = 28

// Wardrobe receives customization mutation requests from the drawer.
type Wardrobe interface {
	Equip(slot, itemID string) error
	Unequip(slot string) error
	Profile() avatar.Profile
}

// Drawer is the accessory picker shown beside the playfield.
type Drawer struct {
	wardrobe Wardrobe
	slot     int
	cursor   int
	status   string
}

// NewDrawer creates a drawer on the first slot.
func NewDrawer(w Wardrobe) *Drawer {
	return &Drawer{wardrobe: w}
}

func (d *Drawer) items() []registry.Item {
	return registry.List(registry.Slots[d.slot])
}

// HandleKey processes one key. changed reports a saved customization;
// closed reports that the drawer wants to close.
func (d *Drawer) HandleKey(msg tea.KeyMsg) (changed, closed bool) {
	switch msg.String() {
	case "esc", "tab", "b":
		return false, true
	case "left", "h", "a":
		d.slot = (d.slot + len(registry.Slots) - 1) % len(registry.Slots)
		d.cursor = 0
		d.status = ""
	case "right", "l", "d":
		d.slot = (d.slot + 1) % len(registry.Slots)
		d.cursor = 0
		d.status = ""
	case "up", "k", "w":
		if d.cursor > 0 {
			d.cursor--
		}
	case "down", "j", "s":
		if d.cursor < len(d.items())-1 {
			d.cursor++
		}
	case "enter", " ":
		return d.equip(), false
	case "u", "backspace":
		return d.unequip(), false
	}
	return false, false
}

func (d *Drawer) equip() bool {
	items := d.items()
	if d.wardrobe == nil || len(items) == 0 {
		return false
	}
	it := items[d.cursor]
	if err := d.wardrobe.Equip(string(it.Slot), it.ID); err != nil {
		d.status = err.Error()
		return false
	}
	d.status = "Wearing " + it.Title
	return true
}

func (d *Drawer) unequip() bool {
	if d.wardrobe == nil {
		return false
	}
	slot := registry.Slots[d.slot]
	if err := d.wardrobe.Unequip(string(slot)); err != nil {
		d.status = err.Error()
		return false
	}
	d.status = "Cleared " + string(slot)
	return true
}

// View renders the drawer height rows tall.
func (d *Drawer) View(height int) string {
	var profile avatar.Profile
	if d.wardrobe != nil {
		profile = d.wardrobe.Profile()
	}
	slot := registry.Slots[d.slot]
	worn, _ := profile.Accessory(string(slot))

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	lockedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("< %s >", slot)))
	b.WriteString("\n\n")

	for i, it := range d.items() {
		cursor := "  "
		if i == d.cursor {
			cursor = "> "
		}
		mark := " "
		if it.ID == worn {
			mark = "*"
		}
		line := fmt.Sprintf("%s%s %-3s %s", cursor, mark, it.Glyph, it.Title)
		switch {
		case !it.Unlocked(profile.Level):
			line = lockedStyle.Render(fmt.Sprintf("%s (L%d)", line, it.MinLevel))
		case i == d.cursor:
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if d.status != "" {
		b.WriteString("\n")
		b.WriteString(lockedStyle.Render(d.status))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(drawerWidth - 2).
		Height(max(1, height-2)).
		Padding(0, 1).
		Render(b.String())
}
