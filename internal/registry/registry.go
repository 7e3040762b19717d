// Package registry provides a global catalog of avatar accessories.
// Items register themselves in init() functions, so the accessory drawer
// can list and equip them without hardcoding the catalog.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Slot is where on the avatar an accessory is worn.
type Slot string

const (
	SlotHat      Slot = "hat"
	SlotGlasses  Slot = "glasses"
	SlotScarf    Slot = "scarf"
	SlotBackdrop Slot = "backdrop-charm"
)

// Slots lists every slot in drawer order.
var Slots = []Slot{SlotHat, SlotGlasses, SlotScarf, SlotBackdrop}

// ValidSlot reports whether s is a known slot.
func ValidSlot(s Slot) bool {
	for _, known := range Slots {
		if s == known {
			return true
		}
	}
	return false
}

// Item is one equippable accessory.
type Item struct {
	// ID is unique across all slots (e.g., "party-hat").
	ID    string
	Slot  Slot
	Title string
	// Glyph is the text drawn on the avatar in terminal frontends.
	Glyph string
	// MinLevel is the companion level needed to equip the item.
	MinLevel int
}

// Unlocked reports whether a companion at level can wear the item.
func (it Item) Unlocked(level int) bool {
	return level >= it.MinLevel
}

var (
	items = make(map[string]Item)
	mu    sync.RWMutex
)

// Register adds an item to the catalog.
// Typically called from an init() function.
// Panics if the ID is taken or the slot is unknown.
func Register(it Item) {
	mu.Lock()
	defer mu.Unlock()

	if !ValidSlot(it.Slot) {
		panic(fmt.Sprintf("registry: item %q has unknown slot %q", it.ID, it.Slot))
	}
	if _, exists := items[it.ID]; exists {
		panic(fmt.Sprintf("registry: item %q already registered", it.ID))
	}
	items[it.ID] = it
}

// List returns the items for slot sorted by level then ID.
// An empty slot lists every item.
func List(slot Slot) []Item {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Item, 0, len(items))
	for _, it := range items {
		if slot == "" || it.Slot == slot {
			result = append(result, it)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].MinLevel != result[j].MinLevel {
			return result[i].MinLevel < result[j].MinLevel
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the item with the given ID.
// Returns an error if the item is not registered.
func Lookup(id string) (Item, error) {
	mu.RLock()
	defer mu.RUnlock()

	it, ok := items[id]
	if !ok {
		return Item{}, fmt.Errorf("registry: unknown item %q", id)
	}
	return it, nil
}

// Exists checks if an item with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := items[id]
	return ok
}

// Glyph returns the glyph for an item worn in slot, or "" if the item is
// unknown or belongs to another slot.
func Glyph(slot, id string) string {
	it, err := Lookup(id)
	if err != nil || string(it.Slot) != slot {
		return ""
	}
	return it.Glyph
}
