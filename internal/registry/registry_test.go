package registry

import "testing"

func TestBuiltinCatalog(t *testing.T) {
	for _, slot := range Slots {
		if len(List(slot)) == 0 {
			t.Errorf("slot %q has no items", slot)
		}
	}
	if got, want := len(List("")), 9; got != want {
		t.Errorf("List(\"\") = %d items, want %d", got, want)
	}
}

func TestListOrder(t *testing.T) {
	hats := List(SlotHat)
	for i := 1; i < len(hats); i++ {
		if hats[i-1].MinLevel > hats[i].MinLevel {
			t.Errorf("hats not sorted by level: %v before %v", hats[i-1].ID, hats[i].ID)
		}
	}
	if hats[0].ID != "party-hat" {
		t.Errorf("first hat = %q, want party-hat", hats[0].ID)
	}
}

func TestLookup(t *testing.T) {
	it, err := Lookup("crown")
	if err != nil {
		t.Fatalf("Lookup(crown): %v", err)
	}
	if it.Slot != SlotHat || it.Unlocked(4) || !it.Unlocked(5) {
		t.Errorf("crown = %+v", it)
	}

	if _, err := Lookup("jetpack"); err == nil {
		t.Error("unknown item should error")
	}
	if Exists("jetpack") || !Exists("shades") {
		t.Error("Exists mismatch")
	}
}

func TestGlyph(t *testing.T) {
	if g := Glyph("hat", "crown"); g != "♔" {
		t.Errorf("Glyph(hat, crown) = %q", g)
	}
	if g := Glyph("scarf", "crown"); g != "" {
		t.Errorf("glyph for wrong slot = %q, want empty", g)
	}
	if g := Glyph("hat", "nope"); g != "" {
		t.Errorf("glyph for unknown item = %q, want empty", g)
	}
}

func TestRegisterPanics(t *testing.T) {
	tests := []struct {
		name string
		item Item
	}{
		{"duplicate", Item{ID: "crown", Slot: SlotHat}},
		{"bad slot", Item{ID: "boots", Slot: "feet"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Register should panic")
				}
			}()
			Register(tt.item)
		})
	}
}
