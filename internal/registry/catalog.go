package registry

func init() {
	for _, it := range []Item{
		{ID: "party-hat", Slot: SlotHat, Title: "Party Hat", Glyph: "▲", MinLevel: 1},
		{ID: "beanie", Slot: SlotHat, Title: "Cozy Beanie", Glyph: "◠", MinLevel: 2},
		{ID: "crown", Slot: SlotHat, Title: "Tiny Crown", Glyph: "♔", MinLevel: 5},

		{ID: "round-specs", Slot: SlotGlasses, Title: "Round Specs", Glyph: "o-o", MinLevel: 1},
		{ID: "shades", Slot: SlotGlasses, Title: "Cool Shades", Glyph: "▀-▀", MinLevel: 3},

		{ID: "red-scarf", Slot: SlotScarf, Title: "Red Scarf", Glyph: "~~~", MinLevel: 1},
		{ID: "bow-tie", Slot: SlotScarf, Title: "Bow Tie", Glyph: "⋈", MinLevel: 2},

		{ID: "moon-charm", Slot: SlotBackdrop, Title: "Moon Charm", Glyph: "☾", MinLevel: 1},
		{ID: "comet-charm", Slot: SlotBackdrop, Title: "Comet Charm", Glyph: "☄", MinLevel: 4},
	} {
		Register(it)
	}
}
