package rules

// DoomtownBase returns the standard rules for Doomtown decks: 52 printed-value
// cards, up to 2 jokers, a starting posse of at most 5 and one core deed.
func DoomtownBase() Fragment {
	return Fragment{
		Limits: Limits{
			RequiredDraw:         Int(52),
			MaxJokerCount:        Int(2),
			MaxStartingCount:     Int(5),
			MaxStartingCoreCount: Int(1),
		},
	}
}

// ThronesBase returns the standard rules for A Game of Thrones decks: at least
// 60 draw cards and exactly 7 plots, of which at most one may be doubled.
func ThronesBase() Fragment {
	return Fragment{
		Limits: Limits{
			RequiredDraw:    Int(60),
			RequiredPlots:   Int(7),
			MaxDoubledPlots: Int(1),
		},
	}
}

// LegendTable returns the fragments contributed by Doomtown legends. No legend
// currently restricts deck construction.
func LegendTable() Table {
	return Table{}
}
