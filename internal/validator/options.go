package validator

import "fmt"

// DrawCountPolicy selects how the draw count is compared to the requirement.
type DrawCountPolicy string

const (
	// DrawCountExact requires exactly the required number of draw cards.
	DrawCountExact DrawCountPolicy = "exact"
	// DrawCountMinimum requires at least the required number of draw cards.
	DrawCountMinimum DrawCountPolicy = "minimum"
)

// GroupKey selects how draw cards are grouped for the per-group copy limit.
type GroupKey string

const (
	// GroupByValue groups cards by printed value.
	GroupByValue GroupKey = "value"
	// GroupByName groups cards by title.
	GroupByName GroupKey = "name"
)

// StartingCapPolicy selects how the starting posse cap is computed.
type StartingCapPolicy string

const (
	// StartingCapStandard caps the starting posse at MaxStartingCount.
	StartingCapStandard StartingCapPolicy = "standard"
	// StartingCapCoreInflated caps the starting posse at
	// MaxStartingCount + MaxStartingCoreCount.
	StartingCapCoreInflated StartingCapPolicy = "core_inflated"
)

// Options selects the rule-edition variant the validator enforces.
type Options struct {
	DrawCountPolicy DrawCountPolicy
	GroupBy         GroupKey
	// GroupLimit is the maximum number of copies per group. Zero uses the
	// deck limit printed on the grouped card.
	GroupLimit  int
	StartingCap StartingCapPolicy
	// CoreDeeds enables the starting core deed count and flags starting
	// deeds without the core keyword.
	CoreDeeds bool
	// CheckPlots enables the plot deck size and duplicate checks.
	CheckPlots bool
	// EnforceInclusion flags cards rejected by the mayInclude/cannotInclude
	// predicates of the effective rules.
	EnforceInclusion bool
	// StartingMultipliers overrides how much one started copy of a card
	// counts toward the starting posse, keyed by card code.
	StartingMultipliers map[string]int
}

// DoomtownOptions returns the options for Doomtown decks.
func DoomtownOptions() Options {
	return Options{
		DrawCountPolicy: DrawCountExact,
		GroupBy:         GroupByValue,
		GroupLimit:      4,
		StartingCap:     StartingCapStandard,
		CoreDeeds:       true,
		StartingMultipliers: map[string]int{
			"09006": 0, // Xiaodan Li does not count toward the posse limit
			"16005": 3, // Harvester counts as three dudes
		},
	}
}

// ThronesOptions returns the options for A Game of Thrones decks.
func ThronesOptions() Options {
	return Options{
		DrawCountPolicy:  DrawCountMinimum,
		GroupBy:          GroupByName,
		StartingCap:      StartingCapStandard,
		CheckPlots:       true,
		EnforceInclusion: true,
	}
}

// Validate checks that every policy field holds a known value.
func (o Options) Validate() error {
	switch o.DrawCountPolicy {
	case DrawCountExact, DrawCountMinimum:
	default:
		return fmt.Errorf("unknown draw count policy %q", o.DrawCountPolicy)
	}
	switch o.GroupBy {
	case GroupByValue, GroupByName:
	default:
		return fmt.Errorf("unknown group key %q", o.GroupBy)
	}
	switch o.StartingCap {
	case StartingCapStandard, StartingCapCoreInflated:
	default:
		return fmt.Errorf("unknown starting cap policy %q", o.StartingCap)
	}
	if o.GroupLimit < 0 {
		return fmt.Errorf("group limit must not be negative, got %d", o.GroupLimit)
	}
	for code, multiplier := range o.StartingMultipliers {
		if multiplier < 0 {
			return fmt.Errorf("starting multiplier for %s must not be negative, got %d", code, multiplier)
		}
	}
	return nil
}

func (o Options) startingMultiplier(code string) int {
	if m, ok := o.StartingMultipliers[code]; ok {
		return m
	}
	return 1
}
