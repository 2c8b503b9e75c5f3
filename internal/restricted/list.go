// Package restricted evaluates tournament banned and restricted lists.
package restricted

import (
	"fmt"
	"strings"

	"github.com/dtdb/deckcheck/internal/card"
)

// Result is the outcome of validating a card set against one list.
type Result struct {
	Name            string       `json:"name"`
	Valid           bool         `json:"valid"`
	RestrictedRules bool         `json:"restrictedRules"`
	NoBannedCards   bool         `json:"noBannedCards"`
	Errors          []string     `json:"errors"`
	RestrictedCards []*card.Card `json:"restrictedCards"`
	BannedCards     []*card.Card `json:"bannedCards"`
}

// List is an immutable, validated restricted list.
type List struct {
	name       string
	threshold  Threshold
	banned     map[string]bool
	restricted map[string]bool
	from       string
	upTo       string
	exceptions map[string]bool
	ranged     bool
	pods       []Pod
}

// NewList validates cfg and builds a List from it.
func NewList(cfg ListConfig) (*List, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pods := make([]Pod, len(cfg.Pods))
	for i, pod := range cfg.Pods {
		pods[i] = Pod{Restricted: pod.Restricted, Cards: append([]string(nil), pod.Cards...)}
	}

	return &List{
		name:       cfg.Name,
		threshold:  cfg.Threshold,
		banned:     toSet(cfg.Banned),
		restricted: toSet(cfg.Restricted),
		from:       cfg.RestrictedFrom,
		upTo:       cfg.RestrictedUpTo,
		exceptions: toSet(cfg.RestrictedExceptions),
		ranged:     cfg.usesRange(),
		pods:       pods,
	}, nil
}

// NewLists builds lists from configs, preserving order.
func NewLists(configs []ListConfig) ([]*List, error) {
	lists := make([]*List, 0, len(configs))
	for _, cfg := range configs {
		list, err := NewList(cfg)
		if err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	return lists, nil
}

// Name returns the list name.
func (l *List) Name() string {
	return l.name
}

// IsBanned reports whether code is on the banned list.
func (l *List) IsBanned(code string) bool {
	return l.banned[code]
}

// IsRestricted reports whether code is restricted. Under the range policy a
// code is restricted when it falls within [from, upTo] and is not an
// exception. Codes compare lexically, so they must share a fixed width.
func (l *List) IsRestricted(code string) bool {
	if !l.ranged {
		return l.restricted[code]
	}
	if l.exceptions[code] {
		return false
	}
	if l.from != "" && code < l.from {
		return false
	}
	if l.upTo != "" && code > l.upTo {
		return false
	}
	return true
}

// Validate evaluates the unique cards of a deck against the list.
func (l *List) Validate(cards []*card.Card) Result {
	var restrictedCards, bannedCards []*card.Card
	for _, c := range cards {
		if l.IsRestricted(c.Code) {
			restrictedCards = append(restrictedCards, c)
		}
		if l.IsBanned(c.Code) {
			bannedCards = append(bannedCards, c)
		}
	}

	var errors []string

	restrictedOK := l.withinThreshold(len(restrictedCards))
	if !restrictedOK {
		switch l.threshold {
		case ThresholdNone:
			errors = append(errors, fmt.Sprintf("%s: Contains cards on the restricted list: %s", l.name, titles(restrictedCards)))
		default:
			errors = append(errors, fmt.Sprintf("%s: Contains more than 1 card on the restricted list: %s", l.name, titles(restrictedCards)))
		}
	}

	noBannedCards := len(bannedCards) == 0
	if !noBannedCards {
		errors = append(errors, fmt.Sprintf("%s: Contains cards that are not tournament legal: %s", l.name, titles(bannedCards)))
	}

	for _, pod := range l.pods {
		if msg, violated := l.checkPod(pod, cards); violated {
			noBannedCards = false
			errors = append(errors, msg)
		}
	}

	return Result{
		Name:            l.name,
		Valid:           len(errors) == 0,
		RestrictedRules: restrictedOK,
		NoBannedCards:   noBannedCards,
		Errors:          errors,
		RestrictedCards: restrictedCards,
		BannedCards:     bannedCards,
	}
}

func (l *List) withinThreshold(count int) bool {
	if l.threshold == ThresholdNone {
		return count == 0
	}
	return count <= 1
}

// checkPod reports a violation when the anchor card is present together with
// at least one of the pod's cards.
func (l *List) checkPod(pod Pod, cards []*card.Card) (string, bool) {
	var anchor *card.Card
	for _, c := range cards {
		if c.Code == pod.Restricted {
			anchor = c
			break
		}
	}
	if anchor == nil {
		return "", false
	}

	incompatible := toSet(pod.Cards)
	var found []*card.Card
	for _, c := range cards {
		if incompatible[c.Code] && c.Code != anchor.Code {
			found = append(found, c)
		}
	}
	if len(found) == 0 {
		return "", false
	}

	return fmt.Sprintf("%s: %s cannot be used with %s", l.name, titles(found), anchor.DisplayName()), true
}

func titles(cards []*card.Card) string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.DisplayName()
	}
	return strings.Join(names, ", ")
}

func toSet(codes []string) map[string]bool {
	set := make(map[string]bool, len(codes))
	for _, code := range codes {
		set[code] = true
	}
	return set
}
