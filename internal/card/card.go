// Package card defines the card, pack and deck records read by the
// validators.
package card

import (
	"regexp"
	"strings"
)

// Card type codes used by the validators.
const (
	TypeCharacter  = "character"
	TypeAttachment = "attachment"
	TypeEvent      = "event"
	TypePlot       = "plot"
	TypeJoker      = "joker"
	TypeDeed       = "deed"
	TypeDude       = "dude"
)

// FactionNeutral is the faction tag of cards usable by every faction.
const FactionNeutral = "neutral"

// keywordSeparator splits the keyword line of a card ("Mystical • Huckster").
const keywordSeparator = "•"

// Card is an immutable card record owned by the card source.
type Card struct {
	Code      string   `json:"code"`
	Title     string   `json:"title,omitempty"`
	Name      string   `json:"name,omitempty"`
	Type      string   `json:"type_code"`
	Faction   string   `json:"faction_code,omitempty"`
	Traits    []string `json:"traits,omitempty"`
	Keywords  string   `json:"keywords,omitempty"`
	Text      string   `json:"text,omitempty"`
	Loyal     bool     `json:"is_loyal,omitempty"`
	Cost      int      `json:"cost"`
	Value     int      `json:"value"`
	DeckLimit int      `json:"deck_limit,omitempty"`
	PackCode  string   `json:"pack_code"`
}

// DisplayName returns the title of the card, falling back to its name.
func (c *Card) DisplayName() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Name
}

// KeywordList returns the lower-cased keywords of the card.
func (c *Card) KeywordList() []string {
	if c.Keywords == "" {
		return nil
	}
	parts := strings.Split(c.Keywords, keywordSeparator)
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		keyword := strings.ToLower(strings.TrimSpace(part))
		if keyword != "" {
			keywords = append(keywords, keyword)
		}
	}
	return keywords
}

// HasKeyword reports whether the keyword line contains keyword (case-insensitive).
func (c *Card) HasKeyword(keyword string) bool {
	keyword = strings.ToLower(keyword)
	for _, k := range c.KeywordList() {
		if k == keyword {
			return true
		}
	}
	return false
}

// HasTextKeyword reports whether any keyword on the first line of the card text
// matches re. Keywords on that line are separated by periods ("Shadow (2). Stealth.").
func (c *Card) HasTextKeyword(re *regexp.Regexp) bool {
	line, _, _ := strings.Cut(c.Text, "\n")
	for _, keyword := range strings.Split(line, ".") {
		keyword = strings.TrimSpace(keyword)
		if keyword != "" && re.MatchString(keyword) {
			return true
		}
	}
	return false
}

// HasTrait reports whether the card carries trait (case-insensitive).
func (c *Card) HasTrait(trait string) bool {
	for _, t := range c.Traits {
		if strings.EqualFold(t, trait) {
			return true
		}
	}
	return false
}

// IsType reports whether the card is of the given type code.
func (c *Card) IsType(typeCode string) bool {
	return c.Type == typeCode
}
