package card

import (
	"fmt"
	"time"
)

// ReleaseDateLayout is the layout of pack availability dates.
const ReleaseDateLayout = "2006-01-02"

// Pack is release metadata for a card pack.
type Pack struct {
	Code        string `json:"code"`
	Name        string `json:"name,omitempty"`
	Available   string `json:"available,omitempty"`
	DateRelease string `json:"date_release,omitempty"`
}

// ReleaseDate resolves the date the pack became available. Available takes
// precedence over DateRelease. ok is false when the pack carries no date.
func (p Pack) ReleaseDate() (date time.Time, ok bool, err error) {
	raw := p.Available
	if raw == "" {
		raw = p.DateRelease
	}
	if raw == "" {
		return time.Time{}, false, nil
	}

	date, err = time.Parse(ReleaseDateLayout, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("pack %s: invalid release date %q: %w", p.Code, raw, err)
	}
	return date, true, nil
}

// ReleasedBy reports whether the pack was released on or before now. Packs
// with no date are unreleased.
func (p Pack) ReleasedBy(now time.Time) (bool, error) {
	date, ok, err := p.ReleaseDate()
	if err != nil || !ok {
		return false, err
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return !date.After(today), nil
}
