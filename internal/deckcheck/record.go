package deckcheck

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// EntryRecord is the quantity of one draw card in a deck record.
type EntryRecord struct {
	Count    int `yaml:"count" json:"count"`
	Starting int `yaml:"starting,omitempty" json:"starting,omitempty"`
}

// DeckRecord is a deck as stored or submitted: card codes with quantities.
type DeckRecord struct {
	Name    string                 `yaml:"name" json:"name"`
	Faction string                 `yaml:"faction,omitempty" json:"faction,omitempty"`
	Outfit  string                 `yaml:"outfit,omitempty" json:"outfit,omitempty"`
	Wealth  *int                   `yaml:"wealth,omitempty" json:"wealth,omitempty"`
	Legend  string                 `yaml:"legend,omitempty" json:"legend,omitempty"`
	Agendas []string               `yaml:"agendas,omitempty" json:"agendas,omitempty"`
	Draw    map[string]EntryRecord `yaml:"draw" json:"draw"`
	Plots   map[string]int         `yaml:"plots,omitempty" json:"plots,omitempty"`
}

// ParseRecord decodes a YAML or JSON deck record.
func ParseRecord(data []byte) (DeckRecord, error) {
	var rec DeckRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return DeckRecord{}, fmt.Errorf("failed to parse deck record: %w", err)
	}
	return rec, nil
}

// LoadRecord reads a deck record file.
func LoadRecord(path string) (DeckRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DeckRecord{}, fmt.Errorf("failed to read deck record: %w", err)
	}
	return ParseRecord(data)
}

// Codes returns every distinct card code referenced by the record, sorted.
func (r DeckRecord) Codes() []string {
	seen := make(map[string]bool)
	add := func(code string) {
		if code != "" {
			seen[code] = true
		}
	}

	add(r.Outfit)
	add(r.Legend)
	for _, code := range r.Agendas {
		add(code)
	}
	for code := range r.Draw {
		add(code)
	}
	for code := range r.Plots {
		add(code)
	}

	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
