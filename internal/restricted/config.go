package restricted

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidListConfig is returned for restricted list configurations that
// cannot be evaluated.
var ErrInvalidListConfig = errors.New("invalid restricted list config")

// Threshold selects how many restricted cards a deck may contain.
type Threshold string

const (
	// ThresholdAtMostOne allows a single restricted card.
	ThresholdAtMostOne Threshold = "at_most_one"
	// ThresholdNone forbids restricted cards altogether.
	ThresholdNone Threshold = "none"
)

// Pod forbids the listed cards alongside the restricted anchor card.
type Pod struct {
	Restricted string   `yaml:"restricted" mapstructure:"restricted" json:"restricted"`
	Cards      []string `yaml:"cards" mapstructure:"cards" json:"cards"`
}

// ListConfig is the configuration record for one restricted list. Restricted
// and the range fields (RestrictedFrom, RestrictedUpTo, RestrictedExceptions)
// are mutually exclusive.
type ListConfig struct {
	Name      string    `yaml:"name" mapstructure:"name" json:"name"`
	Threshold Threshold `yaml:"threshold" mapstructure:"threshold" json:"threshold"`
	Banned    []string  `yaml:"banned" mapstructure:"banned" json:"banned"`

	Restricted []string `yaml:"restricted" mapstructure:"restricted" json:"restricted,omitempty"`

	RestrictedFrom       string   `yaml:"restricted_from" mapstructure:"restricted_from" json:"restrictedFrom,omitempty"`
	RestrictedUpTo       string   `yaml:"restricted_up_to" mapstructure:"restricted_up_to" json:"restrictedUpTo,omitempty"`
	RestrictedExceptions []string `yaml:"restricted_exceptions" mapstructure:"restricted_exceptions" json:"restrictedExceptions,omitempty"`

	Pods []Pod `yaml:"pods" mapstructure:"pods" json:"pods,omitempty"`
}

// usesRange reports whether the config selects the code-range policy.
func (c ListConfig) usesRange() bool {
	return c.RestrictedFrom != "" || c.RestrictedUpTo != "" || len(c.RestrictedExceptions) > 0
}

// Validate checks the configuration for defects.
func (c ListConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidListConfig)
	}

	switch c.Threshold {
	case ThresholdAtMostOne, ThresholdNone:
	case "":
		return fmt.Errorf("%w: %s: threshold is required", ErrInvalidListConfig, c.Name)
	default:
		return fmt.Errorf("%w: %s: unknown threshold %q", ErrInvalidListConfig, c.Name, c.Threshold)
	}

	if c.usesRange() {
		if len(c.Restricted) > 0 {
			return fmt.Errorf("%w: %s: restricted codes and restricted range are mutually exclusive", ErrInvalidListConfig, c.Name)
		}
		if c.RestrictedFrom == "" && c.RestrictedUpTo == "" {
			return fmt.Errorf("%w: %s: restricted exceptions require a restricted range", ErrInvalidListConfig, c.Name)
		}
		if c.RestrictedFrom != "" && c.RestrictedUpTo != "" && c.RestrictedFrom > c.RestrictedUpTo {
			return fmt.Errorf("%w: %s: restricted range %s..%s is empty", ErrInvalidListConfig, c.Name, c.RestrictedFrom, c.RestrictedUpTo)
		}
	}

	for i, pod := range c.Pods {
		if pod.Restricted == "" {
			return fmt.Errorf("%w: %s: pod %d has no restricted card", ErrInvalidListConfig, c.Name, i)
		}
		if len(pod.Cards) == 0 {
			return fmt.Errorf("%w: %s: pod %d (%s) has no cards", ErrInvalidListConfig, c.Name, i, pod.Restricted)
		}
	}

	return nil
}

type document struct {
	Lists []ListConfig `yaml:"lists"`
}

// Parse decodes a YAML document of restricted lists:
//
//	lists:
//	  - name: Gunslinger Guild
//	    threshold: at_most_one
//	    banned: ["01001"]
//	    restricted: ["02002"]
func Parse(data []byte) ([]ListConfig, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidListConfig, err)
	}
	for _, cfg := range doc.Lists {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return doc.Lists, nil
}

// LoadFile reads and parses a restricted list document from path.
func LoadFile(path string) ([]ListConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read restricted list file: %w", err)
	}
	lists, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lists, nil
}
