// Package config loads deckcheck configuration from YAML files and the
// environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dtdb/deckcheck/internal/restricted"
	"github.com/dtdb/deckcheck/internal/rules"
	"github.com/dtdb/deckcheck/internal/validator"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Editions supported by ValidatorConfig.Edition.
const (
	EditionDoomtown = "doomtown"
	EditionThrones  = "thrones"
)

// Config is the root configuration.
type Config struct {
	Logging             LoggingConfig           `mapstructure:"logging"`
	Database            DatabaseConfig          `mapstructure:"database"`
	Validator           ValidatorConfig         `mapstructure:"validator"`
	RestrictedLists     []restricted.ListConfig `mapstructure:"restricted_lists"`
	RestrictedListFiles []string                `mapstructure:"restricted_list_files"`
}

// Log output formats.
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var logLevels = map[string]zapcore.Level{
	"":      zapcore.InfoLevel,
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
}

// ZapLevel resolves Level. An empty level means info.
func (lc LoggingConfig) ZapLevel() (zapcore.Level, error) {
	level, ok := logLevels[lc.Level]
	if !ok {
		return zapcore.InfoLevel, fmt.Errorf("unknown logging level %q", lc.Level)
	}
	return level, nil
}

// DatabaseConfig configures the PostgreSQL card source.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// ValidatorConfig selects the rule edition and its variant switches. Unset
// switches inherit the edition preset.
type ValidatorConfig struct {
	Edition          string     `mapstructure:"edition"`
	DrawCountPolicy  string     `mapstructure:"draw_count_policy"`
	GroupBy          string     `mapstructure:"group_by"`
	GroupLimit       *int       `mapstructure:"group_limit"`
	StartingCap      string     `mapstructure:"starting_cap"`
	CoreDeeds        *bool      `mapstructure:"core_deeds"`
	CheckPlots       *bool      `mapstructure:"check_plots"`
	EnforceInclusion *bool      `mapstructure:"enforce_inclusion"`
	Base             BaseConfig `mapstructure:"base"`
}

// BaseConfig overrides numeric fields of the edition's base rules.
type BaseConfig struct {
	RequiredDraw         *int `mapstructure:"required_draw"`
	RequiredPlots        *int `mapstructure:"required_plots"`
	MaxDoubledPlots      *int `mapstructure:"max_doubled_plots"`
	MaxJokerCount        *int `mapstructure:"max_joker_count"`
	MaxStartingCount     *int `mapstructure:"max_starting_count"`
	MaxStartingCoreCount *int `mapstructure:"max_starting_core_count"`
}

// Load reads configuration from path, applies defaults and DECKCHECK_*
// environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("DECKCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := cfg.AllRestrictedLists(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// envKeys are the scalar keys that DECKCHECK_* variables can override.
// Unmarshal only sees keys viper already knows, so each key without a default
// is bound explicitly.
var envKeys = []string{
	"logging.level",
	"logging.format",
	"database.url",
	"database.max_conns",
	"database.min_conns",
	"database.max_conn_lifetime",
	"validator.edition",
	"validator.draw_count_policy",
	"validator.group_by",
	"validator.group_limit",
	"validator.starting_cap",
	"validator.core_deeds",
	"validator.check_plots",
	"validator.enforce_inclusion",
	"validator.base.required_draw",
	"validator.base.required_plots",
	"validator.base.max_doubled_plots",
	"validator.base.max_joker_count",
	"validator.base.max_starting_count",
	"validator.base.max_starting_core_count",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.max_conn_lifetime", time.Hour)

	v.SetDefault("validator.edition", EditionDoomtown)
}

// Validate checks the configuration for defects that would otherwise surface
// while validating decks.
func (c *Config) Validate() error {
	if _, err := c.Logging.ZapLevel(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case LogFormatJSON, LogFormatConsole:
	default:
		return fmt.Errorf("unknown logging format %q", c.Logging.Format)
	}

	if _, err := c.Validator.Options(); err != nil {
		return err
	}
	base, err := c.Validator.BaseFragment()
	if err != nil {
		return err
	}
	if base.RequiredDraw == nil {
		return fmt.Errorf("%w: validator.base.required_draw", validator.ErrMissingBaseField)
	}

	for _, list := range c.RestrictedLists {
		if err := list.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Options resolves the validator options of the configured edition with the
// configured switches applied.
func (vc ValidatorConfig) Options() (validator.Options, error) {
	var opts validator.Options
	switch vc.Edition {
	case EditionDoomtown:
		opts = validator.DoomtownOptions()
	case EditionThrones:
		opts = validator.ThronesOptions()
	default:
		return validator.Options{}, fmt.Errorf("unknown validator edition %q", vc.Edition)
	}

	if vc.DrawCountPolicy != "" {
		opts.DrawCountPolicy = validator.DrawCountPolicy(vc.DrawCountPolicy)
	}
	if vc.GroupBy != "" {
		opts.GroupBy = validator.GroupKey(vc.GroupBy)
	}
	if vc.GroupLimit != nil {
		opts.GroupLimit = *vc.GroupLimit
	}
	if vc.StartingCap != "" {
		opts.StartingCap = validator.StartingCapPolicy(vc.StartingCap)
	}
	if vc.CoreDeeds != nil {
		opts.CoreDeeds = *vc.CoreDeeds
	}
	if vc.CheckPlots != nil {
		opts.CheckPlots = *vc.CheckPlots
	}
	if vc.EnforceInclusion != nil {
		opts.EnforceInclusion = *vc.EnforceInclusion
	}

	if err := opts.Validate(); err != nil {
		return validator.Options{}, fmt.Errorf("validator: %w", err)
	}
	return opts, nil
}

// BaseFragment returns the edition's base rules with configured overrides.
func (vc ValidatorConfig) BaseFragment() (rules.Fragment, error) {
	var base rules.Fragment
	switch vc.Edition {
	case EditionDoomtown:
		base = rules.DoomtownBase()
	case EditionThrones:
		base = rules.ThronesBase()
	default:
		return rules.Fragment{}, fmt.Errorf("unknown validator edition %q", vc.Edition)
	}

	overrides := rules.Limits{
		RequiredDraw:         vc.Base.RequiredDraw,
		RequiredPlots:        vc.Base.RequiredPlots,
		MaxDoubledPlots:      vc.Base.MaxDoubledPlots,
		MaxJokerCount:        vc.Base.MaxJokerCount,
		MaxStartingCount:     vc.Base.MaxStartingCount,
		MaxStartingCoreCount: vc.Base.MaxStartingCoreCount,
	}
	merged := rules.Combine(base, rules.Fragment{Limits: overrides})
	base.Limits = merged.Limits
	return base, nil
}

// Fragments returns the special card fragment table of the edition.
func (vc ValidatorConfig) Fragments() rules.Table {
	if vc.Edition == EditionThrones {
		return rules.AgendaTable()
	}
	return rules.LegendTable()
}

// AllRestrictedLists returns the inline restricted lists followed by the lists
// of every configured list file, in order.
func (c *Config) AllRestrictedLists() ([]restricted.ListConfig, error) {
	lists := append([]restricted.ListConfig(nil), c.RestrictedLists...)
	for _, path := range c.RestrictedListFiles {
		fromFile, err := restricted.LoadFile(path)
		if err != nil {
			return nil, err
		}
		lists = append(lists, fromFile...)
	}
	return lists, nil
}
