package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Term source kinds accepted in the parliaments file.
const (
	SourceMeasured = "measured"
	SourceLiteral  = "literal"
)

// ParliamentsConfig represents the structure of the parliaments.yaml file.
// It lists the terms shown on the historical page and where each term's
// figures come from.
type ParliamentsConfig struct {
	PageUpdated string       `yaml:"page_updated"`
	Terms       []TermConfig `yaml:"terms"`
}

// TermConfig defines one parliamentary term.
type TermConfig struct {
	Number int    `yaml:"number"`
	Label  string `yaml:"label,omitempty"` // defaults to "<n>th Parliament of New Zealand"
	Years  string `yaml:"years,omitempty"` // e.g. "2017 - 2020"
	Source string `yaml:"source"`          // measured | literal
	AsOf   string `yaml:"as_of,omitempty"` // shown as "Last Updated"

	// Measured terms: take the running total from billcounter.txt, or pin a
	// finalized figure with TotalBills.
	UseCounter bool `yaml:"use_counter,omitempty"`

	// Literal terms carry all four figures. TotalBills may also pin a measured term.
	DaysSat     int64  `yaml:"days_sat,omitempty"`
	DaysUrgent  int64  `yaml:"days_urgent,omitempty"`
	BillsUrgent int64  `yaml:"bills_urgent,omitempty"`
	TotalBills  *int64 `yaml:"total_bills,omitempty"`
}

// DefaultParliaments mirrors the terms the tables hold data for. Years are
// left empty since they can't be derived from the term number.
func DefaultParliaments(current int) *ParliamentsConfig {
	return &ParliamentsConfig{
		Terms: []TermConfig{
			{Number: current - 2, Source: SourceMeasured},
			{Number: current - 1, Source: SourceMeasured},
			{Number: current, Source: SourceMeasured, UseCounter: true},
		},
	}
}

// LoadParliaments loads the parliaments file at path.
// Falls back to DefaultParliaments when the file doesn't exist.
func LoadParliaments(path string, current int) (*ParliamentsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Parliaments file is optional
			return DefaultParliaments(current), nil
		}
		return nil, err
	}

	var cfg ParliamentsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	// Set defaults
	for i := range cfg.Terms {
		if cfg.Terms[i].Source == "" {
			cfg.Terms[i].Source = SourceMeasured
		}
	}

	return &cfg, nil
}

// GetTerm finds a term by its number.
func (c *ParliamentsConfig) GetTerm(number int) *TermConfig {
	if c == nil {
		return nil
	}
	for i := range c.Terms {
		if c.Terms[i].Number == number {
			return &c.Terms[i]
		}
	}
	return nil
}
