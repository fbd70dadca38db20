package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TableConfig describes a table's fixed rules: how many seats it has, the
// blind structure, and which muck policy governs showdown.
type TableConfig struct {
	Seats        int    `yaml:"seats"`
	SmallBlind   int    `yaml:"small_blind"`
	BigBlind     int    `yaml:"big_blind"`
	StartStack   int    `yaml:"start_stack"`
	MinBuyIn     int    `yaml:"min_buyin"`
	MaxBuyIn     int    `yaml:"max_buyin"`
	MuckPolicy   string `yaml:"muck_policy"` // "default", "always_show", "never_ask"
}

// DefaultTableConfig returns the nine-seat, no-limit cash game rules used
// when a table is built without an explicit config.
func DefaultTableConfig() TableConfig {
	return TableConfig{
		Seats:      9,
		SmallBlind: 5,
		BigBlind:   10,
		StartStack: 1000,
		MinBuyIn:   400,
		MaxBuyIn:   2000,
		MuckPolicy: "default",
	}
}

// LoadTableConfigFromFile reads a YAML file describing a TableConfig.
func LoadTableConfigFromFile(filePath string) (*TableConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	cfg := DefaultTableConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// muckPolicy resolves the config's named policy to a MuckPolicy instance,
// returning DefaultMuckPolicy for an empty name and an error for an
// unrecognized one.
func (c TableConfig) muckPolicy() (MuckPolicy, error) {
	switch c.MuckPolicy {
	case "", "default":
		return DefaultMuckPolicy{}, nil
	case "always_show":
		return AlwaysShowPolicy{}, nil
	case "never_ask":
		return NeverAskPolicy{}, nil
	default:
		return nil, fmt.Errorf("poker: unknown muck policy %q", c.MuckPolicy)
	}
}
