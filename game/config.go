package game

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("invalid game configuration")

// ConfigError describes a malformed configuration or testcase input.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// Config holds the three game parameters.
type Config struct {
	// Threshold is the bust limit: a hand whose face values sum to Threshold or more is bust.
	Threshold int `json:"threshold"`
	// Bonus is added to the stop payoff when the hand contains Sequence.
	Bonus    int   `json:"bonus"`
	Sequence []int `json:"sequence"`
}

func (c Config) Validate() error {
	if c.Threshold < 1 {
		return &ConfigError{Field: "threshold", Reason: fmt.Sprintf("must be positive, got %d", c.Threshold)}
	}
	for _, v := range c.Sequence {
		if v < 1 || v > MaxFace {
			return &ConfigError{Field: "sequence", Reason: fmt.Sprintf("face value %d out of range [1,%d]", v, MaxFace)}
		}
	}
	return nil
}

// Payoff is what stopping with hand h banks.
func (c Config) Payoff(h Hand) int {
	reward := h.Sum()
	if c.HasBonus(h) {
		reward += c.Bonus
	}
	return reward
}

func (c Config) HasBonus(h Hand) bool {
	return h.ContainsRun(c.Sequence)
}

// Busts reports whether a hand is at or over the threshold.
func (c Config) Busts(h Hand) bool {
	return h.Sum() >= c.Threshold
}
