// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verrev/revise/internal/model"
)

// Built-in session defaults, used when neither flags nor the config file
// set a value.
const (
	DefaultSessionCount = 6
	DefaultSessionTime  = 45
	DefaultBreakTime    = 15
	DefaultShots        = 1
	DefaultUser         = "student"
)

// Built-in date decay bounds: entries older than half a year stop counting
// beyond the minimum weight.
const (
	DefaultDecayMinWeight    = 0.2
	DefaultDecayMaxWeight    = 1.0
	DefaultDecayThresholdDay = 180
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	User     UserConfig         `toml:"user"`
	Sessions SessionsConfig     `toml:"sessions"`
	Decay    DecayConfig        `toml:"decay"`
	Weights  map[string]float64 `toml:"weights"`
}

// UserConfig selects the active learner.
type UserConfig struct {
	Name *string `toml:"name"`
	Role *string `toml:"role"`
}

// SessionsConfig maps session-generation defaults.
type SessionsConfig struct {
	Count       *int `toml:"count"`
	SessionTime *int `toml:"session-time"`
	BreakTime   *int `toml:"break-time"`
	Shots       *int `toml:"shots"`
}

// DecayConfig maps the recency-discount bounds.
type DecayConfig struct {
	MinWeight        *float64 `toml:"min-weight"`
	MaxWeight        *float64 `toml:"max-weight"`
	ZeroDayThreshold *int     `toml:"zero-day-threshold"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// SessionDefaults resolves the configured session parameters over the
// built-in defaults.
func (c FileConfig) SessionDefaults() model.SessionParameters {
	params := model.SessionParameters{
		Count:       DefaultSessionCount,
		SessionTime: DefaultSessionTime,
		BreakTime:   DefaultBreakTime,
		Shots:       DefaultShots,
	}
	if c.Sessions.Count != nil {
		params.Count = *c.Sessions.Count
	}
	if c.Sessions.SessionTime != nil {
		params.SessionTime = *c.Sessions.SessionTime
	}
	if c.Sessions.BreakTime != nil {
		params.BreakTime = *c.Sessions.BreakTime
	}
	if c.Sessions.Shots != nil {
		params.Shots = *c.Sessions.Shots
	}
	return params
}

// DateDecay resolves the configured decay bounds over the built-in defaults.
func (c FileConfig) DateDecay() model.DateDecayConfig {
	decay := model.DateDecayConfig{
		MinWeight:        DefaultDecayMinWeight,
		MaxWeight:        DefaultDecayMaxWeight,
		ZeroDayThreshold: DefaultDecayThresholdDay,
	}
	if c.Decay.MinWeight != nil {
		decay.MinWeight = *c.Decay.MinWeight
	}
	if c.Decay.MaxWeight != nil {
		decay.MaxWeight = *c.Decay.MaxWeight
	}
	if c.Decay.ZeroDayThreshold != nil {
		decay.ZeroDayThreshold = *c.Decay.ZeroDayThreshold
	}
	return decay
}

// ActiveUser resolves the configured user name.
func (c FileConfig) ActiveUser() string {
	if c.User.Name != nil && *c.User.Name != "" {
		return *c.User.Name
	}
	return DefaultUser
}

// ActiveRole resolves the configured user role.
func (c FileConfig) ActiveRole() string {
	if c.User.Role != nil && *c.User.Role != "" {
		return *c.User.Role
	}
	return "student"
}

// MergeWeights overlays configured per-type weights onto the stored ones.
func (c FileConfig) MergeWeights(stored map[string]float64) map[string]float64 {
	if len(c.Weights) == 0 {
		return stored
	}
	merged := make(map[string]float64, len(stored)+len(c.Weights))
	for label, weight := range stored {
		merged[label] = weight
	}
	for label, weight := range c.Weights {
		merged[label] = weight
	}
	return merged
}
