package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/derekprior/lineup/internal/gametype"
	"github.com/derekprior/lineup/internal/schedule"
)

type Player struct {
	Name         string `yaml:"name"`
	Availability []bool `yaml:"availability,flow"`
}

// Rules override the limits that come with the game type. Zero keeps the
// game type's value.
type Rules struct {
	RequiredPlayers     int `yaml:"required_players,omitempty"`
	MaxGames            int `yaml:"max_games,omitempty"`
	MaxConsecutiveGames int `yaml:"max_consecutive_games,omitempty"`
}

type Config struct {
	GameType   string   `yaml:"game_type"`
	HomePrefix string   `yaml:"home_prefix,omitempty"`
	Coverage   string   `yaml:"coverage,omitempty"`
	Seed       int64    `yaml:"seed,omitempty"`
	Rules      Rules    `yaml:"rules,omitempty"`
	Locations  []string `yaml:"locations,flow"`
	Players    []Player `yaml:"players"`
}

// PlayerNames returns player names in config order.
func (c *Config) PlayerNames() []string {
	names := make([]string, len(c.Players))
	for i, p := range c.Players {
		names[i] = p.Name
	}
	return names
}

// Policy returns the game type with any rule overrides applied.
func (c *Config) Policy() (gametype.Policy, error) {
	p, err := gametype.Get(c.GameType)
	if err != nil {
		return gametype.Policy{}, err
	}
	if c.Rules.RequiredPlayers > 0 {
		p.RequiredPlayers = c.Rules.RequiredPlayers
	}
	if c.Rules.MaxGames > 0 {
		p.MaxGames = c.Rules.MaxGames
	}
	if c.Rules.MaxConsecutiveGames > 0 {
		p.MaxConsecutiveGames = c.Rules.MaxConsecutiveGames
	}
	return p, nil
}

// ScheduleRules returns the rules the scheduler enforces.
func (c *Config) ScheduleRules() (schedule.Rules, error) {
	p, err := c.Policy()
	if err != nil {
		return schedule.Rules{}, err
	}
	return p.Rules(c.HomePrefix), nil
}

// SchedulePlayers converts players to the scheduler's representation.
func (c *Config) SchedulePlayers() []schedule.Player {
	players := make([]schedule.Player, len(c.Players))
	for i, p := range c.Players {
		players[i] = schedule.Player{Name: p.Name, Available: p.Availability}
	}
	return players
}

// LoadFromBytes parses YAML bytes into a Config and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// validate checks the config's own structure. Whether the locations and
// availability can produce a schedule is left to schedule.Validate.
func (c *Config) validate() error {
	if _, err := gametype.Get(c.GameType); err != nil {
		return err
	}

	if _, err := schedule.ParseCoveragePolicy(c.Coverage); err != nil {
		return err
	}

	if c.Rules.RequiredPlayers < 0 || c.Rules.MaxGames < 0 || c.Rules.MaxConsecutiveGames < 0 {
		return fmt.Errorf("rule overrides must not be negative")
	}

	if len(c.Locations) == 0 {
		return fmt.Errorf("at least one location is required")
	}

	if len(c.Players) == 0 {
		return fmt.Errorf("at least one player is required")
	}

	seen := make(map[string]bool)
	for i, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player %d has no name", i+1)
		}
		if seen[p.Name] {
			return fmt.Errorf("player %q appears more than once", p.Name)
		}
		seen[p.Name] = true
	}

	return nil
}
