package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/triadlabs/triad-cards/internal/game"
)

type cardEntry struct {
	Name         string `json:"name"`
	Kind         string `json:"kind"`
	Strength     int    `json:"strength"`
	Dexterity    int    `json:"dexterity"`
	Intelligence int    `json:"intelligence"`
}

type rawConfig struct {
	StarterCards []cardEntry `json:"starter_cards"`
	Server       *struct {
		Address string `json:"address"`
	} `json:"server"`
	// SweepIntervalSeconds controls how often the background sweeper looks
	// for battles that are ready to resolve but were left behind by their
	// original trigger (client navigated away, process died mid-call).
	SweepIntervalSeconds int `json:"sweep_interval_seconds"`
}

// StarterCard is a card template granted to new players on first sign-in.
type StarterCard struct {
	Name         string
	Kind         game.Kind
	Strength     int
	Dexterity    int
	Intelligence int
}

// LoadedConfig contains starter card templates and server settings.
type LoadedConfig struct {
	StarterCards  []StarterCard
	ServerAddress string
	SweepInterval time.Duration
}

// LoadConfig reads the configuration file at path. It requires the key
// `starter_cards` (snake_case) with at least one valid template.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	entries := rc.StarterCards
	if len(entries) == 0 {
		return nil, fmt.Errorf("config file %s: starter_cards is empty (provide 'starter_cards' array)", path)
	}

	out := make([]StarterCard, 0, len(entries))
	nameSet := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("config file %s: starter card missing 'name'", path)
		}
		kind := game.Kind(strings.ToLower(strings.TrimSpace(e.Kind)))
		if !game.ValidKind(kind) {
			return nil, fmt.Errorf("config file %s: starter card '%s' has unknown kind '%s'", path, e.Name, e.Kind)
		}
		if e.Strength < 0 || e.Dexterity < 0 || e.Intelligence < 0 {
			return nil, fmt.Errorf("config file %s: starter card '%s' has negative attributes", path, e.Name)
		}
		ln := strings.ToLower(strings.TrimSpace(e.Name))
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate starter card name '%s'", path, e.Name)
		}
		nameSet[ln] = struct{}{}
		out = append(out, StarterCard{
			Name:         e.Name,
			Kind:         kind,
			Strength:     e.Strength,
			Dexterity:    e.Dexterity,
			Intelligence: e.Intelligence,
		})
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	sweep := 5 * time.Second
	if rc.SweepIntervalSeconds > 0 {
		sweep = time.Duration(rc.SweepIntervalSeconds) * time.Second
	}

	return &LoadedConfig{
		StarterCards:  out,
		ServerAddress: addr,
		SweepInterval: sweep,
	}, nil
}
