package schedule

import (
	"github.com/elliotchance/pie/v2"
)

// Validate rejects input that no attempt could satisfy. Checks run in a fixed
// order and the first failure is returned: unique locations, at least one
// location, unique player names, home ratio (when BalanceHomeAway is set),
// availability length, per-location player supply, then positive rules.
func Validate(locations []string, players []Player, rules Rules) error {
	seen := make(map[string]bool, len(locations))
	for _, loc := range locations {
		if seen[loc] {
			return &InputError{Err: ErrLocationsNotUnique, Location: loc}
		}
		seen[loc] = true
	}

	if len(locations) == 0 {
		return &InputError{Err: ErrNoLocations}
	}

	names := make(map[string]bool, len(players))
	for _, p := range players {
		if names[p.Name] {
			return &InputError{Err: ErrPlayersNotUnique, Player: p.Name}
		}
		names[p.Name] = true
	}

	if rules.BalanceHomeAway {
		prefix := rules.homePrefix()
		home := pie.Filter(locations, func(loc string) bool { return IsHome(loc, prefix) })
		if len(home)*2 < len(locations) {
			return &InputError{Err: ErrInsufficientHomeLocations}
		}
	}

	for _, p := range players {
		if len(p.Available) != len(locations) {
			return &InputError{Err: ErrAvailabilityLength, Player: p.Name}
		}
	}

	for i, loc := range locations {
		available := 0
		for _, p := range players {
			if p.Available[i] {
				available++
			}
		}
		if available < rules.RequiredPlayers {
			return &InputError{Err: ErrNotEnoughPlayers, Location: loc}
		}
	}

	if rules.RequiredPlayers <= 0 || rules.MaxGames <= 0 || rules.MaxConsecutiveGames <= 0 {
		return &InputError{Err: ErrInvalidRules}
	}

	return nil
}
