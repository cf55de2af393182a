package gametype

import (
	"fmt"
	"sort"

	"github.com/derekprior/lineup/internal/schedule"
)

// Policy is the roster size and game limits for one kind of fixture.
type Policy struct {
	Name                string
	RequiredPlayers     int
	MaxGames            int
	MaxConsecutiveGames int

	// BalanceHomeAway is false for cup fixtures, which may be played
	// entirely away.
	BalanceHomeAway bool

	// DefaultLocations is how many locations a new config starts with.
	DefaultLocations int
}

var policies = map[string]Policy{
	"duo":   {Name: "duo", RequiredPlayers: 2, MaxGames: 5, MaxConsecutiveGames: 3, BalanceHomeAway: true, DefaultLocations: 10},
	"trio":  {Name: "trio", RequiredPlayers: 3, MaxGames: 7, MaxConsecutiveGames: 4, BalanceHomeAway: true, DefaultLocations: 10},
	"squad": {Name: "squad", RequiredPlayers: 4, MaxGames: 9, MaxConsecutiveGames: 7, BalanceHomeAway: true, DefaultLocations: 10},
	"cup":   {Name: "cup", RequiredPlayers: 4, MaxGames: 5, MaxConsecutiveGames: 2, BalanceHomeAway: false, DefaultLocations: 3},
}

var aliases = map[string]string{
	"beker": "cup",
}

// Get returns a Policy by name.
func Get(name string) (Policy, error) {
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	p, ok := policies[name]
	if !ok {
		return Policy{}, fmt.Errorf("unknown game type: %q", name)
	}
	return p, nil
}

// All returns every policy sorted by roster size, then name.
func All() []Policy {
	out := make([]Policy, 0, len(policies))
	for _, p := range policies {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RequiredPlayers != out[j].RequiredPlayers {
			return out[i].RequiredPlayers < out[j].RequiredPlayers
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Rules converts the policy into scheduling rules.
func (p Policy) Rules(homePrefix string) schedule.Rules {
	return schedule.Rules{
		RequiredPlayers:     p.RequiredPlayers,
		MaxGames:            p.MaxGames,
		MaxConsecutiveGames: p.MaxConsecutiveGames,
		BalanceHomeAway:     p.BalanceHomeAway,
		HomePrefix:          homePrefix,
	}
}

// DefaultLocations lays out n locations alternating away and home:
// UIT1, THUIS1, UIT2, THUIS2, ...
func DefaultLocations(n int, homePrefix string) []string {
	if homePrefix == "" {
		homePrefix = schedule.DefaultHomePrefix
	}
	locs := make([]string, n)
	for i := range locs {
		prefix := "UIT"
		if i%2 == 1 {
			prefix = homePrefix
		}
		locs[i] = fmt.Sprintf("%s%d", prefix, i/2+1)
	}
	return locs
}
