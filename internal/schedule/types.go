package schedule

import (
	"slices"
	"strings"
)

// DefaultHomePrefix marks home locations, e.g. "THUIS1". Everything else is away.
const DefaultHomePrefix = "THUIS"

// Player is a named player and whether they can play at each location,
// indexed in location order.
type Player struct {
	Name      string
	Available []bool
}

// Rules bound the size of each roster and how often a player may play.
type Rules struct {
	RequiredPlayers     int
	MaxGames            int
	MaxConsecutiveGames int

	// BalanceHomeAway requires at least half of the locations to be home
	// locations. Cup fixtures turn it off.
	BalanceHomeAway bool
	HomePrefix      string
}

func (r Rules) homePrefix() string {
	if r.HomePrefix == "" {
		return DefaultHomePrefix
	}
	return r.HomePrefix
}

// IsHome reports whether a location is a home location under the given prefix.
func IsHome(location, prefix string) bool {
	if prefix == "" {
		prefix = DefaultHomePrefix
	}
	return strings.HasPrefix(location, prefix)
}

// Assignment maps each location to the players rostered there.
type Assignment map[string][]string

// Clone returns a deep copy.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	for loc, roster := range a {
		out[loc] = slices.Clone(roster)
	}
	return out
}

// Plays reports whether player is on the roster at location.
func (a Assignment) Plays(location, player string) bool {
	return slices.Contains(a[location], player)
}

// PlayerStats is the fatigue state of one player during a single attempt.
type PlayerStats struct {
	Matches     int
	Consecutive int
	Home        int
	Away        int
}

// Pair is an unordered pair of distinct players, stored with A < B.
type Pair struct {
	A, B string
}

// NewPair normalizes the order of two player names.
func NewPair(a, b string) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

func (p Pair) String() string {
	return p.A + " & " + p.B
}

func playerNames(players []Player) []string {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	return names
}
