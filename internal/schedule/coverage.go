package schedule

import (
	"math/rand"
	"slices"
)

// DefaultMaxSwapIterations bounds the pair-coverage search.
const DefaultMaxSwapIterations = 5000

// AllPairs returns every unordered pair of distinct players in input order.
func AllPairs(players []string) []Pair {
	var pairs []Pair
	for i := 0; i < len(players); i++ {
		for j := i + 1; j < len(players); j++ {
			if players[i] == players[j] {
				continue
			}
			pairs = append(pairs, NewPair(players[i], players[j]))
		}
	}
	return pairs
}

// CoveredPairs returns the pairs that share at least one roster.
func CoveredPairs(a Assignment) map[Pair]bool {
	covered := make(map[Pair]bool)
	for _, roster := range a {
		for i := 0; i < len(roster); i++ {
			for j := i + 1; j < len(roster); j++ {
				if roster[i] != roster[j] {
					covered[NewPair(roster[i], roster[j])] = true
				}
			}
		}
	}
	return covered
}

// MissingPairs returns the pairs of players that never share a roster.
func MissingPairs(a Assignment, players []string) []Pair {
	covered := CoveredPairs(a)
	var missing []Pair
	for _, p := range AllPairs(players) {
		if !covered[p] {
			missing = append(missing, p)
		}
	}
	return missing
}

// RepairOptions configure Repair. A nil Rand is seeded with 1.
type RepairOptions struct {
	MaxIterations int
	Rand          *rand.Rand
}

// RepairResult is the outcome of a Repair pass.
type RepairResult struct {
	Assignment Assignment
	Covered    bool
	Swaps      int
	Iterations int
	Missing    []Pair
}

// Repair swaps players between locations so that as many pairs as possible
// share a roster, without breaking availability, MaxGames or
// MaxConsecutiveGames. The input assignment is not modified. When every pair
// is already covered the result is an unchanged copy and no swap is tried.
func Repair(a Assignment, locations []string, players []Player, rules Rules, opts RepairOptions) RepairResult {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxSwapIterations
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}

	r := newRepairer(a.Clone(), locations, players, rules)
	names := playerNames(players)
	result := RepairResult{Assignment: r.assignment}

	for result.Iterations < opts.MaxIterations {
		missing := MissingPairs(r.assignment, names)
		if len(missing) == 0 {
			break
		}
		result.Iterations++

		p := missing[opts.Rand.Intn(len(missing))]
		if r.pull(p.A, p.B) || r.pull(p.B, p.A) {
			result.Swaps++
		}
	}

	result.Missing = MissingPairs(r.assignment, names)
	result.Covered = len(result.Missing) == 0
	return result
}

type repairer struct {
	assignment Assignment
	locations  []string
	rules      Rules

	locIndex  map[string]int
	available map[string][]bool
}

func newRepairer(a Assignment, locations []string, players []Player, rules Rules) *repairer {
	r := &repairer{
		assignment: a,
		locations:  locations,
		rules:      rules,
		locIndex:   make(map[string]int, len(locations)),
		available:  make(map[string][]bool, len(players)),
	}
	for i, loc := range locations {
		r.locIndex[loc] = i
	}
	for _, p := range players {
		r.available[p.Name] = p.Available
	}
	return r
}

func (r *repairer) isAvailable(player, loc string) bool {
	av, ok := r.available[player]
	if !ok {
		return false
	}
	i := r.locIndex[loc]
	return i < len(av) && av[i]
}

// locationsOf lists the locations a player is rostered at, in location order.
func (r *repairer) locationsOf(player string) []string {
	var out []string
	for _, loc := range r.locations {
		if r.assignment.Plays(loc, player) {
			out = append(out, loc)
		}
	}
	return out
}

// pull tries to bring mover onto a roster where stay plays. A teammate x of
// stay at that location trades places with mover at one of mover's
// locations. The first trade that keeps both x and mover within their limits
// is kept.
func (r *repairer) pull(stay, mover string) bool {
	moverLocs := r.locationsOf(mover)
	for _, to := range r.locationsOf(stay) {
		if !r.isAvailable(mover, to) || r.assignment.Plays(to, mover) {
			continue
		}
		teammates := slices.Clone(r.assignment[to])
		for _, x := range teammates {
			if x == stay {
				continue
			}
			for _, from := range moverLocs {
				if from == to || !r.isAvailable(x, from) || r.assignment.Plays(from, x) {
					continue
				}
				r.exchange(to, x, from, mover)
				if r.withinLimits(x, mover) {
					return true
				}
				r.exchange(to, mover, from, x)
			}
		}
	}
	return false
}

// exchange replaces out with in at loc1 and in with out at loc2.
func (r *repairer) exchange(loc1, out, loc2, in string) {
	replace(r.assignment[loc1], out, in)
	replace(r.assignment[loc2], in, out)
}

func replace(roster []string, from, to string) {
	if i := slices.Index(roster, from); i >= 0 {
		roster[i] = to
	}
}

func (r *repairer) withinLimits(players ...string) bool {
	loads := Loads(r.assignment, r.locations)
	for _, p := range players {
		l := loads[p]
		if l.Matches > r.rules.MaxGames || l.LongestStreak > r.rules.MaxConsecutiveGames {
			return false
		}
	}
	return true
}
