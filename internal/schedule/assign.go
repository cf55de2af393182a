package schedule

import (
	"math/rand"
)

// attempt owns all state for one greedy pass over the locations. A failed
// attempt is dropped as a whole; nothing in it is reused by the next one.
type attempt struct {
	locations []string
	players   []Player
	rules     Rules
	rng       *rand.Rand

	stats   []PlayerStats // indexed like players
	rosters [][]int       // location index -> player indices
}

func newAttempt(locations []string, players []Player, rules Rules, rng *rand.Rand) *attempt {
	return &attempt{
		locations: locations,
		players:   players,
		rules:     rules,
		rng:       rng,
		stats:     make([]PlayerStats, len(players)),
		rosters:   make([][]int, len(locations)),
	}
}

// run fills every location in order. It returns the index of the first
// location that could not be filled, or -1 when the attempt succeeded.
func (a *attempt) run() int {
	prefix := a.rules.homePrefix()
	for li, loc := range a.locations {
		pool := a.eligible(li)
		if len(pool) < a.rules.RequiredPlayers {
			return li
		}

		a.rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
		roster := pool[:a.rules.RequiredPlayers]
		a.rosters[li] = roster

		home := IsHome(loc, prefix)
		selected := make([]bool, len(a.players))
		for _, pi := range roster {
			selected[pi] = true
			st := &a.stats[pi]
			st.Matches++
			st.Consecutive++
			if home {
				st.Home++
			} else {
				st.Away++
			}
		}

		// One missed location ends a streak.
		for pi := range a.stats {
			if !selected[pi] {
				a.stats[pi].Consecutive = 0
			}
		}
	}
	return -1
}

// eligible lists players available at the location who are below both caps.
func (a *attempt) eligible(li int) []int {
	var pool []int
	for pi, p := range a.players {
		st := a.stats[pi]
		if !p.Available[li] {
			continue
		}
		if st.Matches >= a.rules.MaxGames || st.Consecutive >= a.rules.MaxConsecutiveGames {
			continue
		}
		pool = append(pool, pi)
	}
	return pool
}

func (a *attempt) assignment() Assignment {
	out := make(Assignment, len(a.locations))
	for li, loc := range a.locations {
		roster := make([]string, len(a.rosters[li]))
		for i, pi := range a.rosters[li] {
			roster[i] = a.players[pi].Name
		}
		out[loc] = roster
	}
	return out
}

