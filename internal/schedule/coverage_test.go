package schedule

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllPairs(t *testing.T) {
	t.Run("n choose 2", func(t *testing.T) {
		pairs := AllPairs([]string{"A", "B", "C", "D"})
		assert.Len(t, pairs, 6)
		assert.Equal(t, NewPair("A", "B"), pairs[0])
		assert.Equal(t, NewPair("C", "D"), pairs[5])
	})

	t.Run("fewer than two players", func(t *testing.T) {
		assert.Empty(t, AllPairs([]string{"A"}))
		assert.Empty(t, AllPairs(nil))
	})

	t.Run("pairs are unordered", func(t *testing.T) {
		assert.Equal(t, NewPair("B", "A"), NewPair("A", "B"))
		assert.Equal(t, "A & B", NewPair("B", "A").String())
	})
}

func TestMissingPairs(t *testing.T) {
	a := Assignment{
		"L1": {"A", "B"},
		"L2": {"C", "D"},
		"L3": {"A", "C"},
		"L4": {"B", "D"},
	}
	missing := MissingPairs(a, []string{"A", "B", "C", "D"})
	assert.Equal(t, []Pair{NewPair("A", "D"), NewPair("B", "C")}, missing)
}

func TestRepair(t *testing.T) {
	names := []string{"A", "B", "C", "D"}
	generous := Rules{RequiredPlayers: 2, MaxGames: 6, MaxConsecutiveGames: 6}

	t.Run("covered input is returned unchanged", func(t *testing.T) {
		locs := []string{"L1", "L2", "L3", "L4", "L5", "L6"}
		in := Assignment{
			"L1": {"A", "B"}, "L2": {"C", "D"}, "L3": {"A", "C"},
			"L4": {"B", "D"}, "L5": {"A", "D"}, "L6": {"B", "C"},
		}
		res := Repair(in, locs, allAvailable(names, len(locs)), generous, RepairOptions{Rand: rand.New(rand.NewSource(1))})

		assert.True(t, res.Covered)
		assert.Zero(t, res.Swaps)
		assert.Zero(t, res.Iterations)
		assert.Empty(t, cmp.Diff(in, res.Assignment))

		again := Repair(res.Assignment, locs, allAvailable(names, len(locs)), generous, RepairOptions{Rand: rand.New(rand.NewSource(2))})
		assert.True(t, again.Covered)
		assert.Zero(t, again.Swaps)
		assert.Zero(t, again.Iterations)
		assert.Empty(t, cmp.Diff(res.Assignment, again.Assignment))
	})

	t.Run("one swap completes coverage", func(t *testing.T) {
		locs := []string{"L1", "L2", "L3", "L4", "L5", "L6"}
		in := Assignment{
			"L1": {"A", "B"}, "L2": {"C", "D"}, "L3": {"A", "C"},
			"L4": {"B", "D"}, "L5": {"A", "B"}, "L6": {"C", "D"},
		}
		before := in.Clone()
		players := allAvailable(names, len(locs))

		for seed := int64(1); seed <= 5; seed++ {
			res := Repair(in, locs, players, generous, RepairOptions{Rand: rand.New(rand.NewSource(seed))})
			require.True(t, res.Covered, "seed %d", seed)
			assert.Equal(t, 1, res.Swaps, "seed %d", seed)
			assert.Empty(t, res.Missing)
			assertRostersValid(t, res.Assignment, locs, players, generous)
		}
		assert.Empty(t, cmp.Diff(before, in), "input must not be modified")
	})

	t.Run("four rosters of two cannot cover six pairs", func(t *testing.T) {
		locs := []string{"L1", "L2", "L3", "L4"}
		in := Assignment{"L1": {"A", "B"}, "L2": {"C", "D"}, "L3": {"A", "C"}, "L4": {"B", "D"}}
		players := allAvailable(names, len(locs))
		opts := func() RepairOptions {
			return RepairOptions{MaxIterations: 200, Rand: rand.New(rand.NewSource(9))}
		}

		res := Repair(in, locs, players, generous, opts())
		assert.False(t, res.Covered)
		assert.GreaterOrEqual(t, len(res.Missing), 2)
		assert.Equal(t, 200, res.Iterations)
		assertRostersValid(t, res.Assignment, locs, players, generous)

		again := Repair(in, locs, players, generous, opts())
		assert.Empty(t, cmp.Diff(res, again), "same seed must give the same result")
	})

	t.Run("swaps that break a streak cap are rolled back", func(t *testing.T) {
		// Any cross pair needs someone moved into L2, which puts them on two
		// adjacent locations.
		locs := []string{"L1", "L2", "L3"}
		in := Assignment{"L1": {"A", "B"}, "L2": {"C", "D"}, "L3": {"A", "B"}}
		rules := Rules{RequiredPlayers: 2, MaxGames: 2, MaxConsecutiveGames: 1}

		res := Repair(in, locs, allAvailable(names, len(locs)), rules, RepairOptions{MaxIterations: 50})
		assert.False(t, res.Covered)
		assert.Zero(t, res.Swaps)
		assert.Equal(t, 50, res.Iterations)
		assert.Len(t, res.Missing, 4)
		assert.Empty(t, cmp.Diff(in, res.Assignment))
	})

	t.Run("availability limits the candidates", func(t *testing.T) {
		locs := []string{"L1", "L2", "L3", "L4", "L5", "L6"}
		in := Assignment{
			"L1": {"A", "B"}, "L2": {"C", "D"}, "L3": {"A", "C"},
			"L4": {"B", "D"}, "L5": {"A", "B"}, "L6": {"C", "D"},
		}
		players := allAvailable(names, len(locs))
		// Nobody may join a roster they are not already on.
		for _, p := range players {
			for li, loc := range locs {
				p.Available[li] = in.Plays(loc, p.Name)
			}
		}

		res := Repair(in, locs, players, generous, RepairOptions{MaxIterations: 20})
		assert.Zero(t, res.Swaps)
		assert.Empty(t, cmp.Diff(in, res.Assignment))
	})

	t.Run("a swap never puts a player on a roster twice", func(t *testing.T) {
		locs := []string{"L1", "L2", "L3"}
		in := Assignment{"L1": {"A", "B"}, "L2": {"A", "B"}, "L3": {"A", "C"}}
		players := allAvailable([]string{"A", "B", "C"}, len(locs))

		res := Repair(in, locs, players, generous, RepairOptions{MaxIterations: 100})
		assertRostersValid(t, res.Assignment, locs, players, generous)
		assert.Equal(t, []Pair{NewPair("B", "C")}, res.Missing)
	})
}

// assertRostersValid checks roster size, distinct members, availability and
// both fatigue caps.
func assertRostersValid(t *testing.T, a Assignment, locations []string, players []Player, rules Rules) {
	t.Helper()
	require.Len(t, a, len(locations))
	avail := make(map[string][]bool, len(players))
	for _, p := range players {
		avail[p.Name] = p.Available
	}
	for li, loc := range locations {
		roster := a[loc]
		assert.Len(t, roster, rules.RequiredPlayers, loc)
		seen := make(map[string]bool)
		for _, p := range roster {
			assert.False(t, seen[p], "%s is on %s twice", p, loc)
			seen[p] = true
			assert.True(t, avail[p][li], "%s is not available at %s", p, loc)
		}
	}
	for name, l := range Loads(a, locations) {
		assert.LessOrEqual(t, l.Matches, rules.MaxGames, name)
		assert.LessOrEqual(t, l.LongestStreak, rules.MaxConsecutiveGames, name)
	}
}
