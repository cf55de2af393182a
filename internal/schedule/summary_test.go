package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoads(t *testing.T) {
	locs := []string{"UIT1", "THUIS1", "UIT2", "THUIS2", "UIT3"}
	a := Assignment{
		"UIT1":   {"A", "B"},
		"THUIS1": {"A", "C"},
		"UIT2":   {"A", "B"},
		"THUIS2": {"B", "C"},
		"UIT3":   {"B", "C"},
	}

	loads := Loads(a, locs)
	assert.Equal(t, Load{Matches: 3, LongestStreak: 3}, loads["A"])
	assert.Equal(t, Load{Matches: 4, LongestStreak: 3}, loads["B"])
	assert.Equal(t, Load{Matches: 3, LongestStreak: 2}, loads["C"])
	assert.NotContains(t, loads, "D")
}

func TestSummarize(t *testing.T) {
	locs := []string{"UIT1", "THUIS1", "UIT2", "THUIS2"}
	a := Assignment{
		"UIT1":   {"A", "B"},
		"THUIS1": {"A", "C"},
		"UIT2":   {"B", "C"},
		"THUIS2": {"A", "B"},
	}

	t.Run("default prefix", func(t *testing.T) {
		got := Summarize(a, locs, []string{"C", "A", "B", "D"}, "")
		assert.Equal(t, []PlayerSummary{
			{Name: "C", Home: 1, Away: 1, Total: 2, LongestStreak: 2},
			{Name: "A", Home: 2, Away: 1, Total: 3, LongestStreak: 2},
			{Name: "B", Home: 1, Away: 2, Total: 3, LongestStreak: 2},
			{Name: "D"},
		}, got)
	})

	t.Run("totals add up to the roster slots", func(t *testing.T) {
		total := 0
		for _, s := range Summarize(a, locs, []string{"A", "B", "C"}, "") {
			assert.Equal(t, s.Home+s.Away, s.Total, s.Name)
			total += s.Total
		}
		assert.Equal(t, 8, total)
	})

	t.Run("custom prefix", func(t *testing.T) {
		got := Summarize(a, locs, []string{"A"}, "UIT")
		assert.Equal(t, PlayerSummary{Name: "A", Home: 1, Away: 2, Total: 3, LongestStreak: 2}, got[0])
	})
}
