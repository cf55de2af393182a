package schedule

// Load is how often a player appears across a whole schedule and their
// longest run of back-to-back locations.
type Load struct {
	Matches       int
	LongestStreak int
}

// Loads scans the locations in order and returns each rostered player's load.
func Loads(a Assignment, locations []string) map[string]Load {
	loads := make(map[string]Load)
	streak := make(map[string]int)
	for _, loc := range locations {
		onRoster := make(map[string]bool, len(a[loc]))
		for _, p := range a[loc] {
			onRoster[p] = true
			l := loads[p]
			l.Matches++
			streak[p]++
			if streak[p] > l.LongestStreak {
				l.LongestStreak = streak[p]
			}
			loads[p] = l
		}
		for p := range streak {
			if !onRoster[p] {
				streak[p] = 0
			}
		}
	}
	return loads
}

// PlayerSummary is the per-player totals shown under a schedule.
type PlayerSummary struct {
	Name          string
	Home          int
	Away          int
	Total         int
	LongestStreak int
}

// Summarize returns one summary per player, in the order given.
func Summarize(a Assignment, locations []string, players []string, homePrefix string) []PlayerSummary {
	loads := Loads(a, locations)
	byName := make(map[string]*PlayerSummary, len(players))
	out := make([]PlayerSummary, len(players))
	for i, name := range players {
		out[i] = PlayerSummary{Name: name, LongestStreak: loads[name].LongestStreak}
		byName[name] = &out[i]
	}
	for _, loc := range locations {
		home := IsHome(loc, homePrefix)
		for _, p := range a[loc] {
			s, ok := byName[p]
			if !ok {
				continue
			}
			if home {
				s.Home++
			} else {
				s.Away++
			}
			s.Total++
		}
	}
	return out
}
