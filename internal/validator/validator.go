package validator

import (
	"fmt"
	"slices"

	"github.com/elliotchance/pie/v2"
	"github.com/xuri/excelize/v2"

	"github.com/derekprior/lineup/internal/config"
	"github.com/derekprior/lineup/internal/excel"
	"github.com/derekprior/lineup/internal/schedule"
)

// Violation represents a constraint violation found during validation.
type Violation struct {
	Row     int    // sheet row of the location, 0 when not tied to one
	Type    string // "error" or "warning"
	Message string
}

// Validate reads a schedule workbook, possibly edited by hand, and checks it
// against the config.
func Validate(cfg *config.Config, path string) ([]Violation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	g, err := excel.ReadSchedule(f)
	if err != nil {
		return nil, fmt.Errorf("reading schedule: %w", err)
	}

	rules, err := cfg.ScheduleRules()
	if err != nil {
		return nil, err
	}

	var violations []Violation

	// Hard constraints
	violations = append(violations, checkLocations(cfg, g)...)
	violations = append(violations, checkPlayers(cfg, g)...)
	violations = append(violations, checkRosterSize(rules, g)...)
	violations = append(violations, checkAvailability(cfg, g)...)
	violations = append(violations, checkLoads(cfg, rules, g)...)

	// Soft constraints
	violations = append(violations, checkHomeRatio(rules, g)...)
	violations = append(violations, checkMissingPairs(cfg, g)...)

	return violations, nil
}

func checkLocations(cfg *config.Config, g *excel.Grid) []Violation {
	var violations []Violation
	for _, loc := range g.Locations {
		if !pie.Contains(cfg.Locations, loc) {
			violations = append(violations, Violation{
				Row:     g.Rows[loc],
				Type:    "error",
				Message: fmt.Sprintf("unknown location %s", loc),
			})
		}
	}
	for _, loc := range cfg.Locations {
		if _, ok := g.Rows[loc]; !ok {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("location %s is missing from the schedule", loc),
			})
		}
	}
	return violations
}

func checkPlayers(cfg *config.Config, g *excel.Grid) []Violation {
	names := cfg.PlayerNames()
	var violations []Violation
	for _, p := range g.Players {
		if !pie.Contains(names, p) {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("unknown player %s", p),
			})
		}
	}
	return violations
}

func checkRosterSize(rules schedule.Rules, g *excel.Grid) []Violation {
	var violations []Violation
	for _, loc := range g.Locations {
		if n := len(g.Assignment[loc]); n != rules.RequiredPlayers {
			violations = append(violations, Violation{
				Row:     g.Rows[loc],
				Type:    "error",
				Message: fmt.Sprintf("%s has %d players (need %d)", loc, n, rules.RequiredPlayers),
			})
		}
	}
	return violations
}

func checkAvailability(cfg *config.Config, g *excel.Grid) []Violation {
	available := make(map[string][]bool, len(cfg.Players))
	for _, p := range cfg.Players {
		available[p.Name] = p.Availability
	}

	var violations []Violation
	for _, loc := range g.Locations {
		li := slices.Index(cfg.Locations, loc)
		if li < 0 {
			continue
		}
		for _, p := range g.Assignment[loc] {
			av, ok := available[p]
			if !ok || (li < len(av) && av[li]) {
				continue
			}
			violations = append(violations, Violation{
				Row:     g.Rows[loc],
				Type:    "error",
				Message: fmt.Sprintf("%s is not available at %s", p, loc),
			})
		}
	}
	return violations
}

func checkLoads(cfg *config.Config, rules schedule.Rules, g *excel.Grid) []Violation {
	loads := schedule.Loads(g.Assignment, g.Locations)
	var violations []Violation
	for _, p := range cfg.PlayerNames() {
		l := loads[p]
		if l.Matches > rules.MaxGames {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("%s plays %d games (max %d)", p, l.Matches, rules.MaxGames),
			})
		}
		if l.LongestStreak > rules.MaxConsecutiveGames {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("%s plays %d games in a row (max %d)", p, l.LongestStreak, rules.MaxConsecutiveGames),
			})
		}
	}
	return violations
}

func checkHomeRatio(rules schedule.Rules, g *excel.Grid) []Violation {
	if !rules.BalanceHomeAway || len(g.Locations) == 0 {
		return nil
	}
	home := 0
	for _, loc := range g.Locations {
		if schedule.IsHome(loc, rules.HomePrefix) {
			home++
		}
	}
	if home*2 >= len(g.Locations) {
		return nil
	}
	return []Violation{{
		Type:    "warning",
		Message: fmt.Sprintf("only %d of %d locations are home locations", home, len(g.Locations)),
	}}
}

func checkMissingPairs(cfg *config.Config, g *excel.Grid) []Violation {
	var violations []Violation
	for _, p := range schedule.MissingPairs(g.Assignment, cfg.PlayerNames()) {
		violations = append(violations, Violation{
			Type:    "warning",
			Message: fmt.Sprintf("%s never share a location", p),
		})
	}
	return violations
}
