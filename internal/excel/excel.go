package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/lineup/internal/config"
	"github.com/derekprior/lineup/internal/schedule"
)

const (
	ScheduleSheet = "Schedule"
	PlayersSheet  = "Players"
	MissingSheet  = "Missing Pairs"
)

// Mark is written in a grid cell where the player is rostered.
const Mark = "X"

const (
	colorScheduled   = "#C6EFCE"
	colorAvailable   = "#E2F0D9"
	colorUnavailable = "#FFC7CE"
	colorHeader      = "#4472C4"
)

// Generate creates a workbook with the schedule grid, per-player totals and
// the pairs that never share a location.
func Generate(cfg *config.Config, result *schedule.Result) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetDefaultFont("Arial")

	if err := writeScheduleSheet(f, cfg, result.Assignment); err != nil {
		return nil, fmt.Errorf("writing schedule sheet: %w", err)
	}

	if err := writePlayersSheet(f, result.Summaries); err != nil {
		return nil, fmt.Errorf("writing players sheet: %w", err)
	}

	if err := writeMissingSheet(f, result.Missing); err != nil {
		return nil, fmt.Errorf("writing missing pairs sheet: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

type styles struct {
	header      int
	label       int
	scheduled   int
	available   int
	unavailable int
	total       int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error
	font := &excelize.Font{Size: 14, Family: "Arial"}
	center := &excelize.Alignment{Horizontal: "center"}

	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 14, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{colorHeader}},
		Alignment: center,
	}); err != nil {
		return s, err
	}
	if s.label, err = f.NewStyle(&excelize.Style{Font: font}); err != nil {
		return s, err
	}
	fill := func(color string) (int, error) {
		return f.NewStyle(&excelize.Style{
			Font:      font,
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
			Alignment: center,
		})
	}
	if s.scheduled, err = fill(colorScheduled); err != nil {
		return s, err
	}
	if s.available, err = fill(colorAvailable); err != nil {
		return s, err
	}
	if s.unavailable, err = fill(colorUnavailable); err != nil {
		return s, err
	}
	s.total, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Family: "Arial"},
		Alignment: center,
	})
	return s, err
}

// writeScheduleSheet lays out one row per location and one column per
// player. Totals follow after a blank row so the grid can be read back.
func writeScheduleSheet(f *excelize.File, cfg *config.Config, a schedule.Assignment) error {
	sheet := ScheduleSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	st, err := newStyles(f)
	if err != nil {
		return err
	}

	f.SetCellValue(sheet, cellRef(1, 1), "Location")
	for pi, p := range cfg.Players {
		f.SetCellValue(sheet, cellRef(pi+2, 1), p.Name)
	}
	f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(cfg.Players)+1, 1), st.header)

	for li, loc := range cfg.Locations {
		row := li + 2
		f.SetCellValue(sheet, cellRef(1, row), loc)
		f.SetCellStyle(sheet, cellRef(1, row), cellRef(1, row), st.label)

		for pi, p := range cfg.Players {
			cell := cellRef(pi+2, row)
			style := st.unavailable
			switch {
			case a.Plays(loc, p.Name):
				f.SetCellValue(sheet, cell, Mark)
				style = st.scheduled
			case li < len(p.Availability) && p.Availability[li]:
				style = st.available
			}
			f.SetCellStyle(sheet, cell, cell, style)
		}
	}

	summaries := schedule.Summarize(a, cfg.Locations, cfg.PlayerNames(), cfg.HomePrefix)
	writeTotals(f, sheet, len(cfg.Locations)+3, summaries, st.total)

	f.SetColWidth(sheet, "A", "A", 16)
	if len(cfg.Players) > 0 {
		f.SetColWidth(sheet, colLetter(2), colLetter(len(cfg.Players)+1), 12)
	}
	f.SetPanes(sheet, &excelize.Panes{
		Freeze: true, XSplit: 1, YSplit: 1, TopLeftCell: "B2", ActivePane: "bottomRight",
	})
	return nil
}

func writeTotals(f *excelize.File, sheet string, firstRow int, summaries []schedule.PlayerSummary, style int) {
	labels := []string{"Home", "Away", "Total"}
	for i, label := range labels {
		row := firstRow + i
		f.SetCellValue(sheet, cellRef(1, row), label)
		for pi, s := range summaries {
			values := []int{s.Home, s.Away, s.Total}
			f.SetCellValue(sheet, cellRef(pi+2, row), values[i])
		}
		f.SetCellStyle(sheet, cellRef(1, row), cellRef(len(summaries)+1, row), style)
	}
}

func writePlayersSheet(f *excelize.File, summaries []schedule.PlayerSummary) error {
	sheet := PlayersSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	st, err := newStyles(f)
	if err != nil {
		return err
	}

	headers := []string{"Player", "Home", "Away", "Total", "Longest Streak"}
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), st.header)

	for i, s := range summaries {
		row := i + 2
		f.SetCellValue(sheet, cellRef(1, row), s.Name)
		f.SetCellValue(sheet, cellRef(2, row), s.Home)
		f.SetCellValue(sheet, cellRef(3, row), s.Away)
		f.SetCellValue(sheet, cellRef(4, row), s.Total)
		f.SetCellValue(sheet, cellRef(5, row), s.LongestStreak)
		f.SetCellStyle(sheet, cellRef(1, row), cellRef(len(headers), row), st.label)
	}

	widths := map[string]float64{"A": 20, "B": 10, "C": 10, "D": 10, "E": 18}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}
	return nil
}

func writeMissingSheet(f *excelize.File, missing []schedule.Pair) error {
	sheet := MissingSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	st, err := newStyles(f)
	if err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", "Player")
	f.SetCellValue(sheet, "B1", "Player")
	f.SetCellStyle(sheet, "A1", "B1", st.header)

	if len(missing) == 0 {
		f.SetCellValue(sheet, "A2", "Every pair shares a location")
		return nil
	}
	for i, p := range missing {
		row := i + 2
		f.SetCellValue(sheet, cellRef(1, row), p.A)
		f.SetCellValue(sheet, cellRef(2, row), p.B)
	}
	f.SetColWidth(sheet, "A", "B", 20)
	return nil
}

// Grid is a schedule read back from a workbook, possibly edited by hand.
type Grid struct {
	Locations  []string
	Players    []string
	Assignment schedule.Assignment
	// Rows maps each location to its 1-indexed sheet row.
	Rows map[string]int
}

// ReadSchedule parses the Schedule sheet. Reading stops at the first row
// without a location, which separates the grid from the totals.
func ReadSchedule(f *excelize.File) (*Grid, error) {
	rows, err := f.GetRows(ScheduleSheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ScheduleSheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty", ScheduleSheet)
	}

	g := &Grid{
		Assignment: make(schedule.Assignment),
		Rows:       make(map[string]int),
	}
	header := rows[0]
	for i := 1; i < len(header); i++ {
		g.Players = append(g.Players, header[i])
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || row[0] == "" {
			break
		}
		loc := row[0]
		g.Locations = append(g.Locations, loc)
		g.Rows[loc] = i + 1
		roster := []string{}
		for pi, name := range g.Players {
			col := pi + 1
			if col < len(row) && row[col] != "" {
				roster = append(roster, name)
			}
		}
		g.Assignment[loc] = roster
	}
	return g, nil
}

// UpdatePlayerSheet recomputes the Players sheet and the totals under the
// grid from the Schedule sheet as it is now.
func UpdatePlayerSheet(path string, cfg *config.Config) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	g, err := ReadSchedule(f)
	if err != nil {
		return err
	}
	summaries := schedule.Summarize(g.Assignment, g.Locations, g.Players, cfg.HomePrefix)

	if idx, _ := f.GetSheetIndex(PlayersSheet); idx >= 0 {
		if err := f.DeleteSheet(PlayersSheet); err != nil {
			return fmt.Errorf("removing %s: %w", PlayersSheet, err)
		}
	}
	if err := writePlayersSheet(f, summaries); err != nil {
		return fmt.Errorf("writing players sheet: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return err
	}
	writeTotals(f, ScheduleSheet, len(g.Locations)+3, summaries, st.total)

	return f.Save()
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
