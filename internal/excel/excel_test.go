package excel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/derekprior/lineup/internal/config"
	"github.com/derekprior/lineup/internal/schedule"
)

func testData() (*config.Config, *schedule.Result) {
	cfg := &config.Config{
		GameType:  "duo",
		Locations: []string{"UIT1", "THUIS1"},
		Players: []config.Player{
			{Name: "Anna", Availability: []bool{true, true}},
			{Name: "Bram", Availability: []bool{true, false}},
			{Name: "Cees", Availability: []bool{true, true}},
		},
	}

	a := schedule.Assignment{
		"UIT1":   {"Anna", "Bram"},
		"THUIS1": {"Anna", "Cees"},
	}
	result := &schedule.Result{
		Assignment: a,
		Attempts:   1,
		Missing:    schedule.MissingPairs(a, cfg.PlayerNames()),
		Summaries:  schedule.Summarize(a, cfg.Locations, cfg.PlayerNames(), ""),
	}
	return cfg, result
}

func fillColor(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	id, err := f.GetCellStyle(sheet, cell)
	require.NoError(t, err)
	style, err := f.GetStyle(id)
	require.NoError(t, err)
	if len(style.Fill.Color) == 0 {
		return ""
	}
	return strings.ToUpper(style.Fill.Color[0])
}

func TestGenerateWorkbook(t *testing.T) {
	cfg, result := testData()

	f, err := Generate(cfg, result)
	require.NoError(t, err)

	t.Run("sheets", func(t *testing.T) {
		assert.Equal(t, []string{ScheduleSheet, PlayersSheet, MissingSheet}, f.GetSheetList())
	})

	t.Run("grid headers", func(t *testing.T) {
		rows, err := f.GetRows(ScheduleSheet)
		require.NoError(t, err)
		assert.Equal(t, []string{"Location", "Anna", "Bram", "Cees"}, rows[0])
		assert.Equal(t, "UIT1", rows[1][0])
		assert.Equal(t, "THUIS1", rows[2][0])
	})

	t.Run("rostered players are marked", func(t *testing.T) {
		val, _ := f.GetCellValue(ScheduleSheet, "B2")
		assert.Equal(t, Mark, val)
		val, _ = f.GetCellValue(ScheduleSheet, "D2")
		assert.Empty(t, val)
		val, _ = f.GetCellValue(ScheduleSheet, "D3")
		assert.Equal(t, Mark, val)
	})

	t.Run("cells are colored by availability", func(t *testing.T) {
		assert.Contains(t, fillColor(t, f, ScheduleSheet, "B2"), strings.TrimPrefix(colorScheduled, "#"))
		assert.Contains(t, fillColor(t, f, ScheduleSheet, "D2"), strings.TrimPrefix(colorAvailable, "#"))
		assert.Contains(t, fillColor(t, f, ScheduleSheet, "C3"), strings.TrimPrefix(colorUnavailable, "#"))
	})

	t.Run("totals under the grid", func(t *testing.T) {
		for cell, want := range map[string]string{
			"A5": "Home", "A6": "Away", "A7": "Total",
			"B5": "1", "B6": "1", "B7": "2",
			"C5": "0", "C6": "1", "C7": "1",
		} {
			val, _ := f.GetCellValue(ScheduleSheet, cell)
			assert.Equal(t, want, val, cell)
		}
	})

	t.Run("players sheet", func(t *testing.T) {
		rows, err := f.GetRows(PlayersSheet)
		require.NoError(t, err)
		require.Len(t, rows, 4)
		assert.Equal(t, []string{"Player", "Home", "Away", "Total", "Longest Streak"}, rows[0])
		assert.Equal(t, []string{"Anna", "1", "1", "2", "2"}, rows[1])
	})

	t.Run("missing pairs sheet", func(t *testing.T) {
		rows, err := f.GetRows(MissingSheet)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, []string{"Bram", "Cees"}, rows[1])
	})
}

func TestGenerateFullCoverageNote(t *testing.T) {
	cfg, result := testData()
	result.Missing = nil

	f, err := Generate(cfg, result)
	require.NoError(t, err)
	val, _ := f.GetCellValue(MissingSheet, "A2")
	assert.Equal(t, "Every pair shares a location", val)
}

func TestReadScheduleRoundTrip(t *testing.T) {
	cfg, result := testData()
	f, err := Generate(cfg, result)
	require.NoError(t, err)

	path := t.TempDir() + "/schedule.xlsx"
	require.NoError(t, f.SaveAs(path))

	f2, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f2.Close()

	g, err := ReadSchedule(f2)
	require.NoError(t, err)
	assert.Equal(t, cfg.Locations, g.Locations)
	assert.Equal(t, cfg.PlayerNames(), g.Players)
	assert.Equal(t, result.Assignment, g.Assignment)
	assert.Equal(t, map[string]int{"UIT1": 2, "THUIS1": 3}, g.Rows)
}

func TestUpdatePlayerSheet(t *testing.T) {
	cfg, result := testData()
	f, err := Generate(cfg, result)
	require.NoError(t, err)
	path := t.TempDir() + "/schedule.xlsx"
	require.NoError(t, f.SaveAs(path))

	// Hand edit: Bram takes Cees's place at THUIS1.
	edit, err := excelize.OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, edit.SetCellValue(ScheduleSheet, "D3", ""))
	require.NoError(t, edit.SetCellValue(ScheduleSheet, "C3", Mark))
	require.NoError(t, edit.Save())
	require.NoError(t, edit.Close())

	require.NoError(t, UpdatePlayerSheet(path, cfg))

	updated, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer updated.Close()

	rows, err := updated.GetRows(PlayersSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bram", "1", "1", "2", "2"}, rows[2])
	assert.Equal(t, []string{"Cees", "0", "0", "0", "0"}, rows[3])

	val, _ := updated.GetCellValue(ScheduleSheet, "D7")
	assert.Equal(t, "0", val)
}

func TestColLetter(t *testing.T) {
	for col, want := range map[int]string{1: "A", 26: "Z", 27: "AA", 52: "AZ", 53: "BA"} {
		assert.Equal(t, want, colLetter(col))
	}
	assert.Equal(t, "C7", cellRef(3, 7))
}
