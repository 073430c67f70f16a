package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goalscanpro/goalscan/internal/logger"
	"github.com/goalscanpro/goalscan/pkg/goalscan"
)

// Tabular ingestion: CSV exports and JSON arrays from statistics
// providers are decoded into TeamGoalStats snapshots keyed by team
// name. Unknown columns are skipped, unparseable cells are left at
// zero; the engine treats zero as absent and lowers confidence, so a
// ragged import degrades the analysis instead of failing it.

// ParseCSV decodes a statistics table from CSV. The first row must be
// a header containing a recognizable team column.
func ParseCSV(r io.Reader) (map[string]*goalscan.TeamGoalStats, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	columns := make(map[int]CanonicalField)
	teamCol := -1
	for i, name := range header {
		field, ok := ResolveColumn(name)
		if !ok {
			logger.Debug("Skipping unrecognized column", name)
			continue
		}
		if field == FieldTeam {
			teamCol = i
			continue
		}
		columns[i] = field
	}
	if teamCol < 0 {
		return nil, fmt.Errorf("no team column found in header: %v", header)
	}

	stats := make(map[string]*goalscan.TeamGoalStats)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		if teamCol >= len(record) {
			continue
		}
		team := strings.TrimSpace(record[teamCol])
		if team == "" {
			continue
		}

		s := &goalscan.TeamGoalStats{}
		for i, field := range columns {
			if i >= len(record) {
				continue
			}
			applyField(s, field, record[i])
		}
		stats[team] = s
	}
	return stats, nil
}

// ParseJSON decodes an array of free-form objects, resolving each key
// through the same synonym table as CSV headers
func ParseJSON(data []byte) (map[string]*goalscan.TeamGoalStats, error) {
	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode statistics json: %w", err)
	}

	stats := make(map[string]*goalscan.TeamGoalStats)
	for _, row := range rows {
		var team string
		s := &goalscan.TeamGoalStats{}
		for key, value := range row {
			field, ok := ResolveColumn(key)
			if !ok {
				continue
			}
			if field == FieldTeam {
				team, _ = value.(string)
				continue
			}
			applyField(s, field, fmt.Sprintf("%v", value))
		}
		if team != "" {
			stats[team] = s
		}
	}
	return stats, nil
}

// applyField writes one parsed cell onto a snapshot
func applyField(s *goalscan.TeamGoalStats, field CanonicalField, raw string) {
	v, ok := parseCell(raw)
	if !ok {
		return
	}
	switch field {
	case FieldGoalsScored:
		s.AvgGoalsScored = v
	case FieldGoalsConceded:
		s.AvgGoalsConceded = v
	case FieldTotalGoals:
		s.AvgTotalGoals = v
	case FieldCleanSheetPct:
		s.CleanSheetPct = v
	case FieldNoGoalsPct:
		s.NoGoalsPct = v
	case FieldOver25Pct:
		s.Over25Pct = v
	case FieldXG:
		s.AvgXG = v
	case FieldXGAgainst:
		s.AvgXGAgainst = v
	}
}

// parseCell parses a numeric cell, tolerating percent signs, comma
// decimal separators and surrounding whitespace
func parseCell(raw string) (float64, bool) {
	cell := strings.TrimSpace(raw)
	cell = strings.TrimSuffix(cell, "%")
	cell = strings.ReplaceAll(cell, ",", ".")
	if cell == "" || cell == "-" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
