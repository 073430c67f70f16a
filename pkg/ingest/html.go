package ingest

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/goalscanpro/goalscan/internal/logger"
	"github.com/goalscanpro/goalscan/pkg/goalscan"
)

// ExtractStatsTable scrapes the first HTML table whose headers resolve
// to a team column plus at least two statistic columns. Provider pages
// usually carry several tables (fixtures, form, standings); header
// recognition picks the right one without site-specific selectors.
func ExtractStatsTable(html string) (map[string]*goalscan.TeamGoalStats, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	var stats map[string]*goalscan.TeamGoalStats
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		columns, teamCol := resolveTableHeader(table)
		if teamCol < 0 || len(columns) < 2 {
			return true
		}
		stats = readTableRows(table, columns, teamCol)
		return false
	})
	if stats == nil {
		return nil, fmt.Errorf("no recognizable statistics table in document")
	}
	logger.Debug("Extracted statistics table", fmt.Sprintf("%d teams", len(stats)))
	return stats, nil
}

// resolveTableHeader maps a table's header cells through the synonym
// table, returning the statistic columns and the team column index
func resolveTableHeader(table *goquery.Selection) (map[int]CanonicalField, int) {
	columns := make(map[int]CanonicalField)
	teamCol := -1
	header := table.Find("thead th")
	if header.Length() == 0 {
		header = table.Find("tr").First().Find("th, td")
	}
	header.Each(func(i int, cell *goquery.Selection) {
		field, ok := ResolveColumn(cell.Text())
		if !ok {
			return
		}
		if field == FieldTeam {
			teamCol = i
			return
		}
		columns[i] = field
	})
	return columns, teamCol
}

// readTableRows decodes the body rows of a recognized table
func readTableRows(table *goquery.Selection, columns map[int]CanonicalField, teamCol int) map[string]*goalscan.TeamGoalStats {
	stats := make(map[string]*goalscan.TeamGoalStats)
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("th, td")
		if teamCol >= cells.Length() {
			return
		}
		team := strings.TrimSpace(cells.Eq(teamCol).Text())
		if team == "" {
			return
		}
		// tables without a thead repeat the header as the first body row
		if field, ok := ResolveColumn(team); ok && field == FieldTeam {
			return
		}
		s := &goalscan.TeamGoalStats{}
		for i, field := range columns {
			if i >= cells.Length() {
				continue
			}
			applyField(s, field, cells.Eq(i).Text())
		}
		stats[team] = s
	})
	return stats
}
