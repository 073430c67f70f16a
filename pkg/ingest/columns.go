package ingest

import "strings"

// Third-party statistics tables name the same quantity dozens of ways.
// Rather than duck-typing column names at runtime, every synonym is
// declared here against the canonical field it feeds.

// CanonicalField identifies one field of a TeamGoalStats snapshot
type CanonicalField string

const (
	FieldTeam          CanonicalField = "team"
	FieldGoalsScored   CanonicalField = "goalsScored"
	FieldGoalsConceded CanonicalField = "goalsConceded"
	FieldTotalGoals    CanonicalField = "totalGoals"
	FieldCleanSheetPct CanonicalField = "cleanSheetPct"
	FieldNoGoalsPct    CanonicalField = "noGoalsPct"
	FieldOver25Pct     CanonicalField = "over25Pct"
	FieldXG            CanonicalField = "xg"
	FieldXGAgainst     CanonicalField = "xgAgainst"
)

// columnSynonyms maps normalized header names to canonical fields.
// Extend here when a new provider spells a column differently.
var columnSynonyms = map[string]CanonicalField{
	"team":      FieldTeam,
	"squad":     FieldTeam,
	"club":      FieldTeam,
	"equipe":    FieldTeam,
	"team_name": FieldTeam,

	"gf":              FieldGoalsScored,
	"goals":           FieldGoalsScored,
	"goals_for":       FieldGoalsScored,
	"goals_scored":    FieldGoalsScored,
	"avg_scored":      FieldGoalsScored,
	"scored_per_game": FieldGoalsScored,

	"ga":                FieldGoalsConceded,
	"goals_against":     FieldGoalsConceded,
	"goals_conceded":    FieldGoalsConceded,
	"avg_conceded":      FieldGoalsConceded,
	"conceded_per_game": FieldGoalsConceded,

	"total_goals":     FieldTotalGoals,
	"goals_per_game":  FieldTotalGoals,
	"avg_total_goals": FieldTotalGoals,
	"gpg":             FieldTotalGoals,

	"cs":              FieldCleanSheetPct,
	"clean_sheets":    FieldCleanSheetPct,
	"clean_sheet_pct": FieldCleanSheetPct,
	"cs_pct":          FieldCleanSheetPct,

	"fts":             FieldNoGoalsPct,
	"failed_to_score": FieldNoGoalsPct,
	"no_goals":        FieldNoGoalsPct,
	"no_goals_pct":    FieldNoGoalsPct,
	"blank_pct":       FieldNoGoalsPct,

	"over_25":     FieldOver25Pct,
	"over_2_5":    FieldOver25Pct,
	"over25":      FieldOver25Pct,
	"over_25_pct": FieldOver25Pct,
	"o25":         FieldOver25Pct,

	"xg":             FieldXG,
	"expected_goals": FieldXG,
	"xg_per_game":    FieldXG,

	"xga":                    FieldXGAgainst,
	"xg_against":             FieldXGAgainst,
	"expected_goals_against": FieldXGAgainst,
}

// NormalizeHeader reduces a raw column header to the lookup form:
// lower case, separators collapsed to underscores, punctuation dropped
func NormalizeHeader(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	h = strings.NewReplacer(" ", "_", "-", "_", ".", "", "%", "", "/", "_").Replace(h)
	for strings.Contains(h, "__") {
		h = strings.ReplaceAll(h, "__", "_")
	}
	return strings.Trim(h, "_")
}

// ResolveColumn maps a raw header to its canonical field, if any
func ResolveColumn(header string) (CanonicalField, bool) {
	field, ok := columnSynonyms[NormalizeHeader(header)]
	return field, ok
}
