package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/goalscanpro/goalscan/pkg/goalscan"
)

// Default retention for saved analyses. Pre-match probabilities go
// stale once lineups and odds move, so a completed analysis is only
// worth keeping for about a week.
const DefaultAnalysisTTL = 7 * 24 * time.Hour

// InitSchema creates all tables
func InitSchema() error {
	if err := CreateTable(&SavedAnalysis{}); err != nil {
		return fmt.Errorf("failed to create analysis table: %w", err)
	}
	if err := CreateTable(&BankrollEntry{}); err != nil {
		return fmt.Errorf("failed to create bankroll table: %w", err)
	}
	return nil
}

// SavedAnalysis is a completed fixture analysis kept for later review.
// The full result is stored as a JSON payload alongside the headline
// columns used for listing.
type SavedAnalysis struct {
	ID          string  `column:"id" dbtype:"TEXT" primary:"true"`
	HomeTeam    string  `column:"home_team" dbtype:"TEXT"`
	AwayTeam    string  `column:"away_team" dbtype:"TEXT"`
	Probability float64 `column:"probability" dbtype:"REAL"`
	Confidence  float64 `column:"confidence" dbtype:"REAL"`
	Risk        string  `column:"risk" dbtype:"TEXT"`
	Verdict     string  `column:"verdict" dbtype:"TEXT"`
	Payload     string  `column:"payload" dbtype:"TEXT"`
	CreatedAt   int64   `column:"created_at" dbtype:"INTEGER"`
	ExpiresAt   int64   `column:"expires_at" dbtype:"INTEGER" index:"true"`

	Result *goalscan.AnalysisResult `persist:"false"`
}

// NewSavedAnalysis builds a storable record from an analysis result
func NewSavedAnalysis(id, homeTeam, awayTeam string, result *goalscan.AnalysisResult, ttl time.Duration) *SavedAnalysis {
	if ttl <= 0 {
		ttl = DefaultAnalysisTTL
	}
	now := time.Now()
	probability := 0.0
	if result.Combined != nil {
		probability = result.Combined.Probability
	}
	return &SavedAnalysis{
		ID:          id,
		HomeTeam:    homeTeam,
		AwayTeam:    awayTeam,
		Probability: probability,
		Confidence:  result.Confidence,
		Risk:        string(result.Risk),
		Verdict:     result.Verdict,
		CreatedAt:   now.Unix(),
		ExpiresAt:   now.Add(ttl).Unix(),
		Result:      result,
	}
}

func (a *SavedAnalysis) TableName() string { return "analysis" }

func (a *SavedAnalysis) PrimaryKey() map[string]any {
	return map[string]any{"id": a.ID}
}

func (a *SavedAnalysis) BeforeSave() error {
	if a.ID == "" {
		return fmt.Errorf("analysis id must not be empty")
	}
	if a.Result != nil {
		payload, err := json.Marshal(a.Result)
		if err != nil {
			return fmt.Errorf("failed to encode analysis payload: %w", err)
		}
		a.Payload = string(payload)
	}
	return nil
}

// LoadAnalysis retrieves a saved analysis by id, decoding its payload.
// Expired records are reported as not found.
func LoadAnalysis(id string) (*SavedAnalysis, error) {
	record := &SavedAnalysis{ID: id}
	if err := Load(record); err != nil {
		return nil, err
	}
	if record.ExpiresAt > 0 && record.ExpiresAt <= time.Now().Unix() {
		return nil, fmt.Errorf("analysis %s has expired", id)
	}
	if record.Payload != "" {
		record.Result = &goalscan.AnalysisResult{}
		if err := json.Unmarshal([]byte(record.Payload), record.Result); err != nil {
			return nil, fmt.Errorf("failed to decode analysis payload: %w", err)
		}
	}
	return record, nil
}

// PurgeExpired deletes all analyses past their expiry
func PurgeExpired() (int64, error) {
	return DeleteWhere(&SavedAnalysis{}, "expires_at > 0 AND expires_at <= ?", time.Now().Unix())
}

// BankrollEntry records one settled or open stake against an analysis
type BankrollEntry struct {
	ID         string  `column:"id" dbtype:"TEXT" primary:"true"`
	AnalysisID string  `column:"analysis_id" dbtype:"TEXT" index:"true"`
	Selection  string  `column:"selection" dbtype:"TEXT"`
	Stake      float64 `column:"stake" dbtype:"REAL"`
	Odd        float64 `column:"odd" dbtype:"REAL"`
	Outcome    string  `column:"outcome" dbtype:"TEXT"`
	PlacedAt   int64   `column:"placed_at" dbtype:"INTEGER"`
	SettledAt  int64   `column:"settled_at" dbtype:"INTEGER"`
}

// Bankroll outcomes
const (
	OutcomeOpen = "open"
	OutcomeWon  = "won"
	OutcomeLost = "lost"
	OutcomeVoid = "void"
)

func (b *BankrollEntry) TableName() string { return "bankroll" }

func (b *BankrollEntry) PrimaryKey() map[string]any {
	return map[string]any{"id": b.ID}
}

func (b *BankrollEntry) BeforeSave() error {
	if b.ID == "" {
		return fmt.Errorf("bankroll entry id must not be empty")
	}
	if b.Stake < 0 {
		return fmt.Errorf("stake must not be negative")
	}
	if b.Outcome == "" {
		b.Outcome = OutcomeOpen
	}
	if b.PlacedAt == 0 {
		b.PlacedAt = time.Now().Unix()
	}
	return nil
}

// Settle marks the entry with its result and saves it
func (b *BankrollEntry) Settle(outcome string) error {
	switch outcome {
	case OutcomeWon, OutcomeLost, OutcomeVoid:
	default:
		return fmt.Errorf("invalid outcome %q", outcome)
	}
	b.Outcome = outcome
	b.SettledAt = time.Now().Unix()
	return Save(b)
}

// Profit returns the net result of the entry. Open and void entries
// are flat; a win returns stake times (odd - 1).
func (b *BankrollEntry) Profit() float64 {
	switch b.Outcome {
	case OutcomeWon:
		return b.Stake * (b.Odd - 1)
	case OutcomeLost:
		return -b.Stake
	default:
		return 0
	}
}

// BankrollBalance sums profit over all settled entries
func BankrollBalance() (float64, error) {
	rows, err := FindWhere(&BankrollEntry{}, "outcome IN (?, ?)", OutcomeWon, OutcomeLost)
	if err != nil {
		return 0, err
	}
	var balance float64
	for _, row := range rows {
		balance += row.(*BankrollEntry).Profit()
	}
	return balance, nil
}
