package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalscanpro/goalscan/pkg/goalscan"
)

func openTestStore(t *testing.T) {
	t.Helper()
	require.NoError(t, Open(":memory:"))
	require.NoError(t, InitSchema())
	t.Cleanup(func() { require.NoError(t, Close()) })
}

func sampleResult() *goalscan.AnalysisResult {
	return &goalscan.AnalysisResult{
		Combined:   &goalscan.CombinedResult{Probability: 74.5},
		Confidence: 62.0,
		Risk:       goalscan.RiskModerate,
		Verdict:    "Favorable",
	}
}

func TestSaveAndLoadAnalysis(t *testing.T) {
	openTestStore(t)

	record := NewSavedAnalysis("arsenal-chelsea-20260830", "Arsenal", "Chelsea", sampleResult(), 0)
	require.NoError(t, Save(record))

	loaded, err := LoadAnalysis("arsenal-chelsea-20260830")
	require.NoError(t, err)
	assert.Equal(t, "Arsenal", loaded.HomeTeam)
	assert.InDelta(t, 74.5, loaded.Probability, 1e-9)
	require.NotNil(t, loaded.Result)
	require.NotNil(t, loaded.Result.Combined)
	assert.InDelta(t, 74.5, loaded.Result.Combined.Probability, 1e-9)
	assert.Equal(t, goalscan.RiskModerate, loaded.Result.Risk)
	assert.Greater(t, loaded.ExpiresAt, loaded.CreatedAt)
}

func TestSaveUpdatesExistingAnalysis(t *testing.T) {
	openTestStore(t)

	record := NewSavedAnalysis("fixture-1", "Lyon", "Nice", sampleResult(), time.Hour)
	require.NoError(t, Save(record))

	record.Probability = 80.0
	record.Result.Combined.Probability = 80.0
	require.NoError(t, Save(record))

	rows, err := FindWhere(&SavedAnalysis{}, "home_team = ?", "Lyon")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.InDelta(t, 80.0, rows[0].(*SavedAnalysis).Probability, 1e-9)
}

func TestSaveRejectsEmptyID(t *testing.T) {
	openTestStore(t)
	err := Save(&SavedAnalysis{})
	assert.Error(t, err)
}

func TestLoadAnalysisNotFound(t *testing.T) {
	openTestStore(t)
	_, err := LoadAnalysis("missing")
	assert.Error(t, err)
}

func TestExpiredAnalysis(t *testing.T) {
	openTestStore(t)

	record := NewSavedAnalysis("stale", "Porto", "Braga", sampleResult(), time.Hour)
	record.ExpiresAt = time.Now().Add(-time.Minute).Unix()
	require.NoError(t, Save(record))

	_, err := LoadAnalysis("stale")
	assert.Error(t, err)

	fresh := NewSavedAnalysis("fresh", "Porto", "Braga", sampleResult(), time.Hour)
	require.NoError(t, Save(fresh))

	purged, err := PurgeExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = LoadAnalysis("fresh")
	assert.NoError(t, err)
}

func TestBankroll(t *testing.T) {
	openTestStore(t)

	won := &BankrollEntry{ID: "b1", AnalysisID: "fixture-1", Selection: "over_1.5", Stake: 10, Odd: 1.8}
	require.NoError(t, Save(won))
	require.NoError(t, won.Settle(OutcomeWon))

	lost := &BankrollEntry{ID: "b2", AnalysisID: "fixture-2", Selection: "over_2.5", Stake: 5, Odd: 2.1}
	require.NoError(t, Save(lost))
	require.NoError(t, lost.Settle(OutcomeLost))

	open := &BankrollEntry{ID: "b3", AnalysisID: "fixture-3", Selection: "under_3.5", Stake: 20, Odd: 1.6}
	require.NoError(t, Save(open))

	assert.InDelta(t, 8.0, won.Profit(), 1e-9)
	assert.InDelta(t, -5.0, lost.Profit(), 1e-9)
	assert.Zero(t, open.Profit())

	balance, err := BankrollBalance()
	require.NoError(t, err)
	assert.InDelta(t, 3.0, balance, 1e-9)

	assert.Error(t, won.Settle("draw"))
	assert.Error(t, Save(&BankrollEntry{ID: "b4", Stake: -1}))
}

func TestDeleteEntity(t *testing.T) {
	openTestStore(t)

	record := NewSavedAnalysis("gone", "Ajax", "PSV", sampleResult(), time.Hour)
	require.NoError(t, Save(record))
	require.NoError(t, Delete(record))

	exists, err := Exists(record)
	require.NoError(t, err)
	assert.False(t, exists)
}
