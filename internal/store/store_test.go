package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		t.Run(tt.pragma, func(t *testing.T) {
			var got string
			require.NoError(t, db.QueryRow("PRAGMA "+tt.pragma).Scan(&got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='llm_request_events'",
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "llm_request_events", name)
}

func TestReopenKeepsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "openai", Model: "gpt-4o-mini", Purpose: "quiz-gen", Success: true,
	}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, int64(1), events[0].Sequence)
}

func TestSequencer(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var got []int64
	for range 3 {
		require.NoError(t, s.seq.withNext(ctx, func(_ *sql.Tx, seq int64) error {
			got = append(got, seq)
			return nil
		}))
	}
	assert.Equal(t, []int64{1, 2, 3}, got)

	// A failed callback rolls the increment back.
	boom := errors.New("boom")
	err := s.seq.withNext(ctx, func(_ *sql.Tx, seq int64) error {
		assert.Equal(t, int64(4), seq)
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, s.seq.withNext(ctx, func(_ *sql.Tx, seq int64) error {
		assert.Equal(t, int64(4), seq)
		return nil
	}))
}

func TestAppendAndQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}
	t.Cleanup(func() { now = time.Now })

	inputs := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "quiz-gen", InputTokens: 120, OutputTokens: 300, LatencyMs: 900, Success: true, RequestBody: "[system]\nhi", ResponseBody: "[]"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "quiz-gen", Success: false, ErrorMessage: "rate limited"},
		{Provider: "mock", Model: "mock", Purpose: "smoke", InputTokens: 1, OutputTokens: 2, Success: true},
	}
	for _, in := range inputs {
		require.NoError(t, repo.AppendLLMRequest(ctx, in))
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "smoke", events[0].Purpose, "newest first")
	assert.Equal(t, base.Add(3*time.Minute), events[0].Timestamp)

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Purpose: "quiz-gen"})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "rate limited", limited[0].ErrorMessage)
	assert.False(t, limited[0].Success)

	ranged, err := repo.QueryLLMEvents(ctx, QueryOpts{From: base.Add(2 * time.Minute)})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	first, err := repo.GetLLMEvent(ctx, events[2].ID)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "[system]\nhi", first.RequestBody)
	assert.Equal(t, "[]", first.ResponseBody)
	assert.Equal(t, int64(900), first.LatencyMs)

	missing, err := repo.GetLLMEvent(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLLMUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, in := range []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "quiz-gen", InputTokens: 100, OutputTokens: 200, LatencyMs: 1000, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "quiz-gen", InputTokens: 50, OutputTokens: 100, LatencyMs: 500, Success: true},
		{Provider: "openai", Model: "gpt-4o", Purpose: "smoke", InputTokens: 10, OutputTokens: 20, LatencyMs: 100, Success: true},
	} {
		require.NoError(t, repo.AppendLLMRequest(ctx, in))
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, LLMUsage{Purpose: "quiz-gen", Calls: 2, InputTokens: 150, OutputTokens: 300, AvgLatencyMs: 750}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "gpt-4o-mini", byModel[0].Model)
	assert.Equal(t, 2, byModel[0].Calls)
}

func TestNopEventRepo(t *testing.T) {
	var repo EventRepo = NopEventRepo{}
	assert.NoError(t, repo.AppendLLMRequest(context.Background(), LLMRequestEventData{}))
}
