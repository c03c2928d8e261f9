package store

import (
	"context"
	"testing"

	"github.com/snowcodeer/perplexitree/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSessionsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	empty, err := s.ListSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	older, err := s.SaveSession(ctx, models.Snapshot{
		Query:    "oceans",
		Segments: []models.SegmentState{segment(models.NodeTrunk, nil)},
	})
	require.NoError(t, err)
	newer, err := s.SaveSession(ctx, models.Snapshot{Query: "deserts"})
	require.NoError(t, err)

	list, err := s.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer, list[0].ID)
	assert.Equal(t, "deserts", list[0].Query)
	assert.NotEmpty(t, list[0].PublicID)
	assert.Equal(t, older, list[1].ID)

	// Appending cards touches the owning session.
	loaded, err := s.LoadSession(ctx, older)
	require.NoError(t, err)
	_, err = s.AppendCards(ctx, loaded.Segments[0].ID, []models.StudyCardState{
		{Front: "Deepest trench?", Back: "Mariana", Difficulty: models.DifficultyEasy},
	})
	require.NoError(t, err)

	list, err = s.ListSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, older, list[0].ID)
}

func TestDeleteSessionRemovesEveryOwnedRow(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	keep, err := s.SaveSession(ctx, roundTripInput())
	require.NoError(t, err)
	doomed, err := s.SaveSession(ctx, roundTripInput())
	require.NoError(t, err)

	for table, n := range countRows(t, s, doomed) {
		require.NotZero(t, n, table)
	}

	require.NoError(t, s.DeleteSession(ctx, doomed))

	for table, n := range countRows(t, s, doomed) {
		assert.Zero(t, n, table)
	}
	for table, n := range countRows(t, s, keep) {
		assert.NotZero(t, n, table)
	}

	_, err = s.LoadSession(ctx, keep)
	require.NoError(t, err)
}

func TestDeleteThenLoadReportsNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	id, err := s.SaveSession(ctx, roundTripInput())
	require.NoError(t, err)

	require.NoError(t, s.DeleteSession(ctx, id))

	_, err = s.LoadSession(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeleteSession(ctx, id), ErrNotFound)
}

func TestSessionForeignKeysCascade(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	id, err := s.SaveSession(ctx, roundTripInput())
	require.NoError(t, err)

	// Bypass DeleteSession so only the schema's ON DELETE rules apply.
	require.NoError(t, s.db.Delete(&models.Session{}, id).Error)

	for table, n := range countRows(t, s, id) {
		assert.Zero(t, n, table)
	}
}
