package store

import (
	"context"
	"testing"

	"github.com/snowcodeer/perplexitree/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveEcologyScenario(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	trunk := segment(models.NodeTrunk, nil)
	trunk.Content = &models.ContentItemState{
		Title:       "Biomes",
		URL:         "https://example.com/ecology-biomes",
		Snippet:     "Large communities of plants and animals",
		LLMContent:  "**Biomes**\n\nLarge communities of plants and animals",
		SearchQuery: "ecology biomes",
	}
	branch := segment(models.NodeBranch, intPtr(0))

	snap := models.Snapshot{
		Query:    "ecology",
		Segments: []models.SegmentState{trunk, branch},
		Decorations: models.DecorationSet{
			Leaves: []models.DecorationState{{X: 410, Y: 520, Size: floatPtr(1.2), SegmentIndex: intPtr(1)}},
		},
		Camera: models.Point{X: -20, Y: 35},
	}

	id, err := s.SaveSession(ctx, snap)
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := s.LoadSession(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, id, got.SessionID)
	assert.Equal(t, "ecology", got.Query)
	assert.NotEmpty(t, got.PublicID)
	assert.Equal(t, models.Point{X: -20, Y: 35}, got.Camera)

	require.Len(t, got.Segments, 2)
	first, second := got.Segments[0], got.Segments[1]
	assert.Nil(t, first.ParentID)
	require.NotNil(t, second.ParentID)
	assert.Equal(t, first.ID, *second.ParentID)
	require.NotNil(t, second.ParentIndex)
	assert.Equal(t, 0, *second.ParentIndex)

	require.NotNil(t, first.Content)
	assert.NotZero(t, first.Content.ID)
	assert.Equal(t, "Biomes", first.Content.Title)
	assert.Equal(t, "ecology biomes", first.Content.SearchQuery)
	assert.Nil(t, second.Content)
	assert.Empty(t, got.ContentItems)

	require.Len(t, got.Decorations.Leaves, 1)
	leaf := got.Decorations.Leaves[0]
	require.NotNil(t, leaf.SegmentID)
	assert.Equal(t, second.ID, *leaf.SegmentID)
	assert.Equal(t, 1, *leaf.SegmentIndex)
	assert.Empty(t, got.Decorations.Fruits)
	assert.Empty(t, got.Decorations.Flowers)

	rows := countRows(t, s, id)
	assert.EqualValues(t, 1, rows["content_items"])
	assert.EqualValues(t, 2, rows["segments"])
	assert.EqualValues(t, 1, rows["decorations"])
}

func TestSaveResolvesContentIndex(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	withIndex := segment(models.NodeTrunk, nil)
	withIndex.ContentIndex = intPtr(1)
	outOfRange := segment(models.NodeBranch, intPtr(0))
	outOfRange.ContentIndex = intPtr(7)

	id, err := s.SaveSession(ctx, models.Snapshot{
		Query: "volcanoes",
		ContentItems: []models.ContentItemState{
			{Title: "Magma"},
			{Title: "Plate tectonics", Snippet: "Plates move"},
		},
		Segments: []models.SegmentState{withIndex, outOfRange},
	})
	require.NoError(t, err)

	got, err := s.LoadSession(ctx, id)
	require.NoError(t, err)

	require.NotNil(t, got.Segments[0].Content)
	assert.Equal(t, "Plate tectonics", got.Segments[0].Content.Title)
	assert.Nil(t, got.Segments[1].Content)

	require.Len(t, got.ContentItems, 1)
	assert.Equal(t, "Magma", got.ContentItems[0].Title)
}

func TestSaveIsAtomicOnInvalidParentIndex(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	cases := map[string]*int{
		"beyond input":   intPtr(5),
		"self reference": intPtr(1),
		"negative":       intPtr(-1),
	}
	for name, parent := range cases {
		t.Run(name, func(t *testing.T) {
			snap := models.Snapshot{
				Query:        "ecology",
				ContentItems: []models.ContentItemState{{Title: "Biomes"}},
				Segments: []models.SegmentState{
					segment(models.NodeTrunk, nil),
					segment(models.NodeBranch, parent),
				},
				Decorations: models.DecorationSet{
					Flowers: []models.DecorationState{{X: 1, Y: 2, Size: floatPtr(1), Type: "🌸", SegmentIndex: intPtr(0)}},
				},
				StudyCards: []models.StudyCardState{{Front: "Q", Back: "A", Difficulty: models.DifficultyEasy}},
			}

			id, err := s.SaveSession(ctx, snap)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, id)
			assert.Zero(t, totalRows(t, s))
		})
	}
}

func TestSaveRollsBackOnMissingSegmentID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.SaveSession(ctx, models.Snapshot{
		Query:    "ecology",
		Segments: []models.SegmentState{segment(models.NodeTrunk, nil)},
		StudyCards: []models.StudyCardState{
			{Front: "Q", Back: "A", Difficulty: models.DifficultyHard, SegmentID: uintPtr(9999)},
		},
	})
	require.Error(t, err)
	assert.Zero(t, totalRows(t, s))
}

func TestSaveCardAttachment(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first, err := s.SaveSession(ctx, models.Snapshot{
		Query:    "rivers",
		Segments: []models.SegmentState{segment(models.NodeTrunk, nil)},
	})
	require.NoError(t, err)
	existing, err := s.LoadSession(ctx, first)
	require.NoError(t, err)
	existingSegment := existing.Segments[0].ID

	id, err := s.SaveSession(ctx, models.Snapshot{
		Query: "rivers",
		Segments: []models.SegmentState{
			segment(models.NodeTrunk, nil),
			segment(models.NodeBranch, intPtr(0)),
		},
		StudyCards: []models.StudyCardState{
			{Front: "by index", Back: "A", Difficulty: models.DifficultyEasy, SegmentIndex: intPtr(1), SegmentID: uintPtr(existingSegment)},
			{Front: "by id", Back: "A", Difficulty: models.DifficultyMedium, SegmentIndex: intPtr(9), SegmentID: uintPtr(existingSegment)},
			{Front: "anchored", Back: "A", Difficulty: models.DifficultyHard, Anchor: &models.Point{X: 12, Y: 34}},
		},
	})
	require.NoError(t, err)

	got, err := s.LoadSession(ctx, id)
	require.NoError(t, err)
	require.Len(t, got.StudyCards, 3)

	byIndex, byID, anchored := got.StudyCards[0], got.StudyCards[1], got.StudyCards[2]

	require.NotNil(t, byIndex.SegmentID)
	assert.Equal(t, got.Segments[1].ID, *byIndex.SegmentID)
	assert.Equal(t, 1, *byIndex.SegmentIndex)
	assert.Nil(t, byIndex.Anchor)

	require.NotNil(t, byID.SegmentID)
	assert.Equal(t, existingSegment, *byID.SegmentID)
	assert.Nil(t, byID.SegmentIndex)

	assert.Nil(t, anchored.SegmentID)
	require.NotNil(t, anchored.Anchor)
	assert.Equal(t, models.Point{X: 12, Y: 34}, *anchored.Anchor)
	assert.Equal(t, models.DifficultyHard, anchored.Difficulty)
	assert.Zero(t, anchored.ReviewCount)
	assert.Nil(t, anchored.LastReviewed)
	assert.NotNil(t, anchored.CreatedAt)
}

func TestSaveMintsNewSessionEveryTime(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	snap := models.Snapshot{Query: "ecology"}

	a, err := s.SaveSession(ctx, snap)
	require.NoError(t, err)
	b, err := s.SaveSession(ctx, snap)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	sa, err := s.LoadSession(ctx, a)
	require.NoError(t, err)
	sb, err := s.LoadSession(ctx, b)
	require.NoError(t, err)
	assert.NotEqual(t, sa.PublicID, sb.PublicID)
}
