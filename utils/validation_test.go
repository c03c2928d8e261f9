package utils

import (
	"strings"
	"testing"

	"github.com/snowcodeer/perplexitree/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStructReportsJSONPaths(t *testing.T) {
	snap := models.Snapshot{
		Query:    strings.Repeat("a", 501),
		Segments: []models.SegmentState{{NodeType: "root"}},
		StudyCards: []models.StudyCardState{
			{Front: "Q", Back: "A", Difficulty: "impossible", ReviewCount: -1},
		},
	}

	err := ValidateStruct(snap)
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "query must be at most 500")
	assert.Contains(t, err.Error(), "segments[0].node_type must be one of: trunk branch end_node")
	assert.Contains(t, err.Error(), "study_cards[0].difficulty must be one of: easy medium hard")
	assert.Contains(t, err.Error(), "study_cards[0].review_count must be at least 0")
}

func TestValidateStructAcceptsMinimalSnapshot(t *testing.T) {
	assert.NoError(t, ValidateStruct(models.Snapshot{Query: "ecology"}))
}

func TestValidateStructAllowsEmptyQuery(t *testing.T) {
	assert.NoError(t, ValidateStruct(models.Snapshot{}))
}
