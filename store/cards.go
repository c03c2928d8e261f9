package store

import (
	"context"
	"fmt"
	"time"

	"github.com/snowcodeer/perplexitree/models"
	"gorm.io/gorm"
)

// SegmentContent returns the ContentItem attached to a persisted Segment.
func (s *Store) SegmentContent(ctx context.Context, segmentID uint) (models.ContentItemState, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return models.ContentItemState{}, err
	}

	var seg models.Segment
	if err := db.Preload("ContentItem").First(&seg, segmentID).Error; err != nil {
		return models.ContentItemState{}, notFound(err, "segment", segmentID)
	}
	if seg.ContentItem == nil {
		return models.ContentItemState{}, fmt.Errorf("%w: segment %d has no content", ErrInvalidInput, segmentID)
	}
	return seg.ContentItem.State(), nil
}

// AppendCards persists generated cards on a Segment, in the Segment's Session,
// and returns them with their new ids.
func (s *Store) AppendCards(ctx context.Context, segmentID uint, cards []models.StudyCardState) ([]models.StudyCardState, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.StudyCardState, 0, len(cards))
	err = db.Transaction(func(tx *gorm.DB) error {
		var seg models.Segment
		if err := tx.Select("id", "session_id").First(&seg, segmentID).Error; err != nil {
			return notFound(err, "segment", segmentID)
		}

		for i, card := range cards {
			row := card.Row(seg.SessionID, &seg.ID)
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("create study card %d: %w", i, err)
			}
			out = append(out, row.State(nil))
		}

		return tx.Model(&models.Session{}).
			Where("id = ?", seg.SessionID).
			UpdateColumn("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("AppendCards: saved", "segment_id", segmentID, "count", len(out))
	return out, nil
}

// ReviewCard records one review of a StudyCard.
func (s *Store) ReviewCard(ctx context.Context, cardID uint) (models.StudyCardState, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return models.StudyCardState{}, err
	}

	var card models.StudyCard
	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.StudyCard{}).
			Where("id = ?", cardID).
			UpdateColumns(map[string]interface{}{
				"review_count":  gorm.Expr("review_count + ?", 1),
				"last_reviewed": time.Now(),
			})
		if res.Error != nil {
			return fmt.Errorf("review study card %d: %w", cardID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("study card %d: %w", cardID, ErrNotFound)
		}
		if err := tx.First(&card, cardID).Error; err != nil {
			return notFound(err, "study card", cardID)
		}
		return nil
	})
	if err != nil {
		return models.StudyCardState{}, err
	}
	return card.State(nil), nil
}
