package store

import (
	"context"
	"fmt"

	"github.com/snowcodeer/perplexitree/models"
	"gorm.io/gorm"
)

// ListSessions returns a summary of every saved Session, most recently
// updated first.
func (s *Store) ListSessions(ctx context.Context) ([]models.SessionSummary, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var sessions []models.Session
	if err := db.Order("updated_at desc").Order("id desc").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	out := make([]models.SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, session.Summary())
	}
	return out, nil
}

// DeleteSession removes a Session and every row it owns in one transaction.
func (s *Store) DeleteSession(ctx context.Context, id uint) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := tx.Select("id").First(&session, id).Error; err != nil {
			return notFound(err, "session", id)
		}

		// Children go first so the result does not depend on the driver
		// enforcing ON DELETE CASCADE.
		owned := []interface{}{
			&models.StudyCard{},
			&models.Decoration{},
			&models.Segment{},
			&models.ContentItem{},
		}
		for _, model := range owned {
			if err := tx.Where("session_id = ?", id).Delete(model).Error; err != nil {
				return fmt.Errorf("delete %T for session %d: %w", model, id, err)
			}
		}
		if err := tx.Delete(&models.Session{}, id).Error; err != nil {
			return fmt.Errorf("delete session %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("DeleteSession: deleted", "session_id", id)
	return nil
}
