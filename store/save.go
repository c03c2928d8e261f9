package store

import (
	"context"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/snowcodeer/perplexitree/models"
	"gorm.io/gorm"
)

// SaveSession writes a whole snapshot as a brand-new Session inside one
// transaction and returns its id. Client-local indexes in the snapshot are
// translated to server ids as rows are created, so segments must be listed
// parents first. Nothing is written if any step fails.
func (s *Store) SaveSession(ctx context.Context, snap models.Snapshot) (uint, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return 0, err
	}

	publicID, err := gonanoid.New()
	if err != nil {
		return 0, fmt.Errorf("generate public id: %w", err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return 0, fmt.Errorf("begin transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	session, err := writeSnapshot(tx, publicID, snap)
	if err != nil {
		tx.Rollback()
		s.log.Warn("SaveSession: rolled back", "query", snap.Query, "error", err)
		return 0, err
	}

	if err := tx.Commit().Error; err != nil {
		return 0, fmt.Errorf("commit session: %w", err)
	}

	s.log.Info("SaveSession: saved",
		"session_id", session.ID,
		"public_id", session.PublicID,
		"segments", len(snap.Segments),
		"study_cards", len(snap.StudyCards),
	)
	return session.ID, nil
}

func writeSnapshot(tx *gorm.DB, publicID string, snap models.Snapshot) (*models.Session, error) {
	session := models.Session{
		PublicID:      publicID,
		OriginalQuery: snap.Query,
		CameraOffsetX: snap.Camera.X,
		CameraOffsetY: snap.Camera.Y,
	}
	if err := tx.Create(&session).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	contentIDs := make([]uint, 0, len(snap.ContentItems))
	for i, item := range snap.ContentItems {
		row := item.Row(session.ID)
		if err := tx.Create(&row).Error; err != nil {
			return nil, fmt.Errorf("create content item %d: %w", i, err)
		}
		contentIDs = append(contentIDs, row.ID)
	}

	segmentIDs := make([]uint, 0, len(snap.Segments))
	for i, seg := range snap.Segments {
		row := segmentRow(session.ID, seg)

		switch {
		case seg.Content != nil:
			embedded := seg.Content.Row(session.ID)
			if err := tx.Create(&embedded).Error; err != nil {
				return nil, fmt.Errorf("create content for segment %d: %w", i, err)
			}
			row.ContentItemID = &embedded.ID
		default:
			row.ContentItemID = lookup(contentIDs, seg.ContentIndex)
		}

		if seg.ParentIndex != nil {
			p := *seg.ParentIndex
			if p < 0 || p >= i {
				return nil, fmt.Errorf("%w: segment %d has parent_index %d, parents must be listed before their children",
					ErrInvalidInput, i, p)
			}
			row.ParentID = lookup(segmentIDs, seg.ParentIndex)
		}

		if err := tx.Create(&row).Error; err != nil {
			return nil, fmt.Errorf("create segment %d: %w", i, err)
		}
		segmentIDs = append(segmentIDs, row.ID)
	}

	kinds := []struct {
		kind string
		list []models.DecorationState
	}{
		{models.KindLeaf, snap.Decorations.Leaves},
		{models.KindFruit, snap.Decorations.Fruits},
		{models.KindFlower, snap.Decorations.Flowers},
	}
	for _, k := range kinds {
		for i, d := range k.list {
			row := models.Decoration{
				SessionID: session.ID,
				SegmentID: lookup(segmentIDs, d.SegmentIndex),
				Kind:      k.kind,
				X:         d.X,
				Y:         d.Y,
				Size:      models.Float(d.Size, models.DefaultDecorationSize),
				Type:      d.Type,
			}
			if err := tx.Create(&row).Error; err != nil {
				return nil, fmt.Errorf("create %s %d: %w", k.kind, i, err)
			}
		}
	}

	for i, card := range snap.StudyCards {
		segmentID := lookup(segmentIDs, card.SegmentIndex)
		if segmentID == nil && card.SegmentID != nil {
			id := *card.SegmentID
			segmentID = &id
		}
		row := card.Row(session.ID, segmentID)
		if err := tx.Create(&row).Error; err != nil {
			return nil, fmt.Errorf("create study card %d: %w", i, err)
		}
	}

	return &session, nil
}

func segmentRow(sessionID uint, seg models.SegmentState) models.Segment {
	return models.Segment{
		SessionID:   sessionID,
		StartX:      seg.Start.X,
		StartY:      seg.Start.Y,
		EndX:        seg.End.X,
		EndY:        seg.End.Y,
		Length:      seg.Length,
		MaxLength:   seg.MaxLength,
		Angle:       seg.Angle,
		Thickness:   seg.Thickness,
		Generation:  seg.Generation,
		IsGrowing:   seg.IsGrowing,
		GrowthSpeed: models.Float(seg.GrowthSpeed, models.DefaultGrowthSpeed),
		NodeType:    seg.NodeType,
	}
}

// lookup maps an optional client-local index to the server id assigned at
// that position. Absent or out-of-range indexes resolve to nil.
func lookup(ids []uint, index *int) *uint {
	if index == nil || *index < 0 || *index >= len(ids) {
		return nil
	}
	id := ids[*index]
	return &id
}
