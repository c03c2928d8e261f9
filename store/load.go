package store

import (
	"context"
	"fmt"

	"github.com/snowcodeer/perplexitree/models"
	"gorm.io/gorm"
)

// LoadSession rebuilds the nested snapshot of a saved Session. The result
// carries server ids alongside positional indexes and is itself a valid
// SaveSession input.
func (s *Store) LoadSession(ctx context.Context, id uint) (*models.Snapshot, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var snap *models.Snapshot
	err = db.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := tx.First(&session, id).Error; err != nil {
			return notFound(err, "session", id)
		}

		var (
			items       []models.ContentItem
			segments    []models.Segment
			decorations []models.Decoration
			cards       []models.StudyCard
		)
		if err := tx.Where("session_id = ?", id).Order("id").Find(&items).Error; err != nil {
			return fmt.Errorf("fetch content items: %w", err)
		}
		if err := tx.Preload("ContentItem").Where("session_id = ?", id).Order("id").Find(&segments).Error; err != nil {
			return fmt.Errorf("fetch segments: %w", err)
		}
		if err := tx.Where("session_id = ?", id).Order("id").Find(&decorations).Error; err != nil {
			return fmt.Errorf("fetch decorations: %w", err)
		}
		if err := tx.Where("session_id = ?", id).Order("id").Find(&cards).Error; err != nil {
			return fmt.Errorf("fetch study cards: %w", err)
		}

		snap = assemble(session, items, segments, decorations, cards)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func assemble(
	session models.Session,
	items []models.ContentItem,
	segments []models.Segment,
	decorations []models.Decoration,
	cards []models.StudyCard,
) *models.Snapshot {
	created, updated := session.CreatedAt, session.UpdatedAt
	snap := &models.Snapshot{
		SessionID:    session.ID,
		PublicID:     session.PublicID,
		Query:        session.OriginalQuery,
		Camera:       models.Point{X: session.CameraOffsetX, Y: session.CameraOffsetY},
		CreatedAt:    &created,
		UpdatedAt:    &updated,
		ContentItems: []models.ContentItemState{},
		Segments:     make([]models.SegmentState, 0, len(segments)),
		Decorations: models.DecorationSet{
			Leaves:  []models.DecorationState{},
			Fruits:  []models.DecorationState{},
			Flowers: []models.DecorationState{},
		},
		StudyCards: make([]models.StudyCardState, 0, len(cards)),
	}

	position := make(map[uint]int, len(segments))
	for i, seg := range segments {
		position[seg.ID] = i
	}
	indexOf := func(id *uint) *int {
		if id == nil {
			return nil
		}
		if i, ok := position[*id]; ok {
			return &i
		}
		return nil
	}

	embedded := make(map[uint]bool)
	for _, seg := range segments {
		state := segmentState(seg)
		state.ParentIndex = indexOf(seg.ParentID)
		if seg.ContentItem != nil {
			content := seg.ContentItem.State()
			state.Content = &content
			embedded[seg.ContentItem.ID] = true
		}
		snap.Segments = append(snap.Segments, state)
	}

	for _, item := range items {
		if embedded[item.ID] {
			continue
		}
		snap.ContentItems = append(snap.ContentItems, item.State())
	}

	for _, d := range decorations {
		state := d.State(indexOf(d.SegmentID))
		switch d.Kind {
		case models.KindLeaf:
			snap.Decorations.Leaves = append(snap.Decorations.Leaves, state)
		case models.KindFruit:
			snap.Decorations.Fruits = append(snap.Decorations.Fruits, state)
		case models.KindFlower:
			snap.Decorations.Flowers = append(snap.Decorations.Flowers, state)
		}
	}

	for _, c := range cards {
		snap.StudyCards = append(snap.StudyCards, c.State(indexOf(c.SegmentID)))
	}
	return snap
}

func segmentState(seg models.Segment) models.SegmentState {
	growthSpeed := seg.GrowthSpeed
	return models.SegmentState{
		ID:          seg.ID,
		Start:       models.Point{X: seg.StartX, Y: seg.StartY},
		End:         models.Point{X: seg.EndX, Y: seg.EndY},
		Length:      seg.Length,
		MaxLength:   seg.MaxLength,
		Angle:       seg.Angle,
		Thickness:   seg.Thickness,
		Generation:  seg.Generation,
		IsGrowing:   seg.IsGrowing,
		GrowthSpeed: &growthSpeed,
		NodeType:    seg.NodeType,
		ParentID:    seg.ParentID,
	}
}
