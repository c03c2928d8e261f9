package models

import "time"

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// StudyCard is a question/answer flashcard. It is anchored to a Segment, or to
// a free position when SegmentID is nil.
type StudyCard struct {
	ID           uint     `gorm:"primaryKey"`
	SessionID    uint     `gorm:"not null;index"`
	Session      *Session `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	SegmentID    *uint    `gorm:"index"`
	Segment      *Segment `gorm:"foreignKey:SegmentID;constraint:OnDelete:SET NULL;" json:"-"`
	Front        string   `gorm:"type:text;not null"`
	Back         string   `gorm:"type:text;not null"`
	Difficulty   string   `gorm:"size:10;default:medium"`
	Category     string   `gorm:"size:100"`
	AnchorX      *float64
	AnchorY      *float64
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	LastReviewed *time.Time `gorm:"default:null"`
	ReviewCount  int        `gorm:"default:0"`
}

// State converts the row to its wire form. The anchor is only reported for
// cards that no Segment owns.
func (c StudyCard) State(segmentIndex *int) StudyCardState {
	created := c.CreatedAt
	out := StudyCardState{
		ID:           c.ID,
		Front:        c.Front,
		Back:         c.Back,
		Difficulty:   c.Difficulty,
		Category:     c.Category,
		SegmentID:    c.SegmentID,
		SegmentIndex: segmentIndex,
		CreatedAt:    &created,
		LastReviewed: c.LastReviewed,
		ReviewCount:  c.ReviewCount,
	}
	if c.SegmentID == nil && c.AnchorX != nil && c.AnchorY != nil {
		out.Anchor = &Point{X: *c.AnchorX, Y: *c.AnchorY}
	}
	return out
}

// Row converts the wire form back to a row. Review history is carried over so
// re-saving a loaded session keeps it.
func (s StudyCardState) Row(sessionID uint, segmentID *uint) StudyCard {
	card := StudyCard{
		SessionID:    sessionID,
		SegmentID:    segmentID,
		Front:        s.Front,
		Back:         s.Back,
		Difficulty:   s.Difficulty,
		Category:     s.Category,
		LastReviewed: s.LastReviewed,
		ReviewCount:  s.ReviewCount,
	}
	if s.Anchor != nil {
		x, y := s.Anchor.X, s.Anchor.Y
		card.AnchorX = &x
		card.AnchorY = &y
	}
	return card
}
