package models

import "time"

// DefaultDecorationSize applies when a saved decoration omits size.
const DefaultDecorationSize = 1.0

const (
	KindLeaf   = "leaf"
	KindFruit  = "fruit"
	KindFlower = "flower"
)

// Decoration is a leaf, fruit or flower drawn at a position, optionally hanging
// off a Segment. Type is only meaningful for fruits and flowers.
type Decoration struct {
	ID        uint      `gorm:"primaryKey"`
	SessionID uint      `gorm:"not null;index"`
	Session   *Session  `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	SegmentID *uint     `gorm:"index"`
	Segment   *Segment  `gorm:"foreignKey:SegmentID;constraint:OnDelete:SET NULL;" json:"-"`
	Kind      string    `gorm:"size:10;not null;index"`
	X         float64   `gorm:"not null"`
	Y         float64   `gorm:"not null"`
	Size      float64   `gorm:"not null"`
	Type      string    `gorm:"size:50"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (d Decoration) State(segmentIndex *int) DecorationState {
	size := d.Size
	return DecorationState{
		ID:           d.ID,
		X:            d.X,
		Y:            d.Y,
		Size:         &size,
		Type:         d.Type,
		SegmentID:    d.SegmentID,
		SegmentIndex: segmentIndex,
	}
}
