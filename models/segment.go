package models

import "time"

// DefaultGrowthSpeed applies when a saved segment omits growth_speed.
const DefaultGrowthSpeed = 1.0

const (
	NodeTrunk   = "trunk"
	NodeBranch  = "branch"
	NodeEndNode = "end_node"
)

// Segment is one branch of the plant. ParentID points at another Segment of
// the same Session; the root has none.
type Segment struct {
	ID            uint         `gorm:"primaryKey"`
	SessionID     uint         `gorm:"not null;index"`
	Session       *Session     `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ContentItemID *uint        `gorm:"index"`
	ContentItem   *ContentItem `gorm:"foreignKey:ContentItemID;constraint:OnDelete:SET NULL;" json:"-"`
	ParentID      *uint        `gorm:"index"`
	Parent        *Segment     `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE;" json:"-"`

	StartX    float64 `gorm:"not null"`
	StartY    float64 `gorm:"not null"`
	EndX      float64 `gorm:"not null"`
	EndY      float64 `gorm:"not null"`
	Length    float64 `gorm:"not null"`
	MaxLength float64 `gorm:"not null"`
	Angle     float64 `gorm:"not null"`
	Thickness float64 `gorm:"not null"`

	Generation  int     `gorm:"default:0"`
	IsGrowing   bool    `gorm:"default:false"`
	GrowthSpeed float64 `gorm:"not null"`
	NodeType    string  `gorm:"size:20;default:branch"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
