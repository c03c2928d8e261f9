package models

import "time"

// The *State types are the client-facing shape of a saved plant. The same
// types are used for the save request and the load response: on save the
// client-local *Index fields carry the structure, on load the server ids are
// filled in as well so the result can be fed straight back into a save.

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Float returns *v, or def when v is nil.
func Float(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

type ContentItemState struct {
	ID          uint       `json:"id,omitempty"`
	Title       string     `json:"title" validate:"required,max=500"`
	URL         string     `json:"url"`
	Snippet     string     `json:"snippet"`
	LLMContent  string     `json:"llm_content"`
	SearchQuery string     `json:"search_query"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// Body is the text a card generator should read for this item.
func (s ContentItemState) Body() string {
	if s.LLMContent != "" {
		return s.LLMContent
	}
	return s.Snippet
}

type SegmentState struct {
	ID          uint     `json:"id,omitempty"`
	Start       Point    `json:"start"`
	End         Point    `json:"end"`
	Length      float64  `json:"length"`
	MaxLength   float64  `json:"max_length"`
	Angle       float64  `json:"angle"`
	Thickness   float64  `json:"thickness"`
	Generation  int      `json:"generation" validate:"min=0"`
	IsGrowing   bool     `json:"is_growing"`
	GrowthSpeed *float64 `json:"growth_speed,omitempty"`
	NodeType    string   `json:"node_type" validate:"omitempty,oneof=trunk branch end_node"`

	// Content wins over ContentIndex when both are set.
	Content      *ContentItemState `json:"content,omitempty"`
	ContentIndex *int              `json:"content_index,omitempty"`

	// ParentIndex must name an earlier position in the same segment list.
	ParentIndex *int  `json:"parent_index,omitempty"`
	ParentID    *uint `json:"parent_id,omitempty"`
}

type DecorationState struct {
	ID           uint     `json:"id,omitempty"`
	X            float64  `json:"x"`
	Y            float64  `json:"y"`
	Size         *float64 `json:"size,omitempty"`
	Type         string   `json:"type,omitempty"`
	SegmentIndex *int     `json:"segment_index,omitempty"`
	SegmentID    *uint    `json:"segment_id,omitempty"`
}

type DecorationSet struct {
	Leaves  []DecorationState `json:"leaves"`
	Fruits  []DecorationState `json:"fruits"`
	Flowers []DecorationState `json:"flowers"`
}

type StudyCardState struct {
	ID         uint   `json:"id,omitempty"`
	Front      string `json:"front" validate:"required"`
	Back       string `json:"back" validate:"required"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Category   string `json:"category"`

	// SegmentIndex is resolved against the request's segment list and takes
	// precedence over SegmentID, which must name an already persisted Segment.
	SegmentIndex *int   `json:"segment_index,omitempty"`
	SegmentID    *uint  `json:"segment_id,omitempty"`
	Anchor       *Point `json:"anchor,omitempty"`

	CreatedAt    *time.Time `json:"created_at,omitempty"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
	ReviewCount  int        `json:"review_count" validate:"min=0"`
}

type Snapshot struct {
	SessionID uint   `json:"session_id,omitempty"`
	PublicID  string `json:"public_id,omitempty"`
	Query     string `json:"query" validate:"max=500"`

	ContentItems []ContentItemState `json:"content_items" validate:"dive"`
	Segments     []SegmentState     `json:"segments" validate:"dive"`
	Decorations  DecorationSet      `json:"decorations"`
	StudyCards   []StudyCardState   `json:"study_cards" validate:"dive"`
	Camera       Point              `json:"camera"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// SessionSummary is the directory listing entry for a Session.
type SessionSummary struct {
	ID        uint      `json:"id"`
	PublicID  string    `json:"public_id"`
	Query     string    `json:"query"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s Session) Summary() SessionSummary {
	return SessionSummary{
		ID:        s.ID,
		PublicID:  s.PublicID,
		Query:     s.OriginalQuery,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
