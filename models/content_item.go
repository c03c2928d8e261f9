package models

import "time"

// ContentItem is a piece of reference text found for a query.
type ContentItem struct {
	ID          uint     `gorm:"primaryKey"`
	SessionID   uint     `gorm:"not null;index"`
	Session     *Session `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Title       string   `gorm:"not null"`
	URL         string
	Snippet     string `gorm:"type:text"`
	LLMContent  string `gorm:"type:text"`
	SearchQuery string
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (c ContentItem) State() ContentItemState {
	created := c.CreatedAt
	return ContentItemState{
		ID:          c.ID,
		Title:       c.Title,
		URL:         c.URL,
		Snippet:     c.Snippet,
		LLMContent:  c.LLMContent,
		SearchQuery: c.SearchQuery,
		CreatedAt:   &created,
	}
}

func (s ContentItemState) Row(sessionID uint) ContentItem {
	return ContentItem{
		SessionID:   sessionID,
		Title:       s.Title,
		URL:         s.URL,
		Snippet:     s.Snippet,
		LLMContent:  s.LLMContent,
		SearchQuery: s.SearchQuery,
	}
}
