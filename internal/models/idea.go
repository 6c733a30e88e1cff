// internal/models/idea.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Idea is the fixed schema the model's reply is decoded into. Every field is
// required; nothing is default-filled.
type Idea struct {
	Concept          string   `json:"concept"`
	Platform         string   `json:"platform"`
	TargetAudience   string   `json:"target_audience"`
	KeyFeatures      []string `json:"key_features"`
	Monetization     string   `json:"monetization"`
	ValueProposition string   `json:"value_proposition"`
}

// IdeaRecord is a generated Idea as handed to a host: stamped with an id,
// the generation time and the category it was requested for.
type IdeaRecord struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Category  string    `json:"category"`
	Idea
}

func NewIdeaRecord(category string, idea Idea) IdeaRecord {
	return IdeaRecord{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
		Category:  category,
		Idea:      idea,
	}
}
