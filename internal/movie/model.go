package movie

import (
	"time"

	"github.com/google/uuid"
)

// Movie represents a row in the movies table.
type Movie struct {
	ID            uuid.UUID
	Title         string
	Year          int
	Cover         string
	Description   string
	Duration      int
	ContentRating string
	Source        string
	Tags          []string
	CreatedAt     time.Time
}
