package usermovie

import (
	"time"

	"github.com/google/uuid"
)

// UserMovie links a user to a movie in their personal list.
type UserMovie struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	MovieID   uuid.UUID
	CreatedAt time.Time
}
