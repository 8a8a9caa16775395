package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is one user's rating of a bootcamp
type Review struct {
	ID         uuid.UUID `json:"id"`
	BootcampID uuid.UUID `json:"bootcamp"`
	UserID     uuid.UUID `json:"user"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"createdAt"`
}

// OwnerID implements ownership.Ownable
func (r *Review) OwnerID() uuid.UUID {
	return r.UserID
}
