package domain

import (
	"time"

	"github.com/google/uuid"
)

// Bid is one user's offer on an auction at a point in time. Bids are
// append-only: never updated or deleted in normal operation.
type Bid struct {
	ID        uuid.UUID
	AuctionID uuid.UUID
	UserID    uuid.UUID
	Amount    float64
	CreatedAt time.Time
}

// NewBid creates a new Bid instance.
func NewBid(id, auctionID, userID uuid.UUID, amount float64, createdAt time.Time) *Bid {
	return &Bid{
		ID:        id,
		AuctionID: auctionID,
		UserID:    userID,
		Amount:    amount,
		CreatedAt: createdAt,
	}
}
