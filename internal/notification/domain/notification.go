package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Type tags a notification for client-side rendering and filtering.
type Type string

const (
	TypeBidPlaced        Type = "BID_PLACED"
	TypeBidOutbid        Type = "BID_OUTBID"
	TypeAuctionWon       Type = "AUCTION_WON"
	TypeAuctionEnded     Type = "AUCTION_ENDED"
	TypeAuctionCancelled Type = "AUCTION_CANCELLED"
	TypeAuctionCreated   Type = "AUCTION_CREATED"
)

// Notification is one entry in a user's inbox.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      Type
	Message   string
	Link      string
	Read      bool
	CreatedAt time.Time
}

// New builds an unread notification for userID.
func New(userID uuid.UUID, t Type, message, link string) *Notification {
	return &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      t,
		Message:   message,
		Link:      link,
		CreatedAt: time.Now().UTC(),
	}
}

// Notifier is the fire-and-forget side-effect port the auction use cases
// call after commit. Implementations must be safe for concurrent use; a
// returned error is for the caller to log, never to propagate.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, t Type, message, link string) error
}

// Store persists notifications for later inbox reads.
type Store interface {
	Save(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
}
