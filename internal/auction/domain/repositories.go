package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AuctionRepository persists auctions. Write methods take the transaction the
// caller opened; GetForUpdate must lock the auction row for the lifetime of
// that transaction so concurrent bids serialize (see PlaceBidUseCase).
type AuctionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Auction, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*Auction, error)
	Create(ctx context.Context, tx pgx.Tx, a *Auction) error
	UpdatePrice(ctx context.Context, tx pgx.Tx, id uuid.UUID, newPrice float64) error
	MarkEnded(ctx context.Context, tx pgx.Tx, id uuid.UUID, finalPrice float64, winnerID *uuid.UUID) error
	MarkCancelled(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListActive(ctx context.Context, now time.Time) ([]*Auction, error)
	ListDue(ctx context.Context, now time.Time) ([]uuid.UUID, error)
}

// BidRepository is the append-only bid ledger. Inserts join the auction-row
// transaction; reads go straight to the pool.
type BidRepository interface {
	Insert(ctx context.Context, tx pgx.Tx, bid *Bid) error
	ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]*Bid, error)
	GetLeading(ctx context.Context, auctionID uuid.UUID) (*Bid, error)
	GetUserHighest(ctx context.Context, auctionID, userID uuid.UUID) (*Bid, error)
}
