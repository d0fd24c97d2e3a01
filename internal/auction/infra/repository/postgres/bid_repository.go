package postgres

import (
	"context"
	"errors"

	"github.com/Shohjahon777/bid-master-university-sub000/internal/auction/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BidRepository implements domain.BidRepository on Postgres. Bids are only
// ever inserted; the transaction for pairing an insert with the auction price
// update lives in the application layer.
type BidRepository struct {
	pool *pgxpool.Pool
}

func NewBidRepository(pool *pgxpool.Pool) *BidRepository {
	return &BidRepository{pool: pool}
}

func (r *BidRepository) Insert(ctx context.Context, tx pgx.Tx, bid *domain.Bid) error {
	query := `
        INSERT INTO bids (id, auction_id, user_id, amount, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := tx.Exec(ctx, query,
		bid.ID,
		bid.AuctionID,
		bid.UserID,
		bid.Amount,
		bid.CreatedAt,
	)
	return err
}

func (r *BidRepository) ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]*domain.Bid, error) {
	query := `
        SELECT id, auction_id, user_id, amount, created_at
        FROM bids
        WHERE auction_id = $1
        ORDER BY created_at ASC
    `
	rows, err := r.pool.Query(ctx, query, auctionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []*domain.Bid
	for rows.Next() {
		bid := &domain.Bid{}
		err := rows.Scan(
			&bid.ID,
			&bid.AuctionID,
			&bid.UserID,
			&bid.Amount,
			&bid.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		bids = append(bids, bid)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bids, nil
}

// GetLeading returns the highest-amount bid on the auction, or nil when the
// auction has no bids yet.
func (r *BidRepository) GetLeading(ctx context.Context, auctionID uuid.UUID) (*domain.Bid, error) {
	query := `
        SELECT id, auction_id, user_id, amount, created_at
        FROM bids
        WHERE auction_id = $1
        ORDER BY amount DESC, created_at ASC
        LIMIT 1
    `
	return r.scanOne(ctx, query, auctionID)
}

// GetUserHighest returns the user's own top bid on the auction, or nil when
// they have not bid.
func (r *BidRepository) GetUserHighest(ctx context.Context, auctionID, userID uuid.UUID) (*domain.Bid, error) {
	query := `
        SELECT id, auction_id, user_id, amount, created_at
        FROM bids
        WHERE auction_id = $1 AND user_id = $2
        ORDER BY amount DESC
        LIMIT 1
    `
	return r.scanOne(ctx, query, auctionID, userID)
}

func (r *BidRepository) scanOne(ctx context.Context, query string, args ...any) (*domain.Bid, error) {
	bid := &domain.Bid{}
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&bid.ID,
		&bid.AuctionID,
		&bid.UserID,
		&bid.Amount,
		&bid.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return bid, nil
}
