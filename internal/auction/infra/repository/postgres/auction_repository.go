package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Shohjahon777/bid-master-university-sub000/internal/auction/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const auctionColumns = `id, seller_id, title, description, category, condition,
        starting_price, current_price, buy_now_price, start_time, end_time,
        status, winner_id, created_at, updated_at`

// AuctionRepository implements domain.AuctionRepository on Postgres.
type AuctionRepository struct {
	pool *pgxpool.Pool
}

func NewAuctionRepository(pool *pgxpool.Pool) *AuctionRepository {
	return &AuctionRepository{pool: pool}
}

func scanAuction(row pgx.Row) (*domain.Auction, error) {
	a := &domain.Auction{}
	err := row.Scan(
		&a.ID,
		&a.SellerID,
		&a.Title,
		&a.Description,
		&a.Category,
		&a.Condition,
		&a.StartingPrice,
		&a.CurrentPrice,
		&a.BuyNowPrice,
		&a.StartTime,
		&a.EndTime,
		&a.Status,
		&a.WinnerID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAuctionNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AuctionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE id = $1`
	return scanAuction(r.pool.QueryRow(ctx, query, id))
}

// GetForUpdate loads the auction row with a FOR UPDATE lock held until the
// caller's transaction ends. Every price/status write goes through this lock,
// so concurrent bids and buy-nows serialize on the row and re-validate
// against the committed state.
func (r *AuctionRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE id = $1 FOR UPDATE`
	return scanAuction(tx.QueryRow(ctx, query, id))
}

func (r *AuctionRepository) Create(ctx context.Context, tx pgx.Tx, a *domain.Auction) error {
	query := `
        INSERT INTO auctions (id, seller_id, title, description, category, condition,
            starting_price, current_price, buy_now_price, start_time, end_time, status, winner_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
    `
	_, err := tx.Exec(ctx, query,
		a.ID,
		a.SellerID,
		a.Title,
		a.Description,
		a.Category,
		a.Condition,
		a.StartingPrice,
		a.CurrentPrice,
		a.BuyNowPrice,
		a.StartTime,
		a.EndTime,
		a.Status,
		a.WinnerID,
	)
	return err
}

func (r *AuctionRepository) UpdatePrice(ctx context.Context, tx pgx.Tx, id uuid.UUID, newPrice float64) error {
	query := `
        UPDATE auctions
        SET current_price = $2, updated_at = NOW()
        WHERE id = $1
    `
	_, err := tx.Exec(ctx, query, id, newPrice)
	return err
}

func (r *AuctionRepository) MarkEnded(ctx context.Context, tx pgx.Tx, id uuid.UUID, finalPrice float64, winnerID *uuid.UUID) error {
	query := `
        UPDATE auctions
        SET current_price = $2, status = $3, winner_id = $4, updated_at = NOW()
        WHERE id = $1
    `
	_, err := tx.Exec(ctx, query, id, finalPrice, domain.StatusEnded, winnerID)
	return err
}

func (r *AuctionRepository) MarkCancelled(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	query := `
        UPDATE auctions
        SET status = $2, updated_at = NOW()
        WHERE id = $1
    `
	_, err := tx.Exec(ctx, query, id, domain.StatusCancelled)
	return err
}

func (r *AuctionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM auctions WHERE id = $1`, id)
	return err
}

func (r *AuctionRepository) ListActive(ctx context.Context, now time.Time) ([]*domain.Auction, error) {
	query := `
        SELECT ` + auctionColumns + `
        FROM auctions
        WHERE status = $1 AND end_time > $2
        ORDER BY end_time ASC
    `
	rows, err := r.pool.Query(ctx, query, domain.StatusActive, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var auctions []*domain.Auction
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, err
		}
		auctions = append(auctions, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return auctions, nil
}

// ListDue returns ids of ACTIVE auctions whose end time has passed, for the
// finalization sweep.
func (r *AuctionRepository) ListDue(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	query := `
        SELECT id
        FROM auctions
        WHERE status = $1 AND end_time <= $2
    `
	rows, err := r.pool.Query(ctx, query, domain.StatusActive, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
