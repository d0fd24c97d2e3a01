package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TxBeginner is the slice of pgxpool.Pool the use cases need to open
// transactions. Narrowed to an interface so tests can drive the use cases
// with fakes.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// UpdatePublisher pushes a fresh auction snapshot to live watchers after a
// state change commits. Best-effort: implementations must never block the
// caller on slow consumers.
type UpdatePublisher interface {
	PublishAuctionUpdate(auctionID uuid.UUID, state *AuctionStateDTO)
}

// NopPublisher discards updates; used where no live channel is wired.
type NopPublisher struct{}

func (NopPublisher) PublishAuctionUpdate(uuid.UUID, *AuctionStateDTO) {}
