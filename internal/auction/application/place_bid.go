package application

import (
	"context"
	"fmt"
	"time"

	"github.com/Shohjahon777/bid-master-university-sub000/internal/auction/domain"
	notification "github.com/Shohjahon777/bid-master-university-sub000/internal/notification/domain"
	"github.com/Shohjahon777/bid-master-university-sub000/internal/shared/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// PlaceBidCommand carries the caller-supplied inputs for one bid attempt.
type PlaceBidCommand struct {
	AuctionID uuid.UUID
	UserID    uuid.UUID
	Amount    float64
}

// PlaceBidUseCase validates and atomically applies a new bid: the auction row
// is locked, the guard re-runs against the committed price, and the ledger
// insert plus price update commit together. Notifications and the live update
// run after commit and are never allowed to fail the bid.
type PlaceBidUseCase struct {
	db       TxBeginner
	auctions domain.AuctionRepository
	bids     domain.BidRepository
	notifier notification.Notifier
	updates  UpdatePublisher
}

func NewPlaceBidUseCase(db TxBeginner, auctions domain.AuctionRepository,
	bids domain.BidRepository, notifier notification.Notifier, updates UpdatePublisher) *PlaceBidUseCase {

	return &PlaceBidUseCase{
		db:       db,
		auctions: auctions,
		bids:     bids,
		notifier: notifier,
		updates:  updates,
	}
}

func (uc *PlaceBidUseCase) Execute(ctx context.Context, cmd PlaceBidCommand) (*domain.Bid, error) {
	log.Info("Executing PlaceBidUseCase",
		zap.String("auctionID", cmd.AuctionID.String()),
		zap.String("userID", cmd.UserID.String()),
		zap.Float64("amount", cmd.Amount),
	)

	tx, err := uc.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("place bid: failed to begin transaction: %w", err)
	}
	// no-op once the transaction has committed
	defer func() { _ = tx.Rollback(ctx) }()

	auction, err := uc.auctions.GetForUpdate(ctx, tx, cmd.AuctionID)
	if err != nil {
		return nil, fmt.Errorf("place bid: failed to get auction %s: %w", cmd.AuctionID, err)
	}

	// The row lock is held, so the committed leading bid cannot change under us.
	prevLeader, err := uc.bids.GetLeading(ctx, cmd.AuctionID)
	if err != nil {
		return nil, fmt.Errorf("place bid: failed to get leading bid for auction %s: %w", cmd.AuctionID, err)
	}

	now := time.Now().UTC()
	newBid, err := auction.PlaceBid(cmd.UserID, cmd.Amount, now)
	if err != nil {
		return nil, fmt.Errorf("place bid: bid failed for auction %s: %w", cmd.AuctionID, err)
	}

	if err := uc.bids.Insert(ctx, tx, newBid); err != nil {
		return nil, fmt.Errorf("place bid: failed to save bid for auction %s: %w", cmd.AuctionID, err)
	}
	if err := uc.auctions.UpdatePrice(ctx, tx, auction.ID, auction.CurrentPrice); err != nil {
		return nil, fmt.Errorf("place bid: failed to update price for auction %s: %w", cmd.AuctionID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("place bid: failed to commit transaction: %w", err)
	}

	uc.notifyAfterBid(ctx, auction, newBid, prevLeader)
	uc.updates.PublishAuctionUpdate(auction.ID, snapshotOf(auction, now))

	return newBid, nil
}

// notifyAfterBid emits the outbid and new-bid notifications. Errors are
// already logged by the dispatcher and deliberately dropped here.
func (uc *PlaceBidUseCase) notifyAfterBid(ctx context.Context, a *domain.Auction, bid *domain.Bid, prevLeader *domain.Bid) {
	link := "/auctions/" + a.ID.String()
	if prevLeader != nil && prevLeader.UserID != bid.UserID {
		msg := fmt.Sprintf("You have been outbid on %q. The price is now $%.2f.", a.Title, bid.Amount)
		_ = uc.notifier.Notify(ctx, prevLeader.UserID, notification.TypeBidOutbid, msg, link)
	}
	msg := fmt.Sprintf("A new bid of $%.2f was placed on %q.", bid.Amount, a.Title)
	_ = uc.notifier.Notify(ctx, a.SellerID, notification.TypeBidPlaced, msg, link)
}
