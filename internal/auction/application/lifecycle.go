package application

import (
	"context"
	"fmt"
	"time"

	"github.com/Shohjahon777/bid-master-university-sub000/internal/auction/domain"
	notification "github.com/Shohjahon777/bid-master-university-sub000/internal/notification/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// CreateAuctionCommand carries the seller's listing form.
type CreateAuctionCommand struct {
	SellerID      uuid.UUID
	Title         string
	Description   string
	Category      string
	Condition     string
	StartingPrice float64
	BuyNowPrice   *float64
	EndTime       time.Time
}

// LifecycleUseCase owns every explicit auction state transition outside the
// bid path: create, cancel, delete and the scheduled-end finalization.
type LifecycleUseCase struct {
	db       TxBeginner
	auctions domain.AuctionRepository
	bids     domain.BidRepository
	notifier notification.Notifier
	updates  UpdatePublisher
}

func NewLifecycleUseCase(db TxBeginner, auctions domain.AuctionRepository,
	bids domain.BidRepository, notifier notification.Notifier, updates UpdatePublisher) *LifecycleUseCase {

	return &LifecycleUseCase{
		db:       db,
		auctions: auctions,
		bids:     bids,
		notifier: notifier,
		updates:  updates,
	}
}

// Create opens a new ACTIVE auction with current price pinned to the
// starting price.
func (uc *LifecycleUseCase) Create(ctx context.Context, cmd CreateAuctionCommand) (*domain.Auction, error) {
	now := time.Now().UTC()
	auction, err := domain.NewAuction(uuid.New(), cmd.SellerID, cmd.Title, cmd.Description,
		cmd.Category, cmd.Condition, cmd.StartingPrice, cmd.BuyNowPrice, now, cmd.EndTime)
	if err != nil {
		return nil, fmt.Errorf("create auction: %w", err)
	}

	tx, err := uc.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("create auction: failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := uc.auctions.Create(ctx, tx, auction); err != nil {
		return nil, fmt.Errorf("create auction: failed to save auction: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("create auction: failed to commit transaction: %w", err)
	}

	log.Info("Auction created",
		zap.String("auctionID", auction.ID.String()),
		zap.String("sellerID", cmd.SellerID.String()),
		zap.Float64("startingPrice", cmd.StartingPrice),
	)

	link := "/auctions/" + auction.ID.String()
	msg := fmt.Sprintf("Your auction %q is live until %s.", auction.Title, auction.EndTime.Format(time.RFC1123))
	_ = uc.notifier.Notify(ctx, auction.SellerID, notification.TypeAuctionCreated, msg, link)

	return auction, nil
}

// Cancel transitions a seller's ACTIVE auction to CANCELLED. Bids stay in the
// ledger as history.
func (uc *LifecycleUseCase) Cancel(ctx context.Context, auctionID, userID uuid.UUID) error {
	tx, err := uc.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("cancel auction: failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	auction, err := uc.auctions.GetForUpdate(ctx, tx, auctionID)
	if err != nil {
		return fmt.Errorf("cancel auction: failed to get auction %s: %w", auctionID, err)
	}

	leader, err := uc.bids.GetLeading(ctx, auctionID)
	if err != nil {
		return fmt.Errorf("cancel auction: failed to get leading bid for auction %s: %w", auctionID, err)
	}

	if err := auction.Cancel(userID); err != nil {
		return fmt.Errorf("cancel auction: rejected for auction %s: %w", auctionID, err)
	}
	if err := uc.auctions.MarkCancelled(ctx, tx, auctionID); err != nil {
		return fmt.Errorf("cancel auction: failed to update auction %s: %w", auctionID, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("cancel auction: failed to commit transaction: %w", err)
	}

	link := "/auctions/" + auctionID.String()
	if leader != nil {
		msg := fmt.Sprintf("The auction %q was cancelled by the seller.", auction.Title)
		_ = uc.notifier.Notify(ctx, leader.UserID, notification.TypeAuctionCancelled, msg, link)
	}
	uc.updates.PublishAuctionUpdate(auctionID, snapshotOf(auction, time.Now().UTC()))

	return nil
}

// Delete permanently removes a seller's auction once it is no longer ACTIVE.
// The bid ledger rows go with it (FK cascade).
func (uc *LifecycleUseCase) Delete(ctx context.Context, auctionID, userID uuid.UUID) error {
	auction, err := uc.auctions.GetByID(ctx, auctionID)
	if err != nil {
		return fmt.Errorf("delete auction: failed to get auction %s: %w", auctionID, err)
	}
	if err := auction.CanDelete(userID); err != nil {
		return fmt.Errorf("delete auction: rejected for auction %s: %w", auctionID, err)
	}
	if err := uc.auctions.Delete(ctx, auctionID); err != nil {
		return fmt.Errorf("delete auction: failed to delete auction %s: %w", auctionID, err)
	}
	log.Info("Auction deleted",
		zap.String("auctionID", auctionID.String()),
		zap.String("sellerID", userID.String()),
	)
	return nil
}

// FinalizeExpired ends an ACTIVE auction whose end time has passed, recording
// the leading bidder (if any) as winner. Idempotent: finalizing an auction
// that is already terminal, or not yet due, changes nothing and is not an
// error.
func (uc *LifecycleUseCase) FinalizeExpired(ctx context.Context, auctionID uuid.UUID) (*domain.Auction, error) {
	tx, err := uc.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("finalize auction: failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	auction, err := uc.auctions.GetForUpdate(ctx, tx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("finalize auction: failed to get auction %s: %w", auctionID, err)
	}

	leader, err := uc.bids.GetLeading(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("finalize auction: failed to get leading bid for auction %s: %w", auctionID, err)
	}

	var leaderID *uuid.UUID
	if leader != nil {
		leaderID = &leader.UserID
	}

	now := time.Now().UTC()
	if !auction.FinalizeExpired(leaderID, now) {
		return auction, nil
	}

	if err := uc.auctions.MarkEnded(ctx, tx, auctionID, auction.CurrentPrice, auction.WinnerID); err != nil {
		return nil, fmt.Errorf("finalize auction: failed to update auction %s: %w", auctionID, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("finalize auction: failed to commit transaction: %w", err)
	}

	uc.notifyAfterFinalize(ctx, auction, leader)
	uc.updates.PublishAuctionUpdate(auctionID, snapshotOf(auction, now))

	return auction, nil
}

// FinalizeDue runs the finalization sweep over every auction past its end
// time. Per-auction failures are logged and skipped so one bad row cannot
// wedge the sweep.
func (uc *LifecycleUseCase) FinalizeDue(ctx context.Context) error {
	ids, err := uc.auctions.ListDue(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("finalize sweep: failed to list due auctions: %w", err)
	}
	for _, id := range ids {
		if _, err := uc.FinalizeExpired(ctx, id); err != nil {
			log.Error("finalize sweep: auction failed",
				zap.String("auctionID", id.String()),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (uc *LifecycleUseCase) notifyAfterFinalize(ctx context.Context, a *domain.Auction, leader *domain.Bid) {
	link := "/auctions/" + a.ID.String()
	if leader == nil {
		msg := fmt.Sprintf("Your auction %q ended without bids.", a.Title)
		_ = uc.notifier.Notify(ctx, a.SellerID, notification.TypeAuctionEnded, msg, link)
		return
	}
	sellerMsg := fmt.Sprintf("Your auction %q ended at $%.2f.", a.Title, a.CurrentPrice)
	_ = uc.notifier.Notify(ctx, a.SellerID, notification.TypeAuctionEnded, sellerMsg, link)
	winnerMsg := fmt.Sprintf("Congratulations! You won %q for $%.2f.", a.Title, a.CurrentPrice)
	_ = uc.notifier.Notify(ctx, leader.UserID, notification.TypeAuctionWon, winnerMsg, link)
}
