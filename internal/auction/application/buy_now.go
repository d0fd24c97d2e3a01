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

// BuyNowCommand identifies the auction and the buyer.
type BuyNowCommand struct {
	AuctionID uuid.UUID
	UserID    uuid.UUID
}

// BuyNowUseCase finalizes an auction instantly at its buy-now price. It
// shares the bid path's transactional boundary: the auction row lock covers
// the synthetic bid insert and the status+price+winner update, so a
// concurrent bid cannot interleave between read and write.
type BuyNowUseCase struct {
	db       TxBeginner
	auctions domain.AuctionRepository
	bids     domain.BidRepository
	notifier notification.Notifier
	updates  UpdatePublisher
}

func NewBuyNowUseCase(db TxBeginner, auctions domain.AuctionRepository,
	bids domain.BidRepository, notifier notification.Notifier, updates UpdatePublisher) *BuyNowUseCase {

	return &BuyNowUseCase{
		db:       db,
		auctions: auctions,
		bids:     bids,
		notifier: notifier,
		updates:  updates,
	}
}

func (uc *BuyNowUseCase) Execute(ctx context.Context, cmd BuyNowCommand) (*domain.Bid, error) {
	log.Info("Executing BuyNowUseCase",
		zap.String("auctionID", cmd.AuctionID.String()),
		zap.String("userID", cmd.UserID.String()),
	)

	tx, err := uc.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("buy now: failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	auction, err := uc.auctions.GetForUpdate(ctx, tx, cmd.AuctionID)
	if err != nil {
		return nil, fmt.Errorf("buy now: failed to get auction %s: %w", cmd.AuctionID, err)
	}

	prevLeader, err := uc.bids.GetLeading(ctx, cmd.AuctionID)
	if err != nil {
		return nil, fmt.Errorf("buy now: failed to get leading bid for auction %s: %w", cmd.AuctionID, err)
	}

	now := time.Now().UTC()
	newBid, err := auction.BuyNow(cmd.UserID, now)
	if err != nil {
		return nil, fmt.Errorf("buy now: rejected for auction %s: %w", cmd.AuctionID, err)
	}

	if err := uc.bids.Insert(ctx, tx, newBid); err != nil {
		return nil, fmt.Errorf("buy now: failed to save bid for auction %s: %w", cmd.AuctionID, err)
	}
	if err := uc.auctions.MarkEnded(ctx, tx, auction.ID, auction.CurrentPrice, auction.WinnerID); err != nil {
		return nil, fmt.Errorf("buy now: failed to finalize auction %s: %w", cmd.AuctionID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("buy now: failed to commit transaction: %w", err)
	}

	uc.notifyAfterBuyNow(ctx, auction, newBid, prevLeader)
	uc.updates.PublishAuctionUpdate(auction.ID, snapshotOf(auction, now))

	return newBid, nil
}

func (uc *BuyNowUseCase) notifyAfterBuyNow(ctx context.Context, a *domain.Auction, bid *domain.Bid, prevLeader *domain.Bid) {
	link := "/auctions/" + a.ID.String()
	if prevLeader != nil && prevLeader.UserID != bid.UserID {
		msg := fmt.Sprintf("%q was bought out at $%.2f and your bid did not win.", a.Title, bid.Amount)
		_ = uc.notifier.Notify(ctx, prevLeader.UserID, notification.TypeBidOutbid, msg, link)
	}
	sellerMsg := fmt.Sprintf("%q sold for $%.2f via buy-now.", a.Title, bid.Amount)
	_ = uc.notifier.Notify(ctx, a.SellerID, notification.TypeAuctionEnded, sellerMsg, link)
	buyerMsg := fmt.Sprintf("Congratulations! You won %q for $%.2f.", a.Title, bid.Amount)
	_ = uc.notifier.Notify(ctx, bid.UserID, notification.TypeAuctionWon, buyerMsg, link)
}
