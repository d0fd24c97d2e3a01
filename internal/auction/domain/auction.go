package domain

import (
	"time"

	"github.com/Shohjahon777/bid-master-university-sub000/internal/shared/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// AuctionStatus represents the lifecycle state of an auction.
type AuctionStatus string

const (
	StatusActive    AuctionStatus = "ACTIVE"
	StatusEnded     AuctionStatus = "ENDED"
	StatusCancelled AuctionStatus = "CANCELLED"
)

// Auction is the aggregate root of the bidding context. CurrentPrice is
// monotonically non-decreasing and only changes through an accepted bid or a
// buy-now. WinnerID is set only on buy-now or on finalization with at least
// one bid. The seller may never also be a bidder on their own listing.
type Auction struct {
	ID            uuid.UUID
	SellerID      uuid.UUID
	Title         string
	Description   string
	Category      string
	Condition     string
	StartingPrice float64
	CurrentPrice  float64
	BuyNowPrice   *float64
	StartTime     time.Time
	EndTime       time.Time
	Status        AuctionStatus
	WinnerID      *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewAuction creates an ACTIVE auction with current price pinned to the
// starting price. buyNowPrice may be nil; when present it must be strictly
// greater than the starting price.
func NewAuction(id, sellerID uuid.UUID, title, description, category, condition string,
	startingPrice float64, buyNowPrice *float64, startTime, endTime time.Time) (*Auction, error) {

	if startingPrice <= 0 {
		return nil, ErrInvalidStartingPrice
	}
	if !endTime.After(startTime) {
		return nil, ErrInvalidEndTime
	}
	if buyNowPrice != nil && *buyNowPrice <= startingPrice {
		return nil, ErrInvalidBuyNowPrice
	}

	return &Auction{
		ID:            id,
		SellerID:      sellerID,
		Title:         title,
		Description:   description,
		Category:      category,
		Condition:     condition,
		StartingPrice: startingPrice,
		CurrentPrice:  startingPrice,
		BuyNowPrice:   buyNowPrice,
		StartTime:     startTime,
		EndTime:       endTime,
		Status:        StatusActive,
	}, nil
}

// guardBiddable runs the shared bid/buy-now preconditions in contract order:
// the auction must be inside its ACTIVE window and the caller must not be the seller.
func (a *Auction) guardBiddable(userID uuid.UUID, now time.Time) error {
	if a.Status != StatusActive || !now.Before(a.EndTime) {
		log.Warn("Bid rejected: auction not active",
			zap.String("auctionID", a.ID.String()),
			zap.String("status", string(a.Status)),
			zap.Time("endTime", a.EndTime),
			zap.String("userID", userID.String()),
		)
		return ErrAuctionNotActive
	}
	if userID == a.SellerID {
		log.Warn("Bid rejected: seller cannot bid on own auction",
			zap.String("auctionID", a.ID.String()),
			zap.String("userID", userID.String()),
		)
		return ErrSellerCannotBid
	}
	return nil
}

// PlaceBid validates and applies a bid against the loaded auction state.
// The bid must be strictly greater than the current price; on acceptance the
// current price moves to the bid amount and the new Bid entity is returned.
// Callers must hold the auction row lock so the observed price is the
// committed one.
func (a *Auction) PlaceBid(userID uuid.UUID, amount float64, now time.Time) (*Bid, error) {
	if err := a.guardBiddable(userID, now); err != nil {
		return nil, err
	}
	if amount <= a.CurrentPrice {
		log.Warn("Bid rejected: amount too low",
			zap.String("auctionID", a.ID.String()),
			zap.Float64("bidAmount", amount),
			zap.Float64("currentPrice", a.CurrentPrice),
			zap.String("userID", userID.String()),
		)
		return nil, &BidTooLowError{CurrentPrice: a.CurrentPrice}
	}

	a.CurrentPrice = amount
	newBid := NewBid(uuid.New(), a.ID, userID, amount, now)

	log.Info("Bid placed",
		zap.String("auctionID", a.ID.String()),
		zap.String("bidID", newBid.ID.String()),
		zap.String("userID", userID.String()),
		zap.Float64("amount", amount),
	)
	return newBid, nil
}

// BuyNow finalizes the auction at its buy-now price: price jumps to the
// buy-now amount, the buyer becomes the winner and the auction is permanently
// ENDED. A synthetic Bid at the buy-now price is returned for the ledger.
func (a *Auction) BuyNow(userID uuid.UUID, now time.Time) (*Bid, error) {
	if err := a.guardBiddable(userID, now); err != nil {
		return nil, err
	}
	if a.BuyNowPrice == nil || *a.BuyNowPrice <= 0 {
		log.Warn("Buy-now rejected: no buy-now price configured",
			zap.String("auctionID", a.ID.String()),
			zap.String("userID", userID.String()),
		)
		return nil, ErrBuyNowUnavailable
	}

	price := *a.BuyNowPrice
	a.CurrentPrice = price
	a.Status = StatusEnded
	winner := userID
	a.WinnerID = &winner
	newBid := NewBid(uuid.New(), a.ID, userID, price, now)

	log.Info("Auction sold via buy-now",
		zap.String("auctionID", a.ID.String()),
		zap.String("winnerID", userID.String()),
		zap.Float64("price", price),
	)
	return newBid, nil
}

// Cancel transitions an ACTIVE auction to CANCELLED. Only the seller may
// cancel; bids already in the ledger stay untouched as history.
func (a *Auction) Cancel(userID uuid.UUID) error {
	if userID != a.SellerID {
		return ErrNotOwner
	}
	if a.Status != StatusActive {
		log.Warn("Cancel rejected: auction not active",
			zap.String("auctionID", a.ID.String()),
			zap.String("status", string(a.Status)),
		)
		return ErrAuctionNotActive
	}
	a.Status = StatusCancelled
	log.Info("Auction cancelled", zap.String("auctionID", a.ID.String()))
	return nil
}

// CanDelete reports whether userID may permanently remove this auction:
// owner only, and only once the auction is no longer ACTIVE.
func (a *Auction) CanDelete(userID uuid.UUID) error {
	if userID != a.SellerID {
		return ErrNotOwner
	}
	if a.Status == StatusActive {
		return ErrAuctionStillActive
	}
	return nil
}

// FinalizeExpired ends an ACTIVE auction whose end time has passed, recording
// leaderID (the leading bidder, nil when there were no bids) as winner.
// Idempotent: already-terminal or not-yet-due auctions are left unchanged and
// false is returned.
func (a *Auction) FinalizeExpired(leaderID *uuid.UUID, now time.Time) bool {
	if a.Status != StatusActive {
		return false
	}
	if now.Before(a.EndTime) {
		return false
	}
	a.Status = StatusEnded
	a.WinnerID = leaderID
	log.Info("Auction finalized after end time",
		zap.String("auctionID", a.ID.String()),
		zap.Bool("hasWinner", leaderID != nil),
		zap.Float64("finalPrice", a.CurrentPrice),
	)
	return true
}
