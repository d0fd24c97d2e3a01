package application

import (
	"context"
	"fmt"
	"time"

	"github.com/Shohjahon777/bid-master-university-sub000/internal/auction/domain"
	"github.com/google/uuid"
)

// BidDTO is one ledger entry in an auction's bid history.
type BidDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// AuctionStateDTO is the read-side snapshot of one auction, including the
// derived display status and suggested bid amounts.
type AuctionStateDTO struct {
	ID            uuid.UUID            `json:"id"`
	SellerID      uuid.UUID            `json:"seller_id"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Category      string               `json:"category"`
	Condition     string               `json:"condition"`
	StartingPrice float64              `json:"starting_price"`
	CurrentPrice  float64              `json:"current_price"`
	BuyNowPrice   *float64             `json:"buy_now_price,omitempty"`
	StartTime     time.Time            `json:"start_time"`
	EndTime       time.Time            `json:"end_time"`
	Status        string               `json:"status"`
	DisplayStatus domain.DisplayStatus `json:"display_status"`
	WinnerID      *uuid.UUID           `json:"winner_id,omitempty"`
	MinimumBid    float64              `json:"minimum_bid"`
	BidIncrement  float64              `json:"bid_increment"`
	Bids          []BidDTO             `json:"bids,omitempty"`
	ViewerStatus  domain.BidStatus     `json:"viewer_bid_status,omitempty"`
}

// GetAuctionStateUseCase serves the read surface. It has no side effects and
// runs outside any transaction; the snapshot may lag concurrent writes.
type GetAuctionStateUseCase struct {
	auctions domain.AuctionRepository
	bids     domain.BidRepository
}

func NewGetAuctionStateUseCase(auctions domain.AuctionRepository, bids domain.BidRepository) *GetAuctionStateUseCase {
	return &GetAuctionStateUseCase{auctions: auctions, bids: bids}
}

func snapshotOf(a *domain.Auction, now time.Time) *AuctionStateDTO {
	return &AuctionStateDTO{
		ID:            a.ID,
		SellerID:      a.SellerID,
		Title:         a.Title,
		Description:   a.Description,
		Category:      a.Category,
		Condition:     a.Condition,
		StartingPrice: a.StartingPrice,
		CurrentPrice:  a.CurrentPrice,
		BuyNowPrice:   a.BuyNowPrice,
		StartTime:     a.StartTime,
		EndTime:       a.EndTime,
		Status:        string(a.Status),
		DisplayStatus: domain.AuctionDisplayStatus(a, now),
		WinnerID:      a.WinnerID,
		MinimumBid:    domain.MinimumBid(a.CurrentPrice),
		BidIncrement:  domain.BidIncrement(a.CurrentPrice),
	}
}

// Execute loads one auction with its bid history. When viewerID is non-nil
// and the viewer has bid on the auction, the snapshot carries their derived
// winning/outbid/won/lost status.
func (uc *GetAuctionStateUseCase) Execute(ctx context.Context, auctionID uuid.UUID, viewerID *uuid.UUID) (*AuctionStateDTO, error) {
	a, err := uc.auctions.GetByID(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("get auction state: failed to get auction %s: %w", auctionID, err)
	}

	now := time.Now().UTC()
	dto := snapshotOf(a, now)

	bids, err := uc.bids.ListByAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("get auction state: failed to list bids for auction %s: %w", auctionID, err)
	}
	for _, b := range bids {
		dto.Bids = append(dto.Bids, BidDTO{ID: b.ID, UserID: b.UserID, Amount: b.Amount, CreatedAt: b.CreatedAt})
	}

	if viewerID != nil {
		highest, err := uc.bids.GetUserHighest(ctx, auctionID, *viewerID)
		if err != nil {
			return nil, fmt.Errorf("get auction state: failed to get viewer bid for auction %s: %w", auctionID, err)
		}
		if highest != nil {
			dto.ViewerStatus = domain.DeriveBidStatus(highest.Amount, a, *viewerID, now)
		}
	}

	return dto, nil
}

// ListActive returns snapshots of all auctions still inside their bidding
// window, soonest ending first.
func (uc *GetAuctionStateUseCase) ListActive(ctx context.Context) ([]*AuctionStateDTO, error) {
	now := time.Now().UTC()
	auctions, err := uc.auctions.ListActive(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("get auction state: failed to list active auctions: %w", err)
	}

	dtos := make([]*AuctionStateDTO, 0, len(auctions))
	for _, a := range auctions {
		dtos = append(dtos, snapshotOf(a, now))
	}
	return dtos, nil
}
