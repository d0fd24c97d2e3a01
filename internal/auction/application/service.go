package application

import (
	"context"

	"github.com/Shohjahon777/bid-master-university-sub000/internal/auction/domain"
	"github.com/google/uuid"
)

// AuctionService is the application-layer surface of the auction context,
// exposed to the HTTP and websocket adapters.
type AuctionService interface {
	CreateAuction(ctx context.Context, cmd CreateAuctionCommand) (*domain.Auction, error)
	PlaceBid(ctx context.Context, cmd PlaceBidCommand) (*domain.Bid, error)
	BuyNow(ctx context.Context, cmd BuyNowCommand) (*domain.Bid, error)
	CancelAuction(ctx context.Context, auctionID, userID uuid.UUID) error
	DeleteAuction(ctx context.Context, auctionID, userID uuid.UUID) error
	FinalizeExpired(ctx context.Context, auctionID uuid.UUID) (*domain.Auction, error)
	FinalizeDue(ctx context.Context) error
	GetAuctionState(ctx context.Context, auctionID uuid.UUID, viewerID *uuid.UUID) (*AuctionStateDTO, error)
	ListActiveAuctions(ctx context.Context) ([]*AuctionStateDTO, error)
}

type auctionService struct {
	placeBidUC  *PlaceBidUseCase
	buyNowUC    *BuyNowUseCase
	lifecycleUC *LifecycleUseCase
	stateUC     *GetAuctionStateUseCase
}

func NewAuctionService(placeBidUC *PlaceBidUseCase, buyNowUC *BuyNowUseCase,
	lifecycleUC *LifecycleUseCase, stateUC *GetAuctionStateUseCase) AuctionService {

	return &auctionService{
		placeBidUC:  placeBidUC,
		buyNowUC:    buyNowUC,
		lifecycleUC: lifecycleUC,
		stateUC:     stateUC,
	}
}

func (s *auctionService) CreateAuction(ctx context.Context, cmd CreateAuctionCommand) (*domain.Auction, error) {
	return s.lifecycleUC.Create(ctx, cmd)
}

func (s *auctionService) PlaceBid(ctx context.Context, cmd PlaceBidCommand) (*domain.Bid, error) {
	return s.placeBidUC.Execute(ctx, cmd)
}

func (s *auctionService) BuyNow(ctx context.Context, cmd BuyNowCommand) (*domain.Bid, error) {
	return s.buyNowUC.Execute(ctx, cmd)
}

func (s *auctionService) CancelAuction(ctx context.Context, auctionID, userID uuid.UUID) error {
	return s.lifecycleUC.Cancel(ctx, auctionID, userID)
}

func (s *auctionService) DeleteAuction(ctx context.Context, auctionID, userID uuid.UUID) error {
	return s.lifecycleUC.Delete(ctx, auctionID, userID)
}

func (s *auctionService) FinalizeExpired(ctx context.Context, auctionID uuid.UUID) (*domain.Auction, error) {
	return s.lifecycleUC.FinalizeExpired(ctx, auctionID)
}

func (s *auctionService) FinalizeDue(ctx context.Context) error {
	return s.lifecycleUC.FinalizeDue(ctx)
}

func (s *auctionService) GetAuctionState(ctx context.Context, auctionID uuid.UUID, viewerID *uuid.UUID) (*AuctionStateDTO, error) {
	return s.stateUC.Execute(ctx, auctionID, viewerID)
}

func (s *auctionService) ListActiveAuctions(ctx context.Context) ([]*AuctionStateDTO, error) {
	return s.stateUC.ListActive(ctx)
}
