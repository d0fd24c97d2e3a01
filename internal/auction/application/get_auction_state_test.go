package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Shohjahon777/bid-master-university-sub000/internal/auction/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGetAuctionState(t *testing.T) {
	seller := uuid.New()
	bidderA := uuid.New()
	bidderB := uuid.New()
	ctx := context.Background()
	now := time.Now().UTC()

	auction := activeAuction(seller, 10, nil)
	auctions := newFakeAuctionRepo(auction)
	bids := &fakeBidRepo{}
	require.NoError(t, bids.Insert(ctx, nil, domain.NewBid(uuid.New(), auction.ID, bidderA, 15, now)))
	require.NoError(t, bids.Insert(ctx, nil, domain.NewBid(uuid.New(), auction.ID, bidderB, 20, now)))
	auction.CurrentPrice = 20

	uc := NewGetAuctionStateUseCase(auctions, bids)

	t.Run("snapshot_carries_history_and_suggestions", func(t *testing.T) {
		state, err := uc.Execute(ctx, auction.ID, nil)
		require.NoError(t, err)
		require.Equal(t, auction.ID, state.ID)
		require.Equal(t, 20.0, state.CurrentPrice)
		require.Equal(t, domain.DisplayActive, state.DisplayStatus)
		require.Len(t, state.Bids, 2)
		require.Equal(t, 21.00, state.MinimumBid)
		require.Equal(t, 0.50, state.BidIncrement)
		require.Empty(t, state.ViewerStatus)
	})

	t.Run("viewer_with_leading_bid_is_winning", func(t *testing.T) {
		state, err := uc.Execute(ctx, auction.ID, &bidderB)
		require.NoError(t, err)
		require.Equal(t, domain.BidStatusWinning, state.ViewerStatus)
	})

	t.Run("overtaken_viewer_is_outbid", func(t *testing.T) {
		state, err := uc.Execute(ctx, auction.ID, &bidderA)
		require.NoError(t, err)
		require.Equal(t, domain.BidStatusOutbid, state.ViewerStatus)
	})

	t.Run("viewer_without_bids_has_no_status", func(t *testing.T) {
		stranger := uuid.New()
		state, err := uc.Execute(ctx, auction.ID, &stranger)
		require.NoError(t, err)
		require.Empty(t, state.ViewerStatus)
	})

	t.Run("unknown_auction_is_not_found", func(t *testing.T) {
		_, err := uc.Execute(ctx, uuid.New(), nil)
		require.True(t, errors.Is(err, domain.ErrAuctionNotFound))
	})
}

func TestListActiveAuctions(t *testing.T) {
	seller := uuid.New()
	ctx := context.Background()

	active := activeAuction(seller, 10, nil)
	expired := activeAuction(seller, 10, nil)
	expired.EndTime = time.Now().UTC().Add(-time.Minute)
	cancelled := activeAuction(seller, 10, nil)
	cancelled.Status = domain.StatusCancelled

	uc := NewGetAuctionStateUseCase(newFakeAuctionRepo(active, expired, cancelled), &fakeBidRepo{})

	states, err := uc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, states, 1)
	require.Equal(t, active.ID, states[0].ID)
}
