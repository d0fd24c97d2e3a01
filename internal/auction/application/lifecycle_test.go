package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Shohjahon777/bid-master-university-sub000/internal/auction/domain"
	notification "github.com/Shohjahon777/bid-master-university-sub000/internal/notification/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newLifecycleFixture(auctions ...*domain.Auction) (*LifecycleUseCase, *PlaceBidUseCase, *fakeAuctionRepo, *fakeBidRepo, *fakeNotifier) {
	db := &fakeDB{}
	auctionRepo := newFakeAuctionRepo(auctions...)
	bidRepo := &fakeBidRepo{}
	notifier := &fakeNotifier{}
	publisher := &fakePublisher{}
	lifecycle := NewLifecycleUseCase(db, auctionRepo, bidRepo, notifier, publisher)
	placeBid := NewPlaceBidUseCase(db, auctionRepo, bidRepo, notifier, publisher)
	return lifecycle, placeBid, auctionRepo, bidRepo, notifier
}

func TestCreateAuction(t *testing.T) {
	seller := uuid.New()
	endTime := time.Now().UTC().Add(24 * time.Hour)
	buyNow := 25.0
	badBuyNow := 5.0

	tests := []struct {
		name          string
		cmd           CreateAuctionCommand
		expectedError error
	}{
		{
			name: "valid_listing",
			cmd: CreateAuctionCommand{
				SellerID:      seller,
				Title:         "Calculus textbook",
				Category:      "books",
				Condition:     "used",
				StartingPrice: 10,
				BuyNowPrice:   &buyNow,
				EndTime:       endTime,
			},
		},
		{
			name: "zero_starting_price",
			cmd: CreateAuctionCommand{
				SellerID:      seller,
				Title:         "Calculus textbook",
				StartingPrice: 0,
				EndTime:       endTime,
			},
			expectedError: domain.ErrInvalidStartingPrice,
		},
		{
			name: "buy_now_not_above_starting_price",
			cmd: CreateAuctionCommand{
				SellerID:      seller,
				Title:         "Calculus textbook",
				StartingPrice: 10,
				BuyNowPrice:   &badBuyNow,
				EndTime:       endTime,
			},
			expectedError: domain.ErrInvalidBuyNowPrice,
		},
		{
			name: "end_time_in_the_past",
			cmd: CreateAuctionCommand{
				SellerID:      seller,
				Title:         "Calculus textbook",
				StartingPrice: 10,
				EndTime:       time.Now().UTC().Add(-time.Hour),
			},
			expectedError: domain.ErrInvalidEndTime,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lifecycle, _, auctionRepo, _, notifier := newLifecycleFixture()

			auction, err := lifecycle.Create(context.Background(), tc.cmd)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.expectedError), "expected %v, got %v", tc.expectedError, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, domain.StatusActive, auction.Status)
			require.Equal(t, tc.cmd.StartingPrice, auction.CurrentPrice)
			require.Nil(t, auction.WinnerID)

			stored, err := auctionRepo.GetByID(context.Background(), auction.ID)
			require.NoError(t, err)
			require.Equal(t, auction.ID, stored.ID)
			require.True(t, notifier.sentTo(seller, notification.TypeAuctionCreated))
		})
	}
}

func TestCancelAuction(t *testing.T) {
	seller := uuid.New()
	bidder := uuid.New()

	t.Run("only_the_seller_may_cancel", func(t *testing.T) {
		auction := activeAuction(seller, 10, nil)
		lifecycle, _, auctionRepo, _, _ := newLifecycleFixture(auction)

		err := lifecycle.Cancel(context.Background(), auction.ID, bidder)
		require.Error(t, err)
		require.True(t, errors.Is(err, domain.ErrNotOwner))

		stored, getErr := auctionRepo.GetByID(context.Background(), auction.ID)
		require.NoError(t, getErr)
		require.Equal(t, domain.StatusActive, stored.Status)
	})

	t.Run("cannot_cancel_ended_auction", func(t *testing.T) {
		auction := activeAuction(seller, 10, nil)
		auction.Status = domain.StatusEnded
		lifecycle, _, _, _, _ := newLifecycleFixture(auction)

		err := lifecycle.Cancel(context.Background(), auction.ID, seller)
		require.Error(t, err)
		require.True(t, errors.Is(err, domain.ErrAuctionNotActive))
	})

	t.Run("cancel_keeps_bid_history_and_notifies_leader", func(t *testing.T) {
		auction := activeAuction(seller, 10, nil)
		lifecycle, placeBid, auctionRepo, bidRepo, notifier := newLifecycleFixture(auction)

		_, err := placeBid.Execute(context.Background(), PlaceBidCommand{AuctionID: auction.ID, UserID: bidder, Amount: 15})
		require.NoError(t, err)

		require.NoError(t, lifecycle.Cancel(context.Background(), auction.ID, seller))

		stored, err := auctionRepo.GetByID(context.Background(), auction.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusCancelled, stored.Status)
		require.Equal(t, 15.0, stored.CurrentPrice)
		require.Len(t, bidRepo.bids, 1)
		require.True(t, notifier.sentTo(bidder, notification.TypeAuctionCancelled))

		// every bidder on a cancelled auction has lost
		now := time.Now().UTC()
		require.Equal(t, domain.BidStatusLost, domain.DeriveBidStatus(15, stored, bidder, now))
	})
}

func TestDeleteAuction(t *testing.T) {
	seller := uuid.New()

	tests := []struct {
		name          string
		status        domain.AuctionStatus
		userID        uuid.UUID
		expectedError error
	}{
		{name: "delete_cancelled_auction", status: domain.StatusCancelled, userID: seller},
		{name: "delete_ended_auction", status: domain.StatusEnded, userID: seller},
		{name: "not_owner", status: domain.StatusCancelled, userID: uuid.New(), expectedError: domain.ErrNotOwner},
		{name: "still_active", status: domain.StatusActive, userID: seller, expectedError: domain.ErrAuctionStillActive},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			auction := activeAuction(seller, 10, nil)
			auction.Status = tc.status
			lifecycle, _, auctionRepo, _, _ := newLifecycleFixture(auction)

			err := lifecycle.Delete(context.Background(), auction.ID, tc.userID)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.expectedError), "expected %v, got %v", tc.expectedError, err)
				_, getErr := auctionRepo.GetByID(context.Background(), auction.ID)
				require.NoError(t, getErr)
				return
			}

			require.NoError(t, err)
			_, getErr := auctionRepo.GetByID(context.Background(), auction.ID)
			require.True(t, errors.Is(getErr, domain.ErrAuctionNotFound))
		})
	}
}

func TestFinalizeExpired(t *testing.T) {
	seller := uuid.New()
	bidder := uuid.New()

	t.Run("not_yet_due_is_a_no_op", func(t *testing.T) {
		auction := activeAuction(seller, 10, nil)
		lifecycle, _, auctionRepo, _, notifier := newLifecycleFixture(auction)

		result, err := lifecycle.FinalizeExpired(context.Background(), auction.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusActive, result.Status)

		stored, err := auctionRepo.GetByID(context.Background(), auction.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusActive, stored.Status)
		require.Empty(t, notifier.sent)
	})

	t.Run("finalizes_with_winner", func(t *testing.T) {
		auction := activeAuction(seller, 10, nil)
		lifecycle, placeBid, auctionRepo, _, notifier := newLifecycleFixture(auction)

		_, err := placeBid.Execute(context.Background(), PlaceBidCommand{AuctionID: auction.ID, UserID: bidder, Amount: 15})
		require.NoError(t, err)

		// push the auction past its end time
		auctionRepo.auctions[auction.ID].EndTime = time.Now().UTC().Add(-time.Minute)

		result, err := lifecycle.FinalizeExpired(context.Background(), auction.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusEnded, result.Status)
		require.NotNil(t, result.WinnerID)
		require.Equal(t, bidder, *result.WinnerID)

		require.True(t, notifier.sentTo(seller, notification.TypeAuctionEnded))
		require.True(t, notifier.sentTo(bidder, notification.TypeAuctionWon))
	})

	t.Run("finalizes_without_bids", func(t *testing.T) {
		auction := activeAuction(seller, 10, nil)
		auction.EndTime = time.Now().UTC().Add(-time.Minute)
		lifecycle, _, auctionRepo, _, notifier := newLifecycleFixture(auction)

		result, err := lifecycle.FinalizeExpired(context.Background(), auction.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusEnded, result.Status)
		require.Nil(t, result.WinnerID)

		stored, err := auctionRepo.GetByID(context.Background(), auction.ID)
		require.NoError(t, err)
		require.Nil(t, stored.WinnerID)
		require.True(t, notifier.sentTo(seller, notification.TypeAuctionEnded))
		require.False(t, notifier.sentTo(bidder, notification.TypeAuctionWon))
	})

	t.Run("idempotent_on_already_ended_auction", func(t *testing.T) {
		auction := activeAuction(seller, 10, nil)
		auction.EndTime = time.Now().UTC().Add(-time.Minute)
		lifecycle, _, _, _, notifier := newLifecycleFixture(auction)

		_, err := lifecycle.FinalizeExpired(context.Background(), auction.ID)
		require.NoError(t, err)
		sentAfterFirst := len(notifier.sent)

		result, err := lifecycle.FinalizeExpired(context.Background(), auction.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusEnded, result.Status)
		require.Len(t, notifier.sent, sentAfterFirst)
	})
}

func TestFinalizeDue_SweepsEveryDueAuction(t *testing.T) {
	seller := uuid.New()
	due1 := activeAuction(seller, 10, nil)
	due1.EndTime = time.Now().UTC().Add(-time.Minute)
	due2 := activeAuction(seller, 20, nil)
	due2.EndTime = time.Now().UTC().Add(-time.Hour)
	live := activeAuction(seller, 30, nil)

	lifecycle, _, auctionRepo, _, _ := newLifecycleFixture(due1, due2, live)

	require.NoError(t, lifecycle.FinalizeDue(context.Background()))

	for _, tc := range []struct {
		id       uuid.UUID
		expected domain.AuctionStatus
	}{
		{due1.ID, domain.StatusEnded},
		{due2.ID, domain.StatusEnded},
		{live.ID, domain.StatusActive},
	} {
		stored, err := auctionRepo.GetByID(context.Background(), tc.id)
		require.NoError(t, err)
		require.Equal(t, tc.expected, stored.Status)
	}
}
