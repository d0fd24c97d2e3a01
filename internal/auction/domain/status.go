package domain

import (
	"time"

	"github.com/google/uuid"
)

// BidStatus is the user-facing view of a bidder's standing on one auction.
type BidStatus string

const (
	BidStatusWinning BidStatus = "winning"
	BidStatusOutbid  BidStatus = "outbid"
	BidStatusWon     BidStatus = "won"
	BidStatusLost    BidStatus = "lost"
)

// DisplayStatus is the auction status shown on listings.
type DisplayStatus string

const (
	DisplayActive    DisplayStatus = "Active"
	DisplayEnded     DisplayStatus = "Ended"
	DisplaySold      DisplayStatus = "Sold"
	DisplayCancelled DisplayStatus = "Cancelled"
)

// DeriveBidStatus computes a bidder's standing from their own highest bid
// amount and the auction snapshot. Pure and side-effect free; read skew is
// acceptable, the result is always a best-effort snapshot.
//
// "winning" is determined by numeric equality against the current price
// rather than by leader identity. The current price is only ever set to an
// accepted bid's exact amount and each accepted bid must strictly exceed the
// price it observed, so two users can never tie on the stored price.
func DeriveBidStatus(userHighestBid float64, a *Auction, userID uuid.UUID, now time.Time) BidStatus {
	if a.Status == StatusEnded || !now.Before(a.EndTime) {
		if a.WinnerID != nil && *a.WinnerID == userID {
			return BidStatusWon
		}
		return BidStatusLost
	}
	if a.Status == StatusActive && !now.Before(a.StartTime) {
		if userHighestBid == a.CurrentPrice {
			return BidStatusWinning
		}
		return BidStatusOutbid
	}
	// cancelled or not yet started
	return BidStatusLost
}

// AuctionDisplayStatus maps an auction snapshot to its listing label:
// Cancelled beats everything, then Sold/Ended for finished-or-expired
// auctions (Sold iff a winner is recorded), otherwise Active.
func AuctionDisplayStatus(a *Auction, now time.Time) DisplayStatus {
	if a.Status == StatusCancelled {
		return DisplayCancelled
	}
	if a.Status == StatusEnded || !now.Before(a.EndTime) {
		if a.WinnerID != nil {
			return DisplaySold
		}
		return DisplayEnded
	}
	return DisplayActive
}
