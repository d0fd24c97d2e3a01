package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAuctionNotFound      = errors.New("auction not found")
	ErrAuctionNotActive     = errors.New("auction is not active")
	ErrSellerCannotBid      = errors.New("seller cannot bid on own auction")
	ErrBidTooLow            = errors.New("bid amount is too low")
	ErrBuyNowUnavailable    = errors.New("buy-now is not available for this auction")
	ErrNotOwner             = errors.New("only the seller may perform this action")
	ErrAuctionStillActive   = errors.New("auction is still active")
	ErrInvalidStartingPrice = errors.New("starting price must be greater than zero")
	ErrInvalidBuyNowPrice   = errors.New("buy-now price must be greater than the starting price")
	ErrInvalidEndTime       = errors.New("end time must be after start time")
)

// BidTooLowError carries the current price a rejected bid was measured
// against, so callers can re-render a corrected minimum. It matches
// ErrBidTooLow under errors.Is.
type BidTooLowError struct {
	CurrentPrice float64
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid amount is too low: current price is %.2f", e.CurrentPrice)
}

func (e *BidTooLowError) Is(target error) bool {
	return target == ErrBidTooLow
}
