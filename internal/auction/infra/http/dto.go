package http

import "time"

// CreateAuctionRequest is the listing form a seller submits.
type CreateAuctionRequest struct {
	Title         string    `json:"title" validate:"required,max=255"`
	Description   string    `json:"description" validate:"max=5000"`
	Category      string    `json:"category" validate:"max=100"`
	Condition     string    `json:"condition" validate:"max=50"`
	StartingPrice float64   `json:"starting_price" validate:"required,gt=0"`
	BuyNowPrice   *float64  `json:"buy_now_price" validate:"omitempty,gt=0"`
	EndTime       time.Time `json:"end_time" validate:"required"`
}

// PlaceBidRequest is a bid submission; the bidder comes from the
// authenticated identity header, the auction from the path.
type PlaceBidRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
