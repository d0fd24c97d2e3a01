package websocket

import (
	"time"

	"github.com/Shohjahon777/bid-master-university-sub000/internal/auction/application"
	"github.com/google/uuid"
)

// MessageType identifies a websocket frame.
type MessageType string

const (
	MessageTypeClientBid           MessageType = "client_bid"            // client places a bid on the watched auction
	MessageTypeServerAuctionUpdate MessageType = "server_auction_update" // server pushes the fresh auction snapshot
	MessageTypeServerError         MessageType = "server_error"
	MessageTypeServerInitialState  MessageType = "server_initial_state" // first frame after connecting
)

// BaseMessage is the envelope shared by every frame.
type BaseMessage struct {
	Type MessageType `json:"type"`
}

// ClientBidMessage is a bid sent over the live channel.
type ClientBidMessage struct {
	BaseMessage
	Payload struct {
		UserID uuid.UUID `json:"user_id"`
		Amount float64   `json:"amount"`
	} `json:"payload"`
}

// ServerAuctionUpdateMessage carries the updated auction snapshot to all
// watchers after a bid, buy-now, cancel or finalization.
type ServerAuctionUpdateMessage struct {
	BaseMessage
	Payload struct {
		AuctionID     uuid.UUID  `json:"auction_id"`
		CurrentPrice  float64    `json:"current_price"`
		MinimumBid    float64    `json:"minimum_bid"`
		EndTime       time.Time  `json:"end_time"`
		Status        string     `json:"status"`
		DisplayStatus string     `json:"display_status"`
		WinnerID      *uuid.UUID `json:"winner_id,omitempty"`
	} `json:"payload"`
}

type ServerErrorMessage struct {
	BaseMessage
	Payload struct {
		Error string `json:"error"`
	} `json:"payload"`
}

// ServerInitialStateMessage delivers the full auction state on connect.
type ServerInitialStateMessage struct {
	BaseMessage
	Payload *application.AuctionStateDTO `json:"payload"`
}

func newUpdateMessage(state *application.AuctionStateDTO) ServerAuctionUpdateMessage {
	msg := ServerAuctionUpdateMessage{BaseMessage: BaseMessage{Type: MessageTypeServerAuctionUpdate}}
	msg.Payload.AuctionID = state.ID
	msg.Payload.CurrentPrice = state.CurrentPrice
	msg.Payload.MinimumBid = state.MinimumBid
	msg.Payload.EndTime = state.EndTime
	msg.Payload.Status = state.Status
	msg.Payload.DisplayStatus = string(state.DisplayStatus)
	msg.Payload.WinnerID = state.WinnerID
	return msg
}
