package websocket

import (
	"context"
	"encoding/json"

	"github.com/Shohjahon777/bid-master-university-sub000/internal/auction/application"
	"github.com/Shohjahon777/bid-master-university-sub000/internal/shared/logger"
	"github.com/Shohjahon777/bid-master-university-sub000/internal/shared/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// AuctionWSHandler dispatches inbound frames from the hub to the auction
// service and pushes the resulting updates back to watchers.
type AuctionWSHandler struct {
	service application.AuctionService
	hub     *websocket.Hub
}

func NewAuctionWSHandler(service application.AuctionService, hub *websocket.Hub) *AuctionWSHandler {
	return &AuctionWSHandler{service: service, hub: hub}
}

// ListenForMessages consumes the hub's inbound channel until ctx is cancelled.
func (h *AuctionWSHandler) ListenForMessages(ctx context.Context) {
	log.Info("AuctionWSHandler listening for inbound messages")
	for {
		select {
		case <-ctx.Done():
			log.Info("AuctionWSHandler stopped")
			return
		case msg := <-h.hub.InboundMessages:
			go h.processMessage(ctx, msg.Client, msg.Data)
		}
	}
}

func (h *AuctionWSHandler) processMessage(ctx context.Context, client *websocket.Client, data []byte) {
	var baseMsg BaseMessage
	if err := json.Unmarshal(data, &baseMsg); err != nil {
		h.sendErrorToClient(client, "invalid message format")
		return
	}
	switch baseMsg.Type {
	case MessageTypeClientBid:
		h.handleClientBid(ctx, client, data)
	default:
		h.sendErrorToClient(client, "unknown message type")
	}
}

func (h *AuctionWSHandler) handleClientBid(ctx context.Context, client *websocket.Client, data []byte) {
	var bidMsg ClientBidMessage
	if err := json.Unmarshal(data, &bidMsg); err != nil {
		h.sendErrorToClient(client, "invalid bid message format")
		return
	}

	auctionID, err := uuid.Parse(client.AuctionID)
	if err != nil {
		h.sendErrorToClient(client, "invalid auction id")
		return
	}

	cmd := application.PlaceBidCommand{
		AuctionID: auctionID,
		UserID:    bidMsg.Payload.UserID,
		Amount:    bidMsg.Payload.Amount,
	}
	// the use case broadcasts the update itself through the hub publisher
	if _, err := h.service.PlaceBid(ctx, cmd); err != nil {
		h.sendErrorToClient(client, err.Error())
	}
}

// SendInitialState pushes the current auction snapshot to one freshly
// connected client.
func (h *AuctionWSHandler) SendInitialState(ctx context.Context, client *websocket.Client) {
	auctionID, err := uuid.Parse(client.AuctionID)
	if err != nil {
		h.sendErrorToClient(client, "invalid auction id")
		return
	}
	state, err := h.service.GetAuctionState(ctx, auctionID, nil)
	if err != nil {
		h.sendErrorToClient(client, "failed to load auction state")
		return
	}
	msg := ServerInitialStateMessage{
		BaseMessage: BaseMessage{Type: MessageTypeServerInitialState},
		Payload:     state,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error("failed to marshal initial state", zap.Error(err))
		return
	}
	select {
	case client.Send <- data:
	default:
		log.Warn("client send channel full, dropping initial state",
			zap.String("clientID", client.ID))
	}
}

func (h *AuctionWSHandler) sendErrorToClient(client *websocket.Client, errorMessage string) {
	errMsg := ServerErrorMessage{BaseMessage: BaseMessage{Type: MessageTypeServerError}}
	errMsg.Payload.Error = errorMessage
	data, err := json.Marshal(errMsg)
	if err != nil {
		log.Error("failed to marshal ServerErrorMessage", zap.Error(err))
		return
	}
	select {
	case client.Send <- data:
	default:
		log.Warn("client send channel full or closed, could not send error msg",
			zap.String("clientID", client.ID))
	}
}
