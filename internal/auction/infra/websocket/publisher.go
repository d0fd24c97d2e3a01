package websocket

import (
	"encoding/json"

	"github.com/Shohjahon777/bid-master-university-sub000/internal/auction/application"
	"github.com/Shohjahon777/bid-master-university-sub000/internal/shared/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HubPublisher implements application.UpdatePublisher over the shared hub, so
// every committed state change reaches live watchers regardless of whether it
// arrived over HTTP or the websocket channel.
type HubPublisher struct {
	hub *websocket.Hub
}

func NewHubPublisher(hub *websocket.Hub) *HubPublisher {
	return &HubPublisher{hub: hub}
}

func (p *HubPublisher) PublishAuctionUpdate(auctionID uuid.UUID, state *application.AuctionStateDTO) {
	data, err := json.Marshal(newUpdateMessage(state))
	if err != nil {
		log.Error("failed to marshal auction update",
			zap.String("auctionID", auctionID.String()),
			zap.Error(err),
		)
		return
	}
	p.hub.BroadcastToAuction(auctionID.String(), data)
}
