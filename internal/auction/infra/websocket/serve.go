package websocket

import (
	"context"

	shared "github.com/Shohjahon777/bid-master-university-sub000/internal/shared/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// RegisterRoutes mounts the live auction channel at /ws/auctions/:id.
func RegisterRoutes(app *fiber.App, hub *shared.Hub, handler *AuctionWSHandler) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/auctions/:id", websocket.New(func(conn *websocket.Conn) {
		auctionID := conn.Params("id")
		if _, err := uuid.Parse(auctionID); err != nil {
			_ = conn.Close()
			return
		}

		client := &shared.Client{
			Hub:       hub,
			Conn:      conn,
			Send:      make(chan []byte, 16),
			AuctionID: auctionID,
			ID:        uuid.NewString(),
		}
		hub.RegisterClient(client)

		ctx := context.Background()
		go client.WritePump(ctx)
		handler.SendInitialState(ctx, client)
		// the read pump owns this handler goroutine for the connection lifetime
		client.ReadPump(ctx)
	}))
}
