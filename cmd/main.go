package main

import (
	"context"
	"os"
	"time"

	auctionapp "github.com/Shohjahon777/bid-master-university-sub000/internal/auction/application"
	auctionhttp "github.com/Shohjahon777/bid-master-university-sub000/internal/auction/infra/http"
	auctionpg "github.com/Shohjahon777/bid-master-university-sub000/internal/auction/infra/repository/postgres"
	auctionws "github.com/Shohjahon777/bid-master-university-sub000/internal/auction/infra/websocket"
	notifapp "github.com/Shohjahon777/bid-master-university-sub000/internal/notification/application"
	notifpg "github.com/Shohjahon777/bid-master-university-sub000/internal/notification/infra/repository/postgres"
	"github.com/Shohjahon777/bid-master-university-sub000/internal/shared/db"
	"github.com/Shohjahon777/bid-master-university-sub000/internal/shared/db/migrations"
	"github.com/Shohjahon777/bid-master-university-sub000/internal/shared/httpserver"
	"github.com/Shohjahon777/bid-master-university-sub000/internal/shared/logger"
	sharedws "github.com/Shohjahon777/bid-master-university-sub000/internal/shared/websocket"
	"go.uber.org/zap"
)

const sweepInterval = 30 * time.Second

func main() {
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting auction marketplace server...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("Running database migrations...")
	if err := migrations.RunMigrations(); err != nil {
		log.Fatal("Database migration failed", zap.Error(err))
	}

	pool, err := db.GetPostgresDBPool(ctx)
	if err != nil {
		log.Fatal("Database connection failed", zap.Error(err))
	}
	defer pool.Close()

	// repositories
	auctionRepo := auctionpg.NewAuctionRepository(pool)
	bidRepo := auctionpg.NewBidRepository(pool)
	notifRepo := notifpg.NewNotificationRepository(pool)

	// notification dispatch (post-commit, best-effort)
	dispatcher := notifapp.NewDispatcher(notifRepo)

	// live update hub
	hub := sharedws.NewHub()
	go hub.Run(ctx)
	publisher := auctionws.NewHubPublisher(hub)

	// use cases + service facade
	placeBidUC := auctionapp.NewPlaceBidUseCase(pool, auctionRepo, bidRepo, dispatcher, publisher)
	buyNowUC := auctionapp.NewBuyNowUseCase(pool, auctionRepo, bidRepo, dispatcher, publisher)
	lifecycleUC := auctionapp.NewLifecycleUseCase(pool, auctionRepo, bidRepo, dispatcher, publisher)
	stateUC := auctionapp.NewGetAuctionStateUseCase(auctionRepo, bidRepo)
	service := auctionapp.NewAuctionService(placeBidUC, buyNowUC, lifecycleUC, stateUC)

	// finalization sweep for auctions past their end time
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := service.FinalizeDue(ctx); err != nil {
					log.Error("Finalization sweep failed", zap.Error(err))
				}
			}
		}
	}()

	// websocket intake
	wsHandler := auctionws.NewAuctionWSHandler(service, hub)
	go wsHandler.ListenForMessages(ctx)

	// HTTP surface
	server := httpserver.NewServer()
	auctionhttp.NewAuctionHandler(service, dispatcher).RegisterRoutes(server.App())
	auctionws.RegisterRoutes(server.App(), hub, wsHandler)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":9000"
	}
	if err := server.Start(addr); err != nil {
		log.Fatal("HTTP server failed", zap.Error(err))
	}
}
