package http

import (
	"errors"

	"github.com/Shohjahon777/bid-master-university-sub000/internal/auction/application"
	"github.com/Shohjahon777/bid-master-university-sub000/internal/auction/domain"
	notifapp "github.com/Shohjahon777/bid-master-university-sub000/internal/notification/application"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// headerUserID carries the authenticated user identity, injected by the auth
// layer upstream of this service.
const headerUserID = "X-User-ID"

var validate = validator.New()

// AuctionHandler exposes the auction context over REST.
type AuctionHandler struct {
	service    application.AuctionService
	dispatcher *notifapp.Dispatcher
}

func NewAuctionHandler(service application.AuctionService, dispatcher *notifapp.Dispatcher) *AuctionHandler {
	return &AuctionHandler{service: service, dispatcher: dispatcher}
}

// RegisterRoutes mounts the REST surface under /api.
func (h *AuctionHandler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Post("/auctions", h.CreateAuction)
	api.Get("/auctions", h.ListAuctions)
	api.Get("/auctions/:id", h.GetAuction)
	api.Delete("/auctions/:id", h.DeleteAuction)
	api.Post("/auctions/:id/bids", h.PlaceBid)
	api.Post("/auctions/:id/buy-now", h.BuyNow)
	api.Post("/auctions/:id/cancel", h.CancelAuction)
	api.Get("/notifications", h.ListNotifications)
	api.Post("/notifications/:id/read", h.MarkNotificationRead)
}

func currentUser(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Get(headerUserID))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "missing or invalid user identity")
	}
	return id, nil
}

func auctionIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid auction id")
	}
	return id, nil
}

// statusFor maps domain failures onto HTTP statuses. Everything in the
// taxonomy is an expected, user-facing error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrAuctionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrNotOwner), errors.Is(err, domain.ErrSellerCannotBid):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrAuctionNotActive),
		errors.Is(err, domain.ErrAuctionStillActive),
		errors.Is(err, domain.ErrBidTooLow):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrBuyNowUnavailable),
		errors.Is(err, domain.ErrInvalidStartingPrice),
		errors.Is(err, domain.ErrInvalidBuyNowPrice),
		errors.Is(err, domain.ErrInvalidEndTime):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "internal error"
	}
	// surface the domain cause, not the wrapped chain
	var tooLow *domain.BidTooLowError
	if errors.As(err, &tooLow) {
		msg = tooLow.Error()
	}
	return c.Status(status).JSON(ErrorResponse{Error: msg})
}

func (h *AuctionHandler) CreateAuction(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req CreateAuctionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	auction, err := h.service.CreateAuction(c.Context(), application.CreateAuctionCommand{
		SellerID:      userID,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Condition:     req.Condition,
		StartingPrice: req.StartingPrice,
		BuyNowPrice:   req.BuyNowPrice,
		EndTime:       req.EndTime,
	})
	if err != nil {
		return respondError(c, err)
	}

	state, err := h.service.GetAuctionState(c.Context(), auction.ID, nil)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(state)
}

func (h *AuctionHandler) ListAuctions(c *fiber.Ctx) error {
	states, err := h.service.ListActiveAuctions(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(states)
}

func (h *AuctionHandler) GetAuction(c *fiber.Ctx) error {
	auctionID, err := auctionIDParam(c)
	if err != nil {
		return err
	}

	var viewerID *uuid.UUID
	if id, err := uuid.Parse(c.Get(headerUserID)); err == nil {
		viewerID = &id
	}

	state, err := h.service.GetAuctionState(c.Context(), auctionID, viewerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (h *AuctionHandler) PlaceBid(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	auctionID, err := auctionIDParam(c)
	if err != nil {
		return err
	}

	var req PlaceBidRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	bid, err := h.service.PlaceBid(c.Context(), application.PlaceBidCommand{
		AuctionID: auctionID,
		UserID:    userID,
		Amount:    req.Amount,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(bid)
}

func (h *AuctionHandler) BuyNow(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	auctionID, err := auctionIDParam(c)
	if err != nil {
		return err
	}

	bid, err := h.service.BuyNow(c.Context(), application.BuyNowCommand{
		AuctionID: auctionID,
		UserID:    userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(bid)
}

func (h *AuctionHandler) CancelAuction(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	auctionID, err := auctionIDParam(c)
	if err != nil {
		return err
	}

	if err := h.service.CancelAuction(c.Context(), auctionID, userID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuctionHandler) DeleteAuction(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	auctionID, err := auctionIDParam(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteAuction(c.Context(), auctionID, userID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuctionHandler) ListNotifications(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	notifications, err := h.dispatcher.Inbox(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(notifications)
}

func (h *AuctionHandler) MarkNotificationRead(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	notificationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid notification id")
	}
	if err := h.dispatcher.MarkRead(c.Context(), notificationID, userID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
