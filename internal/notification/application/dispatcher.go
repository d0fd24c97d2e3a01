package application

import (
	"context"
	"fmt"

	"github.com/Shohjahon777/bid-master-university-sub000/internal/notification/domain"
	"github.com/Shohjahon777/bid-master-university-sub000/internal/shared/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// Dispatcher implements domain.Notifier on top of the notification store.
// It is the post-commit half of every auction operation: failures here are
// logged and swallowed so they can never fail a committed bid or buy-now.
type Dispatcher struct {
	store domain.Store
}

func NewDispatcher(store domain.Store) *Dispatcher {
	return &Dispatcher{store: store}
}

// Notify persists one notification. The error return exists for callers that
// want to log it themselves; Dispatcher already logs the failure.
func (d *Dispatcher) Notify(ctx context.Context, userID uuid.UUID, t domain.Type, message, link string) error {
	n := domain.New(userID, t, message, link)
	if err := d.store.Save(ctx, n); err != nil {
		log.Warn("notification dispatch failed",
			zap.String("userID", userID.String()),
			zap.String("type", string(t)),
			zap.Error(err),
		)
		return fmt.Errorf("dispatcher: failed to save notification for user %s: %w", userID, err)
	}
	return nil
}

// Inbox returns a user's notifications, newest first.
func (d *Dispatcher) Inbox(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	return d.store.ListByUser(ctx, userID)
}

// MarkRead flags one of the user's notifications as read.
func (d *Dispatcher) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return d.store.MarkRead(ctx, id, userID)
}
