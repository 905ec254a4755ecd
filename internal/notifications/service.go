package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/demo-018/indiveg-hub/pkg/db/models"
	"github.com/demo-018/indiveg-hub/pkg/enums"
)

type Service struct {
	repo *Repo
	now  func() time.Time
}

func NewService(repo *Repo) (*Service, error) {
	if repo == nil {
		return nil, errors.New("notifications service: repo is required")
	}
	return &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]models.Notification, error) {
	return s.repo.ListByUser(ctx, userID, unreadOnly, limit)
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return s.repo.MarkRead(ctx, userID, notificationID, s.now())
}

func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, userID, s.now())
}

func (s *Service) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

// OrderPlaced records the confirmation shown in the user's inbox.
func (s *Service) OrderPlaced(ctx context.Context, order *models.Order) error {
	orderID := order.ID
	return s.repo.Create(ctx, &models.Notification{
		ID:      uuid.New(),
		UserID:  order.UserID,
		Kind:    enums.NotificationOrderUpdate,
		Title:   "Order placed",
		Body:    fmt.Sprintf("Your order of %d item(s) is placed. Estimated total ₹%s.", len(order.Items), order.Total.StringFixed(0)),
		OrderID: &orderID,
	})
}

// OrderStatusChanged records a fulfilment update.
func (s *Service) OrderStatusChanged(ctx context.Context, order *models.Order, from enums.OrderStatus) error {
	orderID := order.ID
	return s.repo.Create(ctx, &models.Notification{
		ID:      uuid.New(),
		UserID:  order.UserID,
		Kind:    enums.NotificationOrderUpdate,
		Title:   fmt.Sprintf("Order %s", order.Status),
		Body:    fmt.Sprintf("Your order moved from %s to %s.", from, order.Status),
		OrderID: &orderID,
	})
}
