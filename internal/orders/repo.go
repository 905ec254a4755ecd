package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/demo-018/indiveg-hub/pkg/db"
	"github.com/demo-018/indiveg-hub/pkg/db/models"
	"github.com/demo-018/indiveg-hub/pkg/enums"
	apperrors "github.com/demo-018/indiveg-hub/pkg/errors"
)

type Repo struct {
	client *db.Client
}

func NewRepo(client *db.Client) (*Repo, error) {
	if client == nil {
		return nil, errors.New("orders repo: db client is required")
	}
	return &Repo{client: client}, nil
}

func (r *Repo) Create(ctx context.Context, order *models.Order) error {
	return r.client.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	})
}

func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.client.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperrors.New(apperrors.CodeNotFound, "order not found")
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}

// ListByUser returns the user's orders newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := r.client.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("placed_at desc, created_at desc").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus moves an order to the next status, guarding the
// transition with the current status so concurrent updates cannot
// race past the state machine.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus) error {
	result := r.client.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return fmt.Errorf("update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.CodeStateConflict, "order status changed concurrently")
	}
	return nil
}

// Settle moves an order to packed and writes the weighed prices in
// the same transaction, under the same status guard as UpdateStatus.
func (r *Repo) Settle(ctx context.Context, order *models.Order, from, to enums.OrderStatus) error {
	return r.client.Transaction(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, from).
			Updates(map[string]any{
				"status":       to,
				"actual_total": order.ActualTotal,
			})
		if result.Error != nil {
			return fmt.Errorf("settle order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.New(apperrors.CodeStateConflict, "order status changed concurrently")
		}

		for _, item := range order.Items {
			if err := tx.Model(&models.OrderItem{}).
				Where("id = ?", item.ID).
				Update("price_at_order", item.PriceAtOrder).Error; err != nil {
				return fmt.Errorf("settle order item: %w", err)
			}
		}
		return nil
	})
}
