package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/demo-018/indiveg-hub/internal/cart"
	"github.com/demo-018/indiveg-hub/pkg/config"
	"github.com/demo-018/indiveg-hub/pkg/db/models"
	"github.com/demo-018/indiveg-hub/pkg/enums"
	apperrors "github.com/demo-018/indiveg-hub/pkg/errors"
	"github.com/demo-018/indiveg-hub/pkg/logger"
	"github.com/demo-018/indiveg-hub/pkg/types"
)

type orderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus) error
	Settle(ctx context.Context, order *models.Order, from, to enums.OrderStatus) error
}

type cartAccess interface {
	Get(ctx context.Context, userID string) (*cart.Cart, error)
	Clear(ctx context.Context, userID string) error
}

type addressResolver interface {
	Profile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	DefaultAddress(ctx context.Context, userID uuid.UUID) (*types.AddressSnapshot, error)
	SnapshotByID(ctx context.Context, userID, addressID uuid.UUID) (*types.AddressSnapshot, error)
}

type notifier interface {
	OrderPlaced(ctx context.Context, order *models.Order) error
	OrderStatusChanged(ctx context.Context, order *models.Order, from enums.OrderStatus) error
}

type counters interface {
	OrderPlaced()
	OrderCancelled()
}

type Service struct {
	repo     orderStore
	carts    cartAccess
	address  addressResolver
	notify   notifier
	metrics  counters
	checkout config.Checkout
	log      *logger.Logger
	now      func() time.Time
}

func NewService(
	repo orderStore,
	carts cartAccess,
	address addressResolver,
	notify notifier,
	metrics counters,
	checkout config.Checkout,
	log *logger.Logger,
) (*Service, error) {
	if repo == nil || carts == nil || address == nil || notify == nil || metrics == nil || log == nil {
		return nil, errors.New("orders service: missing dependency")
	}
	return &Service{
		repo:     repo,
		carts:    carts,
		address:  address,
		notify:   notify,
		metrics:  metrics,
		checkout: checkout,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// DeliveryOptions lists the selectable delivery days, starting after
// the configured lead time.
func (s *Service) DeliveryOptions() []DeliveryOption {
	today := s.now().Truncate(24 * time.Hour)
	tomorrow := today.AddDate(0, 0, 1)
	options := make([]DeliveryOption, 0, s.checkout.DeliveryWindowDays)
	for i := 0; i < s.checkout.DeliveryWindowDays; i++ {
		date := today.AddDate(0, 0, s.checkout.DeliveryLeadDays+i)
		label := date.Format("Mon, 2 Jan")
		if date.Equal(tomorrow) {
			label = "Tomorrow"
		}
		options = append(options, DeliveryOption{Date: date, Label: label})
	}
	return options
}

// Checkout converts the cart into a placed order. Prices are frozen as
// the estimated range quoted right now; the settled price stays zero
// until the order is weighed and packed. The cart is cleared on success.
func (s *Service) Checkout(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*models.Order, error) {
	userCart, err := s.carts.Get(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	if len(userCart.Lines) == 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "cart is empty")
	}

	deliveryDate, err := s.parseDeliveryDate(input.DeliveryDate)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.resolveAddress(ctx, userID, input.AddressID)
	if err != nil {
		return nil, err
	}

	contactMobile := input.ContactMobile
	if contactMobile == "" {
		user, err := s.address.Profile(ctx, userID)
		if err != nil {
			return nil, err
		}
		contactMobile = user.Mobile
	}

	orderID := uuid.New()
	items := make([]models.OrderItem, 0, len(userCart.Lines))
	subtotal := types.PriceRange{}
	for _, line := range userCart.Lines {
		items = append(items, models.OrderItem{
			ID:           uuid.New(),
			OrderID:      orderID,
			ProductID:    line.Product.ID,
			Name:         line.Product.Name,
			HindiName:    line.Product.HindiName,
			ImageURL:     line.Product.ImageURL,
			Unit:         line.Product.Unit,
			Quantity:     line.Quantity,
			EstimatedMin: line.Estimated.Min,
			EstimatedMax: line.Estimated.Max,
			PriceAtOrder: decimal.Zero,
		})
		subtotal = subtotal.Add(line.Estimated)
	}

	deliveryFee := decimal.NewFromInt(s.checkout.DeliveryFeeRupees)
	order := &models.Order{
		ID:              orderID,
		UserID:          userID,
		Status:          enums.OrderPlaced,
		Items:           items,
		SubtotalMin:     subtotal.Min,
		SubtotalMax:     subtotal.Max,
		DeliveryFee:     deliveryFee,
		Total:           subtotal.Max.Add(deliveryFee),
		ContactMobile:   contactMobile,
		DeliveryAddress: *snapshot,
		DeliveryDate:    deliveryDate,
		DeliverySlot:    input.DeliverySlot,
		PlacedAt:        s.now(),
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	if err := s.carts.Clear(ctx, userID.String()); err != nil {
		// The order exists; a stale cart is recoverable, losing the
		// order is not.
		s.log.Error(ctx, "clear cart after checkout", err)
	}
	if err := s.notify.OrderPlaced(ctx, order); err != nil {
		s.log.Error(ctx, "notify order placed", err)
	}
	s.metrics.OrderPlaced()

	s.log.Info(s.log.WithField(ctx, "order_id", order.ID.String()), "order placed")
	return order, nil
}

func (s *Service) parseDeliveryDate(raw string) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return time.Time{}, apperrors.New(apperrors.CodeValidation, "invalid delivery date")
	}

	today := s.now().Truncate(24 * time.Hour)
	earliest := today.AddDate(0, 0, s.checkout.DeliveryLeadDays)
	latest := today.AddDate(0, 0, s.checkout.DeliveryLeadDays+s.checkout.DeliveryWindowDays-1)
	if date.Before(earliest) || date.After(latest) {
		return time.Time{}, apperrors.New(apperrors.CodeValidation, "delivery date outside available window").
			WithDetails(map[string]string{
				"earliest": earliest.Format("2006-01-02"),
				"latest":   latest.Format("2006-01-02"),
			})
	}
	return date, nil
}

func (s *Service) resolveAddress(ctx context.Context, userID uuid.UUID, addressID string) (*types.AddressSnapshot, error) {
	if addressID != "" {
		id, err := uuid.Parse(addressID)
		if err != nil {
			return nil, apperrors.New(apperrors.CodeValidation, "invalid address id")
		}
		return s.address.SnapshotByID(ctx, userID, id)
	}

	snapshot, err := s.address.DefaultAddress(ctx, userID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, apperrors.New(apperrors.CodeValidation, "no delivery address on file")
	}
	return snapshot, nil
}

// ListByUser returns the user's order history, newest first.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get returns an order, hiding other users' orders behind not-found
// unless the caller is an admin.
func (s *Service) Get(ctx context.Context, userID uuid.UUID, role enums.UserRole, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID && role != enums.RoleAdmin {
		return nil, apperrors.New(apperrors.CodeNotFound, "order not found")
	}
	return order, nil
}

// Cancel lets the owner cancel an order that has not yet been packed.
// Cancelling an already cancelled order is a no-op; any other state
// reports a state conflict.
func (s *Service) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.New(apperrors.CodeNotFound, "order not found")
	}

	if order.Status == enums.OrderCancelled {
		return order, nil
	}
	if !order.Status.Cancellable() {
		return nil, apperrors.New(apperrors.CodeStateConflict,
			fmt.Sprintf("order in status %q cannot be cancelled", order.Status))
	}

	from := order.Status
	if err := s.repo.UpdateStatus(ctx, orderID, from, enums.OrderCancelled); err != nil {
		return nil, err
	}
	order.Status = enums.OrderCancelled

	if err := s.notify.OrderStatusChanged(ctx, order, from); err != nil {
		s.log.Error(ctx, "notify order cancelled", err)
	}
	s.metrics.OrderCancelled()

	s.log.Info(s.log.WithField(ctx, "order_id", orderID.String()), "order cancelled")
	return order, nil
}

// UpdateStatus is the fulfilment-side transition, restricted to the
// moves the state machine allows. Moving to packed may settle the
// order: per-unit weighed prices replace the zero placeholders and
// the actual total is fixed.
func (s *Service) UpdateStatus(ctx context.Context, orderID uuid.UUID, input UpdateStatusInput) (*models.Order, error) {
	target, err := enums.ParseOrderStatus(input.Status)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeValidation, err.Error())
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == target {
		return order, nil
	}
	if !order.Status.CanTransitionTo(target) {
		return nil, apperrors.New(apperrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %q to %q", order.Status, target))
	}

	from := order.Status
	if target == enums.OrderPacked && len(input.ItemPrices) > 0 {
		if err := s.settlePrices(order, input.ItemPrices); err != nil {
			return nil, err
		}
		if err := s.repo.Settle(ctx, order, from, target); err != nil {
			return nil, err
		}
	} else if err := s.repo.UpdateStatus(ctx, orderID, from, target); err != nil {
		return nil, err
	}
	order.Status = target

	if err := s.notify.OrderStatusChanged(ctx, order, from); err != nil {
		s.log.Error(ctx, "notify status change", err)
	}

	s.log.Info(s.log.WithFields(ctx, map[string]any{
		"order_id": orderID.String(),
		"from":     from.String(),
		"to":       target.String(),
	}), "order status updated")
	return order, nil
}

// settlePrices applies the weighed per-unit prices onto the order's
// items and derives the actual total. Every priced product must be on
// the order; unpriced items keep their zero placeholder.
func (s *Service) settlePrices(order *models.Order, prices map[string]decimal.Decimal) error {
	onOrder := make(map[string]bool, len(order.Items))
	for _, item := range order.Items {
		onOrder[item.ProductID] = true
	}
	for productID, price := range prices {
		if !onOrder[productID] {
			return apperrors.New(apperrors.CodeValidation,
				fmt.Sprintf("product %q is not on this order", productID))
		}
		if price.Sign() < 0 {
			return apperrors.New(apperrors.CodeValidation, "settled price cannot be negative")
		}
	}

	settled := decimal.Zero
	for i := range order.Items {
		if price, ok := prices[order.Items[i].ProductID]; ok {
			order.Items[i].PriceAtOrder = price
		}
		settled = settled.Add(order.Items[i].PriceAtOrder.Mul(order.Items[i].Quantity))
	}
	total := settled.Add(order.DeliveryFee)
	order.ActualTotal = &total
	return nil
}
