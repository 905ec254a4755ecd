package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demo-018/indiveg-hub/internal/cart"
	"github.com/demo-018/indiveg-hub/pkg/config"
	"github.com/demo-018/indiveg-hub/pkg/db/models"
	"github.com/demo-018/indiveg-hub/pkg/enums"
	apperrors "github.com/demo-018/indiveg-hub/pkg/errors"
	"github.com/demo-018/indiveg-hub/pkg/logger"
	"github.com/demo-018/indiveg-hub/pkg/types"
)

type stubOrderStore struct {
	orders map[uuid.UUID]*models.Order
}

func newStubOrderStore() *stubOrderStore {
	return &stubOrderStore{orders: map[uuid.UUID]*models.Order{}}
}

func (s *stubOrderStore) Create(_ context.Context, order *models.Order) error {
	copied := *order
	s.orders[order.ID] = &copied
	return nil
}

func (s *stubOrderStore) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotFound, "order not found")
	}
	copied := *order
	return &copied, nil
}

func (s *stubOrderStore) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Order, error) {
	var out []models.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (s *stubOrderStore) UpdateStatus(_ context.Context, id uuid.UUID, from, to enums.OrderStatus) error {
	order, ok := s.orders[id]
	if !ok || order.Status != from {
		return apperrors.New(apperrors.CodeStateConflict, "order status changed concurrently")
	}
	order.Status = to
	return nil
}

func (s *stubOrderStore) Settle(_ context.Context, settled *models.Order, from, to enums.OrderStatus) error {
	order, ok := s.orders[settled.ID]
	if !ok || order.Status != from {
		return apperrors.New(apperrors.CodeStateConflict, "order status changed concurrently")
	}
	copied := *settled
	copied.Status = to
	s.orders[settled.ID] = &copied
	return nil
}

type stubCarts struct {
	cart    *cart.Cart
	cleared bool
}

func (s *stubCarts) Get(_ context.Context, _ string) (*cart.Cart, error) {
	return s.cart, nil
}

func (s *stubCarts) Clear(_ context.Context, _ string) error {
	s.cleared = true
	return nil
}

type stubAddresses struct{}

func (stubAddresses) Profile(_ context.Context, userID uuid.UUID) (*models.User, error) {
	return &models.User{ID: userID, Mobile: "9876543210"}, nil
}

func (stubAddresses) DefaultAddress(_ context.Context, _ uuid.UUID) (*types.AddressSnapshot, error) {
	return &types.AddressSnapshot{
		Street:  "123 MG Road",
		Area:    "Connaught Place",
		City:    "New Delhi",
		State:   "Delhi",
		Pincode: "110001",
	}, nil
}

func (stubAddresses) SnapshotByID(_ context.Context, _, _ uuid.UUID) (*types.AddressSnapshot, error) {
	return nil, apperrors.New(apperrors.CodeNotFound, "address not found")
}

type stubNotifier struct {
	placed  int
	changed int
}

func (s *stubNotifier) OrderPlaced(_ context.Context, _ *models.Order) error {
	s.placed++
	return nil
}

func (s *stubNotifier) OrderStatusChanged(_ context.Context, _ *models.Order, _ enums.OrderStatus) error {
	s.changed++
	return nil
}

type stubCounters struct {
	placed    int
	cancelled int
}

func (s *stubCounters) OrderPlaced()    { s.placed++ }
func (s *stubCounters) OrderCancelled() { s.cancelled++ }

type fixture struct {
	svc      *Service
	store    *stubOrderStore
	carts    *stubCarts
	notifier *stubNotifier
	counters *stubCounters
	now      time.Time
}

func demoCart() *cart.Cart {
	spinach := cart.Line{
		Product: models.Product{
			ID: "spinach", Name: "Fresh Spinach", Unit: "kg",
			MinPrice: decimal.NewFromInt(20), MaxPrice: decimal.NewFromInt(25), InStock: true,
		},
		Quantity:  decimal.NewFromInt(2),
		Estimated: types.PriceRange{Min: decimal.NewFromInt(40), Max: decimal.NewFromInt(50)},
	}
	tomato := cart.Line{
		Product: models.Product{
			ID: "tomato", Name: "Fresh Tomatoes", Unit: "kg",
			MinPrice: decimal.NewFromInt(30), MaxPrice: decimal.NewFromInt(40), InStock: true,
		},
		Quantity:  decimal.NewFromInt(1),
		Estimated: types.PriceRange{Min: decimal.NewFromInt(30), Max: decimal.NewFromInt(40)},
	}
	return &cart.Cart{
		Lines:      []cart.Line{spinach, tomato},
		TotalItems: decimal.NewFromInt(3),
		Estimated:  types.PriceRange{Min: decimal.NewFromInt(70), Max: decimal.NewFromInt(90)},
	}
}

func newFixture(t *testing.T, c *cart.Cart) *fixture {
	t.Helper()

	store := newStubOrderStore()
	carts := &stubCarts{cart: c}
	notifier := &stubNotifier{}
	counters := &stubCounters{}
	log := logger.New(logger.Options{ServiceName: "test", Output: testWriter{}})

	svc, err := NewService(store, carts, stubAddresses{}, notifier, counters, config.Checkout{
		DeliveryFeeRupees:  40,
		DeliveryLeadDays:   1,
		DeliveryWindowDays: 4,
	}, log)
	require.NoError(t, err)

	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	return &fixture{svc: svc, store: store, carts: carts, notifier: notifier, counters: counters, now: now}
}

type testWriter struct{}

func (testWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestCheckoutCreatesPlacedOrder(t *testing.T) {
	f := newFixture(t, demoCart())
	userID := uuid.New()

	order, err := f.svc.Checkout(context.Background(), userID, CheckoutInput{DeliveryDate: "2026-08-29"})
	require.NoError(t, err)

	assert.Equal(t, enums.OrderPlaced, order.Status)
	assert.True(t, order.SubtotalMin.Equal(decimal.NewFromInt(70)))
	assert.True(t, order.SubtotalMax.Equal(decimal.NewFromInt(90)))
	assert.True(t, order.DeliveryFee.Equal(decimal.NewFromInt(40)))
	assert.True(t, order.Total.Equal(decimal.NewFromInt(130)))
	require.Len(t, order.Items, 2)
	for _, item := range order.Items {
		assert.True(t, item.PriceAtOrder.IsZero())
	}
	assert.Equal(t, "New Delhi", order.DeliveryAddress.City)
	assert.Equal(t, "9876543210", order.ContactMobile)
	assert.Nil(t, order.ActualTotal)

	assert.True(t, f.carts.cleared)
	assert.Equal(t, 1, f.notifier.placed)
	assert.Equal(t, 1, f.counters.placed)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t, &cart.Cart{})

	_, err := f.svc.Checkout(context.Background(), uuid.New(), CheckoutInput{DeliveryDate: "2026-08-29"})
	typed := apperrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperrors.CodeValidation, typed.Code())
	assert.False(t, f.carts.cleared)
}

func TestCheckoutDeliveryDateBounds(t *testing.T) {
	f := newFixture(t, demoCart())
	userID := uuid.New()

	for _, date := range []string{"2026-08-28", "2026-09-02", "not-a-date"} {
		_, err := f.svc.Checkout(context.Background(), userID, CheckoutInput{DeliveryDate: date})
		typed := apperrors.As(err)
		require.NotNil(t, typed, "date %s", date)
		assert.Equal(t, apperrors.CodeValidation, typed.Code(), "date %s", date)
	}

	// The last day of the window is still allowed.
	_, err := f.svc.Checkout(context.Background(), userID, CheckoutInput{DeliveryDate: "2026-09-01"})
	require.NoError(t, err)
}

func TestDeliveryOptionsWindow(t *testing.T) {
	f := newFixture(t, demoCart())

	options := f.svc.DeliveryOptions()
	require.Len(t, options, 4)
	assert.Equal(t, "Tomorrow", options[0].Label)
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), options[0].Date)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), options[3].Date)
}

func TestDeliveryOptionsLongerLeadSkipsTomorrowLabel(t *testing.T) {
	f := newFixture(t, demoCart())
	f.svc.checkout.DeliveryLeadDays = 2

	options := f.svc.DeliveryOptions()
	require.Len(t, options, 4)
	assert.Equal(t, "Sun, 30 Aug", options[0].Label)
	for _, option := range options {
		assert.NotEqual(t, "Tomorrow", option.Label)
	}
}

func TestCancelPlacedOrder(t *testing.T) {
	f := newFixture(t, demoCart())
	userID := uuid.New()

	order, err := f.svc.Checkout(context.Background(), userID, CheckoutInput{DeliveryDate: "2026-08-29"})
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(context.Background(), userID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderCancelled, cancelled.Status)
	assert.Equal(t, 1, f.counters.cancelled)
	assert.Equal(t, 1, f.notifier.changed)
}

func TestCancelIsIdempotent(t *testing.T) {
	f := newFixture(t, demoCart())
	userID := uuid.New()

	order, err := f.svc.Checkout(context.Background(), userID, CheckoutInput{DeliveryDate: "2026-08-29"})
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), userID, order.ID)
	require.NoError(t, err)
	again, err := f.svc.Cancel(context.Background(), userID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderCancelled, again.Status)
	assert.Equal(t, 1, f.counters.cancelled)
}

func TestCancelPackedOrderConflicts(t *testing.T) {
	f := newFixture(t, demoCart())
	userID := uuid.New()

	order, err := f.svc.Checkout(context.Background(), userID, CheckoutInput{DeliveryDate: "2026-08-29"})
	require.NoError(t, err)
	f.store.orders[order.ID].Status = enums.OrderPacked

	_, err = f.svc.Cancel(context.Background(), userID, order.ID)
	typed := apperrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperrors.CodeStateConflict, typed.Code())
}

func TestCancelSomeoneElsesOrder(t *testing.T) {
	f := newFixture(t, demoCart())
	owner := uuid.New()

	order, err := f.svc.Checkout(context.Background(), owner, CheckoutInput{DeliveryDate: "2026-08-29"})
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), uuid.New(), order.ID)
	typed := apperrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperrors.CodeNotFound, typed.Code())
}

func TestGetHidesForeignOrdersExceptAdmin(t *testing.T) {
	f := newFixture(t, demoCart())
	owner := uuid.New()

	order, err := f.svc.Checkout(context.Background(), owner, CheckoutInput{DeliveryDate: "2026-08-29"})
	require.NoError(t, err)

	_, err = f.svc.Get(context.Background(), uuid.New(), enums.RoleCustomer, order.ID)
	typed := apperrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperrors.CodeNotFound, typed.Code())

	got, err := f.svc.Get(context.Background(), uuid.New(), enums.RoleAdmin, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestUpdateStatusFollowsStateMachine(t *testing.T) {
	f := newFixture(t, demoCart())
	userID := uuid.New()

	order, err := f.svc.Checkout(context.Background(), userID, CheckoutInput{DeliveryDate: "2026-08-29"})
	require.NoError(t, err)

	for _, next := range []enums.OrderStatus{enums.OrderAccepted, enums.OrderPacked, enums.OrderDelivered} {
		updated, uerr := f.svc.UpdateStatus(context.Background(), order.ID, UpdateStatusInput{Status: next.String()})
		require.NoError(t, uerr)
		assert.Equal(t, next, updated.Status)
	}

	// Delivered is terminal.
	_, err = f.svc.UpdateStatus(context.Background(), order.ID, UpdateStatusInput{Status: enums.OrderCancelled.String()})
	typed := apperrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperrors.CodeStateConflict, typed.Code())
}

func TestUpdateStatusSkippingStepConflicts(t *testing.T) {
	f := newFixture(t, demoCart())
	userID := uuid.New()

	order, err := f.svc.Checkout(context.Background(), userID, CheckoutInput{DeliveryDate: "2026-08-29"})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), order.ID, UpdateStatusInput{Status: "delivered"})
	typed := apperrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperrors.CodeStateConflict, typed.Code())
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	f := newFixture(t, demoCart())

	order, err := f.svc.Checkout(context.Background(), uuid.New(), CheckoutInput{DeliveryDate: "2026-08-29"})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), order.ID, UpdateStatusInput{Status: "shipped"})
	typed := apperrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperrors.CodeValidation, typed.Code())
}

func TestPackingSettlesWeighedPrices(t *testing.T) {
	f := newFixture(t, demoCart())
	userID := uuid.New()

	order, err := f.svc.Checkout(context.Background(), userID, CheckoutInput{DeliveryDate: "2026-08-29"})
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(context.Background(), order.ID, UpdateStatusInput{Status: "accepted"})
	require.NoError(t, err)

	packed, err := f.svc.UpdateStatus(context.Background(), order.ID, UpdateStatusInput{
		Status: "packed",
		ItemPrices: map[string]decimal.Decimal{
			"spinach": decimal.NewFromInt(22),
			"tomato":  decimal.NewFromInt(35),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, enums.OrderPacked, packed.Status)
	byProduct := map[string]models.OrderItem{}
	for _, item := range packed.Items {
		byProduct[item.ProductID] = item
	}
	assert.True(t, byProduct["spinach"].PriceAtOrder.Equal(decimal.NewFromInt(22)))
	assert.True(t, byProduct["tomato"].PriceAtOrder.Equal(decimal.NewFromInt(35)))

	// 22*2 + 35*1 + 40 delivery fee.
	require.NotNil(t, packed.ActualTotal)
	assert.True(t, packed.ActualTotal.Equal(decimal.NewFromInt(119)))

	stored := f.store.orders[order.ID]
	require.NotNil(t, stored.ActualTotal)
	assert.True(t, stored.ActualTotal.Equal(decimal.NewFromInt(119)))
}

func TestPackingRejectsForeignProductPrice(t *testing.T) {
	f := newFixture(t, demoCart())
	userID := uuid.New()

	order, err := f.svc.Checkout(context.Background(), userID, CheckoutInput{DeliveryDate: "2026-08-29"})
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(context.Background(), order.ID, UpdateStatusInput{Status: "accepted"})
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(context.Background(), order.ID, UpdateStatusInput{
		Status:     "packed",
		ItemPrices: map[string]decimal.Decimal{"onion": decimal.NewFromInt(30)},
	})
	typed := apperrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperrors.CodeValidation, typed.Code())

	_, err = f.svc.UpdateStatus(context.Background(), order.ID, UpdateStatusInput{
		Status:     "packed",
		ItemPrices: map[string]decimal.Decimal{"spinach": decimal.NewFromInt(-1)},
	})
	typed = apperrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperrors.CodeValidation, typed.Code())
}
