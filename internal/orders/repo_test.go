package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demo-018/indiveg-hub/pkg/db"
	"github.com/demo-018/indiveg-hub/pkg/db/models"
	"github.com/demo-018/indiveg-hub/pkg/enums"
	apperrors "github.com/demo-018/indiveg-hub/pkg/errors"
	"github.com/demo-018/indiveg-hub/pkg/types"
)

var repoTestSeq int

func newTestRepo(t *testing.T) *Repo {
	t.Helper()

	repoTestSeq++
	client, err := db.NewSQLite(fmt.Sprintf("orders-repo-test-%d", repoTestSeq))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	repo, err := NewRepo(client)
	require.NoError(t, err)
	return repo
}

func testOrder(userID uuid.UUID, placedAt time.Time) *models.Order {
	orderID := uuid.New()
	return &models.Order{
		ID:     orderID,
		UserID: userID,
		Status: enums.OrderPlaced,
		Items: []models.OrderItem{{
			ID:           uuid.New(),
			OrderID:      orderID,
			ProductID:    "spinach",
			Name:         "Fresh Spinach",
			Unit:         "kg",
			Quantity:     decimal.NewFromInt(2),
			EstimatedMin: decimal.NewFromInt(40),
			EstimatedMax: decimal.NewFromInt(50),
			PriceAtOrder: decimal.Zero,
		}},
		SubtotalMin: decimal.NewFromInt(40),
		SubtotalMax: decimal.NewFromInt(50),
		DeliveryFee: decimal.NewFromInt(40),
		Total:       decimal.NewFromInt(90),
		DeliveryAddress: types.AddressSnapshot{
			Street:  "123 MG Road",
			Area:    "Connaught Place",
			City:    "New Delhi",
			State:   "Delhi",
			Pincode: "110001",
		},
		DeliveryDate: placedAt.AddDate(0, 0, 1),
		PlacedAt:     placedAt,
	}
}

func TestCreateAndFind(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	userID := uuid.New()

	order := testOrder(userID, time.Now().UTC())
	require.NoError(t, repo.Create(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "spinach", found.Items[0].ProductID)
	assert.True(t, found.Total.Equal(decimal.NewFromInt(90)))
	assert.Equal(t, "New Delhi", found.DeliveryAddress.City)
}

func TestFindMissingOrder(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.FindByID(context.Background(), uuid.New())
	typed := apperrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperrors.CodeNotFound, typed.Code())
}

func TestListByUserNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	userID := uuid.New()
	base := time.Now().UTC().Add(-72 * time.Hour)

	oldest := testOrder(userID, base)
	middle := testOrder(userID, base.Add(24*time.Hour))
	newest := testOrder(userID, base.Add(48*time.Hour))
	other := testOrder(uuid.New(), base.Add(36*time.Hour))
	for _, o := range []*models.Order{oldest, newest, middle, other} {
		require.NoError(t, repo.Create(ctx, o))
	}

	listed, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, newest.ID, listed[0].ID)
	assert.Equal(t, middle.ID, listed[1].ID)
	assert.Equal(t, oldest.ID, listed[2].ID)
}

func TestSettleWritesPricesAndTotal(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	order := testOrder(uuid.New(), time.Now().UTC())
	require.NoError(t, repo.Create(ctx, order))
	require.NoError(t, repo.UpdateStatus(ctx, order.ID, enums.OrderPlaced, enums.OrderAccepted))

	order.Items[0].PriceAtOrder = decimal.NewFromInt(22)
	total := decimal.NewFromInt(84)
	order.ActualTotal = &total
	require.NoError(t, repo.Settle(ctx, order, enums.OrderAccepted, enums.OrderPacked))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderPacked, found.Status)
	require.Len(t, found.Items, 1)
	assert.True(t, found.Items[0].PriceAtOrder.Equal(decimal.NewFromInt(22)))
	require.NotNil(t, found.ActualTotal)
	assert.True(t, found.ActualTotal.Equal(decimal.NewFromInt(84)))

	// Settling from a stale status must fail.
	err = repo.Settle(ctx, order, enums.OrderAccepted, enums.OrderPacked)
	typed := apperrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperrors.CodeStateConflict, typed.Code())
}

func TestUpdateStatusGuardsCurrentStatus(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	order := testOrder(uuid.New(), time.Now().UTC())
	require.NoError(t, repo.Create(ctx, order))

	require.NoError(t, repo.UpdateStatus(ctx, order.ID, enums.OrderPlaced, enums.OrderAccepted))

	// A second transition from the stale status must fail.
	err := repo.UpdateStatus(ctx, order.ID, enums.OrderPlaced, enums.OrderCancelled)
	typed := apperrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperrors.CodeStateConflict, typed.Code())

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderAccepted, found.Status)
}
