package commands_test

import (
	"context"
	"testing"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListAwaitingPickup(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockStatusCatalog struct{ mock.Mock }

func (m *MockStatusCatalog) Exists(ctx context.Context, id order.Status) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockStatusCatalog) Get(ctx context.Context, id order.Status) (ports.StatusRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.StatusRecord), args.Error(1)
}

type MockUnitOfWork struct{ mock.Mock }

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUnitOfWork) StatusCatalog() ports.StatusCatalog {
	args := m.Called()
	return args.Get(0).(ports.StatusCatalog)
}

type MockUnitOfWorkFactory struct{ mock.Mock }

func (m *MockUnitOfWorkFactory) Create() ports.UnitOfWork {
	args := m.Called()
	return args.Get(0).(ports.UnitOfWork)
}

func testItems(t *testing.T) []order.Item {
	t.Helper()
	first, err := order.NewItem(1, 2, decimal.RequireFromString("10.50"), []int64{1, 2}, nil)
	require.NoError(t, err)
	second, err := order.NewItem(2, 1, decimal.RequireFromString("4.00"), nil, nil)
	require.NoError(t, err)
	return []order.Item{first, second}
}

func testAddress(t *testing.T) order.Address {
	t.Helper()
	loc, err := kernel.NewGeoPoint(50.6292, 3.0573)
	require.NoError(t, err)
	return order.Address{
		StreetNumber: "12",
		Street:       "Rue des Gourmands",
		City:         "Wavrin",
		PostalCode:   "59136",
		Country:      "France",
		Location:     &loc,
	}
}

func testCharges(subtotal string) order.Charges {
	return order.Charges{
		Subtotal:       decimal.RequireFromString(subtotal),
		DeliveryCosts:  decimal.RequireFromString("4.50"),
		ServiceCharge:  decimal.RequireFromString("2.00"),
		GlobalDiscount: decimal.Zero,
	}
}

// storedOrder builds a persisted-looking aggregate in the given status.
func storedOrder(t *testing.T, id int64, status order.Status, delivererID *int64) *order.Order {
	t.Helper()
	now := time.Now().UTC()
	return order.RestoreOrder(
		id, 1, 1, delivererID, status, nil,
		testCharges("25.00"), testAddress(t), testItems(t),
		now, now,
	)
}
