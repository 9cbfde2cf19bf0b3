package queries_test

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

type MockPeerGateway struct{ mock.Mock }

func (m *MockPeerGateway) FetchClient(ctx context.Context, clientID int64) (*ports.PeerClient, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.PeerClient), args.Error(1)
}

func (m *MockPeerGateway) FetchRestaurant(ctx context.Context, restaurantID int64) (*ports.PeerRestaurant, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.PeerRestaurant), args.Error(1)
}

func (m *MockPeerGateway) FetchDeliverer(ctx context.Context, delivererID int64) (*ports.PeerDeliverer, error) {
	args := m.Called(ctx, delivererID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.PeerDeliverer), args.Error(1)
}

func (m *MockPeerGateway) FetchMenuItem(ctx context.Context, menuItemID int64) (*ports.PeerMenuItem, error) {
	args := m.Called(ctx, menuItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.PeerMenuItem), args.Error(1)
}

func (m *MockPeerGateway) FetchMenuItemOptionValues(
	ctx context.Context,
	optionValueIDs []int64,
) []ports.PeerMenuItemOptionValue {
	args := m.Called(ctx, optionValueIDs)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]ports.PeerMenuItemOptionValue)
}

func (m *MockPeerGateway) FetchDeliveryByOrderID(ctx context.Context, orderID int64) (*ports.PeerDelivery, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.PeerDelivery), args.Error(1)
}

// awaitingOrderAt builds an unassigned order awaiting pickup at the given
// coordinates; location may be nil for orders without coordinates.
func awaitingOrderAt(t *testing.T, id int64, location *kernel.GeoPoint) *order.Order {
	t.Helper()

	item, err := order.NewItem(1, 2, decimal.RequireFromString("10.50"), []int64{4, 5}, nil)
	require.NoError(t, err)
	second, err := order.NewItem(2, 1, decimal.RequireFromString("4.00"), nil, nil)
	require.NoError(t, err)

	now := time.Now().UTC()
	return order.RestoreOrder(
		id, 1, 1, nil, order.AwaitingDeliverer, nil,
		order.Charges{
			Subtotal:       decimal.RequireFromString("25.00"),
			DeliveryCosts:  decimal.RequireFromString("4.50"),
			ServiceCharge:  decimal.RequireFromString("2.00"),
			GlobalDiscount: decimal.Zero,
		},
		order.Address{
			StreetNumber: "12",
			Street:       "Rue des Gourmands",
			City:         "Wavrin",
			PostalCode:   "59136",
			Country:      "France",
			Location:     location,
		},
		[]order.Item{item, second},
		now, now,
	)
}

func geoPoint(t *testing.T, lat, long float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, long)
	require.NoError(t, err)
	return point
}
