package kafkabus

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockOrderCreator struct {
	mock.Mock
}

func (m *MockOrderCreator) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderAccepter struct {
	mock.Mock
}

func (m *MockOrderAccepter) Handle(ctx context.Context, cmd commands.AcceptOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockDetailsReader struct {
	mock.Mock
}

func (m *MockDetailsReader) Handle(
	ctx context.Context, query queries.GetOrderDetailsQuery,
) (*queries.GetOrderDetailsQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.GetOrderDetailsQueryResponse), args.Error(1)
}

type MockReplyWriter struct {
	mock.Mock
}

func (m *MockReplyWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func newTestConsumer(
	creator *MockOrderCreator,
	accept *MockOrderAccepter,
	details *MockDetailsReader,
	replies *MockReplyWriter,
) *Consumer {
	return NewConsumer(Config{}, creator, accept, details, replies, zap.NewNop())
}

func restoredOrder(t *testing.T, id int64) *order.Order {
	t.Helper()

	item, err := order.NewItem(4, 2, decimal.RequireFromString("10.50"), nil, nil)
	require.NoError(t, err)

	now := time.Now().UTC()
	return order.RestoreOrder(
		id, 12, 3, nil, order.AwaitingRestaurant, nil,
		order.Charges{
			Subtotal:      decimal.RequireFromString("21.00"),
			DeliveryCosts: decimal.RequireFromString("3.00"),
			ServiceCharge: decimal.RequireFromString("1.50"),
		},
		order.Address{
			StreetNumber: "12", Street: "Rue Nationale", City: "Lille",
			PostalCode: "59000", Country: "France",
		},
		[]order.Item{item},
		now, now,
	)
}

func TestHandleDeliveryCreated(t *testing.T) {
	t.Run("assigns the announced deliverer", func(t *testing.T) {
		accept := &MockOrderAccepter{}
		accept.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AcceptOrderCommand) bool {
			return cmd.OrderID() == 42 && cmd.DelivererID() == 7
		})).Return(restoredOrder(t, 42), nil)

		consumer := newTestConsumer(&MockOrderCreator{}, accept, &MockDetailsReader{}, &MockReplyWriter{})
		consumer.handleDeliveryCreated(context.Background(), kafka.Message{
			Value: []byte(`{"orderId": 42, "delivererId": 7}`),
		})

		accept.AssertExpectations(t)
	})

	t.Run("drops message missing delivererId", func(t *testing.T) {
		accept := &MockOrderAccepter{}
		consumer := newTestConsumer(&MockOrderCreator{}, accept, &MockDetailsReader{}, &MockReplyWriter{})

		consumer.handleDeliveryCreated(context.Background(), kafka.Message{
			Value: []byte(`{"orderId": 42}`),
		})

		accept.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("drops malformed payload", func(t *testing.T) {
		accept := &MockOrderAccepter{}
		consumer := newTestConsumer(&MockOrderCreator{}, accept, &MockDetailsReader{}, &MockReplyWriter{})

		consumer.handleDeliveryCreated(context.Background(), kafka.Message{
			Value: []byte(`not json`),
		})

		accept.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("handler failure only logs", func(t *testing.T) {
		accept := &MockOrderAccepter{}
		accept.On("Handle", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		consumer := newTestConsumer(&MockOrderCreator{}, accept, &MockDetailsReader{}, &MockReplyWriter{})
		consumer.handleDeliveryCreated(context.Background(), kafka.Message{
			Value: []byte(`{"orderId": 42, "delivererId": 7}`),
		})

		accept.AssertExpectations(t)
	})
}

func TestHandleClientOrder(t *testing.T) {
	payload := `{
		"client_id": 12,
		"restaurant_id": 3,
		"subtotal": 21.00,
		"delivery_costs": 3.00,
		"service_charge": 1.50,
		"street_number": "12",
		"street": "Rue Nationale",
		"city": "Lille",
		"postal_code": "59000",
		"country": "France",
		"items": [
			{"menu_item_id": 4, "quantity": 2, "unit_price": 10.50}
		]
	}`

	t.Run("creates an order from the draft", func(t *testing.T) {
		creator := &MockOrderCreator{}
		creator.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
			return cmd.ClientID() == 12 && cmd.RestaurantID() == 3 &&
				cmd.Status() == order.AwaitingRestaurant && len(cmd.Items()) == 1
		})).Return(restoredOrder(t, 101), nil)

		consumer := newTestConsumer(creator, &MockOrderAccepter{}, &MockDetailsReader{}, &MockReplyWriter{})
		consumer.handleClientOrder(context.Background(), kafka.Message{Value: []byte(payload)})

		creator.AssertExpectations(t)
	})

	t.Run("drops draft without items", func(t *testing.T) {
		creator := &MockOrderCreator{}
		consumer := newTestConsumer(creator, &MockOrderAccepter{}, &MockDetailsReader{}, &MockReplyWriter{})

		consumer.handleClientOrder(context.Background(), kafka.Message{
			Value: []byte(`{"client_id": 12, "restaurant_id": 3, "items": []}`),
		})

		creator.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestHandleDetailsRequest(t *testing.T) {
	details := func(orderID int64) *queries.GetOrderDetailsQueryResponse {
		return &queries.GetOrderDetailsQueryResponse{
			ID:           orderID,
			ClientID:     12,
			RestaurantID: 3,
			StatusID:     int64(order.AwaitingDeliverer),
			Subtotal:     decimal.RequireFromString("21.00"),
		}
	}

	t.Run("replies with the correlation id echoed", func(t *testing.T) {
		reader := &MockDetailsReader{}
		reader.On("Handle", mock.Anything, mock.MatchedBy(func(query queries.GetOrderDetailsQuery) bool {
			return query.OrderID() == 42
		})).Return(details(42), nil)

		replies := &MockReplyWriter{}
		replies.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
			if len(msgs) != 1 {
				return false
			}
			if headerValue(msgs[0], correlationHeader) != "req-7" {
				return false
			}

			var reply detailsReply
			if err := json.Unmarshal(msgs[0].Value, &reply); err != nil {
				return false
			}
			return reply.ID == 42 && reply.Subtotal == "21.00"
		})).Return(nil)

		consumer := newTestConsumer(&MockOrderCreator{}, &MockOrderAccepter{}, reader, replies)
		consumer.handleDetailsRequest(context.Background(), kafka.Message{
			Value: []byte(`{"id": 42}`),
			Headers: []kafka.Header{
				{Key: correlationHeader, Value: []byte("req-7")},
			},
		})

		reader.AssertExpectations(t)
		replies.AssertExpectations(t)
	})

	t.Run("drops request without correlation id", func(t *testing.T) {
		reader := &MockDetailsReader{}
		replies := &MockReplyWriter{}

		consumer := newTestConsumer(&MockOrderCreator{}, &MockOrderAccepter{}, reader, replies)
		consumer.handleDetailsRequest(context.Background(), kafka.Message{
			Value: []byte(`{"id": 42}`),
		})

		reader.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		replies.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
	})

	t.Run("no reply when the order is missing", func(t *testing.T) {
		reader := &MockDetailsReader{}
		reader.On("Handle", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		replies := &MockReplyWriter{}
		consumer := newTestConsumer(&MockOrderCreator{}, &MockOrderAccepter{}, reader, replies)

		consumer.handleDetailsRequest(context.Background(), kafka.Message{
			Value: []byte(`{"id": 42}`),
			Headers: []kafka.Header{
				{Key: correlationHeader, Value: []byte("req-8")},
			},
		})

		replies.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
	})
}
