// Package kafkabus is the event ingress adapter. It consumes order commands
// from the broker and answers detail requests on a reply topic, feeding the
// same command and query handlers the HTTP surface uses.
package kafkabus

import (
	"context"
	"errors"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Config carries the broker addresses and the topic names the consumer
// subscribes to.
type Config struct {
	Brokers []string
	GroupID string

	DeliveryCreatedTopic string
	ClientOrdersTopic    string
	DetailsRequestTopic  string
	DetailsResponseTopic string
}

type orderCreator interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
}

type orderAccepter interface {
	Handle(ctx context.Context, cmd commands.AcceptOrderCommand) (*order.Order, error)
}

type detailsReader interface {
	Handle(ctx context.Context, query queries.GetOrderDetailsQuery) (*queries.GetOrderDetailsQueryResponse, error)
}

type replyWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Consumer reads the order topics and dispatches each message to the
// matching use case. Messages that cannot be parsed or handled are logged
// and dropped; the broker offset always advances.
type Consumer struct {
	cfg     Config
	creator orderCreator
	accept  orderAccepter
	details detailsReader
	replies replyWriter
	logger  *zap.Logger
}

// NewConsumer wires the consumer over the application handlers and the
// reply writer for the detail request/response channel.
func NewConsumer(
	cfg Config,
	creator orderCreator,
	accept orderAccepter,
	details detailsReader,
	replies replyWriter,
	logger *zap.Logger,
) *Consumer {
	return &Consumer{
		cfg:     cfg,
		creator: creator,
		accept:  accept,
		details: details,
		replies: replies,
		logger:  logger.With(zap.String("component", "kafka_consumer")),
	}
}

// NewReplyWriter builds the writer for the detail response topic.
func NewReplyWriter(cfg Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Topic:    cfg.DetailsResponseTopic,
		Balancer: &kafka.LeastBytes{},
	}
}

// Run consumes the three inbound topics until the context is cancelled.
// Each topic gets its own reader so a slow handler on one topic does not
// stall the others.
func (c *Consumer) Run(ctx context.Context) {
	topics := []struct {
		name   string
		handle func(ctx context.Context, msg kafka.Message)
	}{
		{name: c.cfg.DeliveryCreatedTopic, handle: c.handleDeliveryCreated},
		{name: c.cfg.ClientOrdersTopic, handle: c.handleClientOrder},
		{name: c.cfg.DetailsRequestTopic, handle: c.handleDetailsRequest},
	}

	done := make(chan struct{}, len(topics))
	for _, topic := range topics {
		go func(name string, handle func(ctx context.Context, msg kafka.Message)) {
			defer func() { done <- struct{}{} }()
			c.consumeTopic(ctx, name, handle)
		}(topic.name, topic.handle)
	}

	for range topics {
		<-done
	}
}

func (c *Consumer) consumeTopic(
	ctx context.Context,
	topic string,
	handle func(ctx context.Context, msg kafka.Message),
) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: c.cfg.Brokers,
		GroupID: c.cfg.GroupID,
		Topic:   topic,
	})
	defer func() { _ = reader.Close() }()

	c.logger.Info("consuming topic", zap.String("topic", topic))

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			c.logger.Error("read failed",
				zap.String("topic", topic), zap.Error(err))
			return
		}

		handle(ctx, msg)
	}
}
