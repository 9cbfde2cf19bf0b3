package cmd

import (
	"strconv"
	"strings"
	"time"

	httpin "orders/internal/adapters/in/http"
	"orders/internal/adapters/in/kafkabus"
	"orders/internal/adapters/out/interservice"
	"orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/core/application/auth"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/services"
	"orders/internal/core/ports"
	"orders/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultStaleOrderThreshold = 30 * time.Minute

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *zap.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	reader     ports.OrderRepository
	gateway    ports.PeerGateway
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *zap.Logger) CompositionRoot {
	gateway := interservice.NewHTTPPeerGateway(interservice.Config{
		ClientBaseURL:      cfg.ClientServiceURL,
		RestaurantBaseURL:  cfg.RestaurantServiceURL,
		DeliveryBaseURL:    cfg.DeliveryServiceURL,
		OptionValueBaseURL: cfg.OptionValueServiceURL,
		ClientSecret:       cfg.ClientSecret,
		RestaurateurSecret: cfg.RestaurateurSecret,
		DeliverySecret:     cfg.DeliverySecret,
	}, logger)

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		reader:     orderrepo.NewReadOnlyGormOrderRepository(gormDB),
		gateway:    gateway,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uowFactory, c.reader)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.uowFactory, c.reader)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.uowFactory, c.reader)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.uowFactory, c.reader)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateFindForDeliveryQueryHandler() queries.FindForDeliveryQueryHandler {
	return queries.NewFindForDeliveryQueryHandler(c.reader, services.NewGeoMatcher())
}

func (c *CompositionRoot) CreateGetOrderDetailsQueryHandler() queries.GetOrderDetailsQueryHandler {
	return queries.NewGetOrderDetailsQueryHandler(c.reader, c.gateway, c.logger)
}

func (c *CompositionRoot) CreateGetRestaurantStatsQueryHandler() queries.GetRestaurantStatsQueryHandler {
	return queries.NewGetRestaurantStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderInterserviceQueryHandler() queries.GetOrderInterserviceQueryHandler {
	return queries.NewGetOrderInterserviceQueryHandler(c.gormDB)
}

// CreateAuthMatrix builds the role policy evaluator. Admin and super-admin
// share the administrator secret and verify against the client service.
func (c *CompositionRoot) CreateAuthMatrix() *auth.Matrix {
	verifier := auth.NewHS256Verifier(map[auth.Role]string{
		auth.RoleClient:       c.cfg.ClientSecret,
		auth.RoleRestaurateur: c.cfg.RestaurateurSecret,
		auth.RoleDeliverer:    c.cfg.DeliverySecret,
		auth.RoleSuperAdmin:   c.cfg.AdministratorSecret,
		auth.RoleAdmin:        c.cfg.AdministratorSecret,
	})

	confirmer := interservice.NewHTTPUserConfirmer(interservice.ConfirmerConfig{
		BaseURLs: map[auth.Role]string{
			auth.RoleClient:       c.cfg.ClientServiceURL,
			auth.RoleRestaurateur: c.cfg.RestaurantServiceURL,
			auth.RoleDeliverer:    c.cfg.DeliveryServiceURL,
			auth.RoleSuperAdmin:   c.cfg.ClientServiceURL,
			auth.RoleAdmin:        c.cfg.ClientServiceURL,
		},
	})

	return auth.NewMatrix(verifier, confirmer, c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAcceptOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateListOrdersQueryHandler(),
		c.CreateFindForDeliveryQueryHandler(),
		c.CreateGetOrderDetailsQueryHandler(),
		c.CreateGetRestaurantStatsQueryHandler(),
		c.CreateGetOrderInterserviceQueryHandler(),
	)
}

func (c *CompositionRoot) CreateKafkaConsumer() *kafkabus.Consumer {
	kafkaCfg := c.kafkaConfig()

	createHandler := c.CreateCreateOrderCommandHandler()
	acceptHandler := c.CreateAcceptOrderCommandHandler()

	return kafkabus.NewConsumer(
		kafkaCfg,
		&createHandler,
		&acceptHandler,
		c.CreateGetOrderDetailsQueryHandler(),
		kafkabus.NewReplyWriter(kafkaCfg),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	threshold := defaultStaleOrderThreshold
	if minutes, err := strconv.Atoi(c.cfg.StaleOrderThresholdMinutes); err == nil && minutes > 0 {
		threshold = time.Duration(minutes) * time.Minute
	}

	return jobs.NewJobManager(c.reader, threshold, c.logger)
}

func (c *CompositionRoot) kafkaConfig() kafkabus.Config {
	return kafkabus.Config{
		Brokers:              strings.Split(c.cfg.KafkaBrokers, ","),
		GroupID:              c.cfg.KafkaConsumerGroup,
		DeliveryCreatedTopic: c.cfg.KafkaDeliveryCreatedTopic,
		ClientOrdersTopic:    c.cfg.KafkaClientOrdersTopic,
		DetailsRequestTopic:  c.cfg.KafkaDetailsRequestTopic,
		DetailsResponseTopic: c.cfg.KafkaDetailsResponseTopic,
	}
}
