package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"orders/cmd"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/adapters/out/postgres/statusrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	gormDB, err := openDatabase(configs)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = prepareSchema(ctx, gormDB); err != nil {
		logger.Fatal("schema preparation failed", zap.Error(err))
	}

	root := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		logger.Fatal("job startup failed", zap.Error(err))
	}
	defer jobManager.StopAll()

	consumer := root.CreateKafkaConsumer()
	go consumer.Run(ctx)

	startWebServer(ctx, root, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	// Missing .env is fine in containers; variables come from the runtime.
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:   os.Getenv("HTTP_PORT"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  os.Getenv("DB_SSLMODE"),

		ClientSecret:        os.Getenv("CLIENT_SECRET"),
		RestaurateurSecret:  os.Getenv("RESTAURATEUR_SECRET"),
		DeliverySecret:      os.Getenv("DELIVERY_SECRET"),
		AdministratorSecret: os.Getenv("ADMINISTRATOR_SECRET"),

		ClientServiceURL:      os.Getenv("CLIENT_SERVICE_URL"),
		RestaurantServiceURL:  os.Getenv("RESTAURANT_SERVICE_URL"),
		DeliveryServiceURL:    os.Getenv("DELIVERY_SERVICE_URL"),
		OptionValueServiceURL: os.Getenv("MENU_ITEM_OPTION_VALUE_URL"),

		KafkaBrokers:              os.Getenv("KAFKA_BROKERS"),
		KafkaConsumerGroup:        os.Getenv("KAFKA_CONSUMER_GROUP"),
		KafkaDeliveryCreatedTopic: os.Getenv("KAFKA_DELIVERY_CREATED_TOPIC"),
		KafkaClientOrdersTopic:    os.Getenv("KAFKA_CLIENT_ORDERS_TOPIC"),
		KafkaDetailsRequestTopic:  os.Getenv("KAFKA_DETAILS_REQUEST_TOPIC"),
		KafkaDetailsResponseTopic: os.Getenv("KAFKA_DETAILS_RESPONSE_TOPIC"),

		StaleOrderThresholdMinutes: os.Getenv("STALE_ORDER_THRESHOLD_MINUTES"),
	}
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func prepareSchema(ctx context.Context, gormDB *gorm.DB) error {
	if err := gormDB.WithContext(ctx).AutoMigrate(
		&statusrepo.StatusDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
	); err != nil {
		return err
	}

	return statusrepo.Seed(ctx, gormDB)
}

func startWebServer(ctx context.Context, root cmd.CompositionRoot, port string, logger *zap.Logger) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := root.CreateHTTPServer()
	server.RegisterRoutes(e, root.CreateAuthMatrix())

	go func() {
		<-ctx.Done()
		if err := e.Shutdown(context.Background()); err != nil {
			logger.Error("http shutdown failed", zap.Error(err))
		}
	}()

	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("http server stopped", zap.Error(err))
	}
}
