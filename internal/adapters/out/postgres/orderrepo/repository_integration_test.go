package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/adapters/out/postgres/statusrepo"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(int64, any) {}

type OrderRepositoryTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository
}

func (s *OrderRepositoryTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	s.Require().NoError(err)
	s.db = db

	err = db.AutoMigrate(&statusrepo.StatusDTO{}, &orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{})
	s.Require().NoError(err)

	err = statusrepo.Seed(ctx, db)
	s.Require().NoError(err)

	s.repo = orderrepo.NewGormOrderRepository(db, noopTracker{})
}

func (s *OrderRepositoryTestSuite) TearDownSuite() {
	if s.container != nil {
		err := s.container.Terminate(context.Background())
		s.Require().NoError(err)
	}
}

func (s *OrderRepositoryTestSuite) SetupTest() {
	err := s.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	s.Require().NoError(err)
}

func (s *OrderRepositoryTestSuite) newOrder(status order.Status, location *kernel.GeoPoint) *order.Order {
	item, err := order.NewItem(4, 2, decimal.RequireFromString("10.50"), []int64{1, 2}, nil)
	s.Require().NoError(err)
	second, err := order.NewItem(9, 1, decimal.RequireFromString("4.00"), nil, nil)
	s.Require().NoError(err)

	aggregate, err := order.NewOrder(
		12, 3, status, nil,
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
	)
	s.Require().NoError(err)
	return aggregate
}

func (s *OrderRepositoryTestSuite) TestAdd_AssignsGeneratedIDs() {
	ctx := context.Background()
	loc, err := kernel.NewGeoPoint(50.6292, 3.0573)
	s.Require().NoError(err)
	aggregate := s.newOrder(order.AwaitingRestaurant, &loc)

	err = s.repo.Add(ctx, aggregate)

	s.Require().NoError(err)
	s.Positive(aggregate.ID())
}

func (s *OrderRepositoryTestSuite) TestAddAndGet_RoundTripsAggregate() {
	ctx := context.Background()
	loc, err := kernel.NewGeoPoint(50.6292, 3.0573)
	s.Require().NoError(err)
	aggregate := s.newOrder(order.AwaitingRestaurant, &loc)

	err = s.repo.Add(ctx, aggregate)
	s.Require().NoError(err)

	loaded, err := s.repo.Get(ctx, aggregate.ID())

	s.Require().NoError(err)
	s.Equal(aggregate.ID(), loaded.ID())
	s.Equal(int64(12), loaded.ClientID())
	s.Equal(int64(3), loaded.RestaurantID())
	s.Nil(loaded.DelivererID())
	s.Equal(order.AwaitingRestaurant, loaded.Status())
	s.True(loaded.Charges().Subtotal.Equal(decimal.RequireFromString("25.00")))
	s.True(loaded.Charges().GlobalDiscount.IsZero())
	s.Require().NotNil(loaded.Address().Location)
	s.InDelta(50.6292, loaded.Address().Location.Lat(), 1e-9)

	s.Require().Len(loaded.Items(), 2)
	s.Equal(int64(4), loaded.Items()[0].MenuItemID())
	s.Equal(2, loaded.Items()[0].Quantity())
	s.Equal([]int64{1, 2}, loaded.Items()[0].SelectedOptionValueIDs())
	s.Empty(loaded.Items()[1].SelectedOptionValueIDs())
}

func (s *OrderRepositoryTestSuite) TestGet_MissingOrder_ReturnsNotFound() {
	_, err := s.repo.Get(context.Background(), 987654)

	s.Require().Error(err)
	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *OrderRepositoryTestSuite) TestAddAndGet_OrderWithoutCoordinates() {
	ctx := context.Background()
	aggregate := s.newOrder(order.AwaitingRestaurant, nil)

	err := s.repo.Add(ctx, aggregate)
	s.Require().NoError(err)

	loaded, err := s.repo.Get(ctx, aggregate.ID())

	s.Require().NoError(err)
	s.Nil(loaded.Address().Location)
}

func (s *OrderRepositoryTestSuite) TestUpdate_PersistsAcceptance() {
	ctx := context.Background()
	loc, err := kernel.NewGeoPoint(50.6292, 3.0573)
	s.Require().NoError(err)
	aggregate := s.newOrder(order.AwaitingDeliverer, &loc)

	err = s.repo.Add(ctx, aggregate)
	s.Require().NoError(err)

	changed, err := aggregate.Accept(7)
	s.Require().NoError(err)
	s.True(changed)

	err = s.repo.Update(ctx, aggregate)
	s.Require().NoError(err)

	loaded, err := s.repo.Get(ctx, aggregate.ID())
	s.Require().NoError(err)
	s.Equal(order.InPreparation, loaded.Status())
	s.Require().NotNil(loaded.DelivererID())
	s.Equal(int64(7), *loaded.DelivererID())
}

func (s *OrderRepositoryTestSuite) TestUpdate_DetachesDelivererBelowThreshold() {
	ctx := context.Background()
	aggregate := s.newOrder(order.AwaitingDeliverer, nil)
	err := s.repo.Add(ctx, aggregate)
	s.Require().NoError(err)

	changed, err := aggregate.Accept(7)
	s.Require().NoError(err)
	s.True(changed)
	err = s.repo.Update(ctx, aggregate)
	s.Require().NoError(err)

	err = aggregate.ChangeStatus(order.AwaitingDeliverer)
	s.Require().NoError(err)
	err = s.repo.Update(ctx, aggregate)
	s.Require().NoError(err)

	loaded, err := s.repo.Get(ctx, aggregate.ID())
	s.Require().NoError(err)
	s.Equal(order.AwaitingDeliverer, loaded.Status())
	s.Nil(loaded.DelivererID())
}

func (s *OrderRepositoryTestSuite) TestUpdate_MissingOrder_ReturnsNotFound() {
	aggregate := s.newOrder(order.AwaitingRestaurant, nil)
	// Never added; the aggregate has no id and matches no row.
	err := s.repo.Update(context.Background(), aggregate)

	s.Require().Error(err)
	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *OrderRepositoryTestSuite) TestListAwaitingPickup_FiltersAndOrders() {
	ctx := context.Background()

	awaitingOld := s.newOrder(order.AwaitingDeliverer, nil)
	s.Require().NoError(s.repo.Add(ctx, awaitingOld))

	fresh := s.newOrder(order.AwaitingRestaurant, nil)
	s.Require().NoError(s.repo.Add(ctx, fresh))

	accepted := s.newOrder(order.AwaitingDeliverer, nil)
	s.Require().NoError(s.repo.Add(ctx, accepted))
	_, err := accepted.Accept(7)
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Update(ctx, accepted))

	awaitingNew := s.newOrder(order.AwaitingDeliverer, nil)
	s.Require().NoError(s.repo.Add(ctx, awaitingNew))

	result, err := s.repo.ListAwaitingPickup(ctx)

	s.Require().NoError(err)
	s.Require().Len(result, 2)
	// Newest first.
	s.Equal(awaitingNew.ID(), result[0].ID())
	s.Equal(awaitingOld.ID(), result[1].ID())
}

func (s *OrderRepositoryTestSuite) TestUnitOfWork_RollbackDiscardsChanges() {
	ctx := context.Background()
	factory := postgres.NewGormUnitOfWorkFactory(s.db)

	uow := factory.Create()
	s.Require().NoError(uow.Begin(ctx))

	aggregate := s.newOrder(order.AwaitingRestaurant, nil)
	s.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	s.Require().NoError(uow.Rollback(ctx))

	_, err := s.repo.Get(ctx, aggregate.ID())
	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *OrderRepositoryTestSuite) TestUnitOfWork_RollbackAfterCommitIsNoop() {
	ctx := context.Background()
	factory := postgres.NewGormUnitOfWorkFactory(s.db)

	uow := factory.Create()
	s.Require().NoError(uow.Begin(ctx))

	aggregate := s.newOrder(order.AwaitingRestaurant, nil)
	s.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	s.Require().NoError(uow.Commit(ctx))
	s.Require().NoError(uow.Rollback(ctx))

	loaded, err := s.repo.Get(ctx, aggregate.ID())
	s.Require().NoError(err)
	s.Equal(aggregate.ID(), loaded.ID())
}

func (s *OrderRepositoryTestSuite) TestStatusCatalog_SeededRows() {
	ctx := context.Background()
	catalog := statusrepo.NewGormStatusCatalog(s.db)

	for _, status := range []order.Status{
		order.AwaitingRestaurant,
		order.AwaitingDeliverer,
		order.InPreparation,
		order.InDelivery,
		order.Delivered,
		order.RefusedByRestaurant,
		order.Cancelled,
	} {
		exists, err := catalog.Exists(ctx, status)
		s.Require().NoError(err)
		s.True(exists, "status %d should be seeded", int64(status))
	}

	exists, err := catalog.Exists(ctx, order.Status(99))
	s.Require().NoError(err)
	s.False(exists)

	record, err := catalog.Get(ctx, order.Delivered)
	s.Require().NoError(err)
	s.Equal(order.Delivered, record.ID)
	s.NotEmpty(record.Name)

	_, err = catalog.Get(ctx, order.Status(99))
	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestOrderRepositoryTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryTestSuite))
}
