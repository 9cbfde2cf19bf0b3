package queries_test

import (
	"context"
	"testing"
	"time"

	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/adapters/out/postgres/statusrepo"
	"orders/internal/core/application/usecases/queries"
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

type QueryHandlersTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository
}

func (s *QueryHandlersTestSuite) SetupSuite() {
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

func (s *QueryHandlersTestSuite) TearDownSuite() {
	if s.container != nil {
		err := s.container.Terminate(context.Background())
		s.Require().NoError(err)
	}
}

func (s *QueryHandlersTestSuite) SetupTest() {
	err := s.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	s.Require().NoError(err)
}

// addOrder persists an order for clientID at restaurantID with the given
// menu item quantities (menuItemID -> quantity at 10.00 each).
func (s *QueryHandlersTestSuite) addOrder(clientID, restaurantID int64, lines map[int64]int) *order.Order {
	items := make([]order.Item, 0, len(lines))
	subtotal := decimal.Zero
	unitPrice := decimal.RequireFromString("10.00")
	for menuItemID, quantity := range lines {
		item, err := order.NewItem(menuItemID, quantity, unitPrice, []int64{4, 5}, nil)
		s.Require().NoError(err)
		items = append(items, item)
		subtotal = subtotal.Add(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
	}

	aggregate, err := order.NewOrder(
		clientID, restaurantID, order.AwaitingRestaurant, nil,
		order.Charges{
			Subtotal:       subtotal,
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
		},
		items,
	)
	s.Require().NoError(err)

	err = s.repo.Add(context.Background(), aggregate)
	s.Require().NoError(err)
	return aggregate
}

func (s *QueryHandlersTestSuite) TestListOrders_FiltersByClient() {
	ctx := context.Background()
	mine := s.addOrder(12, 3, map[int64]int{4: 2})
	s.addOrder(13, 3, map[int64]int{4: 1})

	handler := queries.NewListOrdersQueryHandler(s.db)
	clientID := int64(12)
	query, err := queries.NewListOrdersQuery(queries.ListOrdersFilter{ClientID: &clientID}, 1, 20)
	s.Require().NoError(err)

	result, err := handler.Handle(ctx, query)

	s.Require().NoError(err)
	s.Equal(int64(1), result.Total)
	s.Require().Len(result.Orders, 1)
	s.Equal(mine.ID(), result.Orders[0].ID)
	s.Require().Len(result.Orders[0].Items, 1)
	s.Equal(int64(4), result.Orders[0].Items[0].MenuItemID)
	s.Equal(2, result.Orders[0].Items[0].Quantity)
	s.Equal([]int64{4, 5}, result.Orders[0].Items[0].SelectedOptionValueIDs)
}

func (s *QueryHandlersTestSuite) TestListOrders_PaginatesNewestFirst() {
	ctx := context.Background()
	first := s.addOrder(12, 3, map[int64]int{4: 1})
	second := s.addOrder(12, 3, map[int64]int{4: 1})
	third := s.addOrder(12, 3, map[int64]int{4: 1})

	handler := queries.NewListOrdersQueryHandler(s.db)
	query, err := queries.NewListOrdersQuery(queries.ListOrdersFilter{}, 1, 2)
	s.Require().NoError(err)

	result, err := handler.Handle(ctx, query)

	s.Require().NoError(err)
	s.Equal(int64(3), result.Total)
	s.Require().Len(result.Orders, 2)
	s.Equal(third.ID(), result.Orders[0].ID)
	s.Equal(second.ID(), result.Orders[1].ID)

	query, err = queries.NewListOrdersQuery(queries.ListOrdersFilter{}, 2, 2)
	s.Require().NoError(err)

	result, err = handler.Handle(ctx, query)

	s.Require().NoError(err)
	s.Equal(int64(3), result.Total)
	s.Require().Len(result.Orders, 1)
	s.Equal(first.ID(), result.Orders[0].ID)
}

func (s *QueryHandlersTestSuite) TestRestaurantStats_AggregatesPeriod() {
	ctx := context.Background()
	s.addOrder(12, 3, map[int64]int{4: 3, 9: 1}) // 40.00
	s.addOrder(13, 3, map[int64]int{4: 2})       // 20.00
	s.addOrder(12, 5, map[int64]int{7: 10})      // other restaurant

	handler := queries.NewGetRestaurantStatsQueryHandler(s.db)
	query, err := queries.NewGetRestaurantStatsQuery(3, queries.PeriodToday)
	s.Require().NoError(err)

	stats, err := handler.Handle(ctx, query)

	s.Require().NoError(err)
	s.Equal(int64(2), stats.OrderCount)
	s.True(stats.Revenue.Equal(decimal.RequireFromString("60.00")),
		"revenue was %s", stats.Revenue)
	s.Require().NotNil(stats.MostOrdered)
	s.Equal(int64(4), stats.MostOrdered.MenuItemID)
	s.Equal(int64(5), stats.MostOrdered.ItemCount)
}

func (s *QueryHandlersTestSuite) TestRestaurantStats_EmptyPeriod() {
	handler := queries.NewGetRestaurantStatsQueryHandler(s.db)
	query, err := queries.NewGetRestaurantStatsQuery(3, queries.PeriodWeek)
	s.Require().NoError(err)

	stats, err := handler.Handle(context.Background(), query)

	s.Require().NoError(err)
	s.Equal(int64(0), stats.OrderCount)
	s.True(stats.Revenue.IsZero())
	s.Nil(stats.MostOrdered)
}

func (s *QueryHandlersTestSuite) TestRestaurantStats_AllTimeWithoutPeriod() {
	ctx := context.Background()
	old := s.addOrder(12, 3, map[int64]int{4: 1}) // 10.00, backdated below
	s.addOrder(13, 3, map[int64]int{4: 2})        // 20.00

	err := s.db.Exec(
		"UPDATE orders SET created_at = NOW() - INTERVAL '400 days' WHERE id = ?",
		old.ID(),
	).Error
	s.Require().NoError(err)

	handler := queries.NewGetRestaurantStatsQueryHandler(s.db)

	allTime, err := queries.NewGetRestaurantStatsQuery(3, queries.PeriodAll)
	s.Require().NoError(err)

	stats, err := handler.Handle(ctx, allTime)

	s.Require().NoError(err)
	s.Equal(int64(2), stats.OrderCount)
	s.True(stats.Revenue.Equal(decimal.RequireFromString("30.00")),
		"revenue was %s", stats.Revenue)

	today, err := queries.NewGetRestaurantStatsQuery(3, queries.PeriodToday)
	s.Require().NoError(err)

	stats, err = handler.Handle(ctx, today)

	s.Require().NoError(err)
	s.Equal(int64(1), stats.OrderCount)
	s.True(stats.Revenue.Equal(decimal.RequireFromString("20.00")),
		"revenue was %s", stats.Revenue)
}

func (s *QueryHandlersTestSuite) TestInterserviceLookup_ReturnsTrimmedView() {
	ctx := context.Background()
	aggregate := s.addOrder(12, 3, map[int64]int{4: 2})

	handler := queries.NewGetOrderInterserviceQueryHandler(s.db)
	query, err := queries.NewGetOrderInterserviceQuery(aggregate.ID())
	s.Require().NoError(err)

	result, err := handler.Handle(ctx, query)

	s.Require().NoError(err)
	s.Equal(aggregate.ID(), result.ID)
	s.Equal(int64(order.AwaitingRestaurant), result.StatusID)
	s.True(result.Subtotal.Equal(decimal.RequireFromString("20.00")))
}

func (s *QueryHandlersTestSuite) TestInterserviceLookup_MissingOrder() {
	handler := queries.NewGetOrderInterserviceQueryHandler(s.db)
	query, err := queries.NewGetOrderInterserviceQuery(987654)
	s.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)

	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestQueryHandlersTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(QueryHandlersTestSuite))
}
