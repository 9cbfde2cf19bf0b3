// Package http is the inbound REST adapter. It binds requests, runs the
// per-route authorization round-trip and translates application results
// and errors into the wire contract.
package http

import (
	"net/http"
	"strconv"

	"orders/internal/core/application/auth"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler  commands.CreateOrderCommandHandler
	acceptOrderHandler  commands.AcceptOrderCommandHandler
	updateStatusHandler commands.UpdateOrderStatusCommandHandler
	cancelOrderHandler  commands.CancelOrderCommandHandler

	listOrdersHandler      queries.ListOrdersQueryHandler
	findForDeliveryHandler queries.FindForDeliveryQueryHandler
	orderDetailsHandler    queries.GetOrderDetailsQueryHandler
	restaurantStatsHandler queries.GetRestaurantStatsQueryHandler
	interserviceHandler    queries.GetOrderInterserviceQueryHandler
}

// NewServer creates the HTTP server over the command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	updateStatusHandler commands.UpdateOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	findForDeliveryHandler queries.FindForDeliveryQueryHandler,
	orderDetailsHandler queries.GetOrderDetailsQueryHandler,
	restaurantStatsHandler queries.GetRestaurantStatsQueryHandler,
	interserviceHandler queries.GetOrderInterserviceQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		acceptOrderHandler:     acceptOrderHandler,
		updateStatusHandler:    updateStatusHandler,
		cancelOrderHandler:     cancelOrderHandler,
		listOrdersHandler:      listOrdersHandler,
		findForDeliveryHandler: findForDeliveryHandler,
		orderDetailsHandler:    orderDetailsHandler,
		restaurantStatsHandler: restaurantStatsHandler,
		interserviceHandler:    interserviceHandler,
	}
}

// RegisterRoutes wires the order routes with their role policies. The
// interservice lookup stays open: peers authenticate through the gateway
// contract, not the end-user round-trip.
func (s *Server) RegisterRoutes(e *echo.Echo, matrix *auth.Matrix) {
	g := e.Group("/orders")

	g.POST("", s.CreateOrder, requireRoles(matrix, auth.RoleClient))
	g.POST("/accept", s.AcceptOrder, requireRoles(matrix, auth.RoleDeliverer))
	g.GET("", s.ListOrders, requireRoles(matrix, auth.RoleSuperAdmin, auth.RoleAdmin))
	g.GET("/delivery", s.FindForDelivery, requireRoles(matrix, auth.RoleDeliverer))
	g.GET("/interservice/:id", s.GetOrderInterservice)
	g.GET("/client/:clientId", s.ListOrdersByClient, requireRoles(matrix, auth.RoleClient))
	g.GET("/restaurant/:restaurantId", s.ListOrdersByRestaurant, requireRoles(matrix, auth.RoleRestaurateur))
	g.GET("/restaurant/:restaurantId/stats", s.GetRestaurantStats, requireRoles(matrix, auth.RoleRestaurateur))
	g.GET("/deliverer/:delivererId", s.ListOrdersByDeliverer, requireRoles(matrix, auth.RoleDeliverer))
	g.GET("/:id", s.GetOrderDetails, requireRoles(matrix, auth.AllRoles()...))
	g.POST("/:id/status", s.UpdateOrderStatus, requireRoles(matrix,
		auth.RoleDeliverer, auth.RoleSuperAdmin, auth.RoleAdmin, auth.RoleRestaurateur))
	g.POST("/:id/cancel", s.CancelOrder, requireRoles(matrix,
		auth.RoleDeliverer, auth.RoleSuperAdmin, auth.RoleAdmin, auth.RoleRestaurateur))
}

// CreateOrder handles POST /orders. The ordering client is the
// authenticated caller, never a field of the body.
func (s *Server) CreateOrder(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return writeBadRequest(ctx, "missing authenticated caller")
	}

	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	statusID := req.StatusID
	if statusID == 0 {
		statusID = int64(order.AwaitingRestaurant)
	}

	address, err := req.toAddress()
	if err != nil {
		return writeError(ctx, err)
	}

	items, err := req.toItems()
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		principal.UserID,
		req.RestaurantID,
		order.Status(statusID),
		req.Description,
		req.toCharges(),
		address,
		items,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(created))
}

// AcceptOrder handles POST /orders/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return writeBadRequest(ctx, "missing authenticated caller")
	}

	var req acceptOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	delivererID := req.DelivererID
	if delivererID == 0 {
		delivererID = principal.UserID
	}

	cmd, err := commands.NewAcceptOrderCommand(req.OrderID, delivererID)
	if err != nil {
		return writeError(ctx, err)
	}

	accepted, err := s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(accepted))
}

// ListOrders handles GET /orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	return s.listWithFilter(ctx, queries.ListOrdersFilter{StatusID: queryInt64(ctx, "status_id")})
}

// ListOrdersByClient handles GET /orders/client/:clientId.
func (s *Server) ListOrdersByClient(ctx echo.Context) error {
	clientID, err := paramInt64(ctx, "clientId")
	if err != nil {
		return writeBadRequest(ctx, "clientId must be a number")
	}

	return s.listWithFilter(ctx, queries.ListOrdersFilter{
		ClientID: &clientID,
		StatusID: queryInt64(ctx, "status_id"),
	})
}

// ListOrdersByRestaurant handles GET /orders/restaurant/:restaurantId.
func (s *Server) ListOrdersByRestaurant(ctx echo.Context) error {
	restaurantID, err := paramInt64(ctx, "restaurantId")
	if err != nil {
		return writeBadRequest(ctx, "restaurantId must be a number")
	}

	return s.listWithFilter(ctx, queries.ListOrdersFilter{
		RestaurantID: &restaurantID,
		StatusID:     queryInt64(ctx, "status_id"),
	})
}

// ListOrdersByDeliverer handles GET /orders/deliverer/:delivererId.
func (s *Server) ListOrdersByDeliverer(ctx echo.Context) error {
	delivererID, err := paramInt64(ctx, "delivererId")
	if err != nil {
		return writeBadRequest(ctx, "delivererId must be a number")
	}

	return s.listWithFilter(ctx, queries.ListOrdersFilter{
		DelivererID: &delivererID,
		StatusID:    queryInt64(ctx, "status_id"),
	})
}

func (s *Server) listWithFilter(ctx echo.Context, filter queries.ListOrdersFilter) error {
	query, err := queries.NewListOrdersQuery(filter, queryInt(ctx, "page"), queryInt(ctx, "limit"))
	if err != nil {
		return writeError(ctx, err)
	}

	page, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderPageResponse(page))
}

// FindForDelivery handles GET /orders/delivery - unassigned orders,
// optionally narrowed to a radius of the deliverer's position. The geo
// params travel together: all of lat, long and perimeter, or none.
func (s *Server) FindForDelivery(ctx echo.Context) error {
	var center *kernel.GeoPoint
	var perimeter float64

	if ctx.QueryParam("lat") != "" || ctx.QueryParam("long") != "" || ctx.QueryParam("perimeter") != "" {
		lat, latErr := strconv.ParseFloat(ctx.QueryParam("lat"), 64)
		long, longErr := strconv.ParseFloat(ctx.QueryParam("long"), 64)
		if latErr != nil || longErr != nil {
			return writeBadRequest(ctx, "lat and long are required with a geo search")
		}

		var err error
		perimeter, err = strconv.ParseFloat(ctx.QueryParam("perimeter"), 64)
		if err != nil {
			return writeBadRequest(ctx, "perimeter is required with a geo search")
		}

		point, err := kernel.NewGeoPoint(lat, long)
		if err != nil {
			return writeError(ctx, err)
		}
		center = &point
	}

	query, err := queries.NewFindForDeliveryQuery(center, perimeter,
		queryInt(ctx, "page"), queryInt(ctx, "limit"))
	if err != nil {
		return writeError(ctx, err)
	}

	page, err := s.findForDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toPickupPageResponse(page))
}

// GetOrderDetails handles GET /orders/:id - the enriched order view.
func (s *Server) GetOrderDetails(ctx echo.Context) error {
	orderID, err := paramInt64(ctx, "id")
	if err != nil {
		return writeBadRequest(ctx, "id must be a number")
	}

	query, err := queries.NewGetOrderDetailsQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	details, err := s.orderDetailsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderDetailsResponse(details))
}

// GetRestaurantStats handles GET /orders/restaurant/:restaurantId/stats.
func (s *Server) GetRestaurantStats(ctx echo.Context) error {
	restaurantID, err := paramInt64(ctx, "restaurantId")
	if err != nil {
		return writeBadRequest(ctx, "restaurantId must be a number")
	}

	// Absent period means all-time statistics.
	query, err := queries.NewGetRestaurantStatsQuery(restaurantID, queries.StatsPeriod(ctx.QueryParam("period")))
	if err != nil {
		return writeError(ctx, err)
	}

	stats, err := s.restaurantStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := statsResponse{
		RestaurantID: stats.RestaurantID,
		Period:       string(stats.Period),
		OrderCount:   stats.OrderCount,
		Revenue:      stats.Revenue.StringFixed(2),
	}
	if stats.MostOrdered != nil {
		response.MostOrdered = &mostOrderedItem{
			MenuItemID: stats.MostOrdered.MenuItemID,
			ItemCount:  stats.MostOrdered.ItemCount,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateOrderStatus handles POST /orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := paramInt64(ctx, "id")
	if err != nil {
		return writeBadRequest(ctx, "id must be a number")
	}

	var req updateOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, order.Status(req.StatusID))
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// CancelOrder handles POST /orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := paramInt64(ctx, "id")
	if err != nil {
		return writeBadRequest(ctx, "id must be a number")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	cancelled, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(cancelled))
}

// GetOrderInterservice handles GET /orders/interservice/:id - the trimmed
// order view peer services read.
func (s *Server) GetOrderInterservice(ctx echo.Context) error {
	orderID, err := paramInt64(ctx, "id")
	if err != nil {
		return writeBadRequest(ctx, "id must be a number")
	}

	query, err := queries.NewGetOrderInterserviceQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.interserviceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, interserviceOrderResponse{
		ID:       result.ID,
		StatusID: result.StatusID,
		Subtotal: result.Subtotal.StringFixed(2),
	})
}

func paramInt64(ctx echo.Context, name string) (int64, error) {
	return strconv.ParseInt(ctx.Param(name), 10, 64)
}

func queryInt(ctx echo.Context, name string) int {
	value, err := strconv.Atoi(ctx.QueryParam(name))
	if err != nil {
		return 0
	}
	return value
}

func queryInt64(ctx echo.Context, name string) *int64 {
	value, err := strconv.ParseInt(ctx.QueryParam(name), 10, 64)
	if err != nil {
		return nil
	}
	return &value
}
