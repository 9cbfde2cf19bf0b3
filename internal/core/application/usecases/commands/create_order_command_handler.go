package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// CreateOrderCommandHandler persists new orders. The order and its items
// are written inside one unit of work, so no reader ever observes an order
// without its lines.
type CreateOrderCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	reader     ports.OrderRepository
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// The reader repository serves the post-commit reload so the caller gets
// the canonical persisted row.
func NewCreateOrderCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	reader ports.OrderRepository,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		reader:     reader,
	}
}

// Handle validates the draft against the status catalog, builds the order
// aggregate (which enforces the subtotal consistency check) and persists it
// atomically. Returns the order as reloaded after commit.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	exists, err := uow.StatusCatalog().Exists(ctx, cmd.Status())
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("statusId", int64(cmd.Status()))
	}

	aggregate, err := order.NewOrder(
		cmd.ClientID(),
		cmd.RestaurantID(),
		cmd.Status(),
		cmd.Description(),
		cmd.Charges(),
		cmd.Address(),
		cmd.Items(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return h.reader.Get(ctx, aggregate.ID())
}
