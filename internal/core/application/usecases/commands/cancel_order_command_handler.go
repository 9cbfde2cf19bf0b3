package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// CancelOrderCommandHandler cancels orders. Cancelling never removes the
// row; the cancelled status is a final resting state.
type CancelOrderCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	reader     ports.OrderRepository
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	reader ports.OrderRepository,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		reader:     reader,
	}
}

// Handle cancels the order, leaving any deliverer assignment in place.
// Returns the order as reloaded after commit.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Cancel(); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return h.reader.Get(ctx, cmd.OrderID())
}
