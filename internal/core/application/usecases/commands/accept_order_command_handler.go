package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// AcceptOrderCommandHandler assigns a deliverer to an order awaiting pickup.
//
// The acceptance guard is check-then-write without a row lock: two
// near-simultaneous accepts race and only the first committed transaction
// prevails, the loser seeing the no-op path on retry. Duplicate bus
// deliveries of the same accept event take the no-op path and succeed.
type AcceptOrderCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	reader     ports.OrderRepository
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
func NewAcceptOrderCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	reader ports.OrderRepository,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		reader:     reader,
	}
}

// Handle moves the order to InPreparation with the deliverer attached, as a
// single atomic write of both fields. Returns the order as reloaded after
// commit, whether or not the call changed anything.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) (*order.Order, error) {
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

	changed, err := aggregate.Accept(cmd.DelivererID())
	if err != nil {
		return nil, err
	}

	if changed {
		if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return h.reader.Get(ctx, cmd.OrderID())
}
