package commands

import (
	"context"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler moves an order between lifecycle statuses.
// Terminal orders reject any change; among non-terminal statuses every move
// is permitted, matching the catalog's permissive update semantics.
type UpdateOrderStatusCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	reader     ports.OrderRepository
}

// NewUpdateOrderStatusCommandHandler creates a handler for status updates.
func NewUpdateOrderStatusCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	reader ports.OrderRepository,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		reader:     reader,
	}
}

// Handle verifies the target status against the catalog, applies the
// transition and persists it. Returns the order as reloaded after commit.
func (h *UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (*order.Order, error) {
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.ChangeStatus(cmd.Status()); err != nil {
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
