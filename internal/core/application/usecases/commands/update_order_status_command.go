package commands

import (
	"errors"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand is a request to move an order to another
// lifecycle status.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	status  order.Status

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a status update command. The order id
// must be positive; existence of the target status in the catalog is
// checked by the handler.
func NewUpdateOrderStatusCommand(orderID int64, status order.Status) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if orderID <= 0 {
		return UpdateOrderStatusCommand{}, errs.NewValueIsRequiredError("orderId")
	}

	cmd.orderID = orderID
	cmd.status = status
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to update.
func (c UpdateOrderStatusCommand) OrderID() int64 {
	return c.orderID
}

// Status returns the target status.
func (c UpdateOrderStatusCommand) Status() order.Status {
	return c.status
}
