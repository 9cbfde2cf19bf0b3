package commands

import (
	"errors"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand is a request to move an order to the cancelled
// terminal status.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a cancellation command.
func NewCancelOrderCommand(orderID int64) (CancelOrderCommand, error) {
	if orderID <= 0 {
		return CancelOrderCommand{}, errs.NewValueIsRequiredError("orderId")
	}

	return CancelOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order to cancel.
func (c CancelOrderCommand) OrderID() int64 {
	return c.orderID
}
