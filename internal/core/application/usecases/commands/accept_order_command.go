package commands

import (
	"errors"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand is a request to assign a deliverer to an order that is
// awaiting pickup. Arrives both from the HTTP surface and from
// delivery-accepted bus events; the handler absorbs duplicates.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     int64
	delivererID int64

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates an acceptance command. Both ids must be
// positive.
func NewAcceptOrderCommand(orderID, delivererID int64) (AcceptOrderCommand, error) {
	cmd := AcceptOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDelivererID(delivererID),
	); err != nil {
		return AcceptOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

// OrderID returns the order to accept.
func (c AcceptOrderCommand) OrderID() int64 {
	return c.orderID
}

// DelivererID returns the deliverer taking the order.
func (c AcceptOrderCommand) DelivererID() int64 {
	return c.delivererID
}

func (c *AcceptOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsRequiredError("orderId")
	}

	c.orderID = orderID
	return nil
}

func (c *AcceptOrderCommand) setDelivererID(delivererID int64) error {
	if delivererID <= 0 {
		return errs.NewValueIsRequiredError("delivererId")
	}

	c.delivererID = delivererID
	return nil
}
