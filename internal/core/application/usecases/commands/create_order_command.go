package commands

import (
	"errors"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand is a request to register a new order for a client.
// The items are already-validated order lines; the subtotal consistency
// check against them happens in the order aggregate.
//
// Example:
//
//	item, _ := order.NewItem(4, 2, decimal.RequireFromString("10.50"), nil, nil)
//	cmd, err := commands.NewCreateOrderCommand(
//	    clientID, restaurantID, order.AwaitingRestaurant, nil, charges, address,
//	    []order.Item{item},
//	)
//	if err != nil {
//	    return err
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	clientID     int64
	restaurantID int64
	status       order.Status
	description  *string
	charges      order.Charges
	address      order.Address
	items        []order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Client and restaurant ids must be positive and at least one item is
// required; the status value is checked against the catalog by the handler.
func NewCreateOrderCommand(
	clientID int64,
	restaurantID int64,
	status order.Status,
	description *string,
	charges order.Charges,
	address order.Address,
	items []order.Item,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setClientID(clientID),
		cmd.setRestaurantID(restaurantID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.status = status
	cmd.description = description
	cmd.charges = charges
	cmd.address = address
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// ClientID returns the ordering client's id.
func (c CreateOrderCommand) ClientID() int64 {
	return c.clientID
}

// RestaurantID returns the restaurant's id.
func (c CreateOrderCommand) RestaurantID() int64 {
	return c.restaurantID
}

// Status returns the requested initial status.
func (c CreateOrderCommand) Status() order.Status {
	return c.status
}

// Description returns the optional order description.
func (c CreateOrderCommand) Description() *string {
	return c.description
}

// Charges returns the monetary fields of the draft.
func (c CreateOrderCommand) Charges() order.Charges {
	return c.charges
}

// Address returns the delivery address of the draft.
func (c CreateOrderCommand) Address() order.Address {
	return c.address
}

// Items returns the order lines of the draft.
func (c CreateOrderCommand) Items() []order.Item {
	return c.items
}

func (c *CreateOrderCommand) setClientID(clientID int64) error {
	if clientID <= 0 {
		return errs.NewValueIsRequiredError("clientId")
	}

	c.clientID = clientID
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(restaurantID int64) error {
	if restaurantID <= 0 {
		return errs.NewValueIsRequiredError("restaurantId")
	}

	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	c.items = items
	return nil
}
