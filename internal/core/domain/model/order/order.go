package order

import (
	"errors"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder, ensuring all orders carry validated state.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// subtotalTolerance is the maximum accepted difference between the supplied
// subtotal and the recomputed sum of line totals.
var subtotalTolerance = decimal.NewFromFloat(0.01)

// Address is the delivery address bundle carried by an order. The optional
// Location holds the geocoded coordinates; orders without coordinates are
// never matched by the geo filter.
type Address struct {
	StreetNumber string
	Street       string
	City         string
	PostalCode   string
	Country      string
	Location     *kernel.GeoPoint
}

func (a Address) validate() error {
	var err error
	if a.StreetNumber == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("street_number"))
	}
	if a.Street == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("street"))
	}
	if a.City == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("city"))
	}
	if a.PostalCode == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("postal_code"))
	}
	if a.Country == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("country"))
	}
	if a.Location != nil {
		err = errors.Join(err, a.Location.Validate())
	}
	return err
}

// Charges groups the monetary fields of an order. All amounts carry
// 2-decimal precision.
type Charges struct {
	Subtotal       decimal.Decimal
	DeliveryCosts  decimal.Decimal
	ServiceCharge  decimal.Decimal
	GlobalDiscount decimal.Decimal
}

// Order is the aggregate root for a client purchase tracked through the
// seven-stage lifecycle. It owns its ordered collection of Items; every
// mutation goes through the lifecycle methods so the transition guards
// cannot be bypassed.
//
// Invariants:
//   - subtotal equals the sum of item line totals within 0.01 at creation
//   - a deliverer is attached exactly when the order is accepted (Accept)
//     and detached if a status update moves the order back below the
//     assigned threshold
//   - terminal statuses (Delivered, RefusedByRestaurant, Cancelled) accept
//     no further transitions; orders are never deleted
type Order struct {
	id           int64
	clientID     int64
	restaurantID int64
	delivererID  *int64
	status       Status
	description  *string
	charges      Charges
	address      Address
	items        []Item
	createdAt    time.Time
	updatedAt    time.Time

	isConstructed bool
}

// NewOrder creates an order draft with its items as one unit. The supplied
// status must already be verified against the status catalog by the caller;
// here it is only checked to be a known lifecycle value. The subtotal is
// recomputed from the items and compared within the 0.01 tolerance.
func NewOrder(
	clientID int64,
	restaurantID int64,
	status Status,
	description *string,
	charges Charges,
	address Address,
	items []Item,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setClientID(clientID),
		o.setRestaurantID(restaurantID),
		status.Validate(),
		address.validate(),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	if err := o.checkSubtotal(charges.Subtotal); err != nil {
		return nil, err
	}

	o.status = status
	o.description = description
	o.charges = charges
	o.address = address
	return o, nil
}

// RestoreOrder rehydrates a persisted order without re-running creation
// validation. Used exclusively by the persistence adapter.
func RestoreOrder(
	id int64,
	clientID int64,
	restaurantID int64,
	delivererID *int64,
	status Status,
	description *string,
	charges Charges,
	address Address,
	items []Item,
	createdAt time.Time,
	updatedAt time.Time,
) *Order {
	return &Order{
		id:            id,
		clientID:      clientID,
		restaurantID:  restaurantID,
		delivererID:   delivererID,
		status:        status,
		description:   description,
		charges:       charges,
		address:       address,
		items:         items,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the persistent identifier, zero before the first save.
func (o *Order) ID() int64 { return o.id }

// AssignID records the identifier generated by storage on first insert.
// An order that already carries an id keeps it.
func (o *Order) AssignID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsRequiredError("id")
	}
	if o.id == 0 {
		o.id = id
	}
	return nil
}

// ClientID returns the ordering client's id.
func (o *Order) ClientID() int64 { return o.clientID }

// RestaurantID returns the restaurant's id.
func (o *Order) RestaurantID() int64 { return o.restaurantID }

// DelivererID returns the assigned deliverer's id, nil while unassigned.
func (o *Order) DelivererID() *int64 { return o.delivererID }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// Description returns the optional free-form order description.
func (o *Order) Description() *string { return o.description }

// Charges returns the monetary fields.
func (o *Order) Charges() Charges { return o.charges }

// Address returns the delivery address.
func (o *Order) Address() Address { return o.address }

// Items returns the ordered line collection.
func (o *Order) Items() []Item { return o.items }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last modification timestamp.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Accept assigns a deliverer to an order awaiting pickup, moving it to
// InPreparation. The guard is deliberately check-then-write: two concurrent
// accepts race on it and only the one committed first prevails.
//
// Returns changed=false with a nil error when the order has already advanced
// past AwaitingDeliverer, so duplicate delivery-accepted events are absorbed
// as no-ops instead of failing.
func (o *Order) Accept(delivererID int64) (changed bool, err error) {
	if delivererID <= 0 {
		return false, errs.NewValueIsRequiredError("delivererId")
	}

	if o.status > AwaitingDeliverer {
		return false, nil
	}

	if o.status != AwaitingDeliverer {
		return false, errs.NewInvalidTransitionError(o.id, int64(o.status), int64(InPreparation),
			"order is not awaiting a deliverer")
	}

	o.status = InPreparation
	o.delivererID = &delivererID
	return true, nil
}

// ChangeStatus moves the order to newStatus. Terminal orders reject any
// further change; among non-terminal statuses every move is permitted.
// Moving back below the assigned threshold detaches the deliverer so an
// order waiting for pickup is visible to the delivery search again.
func (o *Order) ChangeStatus(newStatus Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	if o.status.IsTerminal() {
		return errs.NewInvalidTransitionError(o.id, int64(o.status), int64(newStatus),
			"order is in a terminal status")
	}

	o.status = newStatus
	if newStatus < AssignedThreshold {
		o.delivererID = nil
	}
	return nil
}

// Cancel moves the order to the Cancelled terminal status. The deliverer
// assignment, if any, is left untouched as part of the final resting state.
func (o *Order) Cancel() error {
	if o.status == Cancelled {
		return errs.NewAlreadyCancelledError(o.id)
	}

	o.status = Cancelled
	return nil
}

func (o *Order) setClientID(clientID int64) error {
	if clientID <= 0 {
		return errs.NewValueIsRequiredError("client_id")
	}
	o.clientID = clientID
	return nil
}

func (o *Order) setRestaurantID(restaurantID int64) error {
	if restaurantID <= 0 {
		return errs.NewValueIsRequiredError("restaurant_id")
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	var err error
	for _, item := range items {
		err = errors.Join(err, item.Validate())
	}
	if err != nil {
		return err
	}

	o.items = items
	return nil
}

// checkSubtotal recompares the supplied subtotal against the sum of
// quantity times unit price over all items, within the 0.01 tolerance.
func (o *Order) checkSubtotal(subtotal decimal.Decimal) error {
	computed := decimal.Zero
	for _, item := range o.items {
		computed = computed.Add(item.LineTotal())
	}

	if computed.Sub(subtotal).Abs().GreaterThan(subtotalTolerance) {
		return errs.NewValueIsInvalidErrorWithCause("subtotal",
			errors.New("supplied subtotal does not match the order items"))
	}
	return nil
}
