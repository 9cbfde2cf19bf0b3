package order

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// Status identifies a stage in the fixed seven-row order lifecycle catalog.
// The numeric values match the catalog ids seeded in the database and are
// part of the interservice contract, so they must never be renumbered.
//
// Lifecycle:
//
//	AwaitingRestaurant ──> AwaitingDeliverer ──> InPreparation ──> InDelivery ──> Delivered
//	        │                                                                  (terminal)
//	        └──> RefusedByRestaurant (terminal)
//	any non-terminal ──> Cancelled (terminal)
//
// Beyond terminality no forward-only ordering is enforced: a status update
// may move an order between any two non-terminal stages.
type Status int64

const (
	// AwaitingRestaurant is the initial status of every created order.
	AwaitingRestaurant Status = 1

	// AwaitingDeliverer marks an order accepted by the restaurant and
	// waiting for a deliverer to take it.
	AwaitingDeliverer Status = 2

	// InPreparation marks an order assigned to a deliverer while the
	// restaurant prepares it. The first status with a deliverer attached.
	InPreparation Status = 3

	// InDelivery marks an order on its way to the client.
	InDelivery Status = 4

	// Delivered is the terminal success status.
	Delivered Status = 5

	// RefusedByRestaurant is a terminal failure status set by the restaurant.
	RefusedByRestaurant Status = 6

	// Cancelled is a terminal failure status set through cancellation.
	Cancelled Status = 7
)

// AssignedThreshold is the first status at which an order carries a
// deliverer assignment.
const AssignedThreshold = InPreparation

func statusNames() map[Status]string {
	return map[Status]string{
		AwaitingRestaurant:  "Awaiting restaurant approval",
		AwaitingDeliverer:   "Awaiting deliverer pickup",
		InPreparation:       "In preparation",
		InDelivery:          "In delivery",
		Delivered:           "Delivered",
		RefusedByRestaurant: "Refused by restaurant",
		Cancelled:           "Cancelled",
	}
}

// Validate checks that the status is one of the seven catalog values.
func (s Status) Validate() error {
	if _, ok := statusNames()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a catalog status", s))
	}
	return nil
}

// IsTerminal reports whether the status is a final resting state.
// Terminal orders accept no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == RefusedByRestaurant || s == Cancelled
}

// String returns the catalog name of the status, implementing fmt.Stringer.
func (s Status) String() string {
	if name, ok := statusNames()[s]; ok {
		return name
	}
	return "Unknown"
}
