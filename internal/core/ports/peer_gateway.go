package ports

import (
	"context"
	"time"
)

// PeerClient is the client record owned by the client service.
type PeerClient struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// PeerRestaurant is the restaurant record owned by the restaurant service.
type PeerRestaurant struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	StreetNumber string          `json:"street_number"`
	Street       string          `json:"street"`
	City         string          `json:"city"`
	PostalCode   string          `json:"postal_code"`
	Country      string          `json:"country"`
	Email        string          `json:"email"`
	PhoneNumber  string          `json:"phone_number"`
	Long         float64         `json:"long"`
	Lat          float64         `json:"lat"`
	Images       []PeerImage     `json:"images,omitempty"`
}

// PeerImage is an image attachment on a restaurant or menu item record.
type PeerImage struct {
	ID       int64  `json:"id"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
	IsMain   bool   `json:"isMain"`
}

// PeerDeliverer is the deliverer record owned by the delivery service.
type PeerDeliverer struct {
	ID              int64  `json:"id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	TransportModeID int64  `json:"transport_mode_id"`
}

// PeerMenuItem is the menu item record owned by the restaurant service.
type PeerMenuItem struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       string      `json:"price"`
	Images      []PeerImage `json:"images,omitempty"`
}

// PeerMenuItemOptionValue is a selectable option value of a menu item.
type PeerMenuItemOptionValue struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ExtraPrice string `json:"extra_price"`
}

// PeerDelivery is the delivery record owned by the delivery service.
type PeerDelivery struct {
	ID               int64      `json:"id"`
	OrderID          int64      `json:"order_id"`
	UserID           int64      `json:"user_id"`
	TransportModeID  int64      `json:"transport_mode_id"`
	DeliveryStatusID int64      `json:"delivery_status_id"`
	VerificationCode string     `json:"verification_code"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          *time.Time `json:"end_time"`
}

// PeerGateway resolves foreign ids into records owned by peer services over
// authenticated RPC. Every lookup soft-fails: a network error, timeout or
// non-2xx response yields a nil record and an errs.UpstreamUnavailableError,
// which callers absorb by degrading the affected field. No lookup failure
// may ever abort the calling operation.
type PeerGateway interface {
	FetchClient(ctx context.Context, clientID int64) (*PeerClient, error)
	FetchRestaurant(ctx context.Context, restaurantID int64) (*PeerRestaurant, error)
	FetchDeliverer(ctx context.Context, delivererID int64) (*PeerDeliverer, error)
	FetchMenuItem(ctx context.Context, menuItemID int64) (*PeerMenuItem, error)

	// FetchMenuItemOptionValues resolves option values concurrently and
	// returns only the successfully resolved subset; individual failures
	// are dropped silently.
	FetchMenuItemOptionValues(ctx context.Context, optionValueIDs []int64) []PeerMenuItemOptionValue

	// FetchDeliveryByOrderID resolves the delivery record tied to an order.
	FetchDeliveryByOrderID(ctx context.Context, orderID int64) (*PeerDelivery, error)
}
