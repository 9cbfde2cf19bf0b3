package interservice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"go.uber.org/zap"
)

const defaultRequestTimeout = 5 * time.Second

// Config carries the peer base URLs and the shared secrets used to sign
// service assertions. Base URLs have no trailing slash.
type Config struct {
	ClientBaseURL      string
	RestaurantBaseURL  string
	DeliveryBaseURL    string
	OptionValueBaseURL string

	ClientSecret       string
	RestaurateurSecret string
	DeliverySecret     string

	RequestTimeout time.Duration
}

// HTTPPeerGateway implements ports.PeerGateway over plain HTTP with JSON
// bodies. Every lookup soft-fails into errs.UpstreamUnavailableError;
// callers degrade the affected field instead of aborting.
type HTTPPeerGateway struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger

	clientSigner       assertionSigner
	restaurateurSigner assertionSigner
	deliverySigner     assertionSigner
}

// NewHTTPPeerGateway creates the gateway. A zero RequestTimeout falls back
// to five seconds so a stuck peer cannot hold enrichment open.
func NewHTTPPeerGateway(cfg Config, logger *zap.Logger) *HTTPPeerGateway {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &HTTPPeerGateway{
		cfg:                cfg,
		client:             &http.Client{Timeout: timeout},
		logger:             logger.With(zap.String("component", "peer_gateway")),
		clientSigner:       newAssertionSigner(cfg.ClientSecret, "client"),
		restaurateurSigner: newAssertionSigner(cfg.RestaurateurSecret, "restaurateur"),
		deliverySigner:     newAssertionSigner(cfg.DeliverySecret, "delivery"),
	}
}

// FetchClient resolves a client record from the client service.
func (g *HTTPPeerGateway) FetchClient(ctx context.Context, clientID int64) (*ports.PeerClient, error) {
	url := fmt.Sprintf("%s/users/interservice/%d", g.cfg.ClientBaseURL, clientID)
	return fetch[ports.PeerClient](ctx, g, url, g.clientSigner, "client")
}

// FetchRestaurant resolves a restaurant record from the restaurant service.
func (g *HTTPPeerGateway) FetchRestaurant(ctx context.Context, restaurantID int64) (*ports.PeerRestaurant, error) {
	url := fmt.Sprintf("%s/restaurant/interservice/%d", g.cfg.RestaurantBaseURL, restaurantID)
	return fetch[ports.PeerRestaurant](ctx, g, url, g.restaurateurSigner, "restaurant")
}

// FetchDeliverer resolves a deliverer record from the delivery service.
func (g *HTTPPeerGateway) FetchDeliverer(ctx context.Context, delivererID int64) (*ports.PeerDeliverer, error) {
	url := fmt.Sprintf("%s/users/interservice/%d", g.cfg.DeliveryBaseURL, delivererID)
	return fetch[ports.PeerDeliverer](ctx, g, url, g.deliverySigner, "deliverer")
}

// FetchMenuItem resolves a menu item record from the restaurant service.
func (g *HTTPPeerGateway) FetchMenuItem(ctx context.Context, menuItemID int64) (*ports.PeerMenuItem, error) {
	url := fmt.Sprintf("%s/menu-items/interservice/%d", g.cfg.RestaurantBaseURL, menuItemID)
	return fetch[ports.PeerMenuItem](ctx, g, url, g.restaurateurSigner, "menu item")
}

// FetchMenuItemOptionValues resolves option values concurrently and keeps
// only the ones that resolved; individual failures are logged and dropped.
func (g *HTTPPeerGateway) FetchMenuItemOptionValues(
	ctx context.Context,
	optionValueIDs []int64,
) []ports.PeerMenuItemOptionValue {
	if len(optionValueIDs) == 0 {
		return []ports.PeerMenuItemOptionValue{}
	}

	resolved := make([]*ports.PeerMenuItemOptionValue, len(optionValueIDs))

	var wg sync.WaitGroup
	for i, id := range optionValueIDs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			url := fmt.Sprintf("%s/menu-item-option-values/interservice/%d", g.cfg.OptionValueBaseURL, id)
			value, err := fetch[ports.PeerMenuItemOptionValue](ctx, g, url, g.restaurateurSigner, "option value")
			if err != nil {
				return
			}
			resolved[i] = value
		}()
	}
	wg.Wait()

	values := make([]ports.PeerMenuItemOptionValue, 0, len(optionValueIDs))
	for _, value := range resolved {
		if value != nil {
			values = append(values, *value)
		}
	}
	return values
}

// FetchDeliveryByOrderID resolves the delivery record tied to an order.
func (g *HTTPPeerGateway) FetchDeliveryByOrderID(ctx context.Context, orderID int64) (*ports.PeerDelivery, error) {
	url := fmt.Sprintf("%s/deliveries/interservice/order/%d", g.cfg.DeliveryBaseURL, orderID)
	return fetch[ports.PeerDelivery](ctx, g, url, g.deliverySigner, "delivery")
}

func fetch[T any](
	ctx context.Context,
	g *HTTPPeerGateway,
	url string,
	signer assertionSigner,
	resource string,
) (*T, error) {
	token, err := signer.Sign()
	if err != nil {
		return nil, g.unavailable(signer.family, resource, url, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, g.unavailable(signer.family, resource, url, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, g.unavailable(signer.family, resource, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, g.unavailable(signer.family, resource, url,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var payload T
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, g.unavailable(signer.family, resource, url, err)
	}

	return &payload, nil
}

func (g *HTTPPeerGateway) unavailable(peer, resource, url string, cause error) error {
	g.logger.Warn("peer lookup failed",
		zap.String("peer", peer),
		zap.String("resource", resource),
		zap.String("url", url),
		zap.Error(cause))
	return errs.NewUpstreamUnavailableError(peer, resource, cause)
}
