package interservice

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"orders/internal/core/application/auth"
)

// ConfirmerConfig maps each role to the base URL of the service that owns
// its users. Admin and super-admin share the administrator service.
type ConfirmerConfig struct {
	BaseURLs       map[auth.Role]string
	RequestTimeout time.Duration
}

// HTTPUserConfirmer completes the authorization round-trip: after a token
// verifies under a role's secret, the service owning that role is asked
// whether the user still exists. The caller's own token authenticates the
// check.
type HTTPUserConfirmer struct {
	cfg    ConfirmerConfig
	client *http.Client
}

// NewHTTPUserConfirmer creates the confirmer.
func NewHTTPUserConfirmer(cfg ConfirmerConfig) *HTTPUserConfirmer {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &HTTPUserConfirmer{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// Confirm asks the role's owning service to verify the user id. Any
// response other than 200 rejects the caller.
func (c *HTTPUserConfirmer) Confirm(ctx context.Context, role auth.Role, userID int64, token string) error {
	base, ok := c.cfg.BaseURLs[role]
	if !ok {
		return fmt.Errorf("no verification endpoint configured for role %q", role)
	}

	url := fmt.Sprintf("%s/users/verify/%d", base, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("user verification returned status %d", resp.StatusCode)
	}

	return nil
}
