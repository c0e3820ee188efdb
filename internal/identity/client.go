// Package identity exchanges opaque provider session IDs for identity
// assertions with the external identity provider. Any non-success response
// is an authentication failure, never "no opinion".
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/maaylex/maaylex-server/internal/model"
)

const defaultTimeout = 10 * time.Second

var _ model.IdentityProvider = (*Client)(nil)

type Client struct {
	httpClient *http.Client
	url        string
}

func NewClient(url string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		url:        url,
	}
}

type sessionData struct {
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Picture      *string `json:"picture"`
	SessionToken string  `json:"session_token"`
}

// Exchange resolves a provider session ID to an identity assertion.
func (c *Client) Exchange(ctx context.Context, providerSessionID string) (model.ProviderIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return model.ProviderIdentity{}, fmt.Errorf("failed to build exchange request: %w", err)
	}
	req.Header.Set("X-Session-ID", providerSessionID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.ProviderIdentity{}, fmt.Errorf("%w: identity exchange failed: %v", model.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.ProviderIdentity{}, fmt.Errorf("%w: identity provider returned status %d", model.ErrUpstream, resp.StatusCode)
	}

	var data sessionData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return model.ProviderIdentity{}, fmt.Errorf("%w: failed to decode identity response: %v", model.ErrUpstream, err)
	}
	if data.Email == "" {
		return model.ProviderIdentity{}, fmt.Errorf("%w: identity assertion has no email", model.ErrUpstream)
	}

	return model.ProviderIdentity{
		Email:        data.Email,
		Name:         data.Name,
		Picture:      data.Picture,
		SessionToken: data.SessionToken,
	}, nil
}
