package cartapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sawaikart/padharo/internal/domain"
)

// HTTPClient implements Client against the cart service's REST API.
// The cart key identifies the backend cart (user id or guest session key).
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a cart client for the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) Fetch(ctx context.Context, cartKey string) (*domain.CartSnapshot, error) {
	return c.do(ctx, http.MethodGet, c.cartURL(cartKey, ""), nil, "cart.fetch")
}

func (c *HTTPClient) Add(ctx context.Context, cartKey, productID, variantID string, quantity int32) (*domain.CartSnapshot, error) {
	payload := map[string]any{
		"product_id": productID,
		"variant_id": variantID,
		"quantity":   quantity,
	}
	return c.do(ctx, http.MethodPost, c.cartURL(cartKey, "/items"), payload, "cart.add")
}

func (c *HTTPClient) SetQuantity(ctx context.Context, cartKey, lineID string, quantity int32) (*domain.CartSnapshot, error) {
	payload := map[string]any{"quantity": quantity}
	return c.do(ctx, http.MethodPut, c.cartURL(cartKey, "/items/"+url.PathEscape(lineID)), payload, "cart.set_quantity")
}

func (c *HTTPClient) Remove(ctx context.Context, cartKey, lineID string) (*domain.CartSnapshot, error) {
	return c.do(ctx, http.MethodDelete, c.cartURL(cartKey, "/items/"+url.PathEscape(lineID)), nil, "cart.remove")
}

func (c *HTTPClient) Clear(ctx context.Context, cartKey string) (*domain.CartSnapshot, error) {
	return c.do(ctx, http.MethodDelete, c.cartURL(cartKey, ""), nil, "cart.clear")
}

func (c *HTTPClient) cartURL(cartKey, suffix string) string {
	return fmt.Sprintf("%s/carts/%s%s", c.baseURL, url.PathEscape(cartKey), suffix)
}

func (c *HTTPClient) do(ctx context.Context, method, u string, payload any, op string) (*domain.CartSnapshot, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal cart payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build cart request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domain.WrapError(err, domain.EUNAVAILABLE, op, "cart service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.WrapError(domain.ErrLineNotFound, domain.ENOTFOUND, op, "cart item not found")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.Errorf(domain.EUNAVAILABLE, op, "cart service returned status %d", resp.StatusCode)
	}

	var wire cartResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, domain.WrapError(err, domain.EUNAVAILABLE, op, "failed to decode cart response")
	}

	return wire.toSnapshot(), nil
}
