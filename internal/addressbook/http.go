package addressbook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sawaikart/padharo/internal/domain"
)

// HTTPClient implements Client against the address book service's REST API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates an address book client for the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type addressWire struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}

func (w addressWire) toDomain() domain.Address {
	return domain.Address{
		ID:        w.ID,
		Label:     w.Label,
		Name:      w.Name,
		Phone:     w.Phone,
		Street:    w.Street,
		City:      w.City,
		State:     w.State,
		ZipCode:   w.ZipCode,
		Country:   w.Country,
		IsDefault: w.IsDefault,
	}
}

func fromDomain(a domain.Address) addressWire {
	return addressWire{
		ID:        a.ID,
		Label:     a.Label,
		Name:      a.Name,
		Phone:     a.Phone,
		Street:    a.Street,
		City:      a.City,
		State:     a.State,
		ZipCode:   a.ZipCode,
		Country:   a.Country,
		IsDefault: a.IsDefault,
	}
}

func (c *HTTPClient) List(ctx context.Context, userID string) ([]domain.Address, error) {
	u := fmt.Sprintf("%s/users/%s/addresses", c.baseURL, url.PathEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build address list request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domain.WrapError(err, domain.EUNAVAILABLE, "address.list", "address book unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.Errorf(domain.EUNAVAILABLE, "address.list", "address book returned status %d", resp.StatusCode)
	}

	var wire []addressWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, domain.WrapError(err, domain.EUNAVAILABLE, "address.list", "failed to decode address list")
	}

	out := make([]domain.Address, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toDomain())
	}
	return out, nil
}

func (c *HTTPClient) Upsert(ctx context.Context, userID string, addr domain.Address) (*domain.Address, error) {
	method := http.MethodPost
	u := fmt.Sprintf("%s/users/%s/addresses", c.baseURL, url.PathEscape(userID))
	if addr.ID != "" {
		method = http.MethodPut
		u += "/" + url.PathEscape(addr.ID)
	}

	data, err := json.Marshal(fromDomain(addr))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal address: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to build address upsert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domain.WrapError(err, domain.EUNAVAILABLE, "address.upsert", "address book unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.WrapError(domain.ErrAddressNotFound, domain.ENOTFOUND, "address.upsert", "address not found")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.Errorf(domain.EUNAVAILABLE, "address.upsert", "address book returned status %d", resp.StatusCode)
	}

	var w addressWire
	if err := json.NewDecoder(resp.Body).Decode(&w); err != nil {
		return nil, domain.WrapError(err, domain.EUNAVAILABLE, "address.upsert", "failed to decode address response")
	}
	out := w.toDomain()
	return &out, nil
}

func (c *HTTPClient) Delete(ctx context.Context, userID, addressID string) error {
	u := fmt.Sprintf("%s/users/%s/addresses/%s", c.baseURL, url.PathEscape(userID), url.PathEscape(addressID))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build address delete request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.WrapError(err, domain.EUNAVAILABLE, "address.delete", "address book unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.WrapError(domain.ErrAddressNotFound, domain.ENOTFOUND, "address.delete", "address not found")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Errorf(domain.EUNAVAILABLE, "address.delete", "address book returned status %d", resp.StatusCode)
	}
	return nil
}
