package postal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// HTTPLookup implements Lookup against a public PIN-code API.
type HTTPLookup struct {
	baseURL string
	client  *http.Client
}

// NewHTTPLookup creates a postal lookup client for the given base URL.
func NewHTTPLookup(baseURL string) *HTTPLookup {
	return &HTTPLookup{
		baseURL: baseURL,
		// Short timeout on purpose: a slow autofill is worse than none.
		client: &http.Client{Timeout: 3 * time.Second},
	}
}

type pinResponse []struct {
	Status     string `json:"Status"`
	PostOffice []struct {
		District string `json:"District"`
		State    string `json:"State"`
	} `json:"PostOffice"`
}

func (l *HTTPLookup) Resolve(ctx context.Context, pinCode string) (*Place, error) {
	u := fmt.Sprintf("%s/pincode/%s", l.baseURL, url.PathEscape(pinCode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build pincode request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pincode lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pincode lookup returned status %d", resp.StatusCode)
	}

	var body pinResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode pincode response: %w", err)
	}

	if len(body) == 0 || body[0].Status != "Success" || len(body[0].PostOffice) == 0 {
		return nil, fmt.Errorf("no locality found for pincode %s", pinCode)
	}

	po := body[0].PostOffice[0]
	return &Place{City: po.District, State: po.State}, nil
}
