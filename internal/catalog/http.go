package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sawaikart/padharo/internal/domain"
)

// HTTPClient implements Service against the catalog service's REST API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a catalog client for the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type productResponse struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Variants []variantResponse `json:"variants"`
}

type variantResponse struct {
	ID           string            `json:"id"`
	Price        int32             `json:"price"`
	SellingPrice int32             `json:"selling_price"`
	Stock        int32             `json:"stock"`
	Attributes   map[string]string `json:"attributes,omitempty"`
}

// GetProduct fetches a product by id.
func (c *HTTPClient) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	u := fmt.Sprintf("%s/products/%s", c.baseURL, url.PathEscape(productID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build product request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domain.WrapError(err, domain.EUNAVAILABLE, "catalog.get_product", "catalog service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.Errorf(domain.ENOTFOUND, "catalog.get_product", "product not found: %s", productID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, domain.Errorf(domain.EUNAVAILABLE, "catalog.get_product", "catalog service returned status %d", resp.StatusCode)
	}

	var body productResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, domain.WrapError(err, domain.EUNAVAILABLE, "catalog.get_product", "failed to decode product response")
	}

	product := &domain.Product{
		ID:       body.ID,
		Name:     body.Name,
		Variants: make([]domain.Variant, 0, len(body.Variants)),
	}
	for _, v := range body.Variants {
		product.Variants = append(product.Variants, domain.Variant{
			ID:                v.ID,
			ProductID:         body.ID,
			PriceMRP:          v.Price,
			SellingPrice:      v.SellingPrice,
			Stock:             v.Stock,
			DisplayAttributes: v.Attributes,
		})
	}

	return product, nil
}
