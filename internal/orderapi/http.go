package orderapi

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

// HTTPClient implements Client against the order service's REST API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates an order service client for the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type createOrderRequest struct {
	UserID            string         `json:"user_id"`
	LineItems         []lineItemWire `json:"lineItems"`
	ShippingAddressID string         `json:"shippingAddressId"`
	TotalAmount       int32          `json:"total_amount"`
}

type lineItemWire struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId"`
	Quantity  int32  `json:"quantity"`
}

type createOrderResponse struct {
	InternalOrderID     string `json:"internalOrderId"`
	GatewayOrderID      string `json:"gatewayOrderId"`
	PaymentSessionToken string `json:"paymentSessionToken"`
}

type orderWire struct {
	InternalOrderID string         `json:"internalOrderId"`
	GatewayOrderID  string         `json:"gatewayOrderId"`
	OrderStatus     string         `json:"orderStatus"`
	PaymentStatus   string         `json:"paymentStatus"`
	Items           []orderItemRow `json:"items"`
	ShippingAddrRef string         `json:"shippingAddressId"`
	ItemsPrice      int32          `json:"itemsPrice"`
	TaxPrice        int32          `json:"taxPrice"`
	TotalPrice      int32          `json:"totalPrice"`
	CreatedAt       time.Time      `json:"createdAt"`
}

type orderItemRow struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId"`
	Quantity  int32  `json:"quantity"`
	UnitPrice int32  `json:"unitPrice"`
}

func (c *HTTPClient) CreateOrder(ctx context.Context, params CreateOrderParams) (*CreateOrderResult, error) {
	body := createOrderRequest{
		UserID:            params.UserID,
		ShippingAddressID: params.ShippingAddressID,
		TotalAmount:       params.TotalAmount,
		LineItems:         make([]lineItemWire, 0, len(params.Items)),
	}
	for _, li := range params.Items {
		body.LineItems = append(body.LineItems, lineItemWire{
			ProductID: li.ProductID,
			VariantID: li.VariantID,
			Quantity:  li.Quantity,
		})
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if params.IdempotencyKey != "" {
		req.Header.Set("Idempotency-Key", params.IdempotencyKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domain.WrapError(err, domain.EUNAVAILABLE, "order.create", "order service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.Errorf(domain.EUNAVAILABLE, "order.create", "order service returned status %d", resp.StatusCode)
	}

	var wire createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, domain.WrapError(err, domain.EUNAVAILABLE, "order.create", "failed to decode order response")
	}

	return &CreateOrderResult{
		InternalOrderID:     wire.InternalOrderID,
		GatewayOrderID:      wire.GatewayOrderID,
		PaymentSessionToken: wire.PaymentSessionToken,
	}, nil
}

func (c *HTTPClient) GetOrder(ctx context.Context, internalOrderID string) (*domain.OrderRecord, error) {
	u := fmt.Sprintf("%s/orders/%s", c.baseURL, url.PathEscape(internalOrderID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build order fetch request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domain.WrapError(err, domain.EUNAVAILABLE, "order.get", "order service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.Errorf(domain.ENOTFOUND, "order.get", "order not found: %s", internalOrderID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, domain.Errorf(domain.EUNAVAILABLE, "order.get", "order service returned status %d", resp.StatusCode)
	}

	var wire orderWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, domain.WrapError(err, domain.EUNAVAILABLE, "order.get", "failed to decode order record")
	}

	record := &domain.OrderRecord{
		InternalOrderID: wire.InternalOrderID,
		GatewayOrderID:  wire.GatewayOrderID,
		OrderStatus:     domain.OrderStatus(wire.OrderStatus),
		PaymentStatus:   domain.PaymentStatus(wire.PaymentStatus),
		ShippingAddrRef: wire.ShippingAddrRef,
		ItemsPrice:      wire.ItemsPrice,
		TaxPrice:        wire.TaxPrice,
		TotalPrice:      wire.TotalPrice,
		CreatedAt:       wire.CreatedAt,
		Items:           make([]domain.LineItem, 0, len(wire.Items)),
	}
	for _, row := range wire.Items {
		record.Items = append(record.Items, domain.LineItem{
			ProductID: row.ProductID,
			VariantID: row.VariantID,
			Quantity:  row.Quantity,
			UnitPrice: row.UnitPrice,
		})
	}
	return record, nil
}
