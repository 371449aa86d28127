// Package storefront holds the customer-facing JSON handlers for the cart,
// address book, checkout flow, and order confirmation.
package storefront

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sawaikart/padharo/internal/domain"
	"github.com/sawaikart/padharo/internal/middleware"
)

// respondJSON writes a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps a domain error to its HTTP status and renders the
// {error: {code, message}} body. Validation errors additionally carry the
// per-field messages.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	code := domain.ErrorCode(err)
	message := domain.ErrorMessage(err)

	body := map[string]any{
		"code":    code,
		"message": message,
	}
	if fields := domain.GetValidationFields(err); fields != nil {
		body["code"] = domain.EINVALID
		body["message"] = "Please correct the highlighted fields"
		body["fields"] = fields
	}

	logger := middleware.GetLogger(r.Context())
	attrs := []any{
		"error", err.Error(),
		"status", status,
	}
	if status >= 500 {
		logger.Error("request failed", attrs...)
	} else {
		logger.Info("request rejected", attrs...)
	}

	respondJSON(w, status, map[string]any{"error": body})
}

// statusForError maps error kinds to HTTP statuses. Business-rule
// rejections (serviceability, form validation) render as 422; upstream
// unavailability renders as 503 so clients know to retry.
func statusForError(err error) int {
	if domain.IsValidationError(err) || errors.Is(err, domain.ErrNotServiceable) {
		return http.StatusUnprocessableEntity
	}

	switch domain.ErrorCode(err) {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EPAYMENT:
		return http.StatusPaymentRequired
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a JSON request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Errorf(domain.EINVALID, "http.decode", "invalid request body")
	}
	return nil
}

// cartResponse is the wire shape for cart snapshots.
type cartResponse struct {
	Items     []cartLineResponse `json:"items"`
	Subtotal  int32              `json:"subtotal"`
	ItemCount int                `json:"item_count"`
}

type cartLineResponse struct {
	LineID       string `json:"line_id"`
	ProductID    string `json:"product_id"`
	VariantID    string `json:"variant_id"`
	Quantity     int32  `json:"quantity"`
	UnitPrice    int32  `json:"unit_price"`
	LineSubtotal int32  `json:"line_subtotal"`
}

func toCartResponse(snap *domain.CartSnapshot) cartResponse {
	out := cartResponse{
		Items:     make([]cartLineResponse, 0, len(snap.Items)),
		Subtotal:  snap.Total(),
		ItemCount: snap.ItemCount(),
	}
	for _, li := range snap.Items {
		out.Items = append(out.Items, cartLineResponse{
			LineID:       li.LineID,
			ProductID:    li.ProductID,
			VariantID:    li.VariantID,
			Quantity:     li.Quantity,
			UnitPrice:    li.UnitPrice,
			LineSubtotal: li.LineSubtotal(),
		})
	}
	return out
}
