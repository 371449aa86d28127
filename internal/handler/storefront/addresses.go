package storefront

import (
	"log/slog"
	"net/http"

	"github.com/sawaikart/padharo/internal/addressbook"
	"github.com/sawaikart/padharo/internal/domain"
	"github.com/sawaikart/padharo/internal/middleware"
	"github.com/sawaikart/padharo/internal/service"
)

// AddressHandler serves the address book routes and the serviceability
// verdict derived from the current selection.
type AddressHandler struct {
	registry *service.Registry
	logger   *slog.Logger
}

// NewAddressHandler creates the address handler.
func NewAddressHandler(registry *service.Registry, logger *slog.Logger) *AddressHandler {
	return &AddressHandler{
		registry: registry,
		logger:   logger,
	}
}

type addressResponse struct {
	ID          string `json:"id"`
	Label       string `json:"label,omitempty"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state,omitempty"`
	ZipCode     string `json:"zip_code"`
	Country     string `json:"country,omitempty"`
	IsDefault   bool   `json:"is_default,omitempty"`
	IsTemporary bool   `json:"is_temporary,omitempty"`
}

type verdictResponse struct {
	Serviceable bool   `json:"serviceable"`
	Reason      string `json:"reason,omitempty"`
}

func toAddressResponse(a domain.Address) addressResponse {
	return addressResponse{
		ID:          a.ID,
		Label:       a.Label,
		Name:        a.Name,
		Phone:       a.Phone,
		Street:      a.Street,
		City:        a.City,
		State:       a.State,
		ZipCode:     a.ZipCode,
		Country:     a.Country,
		IsDefault:   a.IsDefault,
		IsTemporary: a.IsTemporary,
	}
}

func toVerdictResponse(v domain.ServiceabilityVerdict) verdictResponse {
	return verdictResponse{Serviceable: v.Serviceable, Reason: v.Reason}
}

// List returns the authenticated user's saved addresses.
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	if !actor.Authenticated {
		respondError(w, r, domain.Errorf(domain.EUNAUTHORIZED, "address.list", "Sign in to see your saved addresses"))
		return
	}

	bundle := h.registry.For(actor)
	addrs, err := bundle.Addresses.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]addressResponse, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, toAddressResponse(a))
	}
	respondJSON(w, http.StatusOK, map[string]any{"addresses": out})
}

// Upsert creates or updates an address. For a guest the address stays
// transient; nothing is persisted until they sign in.
func (h *AddressHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var payload addressbook.AddressPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, r, err)
		return
	}
	if id := r.PathValue("id"); id != "" {
		payload.ID = id
	}

	actor := middleware.GetActor(r.Context())
	bundle := h.registry.For(actor)

	var (
		addr *domain.Address
		err  error
	)
	if actor.Authenticated {
		addr, err = bundle.Addresses.CreateOrUpdate(r.Context(), payload)
	} else {
		addr, err = bundle.Addresses.SetGuestAddress(payload)
	}
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"address":        toAddressResponse(*addr),
		"serviceability": toVerdictResponse(bundle.Addresses.CurrentServiceability()),
	})
}

// Select picks a saved address; the serviceability verdict in the response
// was recomputed for it synchronously.
func (h *AddressHandler) Select(w http.ResponseWriter, r *http.Request) {
	bundle := h.registry.For(middleware.GetActor(r.Context()))

	verdict, err := bundle.Addresses.Select(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"serviceability": toVerdictResponse(verdict)})
}

// Delete removes a saved address.
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	bundle := h.registry.For(middleware.GetActor(r.Context()))

	if err := bundle.Addresses.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

// Serviceability returns the verdict for the current selection.
func (h *AddressHandler) Serviceability(w http.ResponseWriter, r *http.Request) {
	bundle := h.registry.For(middleware.GetActor(r.Context()))

	body := map[string]any{
		"serviceability": toVerdictResponse(bundle.Addresses.CurrentServiceability()),
	}
	if selected := bundle.Addresses.Selected(); selected != nil {
		body["selected_address_id"] = selected.ID
	}
	respondJSON(w, http.StatusOK, body)
}

type validateFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// ValidateField runs the character-level digit check used by the phone and
// PIN inputs while the user types.
func (h *AddressHandler) ValidateField(w http.ResponseWriter, r *http.Request) {
	var req validateFieldRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := addressbook.ValidateDigits(req.Field, req.Value); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"valid": true})
}
