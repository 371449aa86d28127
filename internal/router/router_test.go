package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tag(name string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Order", name)
			next.ServeHTTP(w, r)
		})
	}
}

func TestRouterMethodScoping(t *testing.T) {
	r := New()
	r.Get("/cart", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/cart", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouterMiddlewareOrder(t *testing.T) {
	r := New(tag("global"))
	group := r.Group(tag("group"))
	group.Post("/checkout/place-order", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, tag("route"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/checkout/place-order", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"global", "group", "route"}, rec.Header().Values("X-Order"))
}

func TestRouterPathValues(t *testing.T) {
	r := New()
	var got string
	r.Post("/cart/items/{lineID}/increase", func(w http.ResponseWriter, req *http.Request) {
		got = req.PathValue("lineID")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items/line-7/increase", nil))
	assert.Equal(t, "line-7", got)
}
