package getorder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordersvc/internal/service/models/apperrors"
	"ordersvc/internal/service/models/currency"
	"ordersvc/internal/service/models/money"
	"ordersvc/internal/service/models/order"
	"ordersvc/internal/service/models/orderitem"
	"ordersvc/internal/service/models/quantity"
	"ordersvc/internal/service/models/sku"
)

type serviceMock struct {
	order *order.Order
	err   error
	id    string
}

func (m *serviceMock) GetOrder(_ context.Context, id string) (*order.Order, error) {
	m.id = id

	return m.order, m.err
}

func newTestRouter(mock *serviceMock) http.Handler {
	router := chi.NewRouter()
	router.Get("/api/orders/{orderId}", func(w http.ResponseWriter, r *http.Request) {
		GetOrder(w, r, mock)
	})

	return router
}

func testOrder(t *testing.T) *order.Order {
	t.Helper()

	abc, err := sku.New("SKU-ABC")
	require.NoError(t, err)
	qty, err := quantity.New(3)
	require.NoError(t, err)
	price, err := money.New(10, currency.CurrencyUSD)
	require.NoError(t, err)

	o, err := order.Restore(
		"ORDER-001",
		"CUSTOMER-123",
		time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC),
		[]orderitem.OrderItem{orderitem.New(abc, qty, price)},
	)
	require.NoError(t, err)

	return o
}

func TestGetOrder(t *testing.T) {
	t.Parallel()

	mock := &serviceMock{order: testOrder(t)}

	req := httptest.NewRequest(http.MethodGet, "/api/orders/ORDER-001", nil)
	rec := httptest.NewRecorder()

	newTestRouter(mock).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ORDER-001", mock.id)

	var resp orderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "ORDER-001", resp.Id)
	assert.Equal(t, "CUSTOMER-123", resp.CustomerId)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "SKU-ABC", resp.Items[0].Sku)
	assert.Equal(t, 3, resp.Items[0].Quantity)
	assert.Equal(t, 10.0, resp.Items[0].UnitPrice.Amount)
	assert.Equal(t, "USD", resp.Items[0].UnitPrice.Currency)
	assert.Equal(t, map[string]float64{"USD": 30}, resp.TotalsByCurrency)
}

func TestGetOrderErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "not found", err: apperrors.NotFound("order not found"), expectedStatus: http.StatusNotFound},
		{name: "validation", err: apperrors.Validation("orderId is required"), expectedStatus: http.StatusBadRequest},
		{name: "infra", err: apperrors.Infra("db down", nil), expectedStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := &serviceMock{err: tt.err}

			req := httptest.NewRequest(http.MethodGet, "/api/orders/ORDER-404", nil)
			rec := httptest.NewRecorder()

			newTestRouter(mock).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
