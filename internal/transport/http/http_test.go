package httptransport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordersvc/internal/service/models/apperrors"
	"ordersvc/internal/service/models/order"
	"ordersvc/internal/service/services/ordersvc"
)

type serviceMock struct {
	getOrderErr error
	probedID    string
}

func (m *serviceMock) CreateOrder(context.Context, ordersvc.CreateOrderParams) (string, error) {
	return "", nil
}

func (m *serviceMock) AddItem(context.Context, ordersvc.AddItemParams) error {
	return nil
}

func (m *serviceMock) GetOrder(_ context.Context, id string) (*order.Order, error) {
	m.probedID = id

	if m.getOrderErr != nil {
		return nil, m.getOrderErr
	}

	return order.Restore(id, "CUSTOMER-123", time.Now().UTC(), nil)
}

func TestHealthOK(t *testing.T) {
	mock := &serviceMock{getOrderErr: apperrors.NotFound("order not found")}

	transport := NewHTTPTransport(mock)
	transport.RegisterRoutes()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	transport.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, healthCheckProbeID, mock.probedID)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestHealthStorageFailure(t *testing.T) {
	mock := &serviceMock{getOrderErr: apperrors.Infra("db down", nil)}

	transport := NewHTTPTransport(mock)
	transport.RegisterRoutes()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	transport.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
}

func TestRoutesAreRegistered(t *testing.T) {
	mock := &serviceMock{}

	transport := NewHTTPTransport(mock)
	transport.RegisterRoutes()

	req := httptest.NewRequest(http.MethodGet, "/api/orders/ORDER-001", nil)
	rec := httptest.NewRecorder()

	transport.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ORDER-001", mock.probedID)
}
