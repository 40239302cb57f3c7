package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"ordersvc/internal/service/models/apperrors"
	"ordersvc/internal/service/services/ordersvc"
	"ordersvc/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	CreateOrder(ctx context.Context, params ordersvc.CreateOrderParams) (string, error)
}

// itemInCreateOrderRequest represents an item in a create order request.
type itemInCreateOrderRequest struct {
	Sku      string `json:"sku"      validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// createOrderRequest represents a create order request. OrderId is
// optional; the service generates one when it is absent.
type createOrderRequest struct {
	OrderId    string                     `json:"orderId"`
	CustomerId string                     `json:"customerId" validate:"required"`
	Items      []itemInCreateOrderRequest `json:"items"      validate:"required,min=1,dive"`
}

// Validate validates the create order request.
func (r *createOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

func (r *createOrderRequest) toParams() ordersvc.CreateOrderParams {
	items := make([]ordersvc.CreateOrderItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = ordersvc.CreateOrderItem{
			SKU:      item.Sku,
			Quantity: item.Quantity,
		}
	}

	return ordersvc.CreateOrderParams{
		OrderID:    r.OrderId,
		CustomerID: r.CustomerId,
		Items:      items,
	}
}

type createOrderResponse struct {
	Message string `json:"message"`
	Data    struct {
		OrderId string `json:"orderId"`
	} `json:"data"`
}

// CreateOrder handles the create order request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	orderReq := createOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&orderReq); err != nil {
		httperr.Write(w, apperrors.Validation("failed to decode request body"))
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	if err := orderReq.Validate(); err != nil {
		httperr.Write(w, apperrors.Validation(err.Error()))
		slog.Error("Error validating request body for create order", "error", err)

		return
	}

	orderID, err := service.CreateOrder(r.Context(), orderReq.toParams())
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error creating order", "error", err)

		return
	}

	resp := createOrderResponse{Message: "Order created successfully"}
	resp.Data.OrderId = orderID

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Error sending response for create order", "error", err)
	}
}
