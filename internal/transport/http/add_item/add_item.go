package additem

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"ordersvc/internal/service/models/apperrors"
	"ordersvc/internal/service/services/ordersvc"
	"ordersvc/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	AddItem(ctx context.Context, params ordersvc.AddItemParams) error
}

// addItemRequest represents an add item request body.
type addItemRequest struct {
	Sku      string `json:"sku"      validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// Validate validates the add item request.
func (r *addItemRequest) Validate() error {
	return validator.New().Struct(r)
}

type addItemResponse struct {
	Message string `json:"message"`
	Data    struct {
		OrderId string `json:"orderId"`
	} `json:"data"`
}

// AddItem handles the add item request.
func AddItem(w http.ResponseWriter, r *http.Request, service service) {
	orderID := chi.URLParam(r, "orderId")

	itemReq := addItemRequest{}
	if err := json.NewDecoder(r.Body).Decode(&itemReq); err != nil {
		httperr.Write(w, apperrors.Validation("failed to decode request body"))
		slog.Error("Error decoding request body for add item", "error", err)

		return
	}

	if err := itemReq.Validate(); err != nil {
		httperr.Write(w, apperrors.Validation(err.Error()))
		slog.Error("Error validating request body for add item", "error", err)

		return
	}

	err := service.AddItem(r.Context(), ordersvc.AddItemParams{
		OrderID:  orderID,
		SKU:      itemReq.Sku,
		Quantity: itemReq.Quantity,
	})
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error adding item to order", "order_id", orderID, "error", err)

		return
	}

	resp := addItemResponse{Message: "Item added successfully"}
	resp.Data.OrderId = orderID

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Error sending response for add item", "error", err)
	}
}
