package getorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ordersvc/internal/service/models/order"
	"ordersvc/internal/transport/http/httperr"
)

// service is an interface for the service layer.
type service interface {
	GetOrder(ctx context.Context, id string) (*order.Order, error)
}

type moneyResponse struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type orderItemResponse struct {
	Sku       string        `json:"sku"`
	Quantity  int           `json:"quantity"`
	UnitPrice moneyResponse `json:"unitPrice"`
}

type orderResponse struct {
	Id               string              `json:"id"`
	CustomerId       string              `json:"customerId"`
	CreatedAt        time.Time           `json:"createdAt"`
	Items            []orderItemResponse `json:"items"`
	TotalsByCurrency map[string]float64  `json:"totalsByCurrency"`
}

func toResponse(o *order.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, orderItemResponse{
			Sku:      item.SKU.String(),
			Quantity: item.Quantity.Int(),
			UnitPrice: moneyResponse{
				Amount:   item.UnitPrice.Amount,
				Currency: item.UnitPrice.Currency.String(),
			},
		})
	}

	totals := make(map[string]float64)
	for cur, amount := range o.TotalsByCurrency() {
		totals[cur.String()] = amount
	}

	return orderResponse{
		Id:               o.ID(),
		CustomerId:       o.CustomerID(),
		CreatedAt:        o.CreatedAt(),
		Items:            items,
		TotalsByCurrency: totals,
	}
}

// GetOrder handles the get order request.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	orderID := chi.URLParam(r, "orderId")

	o, err := service.GetOrder(r.Context(), orderID)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error getting order", "order_id", orderID, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toResponse(o)); err != nil {
		slog.Error("Error sending response for get order", "error", err)
	}
}
