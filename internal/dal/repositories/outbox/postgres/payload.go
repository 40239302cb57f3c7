package postgres

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ordersvc/internal/service/models/apperrors"
	"ordersvc/internal/service/models/currency"
	"ordersvc/internal/service/models/event"
	"ordersvc/internal/service/models/outbox"
)

// Payload DTOs. The shape is a stable contract with downstream
// consumers: every payload carries the event's own fields plus "name"
// and an RFC3339 "occurredOn"; consumers must ignore unknown fields.
type moneyPayload struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type orderCreatedPayload struct {
	OrderID    string `json:"orderId"`
	CustomerID string `json:"customerId"`
	Name       string `json:"name"`
	OccurredOn string `json:"occurredOn"`
}

type itemAddedPayload struct {
	OrderID    string       `json:"orderId"`
	Sku        string       `json:"sku"`
	Quantity   int          `json:"quantity"`
	UnitPrice  moneyPayload `json:"unitPrice"`
	Name       string       `json:"name"`
	OccurredOn string       `json:"occurredOn"`
}

type totalsRecalculatedPayload struct {
	OrderID          string             `json:"orderId"`
	TotalsByCurrency map[string]float64 `json:"totalsByCurrency"`
	Name             string             `json:"name"`
	OccurredOn       string             `json:"occurredOn"`
}

// encodeEvent turns a domain event into an outbox record. Failures here
// mean a programming error in a new event type, not a runtime condition
// to retry, so they surface as infra errors.
func encodeEvent(e event.Event, createdAt time.Time) (outbox.Message, error) {
	aggregateID := e.AggregateID()
	if strings.TrimSpace(aggregateID) == "" {
		return outbox.Message{}, apperrors.Infra(
			fmt.Sprintf("cannot resolve aggregate id for event %s", e.Name()), nil,
		)
	}

	aggregateType := e.AggregateType()
	if strings.TrimSpace(aggregateType) == "" {
		aggregateType, _, _ = strings.Cut(e.Name(), ".")
	}

	payload, err := encodePayload(e)
	if err != nil {
		return outbox.Message{}, err
	}

	return outbox.Message{
		ID:            uuid.New(),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     e.Name(),
		Payload:       payload,
		CreatedAt:     createdAt,
	}, nil
}

func encodePayload(e event.Event) ([]byte, error) {
	occurredOn := e.OccurredOn().UTC().Format(time.RFC3339Nano)

	var dto any
	switch ev := e.(type) {
	case event.OrderCreated:
		dto = orderCreatedPayload{
			OrderID:    ev.OrderID,
			CustomerID: ev.CustomerID,
			Name:       ev.Name(),
			OccurredOn: occurredOn,
		}
	case event.ItemAdded:
		dto = itemAddedPayload{
			OrderID:  ev.OrderID,
			Sku:      ev.SKU.String(),
			Quantity: ev.Quantity.Int(),
			UnitPrice: moneyPayload{
				Amount:   ev.UnitPrice.Amount,
				Currency: ev.UnitPrice.Currency.String(),
			},
			Name:       ev.Name(),
			OccurredOn: occurredOn,
		}
	case event.TotalsRecalculated:
		dto = totalsRecalculatedPayload{
			OrderID:          ev.OrderID,
			TotalsByCurrency: totalsToStrings(ev.Totals),
			Name:             ev.Name(),
			OccurredOn:       occurredOn,
		}
	default:
		return nil, apperrors.Infra(
			fmt.Sprintf("cannot serialize unknown event type %s", e.Name()), nil,
		)
	}

	payload, err := json.Marshal(dto)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	return payload, nil
}

func totalsToStrings(totals map[currency.Currency]float64) map[string]float64 {
	out := make(map[string]float64, len(totals))
	for cur, amount := range totals {
		out[cur.String()] = amount
	}

	return out
}
