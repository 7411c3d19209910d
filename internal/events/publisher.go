// Package events publishes domain events to NATS so downstream consumers
// (fulfillment, analytics) can react to checkouts and stock changes without
// polling the database. Publishing is best-effort: a failed publish is logged
// and never fails the originating request.
package events

import (
	"encoding/json"
	"log/slog"

	"github.com/ezelectronics/ezelectronics/internal/domain"
	"github.com/nats-io/nats.go"
)

const (
	SubjectCartCheckedOut    = "carts.checked_out"
	SubjectInventoryAdjusted = "inventory.adjusted"
)

// Publisher emits domain events. Implementations must be safe for concurrent
// use and must never block the caller beyond a quick in-memory enqueue.
type Publisher interface {
	CartCheckedOut(cart domain.Cart)
	InventoryAdjusted(model string, delta, newQuantity int)
}

// CheckoutEvent is the payload published on SubjectCartCheckedOut.
type CheckoutEvent struct {
	Customer    string  `json:"customer"`
	PaymentDate string  `json:"paymentDate"`
	Total       float64 `json:"total"`
	ItemCount   int     `json:"itemCount"`
}

// InventoryEvent is the payload published on SubjectInventoryAdjusted.
type InventoryEvent struct {
	Model       string `json:"model"`
	Delta       int    `json:"delta"`
	NewQuantity int    `json:"newQuantity"`
}

// NATSPublisher publishes events over a NATS connection.
type NATSPublisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

// Connect dials the NATS server and returns a publisher bound to it.
func Connect(url string, logger *slog.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("ezelectronics"))
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{conn: conn, logger: logger}, nil
}

// Close drains the connection, flushing any buffered publishes.
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("failed to drain NATS connection", "error", err)
	}
}

func (p *NATSPublisher) CartCheckedOut(cart domain.Cart) {
	itemCount := 0
	for _, item := range cart.Products {
		itemCount += item.Quantity
	}
	p.publish(SubjectCartCheckedOut, CheckoutEvent{
		Customer:    cart.Customer,
		PaymentDate: cart.PaymentDate,
		Total:       cart.Total,
		ItemCount:   itemCount,
	})
}

func (p *NATSPublisher) InventoryAdjusted(model string, delta, newQuantity int) {
	p.publish(SubjectInventoryAdjusted, InventoryEvent{
		Model:       model,
		Delta:       delta,
		NewQuantity: newQuantity,
	})
}

func (p *NATSPublisher) publish(subject string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Warn("failed to encode event", "subject", subject, "error", err)
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

// NopPublisher discards all events. Used when no NATS URL is configured.
type NopPublisher struct{}

func (NopPublisher) CartCheckedOut(domain.Cart)         {}
func (NopPublisher) InventoryAdjusted(string, int, int) {}
