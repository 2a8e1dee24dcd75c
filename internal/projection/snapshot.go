package projection

import (
	"context"
	"fmt"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/event"
)

const SnapshotActor = "snapshot-writer"

// SnapshotPolicy snapshots every Interval events. A zero interval disables it.
type SnapshotPolicy struct {
	Interval int
}

func (p SnapshotPolicy) ShouldSnapshot(version int) bool {
	return p.Interval > 0 && version > 0 && version%p.Interval == 0
}

// Crossed reports whether any version in (from, to] is a snapshot point.
func (p SnapshotPolicy) Crossed(from, to int) bool {
	for v := from + 1; v <= to; v++ {
		if p.ShouldSnapshot(v) {
			return true
		}
	}
	return false
}

type CartReader interface {
	GetCart(ctx context.Context, cartID int64) (entity.Cart, error)
}

type Appender interface {
	Append(ctx context.Context, cartID int64, payloads []event.Payload, causedBy string) (int, error)
}

type SnapshotWriter struct {
	carts  CartReader
	events Appender
}

func NewSnapshotWriter(carts CartReader, events Appender) *SnapshotWriter {
	return &SnapshotWriter{carts: carts, events: events}
}

// Write appends a CartSnapshotV1 built from the current read model. The event
// store assigns its version; asOf only records what triggered it.
func (w *SnapshotWriter) Write(ctx context.Context, cartID int64, asOf int) (int, error) {
	cart, err := w.carts.GetCart(ctx, cartID)
	if err != nil {
		return 0, fmt.Errorf("snapshot: read cart %d: %w", cartID, err)
	}
	version, err := w.events.Append(ctx, cartID, []event.Payload{
		event.CartSnapshotV1{AsOfVersion: asOf, Summary: Summarize(cart)},
	}, SnapshotActor)
	if err != nil {
		return 0, fmt.Errorf("snapshot: append for cart %d: %w", cartID, err)
	}
	return version, nil
}

func Summarize(cart entity.Cart) event.CartSummary {
	lines := make([]event.LineSummary, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, event.LineSummary{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return event.CartSummary{
		UserID:         cart.UserID,
		Active:         cart.IsActive,
		Locked:         cart.Locked,
		CouponCode:     cart.CouponCode,
		ShippingMethod: cart.ShippingMethod,
		PaymentMethod:  cart.PaymentMethod,
		Lines:          lines,
		Subtotal:       cart.Subtotal,
		Discount:       cart.Discount,
		Shipping:       cart.ShippingCost,
		Total:          cart.Total,
	}
}
