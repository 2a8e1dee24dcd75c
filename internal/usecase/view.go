package usecase

import (
	"time"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/event"
	"github.com/shopspring/decimal"
)

type CartView struct {
	ID             int64           `json:"id"`
	UserID         string          `json:"user_id,omitempty"`
	Version        int             `json:"version"`
	Active         bool            `json:"active"`
	Locked         bool            `json:"locked"`
	CouponCode     string          `json:"coupon_code,omitempty"`
	ShippingMethod string          `json:"shipping_method,omitempty"`
	PaymentMethod  string          `json:"payment_method,omitempty"`
	Items          []ItemView      `json:"items"`
	SavedItems     []ItemView      `json:"saved_items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Discount       decimal.Decimal `json:"discount"`
	Shipping       decimal.Decimal `json:"shipping"`
	Total          decimal.Decimal `json:"total"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type ItemView struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	SKU       string          `json:"sku,omitempty"`
	Name      string          `json:"name,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func newCartView(cart entity.Cart, version int) CartView {
	view := CartView{
		ID:             cart.ID,
		UserID:         cart.UserID,
		Version:        version,
		Active:         cart.IsActive,
		Locked:         cart.Locked,
		CouponCode:     cart.CouponCode,
		ShippingMethod: cart.ShippingMethod,
		PaymentMethod:  cart.PaymentMethod,
		Items:          make([]ItemView, 0, len(cart.Items)),
		SavedItems:     make([]ItemView, 0, len(cart.SavedItems)),
		Subtotal:       cart.Subtotal,
		Discount:       cart.Discount,
		Shipping:       cart.ShippingCost,
		Total:          cart.Total,
		UpdatedAt:      cart.UpdatedAt,
	}
	for _, item := range cart.Items {
		view.Items = append(view.Items, ItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			SKU:       item.SKU,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	for _, item := range cart.SavedItems {
		view.SavedItems = append(view.SavedItems, ItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			SKU:       item.SKU,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return view
}

type EventView struct {
	Version    int           `json:"version"`
	Type       string        `json:"type"`
	OccurredAt time.Time     `json:"occurred_at"`
	CausedBy   string        `json:"caused_by,omitempty"`
	Data       event.Payload `json:"data"`
}

type HistoryPage struct {
	CartID     int64       `json:"cart_id"`
	Events     []EventView `json:"events"`
	Skipped    int         `json:"skipped"`
	NextCursor string      `json:"next_cursor,omitempty"`
}

// CartChanged is the integration message enqueued for every accepted command.
type CartChanged struct {
	CartID     int64           `json:"cart_id"`
	UserID     string          `json:"user_id,omitempty"`
	Version    int             `json:"version"`
	Events     []string        `json:"events"`
	Total      decimal.Decimal `json:"total"`
	OccurredAt time.Time       `json:"occurred_at"`
}
