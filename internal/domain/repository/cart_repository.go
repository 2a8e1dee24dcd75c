package repository

import (
	"context"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CartMutator is the mutation surface of the cart read model. Command
// handlers and the projector change cart state only through it.
type CartMutator interface {
	// CreateCart inserts the cart header. A zero ID lets the store assign one.
	CreateCart(ctx context.Context, cart entity.Cart) (entity.Cart, error)
	GetCart(ctx context.Context, cartID int64) (entity.Cart, error)
	// AddItem adds a line, merging the quantity into an existing line for the same product.
	AddItem(ctx context.Context, cartID int64, item entity.CartItem) (entity.CartItem, error)
	UpdateItemQuantity(ctx context.Context, cartID, itemID int64, quantity int) error
	RemoveItem(ctx context.Context, cartID, itemID int64) error
	FindItem(ctx context.Context, cartID, productID int64) (entity.CartItem, error)
	ApplyCoupon(ctx context.Context, cartID int64, code, kind string, amount decimal.Decimal) error
	RemoveCoupon(ctx context.Context, cartID int64) error
	SelectShipping(ctx context.Context, cartID int64, method string, cost decimal.Decimal) error
	SetPayment(ctx context.Context, cartID int64, method string) error
	ClearCart(ctx context.Context, cartID int64) error
	SaveForLater(ctx context.Context, cartID, itemID int64) error
	MoveToCart(ctx context.Context, cartID, productID int64) error
	Deactivate(ctx context.Context, cartID int64) error
	Unlock(ctx context.Context, cartID int64) error
	RecalculateTotals(ctx context.Context, cartID int64) (entity.CartTotals, error)
	// ResetCart removes the cart and all its lines so it can be rebuilt.
	ResetCart(ctx context.Context, cartID int64) error
}
