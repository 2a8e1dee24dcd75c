package usecase

import (
	"fmt"
	"strings"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Command is a request to change one cart. Name must work on the zero value;
// the registry keys handlers by it.
type Command interface {
	CommandName() string
	Validate() error
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{repository.ErrValidation}, args...)...)
}

func requireCart(cartID int64) error {
	if cartID <= 0 {
		return invalid("cart id must be positive")
	}
	return nil
}

type CreateCart struct {
	UserID string `json:"user_id"`
}

func (CreateCart) CommandName() string { return "CreateCart" }

func (c CreateCart) Validate() error {
	if len(c.UserID) > 64 {
		return invalid("user id is too long")
	}
	return nil
}

type AddItem struct {
	CartID    int64           `json:"cart_id"`
	ProductID int64           `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func (AddItem) CommandName() string { return "AddItem" }

func (c AddItem) Validate() error {
	if err := requireCart(c.CartID); err != nil {
		return err
	}
	if c.ProductID <= 0 {
		return invalid("product id must be positive")
	}
	if c.Quantity <= 0 {
		return invalid("quantity must be positive")
	}
	if c.UnitPrice.IsNegative() {
		return invalid("unit price must not be negative")
	}
	return nil
}

type UpdateItemQuantity struct {
	CartID   int64 `json:"cart_id"`
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

func (UpdateItemQuantity) CommandName() string { return "UpdateItemQuantity" }

func (c UpdateItemQuantity) Validate() error {
	if err := requireCart(c.CartID); err != nil {
		return err
	}
	if c.ItemID <= 0 {
		return invalid("item id must be positive")
	}
	if c.Quantity <= 0 {
		return invalid("quantity must be positive, remove the item instead")
	}
	return nil
}

type RemoveItem struct {
	CartID int64 `json:"cart_id"`
	ItemID int64 `json:"item_id"`
}

func (RemoveItem) CommandName() string { return "RemoveItem" }

func (c RemoveItem) Validate() error {
	if err := requireCart(c.CartID); err != nil {
		return err
	}
	if c.ItemID <= 0 {
		return invalid("item id must be positive")
	}
	return nil
}

type ApplyCoupon struct {
	CartID int64           `json:"cart_id"`
	Code   string          `json:"code"`
	Kind   string          `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

func (ApplyCoupon) CommandName() string { return "ApplyCoupon" }

func (c ApplyCoupon) Validate() error {
	if err := requireCart(c.CartID); err != nil {
		return err
	}
	if strings.TrimSpace(c.Code) == "" {
		return invalid("coupon code is required")
	}
	if !c.Amount.IsPositive() {
		return invalid("coupon amount must be positive")
	}
	switch c.Kind {
	case entity.CouponPercent:
		if c.Amount.GreaterThan(decimal.NewFromInt(100)) {
			return invalid("percent coupon cannot exceed 100")
		}
	case entity.CouponFixed:
	default:
		return invalid("unknown coupon kind %q", c.Kind)
	}
	return nil
}

type RemoveCoupon struct {
	CartID int64 `json:"cart_id"`
}

func (RemoveCoupon) CommandName() string { return "RemoveCoupon" }

func (c RemoveCoupon) Validate() error { return requireCart(c.CartID) }

type SelectShipping struct {
	CartID int64           `json:"cart_id"`
	Method string          `json:"method"`
	Cost   decimal.Decimal `json:"cost"`
}

func (SelectShipping) CommandName() string { return "SelectShipping" }

func (c SelectShipping) Validate() error {
	if err := requireCart(c.CartID); err != nil {
		return err
	}
	if strings.TrimSpace(c.Method) == "" {
		return invalid("shipping method is required")
	}
	if c.Cost.IsNegative() {
		return invalid("shipping cost must not be negative")
	}
	return nil
}

type SetPayment struct {
	CartID int64  `json:"cart_id"`
	Method string `json:"method"`
}

func (SetPayment) CommandName() string { return "SetPayment" }

func (c SetPayment) Validate() error {
	if err := requireCart(c.CartID); err != nil {
		return err
	}
	if strings.TrimSpace(c.Method) == "" {
		return invalid("payment method is required")
	}
	return nil
}

type ClearCart struct {
	CartID int64 `json:"cart_id"`
}

func (ClearCart) CommandName() string { return "ClearCart" }

func (c ClearCart) Validate() error { return requireCart(c.CartID) }

type SaveForLater struct {
	CartID int64 `json:"cart_id"`
	ItemID int64 `json:"item_id"`
}

func (SaveForLater) CommandName() string { return "SaveForLater" }

func (c SaveForLater) Validate() error {
	if err := requireCart(c.CartID); err != nil {
		return err
	}
	if c.ItemID <= 0 {
		return invalid("item id must be positive")
	}
	return nil
}

type MoveToCart struct {
	CartID    int64 `json:"cart_id"`
	ProductID int64 `json:"product_id"`
}

func (MoveToCart) CommandName() string { return "MoveToCart" }

func (c MoveToCart) Validate() error {
	if err := requireCart(c.CartID); err != nil {
		return err
	}
	if c.ProductID <= 0 {
		return invalid("product id must be positive")
	}
	return nil
}

type DeactivateCart struct {
	CartID int64  `json:"cart_id"`
	Reason string `json:"reason"`
}

func (DeactivateCart) CommandName() string { return "DeactivateCart" }

func (c DeactivateCart) Validate() error { return requireCart(c.CartID) }
