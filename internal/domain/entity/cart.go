package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CouponPercent = "percent"
	CouponFixed   = "fixed"
)

type Cart struct {
	ID             int64           `gorm:"primaryKey;autoIncrement"`
	UserID         string          `gorm:"not null;default:'';index"`
	IsActive       bool            `gorm:"not null;default:true"`
	Locked         bool            `gorm:"not null;default:false"`
	CouponCode     string          `gorm:"not null;default:''"`
	CouponKind     string          `gorm:"not null;default:''"`
	CouponAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	ShippingMethod string          `gorm:"not null;default:''"`
	ShippingCost   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	PaymentMethod  string          `gorm:"not null;default:''"`
	Subtotal       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Discount       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Total          decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
	Items          []CartItem      `gorm:"foreignKey:CartID"`
	SavedItems     []SavedItem     `gorm:"foreignKey:CartID"`
}

func (Cart) TableName() string {
	return "carts"
}

type CartItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	CartID    int64           `gorm:"not null;index"`
	ProductID int64           `gorm:"not null"`
	SKU       string          `gorm:"not null;default:''"`
	Name      string          `gorm:"not null;default:''"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

type SavedItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	CartID    int64           `gorm:"not null;index"`
	ProductID int64           `gorm:"not null"`
	SKU       string          `gorm:"not null;default:''"`
	Name      string          `gorm:"not null;default:''"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	SavedAt   time.Time       `gorm:"not null"`
}

func (SavedItem) TableName() string {
	return "cart_saved_items"
}

type CartTotals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals derives the cart totals from its lines, coupon and shipping.
// The discount never exceeds the subtotal.
func ComputeTotals(items []CartItem, couponKind string, couponAmount, shipping decimal.Decimal) CartTotals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	discount := decimal.Zero
	switch couponKind {
	case CouponPercent:
		discount = subtotal.Mul(couponAmount).Div(decimal.NewFromInt(100))
	case CouponFixed:
		discount = couponAmount
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	subtotal = subtotal.Round(2)
	discount = discount.Round(2)
	shipping = shipping.Round(2)
	return CartTotals{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Total:    subtotal.Sub(discount).Add(shipping),
	}
}

func (c Cart) ComputeTotals() CartTotals {
	return ComputeTotals(c.Items, c.CouponKind, c.CouponAmount, c.ShippingCost)
}

func (c Cart) FindItem(productID int64) (CartItem, bool) {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return CartItem{}, false
}
