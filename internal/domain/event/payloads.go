package event

import "github.com/shopspring/decimal"

const (
	TypeCartCreated          = "CartCreatedV1"
	TypeItemAdded            = "ItemAddedV1"
	TypeItemQuantityUpdated  = "ItemQuantityUpdatedV1"
	TypeItemRemoved          = "ItemRemovedV1"
	TypeCouponApplied        = "CouponAppliedV1"
	TypeCouponRemoved        = "CouponRemovedV1"
	TypeShippingSelected     = "ShippingSelectedV1"
	TypeTotalsRecalculated   = "TotalsRecalculatedV1"
	TypeCartCleared          = "CartClearedV1"
	TypeItemSavedForLater    = "ItemSavedForLaterV1"
	TypeSavedItemMovedToCart = "SavedItemMovedToCartV1"
	TypePaymentSet           = "PaymentSetV1"
	TypeCartDeactivated      = "CartDeactivatedV1"
	TypeCartSnapshot         = "CartSnapshotV1"
)

type CartCreatedV1 struct {
	UserID string `json:"userId"`
}

type ItemAddedV1 struct {
	ProductID int64           `json:"productId"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type ItemQuantityUpdatedV1 struct {
	ItemID    int64 `json:"itemId"`
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// ItemRemovedV1 carries the product as well as the read-model row id. The row
// id does not survive a replay, so projections resolve the line by product.
type ItemRemovedV1 struct {
	ItemID    int64 `json:"itemId"`
	ProductID int64 `json:"productId"`
}

type CouponAppliedV1 struct {
	Code   string          `json:"code"`
	Kind   string          `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

type CouponRemovedV1 struct {
	Code string `json:"code"`
}

type ShippingSelectedV1 struct {
	Method string          `json:"method"`
	Cost   decimal.Decimal `json:"cost"`
}

type TotalsRecalculatedV1 struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

type CartClearedV1 struct{}

type ItemSavedForLaterV1 struct {
	ItemID    int64 `json:"itemId"`
	ProductID int64 `json:"productId"`
}

type SavedItemMovedToCartV1 struct {
	ProductID int64 `json:"productId"`
}

type PaymentSetV1 struct {
	Method string `json:"method"`
}

type CartDeactivatedV1 struct {
	Reason string `json:"reason,omitempty"`
}

// CartSnapshotV1 is a read optimisation marker. Projections ignore it.
type CartSnapshotV1 struct {
	AsOfVersion int         `json:"asOfVersion"`
	Summary     CartSummary `json:"summary"`
}

type CartSummary struct {
	UserID         string          `json:"userId"`
	Active         bool            `json:"active"`
	Locked         bool            `json:"locked"`
	CouponCode     string          `json:"couponCode,omitempty"`
	ShippingMethod string          `json:"shippingMethod,omitempty"`
	PaymentMethod  string          `json:"paymentMethod,omitempty"`
	Lines          []LineSummary   `json:"lines"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Discount       decimal.Decimal `json:"discount"`
	Shipping       decimal.Decimal `json:"shipping"`
	Total          decimal.Decimal `json:"total"`
}

type LineSummary struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

func (CartCreatedV1) EventType() string          { return TypeCartCreated }
func (ItemAddedV1) EventType() string            { return TypeItemAdded }
func (ItemQuantityUpdatedV1) EventType() string  { return TypeItemQuantityUpdated }
func (ItemRemovedV1) EventType() string          { return TypeItemRemoved }
func (CouponAppliedV1) EventType() string        { return TypeCouponApplied }
func (CouponRemovedV1) EventType() string        { return TypeCouponRemoved }
func (ShippingSelectedV1) EventType() string     { return TypeShippingSelected }
func (TotalsRecalculatedV1) EventType() string   { return TypeTotalsRecalculated }
func (CartClearedV1) EventType() string          { return TypeCartCleared }
func (ItemSavedForLaterV1) EventType() string    { return TypeItemSavedForLater }
func (SavedItemMovedToCartV1) EventType() string { return TypeSavedItemMovedToCart }
func (PaymentSetV1) EventType() string           { return TypePaymentSet }
func (CartDeactivatedV1) EventType() string      { return TypeCartDeactivated }
func (CartSnapshotV1) EventType() string         { return TypeCartSnapshot }
