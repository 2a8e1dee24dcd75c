package inmemory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/repository"
	"github.com/shopspring/decimal"
)

type CartRepository struct {
	db  *DB
	now func() time.Time
}

var _ repository.CartMutator = (*CartRepository)(nil)

func NewCartRepository(db *DB) *CartRepository {
	return &CartRepository{db: db, now: time.Now}
}

func (r *CartRepository) CreateCart(ctx context.Context, cart entity.Cart) (entity.Cart, error) {
	defer r.db.lock(ctx)()
	s := r.db.state
	if cart.ID == 0 {
		s.nextCartID++
		cart.ID = s.nextCartID
	} else if cart.ID > s.nextCartID {
		s.nextCartID = cart.ID
	}
	if _, ok := s.carts[cart.ID]; ok {
		return entity.Cart{}, fmt.Errorf("%w: cart %d", repository.ErrDuplicate, cart.ID)
	}
	now := r.now().UTC()
	cart.CreatedAt, cart.UpdatedAt = now, now
	cart.Items, cart.SavedItems = nil, nil
	s.carts[cart.ID] = cart
	return cart, nil
}

func (r *CartRepository) GetCart(ctx context.Context, cartID int64) (entity.Cart, error) {
	defer r.db.lock(ctx)()
	return r.load(cartID)
}

func (r *CartRepository) load(cartID int64) (entity.Cart, error) {
	s := r.db.state
	cart, ok := s.carts[cartID]
	if !ok {
		return entity.Cart{}, fmt.Errorf("%w: cart %d", repository.ErrNotFound, cartID)
	}
	cart.Items = nil
	cart.SavedItems = nil
	for _, item := range s.items {
		if item.CartID == cartID {
			cart.Items = append(cart.Items, item)
		}
	}
	for _, item := range s.saved {
		if item.CartID == cartID {
			cart.SavedItems = append(cart.SavedItems, item)
		}
	}
	sort.Slice(cart.Items, func(i, j int) bool { return cart.Items[i].ID < cart.Items[j].ID })
	sort.Slice(cart.SavedItems, func(i, j int) bool { return cart.SavedItems[i].ID < cart.SavedItems[j].ID })
	return cart, nil
}

func (r *CartRepository) update(cartID int64, fn func(cart *entity.Cart)) error {
	cart, ok := r.db.state.carts[cartID]
	if !ok {
		return fmt.Errorf("%w: cart %d", repository.ErrNotFound, cartID)
	}
	fn(&cart)
	cart.UpdatedAt = r.now().UTC()
	r.db.state.carts[cartID] = cart
	return nil
}

func (r *CartRepository) AddItem(ctx context.Context, cartID int64, item entity.CartItem) (entity.CartItem, error) {
	defer r.db.lock(ctx)()
	s := r.db.state
	if _, ok := s.carts[cartID]; !ok {
		return entity.CartItem{}, fmt.Errorf("%w: cart %d", repository.ErrNotFound, cartID)
	}
	for id, existing := range s.items {
		if existing.CartID == cartID && existing.ProductID == item.ProductID {
			existing.Quantity += item.Quantity
			existing.UnitPrice = item.UnitPrice
			s.items[id] = existing
			return existing, nil
		}
	}
	s.nextItemID++
	item.ID = s.nextItemID
	item.CartID = cartID
	s.items[item.ID] = item
	return item, nil
}

func (r *CartRepository) UpdateItemQuantity(ctx context.Context, cartID, itemID int64, quantity int) error {
	defer r.db.lock(ctx)()
	item, ok := r.db.state.items[itemID]
	if !ok || item.CartID != cartID {
		return fmt.Errorf("%w: item %d in cart %d", repository.ErrNotFound, itemID, cartID)
	}
	item.Quantity = quantity
	r.db.state.items[itemID] = item
	return nil
}

func (r *CartRepository) RemoveItem(ctx context.Context, cartID, itemID int64) error {
	defer r.db.lock(ctx)()
	item, ok := r.db.state.items[itemID]
	if !ok || item.CartID != cartID {
		return fmt.Errorf("%w: item %d in cart %d", repository.ErrNotFound, itemID, cartID)
	}
	delete(r.db.state.items, itemID)
	return nil
}

func (r *CartRepository) FindItem(ctx context.Context, cartID, productID int64) (entity.CartItem, error) {
	defer r.db.lock(ctx)()
	for _, item := range r.db.state.items {
		if item.CartID == cartID && item.ProductID == productID {
			return item, nil
		}
	}
	return entity.CartItem{}, fmt.Errorf("%w: product %d in cart %d", repository.ErrNotFound, productID, cartID)
}

func (r *CartRepository) ApplyCoupon(ctx context.Context, cartID int64, code, kind string, amount decimal.Decimal) error {
	defer r.db.lock(ctx)()
	return r.update(cartID, func(cart *entity.Cart) {
		cart.CouponCode, cart.CouponKind, cart.CouponAmount = code, kind, amount
	})
}

func (r *CartRepository) RemoveCoupon(ctx context.Context, cartID int64) error {
	defer r.db.lock(ctx)()
	return r.update(cartID, func(cart *entity.Cart) {
		cart.CouponCode, cart.CouponKind, cart.CouponAmount = "", "", decimal.Zero
	})
}

func (r *CartRepository) SelectShipping(ctx context.Context, cartID int64, method string, cost decimal.Decimal) error {
	defer r.db.lock(ctx)()
	return r.update(cartID, func(cart *entity.Cart) {
		cart.ShippingMethod, cart.ShippingCost = method, cost
	})
}

func (r *CartRepository) SetPayment(ctx context.Context, cartID int64, method string) error {
	defer r.db.lock(ctx)()
	return r.update(cartID, func(cart *entity.Cart) {
		cart.PaymentMethod = method
		cart.Locked = true
	})
}

func (r *CartRepository) ClearCart(ctx context.Context, cartID int64) error {
	defer r.db.lock(ctx)()
	s := r.db.state
	for id, item := range s.items {
		if item.CartID == cartID {
			delete(s.items, id)
		}
	}
	return r.update(cartID, func(cart *entity.Cart) {
		cart.CouponCode, cart.CouponKind, cart.CouponAmount = "", "", decimal.Zero
		cart.ShippingMethod, cart.ShippingCost = "", decimal.Zero
		cart.PaymentMethod = ""
	})
}

func (r *CartRepository) SaveForLater(ctx context.Context, cartID, itemID int64) error {
	defer r.db.lock(ctx)()
	s := r.db.state
	item, ok := s.items[itemID]
	if !ok || item.CartID != cartID {
		return fmt.Errorf("%w: item %d in cart %d", repository.ErrNotFound, itemID, cartID)
	}
	delete(s.items, itemID)
	s.nextSavedID++
	s.saved[s.nextSavedID] = entity.SavedItem{
		ID:        s.nextSavedID,
		CartID:    cartID,
		ProductID: item.ProductID,
		SKU:       item.SKU,
		Name:      item.Name,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
		SavedAt:   r.now().UTC(),
	}
	return nil
}

func (r *CartRepository) MoveToCart(ctx context.Context, cartID, productID int64) error {
	defer r.db.lock(ctx)()
	s := r.db.state
	for id, saved := range s.saved {
		if saved.CartID != cartID || saved.ProductID != productID {
			continue
		}
		delete(s.saved, id)
		for itemID, item := range s.items {
			if item.CartID == cartID && item.ProductID == productID {
				item.Quantity += saved.Quantity
				s.items[itemID] = item
				return nil
			}
		}
		s.nextItemID++
		s.items[s.nextItemID] = entity.CartItem{
			ID:        s.nextItemID,
			CartID:    cartID,
			ProductID: saved.ProductID,
			SKU:       saved.SKU,
			Name:      saved.Name,
			Quantity:  saved.Quantity,
			UnitPrice: saved.UnitPrice,
		}
		return nil
	}
	return fmt.Errorf("%w: saved product %d in cart %d", repository.ErrNotFound, productID, cartID)
}

func (r *CartRepository) Deactivate(ctx context.Context, cartID int64) error {
	defer r.db.lock(ctx)()
	return r.update(cartID, func(cart *entity.Cart) { cart.IsActive = false })
}

func (r *CartRepository) Unlock(ctx context.Context, cartID int64) error {
	defer r.db.lock(ctx)()
	return r.update(cartID, func(cart *entity.Cart) { cart.Locked = false })
}

func (r *CartRepository) RecalculateTotals(ctx context.Context, cartID int64) (entity.CartTotals, error) {
	defer r.db.lock(ctx)()
	cart, err := r.load(cartID)
	if err != nil {
		return entity.CartTotals{}, err
	}
	totals := cart.ComputeTotals()
	err = r.update(cartID, func(c *entity.Cart) {
		c.Subtotal, c.Discount, c.Total = totals.Subtotal, totals.Discount, totals.Total
	})
	return totals, err
}

func (r *CartRepository) ResetCart(ctx context.Context, cartID int64) error {
	defer r.db.lock(ctx)()
	s := r.db.state
	delete(s.carts, cartID)
	for id, item := range s.items {
		if item.CartID == cartID {
			delete(s.items, id)
		}
	}
	for id, item := range s.saved {
		if item.CartID == cartID {
			delete(s.saved, id)
		}
	}
	return nil
}
