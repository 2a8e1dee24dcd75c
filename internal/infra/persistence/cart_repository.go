package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository is the read model mutation surface on PostgreSQL.
type CartRepository struct {
	db *DB
}

var _ repository.CartMutator = (*CartRepository)(nil)

func NewCartRepository(db *DB) *CartRepository {
	return &CartRepository{db: db}
}

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: "+format, append([]any{repository.ErrNotFound}, args...)...)
	}
	return err
}

func (r *CartRepository) CreateCart(ctx context.Context, cart entity.Cart) (entity.Cart, error) {
	now := time.Now().UTC()
	cart.CreatedAt, cart.UpdatedAt = now, now
	cart.Items, cart.SavedItems = nil, nil
	explicitID := cart.ID != 0
	err := r.db.WithTx(ctx, func(txCtx context.Context) error {
		if err := r.db.Write(txCtx).Create(&cart).Error; err != nil {
			return err
		}
		if !explicitID {
			return nil
		}
		// carts rebuilt with an explicit id must not collide with the sequence later
		return r.db.Write(txCtx).Exec(
			`SELECT setval(pg_get_serial_sequence('carts', 'id'), GREATEST((SELECT MAX(id) FROM carts), 1))`,
		).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return entity.Cart{}, fmt.Errorf("%w: cart %d", repository.ErrDuplicate, cart.ID)
	}
	return cart, err
}

func (r *CartRepository) GetCart(ctx context.Context, cartID int64) (entity.Cart, error) {
	var cart entity.Cart
	err := r.db.Write(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("SavedItems", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&cart, "id = ?", cartID).Error
	return cart, notFound(err, "cart %d", cartID)
}

// lockCart takes a row lock so concurrent commands on one cart serialize.
func (r *CartRepository) lockCart(ctx context.Context, cartID int64) (entity.Cart, error) {
	var cart entity.Cart
	err := r.db.Write(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&cart, "id = ?", cartID).Error
	return cart, notFound(err, "cart %d", cartID)
}

func (r *CartRepository) touch(ctx context.Context, cartID int64, updates map[string]any) error {
	updates["updated_at"] = time.Now().UTC()
	res := r.db.Write(ctx).Model(&entity.Cart{}).Where("id = ?", cartID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: cart %d", repository.ErrNotFound, cartID)
	}
	return nil
}

func (r *CartRepository) AddItem(ctx context.Context, cartID int64, item entity.CartItem) (entity.CartItem, error) {
	err := r.db.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := r.lockCart(txCtx, cartID); err != nil {
			return err
		}
		var existing entity.CartItem
		err := r.db.Write(txCtx).First(&existing, "cart_id = ? AND product_id = ?", cartID, item.ProductID).Error
		switch {
		case err == nil:
			existing.Quantity += item.Quantity
			existing.UnitPrice = item.UnitPrice
			if err := r.db.Write(txCtx).Save(&existing).Error; err != nil {
				return err
			}
			item = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			item.ID = 0
			item.CartID = cartID
			if err := r.db.Write(txCtx).Create(&item).Error; err != nil {
				return err
			}
		default:
			return err
		}
		return r.touch(txCtx, cartID, map[string]any{})
	})
	return item, err
}

func (r *CartRepository) UpdateItemQuantity(ctx context.Context, cartID, itemID int64, quantity int) error {
	return r.updateItem(ctx, cartID, itemID, func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&entity.CartItem{}).Where("id = ? AND cart_id = ?", itemID, cartID).Update("quantity", quantity)
	})
}

func (r *CartRepository) RemoveItem(ctx context.Context, cartID, itemID int64) error {
	return r.updateItem(ctx, cartID, itemID, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("id = ? AND cart_id = ?", itemID, cartID).Delete(&entity.CartItem{})
	})
}

func (r *CartRepository) updateItem(ctx context.Context, cartID, itemID int64, fn func(tx *gorm.DB) *gorm.DB) error {
	return r.db.WithTx(ctx, func(txCtx context.Context) error {
		res := fn(r.db.Write(txCtx))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: item %d in cart %d", repository.ErrNotFound, itemID, cartID)
		}
		return r.touch(txCtx, cartID, map[string]any{})
	})
}

func (r *CartRepository) FindItem(ctx context.Context, cartID, productID int64) (entity.CartItem, error) {
	var item entity.CartItem
	err := r.db.Write(ctx).Order("id").First(&item, "cart_id = ? AND product_id = ?", cartID, productID).Error
	return item, notFound(err, "product %d in cart %d", productID, cartID)
}

func (r *CartRepository) ApplyCoupon(ctx context.Context, cartID int64, code, kind string, amount decimal.Decimal) error {
	return r.touch(ctx, cartID, map[string]any{
		"coupon_code":   code,
		"coupon_kind":   kind,
		"coupon_amount": amount,
	})
}

func (r *CartRepository) RemoveCoupon(ctx context.Context, cartID int64) error {
	return r.touch(ctx, cartID, map[string]any{
		"coupon_code":   "",
		"coupon_kind":   "",
		"coupon_amount": decimal.Zero,
	})
}

func (r *CartRepository) SelectShipping(ctx context.Context, cartID int64, method string, cost decimal.Decimal) error {
	return r.touch(ctx, cartID, map[string]any{
		"shipping_method": method,
		"shipping_cost":   cost,
	})
}

// SetPayment locks the cart against further item changes.
func (r *CartRepository) SetPayment(ctx context.Context, cartID int64, method string) error {
	return r.touch(ctx, cartID, map[string]any{
		"payment_method": method,
		"locked":         true,
	})
}

func (r *CartRepository) ClearCart(ctx context.Context, cartID int64) error {
	return r.db.WithTx(ctx, func(txCtx context.Context) error {
		if err := r.db.Write(txCtx).Where("cart_id = ?", cartID).Delete(&entity.CartItem{}).Error; err != nil {
			return err
		}
		return r.touch(txCtx, cartID, map[string]any{
			"coupon_code":     "",
			"coupon_kind":     "",
			"coupon_amount":   decimal.Zero,
			"shipping_method": "",
			"shipping_cost":   decimal.Zero,
			"payment_method":  "",
		})
	})
}

func (r *CartRepository) SaveForLater(ctx context.Context, cartID, itemID int64) error {
	return r.db.WithTx(ctx, func(txCtx context.Context) error {
		var item entity.CartItem
		err := r.db.Write(txCtx).First(&item, "id = ? AND cart_id = ?", itemID, cartID).Error
		if err != nil {
			return notFound(err, "item %d in cart %d", itemID, cartID)
		}
		if err := r.db.Write(txCtx).Delete(&item).Error; err != nil {
			return err
		}
		saved := entity.SavedItem{
			CartID:    cartID,
			ProductID: item.ProductID,
			SKU:       item.SKU,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			SavedAt:   time.Now().UTC(),
		}
		if err := r.db.Write(txCtx).Create(&saved).Error; err != nil {
			return err
		}
		return r.touch(txCtx, cartID, map[string]any{})
	})
}

func (r *CartRepository) MoveToCart(ctx context.Context, cartID, productID int64) error {
	return r.db.WithTx(ctx, func(txCtx context.Context) error {
		var saved entity.SavedItem
		err := r.db.Write(txCtx).Order("id").First(&saved, "cart_id = ? AND product_id = ?", cartID, productID).Error
		if err != nil {
			return notFound(err, "saved product %d in cart %d", productID, cartID)
		}
		if err := r.db.Write(txCtx).Delete(&saved).Error; err != nil {
			return err
		}
		_, err = r.AddItem(txCtx, cartID, entity.CartItem{
			ProductID: saved.ProductID,
			SKU:       saved.SKU,
			Name:      saved.Name,
			Quantity:  saved.Quantity,
			UnitPrice: saved.UnitPrice,
		})
		return err
	})
}

func (r *CartRepository) Deactivate(ctx context.Context, cartID int64) error {
	return r.touch(ctx, cartID, map[string]any{"is_active": false})
}

func (r *CartRepository) Unlock(ctx context.Context, cartID int64) error {
	return r.touch(ctx, cartID, map[string]any{"locked": false})
}

func (r *CartRepository) RecalculateTotals(ctx context.Context, cartID int64) (entity.CartTotals, error) {
	var totals entity.CartTotals
	err := r.db.WithTx(ctx, func(txCtx context.Context) error {
		cart, err := r.lockCart(txCtx, cartID)
		if err != nil {
			return err
		}
		var items []entity.CartItem
		if err := r.db.Write(txCtx).Where("cart_id = ?", cartID).Find(&items).Error; err != nil {
			return err
		}
		totals = entity.ComputeTotals(items, cart.CouponKind, cart.CouponAmount, cart.ShippingCost)
		return r.touch(txCtx, cartID, map[string]any{
			"subtotal": totals.Subtotal,
			"discount": totals.Discount,
			"total":    totals.Total,
		})
	})
	return totals, err
}

func (r *CartRepository) ResetCart(ctx context.Context, cartID int64) error {
	return r.db.WithTx(ctx, func(txCtx context.Context) error {
		tx := r.db.Write(txCtx)
		if err := tx.Where("cart_id = ?", cartID).Delete(&entity.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", cartID).Delete(&entity.SavedItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", cartID).Delete(&entity.Cart{}).Error
	})
}
