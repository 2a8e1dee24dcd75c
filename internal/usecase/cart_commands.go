package usecase

import (
	"context"
	"fmt"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/event"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/repository"
	"github.com/sirupsen/logrus"
)

// Integration message types. Consumers subscribe with the "cart." prefix.
const (
	MessageCartCreated      = "cart.created"
	MessageItemAdded        = "cart.item_added"
	MessageItemQuantity     = "cart.item_quantity_updated"
	MessageItemRemoved      = "cart.item_removed"
	MessageCouponApplied    = "cart.coupon_applied"
	MessageCouponRemoved    = "cart.coupon_removed"
	MessageShippingSelected = "cart.shipping_selected"
	MessagePaymentSet       = "cart.payment_set"
	MessageCartCleared      = "cart.cleared"
	MessageItemSaved        = "cart.item_saved_for_later"
	MessageItemMoved        = "cart.item_moved_to_cart"
	MessageCartDeactivated  = "cart.deactivated"
)

func (c *Cart) createCart(ctx context.Context, actor string, cmd CreateCart) (CartView, error) {
	var view CartView
	err := c.store.WithTx(ctx, func(txCtx context.Context) error {
		cart, err := c.carts.CreateCart(txCtx, entity.Cart{UserID: cmd.UserID, IsActive: true})
		if err != nil {
			return err
		}
		_, view, err = c.commit(txCtx, actor, cart.ID, 0, change{
			events:      []event.Payload{event.CartCreatedV1{UserID: cmd.UserID}},
			messageType: MessageCartCreated,
		})
		return err
	})
	if err != nil {
		return CartView{}, err
	}
	c.log.WithFields(logrus.Fields{"cart_id": view.ID, "user_id": cmd.UserID}).Info("cart created")
	c.snapshot(ctx, view.ID, 0, view.Version)
	return view, nil
}

func (c *Cart) addItem(ctx context.Context, actor string, cmd AddItem) (CartView, error) {
	return c.mutate(ctx, actor, cmd.CartID, requireActive|requireUnlocked, func(ctx context.Context, cart entity.Cart) (change, error) {
		if _, err := c.carts.AddItem(ctx, cart.ID, entity.CartItem{
			ProductID: cmd.ProductID,
			SKU:       cmd.SKU,
			Name:      cmd.Name,
			Quantity:  cmd.Quantity,
			UnitPrice: cmd.UnitPrice,
		}); err != nil {
			return change{}, err
		}
		return change{
			events: []event.Payload{event.ItemAddedV1{
				ProductID: cmd.ProductID,
				SKU:       cmd.SKU,
				Name:      cmd.Name,
				Quantity:  cmd.Quantity,
				UnitPrice: cmd.UnitPrice,
			}},
			messageType: MessageItemAdded,
		}, nil
	})
}

func (c *Cart) updateItemQuantity(ctx context.Context, actor string, cmd UpdateItemQuantity) (CartView, error) {
	return c.mutate(ctx, actor, cmd.CartID, requireActive|requireUnlocked, func(ctx context.Context, cart entity.Cart) (change, error) {
		item, err := lineByID(cart, cmd.ItemID)
		if err != nil {
			return change{}, err
		}
		if err := c.carts.UpdateItemQuantity(ctx, cart.ID, item.ID, cmd.Quantity); err != nil {
			return change{}, err
		}
		return change{
			events:      []event.Payload{event.ItemQuantityUpdatedV1{ItemID: item.ID, ProductID: item.ProductID, Quantity: cmd.Quantity}},
			messageType: MessageItemQuantity,
		}, nil
	})
}

func (c *Cart) removeItem(ctx context.Context, actor string, cmd RemoveItem) (CartView, error) {
	return c.mutate(ctx, actor, cmd.CartID, requireActive|requireUnlocked, func(ctx context.Context, cart entity.Cart) (change, error) {
		item, err := lineByID(cart, cmd.ItemID)
		if err != nil {
			return change{}, err
		}
		if err := c.carts.RemoveItem(ctx, cart.ID, item.ID); err != nil {
			return change{}, err
		}
		return change{
			events:      []event.Payload{event.ItemRemovedV1{ItemID: item.ID, ProductID: item.ProductID}},
			messageType: MessageItemRemoved,
		}, nil
	})
}

func (c *Cart) applyCoupon(ctx context.Context, actor string, cmd ApplyCoupon) (CartView, error) {
	return c.mutate(ctx, actor, cmd.CartID, requireActive|requireUnlocked, func(ctx context.Context, cart entity.Cart) (change, error) {
		if err := c.carts.ApplyCoupon(ctx, cart.ID, cmd.Code, cmd.Kind, cmd.Amount); err != nil {
			return change{}, err
		}
		return change{
			events:      []event.Payload{event.CouponAppliedV1{Code: cmd.Code, Kind: cmd.Kind, Amount: cmd.Amount}},
			messageType: MessageCouponApplied,
		}, nil
	})
}

func (c *Cart) removeCoupon(ctx context.Context, actor string, cmd RemoveCoupon) (CartView, error) {
	return c.mutate(ctx, actor, cmd.CartID, requireActive|requireUnlocked, func(ctx context.Context, cart entity.Cart) (change, error) {
		if cart.CouponCode == "" {
			return change{}, fmt.Errorf("%w: cart %d has no coupon", repository.ErrValidation, cart.ID)
		}
		if err := c.carts.RemoveCoupon(ctx, cart.ID); err != nil {
			return change{}, err
		}
		return change{
			events:      []event.Payload{event.CouponRemovedV1{Code: cart.CouponCode}},
			messageType: MessageCouponRemoved,
		}, nil
	})
}

func (c *Cart) selectShipping(ctx context.Context, actor string, cmd SelectShipping) (CartView, error) {
	return c.mutate(ctx, actor, cmd.CartID, requireActive|requireUnlocked, func(ctx context.Context, cart entity.Cart) (change, error) {
		if err := c.carts.SelectShipping(ctx, cart.ID, cmd.Method, cmd.Cost); err != nil {
			return change{}, err
		}
		return change{
			events:      []event.Payload{event.ShippingSelectedV1{Method: cmd.Method, Cost: cmd.Cost}},
			messageType: MessageShippingSelected,
		}, nil
	})
}

func (c *Cart) setPayment(ctx context.Context, actor string, cmd SetPayment) (CartView, error) {
	return c.mutate(ctx, actor, cmd.CartID, requireActive, func(ctx context.Context, cart entity.Cart) (change, error) {
		if len(cart.Items) == 0 {
			return change{}, fmt.Errorf("%w: cart %d is empty", repository.ErrValidation, cart.ID)
		}
		if err := c.carts.SetPayment(ctx, cart.ID, cmd.Method); err != nil {
			return change{}, err
		}
		return change{
			events:      []event.Payload{event.PaymentSetV1{Method: cmd.Method}},
			messageType: MessagePaymentSet,
		}, nil
	})
}

func (c *Cart) clearCart(ctx context.Context, actor string, cmd ClearCart) (CartView, error) {
	return c.mutate(ctx, actor, cmd.CartID, requireActive, func(ctx context.Context, cart entity.Cart) (change, error) {
		if err := c.carts.ClearCart(ctx, cart.ID); err != nil {
			return change{}, err
		}
		if err := c.carts.Unlock(ctx, cart.ID); err != nil {
			return change{}, err
		}
		return change{
			events:      []event.Payload{event.CartClearedV1{}},
			messageType: MessageCartCleared,
		}, nil
	})
}

func (c *Cart) saveForLater(ctx context.Context, actor string, cmd SaveForLater) (CartView, error) {
	return c.mutate(ctx, actor, cmd.CartID, requireActive|requireUnlocked, func(ctx context.Context, cart entity.Cart) (change, error) {
		item, err := lineByID(cart, cmd.ItemID)
		if err != nil {
			return change{}, err
		}
		if err := c.carts.SaveForLater(ctx, cart.ID, item.ID); err != nil {
			return change{}, err
		}
		return change{
			events:      []event.Payload{event.ItemSavedForLaterV1{ItemID: item.ID, ProductID: item.ProductID}},
			messageType: MessageItemSaved,
		}, nil
	})
}

func (c *Cart) moveToCart(ctx context.Context, actor string, cmd MoveToCart) (CartView, error) {
	return c.mutate(ctx, actor, cmd.CartID, requireActive|requireUnlocked, func(ctx context.Context, cart entity.Cart) (change, error) {
		if err := c.carts.MoveToCart(ctx, cart.ID, cmd.ProductID); err != nil {
			return change{}, err
		}
		return change{
			events:      []event.Payload{event.SavedItemMovedToCartV1{ProductID: cmd.ProductID}},
			messageType: MessageItemMoved,
		}, nil
	})
}

func (c *Cart) deactivateCart(ctx context.Context, actor string, cmd DeactivateCart) (CartView, error) {
	return c.mutate(ctx, actor, cmd.CartID, requireActive, func(ctx context.Context, cart entity.Cart) (change, error) {
		if err := c.carts.Deactivate(ctx, cart.ID); err != nil {
			return change{}, err
		}
		return change{
			events:      []event.Payload{event.CartDeactivatedV1{Reason: cmd.Reason}},
			messageType: MessageCartDeactivated,
		}, nil
	})
}

func lineByID(cart entity.Cart, itemID int64) (entity.CartItem, error) {
	for _, item := range cart.Items {
		if item.ID == itemID {
			return item, nil
		}
	}
	return entity.CartItem{}, fmt.Errorf("%w: item %d in cart %d", repository.ErrNotFound, itemID, cart.ID)
}
