// Package projection applies cart events to the read model. It serves the
// recovery path only; live commands mutate the read model directly.
package projection

import (
	"context"
	"errors"
	"fmt"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/event"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/repository"
	"github.com/sirupsen/logrus"
)

type Projector struct {
	carts repository.CartMutator
	log   logrus.FieldLogger
}

func NewProjector(carts repository.CartMutator, log logrus.FieldLogger) *Projector {
	return &Projector{carts: carts, log: log}
}

// Apply maps one event onto the mutation surface. Row ids recorded in events
// are not trusted; lines are resolved by product against current state.
func (p *Projector) Apply(ctx context.Context, env event.Envelope) error {
	cartID := env.CartID
	switch e := env.Payload.(type) {
	case event.CartCreatedV1:
		_, err := p.carts.CreateCart(ctx, entity.Cart{ID: cartID, UserID: e.UserID, IsActive: true})
		return err
	case event.ItemAddedV1:
		_, err := p.carts.AddItem(ctx, cartID, entity.CartItem{
			ProductID: e.ProductID,
			SKU:       e.SKU,
			Name:      e.Name,
			Quantity:  e.Quantity,
			UnitPrice: e.UnitPrice,
		})
		return err
	case event.ItemQuantityUpdatedV1:
		item, ok, err := p.resolve(ctx, env, e.ProductID)
		if !ok {
			return err
		}
		return p.carts.UpdateItemQuantity(ctx, cartID, item.ID, e.Quantity)
	case event.ItemRemovedV1:
		item, ok, err := p.resolve(ctx, env, e.ProductID)
		if !ok {
			return err
		}
		return p.carts.RemoveItem(ctx, cartID, item.ID)
	case event.ItemSavedForLaterV1:
		item, ok, err := p.resolve(ctx, env, e.ProductID)
		if !ok {
			return err
		}
		return p.carts.SaveForLater(ctx, cartID, item.ID)
	case event.SavedItemMovedToCartV1:
		return p.carts.MoveToCart(ctx, cartID, e.ProductID)
	case event.CouponAppliedV1:
		return p.carts.ApplyCoupon(ctx, cartID, e.Code, e.Kind, e.Amount)
	case event.CouponRemovedV1:
		return p.carts.RemoveCoupon(ctx, cartID)
	case event.ShippingSelectedV1:
		return p.carts.SelectShipping(ctx, cartID, e.Method, e.Cost)
	case event.PaymentSetV1:
		return p.carts.SetPayment(ctx, cartID, e.Method)
	case event.CartClearedV1:
		if err := p.carts.ClearCart(ctx, cartID); err != nil {
			return err
		}
		return p.carts.Unlock(ctx, cartID)
	case event.CartDeactivatedV1:
		return p.carts.Deactivate(ctx, cartID)
	case event.TotalsRecalculatedV1:
		_, err := p.carts.RecalculateTotals(ctx, cartID)
		return err
	case event.CartSnapshotV1:
		return nil
	default:
		return fmt.Errorf("projection: no handler for %s", env.EventType())
	}
}

// resolve finds the current line for a product. A missing line is logged
// and skipped because the event history cannot name it any other way.
func (p *Projector) resolve(ctx context.Context, env event.Envelope, productID int64) (entity.CartItem, bool, error) {
	item, err := p.carts.FindItem(ctx, env.CartID, productID)
	if err == nil {
		return item, true, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		p.log.WithFields(logrus.Fields{
			"cart_id":    env.CartID,
			"version":    env.Version,
			"event_type": env.EventType(),
			"product_id": productID,
		}).Warn("projection: line not found, event skipped")
		return entity.CartItem{}, false, nil
	}
	return entity.CartItem{}, false, err
}
