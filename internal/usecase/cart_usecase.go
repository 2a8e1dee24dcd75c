package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/event"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/repository"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/eventstore"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/idempotency"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/infra/pagination"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/outbox"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/projection"
	"github.com/sirupsen/logrus"
)

//go:generate go tool moq -rm -pkg usecase_test -out mocks_test.go ../domain/repository EventRepository

const (
	defaultAppendRetries = 3
	maxHistoryPage       = 500
)

type Cart struct {
	store     repository.Store
	carts     repository.CartMutator
	events    *eventstore.Store
	outbox    *outbox.Outbox
	guard     *idempotency.Guard
	snapshots *projection.SnapshotWriter
	policy    projection.SnapshotPolicy
	retries   int
	registry  *Registry
	log       logrus.FieldLogger
}

type Option func(*Cart)

func WithSnapshotPolicy(policy projection.SnapshotPolicy) Option {
	return func(c *Cart) {
		c.policy = policy
	}
}

// WithAppendRetries sets how often a unit of work is retried after losing a
// version race. Zero disables retries.
func WithAppendRetries(n int) Option {
	return func(c *Cart) {
		if n >= 0 {
			c.retries = n
		}
	}
}

func NewCart(store repository.Store, carts repository.CartMutator, events *eventstore.Store, box *outbox.Outbox, guard *idempotency.Guard, log logrus.FieldLogger, opts ...Option) *Cart {
	c := &Cart{
		store:     store,
		carts:     carts,
		events:    events,
		outbox:    box,
		guard:     guard,
		snapshots: projection.NewSnapshotWriter(carts, events),
		policy:    projection.SnapshotPolicy{Interval: 100},
		retries:   defaultAppendRetries,
		log:       log,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.registry = newRegistry()
	register(c.registry, c.createCart)
	register(c.registry, c.addItem)
	register(c.registry, c.updateItemQuantity)
	register(c.registry, c.removeItem)
	register(c.registry, c.applyCoupon)
	register(c.registry, c.removeCoupon)
	register(c.registry, c.selectShipping)
	register(c.registry, c.setPayment)
	register(c.registry, c.clearCart)
	register(c.registry, c.saveForLater)
	register(c.registry, c.moveToCart)
	register(c.registry, c.deactivateCart)
	return c
}

func (c *Cart) Commands() []string {
	return c.registry.Names()
}

func (c *Cart) Dispatch(ctx context.Context, actor string, cmd Command) (CartView, error) {
	view, err := c.registry.Dispatch(ctx, actor, cmd)
	if err != nil {
		name := "<nil>"
		if cmd != nil {
			name = cmd.CommandName()
		}
		c.log.WithError(err).WithFields(logrus.Fields{"command": name, "actor": actor}).Warn("command rejected")
		return CartView{}, err
	}
	return view, nil
}

// Execute runs cmd under the idempotency guard. Without a key it is the same
// as Dispatch.
func (c *Cart) Execute(ctx context.Context, req idempotency.Request, actor string, cmd Command) (CartView, bool, error) {
	if req.Key == "" || c.guard == nil {
		view, err := c.Dispatch(ctx, actor, cmd)
		return view, false, err
	}
	var executed bool
	view, err := idempotency.Do(ctx, c.guard, req, func(ctx context.Context) (CartView, error) {
		executed = true
		return c.Dispatch(ctx, actor, cmd)
	})
	return view, err == nil && !executed, err
}

func (c *Cart) GetCart(ctx context.Context, cartID int64) (CartView, error) {
	cart, err := c.carts.GetCart(ctx, cartID)
	if err != nil {
		return CartView{}, err
	}
	version, err := c.events.Version(ctx, cartID)
	if err != nil {
		return CartView{}, err
	}
	return newCartView(cart, version), nil
}

// History pages through the decodable events of a cart. The cursor is the
// one returned by the previous page.
func (c *Cart) History(ctx context.Context, cartID int64, limit int, cursor string) (HistoryPage, error) {
	cursorCart, after, err := pagination.Decode(cursor)
	if err != nil {
		return HistoryPage{}, err
	}
	if cursor != "" && cursorCart != cartID {
		return HistoryPage{}, repository.ErrInvalidCursor
	}
	if limit <= 0 || limit > maxHistoryPage {
		limit = maxHistoryPage
	}

	history, err := c.events.LoadHistory(ctx, cartID)
	if err != nil {
		return HistoryPage{}, err
	}
	if len(history.Events) == 0 && len(history.Skipped) == 0 {
		return HistoryPage{}, fmt.Errorf("%w: cart %d has no history", repository.ErrNotFound, cartID)
	}

	page := HistoryPage{CartID: cartID, Events: make([]EventView, 0, limit), Skipped: len(history.Skipped)}
	for _, env := range history.Events {
		if env.Version <= after {
			continue
		}
		if len(page.Events) == limit {
			last := page.Events[len(page.Events)-1]
			page.NextCursor = pagination.Encode(cartID, last.Version)
			break
		}
		page.Events = append(page.Events, EventView{
			Version:    env.Version,
			Type:       env.EventType(),
			OccurredAt: env.OccurredAtUTC,
			CausedBy:   env.CausedBy,
			Data:       env.Payload,
		})
	}
	return page, nil
}

// change is what a handler produced inside the unit of work.
type change struct {
	events      []event.Payload
	messageType string
}

type mutation func(ctx context.Context, cart entity.Cart) (change, error)

type precondition int

const (
	requireActive precondition = 1 << iota
	requireUnlocked
)

func (p precondition) check(cart entity.Cart) error {
	if p&requireActive != 0 && !cart.IsActive {
		return fmt.Errorf("%w: cart %d is deactivated", repository.ErrValidation, cart.ID)
	}
	if p&requireUnlocked != 0 && cart.Locked {
		return fmt.Errorf("%w: cart %d is locked for payment", repository.ErrValidation, cart.ID)
	}
	return nil
}

// mutate runs one command as a unit of work: read model change, totals,
// events and the outbox message commit together or not at all. A lost
// version race reruns the whole unit.
func (c *Cart) mutate(ctx context.Context, actor string, cartID int64, pre precondition, fn mutation) (CartView, error) {
	var (
		from, to int
		view     CartView
	)
	for attempt := 0; ; attempt++ {
		err := c.store.WithTx(ctx, func(txCtx context.Context) error {
			cart, err := c.carts.GetCart(txCtx, cartID)
			if err != nil {
				return err
			}
			if err := pre.check(cart); err != nil {
				return err
			}
			from, err = c.events.Version(txCtx, cartID)
			if err != nil {
				return err
			}
			ch, err := fn(txCtx, cart)
			if err != nil {
				return err
			}
			to, view, err = c.commit(txCtx, actor, cartID, from, ch)
			return err
		})
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrConcurrency) || attempt >= c.retries {
			return CartView{}, err
		}
		c.log.WithFields(logrus.Fields{"cart_id": cartID, "attempt": attempt + 1}).Warn("cart version race, retrying")
	}

	c.snapshot(ctx, cartID, from, to)
	return view, nil
}

// commit recalculates totals, appends the events and enqueues the
// integration message in the caller's transaction.
func (c *Cart) commit(ctx context.Context, actor string, cartID int64, expected int, ch change) (int, CartView, error) {
	totals, err := c.carts.RecalculateTotals(ctx, cartID)
	if err != nil {
		return 0, CartView{}, err
	}
	payloads := append(ch.events, event.TotalsRecalculatedV1{
		Subtotal: totals.Subtotal,
		Discount: totals.Discount,
		Shipping: totals.Shipping,
		Total:    totals.Total,
	})
	version, err := c.events.AppendExpected(ctx, cartID, expected, payloads, actor)
	if err != nil {
		return 0, CartView{}, err
	}

	cart, err := c.carts.GetCart(ctx, cartID)
	if err != nil {
		return 0, CartView{}, err
	}
	names := make([]string, 0, len(payloads))
	for _, p := range payloads {
		names = append(names, p.EventType())
	}
	if _, err := c.outbox.Enqueue(ctx, ch.messageType, CartChanged{
		CartID:     cartID,
		UserID:     cart.UserID,
		Version:    version,
		Events:     names,
		Total:      cart.Total,
		OccurredAt: cart.UpdatedAt,
	}, ""); err != nil {
		return 0, CartView{}, err
	}
	return version, newCartView(cart, version), nil
}

// snapshot never fails the command that triggered it.
func (c *Cart) snapshot(ctx context.Context, cartID int64, from, to int) {
	if !c.policy.Crossed(from, to) {
		return
	}
	log := c.log.WithFields(logrus.Fields{"cart_id": cartID, "version": to})
	version, err := c.snapshots.Write(ctx, cartID, to)
	if err != nil {
		log.WithError(err).Warn("snapshot write failed")
		return
	}
	log.WithField("snapshot_version", version).Debug("snapshot written")
}
