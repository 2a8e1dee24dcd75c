package bootstrap

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/config"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/idempotency"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/usecase"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Seed drives count sample carts through the command path, so every seeded
// cart has a full event history and outbox trail.
func Seed(ctx context.Context, cfg config.Config, count, itemsPerCart int) error {
	if count <= 0 {
		count = 10
	}
	if itemsPerCart <= 0 {
		itemsPerCart = 3
	}

	log, err := BuildLogger(cfg)
	if err != nil {
		return err
	}
	app, err := Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	for i := 0; i < count; i++ {
		if err := seedCart(ctx, app.Carts, itemsPerCart); err != nil {
			return fmt.Errorf("seed cart %d: %w", i+1, err)
		}
	}

	log.Infof("bootstrap: seeded %d carts", count)
	return nil
}

func seedCart(ctx context.Context, carts *usecase.Cart, items int) error {
	user := faker.Username()
	run := func(cmd usecase.Command) (usecase.CartView, error) {
		req := idempotency.Request{Key: "seed-" + uuid.NewString(), UserID: user}
		view, _, err := carts.Execute(ctx, req, user, cmd)
		return view, err
	}

	cart, err := run(usecase.CreateCart{UserID: user})
	if err != nil {
		return err
	}
	for range items {
		_, err := run(usecase.AddItem{
			CartID:    cart.ID,
			ProductID: rand.Int64N(10_000) + 1,
			SKU:       faker.UUIDDigit()[:12],
			Name:      faker.Word(),
			Quantity:  rand.IntN(4) + 1,
			UnitPrice: decimal.New(int64(rand.IntN(20_000)+99), -2),
		})
		if err != nil {
			return err
		}
	}

	if rand.IntN(2) == 0 {
		if _, err := run(usecase.ApplyCoupon{CartID: cart.ID, Code: "WELCOME10", Kind: entity.CouponPercent, Amount: decimal.NewFromInt(10)}); err != nil {
			return err
		}
	}
	_, err = run(usecase.SelectShipping{CartID: cart.ID, Method: "standard", Cost: decimal.RequireFromString("4.99")})
	return err
}
