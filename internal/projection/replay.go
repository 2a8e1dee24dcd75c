package projection

import (
	"context"
	"fmt"
	"time"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/repository"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/eventstore"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/metrics"
	"github.com/sirupsen/logrus"
)

//go:generate go tool moq -rm -pkg projection_test -out mocks_test.go . HistoryLoader

type HistoryLoader interface {
	CartIDs(ctx context.Context) ([]int64, error)
	LoadHistory(ctx context.Context, cartID int64) (eventstore.History, error)
}

type CartReport struct {
	CartID  int64
	Applied int
	Skipped int
	Err     error
}

type Report struct {
	Carts    int
	Rebuilt  int
	Lossy    []int64
	Failed   []CartReport
	Duration time.Duration
}

// Replayer rebuilds carts from their event history. Each cart is rebuilt in
// its own transaction; a failing cart is rolled back and reported.
type Replayer struct {
	store     repository.Store
	events    HistoryLoader
	carts     repository.CartMutator
	projector *Projector
	log       logrus.FieldLogger
}

func NewReplayer(store repository.Store, events HistoryLoader, carts repository.CartMutator, log logrus.FieldLogger) *Replayer {
	return &Replayer{
		store:     store,
		events:    events,
		carts:     carts,
		projector: NewProjector(carts, log),
		log:       log,
	}
}

func (r *Replayer) ReplayAll(ctx context.Context) (Report, error) {
	start := time.Now()
	ids, err := r.events.CartIDs(ctx)
	if err != nil {
		return Report{}, err
	}

	report := Report{Carts: len(ids)}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(start)
			return report, err
		}
		cart, err := r.ReplayCart(ctx, id)
		if err != nil {
			report.Failed = append(report.Failed, cart)
			continue
		}
		report.Rebuilt++
		if cart.Skipped > 0 {
			report.Lossy = append(report.Lossy, id)
		}
	}
	report.Duration = time.Since(start)

	r.log.WithFields(logrus.Fields{
		"carts":    report.Carts,
		"rebuilt":  report.Rebuilt,
		"lossy":    len(report.Lossy),
		"failed":   len(report.Failed),
		"duration": report.Duration.String(),
	}).Info("replay: finished")
	return report, nil
}

func (r *Replayer) ReplayCart(ctx context.Context, cartID int64) (CartReport, error) {
	report := CartReport{CartID: cartID}
	log := r.log.WithField("cart_id", cartID)

	err := r.store.WithTx(ctx, func(txCtx context.Context) error {
		history, err := r.events.LoadHistory(txCtx, cartID)
		if err != nil {
			return err
		}
		report.Skipped = len(history.Skipped)

		if err := r.carts.ResetCart(txCtx, cartID); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		for _, env := range history.Events {
			if err := r.projector.Apply(txCtx, env); err != nil {
				return fmt.Errorf("apply version %d (%s): %w", env.Version, env.EventType(), err)
			}
			report.Applied++
		}
		return nil
	})
	if err != nil {
		report.Err = err
		report.Applied = 0
		log.WithError(err).Error("replay: cart rebuild failed")
		metrics.ReplayedCarts.WithLabelValues("failed").Inc()
		return report, err
	}

	if report.Skipped > 0 {
		log.WithField("skipped", report.Skipped).Warn("replay: cart rebuilt from a lossy history")
		metrics.ReplayedCarts.WithLabelValues("lossy").Inc()
	} else {
		metrics.ReplayedCarts.WithLabelValues("rebuilt").Inc()
	}
	return report, nil
}
