package bootstrap

import (
	"context"
	"fmt"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/config"
	"github.com/sirupsen/logrus"
)

// Replay rebuilds the cart read model from the event store. A cartID of zero
// rebuilds every cart.
func Replay(ctx context.Context, cfg config.Config, cartID int64) error {
	log, err := BuildLogger(cfg)
	if err != nil {
		return err
	}
	app, err := Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	if cartID > 0 {
		report, err := app.Replayer.ReplayCart(ctx, cartID)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"cart_id": cartID,
			"applied": report.Applied,
			"skipped": report.Skipped,
		}).Info("replay: cart rebuilt")
		return nil
	}

	report, err := app.Replayer.ReplayAll(ctx)
	if err != nil {
		return err
	}
	entry := log.WithFields(logrus.Fields{
		"carts":    report.Carts,
		"rebuilt":  report.Rebuilt,
		"lossy":    len(report.Lossy),
		"failed":   len(report.Failed),
		"duration": report.Duration.String(),
	})
	if len(report.Failed) > 0 {
		entry.Warn("replay: finished with failures")
		return fmt.Errorf("replay: %d of %d carts failed", len(report.Failed), report.Carts)
	}
	entry.Info("replay: finished")
	return nil
}
