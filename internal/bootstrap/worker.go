package bootstrap

import (
	"context"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/config"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/infra/messaging"
	"github.com/sirupsen/logrus"
)

// RunOutboxWorker runs the dispatcher on its own. With once set it drains a
// single batch and returns.
func RunOutboxWorker(ctx context.Context, cfg config.Config, once bool) error {
	log, err := BuildLogger(cfg)
	if err != nil {
		return err
	}
	app, err := Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	publisher, closer, err := messaging.NewPublisher(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closer.Close()

	dispatcher := app.Dispatcher(cfg.Outbox, publisher)
	log.WithFields(logrus.Fields{
		"worker":   dispatcher.WorkerID(),
		"broker":   cfg.Broker.Driver,
		"batch":    cfg.Outbox.BatchSize,
		"interval": cfg.Outbox.PollInterval,
	}).Info("outbox-worker: started")

	if once {
		stats, err := dispatcher.PollOnce(ctx)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"claimed":   stats.Claimed,
			"published": stats.Published,
			"failed":    stats.Failed,
		}).Info("outbox-worker: batch done")
		return nil
	}
	return ignoreCancel(dispatcher.Run(ctx))
}
