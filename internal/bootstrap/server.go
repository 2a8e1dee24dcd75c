package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/config"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/infra/messaging"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/metrics"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/transport/http/handlers"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Run serves the cart API and runs the outbox dispatcher and the idempotency
// purge loop next to it until ctx is cancelled.
func Run(ctx context.Context, cfg config.Config) error {
	log, err := BuildLogger(cfg)
	if err != nil {
		return err
	}

	app, err := Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	if cfg.Replay.OnStartup {
		report, err := app.Replayer.ReplayAll(ctx)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"carts":   report.Carts,
			"rebuilt": report.Rebuilt,
			"failed":  len(report.Failed),
		}).Info("bootstrap: startup replay finished")
	}

	publisher, closer, err := messaging.NewPublisher(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closer.Close()

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      NewRouter(cfg, app, log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("bootstrap: server listening on %s", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("server shutdown error")
		}
		return nil
	})
	g.Go(func() error {
		return ignoreCancel(app.Dispatcher(cfg.Outbox, publisher).Run(gctx))
	})
	g.Go(func() error {
		purgeIdempotency(gctx, app, cfg.Idempotency.PurgeInterval)
		return nil
	})
	return g.Wait()
}

// NewRouter builds the gin engine serving the cart API.
func NewRouter(cfg config.Config, app *App, log logrus.FieldLogger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Actor(), middleware.Logger(log), gin.Recovery())
	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	handler := handlers.NewHandler(app.Carts, app.Replayer, app.DB)
	handlers.NewRouter(handler).RegisterRoutes(router, middleware.Idempotency(cfg.Server.RequireIdempotencyKey))
	return router
}

func purgeIdempotency(ctx context.Context, app *App, every time.Duration) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := app.Guard.Purge(ctx, now.UTC())
			if err != nil {
				app.Log.WithError(err).Warn("idempotency: purge failed")
				continue
			}
			if n > 0 {
				app.Log.WithField("deleted", n).Info("idempotency: expired keys purged")
			}
		}
	}
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
