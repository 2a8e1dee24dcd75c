package bootstrap

import (
	"context"
	"time"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/config"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/eventstore"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/idempotency"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/infra/persistence"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/outbox"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/projection"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/usecase"
	"github.com/sirupsen/logrus"
)

// App holds the components shared by every command that touches the database.
type App struct {
	DB       *persistence.DB
	Events   *eventstore.Store
	Outbox   *persistence.OutboxRepository
	Audit    *persistence.AuditLogRepository
	Guard    *idempotency.Guard
	Carts    *usecase.Cart
	Replayer *projection.Replayer
	Log      *logrus.Logger
}

func Open(ctx context.Context, cfg config.Config, log *logrus.Logger) (*App, error) {
	start := time.Now()
	connectCtx := ctx
	if cfg.Database.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
		defer cancel()
	}

	db, err := persistence.New(connectCtx, persistence.Config{
		WriteDSN:        cfg.Database.WriteDSN,
		ReadDSN:         cfg.Database.ReadDSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		SlowQuery:       cfg.Database.SlowQuery,
	}, log)
	if err != nil {
		return nil, err
	}
	log.Infof("bootstrap: db ready in %s", time.Since(start))

	guard, err := idempotency.NewGuard(persistence.NewIdempotencyRepository(db), log, idempotency.Config{
		DefaultTTL:   cfg.Idempotency.DefaultTTL,
		LockDuration: cfg.Idempotency.LockDuration,
		CacheEntries: cfg.Idempotency.CacheEntries,
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	carts := persistence.NewCartRepository(db)
	events := eventstore.New(persistence.NewEventRepository(db), log)
	outboxRepo := persistence.NewOutboxRepository(db)

	return &App{
		DB:     db,
		Events: events,
		Outbox: outboxRepo,
		Audit:  persistence.NewAuditLogRepository(db),
		Guard:  guard,
		Carts: usecase.NewCart(db, carts, events, outbox.New(outboxRepo), guard, log,
			usecase.WithSnapshotPolicy(projection.SnapshotPolicy{Interval: cfg.Snapshot.Interval}),
			usecase.WithAppendRetries(cfg.EventStore.AppendRetries),
		),
		Replayer: projection.NewReplayer(db, events, carts, log),
		Log:      log,
	}, nil
}

func (a *App) Close() {
	if a == nil {
		return
	}
	_ = a.Guard.Close()
	a.DB.Close()
}

// Dispatcher builds an outbox dispatcher over the app's outbox table.
func (a *App) Dispatcher(cfg config.Outbox, publisher outbox.Publisher) *outbox.Dispatcher {
	return outbox.NewDispatcher(a.Outbox, publisher, a.Log,
		outbox.WithInterval(cfg.PollInterval),
		outbox.WithBatchSize(cfg.BatchSize),
		outbox.WithLockTimeout(cfg.LockTimeout),
		outbox.WithMaxAttempts(cfg.MaxAttempts),
		outbox.WithExponentialBackoff(cfg.BackoffBase, cfg.BackoffMax),
	)
}
