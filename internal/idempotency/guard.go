// Package idempotency makes command execution safe to retry. A command runs
// at most once per (key, user) within its TTL, across every instance that
// shares the idempotent request table.
package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/repository"
	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/metrics"
	"github.com/allegro/bigcache/v3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

type Request struct {
	Key         string
	UserID      string
	RequestHash string
	// TTL overrides the guard's default retention when positive.
	TTL time.Duration
}

type Response struct {
	StatusCode int
	Body       []byte
	// Replayed is set when the response comes from an earlier execution.
	Replayed bool
}

type Action func(ctx context.Context) (Response, error)

type Guard struct {
	repo  repository.IdempotencyRepository
	cache *bigcache.BigCache
	group singleflight.Group
	log   logrus.FieldLogger
	cfg   Config
}

type Config struct {
	DefaultTTL   time.Duration
	LockDuration time.Duration
	CacheEntries int
	Now          func() time.Time
}

func NewGuard(repo repository.IdempotencyRepository, log logrus.FieldLogger, cfg Config) (*Guard, error) {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = 24 * time.Hour
	}
	if cfg.LockDuration <= 0 {
		cfg.LockDuration = 30 * time.Second
	}
	if cfg.CacheEntries <= 0 {
		cfg.CacheEntries = 10_000
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	cacheCfg := bigcache.DefaultConfig(cfg.DefaultTTL)
	cacheCfg.CleanWindow = time.Minute
	cacheCfg.MaxEntriesInWindow = cfg.CacheEntries
	cacheCfg.Verbose = false
	cache, err := bigcache.New(context.Background(), cacheCfg)
	if err != nil {
		return nil, fmt.Errorf("idempotency: init cache: %w", err)
	}

	return &Guard{repo: repo, cache: cache, log: log, cfg: cfg}, nil
}

func (g *Guard) Close() error {
	return g.cache.Close()
}

// Execute runs action unless an earlier execution for the same request
// already produced a response, which is then returned instead. While another
// execution holds the lock it fails fast with repository.ErrProcessing. A
// failed action releases the lock without recording anything.
//
// If the response cannot be stored after the action succeeded, the key is
// left without a response and runs again once its lock expires.
func (g *Guard) Execute(ctx context.Context, req Request, action Action) (Response, error) {
	if req.Key == "" {
		return Response{}, fmt.Errorf("%w: idempotency key is required", repository.ErrValidation)
	}

	if resp, ok, err := g.fromCache(req); ok || err != nil {
		return resp, err
	}

	ch := g.group.DoChan(flightKey(req), func() (any, error) {
		return g.execute(ctx, req, action)
	})
	select {
	case <-ctx.Done():
		return Response{}, ctx.Err()
	case res := <-ch:
		if res.Err == nil {
			return res.Val.(Response), nil
		}
		// The shared call was cancelled by the caller that started it.
		if res.Shared && isContextErr(res.Err) && ctx.Err() == nil {
			return g.execute(ctx, req, action)
		}
		return Response{}, res.Err
	}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (g *Guard) execute(ctx context.Context, req Request, action Action) (Response, error) {
	now := g.cfg.Now().UTC()
	ttl := g.ttl(req)

	rec, err := g.repo.Find(ctx, req.Key, req.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		rec, err = g.create(ctx, req, now, ttl)
		if err == nil {
			return g.run(ctx, rec, req, action)
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return Response{}, err
		}
		g.log.WithField("idempotency_key", req.Key).Debug("idempotency: lost create race, re-reading")
		rec, err = g.repo.Find(ctx, req.Key, req.UserID)
	}
	if err != nil {
		return Response{}, fmt.Errorf("%w: idempotency lookup: %w", repository.ErrPersistence, err)
	}
	return g.resume(ctx, rec, req, action, now, ttl)
}

func (g *Guard) create(ctx context.Context, req Request, now time.Time, ttl time.Duration) (entity.IdempotentRequest, error) {
	lockedUntil := now.Add(g.cfg.LockDuration)
	rec := entity.IdempotentRequest{
		ID:          uuid.New(),
		Key:         req.Key,
		UserID:      req.UserID,
		RequestHash: req.RequestHash,
		CreatedOn:   now,
		ExpiresOn:   now.Add(ttl),
		LockedUntil: &lockedUntil,
	}
	if err := g.repo.TryCreate(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return entity.IdempotentRequest{}, err
		}
		return entity.IdempotentRequest{}, fmt.Errorf("%w: idempotency create: %w", repository.ErrPersistence, err)
	}
	return rec, nil
}

// resume handles a record that already exists.
func (g *Guard) resume(ctx context.Context, rec entity.IdempotentRequest, req Request, action Action, now time.Time, ttl time.Duration) (Response, error) {
	live := !rec.Expired(now)
	if live && rec.RequestHash != "" && req.RequestHash != "" && rec.RequestHash != req.RequestHash {
		metrics.IdempotencyOutcomes.WithLabelValues("mismatch").Inc()
		return Response{}, fmt.Errorf("%w: key %q", repository.ErrRequestMismatch, req.Key)
	}
	if live && rec.HasResponse() {
		resp := Response{StatusCode: rec.StatusCode, Body: rec.ResponseBody, Replayed: true}
		g.remember(req, rec.ExpiresOn, resp)
		metrics.IdempotencyOutcomes.WithLabelValues("replayed").Inc()
		return resp, nil
	}
	if rec.LockedAt(now) {
		metrics.IdempotencyOutcomes.WithLabelValues("processing").Inc()
		return Response{}, fmt.Errorf("%w: key %q is locked until %s", repository.ErrProcessing, req.Key, rec.LockedUntil.Format(time.RFC3339))
	}

	lockedUntil := now.Add(g.cfg.LockDuration)
	expiresOn := now.Add(ttl)
	acquired, err := g.repo.TryAcquireLock(ctx, rec.ID, req.RequestHash, now, lockedUntil, expiresOn)
	if err != nil {
		return Response{}, fmt.Errorf("%w: idempotency lock: %w", repository.ErrPersistence, err)
	}
	if !acquired {
		metrics.IdempotencyOutcomes.WithLabelValues("processing").Inc()
		return Response{}, fmt.Errorf("%w: key %q", repository.ErrProcessing, req.Key)
	}
	rec.LockedUntil = &lockedUntil
	rec.ExpiresOn = expiresOn
	return g.run(ctx, rec, req, action)
}

// run executes the action as the owner of rec.
func (g *Guard) run(ctx context.Context, rec entity.IdempotentRequest, req Request, action Action) (Response, error) {
	log := g.log.WithFields(logrus.Fields{"idempotency_key": req.Key, "user_id": req.UserID})

	resp, err := action(ctx)
	if err != nil {
		if releaseErr := g.repo.ReleaseLock(context.WithoutCancel(ctx), rec.ID); releaseErr != nil {
			log.WithError(releaseErr).Warn("idempotency: release lock failed")
		}
		metrics.IdempotencyOutcomes.WithLabelValues("failed").Inc()
		return Response{}, err
	}
	if resp.StatusCode == 0 {
		resp.StatusCode = http.StatusOK
	}

	if err := g.persist(context.WithoutCancel(ctx), rec.ID, resp); err != nil {
		log.WithError(err).Error("idempotency: persist response failed, key will run again after its lock expires")
	} else {
		g.remember(req, rec.ExpiresOn, resp)
	}
	metrics.IdempotencyOutcomes.WithLabelValues("executed").Inc()
	return resp, nil
}

const persistAttempts = 3

// persist stores the response of a finished action, retrying transient
// failures a bounded number of times.
func (g *Guard) persist(ctx context.Context, id uuid.UUID, resp Response) error {
	var err error
	for attempt := range persistAttempts {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 50 * time.Millisecond)
		}
		if err = g.repo.PersistResponse(ctx, id, resp.StatusCode, resp.Body); err == nil {
			return nil
		}
	}
	return err
}

// Purge deletes records that expired before the given time.
func (g *Guard) Purge(ctx context.Context, before time.Time) (int64, error) {
	n, err := g.repo.DeleteExpired(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("%w: idempotency purge: %w", repository.ErrPersistence, err)
	}
	return n, nil
}

func (g *Guard) ttl(req Request) time.Duration {
	if req.TTL > 0 {
		return req.TTL
	}
	return g.cfg.DefaultTTL
}

// Do wraps a typed command result with Execute. The result is stored as JSON.
func Do[T any](ctx context.Context, g *Guard, req Request, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	resp, err := g.Execute(ctx, req, func(ctx context.Context) (Response, error) {
		v, err := fn(ctx)
		if err != nil {
			return Response{}, err
		}
		body, err := json.Marshal(v)
		if err != nil {
			return Response{}, err
		}
		return Response{StatusCode: http.StatusOK, Body: body}, nil
	})
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return out, fmt.Errorf("idempotency: decode stored response: %w", err)
	}
	return out, nil
}
