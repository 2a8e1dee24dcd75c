// Package persistence implements the cart repositories on PostgreSQL through
// gorm. Repositories pick up the transaction carried by the context, so a
// command's read model change, events and outbox row commit together.
package persistence

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

type Config struct {
	WriteDSN        string
	ReadDSN         string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	SlowQuery       time.Duration
}

type DB struct {
	Conn *gorm.DB
}

var _ repository.Store = (*DB)(nil)

var errNotInitialized = errors.New("db: gorm connection is not initialized")

type txKey struct{}

func New(ctx context.Context, cfg Config, log logrus.FieldLogger) (*DB, error) {
	if cfg.WriteDSN == "" {
		return nil, errors.New("db: WriteDSN is required")
	}
	if cfg.SlowQuery <= 0 {
		cfg.SlowQuery = 200 * time.Millisecond
	}

	writeDSN := normalizeDSN(cfg.WriteDSN)
	writeDialector := postgres.New(postgres.Config{
		DSN:                  writeDSN,
		PreferSimpleProtocol: true,
	})
	gdb, err := gorm.Open(writeDialector, &gorm.Config{
		// unique violations surface as gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             cfg.SlowQuery,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}

	if replicas := readReplicas(cfg.ReadDSN, writeDSN); len(replicas) > 0 {
		if err := gdb.Use(dbresolver.Register(dbresolver.Config{
			Sources:  []gorm.Dialector{writeDialector},
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		}).
			SetMaxOpenConns(int(cfg.MaxConns)).
			SetMaxIdleConns(int(cfg.MinConns)).
			SetConnMaxLifetime(cfg.MaxConnLifetime).
			SetConnMaxIdleTime(cfg.MaxConnIdleTime),
		); err != nil {
			return nil, err
		}
		log.WithField("replicas", len(replicas)).Info("db: read replicas registered")
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		sqlDB.SetMaxOpenConns(int(cfg.MaxConns))
	}
	if cfg.MinConns > 0 {
		sqlDB.SetMaxIdleConns(int(cfg.MinConns))
	}
	if cfg.MaxConnLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.MaxConnLifetime)
	}
	if cfg.MaxConnIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.MaxConnIdleTime)
	}

	db := &DB{Conn: gdb}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) Close() {
	if db == nil || db.Conn == nil {
		return
	}
	sqlDB, err := db.Conn.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}

func (db *DB) Ping(ctx context.Context) error {
	if db == nil || db.Conn == nil {
		return errNotInitialized
	}
	sqlDB, err := db.Conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Write returns the transaction in ctx, or the primary.
func (db *DB) Write(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return db.Conn.WithContext(ctx)
}

// Read returns the transaction in ctx, or a replica when one is configured.
func (db *DB) Read(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return db.Conn.WithContext(ctx).Clauses(dbresolver.Read)
}

// WithTx runs fn in a transaction. Nested calls join the outer transaction.
func (db *DB) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if db == nil || db.Conn == nil {
		return errNotInitialized
	}
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return fn(ctx)
	}
	return db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func readReplicas(readDSN, writeDSN string) []gorm.Dialector {
	var replicas []gorm.Dialector
	for _, dsn := range strings.Split(readDSN, ",") {
		dsn = strings.TrimSpace(dsn)
		if dsn == "" {
			continue
		}
		dsn = normalizeDSN(dsn)
		if dsn == writeDSN {
			continue
		}
		replicas = append(replicas, postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}))
	}
	return replicas
}

// normalizeDSN disables pgx statement caching, which breaks behind
// transaction-pooling proxies.
func normalizeDSN(dsn string) string {
	parsed, err := url.Parse(dsn)
	if err != nil || parsed.Scheme == "" {
		return dsn
	}
	q := parsed.Query()
	if q.Get("statement_cache_capacity") == "" {
		q.Set("statement_cache_capacity", "0")
	}
	if q.Get("default_query_exec_mode") == "" {
		q.Set("default_query_exec_mode", "simple_protocol")
	}
	parsed.RawQuery = q.Encode()
	return parsed.String()
}
