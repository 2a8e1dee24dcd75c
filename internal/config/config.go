package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Database struct {
	WriteDSN        string        `mapstructure:"write_dsn"`
	ReadDSN         string        `mapstructure:"read_dsn"`
	Host            string        `mapstructure:"host"`
	ReadHost        string        `mapstructure:"read_host"`
	Port            int           `mapstructure:"port"`
	Name            string        `mapstructure:"name"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"sslmode"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
	SlowQuery       time.Duration `mapstructure:"slow_query"`
}

type Config struct {
	Database    Database    `mapstructure:"database"`
	Server      Server      `mapstructure:"server"`
	Log         Log         `mapstructure:"log"`
	Broker      Broker      `mapstructure:"broker"`
	NATS        NATS        `mapstructure:"nats"`
	Kafka       Kafka       `mapstructure:"kafka"`
	Outbox      Outbox      `mapstructure:"outbox"`
	EventStore  EventStore  `mapstructure:"event_store"`
	Snapshot    Snapshot    `mapstructure:"snapshot"`
	Idempotency Idempotency `mapstructure:"idempotency"`
	Replay      Replay      `mapstructure:"replay"`
	Metrics     Metrics     `mapstructure:"metrics"`
	Env         string      `mapstructure:"environment"`
}

type Server struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	// RequireIdempotencyKey rejects mutating requests without a key.
	RequireIdempotencyKey bool `mapstructure:"require_idempotency_key"`
}

type Log struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// Broker selects the publisher used by the outbox dispatcher: nats, kafka or log.
type Broker struct {
	Driver string `mapstructure:"driver"`
}

type NATS struct {
	URL                string          `mapstructure:"url"`
	Stream             string          `mapstructure:"stream"`
	Subjects           []string        `mapstructure:"subjects"`
	ConsumerSubject    string          `mapstructure:"consumer_subject"`
	DLQSubject         string          `mapstructure:"dlq_subject"`
	ConsumerDurable    string          `mapstructure:"consumer_durable"`
	AckWait            time.Duration   `mapstructure:"ack_wait"`
	MaxAckPending      int             `mapstructure:"max_ack_pending"`
	ConsumerMaxDeliver int             `mapstructure:"consumer_max_deliver"`
	ConsumerBackoff    []time.Duration `mapstructure:"consumer_backoff"`
}

type Kafka struct {
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type Outbox struct {
	BatchSize    int           `mapstructure:"batch_size"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	LockTimeout  time.Duration `mapstructure:"lock_timeout"`
	MaxAttempts  int           `mapstructure:"max_attempts"`
	BackoffBase  time.Duration `mapstructure:"backoff_base"`
	BackoffMax   time.Duration `mapstructure:"backoff_max"`
}

type EventStore struct {
	AppendRetries int `mapstructure:"append_retries"`
}

type Snapshot struct {
	Interval int `mapstructure:"interval"`
}

type Idempotency struct {
	DefaultTTL    time.Duration `mapstructure:"default_ttl"`
	LockDuration  time.Duration `mapstructure:"lock_duration"`
	CacheEntries  int           `mapstructure:"cache_entries"`
	PurgeInterval time.Duration `mapstructure:"purge_interval"`
}

type Replay struct {
	OnStartup bool `mapstructure:"on_startup"`
}

type Metrics struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

func Load(cfgFile string) (Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.cart-service")
		v.AddConfigPath("/etc/cart-service")
	}

	v.SetEnvPrefix("ESHOP_CART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("database.user", "DB_USER")
	_ = v.BindEnv("database.password", "DB_PASS")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	cfg = applyDSNDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// keys without a default are invisible to AutomaticEnv on Unmarshal
	for _, key := range []string{"write_dsn", "read_dsn", "host", "read_host", "name", "user", "password"} {
		v.SetDefault("database."+key, "")
	}
	v.SetDefault("log.file", "")
	v.SetDefault("log.compress", false)
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 0)
	v.SetDefault("database.connect_timeout", "5s")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("database.max_conn_idle_time", "5m")
	v.SetDefault("database.slow_query", "200ms")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "5s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.require_idempotency_key", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 14)
	v.SetDefault("broker.driver", "nats")
	v.SetDefault("nats.url", "nats://127.0.0.1:4222")
	v.SetDefault("nats.stream", "CART")
	v.SetDefault("nats.subjects", []string{"cart.>", "dlq.cart.>"})
	v.SetDefault("nats.consumer_subject", "cart.>")
	v.SetDefault("nats.dlq_subject", "dlq.cart")
	v.SetDefault("nats.consumer_durable", "cart-audit-worker")
	v.SetDefault("nats.ack_wait", "30s")
	v.SetDefault("nats.max_ack_pending", 256)
	v.SetDefault("nats.consumer_max_deliver", 10)
	v.SetDefault("kafka.brokers", []string{"127.0.0.1:9092"})
	v.SetDefault("kafka.topic", "cart-events")
	v.SetDefault("kafka.batch_timeout", "10ms")
	v.SetDefault("kafka.write_timeout", "10s")
	v.SetDefault("outbox.batch_size", 50)
	v.SetDefault("outbox.poll_interval", "5s")
	v.SetDefault("outbox.lock_timeout", "60s")
	v.SetDefault("outbox.max_attempts", 10)
	v.SetDefault("outbox.backoff_base", "1s")
	v.SetDefault("outbox.backoff_max", "5m")
	v.SetDefault("event_store.append_retries", 3)
	v.SetDefault("snapshot.interval", 100)
	v.SetDefault("idempotency.default_ttl", "24h")
	v.SetDefault("idempotency.lock_duration", "30s")
	v.SetDefault("idempotency.cache_entries", 10000)
	v.SetDefault("idempotency.purge_interval", "1h")
	v.SetDefault("replay.on_startup", false)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("environment", "dev")
}

// Validate rejects settings the services cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Outbox.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("outbox.batch_size must be positive, got %d", c.Outbox.BatchSize))
	}
	if c.Outbox.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("outbox.poll_interval must be positive, got %s", c.Outbox.PollInterval))
	}
	if c.Outbox.MaxAttempts <= 0 {
		errs = append(errs, fmt.Errorf("outbox.max_attempts must be positive, got %d", c.Outbox.MaxAttempts))
	}
	if c.Snapshot.Interval < 0 {
		errs = append(errs, fmt.Errorf("snapshot.interval must not be negative, got %d", c.Snapshot.Interval))
	}
	if c.Idempotency.DefaultTTL <= 0 {
		errs = append(errs, fmt.Errorf("idempotency.default_ttl must be positive, got %s", c.Idempotency.DefaultTTL))
	}
	if c.Idempotency.LockDuration <= 0 {
		errs = append(errs, fmt.Errorf("idempotency.lock_duration must be positive, got %s", c.Idempotency.LockDuration))
	}
	switch c.Broker.Driver {
	case "nats", "kafka", "log":
	default:
		errs = append(errs, fmt.Errorf("broker.driver must be nats, kafka or log, got %q", c.Broker.Driver))
	}
	return errors.Join(errs...)
}

func applyDSNDefaults(cfg Config) Config {
	if cfg.Database.WriteDSN == "" && cfg.Database.Host != "" && cfg.Database.Name != "" {
		cfg.Database.WriteDSN = buildDSN(cfg.Database.Host, cfg.Database.Port, cfg.Database.Name, cfg.Database.User, cfg.Database.Password, cfg.Database.SSLMode)
	}
	if cfg.Database.ReadDSN == "" {
		readHost := cfg.Database.ReadHost
		if readHost == "" {
			readHost = cfg.Database.Host
		}
		if readHost != "" && cfg.Database.Name != "" {
			cfg.Database.ReadDSN = buildDSN(readHost, cfg.Database.Port, cfg.Database.Name, cfg.Database.User, cfg.Database.Password, cfg.Database.SSLMode)
		}
	}
	return cfg
}

func buildDSN(host string, port int, name, user, password, sslmode string) string {
	if sslmode == "" {
		sslmode = "disable"
	}
	creds := ""
	if user != "" {
		creds = user
		if password != "" {
			creds += ":" + password
		}
		creds += "@"
	}
	return fmt.Sprintf("postgres://%s%s:%d/%s?sslmode=%s", creds, host, port, name, sslmode)
}
