package snapshot

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tfidx/internal/db"
	dbPostgres "github.com/kailas-cloud/tfidx/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/tfidx/internal/db/redis"
	"github.com/kailas-cloud/tfidx/internal/domain/corpus"
)

// Store drivers.
const (
	DriverValkey   = "valkey"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Reader is implemented by every snapshot source.
type Reader interface {
	FetchField(ctx context.Context, field corpus.Field) (string, error)
	FetchProblems(ctx context.Context) ([]corpus.Problem, error)
}

// Options selects and configures the store driver.
type Options struct {
	Driver     string
	Addrs      []string
	Username   string
	Password   string
	DB         int
	Standalone bool
	DSN        string
	KeyPrefix  string
}

// Handle bundles an open store connection with the source reading from it.
// Redis is nil unless the driver is valkey or redis.
type Handle struct {
	Conn   db.Conn
	Source Reader
	Redis  *RedisSource
}

// Open connects to the configured store. It does not wait for readiness.
func Open(opts Options, logger *zap.Logger) (*Handle, error) {
	switch opts.Driver {
	case DriverValkey, DriverRedis, "":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      opts.Addrs,
			Username:   opts.Username,
			Password:   opts.Password,
			DB:         opts.DB,
			Standalone: opts.Standalone,
		})
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", driverName(opts.Driver), err)
		}
		src := NewRedis(store, opts.KeyPrefix, logger)
		return &Handle{Conn: store, Source: src, Redis: src}, nil
	case DriverPostgres:
		store, err := dbPostgres.NewStore(dbPostgres.Config{DSN: opts.DSN})
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return &Handle{Conn: store, Source: NewPostgres(store, logger)}, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", opts.Driver)
	}
}

func driverName(d string) string {
	if d == "" {
		return DriverValkey
	}
	return d
}
