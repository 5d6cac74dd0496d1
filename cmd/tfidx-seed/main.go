// Command tfidx-seed publishes a snapshot directory into the Redis/Valkey
// store read by the tfidx server.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/tfidx/internal/logger"
	"github.com/kailas-cloud/tfidx/internal/repository/snapshot"
	"github.com/kailas-cloud/tfidx/internal/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		dir         string
		driver      string
		addrs       []string
		password    string
		prefix      string
		plainMatrix bool
		timeout     time.Duration
		logLevel    string
		showVersion bool
	)

	flagSet := pflag.NewFlagSet("tfidx-seed", pflag.ContinueOnError)
	flagSet.StringVarP(&dir, "dir", "d", ".", "snapshot directory")
	flagSet.StringVar(&driver, "driver", snapshot.DriverValkey, "store driver: valkey or redis")
	flagSet.StringSliceVar(&addrs, "addr", []string{"localhost:6379"}, "store address (repeatable)")
	flagSet.StringVar(&password, "password", os.Getenv("TFIDX_DB_PASSWORD"), "store password")
	flagSet.StringVar(&prefix, "prefix", snapshot.DefaultKeyPrefix, "key prefix")
	flagSet.BoolVar(&plainMatrix, "plain-matrix", false, "matrix file is plain text and must be compressed before publishing")
	flagSet.DurationVar(&timeout, "timeout", time.Minute, "overall publish timeout")
	flagSet.StringVar(&logLevel, "log-level", "info", "log level")
	flagSet.BoolVar(&showVersion, "version", false, "print version and exit")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if showVersion {
		fmt.Printf("tfidx-seed %s\n", version.Get())
		return nil
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}
	if driver == snapshot.DriverPostgres {
		return errors.New("postgres snapshots are managed by migrations, use --driver valkey or redis")
	}

	logger, err := logpkg.NewLogger("cli", logLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	snap, err := readDir(dir, plainMatrix)
	if err != nil {
		return err
	}

	handle, err := snapshot.Open(snapshot.Options{
		Driver:    driver,
		Addrs:     addrs,
		Password:  password,
		KeyPrefix: prefix,
	}, logger)
	if err != nil {
		return err
	}
	defer handle.Conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := handle.Conn.WaitForReady(ctx, timeout); err != nil {
		return fmt.Errorf("store not ready: %w", err)
	}

	res, err := handle.Redis.Publish(ctx, snap.fields, snap.problems)
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	logger.Info("snapshot published",
		zap.String("dir", dir),
		zap.Int("fields", res.Fields),
		zap.Int("problems", res.Problems),
		zap.Int("removed", res.Removed),
		zap.Int("skipped", res.Skipped),
	)
	return nil
}
