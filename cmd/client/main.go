package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/tourplan/internal/client/cli"
	"github.com/iudanet/tourplan/internal/client/storage"
	"github.com/iudanet/tourplan/internal/client/storage/boltdb"
	"github.com/iudanet/tourplan/internal/config"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	cli.Version, cli.BuildDate, cli.GitCommit = Version, BuildDate, GitCommit

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Без файла сессий клиент работает только с --token / TOURPLAN_TOKEN
	var sessions storage.SessionStorage
	store, err := boltdb.New(ctx, cfg.SessionFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: saved sessions unavailable: %v\n", err)
	} else {
		sessions = store
	}

	err = cli.NewRootCommand(cfg, cli.DefaultDeps(sessions)).ExecuteContext(ctx)
	if store != nil {
		_ = store.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		if errors.Is(err, cli.ErrRejected) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
