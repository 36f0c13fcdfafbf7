package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-engine/internal/config"
	"github.com/fleshka4/amm-engine/internal/infra/uniswap"
	"github.com/fleshka4/amm-engine/internal/logging"
	"github.com/fleshka4/amm-engine/internal/service"
	httptransport "github.com/fleshka4/amm-engine/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; it may carry ETH_RPC_URL and CONFIG_PATH.
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "cfg/config.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		return errors.Wrap(err, "config.Load")
	}

	logger, err := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})
	if err != nil {
		return errors.Wrap(err, "logging.New")
	}
	defer logger.Sync() //nolint:errcheck

	var client uniswap.Client
	if cfg.RPCURL != "" {
		client, err = uniswap.NewClient(cfg.RPCURL, uniswap.Options{
			CallTimeout: cfg.RPCTimeout,
			MaxTries:    cfg.RPCRetries,
		})
		if err != nil {
			return errors.Wrap(err, "uniswap.NewClient")
		}
	} else {
		logger.Warn("rpc_url is not set, on-chain pair reads are disabled")
	}

	svc := service.NewPoolService(client, *cfg.EstimateFees, logger)
	srv := httptransport.NewServer(svc, cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx, cfg.ListenAddr); err != nil {
		return errors.Wrap(err, "srv.ListenAndServe")
	}
	logger.Info("shutdown complete")
	return nil
}
