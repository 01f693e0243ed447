package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"wdk-wallet/go-daemon/internal/adapters/rpc"
	"wdk-wallet/go-daemon/internal/config"
	"wdk-wallet/go-daemon/internal/dispatch"
	"wdk-wallet/go-daemon/internal/engine/hdwallet"
	"wdk-wallet/go-daemon/internal/platform/privacylog"
	"wdk-wallet/go-daemon/internal/session"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	rpcAddr := flag.String("rpc-addr", "", "JSON-RPC listen address")
	configPath := flag.String("config", "", "Path to walletd.yaml (optional)")
	rpcToken := flag.String("rpc-token", "", "RPC bearer token (optional)")
	devMode := flag.Bool("dev", false, "include error cause chains in responses")
	flag.Parse()
	if *showVersion {
		fmt.Printf("walletd version=%s commit=%s build_date=%s\n", version, commit, buildDate)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadFromPath(*configPath)
	if *rpcAddr != "" {
		cfg.RPC.Addr = *rpcAddr
	}
	if *rpcToken != "" {
		cfg.RPC.Token = *rpcToken
	}
	if *devMode {
		cfg.DevMode = true
	}

	logger := slog.New(privacylog.WrapHandler(slog.NewJSONHandler(os.Stderr, nil)))
	slog.SetDefault(logger)

	sessions := session.New(session.Config{
		Registry:         hdwallet.Registry(cfg.Networks.Registered...),
		RequiredNetworks: cfg.Networks.Required,
		NewEngine:        hdwallet.Factory,
	})
	server := rpc.NewServer(cfg, sessions, dispatch.New(sessions))

	log.Println("walletd starting on", cfg.RPC.Addr)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("walletd failed: %v", err)
	}
	log.Println("walletd stopped")
}
