package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/seminarhub/userdb/internal/cli"
	"github.com/seminarhub/userdb/internal/config"
	"github.com/seminarhub/userdb/internal/logging"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: userctl <command> [flags]")
	fmt.Fprintln(os.Stderr, "Commands: add, passwd, list, issue, revoke, purge")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	if err := app.Run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("%v", err)
	}
}
