package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/liftlog/liftlog/internal/config"
	"github.com/liftlog/liftlog/internal/mcp"
	"github.com/liftlog/liftlog/internal/storage"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	userEmail := flag.String("user", "", "email of the user to serve data for (local mode)")
	remoteURL := flag.String("url", "", "base URL of a running LiftLog server (remote mode)")
	token := flag.String("token", "", "bearer token for the server (remote mode)")
	flag.Parse()

	// MCP talks on stdout, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource

	if *remoteURL != "" {
		if *token == "" {
			fmt.Fprintf(os.Stderr, "Usage: liftlog-mcp -url https://liftlog.example -token <token>\n")
			flag.PrintDefaults()
			os.Exit(1)
		}
		ds = mcp.NewHTTPClient(*remoteURL, *token)
		log.Info("liftlog-mcp starting", "version", Version, "mode", "remote", "url", *remoteURL)
	} else {
		if *userEmail == "" {
			fmt.Fprintf(os.Stderr, "Usage: liftlog-mcp -config config.yaml -user you@example.com\n")
			flag.PrintDefaults()
			os.Exit(1)
		}

		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		ctx := context.Background()
		db, err := storage.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		user, err := db.GetUserByEmail(ctx, *userEmail)
		if err != nil {
			log.Error("user lookup failed", "email", *userEmail, "error", err)
			os.Exit(1)
		}

		ds = mcp.NewLocal(db, user.ID)
		log.Info("liftlog-mcp starting", "version", Version, "mode", "local", "user", *userEmail)
	}

	srv := mcp.New(ds, Version, log)
	if err := mcpserver.ServeStdio(srv); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
