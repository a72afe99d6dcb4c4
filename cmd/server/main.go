package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/bookshelf/internal/books"
	"github.com/iudanet/bookshelf/internal/server"
	"github.com/iudanet/bookshelf/internal/server/auth"
	"github.com/iudanet/bookshelf/internal/server/config"
	"github.com/iudanet/bookshelf/internal/server/handlers"
	"github.com/iudanet/bookshelf/internal/server/jwt"
	"github.com/iudanet/bookshelf/internal/server/storage"
	"github.com/iudanet/bookshelf/internal/server/storage/mongo"
	"github.com/iudanet/bookshelf/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "bookshelf-server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	users, err := openStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := users.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	logger.Info("storage ready", "type", string(cfg.DatabaseType))

	tokens := jwt.NewService(cfg.JWTSecret, cfg.TokenTTL)
	authService := auth.NewService(logger, users, tokens)
	searcher := books.NewClient("")

	srv := server.New(cfg, logger, tokens, server.Handlers{
		Auth:   handlers.NewAuthHandler(logger, authService),
		Users:  handlers.NewUsersHandler(logger, authService),
		Books:  handlers.NewBooksHandler(logger, searcher),
		Health: handlers.NewHealthHandler(logger, Version),
	})

	return srv.Run(ctx)
}

// openStorage открывает storage backend согласно конфигурации
func openStorage(ctx context.Context, cfg *config.Config) (storage.UserStorage, error) {
	switch cfg.DatabaseType {
	case config.MongoDB:
		return mongo.New(ctx, cfg.MongoURI, cfg.DatabaseName)
	default:
		return sqlite.New(ctx, cfg.SQLitePath)
	}
}

func printVersion() {
	fmt.Printf("Bookshelf Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
