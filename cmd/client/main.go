package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/iudanet/bookshelf/internal/client/api"
	"github.com/iudanet/bookshelf/internal/client/cli"
	"github.com/iudanet/bookshelf/internal/client/storage/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "bookshelf-client.db", "Path to local database")

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	command := args[0]

	// Создаем контекст
	ctx := context.Background()

	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// Создаем API клиент и CLI
	apiClient := api.NewClient(*serverURL)
	c := cli.New(apiClient, boltStorage)

	// Выполняем команду
	switch command {
	case "register":
		runCommand(c.Register(ctx))
	case "login":
		runCommand(c.Login(ctx))
	case "logout":
		runCommand(c.Logout(ctx))
	case "status":
		runCommand(c.Status(ctx))
	case "search":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: bookshelf search <query>")
			os.Exit(1)
		}
		runCommand(c.Search(ctx, strings.Join(args[1:], " ")))
	case "save":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "Usage: bookshelf save <bookId>")
			os.Exit(1)
		}
		runCommand(c.Save(ctx, args[1]))
	case "remove":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "Usage: bookshelf remove <bookId>")
			os.Exit(1)
		}
		runCommand(c.Remove(ctx, args[1]))
	case "list":
		runCommand(c.List(ctx))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		cli.PrintUsage()
		os.Exit(1)
	}
}

func runCommand(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("Bookshelf Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
