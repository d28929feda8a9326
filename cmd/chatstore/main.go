package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/iudanet/chatstore/internal/config"
	"github.com/iudanet/chatstore/internal/service"
	"github.com/iudanet/chatstore/internal/storage/sqlite"
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
	dbPath := flag.String("db", "", "Path to the SQLite database (overrides CHATSTORE_DB)")

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	cfg := config.Load()
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]

	ctx := context.Background()

	// Открываем хранилище; схема создается при первом открытии
	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	chat := service.NewChat(store, logger)

	// Выполняем команду
	switch command {
	case "init":
		// Открытие хранилища уже прогнало миграции
		fmt.Printf("Database initialized at %s\n", cfg.DBPath)
	case "engine-version":
		version, err := store.Version(ctx)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("SQLite %s\n", version)
	case "create-user":
		if err := runCreateUser(ctx, chat, args[1:]); err != nil {
			fatal(err)
		}
	case "create-room":
		if err := runCreateRoom(ctx, chat, args[1:]); err != nil {
			fatal(err)
		}
	case "join":
		if err := runJoin(ctx, chat, args[1:]); err != nil {
			fatal(err)
		}
	case "users":
		if err := runUsers(ctx, store, args[1:]); err != nil {
			fatal(err)
		}
	case "rooms":
		if err := runRooms(ctx, store); err != nil {
			fatal(err)
		}
	case "members":
		if err := runMembers(ctx, store, args[1:]); err != nil {
			fatal(err)
		}
	case "stats":
		if err := runStats(ctx, store); err != nil {
			fatal(err)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printVersion() {
	fmt.Printf("chatstore\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}

func printUsage() {
	fmt.Println(`chatstore - chat persistence administration

Usage:
  chatstore [-db path] <command> [arguments]

Commands:
  init                        Create the database schema
  engine-version              Print the SQLite engine version
  create-user <login> [name]  Create a user (prompts for password)
  create-room <room>          Create a room
  join <login> <room>         Add a user to a room
  users [-all|-deleted]       List users (active by default)
  rooms                       List rooms
  members <room>              List active members of a room
  stats                       Per-room message counts

Environment:
  CHATSTORE_DB                Database path (default chatstore.db)
  CHATSTORE_LOG_LEVEL         debug, info, warn or error`)
}
