package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	server "github.com/tartacosmica/chat-backend/infrastructure/http/server"
	"github.com/tartacosmica/chat-backend/internal"
	"github.com/tartacosmica/chat-backend/observability"
	"github.com/tartacosmica/chat-backend/repositories"
	"github.com/tartacosmica/chat-backend/services"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting, so every defer (database cleanup included)
// executes before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Repositories, services, projections
	userRepository := repositories.NewUserRepository(db)
	publicRepository := repositories.NewPublicMessageRepository(db, log)
	privateRepository := repositories.NewPrivateMessageRepository(db, log)

	authService := services.NewAuthService(userRepository, log)
	chatService := services.NewChatService(
		publicRepository, privateRepository,
		config.HistoryLimit, config.ActiveUsersLimit, log,
	)
	monitoring := observability.NewMonitoringManager()

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. HTTP Server
	chatServer := server.NewChatServer(
		log, authService, chatService, monitoring,
		config.EnableAccounts, config.EnablePrivateChats,
	)
	app := chatServer.Router()

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address,
			"accounts", config.EnableAccounts, "privateChats", config.EnablePrivateChats)
		if err := app.Listen(address); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 6. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 7. Final Cleanup
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	log.Info("Program stopped cleanly")

	return nil
}
