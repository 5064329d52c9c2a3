package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"

	httpserver "chatroom/infrastructure/http"
	"chatroom/repositories"
	"chatroom/runtime"
	"chatroom/services"
	"chatroom/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting, so every defer (database close included)
// executes before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := newLogger(config.LogLevel)

	// 2. Database (BadgerDB). No path configured means in-memory: history
	// does not survive a restart, which is the documented default.
	options := badger.DefaultOptions(config.BadgerFilepath).WithLoggingLevel(badger.WARNING)
	if config.BadgerFilepath == "" {
		options = options.WithInMemory(true)
	}
	db, err := badger.Open(options)
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Core components
	history := repositories.NewHistory(db, log)
	registry := runtime.NewRegistry()
	broker := runtime.NewBroker(log, registry, history)

	blobs, err := storage.NewDiskStore(config.BlobDir)
	if err != nil {
		return fmt.Errorf("blob store init failed: %w", err)
	}

	chatService := services.NewChatService(broker, history)
	attachmentService := services.NewAttachmentService(log, blobs, config.MaxUploadBytes)
	authService := services.NewAuthService(log, repositories.NewUserRepository(db),
		[]byte(config.AuthTokenKey), config.AuthTokenDuration)

	if config.SeedUsers {
		if err := authService.Seed(demoUsers); err != nil {
			return fmt.Errorf("user seeding failed: %w", err)
		}
	}

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Transport
	server := httpserver.NewServer(log, chatService, attachmentService, authService,
		config.ConnectionBufferSize, config.MaxUploadBytes, config.UploadTimeout, config.HistoryWindow)

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting server", "address", address)
		if err := server.Listen(address); err != nil {
			errChan <- fmt.Errorf("server error: %w", err)
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
	if err := server.Shutdown(); err != nil {
		log.Warn("server shutdown", "error", err)
	}
	log.Info("Program stopped cleanly")
	return nil
}
