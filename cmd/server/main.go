package main

import (
	"chat-sync/auth"
	"chat-sync/contract"
	"chat-sync/infrastructure/httpapi"
	"chat-sync/infrastructure/ws"
	"chat-sync/internal"
	"chat-sync/moderation"
	"chat-sync/repositories"
	"chat-sync/runtime"
	"chat-sync/runtime/workers"
	"chat-sync/services"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// Returning instead of exiting lets every deferred cleanup (badger first) run before the process ends.
func run() (int, error) {
	// 1. Configuration & Logger
	config, err := internal.Load()
	if err != nil {
		return exitConfig, err
	}
	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database (BadgerDB)
	db, err := repositories.OpenBadger(config.BadgerFilepath, log)
	if err != nil {
		return exitRuntime, err
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	if log.Enabled(ctx, slog.LevelDebug) && config.DebugPort > 0 {
		endpoint := "/inspect"
		log.Info("Debug Badger inspector available",
			"url", fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint))
		database.StartDebugServer(db, config.DebugPort, endpoint, repositories.InspectRecord)
	}

	messages := repositories.NewMessageRepository(db, log, config.LimitMessages)
	chats := repositories.NewChatRepository(db, log)
	statuses := repositories.NewStatusRepository(db, log)
	participants := repositories.NewParticipantRepository(db)

	// 3. Supervision & realtime core
	supervisor := workers.NewSupervisor(log, config.RestartInterval)
	orchestrator := runtime.NewOrchestrator(log, supervisor, chats, statuses, runtime.OrchestratorConfig{
		TypingTimeout:  config.TypingTimeout,
		StatusTTL:      config.StatusTTL,
		MetricInterval: config.MetricInterval,
	})

	var censor contract.Censor
	if config.EnableModeration {
		moderator, err := moderation.LoadModerator(log, charReplacement)
		if err != nil {
			return exitConfig, fmt.Errorf("moderation setup failed: %w", err)
		}
		censor = moderator
	}

	// 4. Services & transport
	chatService := services.NewChatService(log, messages, chats, participants, orchestrator.Core(), censor)
	statusService := services.NewStatusService(log, statuses, participants, orchestrator.Expiry)
	authService := services.NewAuthService(log, participants,
		auth.NewTokenIssuer(config.JWTSecret, config.AuthTokenDuration))

	api := httpapi.NewAPI(log, chatService, statusService, authService)
	realtime := ws.NewHandler(log, chatService, authService, config.ConnectionBufferSize)
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           api.Routes(realtime),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// The orchestrator gets its own context so a transport failure also stops it
	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	errChan := make(chan error, 2)
	orchestratorDone := make(chan struct{})
	go func() {
		defer close(orchestratorDone)
		if err := orchestrator.Start(runCtx); err != nil {
			errChan <- fmt.Errorf("orchestrator failed: %w", err)
		}
	}()
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 5. Wait for Stop or Error
	var result *multierror.Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		result = multierror.Append(result, err)
	}

	// 6. Final Cleanup: transport first, then the core, so nothing touches badger once run returns
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		result = multierror.Append(result, fmt.Errorf("http shutdown: %w", err))
	}
	if err := realtime.Shutdown(shutdownCtx); err != nil {
		result = multierror.Append(result, fmt.Errorf("websocket shutdown: %w", err))
	}
	cancelRun()
	orchestrator.Stop()
	select {
	case <-orchestratorDone:
	case <-shutdownCtx.Done():
		result = multierror.Append(result, fmt.Errorf("orchestrator shutdown: %w", shutdownCtx.Err()))
	}

	if err := result.ErrorOrNil(); err != nil {
		return exitRuntime, err
	}
	log.Info("Program stopped cleanly")
	return exitOK, nil
}
