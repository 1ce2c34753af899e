package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/giygas/myoncologist-api/config"
	"github.com/giygas/myoncologist-api/data"
	"github.com/giygas/myoncologist-api/handlers"
	"github.com/giygas/myoncologist-api/health"
	"github.com/giygas/myoncologist-api/logging"
	"github.com/giygas/myoncologist-api/medicines"
	"github.com/giygas/myoncologist-api/oncologists"
	"github.com/giygas/myoncologist-api/scheduler"
	"github.com/giygas/myoncologist-api/server"
	"github.com/giygas/myoncologist-api/speech"
	"github.com/giygas/myoncologist-api/symptoms"
	"github.com/giygas/myoncologist-api/validation"
)

func init() {
	// Read the env variables from the working directory
	err := godotenv.Load()
	if err != nil {
		// If failed, try loading from executable directory
		ex, err := os.Executable()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to get executable path:", err)
			os.Exit(1)
		}

		if err := os.Chdir(filepath.Dir(ex)); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to change directory:", err)
			os.Exit(1)
		}
		_ = godotenv.Load()
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Configuration error:", err)
		os.Exit(1)
	}

	logging.InitLogger(logging.OptionsFromConfig(cfg))
	defer logging.Close()

	sessions := data.NewSessionContainer()
	directory := oncologists.NewDirectory()

	handler := handlers.NewHTTPHandler(handlers.Dependencies{
		Sessions:      sessions,
		Validator:     validation.NewInputValidator(cfg.MaxSymptomLength),
		Analyzer:      symptoms.NewAnalyzer(cfg.AnalysisDelay),
		Scanner:       medicines.NewScanner(medicines.NewSelector(nil), cfg.AnalysisDelay),
		Directory:     directory,
		Transcriber:   speech.NewTranscriber(cfg.DeepgramAPIKey),
		HealthChecker: health.NewHealthChecker(sessions, directory, cfg.MaxSessions),
		MaxUploadSize: cfg.MaxUploadSize,

		MaxSymptomLength: cfg.MaxSymptomLength,
	})

	sweeper := scheduler.NewScheduler(sessions, cfg.SessionTTL, cfg.SessionSweepInterval)
	if err := sweeper.Start(); err != nil {
		logging.Error("Failed to start session sweeper", "error", err)
		os.Exit(1)
	}
	defer sweeper.Stop()

	srv := server.NewServer(cfg, handler)

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	// Block until a signal is received
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error", "error", err)
	}
}
