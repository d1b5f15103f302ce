package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkumari69302-hue/Campus-lost-found/internal/api"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/blobstore"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/config"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/flash"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/web"
)

func main() {
	fs := flag.NewFlagSet("lostfound", flag.ContinueOnError)

	var configPath string
	fs.StringVar(&configPath, "config", "config.yaml", "")
	fs.StringVar(&configPath, "c", "config.yaml", "")

	var logPath string
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: lostfound [flags]

Flags:
  -c, -config <path>      YAML config file (default: config.yaml, optional)
  -l, -log <path>         log file path (overrides log_file from the config)
  -h, -help               show this help and exit

Environment:
  PORT, SECRET_KEY, SERVICE_ACCOUNT_FILE, SERVICE_ACCOUNT_JSON,
  DOCSTORE_DRIVER, MONGO_URI, BLOBSTORE_DRIVER
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if logPath != "" {
		cfg.LogFile = logPath
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid config: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := setupLogger(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(cfg); err != nil {
		slog.Error("server error", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	if cfg.UsingDefaultSecret() {
		slog.Warn("using the built-in secret key, set SECRET_KEY in production")
	}

	docs, err := openDocstore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening document store: %w", err)
	}
	defer docs.Close()

	blobs, blobCloser, err := openBlobstore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening blob store: %w", err)
	}
	if blobCloser != nil {
		defer blobCloser.Close()
	}

	flashes, err := flash.NewSigner(cfg.SecretKey)
	if err != nil {
		return err
	}

	// Set up routers.
	apiRouter := api.NewRouter(docs)
	webRouter, err := web.NewRouter(docs, blobs, flashes, cfg.Server.MaxUploadBytes)
	if err != nil {
		return fmt.Errorf("setting up web router: %w", err)
	}

	// Combine: API routes take priority, web routes handle the rest.
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	if local, ok := blobs.(*blobstore.LocalStore); ok && strings.HasPrefix(cfg.Blobstore.BaseURL, "/") {
		prefix := strings.TrimRight(cfg.Blobstore.BaseURL, "/") + "/"
		mux.Handle("GET "+prefix, http.StripPrefix(prefix, local.Handler()))
	}
	mux.Handle("/", webRouter)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.LoggingMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.Addr())
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	slog.Info("server stopped, closing stores")
	return nil
}
