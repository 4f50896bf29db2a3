package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rpggio/kanbee/internal/app"
	"github.com/rpggio/kanbee/internal/config"
	"github.com/rpggio/kanbee/internal/domain/board"
	"github.com/rpggio/kanbee/internal/snapshot"
	"github.com/rpggio/kanbee/internal/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logWriter, closeLog := openLogWriter(cfg)
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	err = run(cfg, logger)
	if err != nil {
		logger.Error("server stopped", "error", err)
	}
	if cerr := closeLog(); cerr != nil {
		fmt.Fprintf(os.Stderr, "closing log file: %v\n", cerr)
	}
	if err != nil {
		os.Exit(1)
	}
}

// openLogWriter picks the log destination. stdio mode logs to stderr to keep
// stdout clean for JSON-RPC; a configured path gets a rotating file instead.
func openLogWriter(cfg config.Config) (io.Writer, func() error) {
	var w io.Writer = os.Stdout
	if cfg.Transport.Mode == config.TransportStdio {
		w = os.Stderr
	}
	if cfg.Log.Path == "" {
		return w, func() error { return nil }
	}
	if err := ensureDir(cfg.Log.Path); err != nil {
		fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		return w, func() error { return nil }
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.Log.Path,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}
	return rotator, rotator.Close
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.DB.Path != ":memory:" {
		if err := ensureDir(cfg.DB.Path); err != nil {
			return fmt.Errorf("prepare database path: %w", err)
		}
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	snapshots, err := openSnapshots(ctx, cfg.Snapshot, logger)
	if err != nil {
		return err
	}

	a := app.New(db, snapshots, logger)
	if cfg.Transport.Mode == config.TransportStdio {
		return runStdioMode(ctx, logger, a.MCP)
	}
	return runHTTPMode(ctx, logger, a.Handler(), cfg.Server.Host, cfg.Server.Port)
}

// openSnapshots returns nil when no bucket is configured.
func openSnapshots(ctx context.Context, cfg config.SnapshotConfig, logger *slog.Logger) (board.SnapshotStore, error) {
	if !cfg.Enabled() {
		logger.Info("snapshot export disabled")
		return nil, nil
	}

	client, err := snapshot.NewClient(ctx, snapshot.Config{
		Endpoint:     cfg.Endpoint,
		Region:       cfg.Region,
		Bucket:       cfg.Bucket,
		Prefix:       cfg.Prefix,
		AccessKey:    cfg.AccessKey,
		SecretKey:    cfg.SecretKey,
		UsePathStyle: cfg.UsePathStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot client: %w", err)
	}
	store := snapshot.NewStore(client, cfg.Bucket, cfg.Prefix, logger)
	if err := store.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("snapshot bucket: %w", err)
	}
	logger.Info("snapshot export enabled", "bucket", cfg.Bucket, "endpoint", cfg.Endpoint)
	return store, nil
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or the context is canceled.
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, handler http.Handler, host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	return httpServer.Shutdown(shutdownCtx)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
