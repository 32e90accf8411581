package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MikeSquared-Agency/chatlens/internal/analytics"
	"github.com/MikeSquared-Agency/chatlens/internal/api"
	"github.com/MikeSquared-Agency/chatlens/internal/config"
	"github.com/MikeSquared-Agency/chatlens/internal/events"
	"github.com/MikeSquared-Agency/chatlens/internal/lexicon"
	"github.com/MikeSquared-Agency/chatlens/internal/session"
	"github.com/MikeSquared-Agency/chatlens/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		return 1
	}

	slog.Info("chatlens starting", "port", cfg.Port)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		slog.Error("invalid timezone", "timezone", cfg.Timezone, "error", err)
		return 1
	}

	// Database (optional, only used for lexicon overrides)
	var terms lexiconLoader
	if cfg.DatabaseURL != "" {
		db, err := store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			return 1
		}
		defer db.Close()
		if err := db.EnsureLexiconSchema(ctx); err != nil {
			slog.Error("failed to prepare lexicon schema", "error", err)
			return 1
		}
		terms = db
		slog.Info("database connected")
	}

	lex, err := buildLexicon(ctx, cfg.LexiconPath, terms)
	if err != nil {
		slog.Error("failed to load lexicon", "error", err)
		return 1
	}
	stopwords, prof, cats := lex.Sizes()
	slog.Info("lexicon ready", "stopwords", stopwords, "profanity", prof, "sensitive_categories", cats)

	engine := analytics.New(lex, analytics.Options{
		TopUsers:   cfg.TopUsers,
		TopWords:   cfg.TopWords,
		CloudWords: cfg.CloudWords,
	})

	// Sessions
	registry := session.NewRegistry(cfg.SessionTTL, cfg.MaxSessions)
	sweeper, err := session.StartSweeper(registry, cfg.SweepInterval, slog.Default())
	if err != nil {
		slog.Error("failed to start session sweeper", "error", err)
		return 1
	}
	defer func() {
		if err := sweeper.Stop(); err != nil {
			slog.Warn("failed to stop session sweeper", "error", err)
		}
	}()

	// NATS (optional, the dashboard works without events)
	var publisher events.Publisher
	if cfg.NatsURL != "" {
		client, err := events.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			return 1
		}
		defer client.Close()
		publisher = client
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured, running without events")
	}

	srv := api.NewServer(api.Options{
		Port:           cfg.Port,
		APIToken:       cfg.APIToken,
		MaxUploadBytes: cfg.MaxUploadBytes,
		DayFirst:       cfg.DayFirst,
		Location:       loc,
	}, registry, engine, publisher, slog.Default())
	httpSrv := srv.HTTPServer()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("chatlens ready", "port", cfg.Port, "auth", cfg.APIToken != "")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("chatlens stopped with error", "error", err)
		return 1
	}
	slog.Info("chatlens stopped")
	return 0
}

// lexiconLoader is the part of the store used to override the lexicon.
type lexiconLoader interface {
	LoadLexicon(ctx context.Context) (lexicon.Source, error)
}

// buildLexicon layers the embedded defaults, an optional JSON file and
// optional database terms, in that order.
func buildLexicon(ctx context.Context, path string, db lexiconLoader) (*lexicon.Lexicon, error) {
	src, err := lexicon.DefaultSource()
	if err != nil {
		return nil, err
	}

	var overrides []lexicon.Source
	if path != "" {
		file, err := lexicon.LoadFile(path)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, file)
		slog.Info("lexicon file loaded", "path", path)
	}
	if db != nil {
		terms, err := db.LoadLexicon(ctx)
		if err != nil {
			return nil, fmt.Errorf("load lexicon from database: %w", err)
		}
		overrides = append(overrides, terms)
	}

	return lexicon.Compile(lexicon.Merge(src, overrides...))
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
