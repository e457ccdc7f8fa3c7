package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"example.com/madglad/internal/config"
	"example.com/madglad/internal/game"
	"example.com/madglad/internal/httpapi"
	"example.com/madglad/internal/migrate"
	"example.com/madglad/internal/store"
)

type App struct {
	cfg config.Config
	log *slog.Logger

	db  *pgxpool.Pool
	rdb *redis.Client

	gameSrv *game.Server
	srv     *http.Server
}

func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}

	// --- Postgres ---
	dbpool, err := pgxpool.New(ctx, cfg.Postgres.URL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}

	// --- Redis ---
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})

	// Connectivity checks with backoff; containers often win the race
	// against their databases on startup.
	newBackoff := func() retry.Backoff {
		return retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))
	}
	if err := retry.Do(ctx, newBackoff(), func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := dbpool.Ping(pingCtx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	}); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	if err := retry.Do(ctx, newBackoff(), func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	}); err != nil {
		dbpool.Close()
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping (%s db=%d): %w", cfg.Redis.Addr, cfg.Redis.DB, err)
	}

	if cfg.Postgres.RunMigrations {
		if err := migrate.Up(cfg.Postgres.URL, cfg.Postgres.MigrationsDir, log); err != nil {
			dbpool.Close()
			_ = rdb.Close()
			return nil, err
		}
	}

	// --- Card catalog ---
	cards, err := store.NewDeckStore(dbpool).LoadCards(ctx)
	if err != nil {
		dbpool.Close()
		_ = rdb.Close()
		return nil, err
	}
	if len(cards) == 0 {
		log.Warn("cards table is empty, using built-in deck")
		cards = game.DefaultDeck
	}
	deck, err := game.NewDeck(cards)
	if err != nil {
		dbpool.Close()
		_ = rdb.Close()
		return nil, err
	}
	log.Info("card catalog loaded", "cards", deck.Size())

	// --- Game ---
	persist := game.NewRedisRoomStore(rdb, cfg.Redis.RoomTTL)
	rooms := game.NewRegistry(persist)
	gameSrv := game.NewServer(log, rooms, deck)

	roomH := &httpapi.RoomHandler{Rooms: rooms}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/api/rooms/{code}", roomH.Info)
	gameSrv.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	return &App{cfg: cfg, log: log, db: dbpool, rdb: rdb, gameSrv: gameSrv, srv: srv}, nil
}

func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	a.log.Info("http server starting", "addr", a.cfg.HTTP.Addr)

	g.Go(func() error {
		err := a.srv.ListenAndServe()
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
		defer cancel()
		a.log.Info("http server shutting down")
		a.gameSrv.Shutdown()
		_ = a.srv.Shutdown(shutdownCtx)
		return nil
	})

	err := g.Wait()
	_ = a.Close(context.Background())
	return err
}

func (a *App) Close(ctx context.Context) error {
	// best-effort
	if a.db != nil {
		a.db.Close()
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	return nil
}
