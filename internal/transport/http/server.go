package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"

	"socialmedia/internal/cache"
	"socialmedia/internal/config"
	"socialmedia/internal/database"
	"socialmedia/internal/handler"
	"socialmedia/internal/logging"
	"socialmedia/internal/queue"
	redisclient "socialmedia/internal/redis"
	"socialmedia/internal/repository"
	"socialmedia/internal/service"
	"socialmedia/internal/snapshot"
	"socialmedia/internal/storage"
	"socialmedia/internal/worker"
)

const (
	streamMaxLen    = 10000
	shutdownTimeout = 10 * time.Second
)

func Run() error {
	// 1. Configuration and logging
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logCloser := logging.Setup(cfg.LogFile)
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Snapshot store
	store, storeCloser, err := openSnapshotStore(ctx, cfg)
	if err != nil {
		return err
	}
	var closers []io.Closer
	if storeCloser != nil {
		closers = append(closers, storeCloser)
	}
	// fail releases what was opened so far before an early return
	fail := func(err error) error {
		if cerr := closeResources(closers...); cerr != nil {
			return multierror.Append(err, cerr)
		}
		return err
	}

	// 3. Redis (optional): event stream + leaderboard
	var (
		publisher   queue.Publisher
		leaderboard cache.Leaderboard
	)
	rdb, err := redisclient.NewClient(cfg.RedisURL)
	switch {
	case errors.Is(err, redisclient.ErrNotConfigured):
		log.Println("[Server] REDIS_URL not set, running without events and leaderboard cache")
	case err != nil:
		return fail(err)
	default:
		closers = append(closers, rdb)
		if err := rdb.Ping(ctx); err != nil {
			return fail(err)
		}
		publisher = queue.NewPublisher(rdb.Client, streamMaxLen)
		leaderboard = cache.NewLeaderboard(rdb.Client)
	}

	// 4. Platform service, restored from the last snapshot when there is one
	platformService := service.NewPlatformService(nil, publisher, store)
	if leaderboard != nil {
		platformService.SetLeaderboard(leaderboard)
	}
	if err := platformService.Load(ctx); err != nil {
		if !errors.Is(err, snapshot.ErrNotFound) {
			return fail(fmt.Errorf("failed to restore platform: %w", err))
		}
		log.Println("[Server] No snapshot found, starting with a fresh platform")
	}

	// 5. Leaderboard workers
	var manager *worker.Manager
	if rdb != nil {
		counts, _ := platformService.EndorsementCounts(ctx)
		if err := leaderboard.Rebuild(ctx, counts); err != nil {
			log.Printf("[Server] Initial leaderboard rebuild failed: %v", err)
		}

		manager = worker.NewManager(
			queue.NewConsumer(rdb.Client),
			worker.NewHandler(leaderboard, platformService),
			worker.ManagerConfig{WorkerCount: cfg.LeaderboardWorkers},
		)
		if err := manager.Start(ctx); err != nil {
			return fail(fmt.Errorf("failed to start workers: %w", err))
		}
	}

	// 6. HTTP
	router := NewRouter(RouterConfig{
		AccountHandler: handler.NewAccountHandler(platformService),
		PostHandler:    handler.NewPostHandler(platformService),
		StatsHandler:   handler.NewStatsHandler(platformService),
		AdminHandler:   handler.NewAdminHandler(platformService),
	})
	srv := &stdhttp.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Printf("[Server] ListenAndServe failed: %v", err)
		}
	case <-ctx.Done():
		log.Println("[Server] Shutdown signal received")
	}

	return shutdown(srv, manager, platformService, closers)
}

// shutdown stops accepting requests, drains the workers, saves a final
// snapshot and closes every resource, collecting all failures.
func shutdown(srv *stdhttp.Server, manager *worker.Manager, svc *service.PlatformService, closers []io.Closer) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var result *multierror.Error

	if err := srv.Shutdown(ctx); err != nil {
		result = multierror.Append(result, fmt.Errorf("http shutdown: %w", err))
	}
	if manager != nil {
		manager.Stop()
	}
	if err := svc.Save(ctx); err != nil && !errors.Is(err, service.ErrStoreNotConfigured) {
		result = multierror.Append(result, fmt.Errorf("final snapshot: %w", err))
	}
	if err := closeResources(closers...); err != nil {
		result = multierror.Append(result, err)
	}

	if err := result.ErrorOrNil(); err != nil {
		return err
	}
	log.Println("[Server] Shutdown complete")
	return nil
}

// closeResources closes every closer, continuing past failures.
func closeResources(closers ...io.Closer) error {
	var result *multierror.Error
	for _, c := range closers {
		if err := c.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("close %T: %w", c, err))
		}
	}
	return result.ErrorOrNil()
}

// openSnapshotStore returns the configured store and, for backends holding a
// connection, its closer.
func openSnapshotStore(ctx context.Context, cfg *config.Config) (snapshot.Store, io.Closer, error) {
	switch cfg.SnapshotBackend {
	case config.BackendFile:
		log.Printf("[Server] Snapshot store: file path=%s", cfg.SnapshotFile)
		return snapshot.NewFileStore(cfg.SnapshotFile), nil, nil

	case config.BackendPostgres:
		if !cfg.HasDatabase() {
			return nil, nil, errors.New("SNAPSHOT_BACKEND=postgres requires DATABASE_URL or DB_HOST")
		}
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, nil, err
		}
		if cfg.MigrationsAuto {
			if err := database.MigrationsUp(db); err != nil {
				db.Close()
				return nil, nil, err
			}
		}
		log.Println("[Server] Snapshot store: postgres")
		return repository.NewSnapshotRepository(db), db, nil

	case config.BackendR2:
		store, err := storage.NewR2Store(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("[Server] Snapshot store: r2 bucket=%s", cfg.R2BucketName)
		return store, nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown SNAPSHOT_BACKEND %q", cfg.SnapshotBackend)
	}
}
