package bootstrap

import (
	"context"
	"fmt"

	"notez-be/internal/config"
	"notez-be/internal/pkg/logger"
	"notez-be/internal/repository/contract"
	"notez-be/internal/repository/implementation"
	"notez-be/internal/repository/memory"
	"notez-be/internal/repository/redisstore"
	"notez-be/pkg/database"
	"notez-be/pkg/events"
	pktNats "notez-be/pkg/nats"
	"notez-be/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongodb"
	DriverMemory   = "memory"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Infrastructure holds the external resources the application talks to.
// Close releases them in reverse order of acquisition.
type Infrastructure struct {
	Notes          contract.NoteRepository
	SessionStorage fiber.Storage
	Media          storage.BlobStore
	// Remote event sinks besides the in-process bus.
	Publishers []events.Publisher

	Logger         logger.ILogger
	ActivityLogger logger.ILogger

	closers []func() error
}

func (i *Infrastructure) onClose(fn func() error) {
	i.closers = append(i.closers, fn)
}

func (i *Infrastructure) Close() {
	for j := len(i.closers) - 1; j >= 0; j-- {
		if err := i.closers[j](); err != nil {
			i.Logger.Warn("Bootstrap", "failed to release resource", map[string]interface{}{
				"error": err,
			})
		}
	}
	i.closers = nil
}

// OpenInfrastructure connects to the stores selected by cfg.
func OpenInfrastructure(ctx context.Context, cfg *config.Config) (*Infrastructure, error) {
	infra := &Infrastructure{
		Logger:         logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production"),
		ActivityLogger: logger.NewIsolatedLogger(cfg.App.ActivityLog),
	}
	infra.onClose(infra.Logger.Sync)
	infra.onClose(infra.ActivityLogger.Sync)

	ok := false
	defer func() {
		if !ok {
			infra.Close()
		}
	}()

	if err := infra.openNoteStore(ctx, cfg); err != nil {
		return nil, err
	}
	if err := infra.openSessionStorage(ctx, cfg); err != nil {
		return nil, err
	}

	media, err := storage.NewLocalStore(cfg.Media.Root)
	if err != nil {
		return nil, err
	}
	infra.Media = media

	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			// events are auxiliary, run without the remote sink
			infra.Logger.Warn("Bootstrap", "failed to connect to NATS publisher", map[string]interface{}{
				"error": err,
			})
		} else {
			infra.Publishers = append(infra.Publishers, natsPub)
			infra.onClose(func() error { natsPub.Close(); return nil })
		}
	}

	ok = true
	return infra, nil
}

func (i *Infrastructure) openNoteStore(ctx context.Context, cfg *config.Config) error {
	switch cfg.Database.Driver {
	case DriverPostgres:
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.App.Environment == "production")
		if err != nil {
			return fmt.Errorf("unable to connect to GORM DB: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		i.onClose(sqlDB.Close)
		i.Notes = implementation.NewNoteRepository(db)

	case DriverMongo:
		db, err := database.NewMongoDatabase(ctx, cfg.Database.Connection, cfg.Database.MongoDatabase)
		if err != nil {
			return err
		}
		i.onClose(func() error { return db.Client().Disconnect(context.Background()) })
		i.Notes = implementation.NewNoteMongoRepository(db)

	case DriverMemory:
		i.Logger.Warn("Bootstrap", "notes are kept in memory and lost on restart", nil)
		i.Notes = memory.NewNoteRepository()

	default:
		return fmt.Errorf("unknown DB_DRIVER %q", cfg.Database.Driver)
	}

	i.Logger.Info("Bootstrap", "note store ready", map[string]interface{}{
		"driver": cfg.Database.Driver,
	})
	return nil
}

func (i *Infrastructure) openSessionStorage(ctx context.Context, cfg *config.Config) error {
	switch cfg.Session.Store {
	case SessionStoreMemory:
		i.SessionStorage = memory.NewSessionStorage(cfg.Session.Expiration)

	case SessionStoreRedis:
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			i.Logger.Warn("Bootstrap", "failed to parse Redis URL, using direct Addr", map[string]interface{}{
				"error": err,
			})
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		i.SessionStorage = redisstore.NewSessionStorage(rdb)

	default:
		return fmt.Errorf("unknown SESSION_STORE %q", cfg.Session.Store)
	}

	i.onClose(i.SessionStorage.Close)
	return nil
}
