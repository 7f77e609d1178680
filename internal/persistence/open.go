// internal/persistence/open.go
package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/marketplace/internal/config"
	"github.com/javajoker/marketplace/internal/database"
)

// Open builds the backend selected by STORAGE_DRIVER.
func Open(cfg *config.Config) (Backend, error) {
	log := logrus.WithField("driver", cfg.Storage.Driver)

	switch cfg.Storage.Driver {
	case config.StorageDriverFile:
		log.WithField("dir", cfg.Storage.Dir).Info("Using file storage")
		return NewFileBackend(cfg.Storage.Dir)

	case config.StorageDriverMemory:
		log.Warn("Using in-memory storage; state is lost on exit")
		return NewMemoryBackend(), nil

	case config.StorageDriverPostgres:
		db, err := database.Initialize(cfg.Database)
		if err != nil {
			return nil, err
		}
		backend := NewPostgresBackend(db)
		if err := backend.Migrate(); err != nil {
			database.Close(db)
			return nil, err
		}
		return backend, nil

	case config.StorageDriverRedis:
		backend := NewRedisBackend(NewRedisClient(cfg.Redis), cfg.Storage.KeyPrefix)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := backend.Ping(ctx); err != nil {
			backend.Close()
			return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.Redis.Addr(), err)
		}
		log.WithField("addr", cfg.Redis.Addr()).Info("Using redis storage")
		return backend, nil

	case config.StorageDriverS3:
		client, err := NewS3Client(cfg.AWS)
		if err != nil {
			return nil, err
		}
		log.WithField("bucket", cfg.AWS.S3Bucket).Info("Using S3 storage")
		return NewS3Backend(client, cfg.AWS.S3Bucket, cfg.Storage.KeyPrefix), nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
