// internal/persistence/postgres.go
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/marketplace/internal/database"
)

// StateBlob is one named store snapshot.
type StateBlob struct {
	Name      string    `gorm:"primaryKey;size:100"`
	Data      []byte    `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (StateBlob) TableName() string {
	return "state_blobs"
}

// PostgresBackend upserts blobs into the state_blobs table.
type PostgresBackend struct {
	db  *gorm.DB
	now func() time.Time
}

var _ Backend = (*PostgresBackend)(nil)

func NewPostgresBackend(db *gorm.DB) *PostgresBackend {
	return &PostgresBackend{db: db, now: time.Now}
}

func (b *PostgresBackend) Migrate() error {
	return database.RunMigrations(b.db, &StateBlob{})
}

func (b *PostgresBackend) Load(ctx context.Context, name string) ([]byte, error) {
	var blob StateBlob
	err := b.db.WithContext(ctx).Where("name = ?", name).First(&blob).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return blob.Data, nil
}

func (b *PostgresBackend) Save(ctx context.Context, name string, data []byte) error {
	blob := StateBlob{Name: name, Data: data, UpdatedAt: b.now()}
	err := b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&blob).Error
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	return nil
}

func (b *PostgresBackend) Close() error {
	return database.Close(b.db)
}
