// internal/persistence/postgres_test.go
package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type PostgresBackendTestSuite struct {
	suite.Suite
	mock    sqlmock.Sqlmock
	backend *PostgresBackend
}

func (suite *PostgresBackendTestSuite) SetupTest() {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(suite.T(), err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(suite.T(), err)

	suite.mock = mock
	suite.backend = NewPostgresBackend(db)
	suite.backend.now = func() time.Time { return time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC) }
}

func (suite *PostgresBackendTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *PostgresBackendTestSuite) TestLoad() {
	rows := sqlmock.NewRows([]string{"name", "data", "updated_at"}).
		AddRow("product-storage", []byte(`{"products":[]}`), time.Now())
	suite.mock.ExpectQuery(`SELECT \* FROM "state_blobs" WHERE name = \$1`).
		WillReturnRows(rows)

	data, err := suite.backend.Load(context.Background(), "product-storage")
	require.NoError(suite.T(), err)
	assert.JSONEq(suite.T(), `{"products":[]}`, string(data))
}

func (suite *PostgresBackendTestSuite) TestLoadMissing() {
	suite.mock.ExpectQuery(`SELECT \* FROM "state_blobs"`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "data", "updated_at"}))

	_, err := suite.backend.Load(context.Background(), "auth-storage")
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *PostgresBackendTestSuite) TestLoadError() {
	suite.mock.ExpectQuery(`SELECT \* FROM "state_blobs"`).
		WillReturnError(errors.New("connection reset"))

	_, err := suite.backend.Load(context.Background(), "auth-storage")
	assert.Error(suite.T(), err)
	assert.NotErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *PostgresBackendTestSuite) TestSaveUpserts() {
	suite.mock.ExpectExec(`INSERT INTO "state_blobs" .* ON CONFLICT \("name"\) DO UPDATE SET`).
		WithArgs("cart-storage", []byte(`{"items":[]}`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := suite.backend.Save(context.Background(), "cart-storage", []byte(`{"items":[]}`))
	assert.NoError(suite.T(), err)
}

func (suite *PostgresBackendTestSuite) TestSaveError() {
	suite.mock.ExpectExec(`INSERT INTO "state_blobs"`).
		WillReturnError(errors.New("disk full"))

	err := suite.backend.Save(context.Background(), "cart-storage", []byte(`{}`))
	assert.ErrorContains(suite.T(), err, "cart-storage")
}

func TestPostgresBackendSuite(t *testing.T) {
	suite.Run(t, new(PostgresBackendTestSuite))
}
