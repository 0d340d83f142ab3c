// Package store persists statement aggregates to a relational database
// and owns the shared category table. It is the only pipeline component
// that touches shared state across concurrent runs.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dvloznov/ledger-extract/internal/domain"
)

// Store wraps a gorm handle with the pipeline's persistence operations.
type Store struct {
	db *gorm.DB

	// categories caches resolved category rows by canonical name. Rows
	// are never deleted or renamed, so a hit is always current; misses
	// and create conflicts re-read the table, which stays the single
	// source of truth.
	mu         sync.Mutex
	categories map[domain.CategoryName]*domain.Category
}

// New wraps an existing gorm database handle.
func New(db *gorm.DB) *Store {
	return &Store{
		db:         db,
		categories: make(map[domain.CategoryName]*domain.Category),
	}
}

// Open connects to Postgres and wraps the connection in a Store.
func Open(dsn string, maxIdleConns, maxOpenConns int) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("store.Open: connect: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("store.Open: unwrap sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return New(db), nil
}

// AutoMigrate creates or updates the four pipeline tables.
func (s *Store) AutoMigrate(ctx context.Context) error {
	err := s.db.WithContext(ctx).AutoMigrate(
		&domain.Category{},
		&domain.Statement{},
		&domain.StatementMetadata{},
		&domain.Transaction{},
	)
	if err != nil {
		return fmt.Errorf("store.AutoMigrate: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
