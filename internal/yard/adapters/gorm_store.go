package adapters

import (
	"context"
	"errors"
	"fmt"

	"yardflow/internal/yard/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store wraps the gorm connection shared by all repositories. Mutating
// services run their unit of work through GormTxManager, which stashes
// the transaction handle in the context; every repository call made
// with that context joins the transaction.
type Store struct {
	db *gorm.DB
}

// NewStore opens a postgres-backed store and migrates the yard schema.
func NewStore(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.AutoMigrate(
		&domain.Site{},
		&domain.Gate{},
		&domain.Dock{},
		&domain.Door{},
		&domain.YardLocation{},
		&domain.Carrier{},
		&domain.User{},
		&domain.Trailer{},
		&domain.Appointment{},
		&domain.MoveRequest{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStoreWithDB wraps an already-open gorm connection.
func NewStoreWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

type txKey struct{}

// conn returns the transaction bound to ctx, or the base connection.
func (s *Store) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return s.db.WithContext(ctx)
}

// GormTxManager implements ports.TxManager over the store.
type GormTxManager struct {
	store *Store
}

// NewGormTxManager creates a transaction manager over the store.
func NewGormTxManager(store *Store) *GormTxManager {
	return &GormTxManager{store: store}
}

// Do runs fn inside one database transaction. Any error from fn rolls
// every mutation back.
func (m *GormTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// first loads one record into dest, translating gorm's not-found error
// into the (nil, nil) convention repositories follow.
func first[T any](db *gorm.DB, conds ...interface{}) (*T, error) {
	var record T
	if err := db.First(&record, conds...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}
