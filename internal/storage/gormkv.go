package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type kvRecord struct {
	Key   string `gorm:"primaryKey;size:255"`
	Value []byte `gorm:"not null"`
}

func (kvRecord) TableName() string { return "kv_records" }

// GormKV keeps each key as one row in a kv_records table. Sqlite gives
// the single-file local store; postgres is for running against a shared
// database instead.
type GormKV struct {
	DB *gorm.DB
}

func OpenSqlite(path string) (*GormKV, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	if err := db.AutoMigrate(&kvRecord{}); err != nil {
		return nil, fmt.Errorf("migrate kv table: %w", err)
	}
	return &GormKV{DB: db}, nil
}

func OpenPostgres(ctx context.Context, dsn string) (*GormKV, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt: true,
		NowFunc:     func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql.DB handle: %w", err)
	}
	configurePool(sqlDB)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping store: %w", err)
	}

	if err := db.AutoMigrate(&kvRecord{}); err != nil {
		return nil, fmt.Errorf("migrate kv table: %w", err)
	}
	return &GormKV{DB: db}, nil
}

func configurePool(sqlDB *sql.DB) {
	const (
		maxOpenConns    = 20
		maxIdleConns    = 10
		connMaxLifetime = 30 * time.Minute
		connMaxIdleTime = 5 * time.Minute
	)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

func (g *GormKV) Get(ctx context.Context, key string) ([]byte, error) {
	var rec kvRecord
	if err := g.DB.WithContext(ctx).First(&rec, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec.Value, nil
}

func (g *GormKV) Put(ctx context.Context, key string, value []byte) error {
	rec := kvRecord{Key: key, Value: value}
	return g.DB.WithContext(ctx).Save(&rec).Error
}

func (g *GormKV) Del(ctx context.Context, key string) error {
	return g.DB.WithContext(ctx).Delete(&kvRecord{}, "key = ?", key).Error
}

func (g *GormKV) Close() error {
	sqlDB, err := g.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
