package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking/internal/db"
)

type entry struct {
	Key       string `gorm:"primaryKey;size:100"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

func (entry) TableName() string {
	return "client_storage"
}

// Gorm keeps entries in a SQLite file or a PostgreSQL table.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(dsn string) (*Gorm, error) {
	conn, err := db.Open(dsn, &entry{})
	if err != nil {
		return nil, err
	}
	return &Gorm{db: conn}, nil
}

// NewGormFromDB wraps an existing connection and migrates the storage table.
func NewGormFromDB(conn *gorm.DB) (*Gorm, error) {
	if err := conn.AutoMigrate(&entry{}); err != nil {
		return nil, err
	}
	return &Gorm{db: conn}, nil
}

func (g *Gorm) Get(ctx context.Context, key string) (string, bool, error) {
	var e entry
	err := g.db.WithContext(ctx).Where("key = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

func (g *Gorm) Set(ctx context.Context, key, value string) error {
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry{Key: key, Value: value}).Error
}

func (g *Gorm) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).Where("key IN ?", keys).Delete(&entry{}).Error
}
