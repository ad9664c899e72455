package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRecord is one stored collection.
type KVRecord struct {
	Key       string         `gorm:"primaryKey;size:191"`
	Payload   datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (KVRecord) TableName() string { return "kv_records" }

// GormBackend keeps one kv_records row per key in a SQL database.
type GormBackend struct{ db *gorm.DB }

func NewGormBackend(db *gorm.DB, autoMigrate bool) (*GormBackend, error) {
	if autoMigrate {
		if err := db.AutoMigrate(&KVRecord{}); err != nil {
			return nil, err
		}
	}
	return &GormBackend{db: db}, nil
}

func (g *GormBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var rec KVRecord
	err := g.db.WithContext(ctx).Where(&KVRecord{Key: key}).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(rec.Payload), nil
}

// Put upserts the row for key.
func (g *GormBackend) Put(ctx context.Context, key string, payload []byte) error {
	rec := KVRecord{Key: key, Payload: datatypes.JSON(payload), UpdatedAt: time.Now()}
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&rec).Error
}
