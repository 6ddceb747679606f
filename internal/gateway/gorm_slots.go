package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Slot is one row of the slots table.
type Slot struct {
	Key       string `gorm:"column:slot_key;primaryKey;size:191"`
	Value     []byte
	UpdatedAt time.Time
}

// TableName pins the table name regardless of naming strategy.
func (Slot) TableName() string {
	return "slots"
}

// GORMSlots is a GORM implementation of Slots, usable with sqlite or postgres.
type GORMSlots struct {
	db *gorm.DB
}

// NewGORMSlots creates a new instance of GORMSlots and migrates the slots table.
func NewGORMSlots(db *gorm.DB) (*GORMSlots, error) {
	if err := db.AutoMigrate(&Slot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate slots table: %w", err)
	}
	return &GORMSlots{db: db}, nil
}

// Get retrieves a slot value by key.
func (s *GORMSlots) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var slot Slot
	if err := s.db.WithContext(ctx).First(&slot, "slot_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get slot %s: %w", key, err)
	}
	return slot.Value, true, nil
}

// Put inserts or replaces a slot value.
func (s *GORMSlots) Put(ctx context.Context, key string, value []byte) error {
	slot := Slot{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error
	if err != nil {
		return fmt.Errorf("failed to put slot %s: %w", key, err)
	}
	return nil
}

// Delete removes a slot by key.
func (s *GORMSlots) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&Slot{}, "slot_key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	return nil
}
