package models

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel uses gorm's soft delete; uniqueness rules across the app are
// enforced with queries against non-deleted rows so that deleting a record
// frees its name for reuse.
type BaseModel struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
