package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task statuses. A task only ever leaves active, never returns to it.
const (
	TaskActive    = "active"
	TaskCompleted = "completed"
	TaskDeleted   = "deleted"
)

type Task struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"`
	TenantID    string    `gorm:"not null;index:idx_tasks_owner"`
	UserID      string    `gorm:"not null;index:idx_tasks_owner"`
	Title       string    `gorm:"not null"`
	Status      string    `gorm:"type:varchar(16);not null;default:'active'"`
	CreatedAt   time.Time `gorm:"not null"`
	CompletedAt *time.Time
	DeletedAt   *time.Time // plain timestamp, not gorm soft delete
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	if t.Status == "" {
		t.Status = TaskActive
	}

	return nil
}
