package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Update is a progress note attached to a task. Rows are never edited.
type Update struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	TaskID    string    `gorm:"type:varchar(36);not null;index"`
	TenantID  string    `gorm:"not null;index:idx_updates_owner"`
	UserID    string    `gorm:"not null;index:idx_updates_owner"`
	Content   string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Relationships
	Task Task `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

func (u *Update) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	return nil
}
