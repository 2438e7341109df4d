package models

import "time"

// User is a directory entry synced from the workspace member list.
type User struct {
	ID        string `gorm:"primaryKey;type:varchar(32)"`
	TenantID  string `gorm:"primaryKey;type:varchar(32)"`
	Name      string `gorm:"not null;index"`
	Email     string
	UpdatedAt time.Time
}
