package models

import "time"

type Favorite struct {
	TenantID   string `gorm:"primaryKey;type:varchar(32)"`
	ManagerID  string `gorm:"primaryKey;type:varchar(32)"`
	FavoriteID string `gorm:"primaryKey;type:varchar(32)"`
	CreatedAt  time.Time
}
