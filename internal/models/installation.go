package models

import (
	"time"

	"gorm.io/datatypes"
)

// Installation holds the bot credentials of one workspace in the multi-tenant
// configuration. A reinstall replaces the row.
type Installation struct {
	TenantID    string `gorm:"primaryKey;type:varchar(32)"`
	TeamName    string
	BotToken    string `gorm:"not null"`
	BotUserID   string
	AppID       string
	Scope       string
	Raw         datatypes.JSON
	InstalledAt time.Time `gorm:"not null"`
}
