package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ManualOverride records that an admin manually changed availability for a
// (beer, taproom) pairing. It is advisory only: sync reads and writes
// taplist rows without consulting it, and the admin UI shows it as a flag.
type ManualOverride struct {
	gorm.Model
	BeerID    uint `gorm:"uniqueIndex:idx_override_unique"`
	TaproomID uint `gorm:"uniqueIndex:idx_override_unique"`
}

// SyncLog is one persisted log entry from a sync run or an admin action.
type SyncLog struct {
	gorm.Model
	Level   string `gorm:"index"`
	Message string
	Context datatypes.JSON
}
