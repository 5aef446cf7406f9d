package model

import "gorm.io/gorm"

// Taproom is a physical serving location. UntappdMenuID points at the
// Untappd Business menu this taproom syncs from; taprooms themselves are
// only created and edited by admins, never by sync.
type Taproom struct {
	gorm.Model
	Name          string `gorm:"uniqueIndex"`
	Slug          string `gorm:"uniqueIndex"`
	UntappdMenuID string
}
