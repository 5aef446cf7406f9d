package model

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// TaplistEntry is the join row between a beer and a taproom. Exactly one
// row exists per (beer, taproom) pair.
type TaplistEntry struct {
	gorm.Model
	BeerID            uint `gorm:"uniqueIndex:idx_taplist_unique"`
	TaproomID         uint `gorm:"uniqueIndex:idx_taplist_unique"`
	TapNumber         *int
	IsAvailable       bool `gorm:"default:true"`
	UntappdMenuItemID *uint64

	Beer       Beer        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Taproom    Taproom     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Containers []Container `gorm:"foreignKey:TaplistEntryID"`
}

// Container is one serving size/price line under a taplist entry.
type Container struct {
	gorm.Model
	TaplistEntryID     uint
	ContainerType      string
	Size               string
	Price              *float64
	IsAvailable        bool `gorm:"default:true"`
	SortOrder          int
	UntappdContainerID *uint64
}

// FormatPrice renders a price as a currency-prefixed two-decimal string,
// or an empty string for a missing price.
func FormatPrice(price *float64) string {
	if price == nil {
		return ""
	}

	return fmt.Sprintf("$%.2f", *price)
}

// DisplayLabel builds the human label for a container, e.g. "16oz - $7.00".
// The container type is included only when it adds information beyond the
// size and is not the generic "Draft".
func (c Container) DisplayLabel() string {
	parts := make([]string, 0, 2)

	if c.Size != "" {
		parts = append(parts, c.Size)
	}

	if c.ContainerType != "" && c.ContainerType != "Draft" && c.ContainerType != c.Size {
		parts = append(parts, c.ContainerType)
	}

	label := strings.Join(parts, " ")

	if c.Price != nil {
		label += " - " + FormatPrice(c.Price)
	}

	return label
}
