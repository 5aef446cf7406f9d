package model

import (
	"time"

	"gorm.io/gorm"
)

// Style is one node of the two-level style taxonomy. Root styles have
// ParentID 0; child styles are unique per parent, so "Imperial" under
// "Stout" and "Imperial" under "IPA" are distinct rows.
type Style struct {
	gorm.Model
	Name     string `gorm:"uniqueIndex:idx_style_unique"`
	ParentID uint   `gorm:"uniqueIndex:idx_style_unique;default:0"`
}

// Beer is a catalog product synced from Untappd. UntappdID is the sole
// correlation key across sync runs; sync never deletes beers.
type Beer struct {
	gorm.Model
	Name            string
	Description     string
	UntappdID       uint64 `gorm:"uniqueIndex"`
	BeerSlug        string
	Brewery         string
	BreweryLocation string
	ABV             *float64
	IBU             *uint
	Calories        *uint
	Rating          *float64
	RatingCount     *uint
	LabelImage      string
	LabelImageHD    string
	LabelImagePath  string
	LastSynced      *time.Time
	Styles          []Style `gorm:"many2many:beer_style_assignments;"`
}
