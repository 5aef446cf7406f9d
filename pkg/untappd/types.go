package untappd

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

// OnDeckSectionType marks the reserved "coming soon" section type that is
// never synced to a taplist.
const OnDeckSectionType = "OnDeckSection"

// ItemTypeBeer is the only item type materialized by sync; food and merch
// items share the same feed and are skipped.
const ItemTypeBeer = "beer"

type Location struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type MenuSummary struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type Menu struct {
	ID       uint64    `json:"id"`
	Name     string    `json:"name"`
	Sections []Section `json:"sections"`
}

type Section struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Public bool   `json:"public"`
	Type   string `json:"type"`
	Items  []Item `json:"items"`
}

// Item is one menu entry. Optional metadata fields are pointers so that a
// field absent from the feed is distinguishable from one present but empty;
// absent fields are never written to the local beer record.
type Item struct {
	ID              uint64      `json:"id"`
	Type            string      `json:"type"`
	UntappdID       uint64      `json:"untappd_id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	BeerSlug        *string     `json:"untappd_beer_slug"`
	Style           *string     `json:"style"`
	Brewery         *string     `json:"brewery"`
	BreweryLocation *string     `json:"brewery_location"`
	ABV             *float64    `json:"abv"`
	IBU             *uint       `json:"ibu"`
	Calories        *uint       `json:"calories"`
	Rating          *float64    `json:"rating"`
	RatingCount     *uint       `json:"rating_count"`
	LabelImage      *string     `json:"label_image"`
	LabelImageHD    *string     `json:"label_image_hd"`
	TapNumber       *int        `json:"tap_number"`
	Hidden          bool        `json:"hidden"`
	Containers      []Container `json:"containers"`
}

type Container struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	Price         *Price `json:"price"`
	ContainerSize struct {
		Name string `json:"name"`
	} `json:"container_size"`
}

// Price tolerates Untappd returning prices as either JSON numbers or
// quoted strings ("7.00"). An empty string means no price is set, which
// must stay distinct from a genuine zero price.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = Price(math.NaN())

		return nil
	}

	value, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("parsing price %q: %w", data, err)
	}

	*p = Price(value)

	return nil
}

// Float returns the price as a plain pointer, nil when the price is
// absent from or empty in the feed.
func (p *Price) Float() *float64 {
	if p == nil || math.IsNaN(float64(*p)) {
		return nil
	}

	value := float64(*p)

	return &value
}

type Credentials struct {
	Email string
	Token string
}
