package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"droscher.com/OnTap/pkg/model"
)

var ErrBeerNotFound = errors.New("beer not found")

// FindBeerByUntappdID looks a beer up by its Untappd correlation key.
func (r *Repository) FindBeerByUntappdID(ctx context.Context, untappdID uint64) (*model.Beer, error) {
	beer := &model.Beer{}

	result := r.DB.WithContext(ctx).Where("untappd_id = ?", untappdID).First(beer)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBeerNotFound
		}

		return nil, result.Error
	}

	return beer, nil
}

func (r *Repository) CreateBeer(ctx context.Context, beer *model.Beer) error {
	if result := r.DB.WithContext(ctx).Create(beer); result.Error != nil {
		return result.Error
	}

	return nil
}

// UpdateBeer persists the beer's current field values. Pointer-typed
// metadata left nil is not written, so absent feed fields stay untouched.
func (r *Repository) UpdateBeer(ctx context.Context, beer *model.Beer) error {
	if result := r.DB.WithContext(ctx).Model(beer).Updates(beerColumns(beer)); result.Error != nil {
		return result.Error
	}

	return nil
}

func (r *Repository) GetBeerByID(ctx context.Context, beerID uint) (*model.Beer, error) {
	beer := &model.Beer{}

	result := r.DB.WithContext(ctx).Preload("Styles").First(beer, beerID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBeerNotFound
		}

		return nil, result.Error
	}

	return beer, nil
}

func (r *Repository) DeleteBeer(ctx context.Context, beerID uint) error {
	result := r.DB.WithContext(ctx).Delete(&model.Beer{}, beerID)

	return result.Error
}

// beerColumns builds the update map so that gorm writes zero-valued
// strings (a cleared description) but skips nil pointers.
func beerColumns(beer *model.Beer) map[string]any {
	columns := map[string]any{
		"name":             beer.Name,
		"description":      beer.Description,
		"beer_slug":        beer.BeerSlug,
		"brewery":          beer.Brewery,
		"brewery_location": beer.BreweryLocation,
		"label_image":      beer.LabelImage,
		"label_image_hd":   beer.LabelImageHD,
		"label_image_path": beer.LabelImagePath,
	}

	if beer.ABV != nil {
		columns["abv"] = *beer.ABV
	}

	if beer.IBU != nil {
		columns["ibu"] = *beer.IBU
	}

	if beer.Calories != nil {
		columns["calories"] = *beer.Calories
	}

	if beer.Rating != nil {
		columns["rating"] = *beer.Rating
	}

	if beer.RatingCount != nil {
		columns["rating_count"] = *beer.RatingCount
	}

	if beer.LastSynced != nil {
		columns["last_synced"] = *beer.LastSynced
	}

	return columns
}
