package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"droscher.com/OnTap/pkg/model"
)

// SetManualOverride records that an admin changed availability for this
// (beer, taproom) pairing. Repeated overrides refresh the timestamp.
func (r *Repository) SetManualOverride(ctx context.Context, beerID uint, taproomID uint) error {
	override := model.ManualOverride{BeerID: beerID, TaproomID: taproomID}

	result := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "beer_id"}, {Name: "taproom_id"}},
		DoUpdates: clause.Assignments(map[string]any{"updated_at": gorm.Expr("CURRENT_TIMESTAMP")}),
	}).Create(&override)

	return result.Error
}

// HasManualOverride reports whether an advisory override marker exists.
// Sync never consults this; it only feeds the admin UI flag.
func (r *Repository) HasManualOverride(ctx context.Context, beerID uint, taproomID uint) (bool, error) {
	override := model.ManualOverride{}

	result := r.DB.WithContext(ctx).Where("beer_id = ? AND taproom_id = ?", beerID, taproomID).First(&override)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, result.Error
	}

	return true, nil
}

func (r *Repository) ClearManualOverride(ctx context.Context, beerID uint, taproomID uint) error {
	result := r.DB.WithContext(ctx).
		Where("beer_id = ? AND taproom_id = ?", beerID, taproomID).
		Delete(&model.ManualOverride{})

	return result.Error
}
