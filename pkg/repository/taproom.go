package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"droscher.com/OnTap/pkg/model"
)

var ErrTaproomNotFound = errors.New("taproom not found")

func (r *Repository) GetTaprooms(ctx context.Context) ([]*model.Taproom, error) {
	var taprooms []*model.Taproom

	if result := r.DB.WithContext(ctx).Order("name asc").Find(&taprooms); result.Error != nil {
		return nil, result.Error
	}

	return taprooms, nil
}

func (r *Repository) GetTaproomByID(ctx context.Context, taproomID uint) (*model.Taproom, error) {
	taproom := &model.Taproom{}

	result := r.DB.WithContext(ctx).First(taproom, taproomID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaproomNotFound
		}

		return nil, result.Error
	}

	return taproom, nil
}

func (r *Repository) SaveTaproom(ctx context.Context, taproom *model.Taproom) error {
	if result := r.DB.WithContext(ctx).Save(taproom); result.Error != nil {
		return result.Error
	}

	return nil
}

// DeleteTaproom removes a taproom and its taplist rows. Containers under
// those rows are cleaned up explicitly since soft deletes skip DB cascades.
func (r *Repository) DeleteTaproom(ctx context.Context, taproomID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entryIDs []uint

		if err := tx.Model(&model.TaplistEntry{}).Where("taproom_id = ?", taproomID).Pluck("id", &entryIDs).Error; err != nil {
			return err
		}

		if len(entryIDs) > 0 {
			if err := tx.Where("taplist_entry_id IN ?", entryIDs).Delete(&model.Container{}).Error; err != nil {
				return err
			}

			if err := tx.Where("taproom_id = ?", taproomID).Delete(&model.TaplistEntry{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&model.Taproom{}, taproomID).Error
	})
}
