package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"droscher.com/OnTap/pkg/model"
)

var (
	ErrTaplistItemNotFound = errors.New("taplist item not found")
	ErrUnknownBulkAction   = errors.New("unknown bulk action")
)

// TaplistItemFields carries the sync-owned columns of a taplist row.
// Content fields live on the beer, not here.
type TaplistItemFields struct {
	TapNumber         *int
	IsAvailable       bool
	UntappdMenuItemID *uint64
}

// SaveTaplistItem upserts the single row for a (beer, taproom) pair and
// returns its id. Existing rows only have tap number, availability and the
// menu item correlation id rewritten.
func (r *Repository) SaveTaplistItem(ctx context.Context, beerID uint, taproomID uint, fields TaplistItemFields) (uint, error) {
	existing, err := r.GetTaplistItem(ctx, beerID, taproomID)
	if err != nil && !errors.Is(err, ErrTaplistItemNotFound) {
		return 0, err
	}

	if existing != nil {
		result := r.DB.WithContext(ctx).Model(existing).Updates(map[string]any{
			"tap_number":           fields.TapNumber,
			"is_available":         fields.IsAvailable,
			"untappd_menu_item_id": fields.UntappdMenuItemID,
		})
		if result.Error != nil {
			return 0, result.Error
		}

		return existing.ID, nil
	}

	entry := model.TaplistEntry{
		BeerID:            beerID,
		TaproomID:         taproomID,
		TapNumber:         fields.TapNumber,
		IsAvailable:       fields.IsAvailable,
		UntappdMenuItemID: fields.UntappdMenuItemID,
	}

	if result := r.DB.WithContext(ctx).Create(&entry); result.Error != nil {
		return 0, result.Error
	}

	return entry.ID, nil
}

func (r *Repository) GetTaplistItem(ctx context.Context, beerID uint, taproomID uint) (*model.TaplistEntry, error) {
	entry := &model.TaplistEntry{}

	result := r.DB.WithContext(ctx).Where("beer_id = ? AND taproom_id = ?", beerID, taproomID).First(entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaplistItemNotFound
		}

		return nil, result.Error
	}

	return entry, nil
}

func (r *Repository) GetTaplistItemByID(ctx context.Context, entryID uint) (*model.TaplistEntry, error) {
	entry := &model.TaplistEntry{}

	result := r.DB.WithContext(ctx).First(entry, entryID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaplistItemNotFound
		}

		return nil, result.Error
	}

	return entry, nil
}

// GetTaplist returns a taproom's rows enriched with the beer and its
// containers, tap order first, newest additions first among unordered rows.
func (r *Repository) GetTaplist(ctx context.Context, taproomID uint, availableOnly bool) ([]*model.TaplistEntry, error) {
	var entries []*model.TaplistEntry

	query := r.DB.WithContext(ctx).
		Joins("Beer").
		Preload("Beer.Styles").
		Preload("Containers", func(db *gorm.DB) *gorm.DB {
			if availableOnly {
				db = db.Where("is_available = ?", true)
			}

			return db.Order("sort_order ASC, price ASC")
		}).
		Where("taplist_entries.taproom_id = ?", taproomID).
		Order("taplist_entries.tap_number ASC, taplist_entries.created_at DESC")

	if availableOnly {
		query = query.Where("taplist_entries.is_available = ?", true)
	}

	if result := query.Find(&entries); result.Error != nil {
		r.Logger.Error("error getting taplist", zap.Uint("taproom_id", taproomID), zap.Error(result.Error))

		return nil, result.Error
	}

	return entries, nil
}

func (r *Repository) MarkUnavailable(ctx context.Context, beerID uint, taproomID uint) error {
	result := r.DB.WithContext(ctx).Model(&model.TaplistEntry{}).
		Where("beer_id = ? AND taproom_id = ?", beerID, taproomID).
		Update("is_available", false)

	return result.Error
}

// SetAvailability flips a single row by its id; the admin surface pairs
// this with a manual override marker.
func (r *Repository) SetAvailability(ctx context.Context, entryID uint, available bool) error {
	result := r.DB.WithContext(ctx).Model(&model.TaplistEntry{}).
		Where("id = ?", entryID).
		Update("is_available", available)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrTaplistItemNotFound
	}

	return nil
}

// DeleteTaplistItem removes a row and its containers. The container delete
// is explicit: soft deletes mean the storage engine never cascades for us.
func (r *Repository) DeleteTaplistItem(ctx context.Context, entryID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("taplist_entry_id = ?", entryID).Delete(&model.Container{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.TaplistEntry{}, entryID).Error
	})
}

func (r *Repository) CountBeers(ctx context.Context, taproomID uint) (int64, error) {
	var count int64

	result := r.DB.WithContext(ctx).Model(&model.TaplistEntry{}).
		Where("taproom_id = ? AND is_available = ?", taproomID, true).
		Count(&count)

	return count, result.Error
}

func (r *Repository) IsOnTap(ctx context.Context, beerID uint, taproomID uint) (bool, error) {
	entry, err := r.GetTaplistItem(ctx, beerID, taproomID)
	if err != nil {
		if errors.Is(err, ErrTaplistItemNotFound) {
			return false, nil
		}

		return false, err
	}

	return entry.IsAvailable, nil
}

// GetBeerLocations lists the taprooms where a beer is currently available.
func (r *Repository) GetBeerLocations(ctx context.Context, beerID uint) ([]uint, error) {
	var taproomIDs []uint

	result := r.DB.WithContext(ctx).Model(&model.TaplistEntry{}).
		Where("beer_id = ? AND is_available = ?", beerID, true).
		Pluck("taproom_id", &taproomIDs)

	return taproomIDs, result.Error
}

// SaveTapOrder rewrites tap positions 1..N following the given row order.
func (r *Repository) SaveTapOrder(ctx context.Context, taproomID uint, orderedIDs []uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for position, entryID := range orderedIDs {
			result := tx.Model(&model.TaplistEntry{}).
				Where("id = ? AND taproom_id = ?", entryID, taproomID).
				Update("tap_number", position+1)
			if result.Error != nil {
				return result.Error
			}
		}

		return nil
	})
}

// BulkTaplistAction applies enable, disable or delete to a set of rows.
// Per-row failures are aggregated so one bad id does not stop the rest.
func (r *Repository) BulkTaplistAction(ctx context.Context, action string, entryIDs []uint) error {
	var errs error

	for _, entryID := range entryIDs {
		var err error

		switch action {
		case "enable":
			err = r.SetAvailability(ctx, entryID, true)
		case "disable":
			err = r.SetAvailability(ctx, entryID, false)
		case "delete":
			err = r.DeleteTaplistItem(ctx, entryID)
		default:
			return fmt.Errorf("%w: %s", ErrUnknownBulkAction, action)
		}

		if err != nil {
			multierr.AppendInto(&errs, fmt.Errorf("item %d: %w", entryID, err))
		}
	}

	return errs
}
