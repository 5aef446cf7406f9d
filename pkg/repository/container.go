package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"droscher.com/OnTap/pkg/model"
)

// SaveContainer upserts one serving line. Rows correlate by the Untappd
// container id when the feed supplies one; without it there is nothing to
// dedupe on, so the row is inserted as-is.
func (r *Repository) SaveContainer(ctx context.Context, taplistEntryID uint, container model.Container) (uint, error) {
	container.TaplistEntryID = taplistEntryID

	if container.UntappdContainerID != nil {
		existing := model.Container{}

		result := r.DB.WithContext(ctx).
			Where("untappd_container_id = ?", *container.UntappdContainerID).
			First(&existing)

		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, result.Error
		}

		if result.Error == nil {
			update := r.DB.WithContext(ctx).Model(&existing).Updates(map[string]any{
				"container_type": container.ContainerType,
				"size":           container.Size,
				"price":          container.Price,
				"is_available":   container.IsAvailable,
				"sort_order":     container.SortOrder,
			})
			if update.Error != nil {
				return 0, update.Error
			}

			return existing.ID, nil
		}
	}

	if result := r.DB.WithContext(ctx).Create(&container); result.Error != nil {
		return 0, result.Error
	}

	return container.ID, nil
}

// SyncContainers upserts the supplied containers in feed order, assigning
// each a sort order equal to its index. Returns the number of successful
// saves; rows absent from the list are left in place.
func (r *Repository) SyncContainers(ctx context.Context, taplistEntryID uint, containers []model.Container) int {
	synced := 0

	for index, container := range containers {
		container.SortOrder = index

		if _, err := r.SaveContainer(ctx, taplistEntryID, container); err != nil {
			r.Logger.Error("error saving container",
				zap.Uint("taplist_entry_id", taplistEntryID),
				zap.String("size", container.Size),
				zap.Error(err))

			continue
		}

		synced++
	}

	return synced
}

func (r *Repository) GetContainers(ctx context.Context, taplistEntryID uint, availableOnly bool) ([]*model.Container, error) {
	var containers []*model.Container

	query := r.DB.WithContext(ctx).
		Where("taplist_entry_id = ?", taplistEntryID).
		Order("sort_order ASC, price ASC")

	if availableOnly {
		query = query.Where("is_available = ?", true)
	}

	if result := query.Find(&containers); result.Error != nil {
		return nil, result.Error
	}

	return containers, nil
}

func (r *Repository) DeleteContainer(ctx context.Context, containerID uint) error {
	result := r.DB.WithContext(ctx).Delete(&model.Container{}, containerID)

	return result.Error
}

func (r *Repository) MinPrice(ctx context.Context, taplistEntryID uint) (*float64, error) {
	return r.priceBound(ctx, taplistEntryID, "MIN")
}

func (r *Repository) MaxPrice(ctx context.Context, taplistEntryID uint) (*float64, error) {
	return r.priceBound(ctx, taplistEntryID, "MAX")
}

func (r *Repository) priceBound(ctx context.Context, taplistEntryID uint, fn string) (*float64, error) {
	var price *float64

	result := r.DB.WithContext(ctx).Model(&model.Container{}).
		Select(fn+"(price)").
		Where("taplist_entry_id = ? AND is_available = ?", taplistEntryID, true).
		Scan(&price)

	return price, result.Error
}
