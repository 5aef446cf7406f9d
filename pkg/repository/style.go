package repository

import (
	"context"

	"gorm.io/gorm/clause"

	"droscher.com/OnTap/pkg/model"
)

// GetOrCreateStyle resolves a style term by name within its parent scope,
// creating it on first sighting. Root styles use parentID 0; children are
// scoped under their parent so equal names under different parents stay
// distinct terms.
func (r *Repository) GetOrCreateStyle(ctx context.Context, name string, parentID uint) (*model.Style, error) {
	style := model.Style{Name: name, ParentID: parentID}

	if result := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&style); result.Error != nil {
		return nil, result.Error
	}

	if style.ID == 0 {
		if result := r.DB.WithContext(ctx).Where("name = ? AND parent_id = ?", name, parentID).First(&style); result.Error != nil {
			return nil, result.Error
		}
	}

	return &style, nil
}

// ReplaceBeerStyles swaps the beer's style assignments for the given set.
// Sync calls this with the freshly parsed parent/child pair, so a style
// change upstream corrects stale tags instead of accumulating them.
func (r *Repository) ReplaceBeerStyles(ctx context.Context, beerID uint, styles []model.Style) error {
	beer := model.Beer{}
	beer.ID = beerID

	return r.DB.WithContext(ctx).Model(&beer).Association("Styles").Replace(styles)
}

func (r *Repository) GetStyles(ctx context.Context) ([]*model.Style, error) {
	var styles []*model.Style

	if result := r.DB.WithContext(ctx).Order("parent_id, name").Find(&styles); result.Error != nil {
		return nil, result.Error
	}

	return styles, nil
}
