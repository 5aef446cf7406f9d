// Package sync reconciles the Untappd feed for each configured taproom
// against the locally stored beers, taplist rows and containers.
package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.openly.dev/pointy"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"droscher.com/OnTap/configs"
	"droscher.com/OnTap/pkg/model"
	"droscher.com/OnTap/pkg/repository"
	"droscher.com/OnTap/pkg/untappd"
)

var ErrNoMenuID = errors.New("no Untappd menu ID configured for this taproom")

// CatalogClient is the slice of the Untappd client the manager needs.
type CatalogClient interface {
	GetMenu(ctx context.Context, menuID string) (*untappd.Menu, error)
	Download(ctx context.Context, url string) ([]byte, error)
}

// Store is the slice of the repository the manager writes through.
type Store interface {
	GetTaprooms(ctx context.Context) ([]*model.Taproom, error)
	FindBeerByUntappdID(ctx context.Context, untappdID uint64) (*model.Beer, error)
	CreateBeer(ctx context.Context, beer *model.Beer) error
	UpdateBeer(ctx context.Context, beer *model.Beer) error
	GetOrCreateStyle(ctx context.Context, name string, parentID uint) (*model.Style, error)
	ReplaceBeerStyles(ctx context.Context, beerID uint, styles []model.Style) error
	SaveTaplistItem(ctx context.Context, beerID uint, taproomID uint, fields repository.TaplistItemFields) (uint, error)
	SyncContainers(ctx context.Context, taplistEntryID uint, containers []model.Container) int
	GetTaplist(ctx context.Context, taproomID uint, availableOnly bool) ([]*model.TaplistEntry, error)
	MarkUnavailable(ctx context.Context, beerID uint, taproomID uint) error
	AddSyncLog(ctx context.Context, level string, message string, logContext map[string]any) error
}

type Manager struct {
	client CatalogClient
	store  Store
	conf   *configs.Config
	logger *zap.Logger
	group  singleflight.Group
}

func NewManager(client CatalogClient, store Store, conf *configs.Config, logger *zap.Logger) *Manager {
	return &Manager{client: client, store: store, conf: conf, logger: logger}
}

// SyncAll syncs every configured taproom and returns the aggregated
// report. Concurrent calls are collapsed into the in-flight run: a manual
// trigger landing during a scheduled run shares its result instead of
// interleaving writes.
func (m *Manager) SyncAll(ctx context.Context) *Report {
	result, _, _ := m.group.Do("sync_all", func() (any, error) {
		return m.syncAll(ctx), nil
	})

	report, _ := result.(*Report)

	return report
}

func (m *Manager) syncAll(ctx context.Context) *Report {
	report := &Report{RunID: uuid.NewString(), Errors: []string{}}

	m.logger.Info("Starting sync of all taprooms", zap.String("run_id", report.RunID))

	taprooms, err := m.store.GetTaprooms(ctx)
	if err != nil {
		report.Errors = append(report.Errors, err.Error())
		report.Message = "Failed to get taprooms"

		return report
	}

	if len(taprooms) == 0 {
		report.Message = "No taprooms configured. Please add taprooms and assign menu IDs."

		return report
	}

	for _, taproom := range taprooms {
		if err := m.SyncTaproom(ctx, taproom, report); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %s", taproom.Name, err.Error()))
		}
	}

	report.Success = len(report.Errors) == 0
	report.Message = report.summary()

	m.logCompletion(ctx, report)

	return report
}

// SyncTaproom fetches one taproom's menu and upserts every eligible item.
// Item-level failures are collected into the report; only a missing menu
// id or a failed fetch abort the taproom.
func (m *Manager) SyncTaproom(ctx context.Context, taproom *model.Taproom, report *Report) error {
	if taproom.UntappdMenuID == "" {
		return ErrNoMenuID
	}

	menu, err := m.client.GetMenu(ctx, taproom.UntappdMenuID)
	if err != nil {
		return err
	}

	seen := make(map[uint]struct{})

	for _, section := range menu.Sections {
		// Only publicly visible, tap-eligible sections feed the taplist.
		if !section.Public || section.Type == untappd.OnDeckSectionType {
			continue
		}

		for _, item := range section.Items {
			if item.Type != untappd.ItemTypeBeer {
				continue
			}

			beerID, err := m.syncBeer(ctx, item, taproom, report)
			if err != nil {
				report.Errors = append(report.Errors, err.Error())

				continue
			}

			seen[beerID] = struct{}{}
		}
	}

	if m.conf.Sync.MarkMissingUnavailable {
		m.hideMissing(ctx, taproom, seen)
	}

	return nil
}

// syncBeer runs the per-item pipeline: correlate by Untappd id, write the
// beer, then the best-effort style and image steps, then the taplist row
// and its containers.
func (m *Manager) syncBeer(ctx context.Context, item untappd.Item, taproom *model.Taproom, report *Report) (uint, error) {
	m.logger.Debug("Syncing beer",
		zap.String("beer_name", item.Name),
		zap.Uint64("untappd_id", item.UntappdID),
		zap.String("taproom", taproom.Name))

	created := false

	beer, err := m.store.FindBeerByUntappdID(ctx, item.UntappdID)

	switch {
	case err == nil:
		beer.Name = item.Name
		beer.Description = item.Description
	case errors.Is(err, repository.ErrBeerNotFound):
		beer = &model.Beer{Name: item.Name, Description: item.Description, UntappdID: item.UntappdID}
		created = true
	default:
		return 0, err
	}

	applyItemMeta(beer, item)

	if created {
		if err := m.store.CreateBeer(ctx, beer); err != nil {
			return 0, err
		}

		report.BeersCreated++
	} else {
		if err := m.store.UpdateBeer(ctx, beer); err != nil {
			return 0, err
		}

		report.BeersUpdated++
	}

	if item.Style != nil {
		m.assignStyle(ctx, beer, *item.Style)
	}

	if item.LabelImageHD != nil && *item.LabelImageHD != "" && beer.LabelImagePath == "" {
		m.attachLabelImage(ctx, beer, *item.LabelImageHD)
	}

	entryID, err := m.store.SaveTaplistItem(ctx, beer.ID, taproom.ID, repository.TaplistItemFields{
		TapNumber:         item.TapNumber,
		IsAvailable:       !item.Hidden,
		UntappdMenuItemID: pointy.Uint64(item.ID),
	})
	if err != nil {
		m.logger.Error("failed to save taplist item",
			zap.Uint("beer_id", beer.ID),
			zap.Uint("taproom_id", taproom.ID),
			zap.Error(err))

		return beer.ID, nil
	}

	report.TaplistSynced++

	if len(item.Containers) > 0 {
		report.ContainersSynced += m.store.SyncContainers(ctx, entryID, containersFromItem(item))
	}

	return beer.ID, nil
}

// applyItemMeta copies feed metadata onto the beer. Pointer fields left
// nil in the payload were absent upstream and stay untouched locally.
func applyItemMeta(beer *model.Beer, item untappd.Item) {
	if item.BeerSlug != nil {
		beer.BeerSlug = *item.BeerSlug
	}

	if item.Brewery != nil {
		beer.Brewery = *item.Brewery
	}

	if item.BreweryLocation != nil {
		beer.BreweryLocation = *item.BreweryLocation
	}

	if item.ABV != nil {
		beer.ABV = item.ABV
	}

	if item.IBU != nil {
		beer.IBU = item.IBU
	}

	if item.Calories != nil {
		beer.Calories = item.Calories
	}

	if item.Rating != nil {
		beer.Rating = item.Rating
	}

	if item.RatingCount != nil {
		beer.RatingCount = item.RatingCount
	}

	if item.LabelImage != nil {
		beer.LabelImage = *item.LabelImage
	}

	if item.LabelImageHD != nil {
		beer.LabelImageHD = *item.LabelImageHD
	}

	now := time.Now().UTC()
	beer.LastSynced = &now
}

func containersFromItem(item untappd.Item) []model.Container {
	containers := make([]model.Container, 0, len(item.Containers))

	for _, container := range item.Containers {
		containers = append(containers, model.Container{
			ContainerType:      container.ContainerSize.Name,
			Size:               container.Name,
			Price:              container.Price.Float(),
			IsAvailable:        true,
			UntappdContainerID: pointy.Uint64(container.ID),
		})
	}

	return containers
}

// hideMissing marks entries absent from the current feed as unavailable.
// Only active when Sync.MarkMissingUnavailable is set; the default policy
// leaves removal to operators.
func (m *Manager) hideMissing(ctx context.Context, taproom *model.Taproom, seen map[uint]struct{}) {
	entries, err := m.store.GetTaplist(ctx, taproom.ID, true)
	if err != nil {
		m.logger.Error("failed to load taplist for staleness pass", zap.Uint("taproom_id", taproom.ID), zap.Error(err))

		return
	}

	for _, entry := range entries {
		if _, ok := seen[entry.BeerID]; ok {
			continue
		}

		if err := m.store.MarkUnavailable(ctx, entry.BeerID, taproom.ID); err != nil {
			m.logger.Error("failed to mark missing entry unavailable",
				zap.Uint("beer_id", entry.BeerID),
				zap.Uint("taproom_id", taproom.ID),
				zap.Error(err))
		}
	}
}

func (m *Manager) logCompletion(ctx context.Context, report *Report) {
	fields := []zap.Field{
		zap.String("run_id", report.RunID),
		zap.Int("beers_created", report.BeersCreated),
		zap.Int("beers_updated", report.BeersUpdated),
		zap.Int("taplist_synced", report.TaplistSynced),
		zap.Int("containers_synced", report.ContainersSynced),
		zap.Strings("errors", report.Errors),
	}

	if report.Success {
		m.logger.Info("Sync completed", fields...)
	} else {
		m.logger.Error("Sync completed", fields...)
	}

	level := "info"
	if !report.Success {
		level = "error"
	}

	err := m.store.AddSyncLog(ctx, level, report.Message, map[string]any{
		"run_id":            report.RunID,
		"beers_created":     report.BeersCreated,
		"beers_updated":     report.BeersUpdated,
		"taplist_synced":    report.TaplistSynced,
		"containers_synced": report.ContainersSynced,
		"errors":            report.Errors,
	})
	if err != nil {
		m.logger.Warn("failed to persist sync log entry", zap.Error(err))
	}
}
