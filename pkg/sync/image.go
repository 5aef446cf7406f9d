package sync

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"

	"droscher.com/OnTap/pkg/model"
)

// attachLabelImage downloads the HD label art into the media directory and
// records the local path on the beer. Every failure here is logged and
// swallowed; label art is never worth failing an item over.
func (m *Manager) attachLabelImage(ctx context.Context, beer *model.Beer, url string) {
	data, err := m.client.Download(ctx, url)
	if err != nil {
		m.logger.Warn("label image download failed", zap.Uint64("untappd_id", beer.UntappdID), zap.Error(err))

		return
	}

	if err := os.MkdirAll(m.conf.Untappd.MediaDir, 0o755); err != nil {
		m.logger.Warn("could not create media directory", zap.String("dir", m.conf.Untappd.MediaDir), zap.Error(err))

		return
	}

	ext := path.Ext(url)
	if ext == "" {
		ext = ".jpg"
	}

	target := filepath.Join(m.conf.Untappd.MediaDir, fmt.Sprintf("beer-%d%s", beer.UntappdID, ext))

	if err := os.WriteFile(target, data, 0o644); err != nil {
		m.logger.Warn("could not write label image", zap.String("path", target), zap.Error(err))

		return
	}

	beer.LabelImagePath = target

	if err := m.store.UpdateBeer(ctx, beer); err != nil {
		m.logger.Warn("could not record label image path", zap.Uint("beer_id", beer.ID), zap.Error(err))
	}
}
