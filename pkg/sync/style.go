package sync

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"droscher.com/OnTap/pkg/model"
)

// Untappd encodes a two-level hierarchy in a single string, e.g.
// "IPA - New England / Hazy". Only the first delimiter splits; anything
// after it belongs to the child name.
const styleDelimiter = " - "

// assignStyle parses the feed's style string into parent and child terms
// and replaces the beer's style assignments with the result. Failures are
// logged and swallowed: style tagging is best-effort relative to the rest
// of the item pipeline.
func (m *Manager) assignStyle(ctx context.Context, beer *model.Beer, style string) {
	if strings.TrimSpace(style) == "" {
		m.logger.Warn("Empty style for beer", zap.Uint("beer_id", beer.ID), zap.Uint64("untappd_id", beer.UntappdID))

		return
	}

	parts := strings.SplitN(style, styleDelimiter, 2)

	parentName := strings.TrimSpace(parts[0])

	childName := ""
	if len(parts) > 1 {
		childName = strings.TrimSpace(parts[1])
	}

	parent, err := m.store.GetOrCreateStyle(ctx, parentName, 0)
	if err != nil {
		m.logger.Error("failed to resolve parent style", zap.String("style", parentName), zap.Error(err))

		return
	}

	styles := []model.Style{*parent}

	if childName != "" {
		child, err := m.store.GetOrCreateStyle(ctx, childName, parent.ID)
		if err != nil {
			m.logger.Error("failed to resolve child style",
				zap.String("style", childName),
				zap.Uint("parent_id", parent.ID),
				zap.Error(err))
		} else {
			styles = append(styles, *child)
		}
	}

	if err := m.store.ReplaceBeerStyles(ctx, beer.ID, styles); err != nil {
		m.logger.Error("failed to assign styles", zap.Uint("beer_id", beer.ID), zap.Error(err))
	}
}
