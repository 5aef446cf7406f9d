package repository

import (
	"context"
	"encoding/json"

	"droscher.com/OnTap/pkg/model"
)

// AddSyncLog persists one structured log entry; the context map is stored
// as JSON alongside the message so the admin log view can expand it.
func (r *Repository) AddSyncLog(ctx context.Context, level string, message string, logContext map[string]any) error {
	entry := model.SyncLog{Level: level, Message: message}

	if logContext != nil {
		payload, err := json.Marshal(logContext)
		if err != nil {
			return err
		}

		entry.Context = payload
	}

	if result := r.DB.WithContext(ctx).Create(&entry); result.Error != nil {
		return result.Error
	}

	return nil
}

func (r *Repository) GetSyncLogs(ctx context.Context, limit int) ([]*model.SyncLog, error) {
	var logs []*model.SyncLog

	if result := r.DB.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&logs); result.Error != nil {
		return nil, result.Error
	}

	return logs, nil
}

func (r *Repository) ClearSyncLogs(ctx context.Context) error {
	result := r.DB.WithContext(ctx).Where("1 = 1").Delete(&model.SyncLog{})

	return result.Error
}
