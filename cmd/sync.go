package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"droscher.com/OnTap/configs"
	"droscher.com/OnTap/pkg/cache"
	"droscher.com/OnTap/pkg/repository"
	"droscher.com/OnTap/pkg/sync"
	"droscher.com/OnTap/pkg/untappd"
)

var ErrSyncFailed = errors.New("sync completed with errors")

// SyncCmd runs one sync pass and prints the report. A cron or systemd
// timer invoking this command is the scheduled-sync path.
type SyncCmd struct {
	ConfigFile string `default:".OnTap.toml" help:"Path to config file" short:"c"`
}

func (s *SyncCmd) Run(cmdContext *Context) error {
	logConfig := zap.NewProductionConfig()
	if cmdContext.Debug {
		logConfig = zap.NewDevelopmentConfig()
	}

	logger, _ := logConfig.Build()
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	conf, err := configs.GetConfig(s.ConfigFile, logger)
	if err != nil {
		logger.Error("error loading config", zap.Error(err))

		return err
	}

	repo, err := repository.Open(conf, logger)
	if err != nil {
		logger.Error("error connecting to database", zap.Error(err))

		return err
	}
	defer repo.Close()

	menuCache := cache.NewRedisCache(conf, logger)
	defer menuCache.Close() //nolint:errcheck // shutdown path

	client := untappd.NewClient(conf, menuCache, logger)
	manager := sync.NewManager(client, repo, conf, logger)

	report := manager.SyncAll(context.Background())

	output, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, string(output))

	if !report.Success {
		return ErrSyncFailed
	}

	return nil
}
