package cmd

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"droscher.com/OnTap/configs"
	"droscher.com/OnTap/pkg/auth"
	"droscher.com/OnTap/pkg/cache"
	"droscher.com/OnTap/pkg/repository"
	"droscher.com/OnTap/pkg/server"
	"droscher.com/OnTap/pkg/sync"
	"droscher.com/OnTap/pkg/untappd"
)

const timeout = 5 * time.Second

type ServeCmd struct {
	ConfigFile string `default:".OnTap.toml" help:"Path to config file" short:"c"`
}

func (s *ServeCmd) Run(_ *Context) error {
	logConfig := zap.NewProductionConfig()

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
	authManager := auth.NewAuthManager(conf, logger)

	handler := server.NewServer(repo, manager, client, logger)

	address := fmt.Sprintf(":%d", conf.Server.Port)

	svr := &http.Server{
		Addr:              address,
		ReadHeaderTimeout: timeout,
		Handler:           handler.Router(authManager),
	}

	logger.Info("starting server", zap.String("address", address))

	err = svr.ListenAndServe()
	if err != nil {
		logger.Error("failed to start server", zap.Error(err))

		return err
	}

	return nil
}
