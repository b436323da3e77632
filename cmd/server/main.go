package main

import (
	"context"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/palmietopia/server/internal/config"
	"github.com/palmietopia/server/internal/httpapi"
	"github.com/palmietopia/server/internal/persistence"
	"github.com/palmietopia/server/internal/session"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	ctx := context.Background()

	var store persistence.Store
	if cfg.PersistDSN != "" {
		pg, err := persistence.OpenPostgres(cfg.PersistDSN)
		if err != nil {
			logger.Error("failed to open persistence store", zap.Error(err))
			os.Exit(1)
		}
		store = pg
	}

	mgr := session.NewManager(ctx, logger, store)
	handler := httpapi.SetupRoutes(mgr, logger, cfg.EndpointPath)

	logger.Info("listening", zap.String("address", cfg.BindAddress))
	if err := http.ListenAndServe(cfg.BindAddress, handler); err != nil {
		logger.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
}
