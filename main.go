package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/VictorHenrique01/mini-mercado-hub/api"
	"github.com/VictorHenrique01/mini-mercado-hub/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("error loading configuration: %v", err))
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Errorf("error creating logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("starting mini-mercado hub",
		zap.String("listen_addr", cfg.ListenAddr),
		zap.String("backend_url", cfg.BackendURL))

	r := gin.New()
	r.Use(gin.Recovery())
	api.InitRoutes(r, cfg, afero.NewOsFs(), logger)

	if err := r.Run(cfg.ListenAddr); err != nil {
		panic(fmt.Errorf("error trying to start server: %v", err))
	}
}
