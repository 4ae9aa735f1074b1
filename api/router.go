package api

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/VictorHenrique01/mini-mercado-hub/config"
	"github.com/VictorHenrique01/mini-mercado-hub/internal/backend"
	"github.com/VictorHenrique01/mini-mercado-hub/internal/hub"
	"github.com/VictorHenrique01/mini-mercado-hub/internal/session"
)

// InitRoutes wires the session store, backend client and hub service and
// registers every route on the given Gin engine. The filesystem is injected
// so tests can run against an in-memory one.
func InitRoutes(e *gin.Engine, cfg config.Config, fs afero.Fs, logger *zap.Logger) {
	store := session.NewStore(fs, cfg.SessionDir, logger)
	store.Restore()

	client := backend.New(backend.Config{
		BaseURL:        cfg.BackendURL,
		Timeout:        cfg.RequestTimeout,
		RetryAttempts:  cfg.RetryAttempts,
		RetryBaseDelay: cfg.RetryBaseDelay,
		RetryMaxDelay:  cfg.RetryMaxDelay,
		FreshFor:       cfg.FreshWindow,
	}, store, logger)

	// The client reports a rejected session once; responses then carry the
	// login redirect, so the shell's only job here is the audit trail.
	client.SetOnUnauthorized(func() {
		logger.Warn("session expired, clients redirected to login",
			zap.String("redirect", LoginRoute))
	})

	service := hub.NewService(client, logger)
	handler := NewHubHandler(service, client, store, logger)

	e.Use(RequestLogger(logger))

	auth := e.Group("/auth")
	{
		auth.POST("/register", handler.handleRegister)
		auth.POST("/activate", handler.handleActivate)
		auth.POST("/login", handler.handleLogin)
		auth.POST("/logout", handler.handleLogout)
		auth.GET("/session", handler.handleSession)
	}

	protected := e.Group("/", RequireSession(store))
	{
		protected.GET("/dashboard", handler.handleDashboard)
		protected.GET("/reports", handler.handleReports)

		protected.GET("/profile", handler.handleGetProfile)
		protected.PUT("/profile", handler.handleUpdateProfile)
		protected.DELETE("/profile", handler.handleDeactivateProfile)

		protected.GET("/products", handler.handleListProducts)
		protected.POST("/products", handler.handleCreateProduct)
		protected.GET("/products/:id", handler.handleGetProduct)
		protected.PUT("/products/:id", handler.handleUpdateProduct)
		protected.DELETE("/products/:id", handler.handleDeleteProduct)
		protected.PATCH("/products/:id/inactivate", handler.handleInactivateProduct)

		protected.GET("/sales", handler.handleListSales)
		protected.POST("/sales", handler.handleCreateSale)
		protected.GET("/sales/:id", handler.handleGetSale)
		protected.DELETE("/sales/:id", handler.handleDeleteSale)
	}

	e.GET("/health", handler.handleHealth)
}
