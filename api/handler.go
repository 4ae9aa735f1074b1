package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/VictorHenrique01/mini-mercado-hub/internal/backend"
	"github.com/VictorHenrique01/mini-mercado-hub/internal/hub"
	"github.com/VictorHenrique01/mini-mercado-hub/internal/session"
)

// LoginRoute is where unauthenticated clients are pointed at.
const LoginRoute = "/auth/login"

// hubHandler holds the hub service, the backend client and the session store
// and implements the HTTP handlers.
type hubHandler struct {
	hub     *hub.Service
	api     *backend.Client
	session *session.Store
	logger  *zap.Logger
}

// NewHubHandler creates a new hub handler.
func NewHubHandler(service *hub.Service, api *backend.Client, store *session.Store, logger *zap.Logger) *hubHandler {
	return &hubHandler{
		hub:     service,
		api:     api,
		session: store,
		logger:  logger,
	}
}

func (h *hubHandler) handleRegister(ctx *gin.Context) {
	var req backend.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind register request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	if err := h.api.Register(ctx.Request.Context(), req); err != nil {
		h.renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": "registered, check your email for the activation code"})
}

func (h *hubHandler) handleActivate(ctx *gin.Context) {
	var req backend.ActivateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	if err := h.api.Activate(ctx.Request.Context(), req); err != nil {
		h.renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "account activated"})
}

func (h *hubHandler) handleLogin(ctx *gin.Context) {
	var req backend.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	auth, err := h.api.Login(ctx.Request.Context(), req)
	if err != nil {
		h.renderError(ctx, err)
		return
	}
	if auth.AccessToken == "" {
		h.logger.Error("login response carried no token")
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "backend returned an unusable login response"})
		return
	}

	if err := h.session.Login(auth.AccessToken, auth.Seller); err != nil {
		h.logger.Error("failed to persist session", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist session"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"seller": auth.Seller})
}

func (h *hubHandler) handleLogout(ctx *gin.Context) {
	h.session.Logout()
	ctx.Status(http.StatusNoContent)
}

// handleSession lets clients distinguish "still restoring" from "logged out"
// before deciding to redirect.
func (h *hubHandler) handleSession(ctx *gin.Context) {
	state := h.session.State()
	payload := gin.H{"state": state.String()}
	if seller, ok := h.session.Seller(); ok {
		payload["seller"] = seller
	}
	ctx.JSON(http.StatusOK, payload)
}

func (h *hubHandler) handleGetProfile(ctx *gin.Context) {
	seller, ok := h.session.Seller()
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated", "redirect": LoginRoute})
		return
	}
	ctx.JSON(http.StatusOK, seller)
}

func (h *hubHandler) handleUpdateProfile(ctx *gin.Context) {
	seller, ok := h.session.Seller()
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated", "redirect": LoginRoute})
		return
	}

	var req backend.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	updated, err := h.api.UpdateSeller(ctx.Request.Context(), seller.ID, req)
	if err != nil {
		h.renderError(ctx, err)
		return
	}
	if err := h.session.UpdateSeller(updated); err != nil {
		h.logger.Error("failed to persist updated seller", zap.Error(err))
	}
	ctx.JSON(http.StatusOK, updated)
}

func (h *hubHandler) handleDeactivateProfile(ctx *gin.Context) {
	seller, ok := h.session.Seller()
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated", "redirect": LoginRoute})
		return
	}

	if err := h.api.InactivateSeller(ctx.Request.Context(), seller.ID); err != nil {
		h.renderError(ctx, err)
		return
	}
	h.session.Logout()
	ctx.Status(http.StatusNoContent)
}

func (h *hubHandler) handleListProducts(ctx *gin.Context) {
	products, err := h.api.ListProducts(ctx.Request.Context())
	if err != nil {
		h.renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, products)
}

func (h *hubHandler) handleGetProduct(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	product, err := h.api.GetProduct(ctx.Request.Context(), id)
	if err != nil {
		h.renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

func (h *hubHandler) handleCreateProduct(ctx *gin.Context) {
	var req backend.ProductInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	product, err := h.api.CreateProduct(ctx.Request.Context(), req)
	if err != nil {
		h.renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, product)
}

func (h *hubHandler) handleUpdateProduct(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req backend.ProductInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	product, err := h.api.UpdateProduct(ctx.Request.Context(), id, req)
	if err != nil {
		h.renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

func (h *hubHandler) handleDeleteProduct(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := h.api.DeleteProduct(ctx.Request.Context(), id); err != nil {
		h.renderError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (h *hubHandler) handleInactivateProduct(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := h.api.InactivateProduct(ctx.Request.Context(), id); err != nil {
		h.renderError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (h *hubHandler) handleListSales(ctx *gin.Context) {
	sales, err := h.api.ListSales(ctx.Request.Context())
	if err != nil {
		h.renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sales)
}

func (h *hubHandler) handleCreateSale(ctx *gin.Context) {
	var req backend.SaleInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	sale, err := h.hub.SubmitSale(ctx.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, hub.ErrInvalidQuantity) {
			// Echo the payload back so the form stays populated for a
			// corrected retry.
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "submitted": req})
			return
		}
		h.renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, sale)
}

func (h *hubHandler) handleGetSale(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	sale, err := h.api.GetSale(ctx.Request.Context(), id)
	if err != nil {
		h.renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sale)
}

func (h *hubHandler) handleDeleteSale(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := h.api.DeleteSale(ctx.Request.Context(), id); err != nil {
		h.renderError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (h *hubHandler) handleDashboard(ctx *gin.Context) {
	overview, err := h.hub.Overview(ctx.Request.Context())
	if err != nil {
		h.renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, overview)
}

func (h *hubHandler) handleReports(ctx *gin.Context) {
	summary, err := h.hub.Report(ctx.Request.Context())
	if err != nil {
		h.renderError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

func (h *hubHandler) handleHealth(ctx *gin.Context) {
	status, err := h.api.Health(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusOK, gin.H{"hub": "ok", "backend": "unreachable"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"hub": "ok", "backend": status})
}

// renderError maps a classified backend failure onto this surface's own
// responses. Auth failures carry the login redirect so the caller knows the
// whole session is gone, not just the one request.
func (h *hubHandler) renderError(ctx *gin.Context, err error) {
	var apiErr *backend.Error
	if !errors.As(err, &apiErr) {
		h.logger.Error("unexpected error", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	payload := gin.H{"error": apiErr.Message}
	if apiErr.Kind == backend.KindAuth {
		payload["redirect"] = LoginRoute
	}
	ctx.JSON(statusFor(apiErr.Kind), payload)
}

func statusFor(kind backend.Kind) int {
	switch kind {
	case backend.KindAuth:
		return http.StatusUnauthorized
	case backend.KindBadRequest:
		return http.StatusBadRequest
	case backend.KindValidation:
		return http.StatusUnprocessableEntity
	case backend.KindNotFound:
		return http.StatusNotFound
	case backend.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func pathID(ctx *gin.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
