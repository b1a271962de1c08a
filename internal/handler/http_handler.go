package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/StephanNaro/id-registry/internal/domain"
	"github.com/StephanNaro/id-registry/internal/service"
	"github.com/StephanNaro/id-registry/pkg/log"
	"github.com/StephanNaro/id-registry/pkg/response"
)

// Handler handles HTTP requests for the registry service.
type Handler struct {
	registry service.RegistryService
}

// NewHandler creates a new HTTP handler.
func NewHandler(registry service.RegistryService) *Handler {
	return &Handler{registry: registry}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api/v1")
	{
		api.GET("/preview", h.Preview)

		ids := api.Group("/ids")
		{
			ids.POST("", h.Generate)
			ids.GET("/:id", h.Lookup)
			ids.POST("/:id/confirm", h.Confirm)
			ids.DELETE("/:id", h.Delete)
		}
	}

	admin := r.Group("/admin")
	{
		admin.POST("/suspend", h.Suspend)
		admin.POST("/resume", h.Resume)
		admin.PUT("/settings", h.UpdateSettings)
	}
}

// Generate mints a new identifier.
func (h *Handler) Generate(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind generate request")
		response.BadRequest(c, err.Error())
		return
	}

	record, err := h.registry.Generate(ctx, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOwner):
			response.Error(c, http.StatusBadRequest, "INVALID_OWNER", err.Error())
		case errors.Is(err, service.ErrSuspended):
			response.ServiceUnavailable(c, "SUSPENDED", "registry is suspended for maintenance")
		case errors.Is(err, service.ErrExhausted):
			l.Error().Err(err).Msg("generation exhausted")
			response.Error(c, http.StatusInternalServerError, "EXHAUSTED", err.Error())
		case errors.Is(err, service.ErrConfiguration):
			l.Error().Err(err).Msg("invalid registry configuration")
			response.Error(c, http.StatusInternalServerError, "CONFIGURATION_ERROR", err.Error())
		default:
			l.Error().Err(err).Msg("failed to generate identifier")
			response.InternalError(c, "failed to generate identifier")
		}
		return
	}

	response.Created(c, record)
}

// Preview returns a candidate identifier without persisting it.
func (h *Handler) Preview(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	candidate, err := h.registry.Preview(ctx)
	if err != nil {
		if errors.Is(err, service.ErrConfiguration) {
			l.Error().Err(err).Msg("invalid registry configuration")
			response.Error(c, http.StatusInternalServerError, "CONFIGURATION_ERROR", err.Error())
			return
		}
		l.Error().Err(err).Msg("failed to preview identifier")
		response.InternalError(c, "failed to preview identifier")
		return
	}

	response.Success(c, domain.PreviewResponse{PreviewID: candidate})
}

// Lookup retrieves an identifier record, including soft-deleted ones.
func (h *Handler) Lookup(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	id := c.Param("id")

	record, err := h.registry.Lookup(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrIDNotFound) {
			response.NotFound(c, "identifier not found")
			return
		}
		l.Error().Err(err).Str(log.FieldID, id).Msg("failed to look up identifier")
		response.InternalError(c, "failed to look up identifier")
		return
	}

	response.Success(c, record)
}

// Confirm marks an identifier confirmed.
func (h *Handler) Confirm(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	id := c.Param("id")

	err := h.registry.Confirm(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIDNotFound):
			response.NotFound(c, "identifier not found")
		case errors.Is(err, service.ErrIDDeleted):
			response.Conflict(c, "identifier is deleted")
		case errors.Is(err, service.ErrSuspended):
			response.ServiceUnavailable(c, "SUSPENDED", "registry is suspended for maintenance")
		default:
			l.Error().Err(err).Str(log.FieldID, id).Msg("failed to confirm identifier")
			response.InternalError(c, "failed to confirm identifier")
		}
		return
	}

	response.Success(c, gin.H{"id": id, "confirmed": true})
}

// Delete soft-deletes an identifier.
func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	id := c.Param("id")

	err := h.registry.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIDNotFound):
			response.NotFound(c, "identifier not found")
		case errors.Is(err, service.ErrSuspended):
			response.ServiceUnavailable(c, "SUSPENDED", "registry is suspended for maintenance")
		default:
			l.Error().Err(err).Str(log.FieldID, id).Msg("failed to delete identifier")
			response.InternalError(c, "failed to delete identifier")
		}
		return
	}

	response.Success(c, gin.H{"id": id, "deleted": true})
}

// Suspend gates writes for a consistent backup copy.
func (h *Handler) Suspend(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.AdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.registry.Suspend(ctx, req.Secret); err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			response.Unauthorized(c, "invalid admin secret")
			return
		}
		l.Error().Err(err).Msg("failed to suspend registry")
		response.InternalError(c, "failed to suspend registry")
		return
	}

	response.Success(c, gin.H{"message": "registry suspended, writes rejected"})
}

// Resume re-admits writes.
func (h *Handler) Resume(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.AdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.registry.Resume(ctx, req.Secret); err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			response.Unauthorized(c, "invalid admin secret")
			return
		}
		l.Error().Err(err).Msg("failed to resume registry")
		response.InternalError(c, "failed to resume registry")
		return
	}

	response.Success(c, gin.H{"message": "registry resumed"})
}

// UpdateSettings writes new registry settings.
func (h *Handler) UpdateSettings(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind settings request")
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.registry.UpdateSettings(ctx, req.Secret, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			response.Unauthorized(c, "invalid admin secret")
		case errors.Is(err, service.ErrSuspended):
			response.ServiceUnavailable(c, "SUSPENDED", "registry is suspended for maintenance")
		case errors.Is(err, service.ErrInvalidSettings):
			response.BadRequest(c, err.Error())
		default:
			l.Error().Err(err).Msg("failed to update settings")
			response.InternalError(c, "failed to update settings")
		}
		return
	}

	response.Success(c, gin.H{"message": "settings updated"})
}

// Health reports the gate state.
func (h *Handler) Health(c *gin.Context) {
	response.Success(c, h.registry.Health(c.Request.Context()))
}
