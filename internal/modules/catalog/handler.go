package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"turfbook/internal/domain"
	"turfbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/turfs", h.ListTurfs)
	rg.GET("/turfs/:id", h.GetTurf)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/turfs", h.CreateTurf)
	rg.PUT("/turfs/:id", h.UpdateTurf)
	rg.DELETE("/turfs/:id", h.DeleteTurf)
}

func (h *Handler) ListTurfs(c *gin.Context) {
	turfs, err := h.service.ListTurfs(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load turfs")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"turfs": turfs})
}

func (h *Handler) GetTurf(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid turf ID")
		return
	}

	t, err := h.service.GetTurf(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Turf not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load turf")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"turf": t})
}

func (h *Handler) CreateTurf(c *gin.Context) {
	var req CreateTurfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid turf data")
		return
	}

	t, err := h.service.CreateTurf(c.Request.Context(), identityFrom(c), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin access required")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid turf data")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create turf")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"turf": t})
}

func (h *Handler) UpdateTurf(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid turf ID")
		return
	}

	var req UpdateTurfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid turf data")
		return
	}

	t, err := h.service.UpdateTurf(c.Request.Context(), identityFrom(c), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin access required")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Turf not found")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid turf data")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update turf")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"turf": t})
}

func (h *Handler) DeleteTurf(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid turf ID")
		return
	}

	if err := h.service.DeleteTurf(c.Request.Context(), identityFrom(c), id); err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin access required")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Turf not found")
		case errors.Is(err, ErrTurfHasBookings):
			response.Error(c, http.StatusConflict, "TURF_HAS_BOOKINGS", "Turf has bookings and cannot be removed")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete turf")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Turf removed"})
}

func identityFrom(c *gin.Context) domain.Identity {
	return domain.Identity{
		UserID:  c.GetInt64("user_id"),
		IsAdmin: c.GetBool("is_admin"),
	}
}
