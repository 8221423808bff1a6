package incentives

import (
	"net/http"

	"tidyteam/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes carries the unauthenticated promotion lookup.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/incentives/current", h.Current)
}

// RegisterAdminRoutes expects the role middleware applied by the
// caller.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/incentives/config", h.Config)
	rg.PUT("/incentives/config", h.Update)
}

func (h *Handler) Current(c *gin.Context) {
	res, err := h.service.Current(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Network error. Please try again.")
		return
	}
	if res == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Config(c *gin.Context) {
	res, err := h.service.Config(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Network error. Please try again.")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	res, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		if err == ErrValidation {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Config blocks must be JSON objects"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to save config"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Incentive config updated",
		"config":  res.Config,
	})
}
