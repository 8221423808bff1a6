package bonus

import (
	"net/http"
	"strconv"

	"tidyteam/internal/domain"
	"tidyteam/internal/pkg/response"
	"tidyteam/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bonuses", h.Create)
	rg.GET("/bonuses", h.List)
	rg.GET("/bonuses/:id", h.Get)
	rg.POST("/bonuses/:id/status", h.AdvanceStatus)
}

func writeServiceError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid bonus request")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Bonus not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case ErrCreate:
		response.Error(c, http.StatusInternalServerError, "BONUS_ERROR", ErrCreate.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Network error. Please try again.")
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(&req); fields != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid request", fields)
		return
	}

	res, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	items, err := h.service.ListForCleaner(c.Request.Context(), c.GetInt64("user_id"), limit, offset)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bonuses": items})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.service.Get(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

type advanceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) AdvanceStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req advanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.AdvanceStatus(c.Request.Context(), id, domain.PayoutStatus(req.Status))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}
