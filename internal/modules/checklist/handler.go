package checklist

import (
	"net/http"
	"strconv"

	"tidyteam/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/rooms/:id/items/:itemID/toggle", h.ToggleItem)
	rg.POST("/rooms/:id/complete", h.CompleteRoom)
	rg.GET("/jobs/:id/progress", h.Progress)
	rg.GET("/jobs/:id/team-progress", h.TeamProgress)
}

func param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}

func writeServiceError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case ErrStaleVersion:
		response.Error(c, http.StatusConflict, "STALE_VERSION", "Checklist changed on the server. Refresh and try again.")
	case ErrItemsRemaining:
		response.Error(c, http.StatusBadRequest, "ITEMS_REMAINING", "Finish every checklist item before completing the room")
	case ErrEmptyChecklist:
		response.Error(c, http.StatusBadRequest, "EMPTY_CHECKLIST", "Room has no checklist items")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Network error. Please try again.")
	}
}

func (h *Handler) ToggleItem(c *gin.Context) {
	roomID, ok := param(c, "id")
	if !ok {
		return
	}
	itemID, ok := param(c, "itemID")
	if !ok {
		return
	}

	var req ToggleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.ToggleItem(c.Request.Context(), roomID, itemID, c.GetInt64("user_id"), req.Completed, req.Version)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, room)
}

func (h *Handler) CompleteRoom(c *gin.Context) {
	roomID, ok := param(c, "id")
	if !ok {
		return
	}

	res, err := h.service.CompleteRoom(c.Request.Context(), roomID, c.GetInt64("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Progress(c *gin.Context) {
	jobID, ok := param(c, "id")
	if !ok {
		return
	}

	res, err := h.service.Progress(c.Request.Context(), jobID, c.GetInt64("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) TeamProgress(c *gin.Context) {
	jobID, ok := param(c, "id")
	if !ok {
		return
	}

	res, err := h.service.TeamProgress(c.Request.Context(), jobID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}
