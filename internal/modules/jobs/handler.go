package jobs

import (
	"net/http"
	"strconv"

	"tidyteam/internal/pkg/response"
	"tidyteam/internal/pkg/validator"
	"tidyteam/internal/view"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs", h.CreateJob)
	rg.GET("/jobs", h.ListOpenJobs)
	rg.GET("/jobs/:id", h.GetJob)
	rg.GET("/jobs/:id/warning", h.LargeHomeWarning)
	rg.POST("/jobs/:id/offers", h.OfferToCleaner)
	rg.POST("/jobs/:id/solo", h.AcceptSolo)
	rg.POST("/jobs/:id/join", h.RequestJoinTeam)
	rg.POST("/jobs/:id/book-with-team", h.BookWithTeam)
	rg.POST("/jobs/:id/dropout", h.Dropout)
	rg.GET("/jobs/:id/dropout-options", h.DropoutOptions)
	rg.POST("/jobs/:id/dropout-choice", h.DropoutChoice)

	rg.GET("/offers/:id", h.OfferView)
	rg.POST("/offers/:id/accept", h.AcceptOffer)
	rg.POST("/offers/:id/decline", h.DeclineOffer)

	rg.GET("/solo-offers/:id", h.SoloOfferView)
	rg.POST("/solo-offers/:id/accept", h.AcceptSoloOffer)
	rg.POST("/solo-offers/:id/decline", h.DeclineSoloOffer)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}

// writeServiceError maps the module's sentinel errors onto the flat
// error envelope. Unknown errors collapse to a generic message.
func writeServiceError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case ErrJobFilled:
		response.Error(c, http.StatusConflict, "JOB_FILLED", "Job has no open slots")
	case ErrOfferExpired:
		response.Error(c, http.StatusConflict, "OFFER_EXPIRED", "This offer has expired")
	case ErrOfferResolved:
		response.Error(c, http.StatusConflict, "OFFER_RESOLVED", "This offer was already resolved")
	case ErrAcknowledgmentRequired:
		response.Error(c, http.StatusBadRequest, "ACKNOWLEDGMENT_REQUIRED", "Solo cleaning must be acknowledged")
	case ErrNotEnoughSlots:
		response.Error(c, http.StatusConflict, "NOT_ENOUGH_SLOTS", "Not enough open slots for a team booking")
	case ErrNoEmployees:
		response.Error(c, http.StatusBadRequest, "NO_EMPLOYEES", "No employees to book with")
	case ErrInvalidDropoutOption:
		response.Error(c, http.StatusBadRequest, "INVALID_OPTION", "Unknown remediation option")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Network error. Please try again.")
	}
}

func (h *Handler) CreateJob(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(&req); fields != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid request", fields)
		return
	}

	j, err := h.service.CreateJob(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"job": j})
}

func (h *Handler) ListOpenJobs(c *gin.Context) {
	viewerID := c.GetInt64("user_id")
	limit, offset := pagination(c)

	flags := view.ViewerFlags{
		ShowActions:     c.DefaultQuery("show_actions", "true") == "true",
		IsBusinessOwner: c.GetString("role") == "business_owner",
		CanJoinTeam:     c.Query("can_join") == "true",
	}

	cards, err := h.service.ListOpenCards(c.Request.Context(), viewerID, flags, limit, offset)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"jobs": cards})
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (h *Handler) GetJob(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	j, err := h.service.GetJob(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"job": j})
}

func (h *Handler) LargeHomeWarning(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	w, err := h.service.LargeHomeWarning(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"warning": w})
}

func (h *Handler) OfferToCleaner(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req OfferJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	o, err := h.service.OfferToCleaner(c.Request.Context(), id, req.CleanerID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"offer": o})
}

func (h *Handler) OfferView(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	v, err := h.service.OfferView(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"offer": v})
}

func (h *Handler) AcceptOffer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	j, err := h.service.AcceptOffer(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"job": gin.H{"id": j.ID, "status": j.Status, "cleaners_confirmed": j.CleanersConfirmed}})
}

func (h *Handler) DeclineOffer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req DeclineOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	o, err := h.service.DeclineOffer(c.Request.Context(), id, c.GetInt64("user_id"), req.Reason)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"offer": gin.H{"id": o.ID, "status": o.Status}})
}

func (h *Handler) AcceptSolo(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req AcceptSoloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	j, err := h.service.AcceptSolo(c.Request.Context(), id, c.GetInt64("user_id"), req.Acknowledged)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"job": gin.H{"id": j.ID, "status": j.Status, "cleaners_confirmed": j.CleanersConfirmed}})
}

func (h *Handler) RequestJoinTeam(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	j, err := h.service.RequestJoinTeam(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"job": gin.H{"id": j.ID, "status": j.Status, "cleaners_confirmed": j.CleanersConfirmed}})
}

func (h *Handler) BookWithTeam(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req BookWithTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	j, err := h.service.BookWithTeam(c.Request.Context(), id, c.GetInt64("user_id"), req.EmployeeIDs)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"job": gin.H{"id": j.ID, "status": j.Status, "cleaners_confirmed": j.CleanersConfirmed}})
}

func (h *Handler) Dropout(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	j, err := h.service.Dropout(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"job": gin.H{"id": j.ID, "status": j.Status, "cleaners_confirmed": j.CleanersConfirmed}})
}

func (h *Handler) DropoutOptions(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	opts, err := h.service.DropoutOptions(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"options": opts})
}

func (h *Handler) DropoutChoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req DropoutChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	j, err := h.service.DropoutChoice(c.Request.Context(), id, c.GetInt64("user_id"), req.Option)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"job": gin.H{"id": j.ID, "status": j.Status}})
}

func (h *Handler) SoloOfferView(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	v, err := h.service.SoloOfferView(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"solo_offer": v})
}

func (h *Handler) AcceptSoloOffer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	o, err := h.service.AcceptSoloOffer(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"solo_offer": gin.H{"id": o.ID, "status": o.Status}})
}

func (h *Handler) DeclineSoloOffer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	o, err := h.service.DeclineSoloOffer(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"solo_offer": gin.H{"id": o.ID, "status": o.Status}})
}
