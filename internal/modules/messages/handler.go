package messages

import (
	"net/http"
	"strconv"

	"tidyteam/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the CORS layer in front of the API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	msgGroup := rg.Group("/messages")
	{
		msgGroup.POST("/coworker-conversation", h.CoworkerConversation)
		msgGroup.POST("/employee-conversation", h.EmployeeConversation)
		msgGroup.GET("/conversations", h.ListConversations)
		msgGroup.GET("/conversations/:id", h.ListMessages)
		msgGroup.POST("/conversations/:id", h.SendMessage)
		msgGroup.POST("/conversations/:id/read", h.MarkRead)
		msgGroup.GET("/ws", h.Socket)
	}
}

func writeServiceError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Conversation not found")
	case ErrNotParticipant:
		response.Error(c, http.StatusForbidden, "NOT_PARTICIPANT", "You are not a participant of this conversation")
	case ErrSelfChat:
		response.Error(c, http.StatusBadRequest, "SELF_CHAT", "Cannot open a conversation with yourself")
	case ErrNotCoworkers:
		response.Error(c, http.StatusForbidden, "NOT_COWORKERS", "Users do not share this job")
	case ErrNotEmployee:
		response.Error(c, http.StatusForbidden, "NOT_EMPLOYEE", "User is not one of your employees")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Network error. Please try again.")
	}
}

func conversationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid conversation ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) CoworkerConversation(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req CoworkerConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	conv, err := h.service.CoworkerConversation(c.Request.Context(), userID, req.CoworkerID, req.JobID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"conversation": ToConversationResponse(conv, userID)})
}

func (h *Handler) EmployeeConversation(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req EmployeeConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	conv, err := h.service.EmployeeConversation(c.Request.Context(), userID, req.EmployeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"conversation": ToConversationResponse(conv, userID)})
}

func (h *Handler) ListConversations(c *gin.Context) {
	userID := c.GetInt64("user_id")

	convs, err := h.service.ListConversations(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	items := make([]*ConversationResponse, 0, len(convs))
	for i := range convs {
		items = append(items, ToConversationResponse(&convs[i], userID))
	}
	response.Success(c, http.StatusOK, gin.H{"conversations": items})
}

func (h *Handler) ListMessages(c *gin.Context) {
	userID := c.GetInt64("user_id")
	id, ok := conversationID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	msgs, err := h.service.ListMessages(c.Request.Context(), id, userID, limit, offset)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	out := make([]*MessageResponse, 0, len(msgs))
	for i := range msgs {
		out = append(out, ToMessageResponse(&msgs[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"messages": out})
}

func (h *Handler) SendMessage(c *gin.Context) {
	userID := c.GetInt64("user_id")
	id, ok := conversationID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), id, userID, req.Content)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": ToMessageResponse(msg)})
}

func (h *Handler) MarkRead(c *gin.Context) {
	userID := c.GetInt64("user_id")
	id, ok := conversationID(c)
	if !ok {
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id, userID); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"read": true})
}

// Socket upgrades the connection and parks it in the hub until the
// client disconnects. Reads are discarded; the socket is push-only.
func (h *Handler) Socket(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	h.hub.Register(userID, conn)

	go func() {
		defer h.hub.Unregister(userID)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
