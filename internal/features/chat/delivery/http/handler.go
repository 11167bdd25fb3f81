package http

import (
	"net/http"
	"strconv"

	"gslase-backend/internal/common/middleware"
	authmiddleware "gslase-backend/internal/features/auth/middleware"
	"gslase-backend/internal/features/chat/service"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	service service.ChatService
}

func NewChatHandler(service service.ChatService) *ChatHandler {
	return &ChatHandler{
		service: service,
	}
}

func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/chats", h.openChat)
	router.GET("/chats", h.listChats)
	router.POST("/messages", h.sendMessage)
	router.GET("/messages/:userID", h.getThread)
}

type openChatRequest struct {
	ReceiverID int64 `json:"receiver_id" binding:"required"`
}

// @Summary Open (or find) a chat with another user
// @Tags chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body openChatRequest true "Counterpart"
// @Success 200 {object} map[string]interface{} "Chat id"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /chats [post]
func (h *ChatHandler) openChat(c *gin.Context) {
	user, ok := authmiddleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req openChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chat, err := h.service.OpenChat(c.Request.Context(), user, req.ReceiverID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"chat_id": chat.ID})
}

// @Summary List the caller's chats
// @Description Each entry carries the counterpart and the latest message, newest first.
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Chat summaries"
// @Router /chats [get]
func (h *ChatHandler) listChats(c *gin.Context) {
	user, ok := authmiddleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	chats, err := h.service.ListChats(c.Request.Context(), user)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

type sendMessageRequest struct {
	ReceiverID int64  `json:"receiver_id" binding:"required"`
	Content    string `json:"content"`
}

// @Summary Send a message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body sendMessageRequest true "Message"
// @Success 201 {object} map[string]interface{} "Created message"
// @Failure 400 {object} middleware.ErrorResponse "Empty content"
// @Failure 404 {object} middleware.ErrorResponse "Receiver not found"
// @Router /messages [post]
func (h *ChatHandler) sendMessage(c *gin.Context) {
	user, ok := authmiddleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.service.Send(c.Request.Context(), user, req.ReceiverID, req.Content)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": gin.H{
			"id":        msg.ID,
			"content":   msg.Content,
			"sender":    msg.SenderUsername,
			"timestamp": msg.CreatedAt,
		},
	})
}

// @Summary Get the conversation with another user
// @Description Messages between the caller and the counterpart, oldest first.
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param userID path int true "Counterpart user ID"
// @Success 200 {object} map[string]interface{} "Thread"
// @Router /messages/{userID} [get]
func (h *ChatHandler) getThread(c *gin.Context) {
	user, ok := authmiddleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	counterpartID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid user ID format"})
		return
	}

	thread, err := h.service.Thread(c.Request.Context(), user, counterpartID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": thread})
}
