package http

import (
	"net/http"
	"strconv"

	"gslase-backend/internal/common/middleware"
	authmiddleware "gslase-backend/internal/features/auth/middleware"
	"gslase-backend/internal/features/invitation/service"

	"github.com/gin-gonic/gin"
)

type InvitationHandler struct {
	service service.InvitationService
}

func NewInvitationHandler(service service.InvitationService) *InvitationHandler {
	return &InvitationHandler{
		service: service,
	}
}

func (h *InvitationHandler) RegisterRoutes(router *gin.RouterGroup) {
	invitations := router.Group("/invitations")
	{
		invitations.POST("", h.send)
		invitations.POST("/:id/respond", h.respond)
		invitations.GET("/pending", h.listPending)
	}
}

type sendInvitationRequest struct {
	Username    string `json:"username" binding:"required"`
	ChannelName string `json:"channel_name" binding:"required"`
}

// @Summary Invite a user to a channel
// @Description Creates a pending invitation; the bot announces it to the invited user.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body sendInvitationRequest true "Invitation"
// @Success 201 {object} map[string]interface{} "Created invitation"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /invitations [post]
func (h *InvitationHandler) send(c *gin.Context) {
	user, ok := authmiddleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req sendInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inv, err := h.service.Send(c.Request.Context(), user, req.Username, req.ChannelName)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"invitation": inv})
}

type respondRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

// @Summary Respond to an invitation
// @Description Accept or reject; allowed once, and only for the invited user.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invitation ID"
// @Param body body respondRequest true "Decision"
// @Success 200 {object} map[string]interface{} "Outcome"
// @Failure 403 {object} middleware.ErrorResponse "Not the invited user"
// @Failure 404 {object} middleware.ErrorResponse "Invitation not found"
// @Failure 409 {object} middleware.ErrorResponse "Already resolved"
// @Router /invitations/{id}/respond [post]
func (h *InvitationHandler) respond(c *gin.Context) {
	user, ok := authmiddleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid invitation ID format"})
		return
	}

	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.service.Respond(c.Request.Context(), user, id, *req.Accept)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": outcome})
}

// @Summary List pending invitations for the caller
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Pending invitations"
// @Router /invitations/pending [get]
func (h *InvitationHandler) listPending(c *gin.Context) {
	user, ok := authmiddleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	invitations, err := h.service.ListPending(c.Request.Context(), user)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invitations": invitations})
}
