package http

import (
	"net/http"

	"gslase-backend/internal/common/middleware"
	authmiddleware "gslase-backend/internal/features/auth/middleware"
	"gslase-backend/internal/features/channel/service"

	"github.com/gin-gonic/gin"
)

type ChannelHandler struct {
	service service.ChannelService
}

func NewChannelHandler(service service.ChannelService) *ChannelHandler {
	return &ChannelHandler{
		service: service,
	}
}

func (h *ChannelHandler) RegisterRoutes(router *gin.RouterGroup) {
	channels := router.Group("/channels")
	{
		channels.POST("", h.create)
		channels.GET("", h.listPublic)
	}
}

type createChannelRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsPublic    *bool  `json:"is_public"`
	CostToJoin  int    `json:"cost_to_join"`
}

// @Summary Create a channel
// @Tags channels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body createChannelRequest true "Channel"
// @Success 201 {object} map[string]interface{} "Created channel"
// @Failure 409 {object} middleware.ErrorResponse "Name taken"
// @Router /channels [post]
func (h *ChannelHandler) create(c *gin.Context) {
	user, ok := authmiddleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	channel, err := h.service.Create(c.Request.Context(), user, req.Name, req.Description, isPublic, req.CostToJoin)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"channel": channel})
}

// @Summary List public channels
// @Tags channels
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Public channels"
// @Router /channels [get]
func (h *ChannelHandler) listPublic(c *gin.Context) {
	channels, err := h.service.ListPublic(c.Request.Context())
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"channels": channels})
}
