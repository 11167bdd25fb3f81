package http

import (
	"net/http"

	"gslase-backend/internal/common/middleware"
	authmiddleware "gslase-backend/internal/features/auth/middleware"
	"gslase-backend/internal/features/user/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("/me", h.getMe)
		users.GET("/search", h.search)
		users.PUT("/me/password", h.changePassword)
	}
}

// @Summary Get current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserResponse "User data"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Router /users/me [get]
func (h *UserHandler) getMe(c *gin.Context) {
	user, ok := authmiddleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, user.Response())
}

// @Summary Search users by username
// @Description Substring match, excluding the caller and the bot. At most 10 results.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search query"
// @Success 200 {object} map[string]interface{} "Matching users"
// @Router /users/search [get]
func (h *UserHandler) search(c *gin.Context) {
	user, ok := authmiddleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	results, err := h.service.Search(c.Request.Context(), user, c.Query("q"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": results})
}

type changePasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

// @Summary Change own password
// @Tags users
// @Accept json
// @Security BearerAuth
// @Param body body changePasswordRequest true "New password"
// @Success 204 "Password changed"
// @Failure 400 {object} middleware.ErrorResponse "Validation error"
// @Router /users/me/password [put]
func (h *UserHandler) changePassword(c *gin.Context) {
	user, ok := authmiddleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.SetPassword(c.Request.Context(), user, req.NewPassword); err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
