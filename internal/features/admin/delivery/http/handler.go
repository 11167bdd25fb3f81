package http

import (
	"net/http"

	"gslase-backend/internal/common/middleware"
	"gslase-backend/internal/features/admin/service"
	authmiddleware "gslase-backend/internal/features/auth/middleware"
	usermodels "gslase-backend/internal/features/user/models"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	service service.AdminService
}

func NewAdminHandler(service service.AdminService) *AdminHandler {
	return &AdminHandler{
		service: service,
	}
}

// RegisterRoutes wires the admin surface. Authorization lives in the service;
// these handlers only pass the acting user through.
func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	{
		admin.GET("/users", h.listUsers)
		admin.GET("/users/:username", h.userInfo)
		admin.POST("/glass", h.grantGlass)
		admin.POST("/glass/all", h.grantGlassAll)
		admin.POST("/ban", h.ban)
		admin.POST("/unban", h.unban)
		admin.POST("/password", h.resetPassword)
	}
}

// adminUserView exposes the ban state, which the public projection hides.
type adminUserView struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	GlassBalance int    `json:"glass_balance"`
	IsBanned     bool   `json:"is_banned"`
	CreatedAt    string `json:"created_at"`
}

func toAdminView(u *usermodels.User) adminUserView {
	return adminUserView{
		Username:     u.Username,
		Email:        u.Email,
		GlassBalance: u.GlassBalance,
		IsBanned:     u.IsBanned,
		CreatedAt:    u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// @Summary List all users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "All users"
// @Failure 403 {object} middleware.ErrorResponse "Not an admin"
// @Router /admin/users [get]
func (h *AdminHandler) listUsers(c *gin.Context) {
	actor, ok := authmiddleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	users, err := h.service.ListUsers(c.Request.Context(), actor)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	views := make([]adminUserView, 0, len(users))
	for _, u := range users {
		views = append(views, toAdminView(u))
	}

	c.JSON(http.StatusOK, gin.H{"users": views})
}

// @Summary Inspect a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} map[string]interface{} "Profile, balance and ban state"
// @Failure 403 {object} middleware.ErrorResponse "Not an admin"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /admin/users/{username} [get]
func (h *AdminHandler) userInfo(c *gin.Context) {
	actor, ok := authmiddleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.service.UserInfo(c.Request.Context(), actor, c.Param("username"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toAdminView(user)})
}

type grantGlassRequest struct {
	Username string `json:"username" binding:"required"`
	Amount   int    `json:"amount"`
}

// @Summary Grant glass to one user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body grantGlassRequest true "Grant"
// @Success 200 {object} map[string]interface{} "New balance"
// @Failure 403 {object} middleware.ErrorResponse "Not an admin"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /admin/glass [post]
func (h *AdminHandler) grantGlass(c *gin.Context) {
	actor, ok := authmiddleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req grantGlassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	balance, err := h.service.GrantGlass(c.Request.Context(), actor, req.Username, req.Amount)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"new_balance": balance})
}

type grantGlassAllRequest struct {
	Amount int `json:"amount"`
}

// @Summary Grant glass to every user except the bot
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body grantGlassAllRequest true "Grant"
// @Success 200 {object} map[string]interface{} "Affected count"
// @Failure 400 {object} middleware.ErrorResponse "Non-positive amount"
// @Failure 403 {object} middleware.ErrorResponse "Not an admin"
// @Router /admin/glass/all [post]
func (h *AdminHandler) grantGlassAll(c *gin.Context) {
	actor, ok := authmiddleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req grantGlassAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	affected, err := h.service.GrantGlassAll(c.Request.Context(), actor, req.Amount)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_affected": affected})
}

type banRequest struct {
	Username string `json:"username" binding:"required"`
}

// @Summary Ban a user
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param body body banRequest true "Target"
// @Success 204 "User banned"
// @Failure 403 {object} middleware.ErrorResponse "Not an admin"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /admin/ban [post]
func (h *AdminHandler) ban(c *gin.Context) {
	h.setBanned(c, true)
}

// @Summary Unban a user
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param body body banRequest true "Target"
// @Success 204 "User unbanned"
// @Failure 403 {object} middleware.ErrorResponse "Not an admin"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /admin/unban [post]
func (h *AdminHandler) unban(c *gin.Context) {
	h.setBanned(c, false)
}

func (h *AdminHandler) setBanned(c *gin.Context, banned bool) {
	actor, ok := authmiddleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req banRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	if banned {
		err = h.service.BanUser(c.Request.Context(), actor, req.Username)
	} else {
		err = h.service.UnbanUser(c.Request.Context(), actor, req.Username)
	}
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type resetPasswordRequest struct {
	Username    string `json:"username" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// @Summary Force-reset a user's password
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param body body resetPasswordRequest true "Target and new password"
// @Success 204 "Password reset"
// @Failure 403 {object} middleware.ErrorResponse "Not an admin"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /admin/password [post]
func (h *AdminHandler) resetPassword(c *gin.Context) {
	actor, ok := authmiddleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), actor, req.Username, req.NewPassword); err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
