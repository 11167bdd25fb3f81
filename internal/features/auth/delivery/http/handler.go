package http

import (
	"net/http"

	"gslase-backend/internal/common/middleware"
	authmiddleware "gslase-backend/internal/features/auth/middleware"
	"gslase-backend/internal/features/auth/session"
	userservice "gslase-backend/internal/features/user/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users    userservice.UserService
	sessions *session.Store
}

func NewAuthHandler(users userservice.UserService, sessions *session.Store) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}
}

// RegisterProtectedRoutes wires the routes that need a live session.
func (h *AuthHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.POST("/auth/logout", h.logout)
}

type registerRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// @Summary Register a new account
// @Description Creates a user, sends the bot welcome message and opens a session.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "Registration data"
// @Success 201 {object} map[string]interface{} "Token and user"
// @Failure 400 {object} middleware.ErrorResponse "Validation error"
// @Failure 409 {object} middleware.ErrorResponse "Username or email taken"
// @Router /auth/register [post]
func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	// Registration doubles as login.
	token, err := h.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  user.Response(),
	})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} map[string]interface{} "Token and user"
// @Failure 401 {object} middleware.ErrorResponse "Invalid credentials"
// @Failure 403 {object} middleware.ErrorResponse "Account banned"
// @Router /auth/login [post]
func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	token, err := h.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user.Response(),
	})
}

// @Summary Log out
// @Tags auth
// @Security BearerAuth
// @Success 204 "Session destroyed"
// @Router /auth/logout [post]
func (h *AuthHandler) logout(c *gin.Context) {
	if _, ok := authmiddleware.CurrentUser(c); !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	token := c.GetHeader("Authorization")
	if len(token) > len("Bearer ") {
		token = token[len("Bearer "):]
	}
	if err := h.sessions.Destroy(c.Request.Context(), token); err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
