package http

import (
	"database/sql"
	"time"

	"gslase-backend/internal/common/middleware"
	"gslase-backend/internal/config"
	adminservice "gslase-backend/internal/features/admin/service"
	authhttp "gslase-backend/internal/features/auth/delivery/http"
	authmiddleware "gslase-backend/internal/features/auth/middleware"
	"gslase-backend/internal/features/auth/session"
	channelservice "gslase-backend/internal/features/channel/service"
	chatservice "gslase-backend/internal/features/chat/service"
	invitationservice "gslase-backend/internal/features/invitation/service"
	userservice "gslase-backend/internal/features/user/service"

	adminhttp "gslase-backend/internal/features/admin/delivery/http"
	channelhttp "gslase-backend/internal/features/channel/delivery/http"
	channelpg "gslase-backend/internal/features/channel/repository/postgres"
	chathttp "gslase-backend/internal/features/chat/delivery/http"
	chatpg "gslase-backend/internal/features/chat/repository/postgres"
	invitationhttp "gslase-backend/internal/features/invitation/delivery/http"
	invitationpg "gslase-backend/internal/features/invitation/repository/postgres"
	userhttp "gslase-backend/internal/features/user/delivery/http"
	userpg "gslase-backend/internal/features/user/repository/postgres"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// NewRouter assembles repositories, services and handlers into the gin app.
func NewRouter(pg *sql.DB, rdb *redis.Client, cfg *config.Config) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	userRepo := userpg.NewPostgresRepository(pg)
	messageRepo := chatpg.NewMessageRepository(pg)
	chatRepo := chatpg.NewChatRepository(pg)
	invitationRepo := invitationpg.NewPostgresRepository(pg)
	channelRepo := channelpg.NewPostgresRepository(pg)

	userSvc := userservice.NewUserService(userRepo, messageRepo)
	chatSvc := chatservice.NewChatService(messageRepo, chatRepo, userRepo)
	invitationSvc := invitationservice.NewInvitationService(invitationRepo, userRepo)
	channelSvc := channelservice.NewChannelService(channelRepo)
	adminSvc := adminservice.NewAdminService(userRepo, userSvc)

	sessions := session.NewStore(rdb, cfg.Session.TTL)

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		cors.New(cors.Config{
			AllowOrigins:     []string{cfg.Server.Origin},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	api := router.Group("/api/v1")

	authHandler := authhttp.NewAuthHandler(userSvc, sessions)
	authHandler.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(authmiddleware.RequireAuth(sessions, userSvc))

	authHandler.RegisterProtectedRoutes(protected)
	userhttp.NewUserHandler(userSvc).RegisterRoutes(protected)
	chathttp.NewChatHandler(chatSvc).RegisterRoutes(protected)
	invitationhttp.NewInvitationHandler(invitationSvc).RegisterRoutes(protected)
	channelhttp.NewChannelHandler(channelSvc).RegisterRoutes(protected)
	adminhttp.NewAdminHandler(adminSvc).RegisterRoutes(protected)

	return router
}
