package fx

import (
	"context"
	"time"

	"github.com/Amanar-Marouane/card-watchdog/config"
	"github.com/Amanar-Marouane/card-watchdog/internal/logger"
	"github.com/Amanar-Marouane/card-watchdog/internal/middleware"
	"github.com/Amanar-Marouane/card-watchdog/internal/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// ServerModule fornece a configuração do servidor HTTP
var ServerModule = fx.Module("server",
	fx.Provide(
		newRouter,
	),
	fx.Invoke(
		setupRoutes,
	),
)

func newRouter(cfg *config.Config) *gin.Engine {
	if cfg.App.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	return gin.Default()
}

func setupRoutes(
	lc fx.Lifecycle,
	cfg *config.Config,
	router *gin.Engine,
	handler *routes.Handler,
	jwtSvc *middleware.JwtService,
	authRateLimiter *middleware.RateLimiter,
) {
	router.Use(middleware.CORSMiddleware())

	public := router.Group("/api")
	public.Use(middleware.RateLimit(authRateLimiter))
	{
		public.POST("/auth/register", handler.Register)
		public.POST("/auth/login", handler.Login)
	}

	private := router.Group("/api")
	private.Use(middleware.AuthMiddleware(jwtSvc))
	private.Use(middleware.RateLimitByUser(100, time.Minute))
	{
		cards := private.Group("/cards")
		{
			cards.POST("", handler.IssueCard)
			cards.GET("", handler.ListCards)
			cards.GET("/:id", handler.GetCard)
			cards.DELETE("/:id", handler.DeleteCard)
			cards.POST("/:id/activate", handler.ActivateCard)
			cards.POST("/:id/suspend", handler.SuspendCard)
			cards.POST("/:id/block", handler.BlockCard)
			cards.POST("/:id/renew", handler.RenewCard)
			cards.GET("/:id/operations", handler.ListCardOperations)
			cards.GET("/:id/alerts", handler.ListCardAlerts)
			cards.POST("/:id/fraud-check", handler.CheckFraud)
		}

		private.POST("/operations", handler.AuthorizeOperation)
	}

	serverAddr := ":" + cfg.Server.Port
	logger.Info().
		Str("address", serverAddr).
		Str("environment", cfg.App.Environment).
		Msg("Servidor iniciando")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := router.Run(serverAddr); err != nil {
					logger.Fatal().Err(err).Msg("Falha ao iniciar servidor")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Servidor parando...")
			return nil
		},
	})
}
