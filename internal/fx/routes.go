package fx

import (
	"time"

	"github.com/Amanar-Marouane/card-watchdog/internal/domain/auth"
	"github.com/Amanar-Marouane/card-watchdog/internal/domain/card"
	"github.com/Amanar-Marouane/card-watchdog/internal/domain/fraud"
	"github.com/Amanar-Marouane/card-watchdog/internal/domain/operation"
	"github.com/Amanar-Marouane/card-watchdog/internal/domain/user"
	"github.com/Amanar-Marouane/card-watchdog/internal/middleware"
	"github.com/Amanar-Marouane/card-watchdog/internal/routes"

	"go.uber.org/fx"
)

// RoutesModule fornece o handler e os rate limiters
var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
		newAuthRateLimiter,
	),
)

func newHandler(
	userSvc *user.Service,
	authSvc *auth.Service,
	jwtSvc *middleware.JwtService,
	cardSvc *card.Service,
	operationSvc *operation.Service,
	engine *fraud.Engine,
) *routes.Handler {
	return &routes.Handler{
		UserService:      userSvc,
		AuthService:      authSvc,
		JwtService:       jwtSvc,
		CardService:      cardSvc,
		OperationService: operationSvc,
		FraudEngine:      engine,
	}
}

func newAuthRateLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(100, time.Minute)
}
