package fx

import (
	"github.com/Amanar-Marouane/card-watchdog/config"
	"github.com/Amanar-Marouane/card-watchdog/internal/domain/auth"
	"github.com/Amanar-Marouane/card-watchdog/internal/domain/card"
	"github.com/Amanar-Marouane/card-watchdog/internal/domain/fraud"
	"github.com/Amanar-Marouane/card-watchdog/internal/domain/operation"
	"github.com/Amanar-Marouane/card-watchdog/internal/domain/user"
	"github.com/Amanar-Marouane/card-watchdog/internal/infrastructure"

	"go.uber.org/fx"
)

// DomainModule fornece todos os services do domínio
var DomainModule = fx.Module("domain",
	fx.Provide(
		newUserService,
		newAuthService,
		newCardService,
		newFraudEngine,
		newOperationService,
	),
)

func newUserService(repo *infrastructure.UserRepository) *user.Service {
	return user.NewService(repo)
}

func newAuthService(userSvc *user.Service) *auth.Service {
	return auth.NewService(userSvc)
}

func newCardService(
	repo *infrastructure.CardRepository,
	userSvc *user.Service,
) *card.Service {
	return card.NewService(repo, userSvc)
}

func newFraudEngine(
	cfg *config.Config,
	alertRepo *infrastructure.AlertRepository,
	cardRepo *infrastructure.CardRepository,
	opRepo *infrastructure.OperationRepository,
) *fraud.Engine {
	return fraud.NewEngine(alertRepo, cardRepo, opRepo, cfg.Fraud)
}

func newOperationService(
	repo *infrastructure.OperationRepository,
	cardRepo *infrastructure.CardRepository,
	engine *fraud.Engine,
) *operation.Service {
	return operation.NewService(repo, cardRepo, engine)
}
