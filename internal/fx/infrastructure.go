package fx

import (
	"github.com/Amanar-Marouane/card-watchdog/config"
	"github.com/Amanar-Marouane/card-watchdog/internal/infrastructure"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		newUserRepository,
		newCardRepository,
		newOperationRepository,
		newAlertRepository,
	),
)

func newDatabase(cfg *config.Config) (*gorm.DB, error) {
	return infrastructure.NewDb(cfg)
}

func newUserRepository(db *gorm.DB) *infrastructure.UserRepository {
	return infrastructure.NewUserRepository(db)
}

func newCardRepository(db *gorm.DB) *infrastructure.CardRepository {
	return infrastructure.NewCardRepository(db)
}

func newOperationRepository(db *gorm.DB) *infrastructure.OperationRepository {
	return infrastructure.NewOperationRepository(db)
}

func newAlertRepository(db *gorm.DB) *infrastructure.AlertRepository {
	return infrastructure.NewAlertRepository(db)
}
