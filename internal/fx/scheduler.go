package fx

import (
	"context"

	"github.com/Amanar-Marouane/card-watchdog/internal/domain/card"
	"github.com/Amanar-Marouane/card-watchdog/internal/scheduler"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		newScheduler,
	),
	fx.Invoke(
		registerScheduler,
	),
)

func newScheduler(cardSvc *card.Service) *scheduler.Scheduler {
	return scheduler.New(cardSvc)
}

func registerScheduler(lc fx.Lifecycle, s *scheduler.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Start()
		},
		OnStop: func(ctx context.Context) error {
			s.Stop()
			return nil
		},
	})
}
