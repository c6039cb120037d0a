package scheduler

import (
	"context"
	"time"

	"github.com/Amanar-Marouane/card-watchdog/internal/domain/card"
	"github.com/Amanar-Marouane/card-watchdog/internal/logger"

	"github.com/robfig/cron/v3"
)

// Varredura noturna às 03:00.
const expiredCardsSpec = "0 3 * * *"

type Scheduler struct {
	cron  *cron.Cron
	cards *card.Service
}

func New(cards *card.Service) *Scheduler {
	return &Scheduler{
		cron:  cron.New(),
		cards: cards,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(expiredCardsSpec, s.sweepExpiredCards); err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().Str("spec", expiredCardsSpec).Msg("Agendador iniciado")
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Agendador parado")
}

func (s *Scheduler) sweepExpiredCards() {
	suspended, err := s.cards.SuspendExpiredCards(context.Background(), time.Now())
	if err != nil {
		logger.Error().Err(err).Msg("Falha na varredura de cartões expirados")
		return
	}

	logger.Info().Int("suspended", suspended).Msg("Varredura de cartões expirados concluída")
}
