package fraud

import (
	"context"
	"fmt"
	"math"

	"github.com/Amanar-Marouane/card-watchdog/config"
	"github.com/Amanar-Marouane/card-watchdog/internal/domain/card"
	"github.com/Amanar-Marouane/card-watchdog/internal/domain/operation"
	appErrors "github.com/Amanar-Marouane/card-watchdog/internal/errors"
	"github.com/Amanar-Marouane/card-watchdog/internal/logger"
	"github.com/Amanar-Marouane/card-watchdog/internal/pkg"

	"github.com/oklog/ulid/v2"
)

// Engine executa a sequência fixa de heurísticas de fraude sobre uma
// operação proposta. As verificações rodam em ordem e a avaliação
// interrompe na primeira que dispara; cada disparo produz exatamente um
// alerta e uma transição de status no cartão.
//
// A gravação alerta→status não é atômica: uma falha entre as duas deixa o
// alerta registrado sem a transição. Janela aceita, sem compensação.
type Engine struct {
	Alerts     Repository
	Cards      card.Repository
	Operations operation.Repository
	Config     config.FraudConfig
}

func NewEngine(alerts Repository, cards card.Repository, ops operation.Repository, cfg config.FraudConfig) *Engine {
	return &Engine{
		Alerts:     alerts,
		Cards:      cards,
		Operations: ops,
		Config:     cfg,
	}
}

// finding é o resultado de uma heurística que disparou nesta avaliação.
// Não é persistido; vira um FraudAlert via raiseAlert.
type finding struct {
	description string
	level       AlertLevel
}

// CanProcess responde se o cartão admite operações, sem rodar a
// avaliação completa.
func (e *Engine) CanProcess(c *card.Card) bool {
	return c.Status == card.StatusActive
}

// CheckForFraud avalia a operação proposta contra o histórico do cartão.
// Devolve true quando alguma heurística disparou; nesse caso o alerta já
// foi gravado e o status do cartão já foi atualizado.
func (e *Engine) CheckForFraud(ctx context.Context, c *card.Card, newOp *operation.CardOperation) (bool, error) {
	f, err := e.evaluate(ctx, c, newOp)
	if err != nil {
		return false, err
	}
	if f == nil {
		return false, nil
	}

	// Escalada supera um AVISO produzido nesta mesma avaliação: se o
	// cartão já acumula avisos suficientes, o que seria mais um AVISO
	// sai como escalada crítica.
	if f.level == LevelWarning {
		escalated, err := e.escalationFinding(ctx, c.Id)
		if err != nil {
			return false, err
		}
		if escalated != nil {
			f = escalated
		}
	}

	if err := e.raiseAlert(ctx, f, c.Id); err != nil {
		return false, err
	}

	return true, nil
}

func (e *Engine) evaluate(ctx context.Context, c *card.Card, newOp *operation.CardOperation) (*finding, error) {
	if !e.CanProcess(c) {
		return &finding{
			description: "transaction attempted on non-active card",
			level:       LevelWarning,
		}, nil
	}

	if f := e.checkHighAmount(c, newOp.Amount); f != nil {
		return f, nil
	}

	history, err := e.Operations.GetByCardId(ctx, c.Id)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	if f := e.checkRapidGeographicalChange(history, newOp); f != nil {
		return f, nil
	}

	if f := e.checkBurst(history, newOp); f != nil {
		return f, nil
	}

	return e.escalationFinding(ctx, c.Id)
}

func (e *Engine) checkHighAmount(c *card.Card, amount float64) *finding {
	var threshold float64
	switch c.Type {
	case card.TypeDebit:
		threshold = e.Config.DebitHighAmount
	case card.TypeCredit:
		threshold = e.Config.CreditHighAmount
	case card.TypePrepaid:
		threshold = e.Config.PrepaidHighAmount
	default:
		threshold = e.Config.DebitHighAmount
	}

	if amount <= threshold {
		return nil
	}

	level := LevelWarning
	if amount > threshold*1.5 {
		level = LevelCritical
	}

	return &finding{
		description: fmt.Sprintf("high amount transaction detected: %.2f (threshold: %.2f)", amount, threshold),
		level:       level,
	}
}

func (e *Engine) checkRapidGeographicalChange(history []*operation.CardOperation, newOp *operation.CardOperation) *finding {
	for _, op := range history {
		if op.Location == newOp.Location {
			continue
		}

		diff := newOp.Date.Sub(op.Date)
		if diff < 0 {
			diff = -diff
		}
		if diff < e.Config.RapidChangeWindow {
			return &finding{
				description: fmt.Sprintf("rapid geographical change: %s to %s in %d minutes",
					op.Location, newOp.Location, int(math.Abs(diff.Minutes()))),
				level: LevelCritical,
			}
		}
	}
	return nil
}

func (e *Engine) checkBurst(history []*operation.CardOperation, newOp *operation.CardOperation) *finding {
	cutoff := newOp.Date.Add(-e.Config.BurstWindow)

	count := 0
	for _, op := range history {
		if op.Id == newOp.Id {
			continue
		}
		if op.Date.After(cutoff) {
			count++
		}
	}

	if count+1 >= e.Config.BurstCount {
		return &finding{
			description: fmt.Sprintf("%d transactions in under %d minutes",
				count+1, int(e.Config.BurstWindow.Minutes())),
			level: LevelWarning,
		}
	}
	return nil
}

func (e *Engine) escalationFinding(ctx context.Context, cardID ulid.ULID) (*finding, error) {
	warnings, err := e.Alerts.CountByCardAndLevel(ctx, cardID, LevelWarning)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	if warnings >= int64(e.Config.EscalationWarnings) {
		return &finding{
			description: "multiple warnings detected",
			level:       LevelCritical,
		}, nil
	}
	return nil, nil
}

// raiseAlert grava o alerta e aplica a transição de status correspondente:
// WARNING suspende, CRITICAL bloqueia, INFO não altera status. A transição
// é uma sobrescrita incondicional do status atual.
func (e *Engine) raiseAlert(ctx context.Context, f *finding, cardID ulid.ULID) error {
	alert := &FraudAlert{
		Id:          pkg.GenerateULIDObject(),
		Description: f.description,
		Level:       f.level,
		CardId:      cardID,
		CreatedAt:   pkg.SetTimestamps(),
	}

	if err := e.Alerts.Create(ctx, alert); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	var next card.CardStatus
	switch f.level {
	case LevelWarning:
		next = card.StatusSuspended
	case LevelCritical:
		next = card.StatusBlocked
	default:
		return nil
	}

	if _, err := e.Cards.GetById(ctx, cardID); err != nil {
		// Alerta permanece; transição de status é descartada em silêncio.
		logger.Warn().
			Err(err).
			Str("card_id", cardID.String()).
			Msg("Cartão não encontrado para transição de status; alerta mantido")
		return nil
	}

	if err := e.Cards.UpdateStatus(ctx, cardID, next); err != nil {
		logger.Error().
			Err(err).
			Str("card_id", cardID.String()).
			Str("status", string(next)).
			Msg("Falha ao aplicar transição de status após alerta")
		return nil
	}

	logger.Warn().
		Str("card_id", cardID.String()).
		Str("level", string(f.level)).
		Str("status", string(next)).
		Str("description", f.description).
		Msg("Alerta de fraude registrado")

	return nil
}

// ListAlerts expõe o histórico de alertas de um cartão.
func (e *Engine) ListAlerts(ctx context.Context, cardID ulid.ULID, pagination *pkg.PaginationParams) ([]*FraudAlert, int64, error) {
	return e.Alerts.GetByCardId(ctx, cardID, pagination)
}
