package operation

import (
	"context"
	"time"

	"github.com/Amanar-Marouane/card-watchdog/internal/domain/card"
	appErrors "github.com/Amanar-Marouane/card-watchdog/internal/errors"
)

// checkOperationLimit decide se amount é admissível para o cartão dado o
// histórico ops. Despacha sobre a variante do cartão. Igualdade com o
// limite passa; apenas estritamente acima recusa.
//
// Para PREPAID o sucesso consome saldo: o decremento é persistido aqui,
// via delta atômico no repositório de cartões.
func (s *Service) checkOperationLimit(ctx context.Context, c *card.Card, ops []*CardOperation, amount float64, now time.Time) error {
	switch c.Type {
	case card.TypeDebit:
		return checkDailyLimit(c, ops, amount, now)
	case card.TypeCredit:
		return checkMonthlyLimit(c, ops, amount, now)
	case card.TypePrepaid:
		return s.consumePrepaidBalance(ctx, c, amount)
	}
	return nil
}

func checkDailyLimit(c *card.Card, ops []*CardOperation, amount float64, now time.Time) error {
	total := amount
	for _, op := range ops {
		if sameDay(op.Date, now) {
			total += op.Amount
		}
	}

	if total > c.DailyLimit {
		return appErrors.ErrLimitExceeded.WithDetails(map[string]interface{}{
			"limit":  c.DailyLimit,
			"window": "daily",
		})
	}
	return nil
}

func checkMonthlyLimit(c *card.Card, ops []*CardOperation, amount float64, now time.Time) error {
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	total := amount
	for _, op := range ops {
		if !op.Date.Before(startOfMonth) {
			total += op.Amount
		}
	}

	if total > c.MonthlyLimit {
		return appErrors.ErrLimitExceeded.WithDetails(map[string]interface{}{
			"limit":  c.MonthlyLimit,
			"window": "monthly",
		})
	}
	return nil
}

func (s *Service) consumePrepaidBalance(ctx context.Context, c *card.Card, amount float64) error {
	if amount > c.AvailableBalance {
		return appErrors.ErrInsufficientBalance.WithDetails(map[string]interface{}{
			"available": c.AvailableBalance,
		})
	}

	if err := s.CardRepository.UpdateAvailableBalance(ctx, c.Id, -amount); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	c.AvailableBalance -= amount

	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
