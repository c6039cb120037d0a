package card

import (
	"context"

	"github.com/Amanar-Marouane/card-watchdog/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, card *Card) error
	Update(ctx context.Context, card *Card) error
	Delete(ctx context.Context, cardID ulid.ULID) error
	GetById(ctx context.Context, cardID ulid.ULID) (*Card, error)
	GetByUserId(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*Card, int64, error)
	GetByStatus(ctx context.Context, status CardStatus) ([]*Card, error)
	UpdateStatus(ctx context.Context, cardID ulid.ULID, status CardStatus) error
	// UpdateAvailableBalance aplica um delta atômico ao saldo de um cartão
	// pré-pago (UPDATE ... SET available_balance = available_balance + ?).
	UpdateAvailableBalance(ctx context.Context, cardID ulid.ULID, delta float64) error
}
