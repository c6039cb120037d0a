package fraud

import (
	"context"

	"github.com/Amanar-Marouane/card-watchdog/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, alert *FraudAlert) error
	GetByCardId(ctx context.Context, cardID ulid.ULID, pagination *pkg.PaginationParams) ([]*FraudAlert, int64, error)
	CountByCardAndLevel(ctx context.Context, cardID ulid.ULID, level AlertLevel) (int64, error)
}
