package operation

import (
	"context"
	"time"

	"github.com/Amanar-Marouane/card-watchdog/internal/pkg"

	"github.com/oklog/ulid/v2"
)

// ListFilter restringe consultas de histórico. Campos zero são ignorados.
type ListFilter struct {
	Type OperationType
	From time.Time
	To   time.Time
}

type Repository interface {
	Create(ctx context.Context, op *CardOperation) error
	GetByCardId(ctx context.Context, cardID ulid.ULID) ([]*CardOperation, error)
	List(ctx context.Context, cardID ulid.ULID, filter *ListFilter, pagination *pkg.PaginationParams) ([]*CardOperation, int64, error)
}
