package operation

import (
	"context"
	"time"

	"github.com/Amanar-Marouane/card-watchdog/internal/domain/card"
	appErrors "github.com/Amanar-Marouane/card-watchdog/internal/errors"
	"github.com/Amanar-Marouane/card-watchdog/internal/logger"
	"github.com/Amanar-Marouane/card-watchdog/internal/pkg"

	"github.com/oklog/ulid/v2"
)

// FraudChecker é o ponto de entrada do motor de heurísticas, consumido
// pelo pipeline de forma síncrona antes de persistir a operação.
type FraudChecker interface {
	CheckForFraud(ctx context.Context, c *card.Card, op *CardOperation) (bool, error)
}

type Service struct {
	Repository     Repository
	CardRepository card.Repository
	FraudChecker   FraudChecker
}

func NewService(repo Repository, cardRepo card.Repository, checker FraudChecker) *Service {
	return &Service{
		Repository:     repo,
		CardRepository: cardRepo,
		FraudChecker:   checker,
	}
}

type AuthorizeRequest struct {
	CardId   ulid.ULID
	Amount   float64
	Type     OperationType
	Location string

	// Date é o instante da operação. Zero usa o relógio do serviço.
	Date time.Time
}

// Authorize executa o pipeline de autorização: carrega o cartão, aplica o
// gate de status, o avaliador de limite e o motor de fraude, e só então
// persiste a operação. Qualquer falha recusa a transação com o motivo
// tipado correspondente.
func (s *Service) Authorize(ctx context.Context, req *AuthorizeRequest) (*CardOperation, error) {
	if req.Amount <= 0 {
		return nil, appErrors.ErrInvalidAmount
	}

	if !req.Type.IsValid() {
		return nil, appErrors.NewValidationError("type", "tipo de operação inválido")
	}

	c, err := s.CardRepository.GetById(ctx, req.CardId)
	if err != nil || c == nil {
		return nil, appErrors.ErrCardNotFound.WithError(err)
	}

	if !c.IsActive() {
		return nil, appErrors.ErrCardNotActive
	}

	now := req.Date
	if now.IsZero() {
		now = pkg.SetTimestamps()
	}

	ops, err := s.Repository.GetByCardId(ctx, c.Id)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	if err := s.checkOperationLimit(ctx, c, ops, req.Amount, now); err != nil {
		return nil, err
	}

	op := &CardOperation{
		Id:       pkg.GenerateULIDObject(),
		Date:     now,
		Amount:   req.Amount,
		Type:     req.Type,
		Location: req.Location,
		CardId:   c.Id,
	}

	if s.FraudChecker != nil {
		flagged, err := s.FraudChecker.CheckForFraud(ctx, c, op)
		if err != nil {
			return nil, err
		}
		if flagged {
			logger.Warn().
				Str("card_id", c.Id.String()).
				Float64("amount", req.Amount).
				Msg("Operação recusada pelo motor de fraude")
			return nil, appErrors.ErrFraudSuspected
		}
	}

	if err := s.Repository.Create(ctx, op); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return op, nil
}

func (s *Service) ListOperations(ctx context.Context, cardID, userID ulid.ULID, filter *ListFilter, pagination *pkg.PaginationParams) ([]*CardOperation, int64, error) {
	c, err := s.CardRepository.GetById(ctx, cardID)
	if err != nil || c == nil {
		return nil, 0, appErrors.ErrCardNotFound.WithError(err)
	}

	if c.UserId != userID {
		return nil, 0, appErrors.ErrResourceNotOwned
	}

	return s.Repository.List(ctx, cardID, filter, pagination)
}
