package card

import (
	"context"
	"time"

	"github.com/Amanar-Marouane/card-watchdog/internal/domain/user"
	appErrors "github.com/Amanar-Marouane/card-watchdog/internal/errors"
	"github.com/Amanar-Marouane/card-watchdog/internal/logger"
	"github.com/Amanar-Marouane/card-watchdog/internal/pkg"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

type Service struct {
	Repository  Repository
	UserService *user.Service
}

func NewService(repo Repository, userSvc *user.Service) *Service {
	return &Service{Repository: repo, UserService: userSvc}
}

type IssueCardRequest struct {
	UserId ulid.ULID
	Type   CardType

	// Limite da variante. Interpretação depende de Type: limite diário
	// (DEBIT), limite mensal (CREDIT) ou saldo inicial (PREPAID).
	Limit        float64
	InterestRate float64
}

func (s *Service) IssueCard(ctx context.Context, req *IssueCardRequest) (*Card, error) {
	if err := s.ensureUserExists(ctx, req.UserId); err != nil {
		return nil, err
	}

	if !req.Type.IsValid() {
		return nil, appErrors.NewValidationError("type", "tipo de cartão inválido")
	}

	if req.Limit <= 0 {
		return nil, appErrors.NewValidationError("limit", "deve ser maior que zero")
	}

	now := pkg.SetTimestamps()
	c := &Card{
		Id:             pkg.GenerateULIDObject(),
		UserId:         req.UserId,
		CardNumber:     uuid.NewString(),
		ExpirationDate: now.AddDate(ExpirationYears, 0, 0).Format(ExpirationLayout),
		Type:           req.Type,
		Status:         StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	switch req.Type {
	case TypeDebit:
		c.DailyLimit = req.Limit
	case TypeCredit:
		c.MonthlyLimit = req.Limit
		c.InterestRate = req.InterestRate
	case TypePrepaid:
		c.AvailableBalance = req.Limit
	}

	if err := s.Repository.Create(ctx, c); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return c, nil
}

func (s *Service) GetCardById(ctx context.Context, cardID, userID ulid.ULID) (*Card, error) {
	c, err := s.Repository.GetById(ctx, cardID)
	if err != nil {
		return nil, appErrors.ErrCardNotFound.WithError(err)
	}

	if c.UserId != userID {
		return nil, appErrors.ErrResourceNotOwned
	}

	return c, nil
}

func (s *Service) ListCards(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*Card, int64, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, 0, err
	}

	return s.Repository.GetByUserId(ctx, userID, pagination)
}

func (s *Service) ActivateCard(ctx context.Context, cardID, userID ulid.ULID) error {
	return s.setStatus(ctx, cardID, userID, StatusActive)
}

func (s *Service) SuspendCard(ctx context.Context, cardID, userID ulid.ULID) error {
	return s.setStatus(ctx, cardID, userID, StatusSuspended)
}

func (s *Service) BlockCard(ctx context.Context, cardID, userID ulid.ULID) error {
	return s.setStatus(ctx, cardID, userID, StatusBlocked)
}

// RenewCard emite nova validade e reativa o cartão.
func (s *Service) RenewCard(ctx context.Context, cardID, userID ulid.ULID) (*Card, error) {
	c, err := s.GetCardById(ctx, cardID, userID)
	if err != nil {
		return nil, err
	}

	now := pkg.SetTimestamps()
	c.ExpirationDate = now.AddDate(ExpirationYears, 0, 0).Format(ExpirationLayout)
	c.Status = StatusActive
	c.UpdatedAt = now

	if err := s.Repository.Update(ctx, c); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return c, nil
}

func (s *Service) DeleteCard(ctx context.Context, cardID, userID ulid.ULID) error {
	if _, err := s.GetCardById(ctx, cardID, userID); err != nil {
		return err
	}

	if err := s.Repository.Delete(ctx, cardID); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	return nil
}

// SuspendExpiredCards suspende cartões ativos com validade vencida.
// Executado pelo agendador noturno.
func (s *Service) SuspendExpiredCards(ctx context.Context, now time.Time) (int, error) {
	active, err := s.Repository.GetByStatus(ctx, StatusActive)
	if err != nil {
		return 0, appErrors.NewDatabaseError(err)
	}

	suspended := 0
	for _, c := range active {
		if !c.IsExpired(now) {
			continue
		}
		if err := s.Repository.UpdateStatus(ctx, c.Id, StatusSuspended); err != nil {
			logger.Error().Err(err).Str("card_id", c.Id.String()).Msg("Falha ao suspender cartão expirado")
			continue
		}
		logger.Info().Str("card_id", c.Id.String()).Str("expiration", c.ExpirationDate).Msg("Cartão expirado suspenso")
		suspended++
	}

	return suspended, nil
}

func (s *Service) setStatus(ctx context.Context, cardID, userID ulid.ULID, status CardStatus) error {
	if _, err := s.GetCardById(ctx, cardID, userID); err != nil {
		return err
	}

	if err := s.Repository.UpdateStatus(ctx, cardID, status); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	return nil
}

func (s *Service) ensureUserExists(ctx context.Context, userID ulid.ULID) error {
	if s.UserService == nil {
		return nil
	}
	if _, err := s.UserService.GetByID(ctx, userID); err != nil {
		return appErrors.ErrUserNotFound.WithError(err)
	}
	return nil
}
