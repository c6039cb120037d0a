package card

import (
	"context"
	"testing"
	"time"

	appErrors "github.com/Amanar-Marouane/card-watchdog/internal/errors"
	"github.com/Amanar-Marouane/card-watchdog/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type fakeRepository struct {
	getByIdFn     func(ctx context.Context, cardID ulid.ULID) (*Card, error)
	getByStatusFn func(ctx context.Context, status CardStatus) ([]*Card, error)
	created       []*Card
	updated       []*Card
	deleted       []ulid.ULID
	statusWrites  map[ulid.ULID]CardStatus
}

func (f *fakeRepository) Create(ctx context.Context, c *Card) error {
	f.created = append(f.created, c)
	return nil
}

func (f *fakeRepository) Update(ctx context.Context, c *Card) error {
	f.updated = append(f.updated, c)
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, cardID ulid.ULID) error {
	f.deleted = append(f.deleted, cardID)
	return nil
}

func (f *fakeRepository) GetById(ctx context.Context, cardID ulid.ULID) (*Card, error) {
	if f.getByIdFn != nil {
		return f.getByIdFn(ctx, cardID)
	}
	return nil, appErrors.ErrCardNotFound
}

func (f *fakeRepository) GetByUserId(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*Card, int64, error) {
	return nil, 0, nil
}

func (f *fakeRepository) GetByStatus(ctx context.Context, status CardStatus) ([]*Card, error) {
	if f.getByStatusFn != nil {
		return f.getByStatusFn(ctx, status)
	}
	return nil, nil
}

func (f *fakeRepository) UpdateStatus(ctx context.Context, cardID ulid.ULID, status CardStatus) error {
	if f.statusWrites == nil {
		f.statusWrites = make(map[ulid.ULID]CardStatus)
	}
	f.statusWrites[cardID] = status
	return nil
}

func (f *fakeRepository) UpdateAvailableBalance(ctx context.Context, cardID ulid.ULID, delta float64) error {
	return nil
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	appErr, ok := appErrors.AsAppError(err)
	if !ok {
		t.Fatalf("esperado AppError %s, obtido %v", code, err)
	}
	if appErr.Code != code {
		t.Fatalf("codigo = %s, esperado %s", appErr.Code, code)
	}
}

func TestIssueCard(t *testing.T) {
	t.Parallel()

	userID := pkg.GenerateULIDObject()

	tests := []struct {
		name  string
		req   *IssueCardRequest
		check func(t *testing.T, c *Card)
	}{
		{
			name: "debito recebe limite diario",
			req:  &IssueCardRequest{UserId: userID, Type: TypeDebit, Limit: 1000},
			check: func(t *testing.T, c *Card) {
				if c.DailyLimit != 1000 {
					t.Errorf("limite diario = %.2f, esperado 1000", c.DailyLimit)
				}
				if c.MonthlyLimit != 0 || c.AvailableBalance != 0 {
					t.Errorf("campos das outras variantes deveriam ficar zerados")
				}
			},
		},
		{
			name: "credito recebe limite mensal e juros",
			req:  &IssueCardRequest{UserId: userID, Type: TypeCredit, Limit: 5000, InterestRate: 2.5},
			check: func(t *testing.T, c *Card) {
				if c.MonthlyLimit != 5000 || c.InterestRate != 2.5 {
					t.Errorf("credito = %.2f/%.2f, esperado 5000/2.5", c.MonthlyLimit, c.InterestRate)
				}
			},
		},
		{
			name: "prepago recebe saldo inicial",
			req:  &IssueCardRequest{UserId: userID, Type: TypePrepaid, Limit: 300},
			check: func(t *testing.T, c *Card) {
				if c.AvailableBalance != 300 {
					t.Errorf("saldo = %.2f, esperado 300", c.AvailableBalance)
				}
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &fakeRepository{}
			svc := NewService(repo, nil)

			c, err := svc.IssueCard(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("erro inesperado: %v", err)
			}

			if len(repo.created) != 1 {
				t.Fatalf("esperado 1 cartao criado, obtidos %d", len(repo.created))
			}
			if c.Status != StatusActive {
				t.Errorf("status = %s, esperado ACTIVE", c.Status)
			}
			if c.CardNumber == "" {
				t.Errorf("numero do cartao nao deveria ser vazio")
			}
			if _, err := time.Parse(ExpirationLayout, c.ExpirationDate); err != nil {
				t.Errorf("validade %q fora do formato MM/yyyy", c.ExpirationDate)
			}
			tt.check(t, c)
		})
	}
}

func TestIssueCardValidation(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeRepository{}, nil)
	userID := pkg.GenerateULIDObject()

	t.Run("tipo invalido", func(t *testing.T) {
		t.Parallel()
		_, err := svc.IssueCard(context.Background(), &IssueCardRequest{UserId: userID, Type: CardType("GIFT"), Limit: 100})
		assertCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("limite nao positivo", func(t *testing.T) {
		t.Parallel()
		_, err := svc.IssueCard(context.Background(), &IssueCardRequest{UserId: userID, Type: TypeDebit, Limit: 0})
		assertCode(t, err, "VALIDATION_ERROR")
	})
}

func TestCardOwnership(t *testing.T) {
	t.Parallel()

	owner := pkg.GenerateULIDObject()
	c := &Card{Id: pkg.GenerateULIDObject(), UserId: owner, Status: StatusActive}
	repo := &fakeRepository{
		getByIdFn: func(ctx context.Context, cardID ulid.ULID) (*Card, error) {
			return c, nil
		},
	}
	svc := NewService(repo, nil)

	t.Run("dono acessa o cartao", func(t *testing.T) {
		t.Parallel()
		got, err := svc.GetCardById(context.Background(), c.Id, owner)
		if err != nil || got != c {
			t.Fatalf("esperado cartao do dono, obtido %v / %v", got, err)
		}
	})

	t.Run("outro usuario e recusado", func(t *testing.T) {
		t.Parallel()
		_, err := svc.GetCardById(context.Background(), c.Id, pkg.GenerateULIDObject())
		assertCode(t, err, "RESOURCE_NOT_OWNED")
	})
}

func TestCardLifecycle(t *testing.T) {
	t.Parallel()

	owner := pkg.GenerateULIDObject()
	c := &Card{Id: pkg.GenerateULIDObject(), UserId: owner, Status: StatusActive}
	repo := &fakeRepository{
		getByIdFn: func(ctx context.Context, cardID ulid.ULID) (*Card, error) {
			return c, nil
		},
	}
	svc := NewService(repo, nil)

	if err := svc.SuspendCard(context.Background(), c.Id, owner); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if repo.statusWrites[c.Id] != StatusSuspended {
		t.Errorf("status = %s, esperado SUSPENDED", repo.statusWrites[c.Id])
	}

	if err := svc.BlockCard(context.Background(), c.Id, owner); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if repo.statusWrites[c.Id] != StatusBlocked {
		t.Errorf("status = %s, esperado BLOCKED", repo.statusWrites[c.Id])
	}

	if err := svc.ActivateCard(context.Background(), c.Id, owner); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if repo.statusWrites[c.Id] != StatusActive {
		t.Errorf("status = %s, esperado ACTIVE", repo.statusWrites[c.Id])
	}
}

func TestRenewCard(t *testing.T) {
	t.Parallel()

	owner := pkg.GenerateULIDObject()
	c := &Card{
		Id:             pkg.GenerateULIDObject(),
		UserId:         owner,
		Status:         StatusSuspended,
		ExpirationDate: "01/2024",
	}
	repo := &fakeRepository{
		getByIdFn: func(ctx context.Context, cardID ulid.ULID) (*Card, error) {
			return c, nil
		},
	}
	svc := NewService(repo, nil)

	renewed, err := svc.RenewCard(context.Background(), c.Id, owner)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if renewed.Status != StatusActive {
		t.Errorf("status = %s, esperado ACTIVE", renewed.Status)
	}
	if renewed.IsExpired(time.Now()) {
		t.Errorf("cartao renovado nao deveria estar vencido: %s", renewed.ExpirationDate)
	}
	if len(repo.updated) != 1 {
		t.Errorf("renovacao deveria persistir o cartao")
	}
}

func TestSuspendExpiredCards(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 3, 0, 0, 0, time.UTC)
	expired := &Card{Id: pkg.GenerateULIDObject(), Status: StatusActive, ExpirationDate: "06/2026"}
	current := &Card{Id: pkg.GenerateULIDObject(), Status: StatusActive, ExpirationDate: "08/2026"}

	repo := &fakeRepository{
		getByStatusFn: func(ctx context.Context, status CardStatus) ([]*Card, error) {
			return []*Card{expired, current}, nil
		},
	}
	svc := NewService(repo, nil)

	suspended, err := svc.SuspendExpiredCards(context.Background(), now)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if suspended != 1 {
		t.Errorf("suspensos = %d, esperado 1", suspended)
	}
	if repo.statusWrites[expired.Id] != StatusSuspended {
		t.Errorf("cartao vencido deveria ser suspenso")
	}
	if _, ok := repo.statusWrites[current.Id]; ok {
		t.Errorf("cartao vigente nao deveria ser tocado")
	}
}
