package fraud

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Amanar-Marouane/card-watchdog/config"
	"github.com/Amanar-Marouane/card-watchdog/internal/domain/card"
	"github.com/Amanar-Marouane/card-watchdog/internal/domain/operation"
	appErrors "github.com/Amanar-Marouane/card-watchdog/internal/errors"
	"github.com/Amanar-Marouane/card-watchdog/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type fakeAlertRepository struct {
	createFn func(ctx context.Context, alert *FraudAlert) error
	countFn  func(ctx context.Context, cardID ulid.ULID, level AlertLevel) (int64, error)
	created  []*FraudAlert
}

func (f *fakeAlertRepository) Create(ctx context.Context, alert *FraudAlert) error {
	if f.createFn != nil {
		return f.createFn(ctx, alert)
	}
	f.created = append(f.created, alert)
	return nil
}

func (f *fakeAlertRepository) GetByCardId(ctx context.Context, cardID ulid.ULID, pagination *pkg.PaginationParams) ([]*FraudAlert, int64, error) {
	return f.created, int64(len(f.created)), nil
}

func (f *fakeAlertRepository) CountByCardAndLevel(ctx context.Context, cardID ulid.ULID, level AlertLevel) (int64, error) {
	if f.countFn != nil {
		return f.countFn(ctx, cardID, level)
	}
	return 0, nil
}

type fakeCardRepository struct {
	getByIdFn      func(ctx context.Context, cardID ulid.ULID) (*card.Card, error)
	updateStatusFn func(ctx context.Context, cardID ulid.ULID, status card.CardStatus) error
	statusWrites   []card.CardStatus
}

func (f *fakeCardRepository) Create(ctx context.Context, c *card.Card) error { return nil }
func (f *fakeCardRepository) Update(ctx context.Context, c *card.Card) error { return nil }
func (f *fakeCardRepository) Delete(ctx context.Context, cardID ulid.ULID) error {
	return nil
}

func (f *fakeCardRepository) GetById(ctx context.Context, cardID ulid.ULID) (*card.Card, error) {
	if f.getByIdFn != nil {
		return f.getByIdFn(ctx, cardID)
	}
	return &card.Card{Id: cardID, Status: card.StatusActive}, nil
}

func (f *fakeCardRepository) GetByUserId(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*card.Card, int64, error) {
	return nil, 0, nil
}

func (f *fakeCardRepository) GetByStatus(ctx context.Context, status card.CardStatus) ([]*card.Card, error) {
	return nil, nil
}

func (f *fakeCardRepository) UpdateStatus(ctx context.Context, cardID ulid.ULID, status card.CardStatus) error {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, cardID, status)
	}
	f.statusWrites = append(f.statusWrites, status)
	return nil
}

func (f *fakeCardRepository) UpdateAvailableBalance(ctx context.Context, cardID ulid.ULID, delta float64) error {
	return nil
}

type fakeOperationRepository struct {
	getByCardIdFn func(ctx context.Context, cardID ulid.ULID) ([]*operation.CardOperation, error)
	calls         int
}

func (f *fakeOperationRepository) Create(ctx context.Context, op *operation.CardOperation) error {
	return nil
}

func (f *fakeOperationRepository) GetByCardId(ctx context.Context, cardID ulid.ULID) ([]*operation.CardOperation, error) {
	f.calls++
	if f.getByCardIdFn != nil {
		return f.getByCardIdFn(ctx, cardID)
	}
	return nil, nil
}

func (f *fakeOperationRepository) List(ctx context.Context, cardID ulid.ULID, filter *operation.ListFilter, pagination *pkg.PaginationParams) ([]*operation.CardOperation, int64, error) {
	return nil, 0, nil
}

func testFraudConfig() config.FraudConfig {
	return config.FraudConfig{
		DebitHighAmount:    10000,
		CreditHighAmount:   20000,
		PrepaidHighAmount:  5000,
		RapidChangeWindow:  10 * time.Minute,
		BurstWindow:        2 * time.Minute,
		BurstCount:         3,
		EscalationWarnings: 2,
	}
}

func newTestEngine(alerts *fakeAlertRepository, cards *fakeCardRepository, ops *fakeOperationRepository) *Engine {
	return NewEngine(alerts, cards, ops, testFraudConfig())
}

func activeCard(cardType card.CardType) *card.Card {
	return &card.Card{
		Id:     pkg.GenerateULIDObject(),
		Type:   cardType,
		Status: card.StatusActive,
	}
}

func newOperation(c *card.Card, amount float64, location string, date time.Time) *operation.CardOperation {
	return &operation.CardOperation{
		Id:       pkg.GenerateULIDObject(),
		Date:     date,
		Amount:   amount,
		Type:     operation.TypePurchase,
		Location: location,
		CardId:   c.Id,
	}
}

func TestEngineHighAmount(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name        string
		cardType    card.CardType
		amount      float64
		wantFlagged bool
		wantLevel   AlertLevel
		wantStatus  card.CardStatus
	}{
		{
			name:        "debito acima do limiar gera aviso",
			cardType:    card.TypeDebit,
			amount:      12000,
			wantFlagged: true,
			wantLevel:   LevelWarning,
			wantStatus:  card.StatusSuspended,
		},
		{
			name:        "debito acima de 1.5x gera critico",
			cardType:    card.TypeDebit,
			amount:      15001,
			wantFlagged: true,
			wantLevel:   LevelCritical,
			wantStatus:  card.StatusBlocked,
		},
		{
			name:        "valor igual ao limiar nao dispara",
			cardType:    card.TypeDebit,
			amount:      10000,
			wantFlagged: false,
		},
		{
			name:        "credito usa limiar proprio",
			cardType:    card.TypeCredit,
			amount:      20000.01,
			wantFlagged: true,
			wantLevel:   LevelWarning,
			wantStatus:  card.StatusSuspended,
		},
		{
			name:        "prepago usa limiar proprio",
			cardType:    card.TypePrepaid,
			amount:      7501,
			wantFlagged: true,
			wantLevel:   LevelCritical,
			wantStatus:  card.StatusBlocked,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			alerts := &fakeAlertRepository{}
			cards := &fakeCardRepository{}
			ops := &fakeOperationRepository{}
			engine := newTestEngine(alerts, cards, ops)

			c := activeCard(tt.cardType)
			flagged, err := engine.CheckForFraud(context.Background(), c, newOperation(c, tt.amount, "Sao Paulo", now))
			if err != nil {
				t.Fatalf("erro inesperado: %v", err)
			}

			if flagged != tt.wantFlagged {
				t.Fatalf("flagged = %v, esperado %v", flagged, tt.wantFlagged)
			}

			if !tt.wantFlagged {
				if len(alerts.created) != 0 {
					t.Fatalf("nenhum alerta esperado, criados %d", len(alerts.created))
				}
				return
			}

			if len(alerts.created) != 1 {
				t.Fatalf("esperado 1 alerta, criados %d", len(alerts.created))
			}
			if alerts.created[0].Level != tt.wantLevel {
				t.Errorf("nivel = %s, esperado %s", alerts.created[0].Level, tt.wantLevel)
			}
			if !strings.Contains(alerts.created[0].Description, "high amount transaction detected") {
				t.Errorf("descricao inesperada: %s", alerts.created[0].Description)
			}
			if len(cards.statusWrites) != 1 || cards.statusWrites[0] != tt.wantStatus {
				t.Errorf("status gravados = %v, esperado [%s]", cards.statusWrites, tt.wantStatus)
			}
		})
	}
}

func TestEngineNonActiveCard(t *testing.T) {
	t.Parallel()

	alerts := &fakeAlertRepository{}
	cards := &fakeCardRepository{}
	ops := &fakeOperationRepository{}
	engine := newTestEngine(alerts, cards, ops)

	c := activeCard(card.TypeDebit)
	c.Status = card.StatusBlocked

	flagged, err := engine.CheckForFraud(context.Background(), c, newOperation(c, 50, "Sao Paulo", time.Now()))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if !flagged {
		t.Fatal("esperado flagged para cartao nao ativo")
	}
	if ops.calls != 0 {
		t.Errorf("historico nao deveria ser consultado, %d chamadas", ops.calls)
	}
	if len(alerts.created) != 1 || alerts.created[0].Level != LevelWarning {
		t.Fatalf("esperado 1 alerta WARNING, obtido %+v", alerts.created)
	}
	if alerts.created[0].Description != "transaction attempted on non-active card" {
		t.Errorf("descricao inesperada: %s", alerts.created[0].Description)
	}
}

func TestEngineRapidGeographicalChange(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name         string
		history      func(c *card.Card) []*operation.CardOperation
		location     string
		wantFlagged  bool
		wantCritical bool
	}{
		{
			name: "local diferente dentro da janela gera critico",
			history: func(c *card.Card) []*operation.CardOperation {
				return []*operation.CardOperation{newOperation(c, 100, "Sao Paulo", now.Add(-5*time.Minute))}
			},
			location:     "Curitiba",
			wantFlagged:  true,
			wantCritical: true,
		},
		{
			name: "mesmo local dentro da janela nao dispara",
			history: func(c *card.Card) []*operation.CardOperation {
				return []*operation.CardOperation{newOperation(c, 100, "Sao Paulo", now.Add(-5*time.Minute))}
			},
			location:    "Sao Paulo",
			wantFlagged: false,
		},
		{
			name: "local diferente fora da janela nao dispara",
			history: func(c *card.Card) []*operation.CardOperation {
				return []*operation.CardOperation{newOperation(c, 100, "Sao Paulo", now.Add(-30*time.Minute))}
			},
			location:    "Curitiba",
			wantFlagged: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := activeCard(card.TypeDebit)
			alerts := &fakeAlertRepository{}
			cards := &fakeCardRepository{}
			ops := &fakeOperationRepository{
				getByCardIdFn: func(ctx context.Context, cardID ulid.ULID) ([]*operation.CardOperation, error) {
					return tt.history(c), nil
				},
			}
			engine := newTestEngine(alerts, cards, ops)

			flagged, err := engine.CheckForFraud(context.Background(), c, newOperation(c, 100, tt.location, now))
			if err != nil {
				t.Fatalf("erro inesperado: %v", err)
			}
			if flagged != tt.wantFlagged {
				t.Fatalf("flagged = %v, esperado %v", flagged, tt.wantFlagged)
			}
			if tt.wantCritical {
				if len(alerts.created) != 1 || alerts.created[0].Level != LevelCritical {
					t.Fatalf("esperado alerta CRITICAL, obtido %+v", alerts.created)
				}
				if !strings.Contains(alerts.created[0].Description, "rapid geographical change") {
					t.Errorf("descricao inesperada: %s", alerts.created[0].Description)
				}
			}
		})
	}
}

func TestEngineBurst(t *testing.T) {
	t.Parallel()

	now := time.Now()
	c := activeCard(card.TypeDebit)
	newOp := newOperation(c, 100, "Sao Paulo", now)

	t.Run("duas operacoes recentes mais a nova disparam aviso", func(t *testing.T) {
		t.Parallel()

		alerts := &fakeAlertRepository{}
		cards := &fakeCardRepository{}
		ops := &fakeOperationRepository{
			getByCardIdFn: func(ctx context.Context, cardID ulid.ULID) ([]*operation.CardOperation, error) {
				return []*operation.CardOperation{
					newOperation(c, 30, "Sao Paulo", now.Add(-30*time.Second)),
					newOperation(c, 40, "Sao Paulo", now.Add(-90*time.Second)),
				}, nil
			},
		}
		engine := newTestEngine(alerts, cards, ops)

		flagged, err := engine.CheckForFraud(context.Background(), c, newOp)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if !flagged {
			t.Fatal("esperado flagged")
		}
		if len(alerts.created) != 1 || alerts.created[0].Level != LevelWarning {
			t.Fatalf("esperado alerta WARNING, obtido %+v", alerts.created)
		}
		if !strings.Contains(alerts.created[0].Description, "3 transactions") {
			t.Errorf("descricao inesperada: %s", alerts.created[0].Description)
		}
	})

	t.Run("operacoes antigas nao contam", func(t *testing.T) {
		t.Parallel()

		alerts := &fakeAlertRepository{}
		cards := &fakeCardRepository{}
		ops := &fakeOperationRepository{
			getByCardIdFn: func(ctx context.Context, cardID ulid.ULID) ([]*operation.CardOperation, error) {
				return []*operation.CardOperation{
					newOperation(c, 30, "Sao Paulo", now.Add(-30*time.Second)),
					newOperation(c, 40, "Sao Paulo", now.Add(-5*time.Minute)),
				}, nil
			},
		}
		engine := newTestEngine(alerts, cards, ops)

		flagged, err := engine.CheckForFraud(context.Background(), c, newOp)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if flagged {
			t.Fatal("nao esperado flagged")
		}
	})

	t.Run("a propria operacao nova nao conta duas vezes", func(t *testing.T) {
		t.Parallel()

		alerts := &fakeAlertRepository{}
		cards := &fakeCardRepository{}
		ops := &fakeOperationRepository{
			getByCardIdFn: func(ctx context.Context, cardID ulid.ULID) ([]*operation.CardOperation, error) {
				return []*operation.CardOperation{
					newOp,
					newOperation(c, 30, "Sao Paulo", now.Add(-30*time.Second)),
				}, nil
			},
		}
		engine := newTestEngine(alerts, cards, ops)

		flagged, err := engine.CheckForFraud(context.Background(), c, newOp)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if flagged {
			t.Fatal("nao esperado flagged quando a propria operacao esta no historico")
		}
	})
}

func TestEngineEscalation(t *testing.T) {
	t.Parallel()

	now := time.Now()

	t.Run("dois avisos acumulados disparam escalada isolada", func(t *testing.T) {
		t.Parallel()

		alerts := &fakeAlertRepository{
			countFn: func(ctx context.Context, cardID ulid.ULID, level AlertLevel) (int64, error) {
				return 2, nil
			},
		}
		cards := &fakeCardRepository{}
		ops := &fakeOperationRepository{}
		engine := newTestEngine(alerts, cards, ops)

		c := activeCard(card.TypeDebit)
		flagged, err := engine.CheckForFraud(context.Background(), c, newOperation(c, 50, "Sao Paulo", now))
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if !flagged {
			t.Fatal("esperado flagged por escalada")
		}
		if len(alerts.created) != 1 || alerts.created[0].Level != LevelCritical {
			t.Fatalf("esperado alerta CRITICAL, obtido %+v", alerts.created)
		}
		if alerts.created[0].Description != "multiple warnings detected" {
			t.Errorf("descricao inesperada: %s", alerts.created[0].Description)
		}
		if len(cards.statusWrites) != 1 || cards.statusWrites[0] != card.StatusBlocked {
			t.Errorf("esperado bloqueio, status gravados %v", cards.statusWrites)
		}
	})

	t.Run("aviso da avaliacao atual e promovido a escalada", func(t *testing.T) {
		t.Parallel()

		alerts := &fakeAlertRepository{
			countFn: func(ctx context.Context, cardID ulid.ULID, level AlertLevel) (int64, error) {
				return 2, nil
			},
		}
		cards := &fakeCardRepository{}
		ops := &fakeOperationRepository{}
		engine := newTestEngine(alerts, cards, ops)

		// 12000 em debito produziria apenas um aviso.
		c := activeCard(card.TypeDebit)
		flagged, err := engine.CheckForFraud(context.Background(), c, newOperation(c, 12000, "Sao Paulo", now))
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if !flagged {
			t.Fatal("esperado flagged")
		}
		if len(alerts.created) != 1 || alerts.created[0].Level != LevelCritical {
			t.Fatalf("esperado escalada CRITICAL, obtido %+v", alerts.created)
		}
		if alerts.created[0].Description != "multiple warnings detected" {
			t.Errorf("descricao inesperada: %s", alerts.created[0].Description)
		}
	})

	t.Run("um unico aviso acumulado nao escala", func(t *testing.T) {
		t.Parallel()

		alerts := &fakeAlertRepository{
			countFn: func(ctx context.Context, cardID ulid.ULID, level AlertLevel) (int64, error) {
				return 1, nil
			},
		}
		cards := &fakeCardRepository{}
		ops := &fakeOperationRepository{}
		engine := newTestEngine(alerts, cards, ops)

		c := activeCard(card.TypeDebit)
		flagged, err := engine.CheckForFraud(context.Background(), c, newOperation(c, 50, "Sao Paulo", now))
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if flagged {
			t.Fatal("nao esperado flagged")
		}
	})
}

func TestEngineAlertPersistence(t *testing.T) {
	t.Parallel()

	now := time.Now()

	t.Run("cartao ausente na transicao de status mantem o alerta", func(t *testing.T) {
		t.Parallel()

		alerts := &fakeAlertRepository{}
		cards := &fakeCardRepository{
			getByIdFn: func(ctx context.Context, cardID ulid.ULID) (*card.Card, error) {
				return nil, appErrors.ErrCardNotFound
			},
		}
		ops := &fakeOperationRepository{}
		engine := newTestEngine(alerts, cards, ops)

		c := activeCard(card.TypeDebit)
		flagged, err := engine.CheckForFraud(context.Background(), c, newOperation(c, 12000, "Sao Paulo", now))
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if !flagged {
			t.Fatal("esperado flagged")
		}
		if len(alerts.created) != 1 {
			t.Fatalf("alerta deveria permanecer, criados %d", len(alerts.created))
		}
		if len(cards.statusWrites) != 0 {
			t.Errorf("nenhuma transicao esperada, gravadas %v", cards.statusWrites)
		}
	})

	t.Run("falha ao gravar alerta e propagada", func(t *testing.T) {
		t.Parallel()

		alerts := &fakeAlertRepository{
			createFn: func(ctx context.Context, alert *FraudAlert) error {
				return errors.New("conexao recusada")
			},
		}
		cards := &fakeCardRepository{}
		ops := &fakeOperationRepository{}
		engine := newTestEngine(alerts, cards, ops)

		c := activeCard(card.TypeDebit)
		_, err := engine.CheckForFraud(context.Background(), c, newOperation(c, 12000, "Sao Paulo", now))
		if err == nil {
			t.Fatal("esperado erro")
		}
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != "DATABASE_ERROR" {
			t.Fatalf("esperado DATABASE_ERROR, obtido %v", err)
		}
	})
}
