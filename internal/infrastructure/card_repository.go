package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/Amanar-Marouane/card-watchdog/internal/domain/card"
	appErrors "github.com/Amanar-Marouane/card-watchdog/internal/errors"
	"github.com/Amanar-Marouane/card-watchdog/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type CardRepository struct {
	DB *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{DB: db}
}

type cardDB struct {
	Id               string    `gorm:"type:varchar(26);primaryKey"`
	UserId           string    `gorm:"type:varchar(26);index:idx_cards_user_id;not null"`
	CardNumber       string    `gorm:"type:varchar(36);uniqueIndex:idx_cards_number;not null"`
	ExpirationDate   string    `gorm:"type:varchar(7);not null"`
	Type             string    `gorm:"type:varchar(10);not null;index:idx_cards_type"`
	Status           string    `gorm:"type:varchar(10);not null;index:idx_cards_status"`
	DailyLimit       float64   `gorm:"type:decimal(15,2);not null;default:0"`
	MonthlyLimit     float64   `gorm:"type:decimal(15,2);not null;default:0"`
	InterestRate     float64   `gorm:"type:decimal(5,2);not null;default:0"`
	AvailableBalance float64   `gorm:"type:decimal(15,2);not null;default:0"`
	CreatedAt        time.Time `gorm:"autoCreateTime;not null"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime;not null"`
}

func (cardDB) TableName() string {
	return "cards"
}

func toDomainCard(cdb *cardDB) (*card.Card, error) {
	id, err := pkg.ParseULID(cdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	uid, err := pkg.ParseULID(cdb.UserId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &card.Card{
		Id:               id,
		UserId:           uid,
		CardNumber:       cdb.CardNumber,
		ExpirationDate:   cdb.ExpirationDate,
		Type:             card.CardType(cdb.Type),
		Status:           card.CardStatus(cdb.Status),
		DailyLimit:       cdb.DailyLimit,
		MonthlyLimit:     cdb.MonthlyLimit,
		InterestRate:     cdb.InterestRate,
		AvailableBalance: cdb.AvailableBalance,
		CreatedAt:        cdb.CreatedAt,
		UpdatedAt:        cdb.UpdatedAt,
	}, nil
}

func toDBCard(c *card.Card) *cardDB {
	return &cardDB{
		Id:               c.Id.String(),
		UserId:           c.UserId.String(),
		CardNumber:       c.CardNumber,
		ExpirationDate:   c.ExpirationDate,
		Type:             string(c.Type),
		Status:           string(c.Status),
		DailyLimit:       c.DailyLimit,
		MonthlyLimit:     c.MonthlyLimit,
		InterestRate:     c.InterestRate,
		AvailableBalance: c.AvailableBalance,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func (r *CardRepository) Create(ctx context.Context, c *card.Card) error {
	cdb := toDBCard(c)
	return r.DB.WithContext(ctx).Table("cards").Create(cdb).Error
}

func (r *CardRepository) Update(ctx context.Context, c *card.Card) error {
	cdb := toDBCard(c)
	return r.DB.WithContext(ctx).Model(&cardDB{}).Where("id = ?", cdb.Id).Updates(cdb).Error
}

func (r *CardRepository) Delete(ctx context.Context, cardID ulid.ULID) error {
	result := r.DB.WithContext(ctx).Where("id = ?", cardID.String()).Delete(&cardDB{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrCardNotFound
	}
	return nil
}

func (r *CardRepository) GetById(ctx context.Context, cardID ulid.ULID) (*card.Card, error) {
	var cdb cardDB
	err := r.DB.WithContext(ctx).Where("id = ?", cardID.String()).First(&cdb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrCardNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainCard(&cdb)
}

func (r *CardRepository) GetByUserId(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*card.Card, int64, error) {
	query := r.DB.WithContext(ctx).Model(&cardDB{}).Where("user_id = ?", userID.String())
	return pkg.Paginate(query, pagination, "created_at DESC", toDomainCard)
}

func (r *CardRepository) GetByStatus(ctx context.Context, status card.CardStatus) ([]*card.Card, error) {
	var rows []cardDB
	err := r.DB.WithContext(ctx).Where("status = ?", string(status)).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	cards := make([]*card.Card, 0, len(rows))
	for i := range rows {
		c, err := toDomainCard(&rows[i])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func (r *CardRepository) UpdateStatus(ctx context.Context, cardID ulid.ULID, status card.CardStatus) error {
	result := r.DB.WithContext(ctx).Model(&cardDB{}).
		Where("id = ?", cardID.String()).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrCardNotFound
	}
	return nil
}

func (r *CardRepository) UpdateAvailableBalance(ctx context.Context, cardID ulid.ULID, delta float64) error {
	result := r.DB.WithContext(ctx).Model(&cardDB{}).
		Where("id = ?", cardID.String()).
		Update("available_balance", gorm.Expr("available_balance + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrCardNotFound
	}
	return nil
}
