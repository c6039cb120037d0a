package infrastructure

import (
	"context"
	"time"

	"github.com/Amanar-Marouane/card-watchdog/internal/domain/fraud"
	appErrors "github.com/Amanar-Marouane/card-watchdog/internal/errors"
	"github.com/Amanar-Marouane/card-watchdog/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type AlertRepository struct {
	DB *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{DB: db}
}

type fraudAlertDB struct {
	Id          string    `gorm:"type:varchar(26);primaryKey"`
	Description string    `gorm:"type:varchar(255);not null"`
	Level       string    `gorm:"type:varchar(10);not null;index:idx_fraud_alerts_level"`
	CardId      string    `gorm:"type:varchar(26);index:idx_fraud_alerts_card_id;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime;not null"`
}

func (fraudAlertDB) TableName() string {
	return "fraud_alerts"
}

func toDomainAlert(adb *fraudAlertDB) (*fraud.FraudAlert, error) {
	id, err := pkg.ParseULID(adb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	cid, err := pkg.ParseULID(adb.CardId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &fraud.FraudAlert{
		Id:          id,
		Description: adb.Description,
		Level:       fraud.AlertLevel(adb.Level),
		CardId:      cid,
		CreatedAt:   adb.CreatedAt,
	}, nil
}

func toDBAlert(a *fraud.FraudAlert) *fraudAlertDB {
	return &fraudAlertDB{
		Id:          a.Id.String(),
		Description: a.Description,
		Level:       string(a.Level),
		CardId:      a.CardId.String(),
		CreatedAt:   a.CreatedAt,
	}
}

func (r *AlertRepository) Create(ctx context.Context, alert *fraud.FraudAlert) error {
	adb := toDBAlert(alert)
	return r.DB.WithContext(ctx).Table("fraud_alerts").Create(adb).Error
}

func (r *AlertRepository) GetByCardId(ctx context.Context, cardID ulid.ULID, pagination *pkg.PaginationParams) ([]*fraud.FraudAlert, int64, error) {
	query := r.DB.WithContext(ctx).Model(&fraudAlertDB{}).Where("card_id = ?", cardID.String())
	return pkg.Paginate(query, pagination, "created_at DESC", toDomainAlert)
}

func (r *AlertRepository) CountByCardAndLevel(ctx context.Context, cardID ulid.ULID, level fraud.AlertLevel) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&fraudAlertDB{}).
		Where("card_id = ? AND level = ?", cardID.String(), string(level)).
		Count(&count).Error
	return count, err
}
