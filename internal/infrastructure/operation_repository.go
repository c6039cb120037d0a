package infrastructure

import (
	"context"
	"time"

	"github.com/Amanar-Marouane/card-watchdog/internal/domain/operation"
	appErrors "github.com/Amanar-Marouane/card-watchdog/internal/errors"
	"github.com/Amanar-Marouane/card-watchdog/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type OperationRepository struct {
	DB *gorm.DB
}

func NewOperationRepository(db *gorm.DB) *OperationRepository {
	return &OperationRepository{DB: db}
}

type cardOperationDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey"`
	Date      time.Time `gorm:"not null;index:idx_card_operations_date"`
	Amount    float64   `gorm:"type:decimal(15,2);not null"`
	Type      string    `gorm:"type:varchar(20);not null"`
	Location  string    `gorm:"type:varchar(255);not null"`
	CardId    string    `gorm:"type:varchar(26);index:idx_card_operations_card_id;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null"`
}

func (cardOperationDB) TableName() string {
	return "card_operations"
}

func toDomainOperation(odb *cardOperationDB) (*operation.CardOperation, error) {
	id, err := pkg.ParseULID(odb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	cid, err := pkg.ParseULID(odb.CardId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &operation.CardOperation{
		Id:        id,
		Date:      odb.Date,
		Amount:    odb.Amount,
		Type:      operation.OperationType(odb.Type),
		Location:  odb.Location,
		CardId:    cid,
		CreatedAt: odb.CreatedAt,
	}, nil
}

func toDBOperation(op *operation.CardOperation) *cardOperationDB {
	return &cardOperationDB{
		Id:        op.Id.String(),
		Date:      op.Date,
		Amount:    op.Amount,
		Type:      string(op.Type),
		Location:  op.Location,
		CardId:    op.CardId.String(),
		CreatedAt: op.CreatedAt,
	}
}

func (r *OperationRepository) Create(ctx context.Context, op *operation.CardOperation) error {
	odb := toDBOperation(op)
	return r.DB.WithContext(ctx).Table("card_operations").Create(odb).Error
}

func (r *OperationRepository) GetByCardId(ctx context.Context, cardID ulid.ULID) ([]*operation.CardOperation, error) {
	var rows []cardOperationDB
	err := r.DB.WithContext(ctx).
		Where("card_id = ?", cardID.String()).
		Order("date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	ops := make([]*operation.CardOperation, 0, len(rows))
	for i := range rows {
		op, err := toDomainOperation(&rows[i])
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func (r *OperationRepository) List(ctx context.Context, cardID ulid.ULID, filter *operation.ListFilter, pagination *pkg.PaginationParams) ([]*operation.CardOperation, int64, error) {
	query := r.DB.WithContext(ctx).Model(&cardOperationDB{}).Where("card_id = ?", cardID.String())

	if filter != nil {
		if filter.Type != "" {
			query = query.Where("type = ?", string(filter.Type))
		}
		if !filter.From.IsZero() {
			query = query.Where("date >= ?", filter.From)
		}
		if !filter.To.IsZero() {
			query = query.Where("date <= ?", filter.To)
		}
	}

	return pkg.Paginate(query, pagination, "date DESC", toDomainOperation)
}
