package operation

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// CardOperation é o registro imutável de uma transação que passou pela
// autorização. Criado apenas pelo pipeline; nunca atualizado.
type CardOperation struct {
	Id       ulid.ULID     `gorm:"type:varchar(26);primaryKey" json:"id"`
	Date     time.Time     `gorm:"not null;index:idx_card_operations_date" json:"date"`
	Amount   float64       `gorm:"type:decimal(15,2);not null" json:"amount"`
	Type     OperationType `gorm:"type:varchar(20);not null" json:"type"`
	Location string        `gorm:"type:varchar(255);not null" json:"location"`
	CardId   ulid.ULID     `gorm:"type:varchar(26);index:idx_card_operations_card_id;not null" json:"cardId"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
}

func (CardOperation) TableName() string {
	return "card_operations"
}

type OperationType string

const (
	TypePurchase      OperationType = "PURCHASE"
	TypeWithdrawal    OperationType = "WITHDRAWAL"
	TypeOnlinePayment OperationType = "ONLINE_PAYMENT"
)

func (t OperationType) IsValid() bool {
	switch t {
	case TypePurchase, TypeWithdrawal, TypeOnlinePayment:
		return true
	}
	return false
}
