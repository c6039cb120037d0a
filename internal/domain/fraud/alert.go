package fraud

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// FraudAlert é o registro de auditoria criado quando uma heurística
// dispara. Imutável; nunca atualizado nem removido por este núcleo.
type FraudAlert struct {
	Id          ulid.ULID  `gorm:"type:varchar(26);primaryKey" json:"id"`
	Description string     `gorm:"type:varchar(255);not null" json:"description"`
	Level       AlertLevel `gorm:"type:varchar(10);not null;index:idx_fraud_alerts_level" json:"level"`
	CardId      ulid.ULID  `gorm:"type:varchar(26);index:idx_fraud_alerts_card_id;not null" json:"cardId"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;not null" json:"createdAt"`
}

func (FraudAlert) TableName() string {
	return "fraud_alerts"
}

type AlertLevel string

const (
	LevelInfo     AlertLevel = "INFO"
	LevelWarning  AlertLevel = "WARNING"
	LevelCritical AlertLevel = "CRITICAL"
)

func (l AlertLevel) IsValid() bool {
	switch l {
	case LevelInfo, LevelWarning, LevelCritical:
		return true
	}
	return false
}
