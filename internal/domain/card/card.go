package card

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Card é a união etiquetada dos três tipos de cartão. Os campos de limite
// são específicos por variante: DailyLimit (DEBIT), MonthlyLimit e
// InterestRate (CREDIT), AvailableBalance (PREPAID). Exatamente um conjunto
// é significativo por cartão; toda avaliação despacha sobre Type.
type Card struct {
	Id             ulid.ULID  `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId         ulid.ULID  `gorm:"type:varchar(26);index:idx_cards_user_id;not null" json:"userId"`
	CardNumber     string     `gorm:"type:varchar(36);uniqueIndex:idx_cards_number;not null" json:"cardNumber"`
	ExpirationDate string     `gorm:"type:varchar(7);not null" json:"expirationDate"`
	Type           CardType   `gorm:"type:varchar(10);not null;index:idx_cards_type" json:"type"`
	Status         CardStatus `gorm:"type:varchar(10);not null;index:idx_cards_status" json:"status"`

	DailyLimit       float64 `gorm:"type:decimal(15,2);not null;default:0" json:"dailyLimit,omitempty"`
	MonthlyLimit     float64 `gorm:"type:decimal(15,2);not null;default:0" json:"monthlyLimit,omitempty"`
	InterestRate     float64 `gorm:"type:decimal(5,2);not null;default:0" json:"interestRate,omitempty"`
	AvailableBalance float64 `gorm:"type:decimal(15,2);not null;default:0" json:"availableBalance,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Card) TableName() string {
	return "cards"
}

func (c *Card) IsActive() bool {
	return c.Status == StatusActive
}

// IsExpired compara o rótulo MM/yyyy com o instante informado. Um cartão
// expira no primeiro instante do mês seguinte ao impresso.
func (c *Card) IsExpired(now time.Time) bool {
	exp, err := time.Parse(ExpirationLayout, c.ExpirationDate)
	if err != nil {
		return false
	}
	return !now.Before(exp.AddDate(0, 1, 0))
}
