package card

type CardType string

const (
	TypeDebit   CardType = "DEBIT"
	TypeCredit  CardType = "CREDIT"
	TypePrepaid CardType = "PREPAID"
)

func (t CardType) IsValid() bool {
	switch t {
	case TypeDebit, TypeCredit, TypePrepaid:
		return true
	}
	return false
}

type CardStatus string

const (
	StatusActive    CardStatus = "ACTIVE"
	StatusSuspended CardStatus = "SUSPENDED"
	StatusBlocked   CardStatus = "BLOCKED"
)

func (s CardStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusSuspended, StatusBlocked:
		return true
	}
	return false
}

// ExpirationLayout é o rótulo de validade impresso no cartão (MM/yyyy).
const ExpirationLayout = "01/2006"

// ExpirationYears é a validade padrão de um cartão recém-emitido.
const ExpirationYears = 3
