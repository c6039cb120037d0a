package contracts

import "github.com/Amanar-Marouane/card-watchdog/internal/domain/card"

type CardIssueRequest struct {
	Type         string  `json:"type" binding:"required,oneof=DEBIT CREDIT PREPAID"`
	Limit        float64 `json:"limit" binding:"required,gt=0"`
	InterestRate float64 `json:"interest_rate" binding:"omitempty,gte=0"`
}

type CardCreateResponse struct {
	Message string     `json:"message"`
	Card    *card.Card `json:"card"`
}

type CardSingleResponse struct {
	Card *card.Card `json:"card"`
}

type CardStatusResponse struct {
	Message string `json:"message"`
}
