package contracts

import (
	"time"

	"github.com/Amanar-Marouane/card-watchdog/internal/domain/operation"
)

type OperationAuthorizeRequest struct {
	CardID   string    `json:"card_id" binding:"required"`
	Amount   float64   `json:"amount" binding:"required,gt=0"`
	Type     string    `json:"type" binding:"required,oneof=PURCHASE WITHDRAWAL ONLINE_PAYMENT"`
	Location string    `json:"location" binding:"required,max=255"`
	Date     time.Time `json:"date" binding:"omitempty"`
}

type OperationAuthorizeResponse struct {
	Message   string                   `json:"message"`
	Operation *operation.CardOperation `json:"operation"`
}
