package contracts

import "time"

type FraudCheckRequest struct {
	Amount   float64   `json:"amount" binding:"required,gt=0"`
	Type     string    `json:"type" binding:"required,oneof=PURCHASE WITHDRAWAL ONLINE_PAYMENT"`
	Location string    `json:"location" binding:"required,max=255"`
	Date     time.Time `json:"date" binding:"omitempty"`
}

type FraudCheckResponse struct {
	Flagged bool   `json:"flagged"`
	Message string `json:"message"`
}
