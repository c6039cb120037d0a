package routes

import (
	"net/http"

	"github.com/Amanar-Marouane/card-watchdog/internal/contracts"
	"github.com/Amanar-Marouane/card-watchdog/internal/domain/operation"
	appErrors "github.com/Amanar-Marouane/card-watchdog/internal/errors"
	"github.com/Amanar-Marouane/card-watchdog/internal/pkg"

	"github.com/gin-gonic/gin"
)

// CheckFraud roda o motor de heurísticas sobre uma operação candidata sem
// passar pelo pipeline de autorização. Alertas e transições de status
// disparados aqui são persistidos normalmente.
func (h *Handler) CheckFraud(c *gin.Context) {
	cardID, userID, err := h.cardAndUser(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.FraudCheckRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	found, err := h.CardService.GetCardById(ctx, cardID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	date := body.Date
	if date.IsZero() {
		date = pkg.SetTimestamps()
	}

	candidate := &operation.CardOperation{
		Id:       pkg.GenerateULIDObject(),
		Date:     date,
		Amount:   body.Amount,
		Type:     operation.OperationType(body.Type),
		Location: body.Location,
		CardId:   cardID,
	}

	flagged, err := h.FraudEngine.CheckForFraud(ctx, found, candidate)
	if err != nil {
		h.respondError(c, err)
		return
	}

	message := "Nenhuma heurística disparou"
	if flagged {
		message = "Operação sinalizada pelo motor de fraude"
	}

	c.JSON(http.StatusOK, contracts.FraudCheckResponse{
		Flagged: flagged,
		Message: message,
	})
}

func (h *Handler) ListCardAlerts(c *gin.Context) {
	cardID, userID, err := h.cardAndUser(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()

	// Alertas só do cartão do próprio usuário.
	if _, err := h.CardService.GetCardById(ctx, cardID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)
	alerts, total, err := h.FraudEngine.ListAlerts(ctx, cardID, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := pkg.NewPaginatedResponse(alerts, pagination.Page, pagination.Limit, total)
	c.JSON(http.StatusOK, response)
}
