package routes

import (
	"net/http"
	"time"

	"github.com/Amanar-Marouane/card-watchdog/internal/contracts"
	"github.com/Amanar-Marouane/card-watchdog/internal/domain/operation"
	appErrors "github.com/Amanar-Marouane/card-watchdog/internal/errors"
	"github.com/Amanar-Marouane/card-watchdog/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) AuthorizeOperation(c *gin.Context) {
	var body contracts.OperationAuthorizeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	cardID, err := pkg.ParseULID(body.CardID)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("card_id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()

	// Autorização só sobre cartão do próprio usuário.
	if _, err := h.CardService.GetCardById(ctx, cardID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	op, err := h.OperationService.Authorize(ctx, &operation.AuthorizeRequest{
		CardId:   cardID,
		Amount:   body.Amount,
		Type:     operation.OperationType(body.Type),
		Location: body.Location,
		Date:     body.Date,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.OperationAuthorizeResponse{
		Message:   "Operação autorizada com sucesso",
		Operation: op,
	})
}

func (h *Handler) ListCardOperations(c *gin.Context) {
	cardID, userID, err := h.cardAndUser(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)
	filter := parseOperationFilter(c)

	ctx := c.Request.Context()
	ops, total, err := h.OperationService.ListOperations(ctx, cardID, userID, filter, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := pkg.NewPaginatedResponse(ops, pagination.Page, pagination.Limit, total)
	c.JSON(http.StatusOK, response)
}

func parseOperationFilter(c *gin.Context) *operation.ListFilter {
	filter := &operation.ListFilter{}

	if t := c.Query("type"); t != "" {
		filter.Type = operation.OperationType(t)
	}
	if from := c.Query("from"); from != "" {
		if parsed, err := time.Parse(time.RFC3339, from); err == nil {
			filter.From = parsed
		}
	}
	if to := c.Query("to"); to != "" {
		if parsed, err := time.Parse(time.RFC3339, to); err == nil {
			filter.To = parsed
		}
	}

	return filter
}
