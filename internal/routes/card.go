package routes

import (
	"context"
	"net/http"

	"github.com/Amanar-Marouane/card-watchdog/internal/contracts"
	"github.com/Amanar-Marouane/card-watchdog/internal/domain/card"
	appErrors "github.com/Amanar-Marouane/card-watchdog/internal/errors"
	"github.com/Amanar-Marouane/card-watchdog/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

func (h *Handler) IssueCard(c *gin.Context) {
	var body contracts.CardIssueRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	req := &card.IssueCardRequest{
		UserId:       userID,
		Type:         card.CardType(body.Type),
		Limit:        body.Limit,
		InterestRate: body.InterestRate,
	}

	ctx := c.Request.Context()
	issued, err := h.CardService.IssueCard(ctx, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.CardCreateResponse{
		Message: "Cartão emitido com sucesso",
		Card:    issued,
	})
}

func (h *Handler) ListCards(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	cards, total, err := h.CardService.ListCards(ctx, userID, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := pkg.NewPaginatedResponse(cards, pagination.Page, pagination.Limit, total)
	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetCard(c *gin.Context) {
	cardID, userID, err := h.cardAndUser(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	found, err := h.CardService.GetCardById(ctx, cardID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CardSingleResponse{Card: found})
}

func (h *Handler) DeleteCard(c *gin.Context) {
	cardID, userID, err := h.cardAndUser(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.CardService.DeleteCard(ctx, cardID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CardStatusResponse{Message: "Cartão removido com sucesso"})
}

func (h *Handler) ActivateCard(c *gin.Context) {
	h.changeStatus(c, h.CardService.ActivateCard, "Cartão ativado com sucesso")
}

func (h *Handler) SuspendCard(c *gin.Context) {
	h.changeStatus(c, h.CardService.SuspendCard, "Cartão suspenso com sucesso")
}

func (h *Handler) BlockCard(c *gin.Context) {
	h.changeStatus(c, h.CardService.BlockCard, "Cartão bloqueado com sucesso")
}

func (h *Handler) RenewCard(c *gin.Context) {
	cardID, userID, err := h.cardAndUser(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	renewed, err := h.CardService.RenewCard(ctx, cardID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CardCreateResponse{
		Message: "Cartão renovado com sucesso",
		Card:    renewed,
	})
}

func (h *Handler) changeStatus(c *gin.Context, fn func(ctx context.Context, cardID, userID ulid.ULID) error, message string) {
	cardID, userID, err := h.cardAndUser(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := fn(ctx, cardID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CardStatusResponse{Message: message})
}

func (h *Handler) cardAndUser(c *gin.Context) (ulid.ULID, ulid.ULID, error) {
	cardID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		return ulid.ULID{}, ulid.ULID{}, appErrors.NewValidationError("id", "formato inválido")
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		return ulid.ULID{}, ulid.ULID{}, err
	}

	return cardID, userID, nil
}
