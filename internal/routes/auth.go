package routes

import (
	"net/http"

	"github.com/Amanar-Marouane/card-watchdog/internal/contracts"
	appErrors "github.com/Amanar-Marouane/card-watchdog/internal/errors"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Register(c *gin.Context) {
	var body contracts.RegisterRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	u, err := h.AuthService.Register(ctx, body.Name, body.Email, body.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.JwtService.GenerateToken(u.Id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.AuthResponse{
		Message: "Usuário registrado com sucesso",
		Token:   token,
		User:    u,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var body contracts.LoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	u, err := h.AuthService.Authenticate(ctx, body.Email, body.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.JwtService.GenerateToken(u.Id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.AuthResponse{
		Message: "Login realizado com sucesso",
		Token:   token,
		User:    u,
	})
}
