package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/Amanar-Marouane/card-watchdog/config"
	"github.com/Amanar-Marouane/card-watchdog/internal/domain/user"
	appErrors "github.com/Amanar-Marouane/card-watchdog/internal/errors"
	"github.com/Amanar-Marouane/card-watchdog/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

type JwtService struct {
	secret     []byte
	expiration time.Duration
	users      *user.Service
}

func NewJwtService(cfg config.JWTConfig, users *user.Service) (*JwtService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("segredo JWT não configurado")
	}

	return &JwtService{
		secret:     []byte(cfg.Secret),
		expiration: time.Duration(cfg.ExpirationHours) * time.Hour,
		users:      users,
	}, nil
}

func (s *JwtService) GenerateToken(userID ulid.ULID) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.expiration)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", appErrors.ErrInternalServer.WithError(err)
	}
	return signed, nil
}

func (s *JwtService) parseToken(tokenString string) (ulid.ULID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.ErrUnauthorized
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return ulid.ULID{}, appErrors.ErrUnauthorized.WithError(err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return ulid.ULID{}, appErrors.ErrUnauthorized
	}

	return pkg.ParseULID(claims.Subject)
}

// AuthMiddleware valida o Bearer token e injeta o id do usuário no contexto
// da requisição como "user_id".
func AuthMiddleware(s *JwtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c)
			return
		}

		userID, err := s.parseToken(parts[1])
		if err != nil {
			abortUnauthorized(c)
			return
		}

		if _, err := s.users.GetByID(c.Request.Context(), userID); err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set("user_id", userID.String())
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	appErr := appErrors.ErrUnauthorized
	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
		"error":   appErr.Code,
		"message": appErr.Message,
	})
}
