package auth

import (
	"context"

	"github.com/Amanar-Marouane/card-watchdog/internal/domain/user"
	appErrors "github.com/Amanar-Marouane/card-watchdog/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	UserService *user.Service
}

func NewService(userSvc *user.Service) *Service {
	return &Service{UserService: userSvc}
}

func (s *Service) Register(ctx context.Context, name, email, password string) (*user.User, error) {
	u := &user.User{
		Name:     name,
		Email:    email,
		Password: password,
	}
	if err := s.UserService.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate valida as credenciais e devolve o usuário. A emissão do
// token fica a cargo do JwtService no handler.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	u, err := s.UserService.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	return u, nil
}
