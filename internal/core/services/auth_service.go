package services

import (
	"context"
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/ports"
)

type AuthService struct {
	employeeRepo ports.EmployeeRepository
	sessions     ports.SessionStore
	privateKey   *rsa.PrivateKey
	tokenTTL     time.Duration
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(
	employeeRepo ports.EmployeeRepository,
	sessions ports.SessionStore,
	privateKey *rsa.PrivateKey,
	tokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		employeeRepo: employeeRepo,
		sessions:     sessions,
		privateKey:   privateKey,
		tokenTTL:     tokenTTL,
	}
}

// Login verifies the credentials, mints a signed access token and stores
// the session record as a single unit. Credential failures are collapsed
// into one error so callers cannot probe which part was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	emp, err := s.employeeRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.Password), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  fmt.Sprintf("%d", emp.ID),
		"role": string(emp.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.privateKey)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	session := domain.Session{
		Token:       token,
		EmployeeID:  emp.ID,
		DisplayName: emp.Name,
		Email:       emp.Email,
		Role:        emp.Role,
	}
	if err := s.sessions.Save(ctx, session, s.tokenTTL); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return &session, nil
}

// Logout invalidates the session record. The token itself expires on its
// own schedule; a missing session is what the middleware rejects on.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}
