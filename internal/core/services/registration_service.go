package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/ports"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type RegistrationService struct {
	employeeRepo ports.EmployeeRepository
}

var _ ports.RegistrationService = (*RegistrationService)(nil)

func NewRegistrationService(employeeRepo ports.EmployeeRepository) *RegistrationService {
	return &RegistrationService{employeeRepo: employeeRepo}
}

// Register creates a new employee account. Field checks mirror the portal
// registration form; the role is fixed at registration and defaults to
// EMPLOYEE.
func (s *RegistrationService) Register(ctx context.Context, name, phone, email, password, role string) (*domain.Employee, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	email = strings.TrimSpace(email)

	switch {
	case name == "":
		return nil, domain.ValidationError("please enter your full name")
	case phone == "":
		return nil, domain.ValidationError("please enter your phone number")
	case email == "":
		return nil, domain.ValidationError("please enter your email address")
	case !emailPattern.MatchString(email):
		return nil, domain.ValidationError("please enter a valid email address")
	case len(password) < 6:
		return nil, domain.ValidationError("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	emp := domain.Employee{
		Name:      name,
		Phone:     phone,
		Email:     email,
		Role:      domain.ParseRole(role),
		Password:  string(hash),
		CreatedAt: time.Now(),
	}

	return s.employeeRepo.Create(ctx, emp)
}
