package services

import (
	"context"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/ports"
)

type UserService struct {
	employeeRepo ports.EmployeeRepository
}

var _ ports.UserService = (*UserService)(nil)

func NewUserService(employeeRepo ports.EmployeeRepository) *UserService {
	return &UserService{employeeRepo: employeeRepo}
}

func (s *UserService) Employee(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.employeeRepo.FindByID(ctx, id)
}
