package unit

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/services"
	"github.com/mediease/insurance-portal-service/test/mocks"
)

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name     string
		empName  string
		phone    string
		email    string
		password string
		wantMsg  string
	}{
		{
			name:     "missing_name",
			phone:    "9876543210",
			email:    "a@b.com",
			password: "secret1",
			wantMsg:  "please enter your full name",
		},
		{
			name:     "missing_phone",
			empName:  "Asha Rao",
			email:    "a@b.com",
			password: "secret1",
			wantMsg:  "please enter your phone number",
		},
		{
			name:     "missing_email",
			empName:  "Asha Rao",
			phone:    "9876543210",
			password: "secret1",
			wantMsg:  "please enter your email address",
		},
		{
			name:     "malformed_email",
			empName:  "Asha Rao",
			phone:    "9876543210",
			email:    "not-an-email",
			password: "secret1",
			wantMsg:  "please enter a valid email address",
		},
		{
			name:     "short_password",
			empName:  "Asha Rao",
			phone:    "9876543210",
			email:    "a@b.com",
			password: "12345",
			wantMsg:  "password must be at least 6 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockEmployeeRepository()
			svc := services.NewRegistrationService(repo)

			_, err := svc.Register(context.Background(), tt.empName, tt.phone, tt.email, tt.password, "")

			var validation domain.ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, err.Error())
			}
			if len(repo.CreateCalls) != 0 {
				t.Errorf("invalid registration must not hit the repository")
			}
		})
	}
}

func TestRegister_Success(t *testing.T) {
	repo := mocks.NewMockEmployeeRepository()
	svc := services.NewRegistrationService(repo)

	emp, err := svc.Register(context.Background(), "  Asha Rao  ", "9876543210", "asha@mediease.com", "secret1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if emp.Name != "Asha Rao" {
		t.Errorf("expected trimmed name, got %q", emp.Name)
	}
	if emp.Role != domain.RoleEmployee {
		t.Errorf("expected default role EMPLOYEE, got %s", emp.Role)
	}
	if emp.ID == 0 {
		t.Error("expected assigned id")
	}

	// The stored credential must be a bcrypt hash, never the plaintext.
	if emp.Password == "secret1" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(emp.Password), []byte("secret1")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestRegister_AdminRole(t *testing.T) {
	repo := mocks.NewMockEmployeeRepository()
	svc := services.NewRegistrationService(repo)

	emp, err := svc.Register(context.Background(), "Admin User", "9876543210", "admin@mediease.com", "secret1", "ADMIN")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emp.Role != domain.RoleAdmin {
		t.Errorf("expected ADMIN, got %s", emp.Role)
	}

	// Unknown role strings degrade to EMPLOYEE instead of failing.
	emp2, err := svc.Register(context.Background(), "Other User", "9876543211", "other@mediease.com", "secret1", "SUPERUSER")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emp2.Role != domain.RoleEmployee {
		t.Errorf("expected unknown role to degrade to EMPLOYEE, got %s", emp2.Role)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := mocks.NewMockEmployeeRepository()
	repo.AddEmployee(domain.Employee{Name: "Existing", Email: "asha@mediease.com"})
	svc := services.NewRegistrationService(repo)

	_, err := svc.Register(context.Background(), "Asha Rao", "9876543210", "asha@mediease.com", "secret1", "")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}
