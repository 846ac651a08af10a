package unit

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mediease/insurance-portal-service/internal/adapters/session"
	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/test/mocks"
)

func TestRedisStore_RoundTrip(t *testing.T) {
	client := mocks.NewMockRedisClient()
	store := session.NewRedisStore(client)
	ctx := context.Background()

	saved := mocks.CreateTestSession("raw-token", 7, domain.RoleAdmin)
	if err := store.Save(ctx, saved, time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Find(ctx, "raw-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected session, got nil")
	}
	if got.EmployeeID != 7 || got.Role != domain.RoleAdmin {
		t.Errorf("unexpected session %+v", got)
	}
	if got.Token != "raw-token" {
		t.Errorf("Find must restore the raw token, got %q", got.Token)
	}
}

func TestRedisStore_KeysAreHashed(t *testing.T) {
	client := mocks.NewMockRedisClient()
	store := session.NewRedisStore(client)

	saved := mocks.CreateTestSession("raw-token", 7, domain.RoleEmployee)
	if err := store.Save(context.Background(), saved, time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The raw token must never be used as a key.
	if client.HasKey("raw-token") || client.HasKey("session:raw-token") {
		t.Error("raw token stored as a redis key")
	}
}

func TestRedisStore_MissIsNotAnError(t *testing.T) {
	store := session.NewRedisStore(mocks.NewMockRedisClient())

	got, err := store.Find(context.Background(), "never-saved")
	if err != nil {
		t.Fatalf("a miss must not error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil session, got %+v", got)
	}
}

func TestRedisStore_Delete(t *testing.T) {
	client := mocks.NewMockRedisClient()
	store := session.NewRedisStore(client)
	ctx := context.Background()

	saved := mocks.CreateTestSession("raw-token", 7, domain.RoleEmployee)
	if err := store.Save(ctx, saved, time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Delete(ctx, "raw-token"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Find(ctx, "raw-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Error("expected session gone after delete")
	}
}

func TestRedisStore_UnknownRoleDegrades(t *testing.T) {
	client := mocks.NewMockRedisClient()
	store := session.NewRedisStore(client)
	ctx := context.Background()

	saved := mocks.CreateTestSession("raw-token", 7, domain.Role("SUPERUSER"))
	if err := store.Save(ctx, saved, time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Find(ctx, "raw-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Role != domain.RoleEmployee {
		t.Errorf("unknown stored role must degrade to EMPLOYEE, got %s", got.Role)
	}
	if strings.EqualFold(string(got.Role), "superuser") {
		t.Error("unrecognized role leaked through deserialization")
	}
}
