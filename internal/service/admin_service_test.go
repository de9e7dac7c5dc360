package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/arjan001/sonya-stores-sub001/internal/entity"
)

// fakeAdminStore holds a single admin row keyed by id.
type fakeAdminStore struct {
	admin   entity.AdminUser
	updated *entity.AdminUser
}

func (f *fakeAdminStore) GetAdminByEmail(_ context.Context, email string) (*entity.AdminUser, error) {
	if email != f.admin.Email {
		return nil, sql.ErrNoRows
	}
	a := f.admin
	return &a, nil
}

func (f *fakeAdminStore) GetAdminByID(_ context.Context, id int) (*entity.AdminUser, error) {
	if id != f.admin.ID {
		return nil, sql.ErrNoRows
	}
	a := f.admin
	return &a, nil
}

func (f *fakeAdminStore) ListAdmins(context.Context) ([]*entity.AdminUser, error) {
	a := f.admin
	return []*entity.AdminUser{&a}, nil
}

func (f *fakeAdminStore) CreateAdmin(_ context.Context, a *entity.AdminUser) (*entity.AdminUser, error) {
	return a, nil
}

func (f *fakeAdminStore) UpdateAdmin(_ context.Context, a *entity.AdminUser) (*entity.AdminUser, error) {
	f.updated = a
	return a, nil
}

func (f *fakeAdminStore) DeleteAdmin(context.Context, int) error { return nil }

func (f *fakeAdminStore) CreateSession(context.Context, *entity.AdminSession) error { return nil }

func TestBuildAdminHashesPassword(t *testing.T) {
	admin, err := buildAdmin(AdminInput{Name: "Root", Email: "root@example.com", Password: "sup3r-secret"}, true)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if admin.Password == "sup3r-secret" {
		t.Fatal("expected the password to be hashed, found plaintext")
	}
	if !strings.HasPrefix(admin.Password, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", admin.Password)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("sup3r-secret")); err != nil {
		t.Errorf("stored hash does not verify against the original password: %v", err)
	}
}

func TestBuildAdminRejectsShortPassword(t *testing.T) {
	_, err := buildAdmin(AdminInput{Name: "Root", Email: "root@example.com", Password: "short"}, true)
	if err == nil {
		t.Fatal("expected a validation error for a short password")
	}
}

func TestBuildAdminRequiresPasswordOnCreate(t *testing.T) {
	_, err := buildAdmin(AdminInput{Name: "Root", Email: "root@example.com"}, true)
	if err == nil {
		t.Fatal("expected a validation error for a missing password")
	}
}

func TestBuildAdminAllowsMissingPasswordOnUpdate(t *testing.T) {
	admin, err := buildAdmin(AdminInput{Name: "Root", Email: "root@example.com"}, false)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if admin.Password != "" {
		t.Errorf("expected no hash for an omitted password, got %q", admin.Password)
	}
}

func TestBuildAdminRejectsBadEmail(t *testing.T) {
	_, err := buildAdmin(AdminInput{Name: "Root", Email: "root@", Password: "sup3r-secret"}, true)
	if err == nil {
		t.Fatal("expected a validation error for a bad email")
	}
}

func TestUpdateAdminEmailChangeKeepsPassword(t *testing.T) {
	store := &fakeAdminStore{admin: entity.AdminUser{
		ID:       7,
		Name:     "Root",
		Email:    "old@example.com",
		Password: "$2a$10$existinghash",
	}}
	s := NewAdminService(store, "secret", 0)

	updated, err := s.UpdateAdmin(context.Background(), 7, AdminInput{
		Name:  "Root",
		Email: "new@example.com",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if updated.Email != "new@example.com" {
		t.Errorf("expected the new email, got %q", updated.Email)
	}
	if updated.Password != "$2a$10$existinghash" {
		t.Errorf("expected the existing hash preserved, got %q", updated.Password)
	}
	if store.updated == nil || store.updated.ID != 7 {
		t.Fatalf("expected the update to reach the store for id 7, got %+v", store.updated)
	}
}

func TestUpdateAdminWithPasswordRehashes(t *testing.T) {
	store := &fakeAdminStore{admin: entity.AdminUser{
		ID:       7,
		Email:    "old@example.com",
		Password: "$2a$10$existinghash",
	}}
	s := NewAdminService(store, "secret", 0)

	updated, err := s.UpdateAdmin(context.Background(), 7, AdminInput{
		Name:     "Root",
		Email:    "old@example.com",
		Password: "brand-new-pass",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if updated.Password == "$2a$10$existinghash" {
		t.Error("expected a fresh hash for the submitted password")
	}
	if bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("brand-new-pass")) != nil {
		t.Error("new hash does not verify against the submitted password")
	}
}

func TestBuildCategorySlugFallsBackToName(t *testing.T) {
	category, err := buildCategory(CategoryInput{Name: "Men's Shoes", Active: true})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if category.Slug != "men-s-shoes" {
		t.Errorf("expected slug men-s-shoes, got %q", category.Slug)
	}
}

func TestBuildCategoryRequiresName(t *testing.T) {
	if _, err := buildCategory(CategoryInput{Name: "  "}); err == nil {
		t.Fatal("expected a validation error for a missing name")
	}
}
