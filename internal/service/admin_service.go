package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/arjan001/sonya-stores-sub001/internal/entity"
	"github.com/arjan001/sonya-stores-sub001/internal/repository"
	"github.com/arjan001/sonya-stores-sub001/internal/sanitize"
)

// AdminClaims is the JWT payload carried in the admin session cookie.
type AdminClaims struct {
	AdminID int    `json:"admin_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// AdminStore is the persistence surface the service needs; satisfied by
// repository.AdminRepository.
type AdminStore interface {
	GetAdminByEmail(ctx context.Context, email string) (*entity.AdminUser, error)
	GetAdminByID(ctx context.Context, id int) (*entity.AdminUser, error)
	ListAdmins(ctx context.Context) ([]*entity.AdminUser, error)
	CreateAdmin(ctx context.Context, a *entity.AdminUser) (*entity.AdminUser, error)
	UpdateAdmin(ctx context.Context, a *entity.AdminUser) (*entity.AdminUser, error)
	DeleteAdmin(ctx context.Context, id int) error
	CreateSession(ctx context.Context, s *entity.AdminSession) error
}

var _ AdminStore = (*repository.AdminRepository)(nil)

type AdminService struct {
	adminRepo  AdminStore
	secret     []byte
	sessionTTL time.Duration
}

func NewAdminService(adminRepo AdminStore, secret string, sessionTTL time.Duration) *AdminService {
	return &AdminService{adminRepo: adminRepo, secret: []byte(secret), sessionTTL: sessionTTL}
}

// Login verifies the credentials, mints a signed session token and records
// an audit session row. Concurrent sessions per admin are allowed.
func (s *AdminService) Login(ctx context.Context, email, password, userAgent, ip string) (string, error) {
	admin, err := s.adminRepo.GetAdminByEmail(ctx, email)
	if err != nil {
		if !isNoRows(err) {
			logger.Error().Err(err).Msg("Error loading admin user")
		}
		return "", ValidationError("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		return "", ValidationError("invalid credentials")
	}

	now := time.Now().UTC()
	expires := now.Add(s.sessionTTL)

	claims := &AdminClaims{
		AdminID: admin.ID,
		Name:    admin.Name,
		Email:   admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		logger.Error().Err(err).Msg("Error signing session token")
		return "", err
	}

	session := &entity.AdminSession{
		ID:        uuid.New().String(),
		AdminID:   admin.ID,
		UserAgent: userAgent,
		IP:        ip,
		CreatedAt: now,
		ExpiresAt: expires,
	}
	if err := s.adminRepo.CreateSession(ctx, session); err != nil {
		// Audit only; login still succeeds.
		logger.Error().Err(err).Int("admin_id", admin.ID).Msg("Error recording admin session")
	}

	return token, nil
}

func (s *AdminService) SessionTTL() time.Duration {
	return s.sessionTTL
}

func (s *AdminService) ListAdmins(ctx context.Context) ([]*entity.AdminUser, error) {
	admins, err := s.adminRepo.ListAdmins(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing admin users")
		return nil, err
	}
	if admins == nil {
		admins = []*entity.AdminUser{}
	}
	return admins, nil
}

type AdminInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *AdminService) CreateAdmin(ctx context.Context, in AdminInput) (*entity.AdminUser, error) {
	admin, err := buildAdmin(in, true)
	if err != nil {
		return nil, err
	}
	created, err := s.adminRepo.CreateAdmin(ctx, admin)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating admin user")
		return nil, err
	}
	return created, nil
}

func (s *AdminService) UpdateAdmin(ctx context.Context, id int, in AdminInput) (*entity.AdminUser, error) {
	admin, err := buildAdmin(in, false)
	if err != nil {
		return nil, err
	}
	admin.ID = id
	if admin.Password == "" {
		// Omitted password keeps the current hash. Resolve the row by id;
		// the submitted email may itself be the field being changed.
		existing, err := s.adminRepo.GetAdminByID(ctx, id)
		if err != nil {
			return nil, err
		}
		admin.Password = existing.Password
	}
	updated, err := s.adminRepo.UpdateAdmin(ctx, admin)
	if err != nil {
		logger.Error().Err(err).Int("admin_id", id).Msg("Error updating admin user")
		return nil, err
	}
	return updated, nil
}

func (s *AdminService) DeleteAdmin(ctx context.Context, id int) error {
	return s.adminRepo.DeleteAdmin(ctx, id)
}

func buildAdmin(in AdminInput, passwordRequired bool) (*entity.AdminUser, error) {
	name := sanitize.Clean(in.Name, 120)
	if name == "" {
		return nil, ValidationError("admin name is required")
	}
	email := sanitize.Clean(in.Email, 120)
	if !sanitize.ValidEmail(email) {
		return nil, ValidationError("invalid email address")
	}
	admin := &entity.AdminUser{Name: name, Email: email}

	if in.Password == "" {
		if passwordRequired {
			return nil, ValidationError("password is required")
		}
		return admin, nil
	}
	if len(in.Password) < 8 {
		return nil, ValidationError("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin.Password = string(hash)
	return admin, nil
}
