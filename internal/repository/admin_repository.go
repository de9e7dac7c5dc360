package repository

import (
	"context"
	"database/sql"

	"github.com/arjan001/sonya-stores-sub001/internal/entity"
)

type AdminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db}
}

func (r *AdminRepository) GetAdminByEmail(ctx context.Context, email string) (*entity.AdminUser, error) {
	admin := &entity.AdminUser{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password, created_at FROM admin_users WHERE email = ?`, email).
		Scan(&admin.ID, &admin.Name, &admin.Email, &admin.Password, &admin.CreatedAt)
	if err != nil {
		return nil, err
	}
	return admin, nil
}

func (r *AdminRepository) GetAdminByID(ctx context.Context, id int) (*entity.AdminUser, error) {
	admin := &entity.AdminUser{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password, created_at FROM admin_users WHERE id = ?`, id).
		Scan(&admin.ID, &admin.Name, &admin.Email, &admin.Password, &admin.CreatedAt)
	if err != nil {
		return nil, err
	}
	return admin, nil
}

func (r *AdminRepository) ListAdmins(ctx context.Context) ([]*entity.AdminUser, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email, password, created_at FROM admin_users ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []*entity.AdminUser
	for rows.Next() {
		a := &entity.AdminUser{}
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Password, &a.CreatedAt); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

func (r *AdminRepository) CreateAdmin(ctx context.Context, a *entity.AdminUser) (*entity.AdminUser, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO admin_users (name, email, password) VALUES (?, ?, ?)`, a.Name, a.Email, a.Password)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	a.ID = int(id)
	return a, nil
}

func (r *AdminRepository) UpdateAdmin(ctx context.Context, a *entity.AdminUser) (*entity.AdminUser, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE admin_users SET name = ?, email = ?, password = ? WHERE id = ?`, a.Name, a.Email, a.Password, a.ID)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AdminRepository) DeleteAdmin(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "admin_users", id)
}

// CreateSession records a login for audit; concurrent sessions are allowed.
func (r *AdminRepository) CreateSession(ctx context.Context, s *entity.AdminSession) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO admin_sessions (id, admin_id, user_agent, ip, created_at, expires_at) VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.AdminID, nullable(s.UserAgent), nullable(s.IP), s.CreatedAt, s.ExpiresAt)
	return err
}
