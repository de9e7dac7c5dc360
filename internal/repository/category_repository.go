package repository

import (
	"context"
	"database/sql"

	"github.com/arjan001/sonya-stores-sub001/internal/entity"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db}
}

// ListCategories includes the derived product count per category.
func (r *CategoryRepository) ListCategories(ctx context.Context, activeOnly bool) ([]*entity.Category, error) {
	query := `SELECT c.id, c.name, c.slug, COALESCE(c.image_url, ''), c.active, c.sort_order,
		(SELECT COUNT(*) FROM products p WHERE p.category_id = c.id), c.created_at
		FROM categories c`
	if activeOnly {
		query += ` WHERE c.active = TRUE`
	}
	query += ` ORDER BY c.sort_order, c.name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*entity.Category
	for rows.Next() {
		c := &entity.Category{}
		err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.ImageURL, &c.Active, &c.SortOrder, &c.ProductCount, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	query := `SELECT c.id, c.name, c.slug, COALESCE(c.image_url, ''), c.active, c.sort_order,
		(SELECT COUNT(*) FROM products p WHERE p.category_id = c.id), c.created_at
		FROM categories c WHERE c.slug = ?`
	c := &entity.Category{}
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&c.ID, &c.Name, &c.Slug, &c.ImageURL,
		&c.Active, &c.SortOrder, &c.ProductCount, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, c *entity.Category) (*entity.Category, error) {
	query := `INSERT INTO categories (name, slug, image_url, active, sort_order, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Slug, nullable(c.ImageURL), c.Active, c.SortOrder, c.CreatedAt)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	c.ID = int(id)
	return c, nil
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, c *entity.Category) (*entity.Category, error) {
	query := `UPDATE categories SET name = ?, slug = ?, image_url = ?, active = ?, sort_order = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, c.Name, c.Slug, nullable(c.ImageURL), c.Active, c.SortOrder, c.ID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
