package repository

import (
	"context"
	"database/sql"

	"github.com/arjan001/sonya-stores-sub001/internal/entity"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db}
}

const productColumns = `p.id, p.name, p.slug, COALESCE(p.description, ''), p.price, p.original_price,
	p.category_id, COALESCE(c.name, ''), p.in_stock, p.is_featured, p.is_new, p.is_offer, p.item_condition, p.created_at`

func (r *ProductRepository) scanProduct(row interface{ Scan(...interface{}) error }) (*entity.Product, error) {
	product := &entity.Product{}
	err := row.Scan(&product.ID, &product.Name, &product.Slug, &product.Description, &product.Price,
		&product.OriginalPrice, &product.CategoryID, &product.CategoryName, &product.InStock,
		&product.IsFeatured, &product.IsNew, &product.IsOffer, &product.Condition, &product.CreatedAt)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id int) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p LEFT JOIN categories c ON c.id = p.category_id WHERE p.id = ?`
	product, err := r.scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.attachChildren(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (r *ProductRepository) GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p LEFT JOIN categories c ON c.id = p.category_id WHERE p.slug = ?`
	product, err := r.scanProduct(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		return nil, err
	}
	if err := r.attachChildren(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// SearchProducts filters by name substring and optional category, returning
// the page plus the unpaged match count.
func (r *ProductRepository) SearchProducts(ctx context.Context, q string, categoryID, limit, offset int) ([]*entity.Product, int, error) {
	where := ` WHERE p.name LIKE ?`
	args := []interface{}{"%" + q + "%"}
	if categoryID > 0 {
		where += ` AND p.category_id = ?`
		args = append(args, categoryID)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM products p` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products p LEFT JOIN categories c ON c.id = p.category_id` +
		where + ` ORDER BY p.created_at DESC, p.id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	products, err := r.queryProducts(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListProducts returns the storefront catalog, optionally restricted to one
// of the flag filters ("featured", "new", "offer").
func (r *ProductRepository) ListProducts(ctx context.Context, flag string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p LEFT JOIN categories c ON c.id = p.category_id`
	switch flag {
	case "featured":
		query += ` WHERE p.is_featured = TRUE`
	case "new":
		query += ` WHERE p.is_new = TRUE`
	case "offer":
		query += ` WHERE p.is_offer = TRUE`
	}
	query += ` ORDER BY p.created_at DESC, p.id DESC LIMIT ? OFFSET ?`
	return r.queryProducts(ctx, query, limit, offset)
}

// CreateProduct inserts the product with its image and variation rows in one
// transaction.
func (r *ProductRepository) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO products (name, slug, description, price, original_price, category_id,
		in_stock, is_featured, is_new, is_offer, item_condition, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, query, product.Name, product.Slug, nullable(product.Description),
		product.Price, product.OriginalPrice, product.CategoryID, product.InStock,
		product.IsFeatured, product.IsNew, product.IsOffer, product.Condition, product.CreatedAt)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	product.ID = int(id)

	if err := insertChildren(ctx, tx, product); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct replaces every editable column and rewrites the child rows.
func (r *ProductRepository) UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	query := `UPDATE products SET name = ?, slug = ?, description = ?, price = ?, original_price = ?,
		category_id = ?, in_stock = ?, is_featured = ?, is_new = ?, is_offer = ?, item_condition = ? WHERE id = ?`
	res, err := tx.ExecContext(ctx, query, product.Name, product.Slug, nullable(product.Description),
		product.Price, product.OriginalPrice, product.CategoryID, product.InStock,
		product.IsFeatured, product.IsNew, product.IsOffer, product.Condition, product.ID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if affected == 0 {
		// Row may exist with identical values; verify before treating as missing.
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE id = ?`, product.ID).Scan(&n); err != nil {
			tx.Rollback()
			return nil, err
		}
		if n == 0 {
			tx.Rollback()
			return nil, sql.ErrNoRows
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_images WHERE product_id = ?`, product.ID); err != nil {
		tx.Rollback()
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM product_variations WHERE product_id = ?`, product.ID); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := insertChildren(ctx, tx, product); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes child image/variation rows before the parent row.
func (r *ProductRepository) DeleteProduct(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_images WHERE product_id = ?`, id); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM product_variations WHERE product_id = ?`, id); err != nil {
		tx.Rollback()
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		tx.Rollback()
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return err
	}
	if affected == 0 {
		tx.Rollback()
		return sql.ErrNoRows
	}

	return tx.Commit()
}

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*entity.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		product, err := r.scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, product := range products {
		if err := r.attachChildren(ctx, product); err != nil {
			return nil, err
		}
	}
	return products, nil
}

func (r *ProductRepository) attachChildren(ctx context.Context, product *entity.Product) error {
	product.Images = []entity.ProductImage{}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product_id, url, sort_order FROM product_images WHERE product_id = ? ORDER BY sort_order, id`, product.ID)
	if err != nil {
		return err
	}
	for rows.Next() {
		img := entity.ProductImage{}
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.SortOrder); err != nil {
			rows.Close()
			return err
		}
		product.Images = append(product.Images, img)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	product.Variations = []entity.ProductVariation{}
	rows, err = r.db.QueryContext(ctx,
		`SELECT id, product_id, label, value, sort_order FROM product_variations WHERE product_id = ? ORDER BY sort_order, id`, product.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		v := entity.ProductVariation{}
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Label, &v.Value, &v.SortOrder); err != nil {
			return err
		}
		product.Variations = append(product.Variations, v)
	}
	return rows.Err()
}

func insertChildren(ctx context.Context, tx *sql.Tx, product *entity.Product) error {
	imgQuery := `INSERT INTO product_images (product_id, url, sort_order) VALUES (?, ?, ?)`
	for i, img := range product.Images {
		if _, err := tx.ExecContext(ctx, imgQuery, product.ID, img.URL, i); err != nil {
			return err
		}
	}
	varQuery := `INSERT INTO product_variations (product_id, label, value, sort_order) VALUES (?, ?, ?, ?)`
	for i, v := range product.Variations {
		if _, err := tx.ExecContext(ctx, varQuery, product.ID, v.Label, v.Value, i); err != nil {
			return err
		}
	}
	return nil
}
