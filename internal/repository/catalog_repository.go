package repository

import (
	"context"
	"database/sql"

	"github.com/arjan001/sonya-stores-sub001/internal/entity"
)

// CatalogRepository covers the shallow storefront resources: delivery
// locations, offers, banners, policies and newsletter subscribers.
type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db}
}

// --- Delivery locations ---

func (r *CatalogRepository) ListDeliveryLocations(ctx context.Context, activeOnly bool) ([]*entity.DeliveryLocation, error) {
	query := `SELECT id, name, fee, COALESCE(estimated_time, ''), active FROM delivery_locations`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []*entity.DeliveryLocation
	for rows.Next() {
		l := &entity.DeliveryLocation{}
		if err := rows.Scan(&l.ID, &l.Name, &l.Fee, &l.EstimatedTime, &l.Active); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func (r *CatalogRepository) GetDeliveryLocation(ctx context.Context, id int) (*entity.DeliveryLocation, error) {
	l := &entity.DeliveryLocation{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, fee, COALESCE(estimated_time, ''), active FROM delivery_locations WHERE id = ?`, id).
		Scan(&l.ID, &l.Name, &l.Fee, &l.EstimatedTime, &l.Active)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *CatalogRepository) CreateDeliveryLocation(ctx context.Context, l *entity.DeliveryLocation) (*entity.DeliveryLocation, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO delivery_locations (name, fee, estimated_time, active) VALUES (?, ?, ?, ?)`,
		l.Name, l.Fee, nullable(l.EstimatedTime), l.Active)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	l.ID = int(id)
	return l, nil
}

func (r *CatalogRepository) UpdateDeliveryLocation(ctx context.Context, l *entity.DeliveryLocation) (*entity.DeliveryLocation, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE delivery_locations SET name = ?, fee = ?, estimated_time = ?, active = ? WHERE id = ?`,
		l.Name, l.Fee, nullable(l.EstimatedTime), l.Active, l.ID)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *CatalogRepository) DeleteDeliveryLocation(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "delivery_locations", id)
}

// --- Offers ---

func (r *CatalogRepository) ListOffers(ctx context.Context, activeOnly bool) ([]*entity.Offer, error) {
	query := `SELECT id, title, COALESCE(description, ''), COALESCE(image_url, ''), COALESCE(link_url, ''), active, created_at FROM offers`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []*entity.Offer
	for rows.Next() {
		o := &entity.Offer{}
		if err := rows.Scan(&o.ID, &o.Title, &o.Description, &o.ImageURL, &o.LinkURL, &o.Active, &o.CreatedAt); err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

func (r *CatalogRepository) CreateOffer(ctx context.Context, o *entity.Offer) (*entity.Offer, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO offers (title, description, image_url, link_url, active, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		o.Title, nullable(o.Description), nullable(o.ImageURL), nullable(o.LinkURL), o.Active, o.CreatedAt)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	o.ID = int(id)
	return o, nil
}

func (r *CatalogRepository) UpdateOffer(ctx context.Context, o *entity.Offer) (*entity.Offer, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE offers SET title = ?, description = ?, image_url = ?, link_url = ?, active = ? WHERE id = ?`,
		o.Title, nullable(o.Description), nullable(o.ImageURL), nullable(o.LinkURL), o.Active, o.ID)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *CatalogRepository) DeleteOffer(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "offers", id)
}

// --- Banners ---

func (r *CatalogRepository) ListBanners(ctx context.Context, activeOnly bool) ([]*entity.Banner, error) {
	query := `SELECT id, title, COALESCE(subtitle, ''), image_url, COALESCE(link_url, ''), active, sort_order FROM banners`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY sort_order, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var banners []*entity.Banner
	for rows.Next() {
		b := &entity.Banner{}
		if err := rows.Scan(&b.ID, &b.Title, &b.Subtitle, &b.ImageURL, &b.LinkURL, &b.Active, &b.SortOrder); err != nil {
			return nil, err
		}
		banners = append(banners, b)
	}
	return banners, rows.Err()
}

func (r *CatalogRepository) CreateBanner(ctx context.Context, b *entity.Banner) (*entity.Banner, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO banners (title, subtitle, image_url, link_url, active, sort_order) VALUES (?, ?, ?, ?, ?, ?)`,
		b.Title, nullable(b.Subtitle), b.ImageURL, nullable(b.LinkURL), b.Active, b.SortOrder)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	b.ID = int(id)
	return b, nil
}

func (r *CatalogRepository) UpdateBanner(ctx context.Context, b *entity.Banner) (*entity.Banner, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE banners SET title = ?, subtitle = ?, image_url = ?, link_url = ?, active = ?, sort_order = ? WHERE id = ?`,
		b.Title, nullable(b.Subtitle), b.ImageURL, nullable(b.LinkURL), b.Active, b.SortOrder, b.ID)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *CatalogRepository) DeleteBanner(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "banners", id)
}

// --- Policies ---

func (r *CatalogRepository) ListPolicies(ctx context.Context) ([]*entity.Policy, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, slug, content, updated_at FROM policies ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var policies []*entity.Policy
	for rows.Next() {
		p := &entity.Policy{}
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.UpdatedAt); err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}

func (r *CatalogRepository) GetPolicyBySlug(ctx context.Context, slug string) (*entity.Policy, error) {
	p := &entity.Policy{}
	err := r.db.QueryRowContext(ctx, `SELECT id, title, slug, content, updated_at FROM policies WHERE slug = ?`, slug).
		Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *CatalogRepository) CreatePolicy(ctx context.Context, p *entity.Policy) (*entity.Policy, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO policies (title, slug, content) VALUES (?, ?, ?)`, p.Title, p.Slug, p.Content)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	p.ID = int(id)
	return p, nil
}

func (r *CatalogRepository) UpdatePolicy(ctx context.Context, p *entity.Policy) (*entity.Policy, error) {
	_, err := r.db.ExecContext(ctx,
		`UPDATE policies SET title = ?, slug = ?, content = ? WHERE id = ?`, p.Title, p.Slug, p.Content, p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *CatalogRepository) DeletePolicy(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "policies", id)
}

// --- Newsletter ---

func (r *CatalogRepository) ListSubscribers(ctx context.Context) ([]*entity.NewsletterSubscriber, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, email, created_at FROM newsletter_subscribers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*entity.NewsletterSubscriber
	for rows.Next() {
		s := &entity.NewsletterSubscriber{}
		if err := rows.Scan(&s.ID, &s.Email, &s.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// Subscribe inserts the email, ignoring duplicates.
func (r *CatalogRepository) Subscribe(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO newsletter_subscribers (email) VALUES (?) ON DUPLICATE KEY UPDATE email = email`, email)
	return err
}

func (r *CatalogRepository) DeleteSubscriber(ctx context.Context, id int) error {
	return deleteByID(ctx, r.db, "newsletter_subscribers", id)
}

func deleteByID(ctx context.Context, db *sql.DB, table string, id int) error {
	res, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
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
