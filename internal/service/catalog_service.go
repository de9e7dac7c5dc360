package service

import (
	"context"
	"time"

	"github.com/arjan001/sonya-stores-sub001/internal/entity"
	"github.com/arjan001/sonya-stores-sub001/internal/repository"
	"github.com/arjan001/sonya-stores-sub001/internal/sanitize"
)

// CatalogService owns the shallow resources: categories, delivery locations,
// offers, banners, policies and newsletter subscribers.
type CatalogService struct {
	categoryRepo *repository.CategoryRepository
	catalogRepo  *repository.CatalogRepository
}

func NewCatalogService(categoryRepo *repository.CategoryRepository, catalogRepo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{categoryRepo: categoryRepo, catalogRepo: catalogRepo}
}

// --- Categories ---

type CategoryInput struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	ImageURL  string `json:"image_url"`
	Active    bool   `json:"active"`
	SortOrder int    `json:"sort_order"`
}

func (s *CatalogService) ListCategories(ctx context.Context, activeOnly bool) ([]*entity.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, activeOnly)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing categories")
		return nil, err
	}
	if categories == nil {
		categories = []*entity.Category{}
	}
	return categories, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) (*entity.Category, error) {
	category, err := buildCategory(in)
	if err != nil {
		return nil, err
	}
	created, err := s.categoryRepo.CreateCategory(ctx, category)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating category")
		return nil, err
	}
	return created, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int, in CategoryInput) (*entity.Category, error) {
	category, err := buildCategory(in)
	if err != nil {
		return nil, err
	}
	category.ID = id
	updated, err := s.categoryRepo.UpdateCategory(ctx, category)
	if err != nil {
		logger.Error().Err(err).Int("category_id", id).Msg("Error updating category")
		return nil, err
	}
	return updated, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int) error {
	return s.categoryRepo.DeleteCategory(ctx, id)
}

func buildCategory(in CategoryInput) (*entity.Category, error) {
	name := sanitize.Clean(in.Name, 120)
	if name == "" {
		return nil, ValidationError("category name is required")
	}
	slug := sanitize.Slugify(in.Slug)
	if slug == "" {
		slug = sanitize.Slugify(name)
	}
	return &entity.Category{
		Name:      name,
		Slug:      slug,
		ImageURL:  sanitize.Clean(in.ImageURL, 500),
		Active:    in.Active,
		SortOrder: in.SortOrder,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// --- Delivery locations ---

func (s *CatalogService) ListDeliveryLocations(ctx context.Context, activeOnly bool) ([]*entity.DeliveryLocation, error) {
	locations, err := s.catalogRepo.ListDeliveryLocations(ctx, activeOnly)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing delivery locations")
		return nil, err
	}
	if locations == nil {
		locations = []*entity.DeliveryLocation{}
	}
	return locations, nil
}

func (s *CatalogService) CreateDeliveryLocation(ctx context.Context, l entity.DeliveryLocation) (*entity.DeliveryLocation, error) {
	l.Name = sanitize.Clean(l.Name, 120)
	if l.Name == "" {
		return nil, ValidationError("location name is required")
	}
	l.Fee = sanitize.Money(l.Fee)
	l.EstimatedTime = sanitize.Clean(l.EstimatedTime, 60)
	return s.catalogRepo.CreateDeliveryLocation(ctx, &l)
}

func (s *CatalogService) UpdateDeliveryLocation(ctx context.Context, id int, l entity.DeliveryLocation) (*entity.DeliveryLocation, error) {
	l.ID = id
	l.Name = sanitize.Clean(l.Name, 120)
	if l.Name == "" {
		return nil, ValidationError("location name is required")
	}
	l.Fee = sanitize.Money(l.Fee)
	l.EstimatedTime = sanitize.Clean(l.EstimatedTime, 60)
	return s.catalogRepo.UpdateDeliveryLocation(ctx, &l)
}

func (s *CatalogService) DeleteDeliveryLocation(ctx context.Context, id int) error {
	return s.catalogRepo.DeleteDeliveryLocation(ctx, id)
}

// --- Offers ---

func (s *CatalogService) ListOffers(ctx context.Context, activeOnly bool) ([]*entity.Offer, error) {
	offers, err := s.catalogRepo.ListOffers(ctx, activeOnly)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing offers")
		return nil, err
	}
	if offers == nil {
		offers = []*entity.Offer{}
	}
	return offers, nil
}

func (s *CatalogService) CreateOffer(ctx context.Context, o entity.Offer) (*entity.Offer, error) {
	o.Title = sanitize.Clean(o.Title, 200)
	if o.Title == "" {
		return nil, ValidationError("offer title is required")
	}
	o.Description = sanitize.Clean(o.Description, 1000)
	o.CreatedAt = time.Now().UTC()
	return s.catalogRepo.CreateOffer(ctx, &o)
}

func (s *CatalogService) UpdateOffer(ctx context.Context, id int, o entity.Offer) (*entity.Offer, error) {
	o.ID = id
	o.Title = sanitize.Clean(o.Title, 200)
	if o.Title == "" {
		return nil, ValidationError("offer title is required")
	}
	o.Description = sanitize.Clean(o.Description, 1000)
	return s.catalogRepo.UpdateOffer(ctx, &o)
}

func (s *CatalogService) DeleteOffer(ctx context.Context, id int) error {
	return s.catalogRepo.DeleteOffer(ctx, id)
}

// --- Banners ---

func (s *CatalogService) ListBanners(ctx context.Context, activeOnly bool) ([]*entity.Banner, error) {
	banners, err := s.catalogRepo.ListBanners(ctx, activeOnly)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing banners")
		return nil, err
	}
	if banners == nil {
		banners = []*entity.Banner{}
	}
	return banners, nil
}

func (s *CatalogService) CreateBanner(ctx context.Context, b entity.Banner) (*entity.Banner, error) {
	b.Title = sanitize.Clean(b.Title, 200)
	if b.Title == "" {
		return nil, ValidationError("banner title is required")
	}
	if b.ImageURL == "" {
		return nil, ValidationError("banner image is required")
	}
	b.Subtitle = sanitize.Clean(b.Subtitle, 300)
	return s.catalogRepo.CreateBanner(ctx, &b)
}

func (s *CatalogService) UpdateBanner(ctx context.Context, id int, b entity.Banner) (*entity.Banner, error) {
	b.ID = id
	b.Title = sanitize.Clean(b.Title, 200)
	if b.Title == "" {
		return nil, ValidationError("banner title is required")
	}
	if b.ImageURL == "" {
		return nil, ValidationError("banner image is required")
	}
	b.Subtitle = sanitize.Clean(b.Subtitle, 300)
	return s.catalogRepo.UpdateBanner(ctx, &b)
}

func (s *CatalogService) DeleteBanner(ctx context.Context, id int) error {
	return s.catalogRepo.DeleteBanner(ctx, id)
}

// --- Policies ---

func (s *CatalogService) ListPolicies(ctx context.Context) ([]*entity.Policy, error) {
	policies, err := s.catalogRepo.ListPolicies(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing policies")
		return nil, err
	}
	if policies == nil {
		policies = []*entity.Policy{}
	}
	return policies, nil
}

func (s *CatalogService) GetPolicyBySlug(ctx context.Context, slug string) (*entity.Policy, error) {
	return s.catalogRepo.GetPolicyBySlug(ctx, slug)
}

func (s *CatalogService) CreatePolicy(ctx context.Context, p entity.Policy) (*entity.Policy, error) {
	p.Title = sanitize.Clean(p.Title, 200)
	if p.Title == "" {
		return nil, ValidationError("policy title is required")
	}
	if p.Content == "" {
		return nil, ValidationError("policy content is required")
	}
	p.Slug = sanitize.Slugify(p.Slug)
	if p.Slug == "" {
		p.Slug = sanitize.Slugify(p.Title)
	}
	return s.catalogRepo.CreatePolicy(ctx, &p)
}

func (s *CatalogService) UpdatePolicy(ctx context.Context, id int, p entity.Policy) (*entity.Policy, error) {
	p.ID = id
	p.Title = sanitize.Clean(p.Title, 200)
	if p.Title == "" {
		return nil, ValidationError("policy title is required")
	}
	if p.Content == "" {
		return nil, ValidationError("policy content is required")
	}
	p.Slug = sanitize.Slugify(p.Slug)
	if p.Slug == "" {
		p.Slug = sanitize.Slugify(p.Title)
	}
	return s.catalogRepo.UpdatePolicy(ctx, &p)
}

func (s *CatalogService) DeletePolicy(ctx context.Context, id int) error {
	return s.catalogRepo.DeletePolicy(ctx, id)
}

// --- Newsletter ---

func (s *CatalogService) Subscribe(ctx context.Context, email string) error {
	email = sanitize.Clean(email, 120)
	if !sanitize.ValidEmail(email) {
		return ValidationError("invalid email address")
	}
	if err := s.catalogRepo.Subscribe(ctx, email); err != nil {
		logger.Error().Err(err).Msg("Error subscribing to newsletter")
		return err
	}
	return nil
}

func (s *CatalogService) ListSubscribers(ctx context.Context) ([]*entity.NewsletterSubscriber, error) {
	subs, err := s.catalogRepo.ListSubscribers(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing subscribers")
		return nil, err
	}
	if subs == nil {
		subs = []*entity.NewsletterSubscriber{}
	}
	return subs, nil
}

func (s *CatalogService) DeleteSubscriber(ctx context.Context, id int) error {
	return s.catalogRepo.DeleteSubscriber(ctx, id)
}
