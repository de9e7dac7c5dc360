package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/arjan001/sonya-stores-sub001/internal/entity"
	"github.com/arjan001/sonya-stores-sub001/internal/repository"
	"github.com/arjan001/sonya-stores-sub001/internal/sanitize"
)

const (
	minSearchQuery  = 2
	productCacheTTL = 5 * time.Minute
)

type ProductInput struct {
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"original_price"`
	CategoryID    int      `json:"category_id"`
	InStock       bool     `json:"in_stock"`
	IsFeatured    bool     `json:"is_featured"`
	IsNew         bool     `json:"is_new"`
	IsOffer       bool     `json:"is_offer"`
	Condition     string   `json:"condition"`
	Images        []string `json:"images"`
	Variations    []struct {
		Label string `json:"label"`
		Value string `json:"value"`
	} `json:"variations"`
}

type SearchResult struct {
	Products []*entity.Product `json:"products"`
	Total    int               `json:"total"`
}

type ProductService struct {
	productRepo *repository.ProductRepository
	rdb         *redis.Client
}

func NewProductService(productRepo *repository.ProductRepository, rdb *redis.Client) *ProductService {
	return &ProductService{productRepo: productRepo, rdb: rdb}
}

// Search returns an empty result without touching the database for queries
// under two characters.
func (s *ProductService) Search(ctx context.Context, q string, categoryID, limit, offset int) (*SearchResult, error) {
	q = sanitize.Clean(q, 100)
	if len([]rune(q)) < minSearchQuery {
		return &SearchResult{Products: []*entity.Product{}, Total: 0}, nil
	}
	products, total, err := s.productRepo.SearchProducts(ctx, q, categoryID, limit, offset)
	if err != nil {
		logger.Error().Err(err).Str("query", q).Msg("Error searching products")
		return nil, err
	}
	if products == nil {
		products = []*entity.Product{}
	}
	return &SearchResult{Products: products, Total: total}, nil
}

func (s *ProductService) ListProducts(ctx context.Context, flag string, limit, offset int) ([]*entity.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, flag, limit, offset)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing products")
		return nil, err
	}
	if products == nil {
		products = []*entity.Product{}
	}
	return products, nil
}

// GetBySlug serves storefront product pages through a redis read-through
// cache keyed by slug.
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	key := "product:slug:" + slug
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			logger.Error().Err(err).Str("slug", slug).Msg("Error reading product cache")
		}
		if cached != "" {
			product := &entity.Product{}
			if err := json.Unmarshal([]byte(cached), product); err == nil {
				return product, nil
			}
		}
	}

	product, err := s.productRepo.GetProductBySlug(ctx, slug)
	if err != nil {
		if !isNoRows(err) {
			logger.Error().Err(err).Str("slug", slug).Msg("Error getting product by slug")
		}
		return nil, err
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(product); err == nil {
			if err := s.rdb.Set(ctx, key, payload, productCacheTTL).Err(); err != nil {
				logger.Error().Err(err).Str("slug", slug).Msg("Error writing product cache")
			}
		}
	}
	return product, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*entity.Product, error) {
	product, err := buildProduct(in)
	if err != nil {
		return nil, err
	}
	created, err := s.productRepo.CreateProduct(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating product")
		return nil, err
	}
	return created, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id int, in ProductInput) (*entity.Product, error) {
	product, err := buildProduct(in)
	if err != nil {
		return nil, err
	}
	product.ID = id

	previous, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.productRepo.UpdateProduct(ctx, product)
	if err != nil {
		if !isNoRows(err) {
			logger.Error().Err(err).Int("product_id", id).Msg("Error updating product")
		}
		return nil, err
	}
	for _, slug := range staleSlugs(previous.Slug, updated.Slug) {
		s.invalidate(ctx, slug)
	}
	return updated, nil
}

// staleSlugs lists the cache keys to drop after an update. A slug change must
// also evict the old key, which would otherwise keep serving the stale row
// until its TTL expires.
func staleSlugs(previous, updated string) []string {
	if previous != "" && previous != updated {
		return []string{previous, updated}
	}
	return []string{updated}
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int) error {
	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		if !isNoRows(err) {
			logger.Error().Err(err).Int("product_id", id).Msg("Error deleting product")
		}
		return err
	}
	s.invalidate(ctx, product.Slug)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, slug string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, "product:slug:"+slug).Err(); err != nil {
		logger.Error().Err(err).Str("slug", slug).Msg("Error invalidating product cache")
	}
}

func buildProduct(in ProductInput) (*entity.Product, error) {
	name := sanitize.Clean(in.Name, 200)
	if name == "" {
		return nil, ValidationError("product name is required")
	}
	if in.CategoryID <= 0 {
		return nil, ValidationError("category is required")
	}
	if in.Price < 0 {
		return nil, ValidationError("price must not be negative")
	}

	slug := sanitize.Slugify(in.Slug)
	if slug == "" {
		slug = sanitize.Slugify(name)
	}
	if slug == "" {
		return nil, ValidationError("could not derive a slug from the product name")
	}

	condition := in.Condition
	switch condition {
	case entity.ConditionNew, entity.ConditionThrift:
	case "":
		condition = entity.ConditionNew
	default:
		return nil, ValidationError("unknown product condition")
	}

	product := &entity.Product{
		Name:          name,
		Slug:          slug,
		Description:   sanitize.Clean(in.Description, 5000),
		Price:         sanitize.Money(in.Price),
		OriginalPrice: sanitize.Money(in.OriginalPrice),
		CategoryID:    in.CategoryID,
		InStock:       in.InStock,
		IsFeatured:    in.IsFeatured,
		IsNew:         in.IsNew,
		IsOffer:       in.IsOffer,
		Condition:     condition,
		CreatedAt:     time.Now().UTC(),
	}
	for i, url := range in.Images {
		product.Images = append(product.Images, entity.ProductImage{URL: url, SortOrder: i})
	}
	for i, v := range in.Variations {
		if v.Label == "" || v.Value == "" {
			continue
		}
		product.Variations = append(product.Variations, entity.ProductVariation{Label: v.Label, Value: v.Value, SortOrder: i})
	}
	return product, nil
}
