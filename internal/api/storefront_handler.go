package api

import (
	"github.com/labstack/echo/v4"

	"github.com/arjan001/sonya-stores-sub001/internal/service"
)

// StorefrontHandler serves the public, unauthenticated surface.
type StorefrontHandler struct {
	productService   *service.ProductService
	catalogService   *service.CatalogService
	analyticsService *service.AnalyticsService
}

func NewStorefrontHandler(productService *service.ProductService, catalogService *service.CatalogService,
	analyticsService *service.AnalyticsService) *StorefrontHandler {
	return &StorefrontHandler{
		productService:   productService,
		catalogService:   catalogService,
		analyticsService: analyticsService,
	}
}

// Search --> GET /search?q=&category_id=&limit=&offset=
func (h *StorefrontHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	categoryID := intQuery(c, "category_id", 0, 0, 1<<30)
	limit := intQuery(c, "limit", 20, 1, 100)
	offset := intQuery(c, "offset", 0, 0, 1<<30)

	result, err := h.productService.Search(c.Request().Context(), q, categoryID, limit, offset)
	if err != nil {
		return publicError(c, err)
	}
	return c.JSON(200, result)
}

// ListProducts --> GET /products?flag=featured|new|offer
func (h *StorefrontHandler) ListProducts(c echo.Context) error {
	flag := c.QueryParam("flag")
	limit := intQuery(c, "limit", 50, 1, 200)
	offset := intQuery(c, "offset", 0, 0, 1<<30)

	products, err := h.productService.ListProducts(c.Request().Context(), flag, limit, offset)
	if err != nil {
		return publicError(c, err)
	}
	return c.JSON(200, products)
}

// GetProduct --> GET /products/:slug
func (h *StorefrontHandler) GetProduct(c echo.Context) error {
	product, err := h.productService.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return publicError(c, err)
	}
	return c.JSON(200, product)
}

// ListCategories --> GET /categories (active only, with product counts)
func (h *StorefrontHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalogService.ListCategories(c.Request().Context(), true)
	if err != nil {
		return publicError(c, err)
	}
	return c.JSON(200, categories)
}

// ListDeliveryLocations --> GET /delivery-locations (active only)
func (h *StorefrontHandler) ListDeliveryLocations(c echo.Context) error {
	locations, err := h.catalogService.ListDeliveryLocations(c.Request().Context(), true)
	if err != nil {
		return publicError(c, err)
	}
	return c.JSON(200, locations)
}

// ListOffers --> GET /offers (active only)
func (h *StorefrontHandler) ListOffers(c echo.Context) error {
	offers, err := h.catalogService.ListOffers(c.Request().Context(), true)
	if err != nil {
		return publicError(c, err)
	}
	return c.JSON(200, offers)
}

// ListBanners --> GET /banners (active only)
func (h *StorefrontHandler) ListBanners(c echo.Context) error {
	banners, err := h.catalogService.ListBanners(c.Request().Context(), true)
	if err != nil {
		return publicError(c, err)
	}
	return c.JSON(200, banners)
}

// GetPolicy --> GET /policies/:slug
func (h *StorefrontHandler) GetPolicy(c echo.Context) error {
	policy, err := h.catalogService.GetPolicyBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return publicError(c, err)
	}
	return c.JSON(200, policy)
}

// Subscribe --> POST /newsletter
func (h *StorefrontHandler) Subscribe(c echo.Context) error {
	body := struct {
		Email string `json:"email"`
	}{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	if err := h.catalogService.Subscribe(c.Request().Context(), body.Email); err != nil {
		return publicError(c, err)
	}
	return c.JSON(200, map[string]string{"message": "Subscribed"})
}

// TrackView --> POST /track-view (fire-and-forget analytics ping)
func (h *StorefrontHandler) TrackView(c echo.Context) error {
	req := service.TrackViewRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	_ = h.analyticsService.TrackView(c.Request().Context(), req, c.Request().UserAgent())
	return c.JSON(200, map[string]string{"message": "ok"})
}
