package api

import (
	"github.com/labstack/echo/v4"

	"github.com/arjan001/sonya-stores-sub001/internal/entity"
	"github.com/arjan001/sonya-stores-sub001/internal/service"
)

// AdminHandler exposes the back-office CRUD quartets. Every route here sits
// behind AdminGuard, so handlers never re-check the session.
type AdminHandler struct {
	productService   *service.ProductService
	catalogService   *service.CatalogService
	adminService     *service.AdminService
	analyticsService *service.AnalyticsService
}

func NewAdminHandler(productService *service.ProductService, catalogService *service.CatalogService,
	adminService *service.AdminService, analyticsService *service.AnalyticsService) *AdminHandler {
	return &AdminHandler{
		productService:   productService,
		catalogService:   catalogService,
		adminService:     adminService,
		analyticsService: analyticsService,
	}
}

// --- Products ---

func (h *AdminHandler) ListProducts(c echo.Context) error {
	limit := intQuery(c, "limit", 100, 1, 500)
	offset := intQuery(c, "offset", 0, 0, 1<<30)
	products, err := h.productService.ListProducts(c.Request().Context(), "", limit, offset)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, products)
}

func (h *AdminHandler) CreateProduct(c echo.Context) error {
	in := service.ProductInput{}
	if err := c.Bind(&in); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	product, err := h.productService.CreateProduct(c.Request().Context(), in)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, product)
}

func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return jsonError(c, err)
	}
	in := service.ProductInput{}
	if err := c.Bind(&in); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	product, err := h.productService.UpdateProduct(c.Request().Context(), id, in)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, product)
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	id, err := queryID(c)
	if err != nil {
		return jsonError(c, err)
	}
	if err := h.productService.DeleteProduct(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, map[string]string{"message": "Product deleted"})
}

// --- Categories ---

func (h *AdminHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalogService.ListCategories(c.Request().Context(), false)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, categories)
}

func (h *AdminHandler) CreateCategory(c echo.Context) error {
	in := service.CategoryInput{}
	if err := c.Bind(&in); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	category, err := h.catalogService.CreateCategory(c.Request().Context(), in)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, category)
}

func (h *AdminHandler) UpdateCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return jsonError(c, err)
	}
	in := service.CategoryInput{}
	if err := c.Bind(&in); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	category, err := h.catalogService.UpdateCategory(c.Request().Context(), id, in)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, category)
}

func (h *AdminHandler) DeleteCategory(c echo.Context) error {
	id, err := queryID(c)
	if err != nil {
		return jsonError(c, err)
	}
	if err := h.catalogService.DeleteCategory(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, map[string]string{"message": "Category deleted"})
}

// --- Delivery locations ---

func (h *AdminHandler) ListDeliveryLocations(c echo.Context) error {
	locations, err := h.catalogService.ListDeliveryLocations(c.Request().Context(), false)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, locations)
}

func (h *AdminHandler) CreateDeliveryLocation(c echo.Context) error {
	l := entity.DeliveryLocation{}
	if err := c.Bind(&l); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	created, err := h.catalogService.CreateDeliveryLocation(c.Request().Context(), l)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, created)
}

func (h *AdminHandler) UpdateDeliveryLocation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return jsonError(c, err)
	}
	l := entity.DeliveryLocation{}
	if err := c.Bind(&l); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	updated, err := h.catalogService.UpdateDeliveryLocation(c.Request().Context(), id, l)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, updated)
}

func (h *AdminHandler) DeleteDeliveryLocation(c echo.Context) error {
	id, err := queryID(c)
	if err != nil {
		return jsonError(c, err)
	}
	if err := h.catalogService.DeleteDeliveryLocation(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, map[string]string{"message": "Location deleted"})
}

// --- Offers ---

func (h *AdminHandler) ListOffers(c echo.Context) error {
	offers, err := h.catalogService.ListOffers(c.Request().Context(), false)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, offers)
}

func (h *AdminHandler) CreateOffer(c echo.Context) error {
	o := entity.Offer{}
	if err := c.Bind(&o); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	created, err := h.catalogService.CreateOffer(c.Request().Context(), o)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, created)
}

func (h *AdminHandler) UpdateOffer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return jsonError(c, err)
	}
	o := entity.Offer{}
	if err := c.Bind(&o); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	updated, err := h.catalogService.UpdateOffer(c.Request().Context(), id, o)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, updated)
}

func (h *AdminHandler) DeleteOffer(c echo.Context) error {
	id, err := queryID(c)
	if err != nil {
		return jsonError(c, err)
	}
	if err := h.catalogService.DeleteOffer(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, map[string]string{"message": "Offer deleted"})
}

// --- Banners ---

func (h *AdminHandler) ListBanners(c echo.Context) error {
	banners, err := h.catalogService.ListBanners(c.Request().Context(), false)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, banners)
}

func (h *AdminHandler) CreateBanner(c echo.Context) error {
	b := entity.Banner{}
	if err := c.Bind(&b); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	created, err := h.catalogService.CreateBanner(c.Request().Context(), b)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, created)
}

func (h *AdminHandler) UpdateBanner(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return jsonError(c, err)
	}
	b := entity.Banner{}
	if err := c.Bind(&b); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	updated, err := h.catalogService.UpdateBanner(c.Request().Context(), id, b)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, updated)
}

func (h *AdminHandler) DeleteBanner(c echo.Context) error {
	id, err := queryID(c)
	if err != nil {
		return jsonError(c, err)
	}
	if err := h.catalogService.DeleteBanner(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, map[string]string{"message": "Banner deleted"})
}

// --- Policies ---

func (h *AdminHandler) ListPolicies(c echo.Context) error {
	policies, err := h.catalogService.ListPolicies(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, policies)
}

func (h *AdminHandler) CreatePolicy(c echo.Context) error {
	p := entity.Policy{}
	if err := c.Bind(&p); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	created, err := h.catalogService.CreatePolicy(c.Request().Context(), p)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, created)
}

func (h *AdminHandler) UpdatePolicy(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return jsonError(c, err)
	}
	p := entity.Policy{}
	if err := c.Bind(&p); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	updated, err := h.catalogService.UpdatePolicy(c.Request().Context(), id, p)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, updated)
}

func (h *AdminHandler) DeletePolicy(c echo.Context) error {
	id, err := queryID(c)
	if err != nil {
		return jsonError(c, err)
	}
	if err := h.catalogService.DeletePolicy(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, map[string]string{"message": "Policy deleted"})
}

// --- Newsletter subscribers ---

func (h *AdminHandler) ListSubscribers(c echo.Context) error {
	subs, err := h.catalogService.ListSubscribers(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, subs)
}

func (h *AdminHandler) DeleteSubscriber(c echo.Context) error {
	id, err := queryID(c)
	if err != nil {
		return jsonError(c, err)
	}
	if err := h.catalogService.DeleteSubscriber(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, map[string]string{"message": "Subscriber deleted"})
}

// --- Admin users ---

func (h *AdminHandler) ListAdmins(c echo.Context) error {
	admins, err := h.adminService.ListAdmins(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, admins)
}

func (h *AdminHandler) CreateAdmin(c echo.Context) error {
	in := service.AdminInput{}
	if err := c.Bind(&in); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	admin, err := h.adminService.CreateAdmin(c.Request().Context(), in)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, admin)
}

func (h *AdminHandler) UpdateAdmin(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return jsonError(c, err)
	}
	in := service.AdminInput{}
	if err := c.Bind(&in); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	admin, err := h.adminService.UpdateAdmin(c.Request().Context(), id, in)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, admin)
}

func (h *AdminHandler) DeleteAdmin(c echo.Context) error {
	id, err := queryID(c)
	if err != nil {
		return jsonError(c, err)
	}
	if err := h.adminService.DeleteAdmin(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, map[string]string{"message": "Admin deleted"})
}

// --- Analytics ---

// AnalyticsSummary --> GET /admin/analytics?days=N
func (h *AdminHandler) AnalyticsSummary(c echo.Context) error {
	days := intQuery(c, "days", 30, 1, 365)
	summary, err := h.analyticsService.Summary(c.Request().Context(), days)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(200, summary)
}
