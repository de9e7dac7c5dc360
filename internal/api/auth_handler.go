package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arjan001/sonya-stores-sub001/internal/service"
)

type AuthHandler struct {
	adminService *service.AdminService
	secureCookie bool
}

func NewAuthHandler(adminService *service.AdminService, secureCookie bool) *AuthHandler {
	return &AuthHandler{adminService: adminService, secureCookie: secureCookie}
}

// Login --> POST /admin/login
func (h *AuthHandler) Login(c echo.Context) error {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	token, err := h.adminService.Login(c.Request().Context(), body.Email, body.Password,
		c.Request().UserAgent(), c.RealIP())
	if err != nil {
		return c.JSON(401, map[string]string{"error": "invalid credentials"})
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.adminService.SessionTTL()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(200, map[string]string{"message": "Logged in"})
}

// Logout --> POST /admin/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(200, map[string]string{"message": "Logged out"})
}
