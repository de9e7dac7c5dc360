package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/arjan001/sonya-stores-sub001/internal/service"
)

const testSecret = "test-secret"

func guardedEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	admin := e.Group("/admin", AdminGuard(testSecret))
	admin.GET("/ping", func(c echo.Context) error {
		claims, ok := c.Get("admin").(*jwt.Token).Claims.(*service.AdminClaims)
		if !ok {
			return c.JSON(500, map[string]string{"error": "bad claims"})
		}
		return c.JSON(200, map[string]string{"email": claims.Email})
	})
	return e
}

func mintToken(t *testing.T, secret string, expires time.Time) string {
	t.Helper()
	claims := &service.AdminClaims{
		AdminID: 1,
		Name:    "Root",
		Email:   "root@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestAdminGuardRejectsMissingCookie(t *testing.T) {
	e := guardedEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminGuardAcceptsValidCookie(t *testing.T) {
	e := guardedEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{
		Name:  SessionCookieName,
		Value: mintToken(t, testSecret, time.Now().UTC().Add(time.Hour)),
	})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminGuardRejectsExpiredToken(t *testing.T) {
	e := guardedEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{
		Name:  SessionCookieName,
		Value: mintToken(t, testSecret, time.Now().UTC().Add(-time.Hour)),
	})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminGuardRejectsWrongKey(t *testing.T) {
	e := guardedEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{
		Name:  SessionCookieName,
		Value: mintToken(t, "other-secret", time.Now().UTC().Add(time.Hour)),
	})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRateLimiterCapsBurst(t *testing.T) {
	e := echo.New()
	e.POST("/orders", func(c echo.Context) error {
		return c.JSON(201, map[string]string{"status": "ok"})
	}, RateLimiter(5))

	allowed, denied := 0, 0
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.Header.Set("X-Real-IP", "203.0.113.7")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		switch rec.Code {
		case http.StatusCreated:
			allowed++
		case http.StatusTooManyRequests:
			denied++
		default:
			t.Fatalf("unexpected status %d", rec.Code)
		}
	}
	if allowed != 5 || denied != 5 {
		t.Errorf("expected 5 allowed and 5 denied, got %d/%d", allowed, denied)
	}
}
