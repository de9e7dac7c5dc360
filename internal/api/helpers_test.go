package api

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/arjan001/sonya-stores-sub001/internal/service"
)

func newTestContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestJSONErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{service.ValidationError("bad input"), 400},
		{sql.ErrNoRows, 404},
		{errors.New("connection reset"), 500},
	}
	for _, tc := range cases {
		c, rec := newTestContext("/")
		if err := jsonError(c, tc.err); err != nil {
			t.Fatalf("jsonError returned %v", err)
		}
		if rec.Code != tc.code {
			t.Errorf("error %v: expected status %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}

func TestPublicErrorHidesInternalDetail(t *testing.T) {
	c, rec := newTestContext("/")
	if err := publicError(c, errors.New("dial tcp 127.0.0.1:3306: connect: connection refused")); err != nil {
		t.Fatalf("publicError returned %v", err)
	}
	if rec.Code != 500 {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "3306") || strings.Contains(body, "dial tcp") {
		t.Errorf("driver detail leaked to the public surface: %s", body)
	}
	if !strings.Contains(body, "internal server error") {
		t.Errorf("expected the fixed message, got: %s", body)
	}
}

func TestPublicErrorKeepsCallerFacingCodes(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{service.ValidationError("phone fragment too short"), 400},
		{sql.ErrNoRows, 404},
	}
	for _, tc := range cases {
		c, rec := newTestContext("/")
		if err := publicError(c, tc.err); err != nil {
			t.Fatalf("publicError returned %v", err)
		}
		if rec.Code != tc.code {
			t.Errorf("error %v: expected status %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}

func TestIntQueryClamps(t *testing.T) {
	cases := []struct {
		target string
		want   int
	}{
		{"/?limit=20", 20},
		{"/?limit=9999", 200},
		{"/?limit=0", 1},
		{"/?limit=abc", 50},
		{"/", 50},
	}
	for _, tc := range cases {
		c, _ := newTestContext(tc.target)
		if got := intQuery(c, "limit", 50, 1, 200); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.target, tc.want, got)
		}
	}
}

func TestQueryIDRejectsBadValues(t *testing.T) {
	for _, target := range []string{"/", "/?id=abc", "/?id=0", "/?id=-4"} {
		c, _ := newTestContext(target)
		if _, err := queryID(c); err == nil {
			t.Errorf("%s: expected an error", target)
		}
	}

	c, _ := newTestContext("/?id=12")
	id, err := queryID(c)
	if err != nil || id != 12 {
		t.Errorf("expected id 12, got %d (%v)", id, err)
	}
}

func TestTrackOrdersRequiresLookupParam(t *testing.T) {
	h := NewOrderHandler(nil)
	c, rec := newTestContext("/track-order")
	if err := h.TrackOrders(c); err != nil {
		t.Fatalf("handler returned %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "order_number or phone") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
