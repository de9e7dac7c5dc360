package service

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/arjan001/sonya-stores-sub001/internal/entity"
)

func validOrderRequest() CreateOrderRequest {
	return CreateOrderRequest{
		CustomerName:    "Jane",
		CustomerPhone:   "0712345678",
		DeliveryAddress: "CBD",
		Items: []OrderItemInput{
			{ProductID: "p1", Name: "Shoe", UnitPrice: 1000, Quantity: 2},
		},
		Subtotal:    2000,
		DeliveryFee: 200,
		Total:       2200,
	}
}

func TestBuildOrderValidPayload(t *testing.T) {
	order, err := BuildOrder(validOrderRequest())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if order.OrderNumber == "" {
		t.Error("expected an order number to be generated")
	}
	if order.Status != entity.OrderStatusPending {
		t.Errorf("expected status %q, got %q", entity.OrderStatusPending, order.Status)
	}
	if order.PaymentMethod != entity.PaymentCashOnDelivery {
		t.Errorf("expected default payment method, got %q", order.PaymentMethod)
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(order.Items))
	}
	if order.Items[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", order.Items[0].Quantity)
	}
	if order.Total != order.Subtotal+order.DeliveryFee {
		t.Errorf("expected total %v, got %v", order.Subtotal+order.DeliveryFee, order.Total)
	}
}

func TestBuildOrderRejectsMissingName(t *testing.T) {
	req := validOrderRequest()
	req.CustomerName = "   "
	assertValidationError(t, req, "name")
}

func TestBuildOrderRejectsBadPhone(t *testing.T) {
	req := validOrderRequest()
	req.CustomerPhone = "12345"
	assertValidationError(t, req, "phone")
}

func TestBuildOrderRejectsBadEmail(t *testing.T) {
	req := validOrderRequest()
	req.CustomerEmail = "not-an-email"
	assertValidationError(t, req, "email")
}

func TestBuildOrderAllowsEmptyEmail(t *testing.T) {
	req := validOrderRequest()
	req.CustomerEmail = ""
	if _, err := BuildOrder(req); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestBuildOrderRejectsEmptyItems(t *testing.T) {
	req := validOrderRequest()
	req.Items = nil
	assertValidationError(t, req, "items")
}

func TestBuildOrderRejectsTooManyItems(t *testing.T) {
	req := validOrderRequest()
	req.Items = nil
	for i := 0; i <= maxOrderItems; i++ {
		req.Items = append(req.Items, OrderItemInput{ProductID: "p1", Name: "Shoe", UnitPrice: 10, Quantity: 1})
	}
	assertValidationError(t, req, "items")
}

func TestBuildOrderClampsQuantity(t *testing.T) {
	req := validOrderRequest()
	req.Items[0].Quantity = 1000
	order, err := BuildOrder(req)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if order.Items[0].Quantity != maxItemQuantity {
		t.Errorf("expected quantity clamped to %d, got %d", maxItemQuantity, order.Items[0].Quantity)
	}
}

func TestBuildOrderCoercesNegativeMoney(t *testing.T) {
	req := validOrderRequest()
	req.DeliveryFee = -500
	order, err := BuildOrder(req)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if order.DeliveryFee != 0 {
		t.Errorf("expected delivery fee coerced to 0, got %v", order.DeliveryFee)
	}
}

func TestBuildOrderRejectsUnknownPaymentMethod(t *testing.T) {
	req := validOrderRequest()
	req.PaymentMethod = "barter"
	assertValidationError(t, req, "payment")
}

func TestBuildOrderSanitizesFields(t *testing.T) {
	req := validOrderRequest()
	req.CustomerName = " Jane <b>Doe</b> "
	req.Notes = "ring the <bell>"
	order, err := BuildOrder(req)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if strings.ContainsAny(order.CustomerName, "<>") {
		t.Errorf("expected angle brackets stripped from name, got %q", order.CustomerName)
	}
	if strings.ContainsAny(order.Notes, "<>") {
		t.Errorf("expected angle brackets stripped from notes, got %q", order.Notes)
	}
}

func TestGenerateOrderNumberFormat(t *testing.T) {
	re := regexp.MustCompile(`^ORD-\d{8}-[0-9A-F]{6}$`)
	for i := 0; i < 10; i++ {
		n := generateOrderNumber()
		if !re.MatchString(n) {
			t.Fatalf("unexpected order number format: %q", n)
		}
	}
}

func TestOrderConfirmationHTML(t *testing.T) {
	order, err := BuildOrder(validOrderRequest())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	html := orderConfirmationHTML(order)
	if !strings.Contains(html, order.OrderNumber) {
		t.Error("expected confirmation email to mention the order number")
	}
	if !strings.Contains(html, "2200.00") {
		t.Error("expected confirmation email to mention the total")
	}
}

func assertValidationError(t *testing.T, req CreateOrderRequest, field string) {
	t.Helper()
	_, err := BuildOrder(req)
	if err == nil {
		t.Fatalf("expected a validation error for %s", field)
	}
	var ve ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}
