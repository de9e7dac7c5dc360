package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/arjan001/sonya-stores-sub001/internal/entity"
	"github.com/arjan001/sonya-stores-sub001/internal/repository"
	"github.com/arjan001/sonya-stores-sub001/internal/sanitize"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const (
	maxOrderItems   = 50
	maxItemQuantity = 100
	trackPhoneMin   = 6
	phoneSearchCap  = 5
)

// ValidationError marks an error as caller-facing; handlers map it to 400.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

type OrderItemInput struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Variation string  `json:"variation"`
	ImageURL  string  `json:"image_url"`
}

type CreateOrderRequest struct {
	CustomerName       string           `json:"customer_name"`
	CustomerEmail      string           `json:"customer_email"`
	CustomerPhone      string           `json:"customer_phone"`
	DeliveryAddress    string           `json:"delivery_address"`
	Notes              string           `json:"notes"`
	Items              []OrderItemInput `json:"items"`
	DeliveryLocationID int              `json:"delivery_location_id"`
	DeliveryFee        float64          `json:"delivery_fee"`
	Subtotal           float64          `json:"subtotal"`
	Total              float64          `json:"total"`
	PaymentMethod      string           `json:"payment_method"`
	TransactionCode    string           `json:"transaction_code"`
}

type OrderService struct {
	orderRepo   *repository.OrderRepository
	catalogRepo *repository.CatalogRepository
	rdb         *redis.Client
	kafkaWriter *kafka.Writer
	mailer      *Mailer
}

func NewOrderService(orderRepo *repository.OrderRepository, catalogRepo *repository.CatalogRepository,
	rdb *redis.Client, kafkaWriter *kafka.Writer, mailer *Mailer) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		catalogRepo: catalogRepo,
		rdb:         rdb,
		kafkaWriter: kafkaWriter,
		mailer:      mailer,
	}
}

// BuildOrder sanitizes and validates the submitted payload into an order
// ready for persistence. It touches no external state.
func BuildOrder(req CreateOrderRequest) (*entity.Order, error) {
	name := sanitize.Clean(req.CustomerName, 120)
	if name == "" {
		return nil, ValidationError("customer name is required")
	}

	phone := sanitize.Clean(req.CustomerPhone, 30)
	if !sanitize.ValidPhone(phone) {
		return nil, ValidationError("invalid phone number")
	}

	email := sanitize.Clean(req.CustomerEmail, 120)
	if email != "" && !sanitize.ValidEmail(email) {
		return nil, ValidationError("invalid email address")
	}

	address := sanitize.Clean(req.DeliveryAddress, 255)
	if address == "" {
		return nil, ValidationError("delivery address is required")
	}

	if len(req.Items) == 0 {
		return nil, ValidationError("order has no items")
	}
	if len(req.Items) > maxOrderItems {
		return nil, ValidationError(fmt.Sprintf("order exceeds %d items", maxOrderItems))
	}

	items := make([]entity.OrderItem, 0, len(req.Items))
	for _, in := range req.Items {
		productID := sanitize.Clean(in.ProductID, 40)
		itemName := sanitize.Clean(in.Name, 200)
		if productID == "" || itemName == "" {
			return nil, ValidationError("order item is missing product id or name")
		}
		items = append(items, entity.OrderItem{
			ProductID: productID,
			Name:      itemName,
			UnitPrice: sanitize.Money(in.UnitPrice),
			Quantity:  sanitize.Quantity(in.Quantity, 1, maxItemQuantity),
			Variation: sanitize.Clean(in.Variation, 120),
			ImageURL:  sanitize.Clean(in.ImageURL, 500),
		})
	}

	payment := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	switch payment {
	case entity.PaymentCashOnDelivery, entity.PaymentMobileMoney, entity.PaymentChatOrder:
	case "":
		payment = entity.PaymentCashOnDelivery
	default:
		return nil, ValidationError("unknown payment method")
	}

	return &entity.Order{
		OrderNumber:     generateOrderNumber(),
		CustomerName:    name,
		CustomerPhone:   phone,
		CustomerEmail:   email,
		DeliveryAddress: address,
		DeliveryFee:     sanitize.Money(req.DeliveryFee),
		Subtotal:        sanitize.Money(req.Subtotal),
		Total:           sanitize.Money(req.Total),
		Notes:           sanitize.Clean(req.Notes, 500),
		Status:          entity.OrderStatusPending,
		PaymentMethod:   payment,
		TransactionCode: sanitize.Clean(req.TransactionCode, 60),
		Items:           items,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// CreateOrder validates the payload, persists the order with its items in one
// transaction and returns the generated order number. The confirmation email
// and the order event publish are fire-and-forget. When idemKey is non-empty
// and already seen, the order number recorded for it is returned instead of
// creating a duplicate.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest, idemKey string) (string, error) {
	order, err := BuildOrder(req)
	if err != nil {
		return "", err
	}

	if idemKey != "" {
		if number, ok := s.checkIdempotencyKey(ctx, idemKey); ok {
			logger.Info().Str("order_number", number).Msg("duplicate order submission deduped")
			return number, nil
		}
	}

	if req.DeliveryLocationID > 0 {
		location, err := s.catalogRepo.GetDeliveryLocation(ctx, req.DeliveryLocationID)
		if err != nil {
			return "", ValidationError("unknown delivery location")
		}
		order.DeliveryFee = location.Fee
	}

	created, err := s.orderRepo.CreateOrder(ctx, order, sanitize.NormalizePhone(order.CustomerPhone))
	if err != nil {
		logger.Error().Err(err).Msg("Error creating order")
		return "", err
	}

	if idemKey != "" {
		s.storeIdempotencyKey(ctx, idemKey, created.OrderNumber)
	}

	go s.publishOrderEvent(created, "created")

	if created.CustomerEmail != "" && s.mailer.Enabled() {
		go func(order entity.Order) {
			if err := s.mailer.SendOrderConfirmation(&order); err != nil {
				logger.Error().Err(err).Str("order_number", order.OrderNumber).Msg("Error sending confirmation email")
			}
		}(*created)
	}

	return created.OrderNumber, nil
}

// TrackOrders resolves the public track-order lookup. Exact match on order
// number; otherwise substring match on the normalized phone, capped at five
// results. No match returns an empty slice, not an error.
func (s *OrderService) TrackOrders(ctx context.Context, orderNumber, phone string) ([]*entity.Order, error) {
	if orderNumber != "" {
		order, err := s.orderRepo.GetOrderByNumber(ctx, strings.TrimSpace(orderNumber))
		if err != nil {
			if isNoRows(err) {
				return []*entity.Order{}, nil
			}
			logger.Error().Err(err).Msg("Error looking up order by number")
			return nil, err
		}
		return []*entity.Order{order}, nil
	}

	fragment := sanitize.NormalizePhone(phone)
	if len(fragment) < trackPhoneMin {
		return nil, ValidationError("phone fragment too short")
	}

	orders, err := s.orderRepo.FindOrdersByPhone(ctx, fragment, phoneSearchCap)
	if err != nil {
		logger.Error().Err(err).Msg("Error searching orders by phone")
		return nil, err
	}
	if orders == nil {
		orders = []*entity.Order{}
	}
	return orders, nil
}

func (s *OrderService) ListOrders(ctx context.Context, status string, limit, offset int) ([]*entity.Order, error) {
	orders, err := s.orderRepo.ListOrders(ctx, status, limit, offset)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing orders")
		return nil, err
	}
	if orders == nil {
		orders = []*entity.Order{}
	}
	return orders, nil
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, id int, status string) error {
	switch status {
	case entity.OrderStatusPending, entity.OrderStatusProcessing, entity.OrderStatusCompleted, entity.OrderStatusCancelled:
	default:
		return ValidationError("unknown order status")
	}
	if err := s.orderRepo.UpdateOrderStatus(ctx, id, status); err != nil {
		if !isNoRows(err) {
			logger.Error().Err(err).Int("order_id", id).Msg("Error updating order status")
		}
		return err
	}
	return nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id int) error {
	if err := s.orderRepo.DeleteOrder(ctx, id); err != nil {
		if !isNoRows(err) {
			logger.Error().Err(err).Int("order_id", id).Msg("Error deleting order")
		}
		return err
	}
	return nil
}

func (s *OrderService) checkIdempotencyKey(ctx context.Context, key string) (string, bool) {
	if s.rdb == nil {
		return "", false
	}
	val, err := s.rdb.Get(ctx, "order-idem:"+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Error().Err(err).Msg("Error checking idempotency key")
		}
		return "", false
	}
	return val, val != ""
}

func (s *OrderService) storeIdempotencyKey(ctx context.Context, key, orderNumber string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Set(ctx, "order-idem:"+key, orderNumber, 24*time.Hour).Err(); err != nil {
		logger.Error().Err(err).Msg("Error storing idempotency key")
	}
}

// publishOrderEvent is best-effort; a broker outage never fails the order.
func (s *OrderService) publishOrderEvent(order *entity.Order, event string) {
	if s.kafkaWriter == nil {
		return
	}
	payload, err := json.Marshal(order)
	if err != nil {
		logger.Error().Err(err).Msg("Error marshalling order event")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order.%s.%s", event, order.OrderNumber)),
		Value: payload,
	}
	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Error().Err(err).Str("order_number", order.OrderNumber).Msg("Error publishing order event")
	}
}

// generateOrderNumber returns a human-readable code like ORD-20260901-4F2A9C,
// distinct from the internal row id.
func generateOrderNumber() string {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("ORD-%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102"), strings.ToUpper(hex.EncodeToString(buf)))
}
