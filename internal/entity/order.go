package entity

import "time"

// Order statuses. The status column is free-form text in the schema; these
// are the values the admin UI writes.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Payment methods accepted at checkout.
const (
	PaymentCashOnDelivery = "cash_on_delivery"
	PaymentMobileMoney    = "mobile_money"
	PaymentChatOrder      = "chat_order"
)

type Order struct {
	ID              int         `json:"id"`
	OrderNumber     string      `json:"order_number"`
	CustomerName    string      `json:"customer_name"`
	CustomerPhone   string      `json:"customer_phone"`
	CustomerEmail   string      `json:"customer_email,omitempty"`
	DeliveryAddress string      `json:"delivery_address"`
	DeliveryFee     float64     `json:"delivery_fee"`
	Subtotal        float64     `json:"subtotal"`
	Total           float64     `json:"total"`
	Notes           string      `json:"notes,omitempty"`
	Status          string      `json:"status"`
	PaymentMethod   string      `json:"payment_method"`
	TransactionCode string      `json:"transaction_code,omitempty"`
	Items           []OrderItem `json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
}

// OrderItem snapshots the product at purchase time so historical orders
// stay stable when the catalog changes.
type OrderItem struct {
	ID        int     `json:"id"`
	OrderID   int     `json:"order_id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Variation string  `json:"variation,omitempty"`
	ImageURL  string  `json:"image_url,omitempty"`
}
