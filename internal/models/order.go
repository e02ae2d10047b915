package models

import (
	"encoding/json"
	"time"
)

// Shipping and payment method values accepted at checkout.
const (
	ShippingStandard = "standard"
	ShippingExpress  = "express"

	PaymentCard   = "card"
	PaymentKlarna = "klarna"
)

// OrderStatusPlaced is the only status the demo backend ever writes.
const OrderStatusPlaced = "PLACED"

// ShippingAddress is stored denormalized on the order as JSON.
type ShippingAddress struct {
	First   string `json:"first"`
	Last    string `json:"last"`
	Addr    string `json:"addr"`
	City    string `json:"city"`
	Postal  string `json:"postal"`
	Country string `json:"country"`
}

// Order is a placed order header. Item rows live in order_items.
type Order struct {
	ID              string          `db:"id" json:"id"`
	UserID          string          `db:"user_id" json:"userId"`
	Email           string          `db:"email" json:"email"`
	ShippingAddress json.RawMessage `db:"shipping_address" json:"shippingAddress"`
	ShippingMethod  string          `db:"shipping_method" json:"shippingMethod"`
	PaymentMethod   string          `db:"payment_method" json:"paymentMethod"`
	SubtotalCents   int             `db:"subtotal_cents" json:"subtotalCents"`
	ShippingCents   int             `db:"shipping_cents" json:"shippingCents"`
	TaxCents        int             `db:"tax_cents" json:"taxCents"`
	TotalCents      int             `db:"total_cents" json:"totalCents"`
	Status          string          `db:"status" json:"status"`
	CreatedAt       time.Time       `db:"created_at" json:"createdAt"`

	Items []OrderItem `db:"-" json:"items,omitempty"`
}

// OrderItem is a line on an order. Product name and unit price are
// captured at purchase time so later catalog edits do not rewrite history.
type OrderItem struct {
	ID             int    `db:"id" json:"id"`
	OrderID        string `db:"order_id" json:"orderId"`
	ProductID      string `db:"product_id" json:"productId"`
	ProductName    string `db:"product_name" json:"productName"`
	UnitPriceCents int    `db:"unit_price_cents" json:"unitPriceCents"`
	Qty            int    `db:"qty" json:"qty"`
}
