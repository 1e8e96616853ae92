package models

import (
	"fmt"
	"math"
	"time"
)

// Order statuses. Delivered and cancelled are terminal: no transition may
// leave them.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

var OrderStatuses = map[string]bool{
	StatusPending:    true,
	StatusProcessing: true,
	StatusShipped:    true,
	StatusDelivered:  true,
	StatusCancelled:  true,
}

var PaymentMethods = map[string]bool{
	"card":   true,
	"paypal": true,
	"bank":   true,
	"cod":    true,
}

// OrderItem is a snapshot taken at order time. Name and price are copied from
// the live product so historical orders stay immutable when the catalog
// changes.
type OrderItem struct {
	ProductID string  `json:"productid" bson:"productid"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

type ShippingAddress struct {
	Street     string `json:"street,omitempty" bson:"street,omitempty"`
	City       string `json:"city,omitempty" bson:"city,omitempty"`
	State      string `json:"state,omitempty" bson:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty" bson:"postal_code,omitempty"`
	Country    string `json:"country,omitempty" bson:"country,omitempty"`
}

type Order struct {
	OrderID       string          `json:"orderid" bson:"orderid"`
	OrderNumber   string          `json:"order_number" bson:"order_number"`
	UserID        string          `json:"userid" bson:"userid"`
	Items         []OrderItem     `json:"items" bson:"items"`
	Total         float64         `json:"total" bson:"total"`
	Status        string          `json:"status" bson:"status"`
	PaymentMethod string          `json:"payment_method" bson:"payment_method"`
	PaymentStatus string          `json:"payment_status" bson:"payment_status"`
	Shipping      ShippingAddress `json:"shipping" bson:"shipping"`
	CreatedAt     time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// ComputeTotal sums price*quantity over the line items. The server always
// recomputes the total from its own product snapshots; a client-supplied
// total is never trusted.
func ComputeTotal(items []OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return math.Round(total*100) / 100
}

// FormatOrderNumber renders the human-readable order number for a sequence
// value, e.g. CMD-0042.
func FormatOrderNumber(seq int64) string {
	return fmt.Sprintf("CMD-%04d", seq)
}

// IsTerminalStatus reports whether no further transition is allowed.
func IsTerminalStatus(status string) bool {
	return status == StatusDelivered || status == StatusCancelled
}

// CanTransition reports whether an order may move from one status to another.
// Terminal states are frozen; everything else may advance to any known
// status, including cancellation.
func CanTransition(from, to string) bool {
	if !OrderStatuses[to] || from == to {
		return false
	}
	return !IsTerminalStatus(from)
}

// LoyaltyPointsFor awards one point per whole currency unit spent.
func LoyaltyPointsFor(total float64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(total))
}

// Per-unit environmental impact estimates credited to the buyer on each
// completed order.
const (
	co2SavedPerUnit   = 0.8  // kg
	waterSavedPerUnit = 12.5 // liters
)

// EstimateImpact returns the environmental-impact credit for a set of line
// items: CO2 saved, water saved, and units recycled.
func EstimateImpact(items []OrderItem) (co2 float64, water float64, units int) {
	for _, it := range items {
		units += it.Quantity
	}
	co2 = math.Round(co2SavedPerUnit*float64(units)*100) / 100
	water = math.Round(waterSavedPerUnit*float64(units)*100) / 100
	return co2, water, units
}
