package models

import "time"

// Notification types
const (
	NotifOrderPlaced = "order_placed"
	NotifOrderStatus = "order_status"
	NotifLoyalty     = "loyalty"
	NotifSystem      = "system"
)

// Notification is immutable apart from the Read flag. Created only as a side
// effect of other operations, never directly by end users.
type Notification struct {
	NotifID   string    `json:"notifid" bson:"notifid"`
	UserID    string    `json:"userid" bson:"userid"`
	Type      string    `json:"type" bson:"type"`
	Title     string    `json:"title" bson:"title"`
	Message   string    `json:"message" bson:"message"`
	Read      bool      `json:"read" bson:"read"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
