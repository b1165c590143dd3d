package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CheckoutRequest carries the shipping details collected at checkout
type CheckoutRequest struct {
	FullName string `bson:"full_name" json:"fullName"`
	Email    string `bson:"email" json:"email"`
	Phone    string `bson:"phone" json:"phone"`
	Address  string `bson:"address" json:"address"`
	City     string `bson:"city" json:"city"`
	State    string `bson:"state" json:"state"`
	Pincode  string `bson:"pincode" json:"pincode"`
}

// OrderItem is a snapshot of one cart entry at checkout
type OrderItem struct {
	DocumentID string `bson:"document_id" json:"documentId"`
	Name       string `bson:"name" json:"name"`
	UnitPrice  string `bson:"unit_price" json:"unitPrice"`
	Quantity   int    `bson:"quantity" json:"quantity"`
	Subtotal   string `bson:"subtotal" json:"subtotal"`
}

// Order represents a placed order
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OrderNumber string             `bson:"order_number" json:"orderNumber"`
	SessionID   string             `bson:"session_id" json:"-"`
	Customer    CheckoutRequest    `bson:"customer" json:"customer"`
	Items       []OrderItem        `bson:"items" json:"items"`
	TotalAmount string             `bson:"total_amount" json:"totalAmount"`
	Status      string             `bson:"status" json:"status"` // e.g., "placed"
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}
