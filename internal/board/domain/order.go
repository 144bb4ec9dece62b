package domain

import "time"

// Order represents one customer purchase as reported by the remote order
// service. Everything except Status is immutable once fetched; Status is
// patched locally after the service acknowledges a transition.
type Order struct {
	ID         int64       `json:"id"`
	CreatedAt  time.Time   `json:"created_at"`
	TotalPrice float64     `json:"total_price"`
	Status     Status      `json:"status"`
	Customer   Customer    `json:"customer"`
	Restaurant Restaurant  `json:"restaurant"`
	Items      []OrderItem `json:"items"`
}

// Customer is the denormalized purchaser reference embedded in an order.
type Customer struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// Restaurant is the denormalized restaurant reference embedded in an order.
// The remote service keys restaurants by opaque string ids.
type Restaurant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber int64  `json:"phone_number"`
}

// OrderItem is a line of the purchase snapshot.
type OrderItem struct {
	ID       int64   `json:"id"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Product  Product `json:"product"`
}

// Product describes the menu item an order line refers to.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}
