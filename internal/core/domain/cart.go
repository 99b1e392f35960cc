package domain

import (
	"math"
	"time"
)

// CartItem is one line of the shared cart.
type CartItem struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Cart is the cart view with its computed total.
type Cart struct {
	Items []*CartItem `json:"items"`
	Total float64     `json:"total"`
}

// RoundPrice rounds an amount to cents.
func RoundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
