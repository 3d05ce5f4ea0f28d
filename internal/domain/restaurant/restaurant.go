// Package restaurant defines the restaurant domain entity.
package restaurant

import "time"

// Restaurant is a customer or prospect site. A single site can sit on
// both business lines: buying gas and supplying used cooking oil.
type Restaurant struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	GasCustomer bool      `json:"gas_customer"`
	UCOSupplier bool      `json:"uco_supplier"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateRequest holds the fields needed to register a restaurant.
type CreateRequest struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	GasCustomer bool   `json:"gas_customer"`
	UCOSupplier bool   `json:"uco_supplier"`
}
