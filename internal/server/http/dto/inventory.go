package dto

import "time"

// CreateProductRequest adds an item to the catalog.
type CreateProductRequest struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
}

// ProductResponse represents a catalog item.
type ProductResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
}

// ReceiveBatchRequest records delivered stock.
type ReceiveBatchRequest struct {
	Quantity        int       `json:"quantity"`
	ManufactureDate time.Time `json:"manufactureDate"`
	ExpiryDate      time.Time `json:"expiryDate"`
}

// BatchResponse represents a stock batch with its derived status.
type BatchResponse struct {
	ID              int64     `json:"id"`
	ProductID       int64     `json:"productId"`
	Quantity        int       `json:"quantity"`
	ManufactureDate time.Time `json:"manufactureDate"`
	ExpiryDate      time.Time `json:"expiryDate"`
	Status          string    `json:"status"`
}
