// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// StockItem representa um produto do catálogo de estoque
type StockItem struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`
	AveragePrice float64   `json:"average_price"`
	TotalPrice   float64   `json:"total_price"`
	ImageURL     *string   `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateStockItemRequest é a requisição de cadastro de um novo item
type CreateStockItemRequest struct {
	Name         string  `json:"name" validate:"required"`
	Quantity     int     `json:"quantity" validate:"gte=0"`
	AveragePrice float64 `json:"average_price" validate:"gte=0"`
	ImageURL     *string `json:"image_url"`
}

// UpdateStockItemRequest é a requisição de atualização parcial de um item.
// Campos nil são mantidos como estão no banco.
type UpdateStockItemRequest struct {
	ID           int      `json:"id"`
	Name         *string  `json:"name"`
	Quantity     *int     `json:"quantity" validate:"omitempty,gte=0"`
	AveragePrice *float64 `json:"average_price" validate:"omitempty,gte=0"`
	ImageURL     *string  `json:"image_url"`
}
