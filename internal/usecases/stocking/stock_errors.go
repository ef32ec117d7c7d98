package stocking

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de estoque
var (
	// Erros de validação
	ErrItemNameRequired  = errors.New("item name is required")
	ErrItemNotFound      = errors.New("stock item not found")
	ErrItemAlreadyExists = errors.New("stock item already exists")
	ErrInsufficientStock = errors.New("insufficient stock quantity")
	ErrInvalidDate       = errors.New("invalid transaction date")

	// Erros de banco de dados
	ErrFetchItems        = errors.New("error fetching stock items from database")
	ErrPersistItem       = errors.New("error persisting stock item")
	ErrFetchTransactions = errors.New("error fetching transactions from database")
	ErrAppendTransaction = errors.New("error appending transaction to log")
)

// StockError é um erro com contexto adicional para operações de estoque
type StockError struct {
	Err      error  // Erro base
	Code     string // Código de erro para API
	ItemName string // Nome do item envolvido (quando aplicável)
	Details  string // Detalhes adicionais
}

// Error implementa a interface error
func (e *StockError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *StockError) Unwrap() error {
	return e.Err
}

// NewStockError cria um novo StockError
func NewStockError(err error, code string, details string) *StockError {
	return &StockError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// NewStockErrorWithItem cria um novo StockError com o nome do item
func NewStockErrorWithItem(err error, code string, itemName string, details string) *StockError {
	return &StockError{
		Err:      err,
		Code:     code,
		ItemName: itemName,
		Details:  details,
	}
}
