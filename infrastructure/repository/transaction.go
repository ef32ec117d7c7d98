package repository

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/wbarros/stock-control-api/infrastructure/database/postgres"
)

const (
	transactionsTable = "transactions"
)

// TransactionRepository guarda o log de movimentações como linhas de texto
// livres. O formato de cada linha é interpretado pelo pacote insighting.
type TransactionRepository interface {
	Append(description string) error
	ListDescriptions() ([]string, error)
}

type transactionRepository struct {
	conn *postgres.Connection
}

func NewTransactionRepository(conn *postgres.Connection) TransactionRepository {
	return &transactionRepository{
		conn: conn,
	}
}

func (r *transactionRepository) Append(description string) error {
	query, args, err := squirrel.
		Insert(transactionsTable).
		Columns("description").
		Values(description).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.DB.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao registrar transação: %w", err)
	}

	return nil
}

// ListDescriptions retorna todas as linhas na ordem de inserção.
func (r *transactionRepository) ListDescriptions() ([]string, error) {
	query, args, err := squirrel.
		Select("description").
		From(transactionsTable).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	descriptions := make([]string, 0)
	for rows.Next() {
		var description string
		if err := rows.Scan(&description); err != nil {
			return nil, fmt.Errorf("erro ao escanear transação: %w", err)
		}
		descriptions = append(descriptions, description)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return descriptions, nil
}
