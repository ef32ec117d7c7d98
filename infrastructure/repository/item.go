package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/wbarros/stock-control-api/infrastructure/database/postgres"
	"github.com/wbarros/stock-control-api/internal/domain"
)

const (
	stockItemsTable = "stock_items"
)

type ItemRepository interface {
	ListItems(search string) ([]*domain.StockItem, error)
	GetItemByID(id int) (*domain.StockItem, error)
	GetItemByName(name string) (*domain.StockItem, error)
	CreateItem(item *domain.StockItem) (*domain.StockItem, error)
	UpdateItem(item *domain.StockItem) error
	DeleteItem(id int) error
}

type itemRepository struct {
	conn *postgres.Connection
}

func NewItemRepository(conn *postgres.Connection) ItemRepository {
	return &itemRepository{
		conn: conn,
	}
}

func (r *itemRepository) ListItems(search string) ([]*domain.StockItem, error) {
	builder := squirrel.
		Select("id, name, quantity, average_price, total_price, image_url, created_at, updated_at").
		From(stockItemsTable).
		OrderBy("created_at DESC, id DESC").
		PlaceholderFormat(squirrel.Dollar)

	if search != "" {
		builder = builder.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	items := make([]*domain.StockItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return items, nil
}

func (r *itemRepository) GetItemByID(id int) (*domain.StockItem, error) {
	query, args, err := squirrel.
		Select("id, name, quantity, average_price, total_price, image_url, created_at, updated_at").
		From(stockItemsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.DB.QueryRow(query, args...)
	item, err := scanItemRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear item: %w", err)
	}

	return item, nil
}

// GetItemByName busca um item pelo nome, sem diferenciar maiúsculas de
// minúsculas. É a consulta usada para obter o custo médio na margem.
func (r *itemRepository) GetItemByName(name string) (*domain.StockItem, error) {
	query, args, err := squirrel.
		Select("id, name, quantity, average_price, total_price, image_url, created_at, updated_at").
		From(stockItemsTable).
		Where("LOWER(name) = LOWER(?)", name).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.DB.QueryRow(query, args...)
	item, err := scanItemRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear item: %w", err)
	}

	return item, nil
}

func (r *itemRepository) CreateItem(item *domain.StockItem) (*domain.StockItem, error) {
	query, args, err := squirrel.
		Insert(stockItemsTable).
		Columns("name", "quantity", "average_price", "total_price", "image_url").
		Values(item.Name, item.Quantity, item.AveragePrice, item.TotalPrice, item.ImageURL).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.DB.QueryRow(query, args...).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("erro ao inserir item: %w", err)
	}

	return item, nil
}

func (r *itemRepository) UpdateItem(item *domain.StockItem) error {
	query, args, err := squirrel.
		Update(stockItemsTable).
		Set("name", item.Name).
		Set("quantity", item.Quantity).
		Set("average_price", item.AveragePrice).
		Set("total_price", item.TotalPrice).
		Set("image_url", item.ImageURL).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": item.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.DB.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar item: %w", err)
	}

	return nil
}

func (r *itemRepository) DeleteItem(id int) error {
	query, args, err := squirrel.
		Delete(stockItemsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.DB.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao excluir item: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(rows *sql.Rows) (*domain.StockItem, error) {
	return scanItemRow(rows)
}

func scanItemRow(row rowScanner) (*domain.StockItem, error) {
	item := &domain.StockItem{}

	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Quantity,
		&item.AveragePrice,
		&item.TotalPrice,
		&item.ImageURL,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return item, nil
}
