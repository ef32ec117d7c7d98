package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/wbarros/stock-control-api/infrastructure/database/postgres"
	"github.com/wbarros/stock-control-api/internal/domain"
)

const (
	usersTable = "users"
)

type UserRepository interface {
	GetUserByUsername(username string) (*domain.User, error)
	GetUserByID(id int) (*domain.User, error)
	UpdatePassword(id int, passwordHash string) error
}

type userRepository struct {
	conn *postgres.Connection
}

func NewUserRepository(conn *postgres.Connection) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (r *userRepository) GetUserByUsername(username string) (*domain.User, error) {
	query, args, err := squirrel.
		Select("id, username, password_hash, created_at, updated_at").
		From(usersTable).
		Where(squirrel.Eq{"username": username}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.scanUser(r.conn.DB.QueryRow(query, args...))
}

func (r *userRepository) GetUserByID(id int) (*domain.User, error) {
	query, args, err := squirrel.
		Select("id, username, password_hash, created_at, updated_at").
		From(usersTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.scanUser(r.conn.DB.QueryRow(query, args...))
}

func (r *userRepository) UpdatePassword(id int, passwordHash string) error {
	query, args, err := squirrel.
		Update(usersTable).
		Set("password_hash", passwordHash).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.DB.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar senha: %w", err)
	}

	return nil
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear usuário: %w", err)
	}

	return user, nil
}
