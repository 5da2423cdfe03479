package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ad-intel-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-intel-api/internal/domain"
)

const (
	userTable = "users"
)

//go:generate mockgen -source=user.go -destination=mocks/user_mock.go -package=mocks
type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	GetUserByEmail(email string) (*domain.User, error)
	GetUserByID(id int) (*domain.User, error)
	ListUser() ([]*domain.User, error)
	UpdateUser(user *domain.User) error
	UpdatePassword(userID int, passwordHash string) error
}

type userRepository struct {
	conn postgres.Queryer
}

func NewUserRepository(conn *postgres.Connection) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

var userColumns = []string{
	"id", "name", "lastname", "email", "password_hash",
	"active", "role_id", "deleted", "deleted_at", "created_at", "updated_at",
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	sqlQuery, args, err := squirrel.
		Insert(userTable).
		Columns("name", "lastname", "email", "password_hash", "active", "role_id", "created_at", "updated_at").
		Values(user.Name, user.Lastname, user.Email, user.PasswordHash, user.Active, user.RoleID, user.CreatedAt, user.UpdatedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(sqlQuery, args...).Scan(&user.ID); err != nil {
		return nil, fmt.Errorf("erro ao inserir usuário: %w", err)
	}

	return user, nil
}

func (r *userRepository) GetUserByEmail(email string) (*domain.User, error) {
	return r.getUserBy(squirrel.Eq{"email": email})
}

func (r *userRepository) GetUserByID(id int) (*domain.User, error) {
	return r.getUserBy(squirrel.Eq{"id": id})
}

func (r *userRepository) getUserBy(cond squirrel.Eq) (*domain.User, error) {
	sqlQuery, args, err := squirrel.
		Select(userColumns...).
		From(userTable).
		Where(cond).
		Where(squirrel.Eq{"deleted": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	user := &domain.User{}
	err = r.conn.QueryRow(sqlQuery, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Lastname,
		&user.Email,
		&user.PasswordHash,
		&user.Active,
		&user.RoleID,
		&user.Deleted,
		&user.DeletedAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar usuário: %w", err)
	}

	return user, nil
}

func (r *userRepository) ListUser() ([]*domain.User, error) {
	sqlQuery, args, err := squirrel.
		Select(userColumns...).
		From(userTable).
		Where(squirrel.Eq{"deleted": false}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{}
		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Lastname,
			&user.Email,
			&user.PasswordHash,
			&user.Active,
			&user.RoleID,
			&user.Deleted,
			&user.DeletedAt,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler usuário: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *userRepository) UpdateUser(user *domain.User) error {
	user.UpdatedAt = time.Now()

	sqlQuery, args, err := squirrel.
		Update(userTable).
		Set("name", user.Name).
		Set("lastname", user.Lastname).
		Set("email", user.Email).
		Set("active", user.Active).
		Set("role_id", user.RoleID).
		Set("deleted", user.Deleted).
		Set("deleted_at", user.DeletedAt).
		Set("updated_at", user.UpdatedAt).
		Where(squirrel.Eq{"id": user.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao atualizar usuário: %w", err)
	}

	return nil
}

func (r *userRepository) UpdatePassword(userID int, passwordHash string) error {
	sqlQuery, args, err := squirrel.
		Update(userTable).
		Set("password_hash", passwordHash).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("erro ao atualizar senha: %w", err)
	}

	return nil
}
