package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/clinic-intake-api/infrastructure/database/postgres"
	"github.com/vfg2006/clinic-intake-api/internal/domain"
	"github.com/vfg2006/clinic-intake-api/pkg/utils"
)

const (
	usersTable = "users"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

type userRepository struct {
	conn postgres.Queryer
}

func NewUserRepository(conn postgres.Queryer) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar id do usuário")
	}

	query, args, err := squirrel.
		Insert(usersTable).
		Columns("id", "username", "password_hash", "role").
		Values(id, user.Username, user.PasswordHash, string(user.Role)).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&user.CreatedAt)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao inserir usuário %s", user.Username)
	}

	user.ID = id
	return user, nil
}

// GetUserByUsername faz busca exata pelo nome de usuário. Usuário inexistente
// retorna (nil, nil).
func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query, args, err := squirrel.
		Select("id", "username", "password_hash", "role", "created_at").
		From(usersTable).
		Where(squirrel.Eq{"username": username}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	var (
		user domain.User
		role string
	)
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&role,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar usuário")
	}

	user.Role = domain.Role(role)
	return &user, nil
}
