package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"gradscout/internal/domain"
	"gradscout/internal/domain/model"
	"gradscout/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*PostgresUserRepo)(nil)

type PostgresUserRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepo(pool *pgxpool.Pool) *PostgresUserRepo {
	return &PostgresUserRepo{pool: pool}
}

func (r *PostgresUserRepo) Create(ctx context.Context, creds *model.Credentials) error {
	const q = `
INSERT INTO users (id, full_name, username, password)
VALUES ($1, $2, $3, $4);
`
	_, err := r.pool.Exec(ctx, q, creds.ID, creds.FullName, creds.Username, creds.Password)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *PostgresUserRepo) FindByUsername(ctx context.Context, username string) (*model.Credentials, error) {
	const q = `
SELECT id, full_name, username, password
  FROM users WHERE username=$1;
`
	row := r.pool.QueryRow(ctx, q, username)
	var c model.Credentials
	if err := row.Scan(&c.ID, &c.FullName, &c.Username, &c.Password); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
