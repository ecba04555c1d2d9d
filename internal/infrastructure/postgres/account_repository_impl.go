package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/webmuseum/expo-api/internal/domain/entity"
	"github.com/webmuseum/expo-api/internal/domain/repository"
)

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicate
	}
	return err
}

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (email, password_hash, first_name, last_name, middle_name, gender, birth_date, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, a.Email, a.PasswordHash, a.FirstName, a.LastName, a.MiddleName, a.Gender, a.BirthDate, a.Phone)

	return translate(row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt))
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	return r.getBy(ctx, "id", id)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.getBy(ctx, "lower(email)", email)
}

func (r *AccountRepository) getBy(ctx context.Context, column, value string) (*entity.Account, error) {
	a := &entity.Account{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, first_name, last_name, middle_name, gender, birth_date, phone, created_at, updated_at
		FROM accounts
		WHERE `+column+` = $1
	`, value)

	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.FirstName, &a.LastName,
		&a.MiddleName, &a.Gender, &a.BirthDate, &a.Phone, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, translate(err)
	}

	return a, nil
}

func (r *AccountRepository) List(ctx context.Context) ([]*entity.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, password_hash, first_name, last_name, middle_name, gender, birth_date, phone, created_at, updated_at
		FROM accounts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Account
	for rows.Next() {
		a := &entity.Account{}
		if err := rows.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.FirstName, &a.LastName,
			&a.MiddleName, &a.Gender, &a.BirthDate, &a.Phone, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AccountRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
