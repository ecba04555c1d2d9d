package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/webmuseum/expo-api/internal/domain/entity"
	"github.com/webmuseum/expo-api/internal/domain/repository"
)

type ExpoRepository struct {
	pool *pgxpool.Pool
}

func NewExpoRepository(pool *pgxpool.Pool) *ExpoRepository {
	return &ExpoRepository{pool: pool}
}

func (r *ExpoRepository) Create(ctx context.Context, e *entity.Expo) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO expos (expo_id, title, description, author, photo_url, date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::uuid)
		RETURNING id, created_at, updated_at
	`, e.ExpoID, e.Title, e.Description, e.Author, e.PhotoURL, e.Date, e.CreatedBy)

	return translate(row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt))
}

func (r *ExpoRepository) GetByExpoID(ctx context.Context, expoID string) (*entity.Expo, error) {
	e := &entity.Expo{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, expo_id, title, description, author, photo_url, date, COALESCE(created_by::text, ''), created_at, updated_at
		FROM expos
		WHERE expo_id = $1
	`, expoID)

	if err := row.Scan(&e.ID, &e.ExpoID, &e.Title, &e.Description, &e.Author,
		&e.PhotoURL, &e.Date, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, translate(err)
	}

	return e, nil
}

// List returns every exhibition ordered by its scheduled date.
func (r *ExpoRepository) List(ctx context.Context) ([]*entity.Expo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, expo_id, title, description, author, photo_url, date, COALESCE(created_by::text, ''), created_at, updated_at
		FROM expos
		ORDER BY date ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Expo
	for rows.Next() {
		e := &entity.Expo{}
		if err := rows.Scan(&e.ID, &e.ExpoID, &e.Title, &e.Description, &e.Author,
			&e.PhotoURL, &e.Date, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ExpoRepository) Update(ctx context.Context, e *entity.Expo) error {
	e.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE expos
		SET title = $1, description = $2, author = $3, photo_url = $4, date = $5, updated_at = $6
		WHERE expo_id = $7
	`, e.Title, e.Description, e.Author, e.PhotoURL, e.Date, e.UpdatedAt, e.ExpoID)
	if err != nil {
		return translate(err)
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *ExpoRepository) DeleteByExpoID(ctx context.Context, expoID string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM expos WHERE expo_id = $1`, expoID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ExpoRepository = (*ExpoRepository)(nil)
