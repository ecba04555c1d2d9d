package repository

import (
	"context"

	"github.com/webmuseum/expo-api/internal/domain/entity"
)

// AccountRepository defines the interface for account persistence.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	List(ctx context.Context) ([]*entity.Account, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}
