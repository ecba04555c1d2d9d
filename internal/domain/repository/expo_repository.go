package repository

import (
	"context"

	"github.com/webmuseum/expo-api/internal/domain/entity"
)

// ExpoRepository defines the interface for exhibition persistence. Lookups go
// through the business key (slug), not the storage id.
type ExpoRepository interface {
	Create(ctx context.Context, e *entity.Expo) error
	GetByExpoID(ctx context.Context, expoID string) (*entity.Expo, error)
	List(ctx context.Context) ([]*entity.Expo, error)
	Update(ctx context.Context, e *entity.Expo) error
	DeleteByExpoID(ctx context.Context, expoID string) error
}
