package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/webmuseum/expo-api/internal/domain/entity"
	repo "github.com/webmuseum/expo-api/internal/domain/repository"
)

// AccountService serves the admin user listing and bulk deletion.
type AccountService struct {
	Repo   repo.AccountRepository
	Logger *logrus.Logger
}

func NewAccountService(r repo.AccountRepository, logger *logrus.Logger) *AccountService {
	return &AccountService{Repo: r, Logger: logger}
}

func (s *AccountService) List(ctx context.Context) ([]*entity.Account, error) {
	return s.Repo.List(ctx)
}

// BulkDelete removes the accounts whose ids parse as UUIDs, ignoring the
// rest. ErrNoValidIDs when nothing usable was supplied.
func (s *AccountService) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return 0, ErrNoValidIDs
	}
	return s.Repo.DeleteByIDs(ctx, valid)
}
