package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/webmuseum/expo-api/internal/domain/entity"
	repo "github.com/webmuseum/expo-api/internal/domain/repository"
	"github.com/webmuseum/expo-api/pkg/helpers"
	"github.com/webmuseum/expo-api/pkg/mailer"
)

// AuthService registers accounts and authenticates logins. Tokens it issues
// are stateless bearer credentials; nothing here writes session state.
type AuthService struct {
	Repo        repo.AccountRepository
	JWT         *helpers.JWTManager
	Pub         *helpers.RabbitPublisher
	MailEnabled bool
	Logger      *logrus.Logger
}

func NewAuthService(r repo.AccountRepository, jwt *helpers.JWTManager, pub *helpers.RabbitPublisher, mailEnabled bool, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: r, JWT: jwt, Pub: pub, MailEnabled: mailEnabled, Logger: logger}
}

// NormalizeEmail trims and lowercases, matching the store's case-insensitive
// unique index.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type RegisterInput struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	MiddleName string
	Gender     string
	BirthDate  time.Time
	Phone      string
}

// Register creates the account and issues its first token. The email
// pre-check and the insert are not atomic: a concurrent registration can slip
// between them, in which case the unique index rejects the insert and the
// caller still sees ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.Account, string, time.Time, error) {
	email := NormalizeEmail(in.Email)

	if existing, err := s.Repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", time.Time{}, ErrEmailTaken
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, "", time.Time{}, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	a := &entity.Account{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		MiddleName:   strings.TrimSpace(in.MiddleName),
		Gender:       in.Gender,
		BirthDate:    in.BirthDate,
		Phone:        strings.TrimSpace(in.Phone),
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, "", time.Time{}, ErrEmailTaken
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.JWT.Issue(a.ID, a.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.enqueueWelcome(ctx, a)

	return a, token, exp, nil
}

// Login authenticates and issues a fresh token. Unknown email and wrong
// password are indistinguishable to the caller; store failures are not
// credential failures and propagate as-is.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.Account, string, time.Time, error) {
	a, err := s.Repo.GetByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if a == nil || !helpers.CompareHashAndPassword(a.PasswordHash, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	token, exp, err := s.JWT.Issue(a.ID, a.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return a, token, exp, nil
}

func (s *AuthService) enqueueWelcome(ctx context.Context, a *entity.Account) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       a.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"FirstName": a.FirstName, "Email": a.Email},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", a.Email).Warn("enqueue welcome email failed")
	}
}
