package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/webmuseum/expo-api/internal/application"
	"github.com/webmuseum/expo-api/internal/domain/entity"
	"github.com/webmuseum/expo-api/internal/domain/repository"
	handlers "github.com/webmuseum/expo-api/internal/interface/http"
	"github.com/webmuseum/expo-api/internal/router"
	"github.com/webmuseum/expo-api/internal/router/modules"
	"github.com/webmuseum/expo-api/pkg/helpers"
	"github.com/webmuseum/expo-api/pkg/validation"
)

// in-memory repository fakes

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*entity.Account // by id
	failWith error // when set, lookups fail with this error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*entity.Account)}
}

func (r *fakeAccountRepo) Create(_ context.Context, a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.Email == a.Email {
			return repository.ErrDuplicate
		}
	}
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	r.accounts[a.ID] = a
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.accounts[id]; ok {
		return a, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, a := range r.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeAccountRepo) List(_ context.Context) ([]*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeAccountRepo) DeleteByIDs(_ context.Context, ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for _, id := range ids {
		if _, ok := r.accounts[id]; ok {
			delete(r.accounts, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeAccountRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.accounts)
}

type fakeExpoRepo struct {
	mu    sync.Mutex
	expos map[string]*entity.Expo // by slug
}

func newFakeExpoRepo() *fakeExpoRepo {
	return &fakeExpoRepo{expos: make(map[string]*entity.Expo)}
}

func (r *fakeExpoRepo) Create(_ context.Context, e *entity.Expo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.expos[e.ExpoID]; ok {
		return repository.ErrDuplicate
	}
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	r.expos[e.ExpoID] = e
	return nil
}

func (r *fakeExpoRepo) GetByExpoID(_ context.Context, expoID string) (*entity.Expo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.expos[expoID]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeExpoRepo) List(_ context.Context) ([]*entity.Expo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Expo, 0, len(r.expos))
	for _, e := range r.expos {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *fakeExpoRepo) Update(_ context.Context, e *entity.Expo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.expos[e.ExpoID]; !ok {
		return repository.ErrNotFound
	}
	e.UpdatedAt = time.Now()
	cp := *e
	r.expos[e.ExpoID] = &cp
	return nil
}

func (r *fakeExpoRepo) DeleteByExpoID(_ context.Context, expoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.expos[expoID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.expos, expoID)
	return nil
}

// test server wiring

type testEnv struct {
	engine   *gin.Engine
	jwt      *helpers.JWTManager
	accounts *fakeAccountRepo
	expos    *fakeExpoRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	jwtMgr := helpers.NewJWTManager("test-secret", time.Hour)
	accounts := newFakeAccountRepo()
	expos := newFakeExpoRepo()

	authSvc := application.NewAuthService(accounts, jwtMgr, nil, false, logger)
	expoSvc := application.NewExpoService(expos, nil, nil, "", nil, "", logger)
	acctSvc := application.NewAccountService(accounts, logger)

	engine := gin.New()
	reg := router.NewRegistry(engine)
	reg.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, jwtMgr, logger)))
	reg.Add(modules.NewExpoModule(handlers.NewExpoHandler(expoSvc, logger), jwtMgr))
	reg.Add(modules.NewUserModule(handlers.NewUserHandler(acctSvc, logger), jwtMgr))
	reg.RegisterAll()

	return &testEnv{engine: engine, jwt: jwtMgr, accounts: accounts, expos: expos}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// adminToken issues a token the way login would, without going through the
// auth endpoints.
func (e *testEnv) adminToken(t *testing.T, subjectID string) string {
	t.Helper()
	token, _, err := e.jwt.Issue(subjectID, "admin@museum.local")
	require.NoError(t, err)
	return token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func validRegisterBody() map[string]any {
	return map[string]any{
		"email":     "ann@example.com",
		"password":  "secret1",
		"firstName": "Ann",
		"lastName":  "Lee",
		"birthDate": "1990-01-01",
		"phone":     "+380 12 345 67 89",
	}
}
