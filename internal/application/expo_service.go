package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/webmuseum/expo-api/internal/domain/entity"
	repo "github.com/webmuseum/expo-api/internal/domain/repository"
	"github.com/webmuseum/expo-api/pkg/helpers"
)

const (
	expoListCacheKey = "expos:all"
	expoListCacheTTL = 5 * time.Minute
)

// ExpoService owns exhibition CRUD plus the optional side channels: a Redis
// read-through cache for the list, Elasticsearch indexing for search, and GCS
// photo storage. Redis, ES and GCS are all nil-guarded so the core CRUD works
// without them.
type ExpoService struct {
	Repo      repo.ExpoRepository
	Redis     *redis.Client
	GCS       *storage.Client
	GCSBucket string
	ES        *elasticsearch.Client
	ESIndex   string
	Logger    *logrus.Logger
}

func NewExpoService(r repo.ExpoRepository, rdb *redis.Client, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *ExpoService {
	return &ExpoService{Repo: r, Redis: rdb, GCS: gcs, GCSBucket: gcsBucket, ES: es, ESIndex: esIndex, Logger: logger}
}

// List returns all expos ordered by date, through the cache when available.
func (s *ExpoService) List(ctx context.Context) ([]*entity.Expo, error) {
	if s.Redis != nil {
		var cached []*entity.Expo
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, expoListCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}

	expos, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, expoListCacheKey, expos, expoListCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("expo list cache write failed")
		}
	}
	return expos, nil
}

func (s *ExpoService) Get(ctx context.Context, expoID string) (*entity.Expo, error) {
	e, err := s.Repo.GetByExpoID(ctx, strings.TrimSpace(expoID))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

type CreateExpoInput struct {
	ExpoID      string
	Title       string
	Description string
	Author      string
	PhotoURL    string
	Date        time.Time
	CreatedBy   string
}

// Create inserts a new exhibition. Same check-then-insert shape as account
// registration: the unique index on expo_id is the backstop for the race.
func (s *ExpoService) Create(ctx context.Context, in CreateExpoInput) (*entity.Expo, error) {
	slug := strings.TrimSpace(in.ExpoID)

	if existing, err := s.Repo.GetByExpoID(ctx, slug); err == nil && existing != nil {
		return nil, ErrExpoExists
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	e := &entity.Expo{
		ExpoID:      slug,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Author:      strings.TrimSpace(in.Author),
		PhotoURL:    strings.TrimSpace(in.PhotoURL),
		Date:        in.Date,
		CreatedBy:   in.CreatedBy,
	}
	if err := s.Repo.Create(ctx, e); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrExpoExists
		}
		return nil, err
	}

	s.invalidateList(ctx)
	s.index(ctx, e)
	return e, nil
}

// UpdateExpoInput carries a partial field set; nil means "not supplied".
type UpdateExpoInput struct {
	Title       *string
	Description *string
	Author      *string
	PhotoURL    *string
	Date        *time.Time
}

func (s *ExpoService) Update(ctx context.Context, expoID string, in UpdateExpoInput) (*entity.Expo, error) {
	e, err := s.Get(ctx, expoID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		e.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		e.Description = strings.TrimSpace(*in.Description)
	}
	if in.Author != nil {
		e.Author = strings.TrimSpace(*in.Author)
	}
	if in.PhotoURL != nil {
		e.PhotoURL = strings.TrimSpace(*in.PhotoURL)
	}
	if in.Date != nil {
		e.Date = *in.Date
	}
	if err := s.Repo.Update(ctx, e); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.invalidateList(ctx)
	s.index(ctx, e)
	return e, nil
}

func (s *ExpoService) Delete(ctx context.Context, expoID string) error {
	slug := strings.TrimSpace(expoID)
	if err := s.Repo.DeleteByExpoID(ctx, slug); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.invalidateList(ctx)
	s.deleteFromIndex(ctx, slug)
	return nil
}

// UploadPhoto stores the image in GCS and records its public URL on the expo.
func (s *ExpoService) UploadPhoto(ctx context.Context, expoID string, r io.Reader, filename, contentType string) (*entity.Expo, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("photo storage not configured")
	}
	e, err := s.Get(ctx, expoID)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("expos", e.ExpoID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}

	return s.Update(ctx, e.ExpoID, UpdateExpoInput{PhotoURL: &url})
}

// Search runs a multi_match query over title, description and author.
// Returns an empty result when Elasticsearch is not configured.
func (s *ExpoService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "author"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *ExpoService) invalidateList(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, expoListCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("expo list cache invalidation failed")
	}
}

func (s *ExpoService) index(ctx context.Context, e *entity.Expo) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"expo_id":     e.ExpoID,
		"title":       e.Title,
		"description": e.Description,
		"author":      e.Author,
		"photo_url":   e.PhotoURL,
		"date":        e.Date.Format(time.RFC3339),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: e.ExpoID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("expo_id", e.ExpoID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("expo_id", e.ExpoID).Warn("es index response error")
	}
}

func (s *ExpoService) deleteFromIndex(ctx context.Context, expoID string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: expoID}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("expo_id", expoID).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}
