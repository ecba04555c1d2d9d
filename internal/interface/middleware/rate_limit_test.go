package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webmuseum/expo-api/internal/interface/middleware"
)

func rateLimitedEngine(t *testing.T, max int, window time.Duration) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	engine := gin.New()
	engine.Use(middleware.RateLimit(rdb, max, window, middleware.KeyByIP()))
	engine.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return engine, mr
}

func hit(engine *gin.Engine, method string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRateLimitBlocksOverLimit(t *testing.T) {
	engine, _ := rateLimitedEngine(t, 2, time.Minute)

	first := hit(engine, http.MethodGet)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	second := hit(engine, http.MethodGet)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	third := hit(engine, http.MethodGet)
	require.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Equal(t, `{"message":"Rate limit exceeded."}`, third.Body.String())
	assert.Equal(t, "0", third.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, third.Header().Get("Retry-After"))

	// remaining stays clamped on further rejected requests
	fourth := hit(engine, http.MethodGet)
	require.Equal(t, http.StatusTooManyRequests, fourth.Code)
	assert.Equal(t, "0", fourth.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimitWindowResets(t *testing.T) {
	engine, mr := rateLimitedEngine(t, 1, time.Minute)

	require.Equal(t, http.StatusOK, hit(engine, http.MethodGet).Code)
	require.Equal(t, http.StatusTooManyRequests, hit(engine, http.MethodGet).Code)

	mr.FastForward(2 * time.Minute)

	assert.Equal(t, http.StatusOK, hit(engine, http.MethodGet).Code)
}

func TestRateLimitSkipsPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	engine := gin.New()
	engine.Use(middleware.RateLimit(rdb, 1, time.Minute, middleware.KeyByIP()))
	engine.OPTIONS("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 5; i++ {
		w := hit(engine, http.MethodOptions)
		require.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestRateLimitDisabledWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.RateLimit(nil, 1, time.Minute, middleware.KeyByIP()))
	engine.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, hit(engine, http.MethodGet).Code)
	}
}

func TestRateLimitFailsOpenWhenRedisDown(t *testing.T) {
	engine, mr := rateLimitedEngine(t, 1, time.Minute)
	mr.Close()

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, hit(engine, http.MethodGet).Code)
	}
}
