package handlers_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesAccount(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/register", validRegisterBody(), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "User created successfully.", body["message"])
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ann@example.com", user["email"])
	assert.Equal(t, "Ann", user["firstName"])
	assert.Equal(t, "1990-01-01", user["birthDate"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")

	// token subject matches the created account
	claims, err := env.jwt.Parse(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, user["id"], claims.Subject)
	assert.Equal(t, "ann@example.com", claims.Email)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	env := newTestEnv(t)

	payload := validRegisterBody()
	payload["email"] = "Ann@Example.COM"

	w := env.do(t, http.MethodPost, "/api/auth/register", payload, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	user := decodeBody(t, w)["user"].(map[string]any)
	assert.Equal(t, "ann@example.com", user["email"])
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name  string
		patch map[string]any
		field string
	}{
		{"bad email", map[string]any{"email": "not-an-email"}, "email"},
		{"short password", map[string]any{"password": "12345"}, "password"},
		{"overlong password", map[string]any{"password": strings.Repeat("a", 100)}, "password"},
		{"single letter name", map[string]any{"firstName": "A"}, "firstName"},
		{"digits in name", map[string]any{"lastName": "Lee3"}, "lastName"},
		{"bad phone", map[string]any{"phone": "+380123456789"}, "phone"},
		{"bad gender", map[string]any{"gender": "other"}, "gender"},
		{"future birth date", map[string]any{"birthDate": "2999-01-01"}, "birthDate"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := validRegisterBody()
			for k, v := range tc.patch {
				payload[k] = v
			}

			w := env.do(t, http.MethodPost, "/api/auth/register", payload, "")
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			body := decodeBody(t, w)
			assert.Equal(t, "Validation failed.", body["message"])
			errs, ok := body["errors"].(map[string]any)
			require.True(t, ok)
			assert.Contains(t, errs, tc.field)
		})
	}

	assert.Equal(t, 0, env.accounts.count())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/register", validRegisterBody(), "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/register", validRegisterBody(), "")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "A user with this email already exists.", decodeBody(t, w)["message"])

	assert.Equal(t, 1, env.accounts.count())
}

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/auth/register", validRegisterBody(), "")

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "ann@example.com",
		"password": "secret1",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "Logged in successfully.", body["message"])
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "ann@example.com", user["email"])
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/auth/register", validRegisterBody(), "")

	wrongPassword := env.do(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "ann@example.com",
		"password": "wrong-password",
	}, "")
	unknownEmail := env.do(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "nobody@example.com",
		"password": "secret1",
	}, "")

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	assert.Equal(t, "Incorrect email or password.", decodeBody(t, wrongPassword)["message"])
}

func TestLoginStoreFailureIsServerError(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/auth/register", validRegisterBody(), "")

	env.accounts.failWith = errors.New("connection refused")

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "ann@example.com",
		"password": "secret1",
	}, "")
	require.Equal(t, http.StatusInternalServerError, w.Code, w.Body.String())
	assert.Equal(t, "Server error.", decodeBody(t, w)["message"])
}

func TestVerify(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/register", validRegisterBody(), "")
	token := decodeBody(t, w)["token"].(string)

	t.Run("valid token", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/auth/verify", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, "Token is valid.", body["message"])
		payload := body["payload"].(map[string]any)
		assert.Equal(t, "ann@example.com", payload["email"])
		assert.NotEmpty(t, payload["sub"])
	})

	t.Run("missing header", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/auth/verify", nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Authorization token is missing.", decodeBody(t, w)["message"])
	})

	t.Run("garbage token", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/auth/verify", nil, "not-a-token")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid or expired token.", decodeBody(t, w)["message"])
	})
}
