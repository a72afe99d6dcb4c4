package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/bookshelf/pkg/api"
)

func doJSONRequest(t *testing.T, handler http.HandlerFunc, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	svc := newTestService(t)
	h := NewAuthHandler(testLogger(), svc)

	w := doJSONRequest(t, h.Register, http.MethodPost, "/api/v1/auth/register", api.RegisterRequest{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "secret123",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp api.AuthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)
	assert.Positive(t, resp.ExpiresIn)
	assert.Equal(t, "ada", resp.User.Username)
	assert.NotEmpty(t, resp.User.ID)
	assert.NotNil(t, resp.User.SavedBooks)
}

func TestAuthHandler_Register_Errors(t *testing.T) {
	tests := []struct {
		body       interface{}
		name       string
		wantStatus int
	}{
		{
			name: "invalid username",
			body: api.RegisterRequest{
				Username: "a",
				Email:    "a@example.com",
				Password: "secret123",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "invalid email",
			body: api.RegisterRequest{
				Username: "ada",
				Email:    "not-an-email",
				Password: "secret123",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "short password",
			body: api.RegisterRequest{
				Username: "ada",
				Email:    "ada@example.com",
				Password: "short",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)
			h := NewAuthHandler(testLogger(), svc)

			w := doJSONRequest(t, h.Register, http.MethodPost, "/api/v1/auth/register", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)

			var resp api.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	svc := newTestService(t)
	h := NewAuthHandler(testLogger(), svc)

	req := api.RegisterRequest{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "secret123",
	}

	w := doJSONRequest(t, h.Register, http.MethodPost, "/api/v1/auth/register", req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSONRequest(t, h.Register, http.MethodPost, "/api/v1/auth/register", req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Register_InvalidBody(t *testing.T) {
	svc := newTestService(t)
	h := NewAuthHandler(testLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString("not json"))
	w := httptest.NewRecorder()
	h.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	svc := newTestService(t)
	h := NewAuthHandler(testLogger(), svc)
	registerTestUser(t, svc)

	w := doJSONRequest(t, h.Login, http.MethodPost, "/api/v1/auth/login", api.LoginRequest{
		Email:    "ada@example.com",
		Password: "secret123",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.AuthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ada", resp.User.Username)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := newTestService(t)
	h := NewAuthHandler(testLogger(), svc)
	registerTestUser(t, svc)

	tests := []struct {
		name string
		body api.LoginRequest
	}{
		{
			name: "wrong password",
			body: api.LoginRequest{Email: "ada@example.com", Password: "wrong-password"},
		},
		{
			name: "unknown email",
			body: api.LoginRequest{Email: "nobody@example.com", Password: "secret123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSONRequest(t, h.Login, http.MethodPost, "/api/v1/auth/login", tt.body)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
