package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagr/voyagr-api/internal/service/auth"
)

// fakeJWTService validates exactly one known token.
type fakeJWTService struct {
	validToken string
	userID     uuid.UUID
	err        error
}

func (f *fakeJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return f.validToken, nil
}

func (f *fakeJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	if tokenString != f.validToken {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: f.userID}, nil
}

func newProtectedHandler(t *testing.T, jwtService auth.JWTService) (http.Handler, *uuid.UUID) {
	t.Helper()

	var gotUserID uuid.UUID
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserID(r)
		require.True(t, ok)
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	})

	return NewAuthMiddleware(jwtService).Authenticate(inner), &gotUserID
}

func TestAuthenticatePassesValidToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	handler, gotUserID := newProtectedHandler(t, &fakeJWTService{
		validToken: "good-token",
		userID:     userID,
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, *gotUserID)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	t.Parallel()

	handler, _ := newProtectedHandler(t, &fakeJWTService{validToken: "good-token"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	t.Parallel()

	handler, _ := newProtectedHandler(t, &fakeJWTService{validToken: "good-token"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	t.Parallel()

	handler, _ := newProtectedHandler(t, &fakeJWTService{validToken: "good-token"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer forged-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	t.Parallel()

	handler, _ := newProtectedHandler(t, &fakeJWTService{err: auth.ErrExpiredToken})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
