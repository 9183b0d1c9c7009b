package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"renthub/internal/domain"
	"renthub/internal/realtime"
	"renthub/internal/service"
	apperrors "renthub/pkg/errors"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}
func (nopLogger) Fatal(msg string, args ...any) {}

type authServiceMock struct {
	ValidateTokenFunc func(ctx context.Context, tokenString string) (*domain.User, error)
}

func (m *authServiceMock) Register(ctx context.Context, email, password, firstName, lastName string) (*domain.User, error) {
	return nil, nil
}

func (m *authServiceMock) Login(ctx context.Context, email, password string) (*service.LoginResponse, error) {
	return nil, apperrors.ErrInvalidCredentials
}

func (m *authServiceMock) RefreshToken(ctx context.Context, refreshToken string) (*service.TokenResponse, error) {
	return nil, apperrors.ErrInvalidToken
}

func (m *authServiceMock) ValidateToken(ctx context.Context, tokenString string) (*domain.User, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, tokenString)
	}
	return nil, apperrors.ErrAuthenticationFailed
}

func newWSTestServer(auth *authServiceMock) *httptest.Server {
	gin.SetMode(gin.TestMode)

	hub := realtime.NewHub(nopLogger{})
	h := NewWebSocketHandler(hub, nil, auth, nopLogger{})

	router := gin.New()
	router.GET("/ws", h.Handle)
	return httptest.NewServer(router)
}

func TestWebSocketRejectsMissingToken(t *testing.T) {
	srv := newWSTestServer(&authServiceMock{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ws")
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebSocketRejectsInvalidToken(t *testing.T) {
	srv := newWSTestServer(&authServiceMock{
		ValidateTokenFunc: func(ctx context.Context, tokenString string) (*domain.User, error) {
			return nil, apperrors.ErrAuthenticationFailed
		},
	})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ws?token=bad")
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebSocketAcceptsHeaderToken(t *testing.T) {
	validated := ""
	srv := newWSTestServer(&authServiceMock{
		ValidateTokenFunc: func(ctx context.Context, tokenString string) (*domain.User, error) {
			validated = tokenString
			return nil, apperrors.ErrAuthenticationFailed
		},
	})
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/ws", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	// The header token reached the verifier even without a query param.
	assert.Equal(t, "header-token", validated)
}
