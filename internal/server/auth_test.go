package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/IfFaith/MemberLite/internal/biz"
	"github.com/IfFaith/MemberLite/internal/conf"
	"github.com/IfFaith/MemberLite/internal/constants"
	"github.com/IfFaith/MemberLite/internal/service"
)

type fakeSettingRepo struct {
	values map[string]string
}

func (f *fakeSettingRepo) GetSetting(ctx context.Context, key string) (string, error) {
	return f.values[key], nil
}

func (f *fakeSettingRepo) SetSetting(ctx context.Context, key, value string) error {
	f.values[key] = value
	return nil
}

func newTestAuthService(t *testing.T) *service.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(constants.DefaultPassword), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &fakeSettingRepo{values: map[string]string{
		constants.SettingKeyPasswordHash: string(hash),
	}}
	logger := log.NewStdLogger(io.Discard)
	uc := biz.NewAuthUseCase(repo, &conf.Bootstrap{
		Auth: &conf.Auth{JWTSecret: "test-secret"},
	}, logger)
	return service.NewAuthService(uc, logger)
}

func newFilteredHandler(t *testing.T) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return authFilter(newTestAuthService(t))(next)
}

func TestAuthFilterAllowsPublicPaths(t *testing.T) {
	handler := newFilteredHandler(t)

	for _, path := range []string{"/v1/auth/login", "/metrics", "/healthz"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestAuthFilterRejectsMissingToken(t *testing.T) {
	handler := newFilteredHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/members", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/members", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// 没有 Bearer 前缀同样拒绝
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/v1/members", nil)
	req.Header.Set("Authorization", "something")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthFilterAcceptsValidToken(t *testing.T) {
	authSvc := newTestAuthService(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := authFilter(authSvc)(next)

	reply, err := authSvc.Login(context.Background(), &service.LoginRequest{
		Username: constants.DefaultUsername,
		Password: constants.DefaultPassword,
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/members", nil)
	req.Header.Set("Authorization", "Bearer "+reply.Token)
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
