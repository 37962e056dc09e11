package controllers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/dstcrm/dstcrm/internal/app/models"
	"github.com/dstcrm/dstcrm/internal/app/models/dto"
	"github.com/dstcrm/dstcrm/internal/app/services"
	"github.com/dstcrm/dstcrm/internal/pkg/apperrors"
	"github.com/dstcrm/dstcrm/internal/pkg/auth"
)

type fakeAccountStore struct {
	users  map[string]*models.User
	nextID int64
}

func (f *fakeAccountStore) CreateUser(_ context.Context, user *models.User) (int64, error) {
	if _, ok := f.users[user.Email]; ok {
		return 0, apperrors.ErrEmailAlreadyExists
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.Email] = user
	return user.ID, nil
}

func (f *fakeAccountStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeAccountStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

type fakeSessionStore struct {
	tokens map[string]int64
}

func (f *fakeSessionStore) CreateToken(_ context.Context, token string, userID int64, _ time.Time) error {
	f.tokens[token] = userID
	return nil
}

func (f *fakeSessionStore) GetTokenByValue(_ context.Context, token string) (int64, time.Time, bool, error) {
	userID, ok := f.tokens[token]
	if !ok {
		return 0, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	return userID, time.Now().Add(time.Hour), false, nil
}

func (f *fakeSessionStore) RevokeToken(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

func (f *fakeSessionStore) RevokeAllUserTokens(_ context.Context, userID int64) error {
	for token, id := range f.tokens {
		if id == userID {
			delete(f.tokens, token)
		}
	}
	return nil
}

type fakeMemberWhitelist struct {
	emails map[string]bool
}

func (f *fakeMemberWhitelist) ExistsEmail(_ context.Context, email string) (bool, error) {
	return f.emails[email], nil
}

func newAuthRouter(whitelisted ...string) *gin.Engine {
	whitelist := &fakeMemberWhitelist{emails: map[string]bool{}}
	for _, email := range whitelisted {
		whitelist.emails[email] = true
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "dstcrm-test",
	})

	svc := services.NewAuthService(
		&fakeAccountStore{users: map[string]*models.User{}},
		&fakeSessionStore{tokens: map[string]int64{}},
		whitelist,
		jwtService,
		"boss@dst.sk",
		zerolog.Nop(),
	)
	ctrl := NewAuthController(svc, zerolog.Nop())

	router := gin.New()
	router.POST("/auth/register", ctrl.Register)
	router.POST("/auth/login", ctrl.Login)
	router.POST("/auth/refresh-token", ctrl.RefreshToken)
	return router
}

func TestRegisterWhitelistedMember(t *testing.T) {
	router := newAuthRouter("jana@example.com")

	rec := performRequest(t, router, http.MethodPost, "/auth/register", dto.RegisterRequest{
		Email:       "jana@example.com",
		Password:    "Password1",
		DisplayName: "Jana",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data dto.AuthResponse `json:"data"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "jana@example.com", resp.Data.User.Email)
	assert.Equal(t, string(models.RoleStudent), resp.Data.User.Role)
	assert.NotEmpty(t, resp.Data.Token.AccessToken)
}

func TestRegisterRejectedWhenNotWhitelisted(t *testing.T) {
	router := newAuthRouter()

	rec := performRequest(t, router, http.MethodPost, "/auth/register", dto.RegisterRequest{
		Email:       "stranger@example.com",
		Password:    "Password1",
		DisplayName: "Stranger",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRegisterAdminOverride(t *testing.T) {
	router := newAuthRouter()

	rec := performRequest(t, router, http.MethodPost, "/auth/register", dto.RegisterRequest{
		Email:       "boss@dst.sk",
		Password:    "Password1",
		DisplayName: "Boss",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data dto.AuthResponse `json:"data"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, string(models.RoleAdmin), resp.Data.User.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	router := newAuthRouter("jana@example.com")

	rec := performRequest(t, router, http.MethodPost, "/auth/register", dto.RegisterRequest{
		Email:       "jana@example.com",
		Password:    "Password1",
		DisplayName: "Jana",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = performRequest(t, router, http.MethodPost, "/auth/login", dto.LoginRequest{
		Email:    "jana@example.com",
		Password: "WrongPassword1",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	router := newAuthRouter("jana@example.com")

	rec := performRequest(t, router, http.MethodPost, "/auth/register", dto.RegisterRequest{
		Email:       "jana@example.com",
		Password:    "Password1",
		DisplayName: "Jana",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	var registered struct {
		Data dto.AuthResponse `json:"data"`
	}
	decodeBody(t, rec, &registered)
	assert.NotEmpty(t, registered.Data.Token.RefreshToken)

	rec = performRequest(t, router, http.MethodPost, "/auth/refresh-token", dto.RefreshTokenRequest{
		RefreshToken: registered.Data.Token.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var refreshed struct {
		Data dto.TokenResponse `json:"data"`
	}
	decodeBody(t, rec, &refreshed)
	assert.NotEmpty(t, refreshed.Data.AccessToken)
}
