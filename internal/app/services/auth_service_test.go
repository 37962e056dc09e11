package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/dstcrm/dstcrm/internal/app/models"
	"github.com/dstcrm/dstcrm/internal/app/models/dto"
	"github.com/dstcrm/dstcrm/internal/pkg/apperrors"
	"github.com/dstcrm/dstcrm/internal/pkg/auth"
)

type fakeUserStore struct {
	users  map[string]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}, nextID: 1}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) (int64, error) {
	if _, ok := f.users[user.Email]; ok {
		return 0, apperrors.ErrEmailAlreadyExists
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.Email] = user
	return user.ID, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if user, ok := f.users[email]; ok {
		return user, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

type fakeTokenStore struct {
	tokens map[string]struct {
		userID  int64
		expiry  time.Time
		revoked bool
	}
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]struct {
		userID  int64
		expiry  time.Time
		revoked bool
	}{}}
}

func (f *fakeTokenStore) CreateToken(_ context.Context, token string, userID int64, expiry time.Time) error {
	f.tokens[token] = struct {
		userID  int64
		expiry  time.Time
		revoked bool
	}{userID, expiry, false}
	return nil
}

func (f *fakeTokenStore) GetTokenByValue(_ context.Context, token string) (int64, time.Time, bool, error) {
	entry, ok := f.tokens[token]
	if !ok {
		return 0, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	if entry.revoked {
		return 0, time.Time{}, false, apperrors.ErrTokenRevoked
	}
	if entry.expiry.Before(time.Now()) {
		return 0, time.Time{}, false, apperrors.ErrTokenExpired
	}
	return entry.userID, entry.expiry, false, nil
}

func (f *fakeTokenStore) RevokeToken(_ context.Context, token string) error {
	entry, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	entry.revoked = true
	f.tokens[token] = entry
	return nil
}

func (f *fakeTokenStore) RevokeAllUserTokens(_ context.Context, userID int64) error {
	for token, entry := range f.tokens {
		if entry.userID == userID {
			entry.revoked = true
			f.tokens[token] = entry
		}
	}
	return nil
}

type fakeWhitelist struct {
	emails []string
}

func (f *fakeWhitelist) ExistsEmail(_ context.Context, email string) (bool, error) {
	for _, e := range f.emails {
		if e == email {
			return true, nil
		}
	}
	return false, nil
}

func newAuthFixture(whitelisted []string) (*AuthService, *fakeUserStore, *fakeTokenStore) {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "dstcrm-test",
	})
	svc := NewAuthService(users, tokens, &fakeWhitelist{emails: whitelisted}, jwtService, "boss@dst.sk", zerolog.Nop())
	return svc, users, tokens
}

func TestRegisterDeniedWhenNotWhitelisted(t *testing.T) {
	svc, users, _ := newAuthFixture(nil)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:       "stranger@example.com",
		Password:    "password1",
		DisplayName: "Stranger",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailNotAllowed)
	assert.Empty(t, users.users)
}

func TestRegisterWhitelistedDefaultsToStudent(t *testing.T) {
	svc, users, _ := newAuthFixture([]string{"member@example.com"})

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:       "member@example.com",
		Password:    "password1",
		DisplayName: "Member",
	})
	assert.NoError(t, err)
	assert.Equal(t, string(models.RoleStudent), resp.User.Role)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)
	assert.Equal(t, models.RoleStudent, users.users["member@example.com"].RoleType)
}

func TestRegisterAdminOverrideBypassesWhitelist(t *testing.T) {
	svc, users, _ := newAuthFixture(nil)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:       "Boss@DST.sk",
		Password:    "password1",
		DisplayName: "Boss",
	})
	assert.NoError(t, err)
	assert.Equal(t, string(models.RoleAdmin), resp.User.Role)
	assert.Equal(t, models.RoleAdmin, users.users["Boss@DST.sk"].RoleType)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, _, _ := newAuthFixture([]string{"member@example.com"})

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:       "member@example.com",
		Password:    "short1",
		DisplayName: "Member",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
}

func TestLoginAndRefreshRotation(t *testing.T) {
	svc, _, _ := newAuthFixture([]string{"member@example.com"})

	reg, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:       "member@example.com",
		Password:    "password1",
		DisplayName: "Member",
	})
	assert.NoError(t, err)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "member@example.com",
		Password: "password1",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, login.Token.RefreshToken)

	refreshed, err := svc.RefreshToken(context.Background(), login.Token.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// The used refresh token must be revoked.
	_, err = svc.RefreshToken(context.Background(), login.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	// The registration token is still valid until used.
	_, err = svc.RefreshToken(context.Background(), reg.Token.RefreshToken)
	assert.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture([]string{"member@example.com"})

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:       "member@example.com",
		Password:    "password1",
		DisplayName: "Member",
	})
	assert.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "member@example.com",
		Password: "wrong-password1",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestGetProfileFallsBackToStudentRole(t *testing.T) {
	svc, users, _ := newAuthFixture(nil)
	users.users["odd@example.com"] = &models.User{
		ID:       7,
		Email:    "odd@example.com",
		RoleType: models.RoleType("bogus"),
	}

	profile, err := svc.GetProfile(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, string(models.RoleStudent), profile.Role)
}

func TestLogoutRevokesAllTokens(t *testing.T) {
	svc, _, _ := newAuthFixture([]string{"member@example.com"})

	reg, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:       "member@example.com",
		Password:    "password1",
		DisplayName: "Member",
	})
	assert.NoError(t, err)

	assert.NoError(t, svc.Logout(context.Background(), reg.User.ID))
	_, err = svc.RefreshToken(context.Background(), reg.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}
