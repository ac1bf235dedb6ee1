package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/storage"
)

type authMock struct {
	mock.Mock
}

func (m *authMock) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.AuthResponse)
	return resp, args.Error(1)
}

func (m *authMock) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.AuthResponse)
	return resp, args.Error(1)
}

var fixedNow = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": exp.Unix(),
	}).SignedString([]byte("any-secret"))
	require.NoError(t, err)
	return tok
}

func newStore(t *testing.T, auth Authenticator) (*Store, storage.Store) {
	t.Helper()
	st := storage.NewMemory()
	return New(st, auth, WithClock(func() time.Time { return fixedNow })), st
}

func TestLogin_PersistsIdentity(t *testing.T) {
	ctx := context.Background()
	auth := &authMock{}
	token := signed(t, fixedNow.Add(time.Hour))
	req := models.LoginRequest{Email: "ana@example.com", Password: "secret1"}
	auth.On("Login", mock.Anything, req).Return(&models.AuthResponse{
		Token: token, Type: "Bearer", ID: 7, Email: "ana@example.com", Name: "Ana", Role: models.RoleCustomer,
	}, nil).Once()

	s, st := newStore(t, auth)
	user, err := s.Login(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)

	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.IsCustomer())
	assert.False(t, s.IsBarber())
	assert.False(t, s.IsAdmin())

	got, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, token, got)

	stored, ok, err := st.Get(ctx, TokenKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, token, stored)

	snapshot, ok, err := st.Get(ctx, UserKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"id":7,"email":"ana@example.com","name":"Ana","role":"CUSTOMER"}`, snapshot)

	auth.AssertExpectations(t)
}

func TestLogin_FailureKeepsPreviousIdentity(t *testing.T) {
	ctx := context.Background()
	auth := &authMock{}
	auth.On("Login", mock.Anything, models.LoginRequest{Email: "a@b.co", Password: "one"}).
		Return(&models.AuthResponse{Token: "t1", ID: 1, Email: "a@b.co", Name: "A", Role: models.RoleBarber}, nil).Once()
	auth.On("Login", mock.Anything, models.LoginRequest{Email: "c@d.co", Password: "two"}).
		Return(nil, &httperr.APIError{Status: 401, Message: "Invalid credentials"}).Once()

	s, _ := newStore(t, auth)
	_, err := s.Login(ctx, models.LoginRequest{Email: "a@b.co", Password: "one"})
	require.NoError(t, err)

	_, err = s.Login(ctx, models.LoginRequest{Email: "c@d.co", Password: "two"})
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", httperr.Message(err))

	assert.True(t, s.IsBarber())
	assert.Equal(t, "a@b.co", s.CurrentUser().Email)
}

func TestRegister_StoresReturnedRole(t *testing.T) {
	ctx := context.Background()
	auth := &authMock{}
	req := models.RegisterRequest{Name: "Bo", Email: "bo@example.com", Password: "secret1", Role: models.RoleBarber}
	auth.On("Register", mock.Anything, req).
		Return(&models.AuthResponse{Token: "tok", ID: 3, Email: req.Email, Name: req.Name, Role: models.RoleBarber}, nil).Once()

	s, _ := newStore(t, auth)
	_, err := s.Register(ctx, req)
	require.NoError(t, err)
	assert.True(t, s.IsBarber())
	assert.NoError(t, s.RequireBarber())
	assert.ErrorIs(t, s.RequireAdmin(), ErrRedirect)
}

func TestRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("valid snapshot", func(t *testing.T) {
		s, st := newStore(t, &authMock{})
		require.NoError(t, st.Set(ctx, TokenKey, signed(t, fixedNow.Add(time.Hour))))
		require.NoError(t, st.Set(ctx, UserKey, `{"id":9,"email":"x@y.co","name":"X","role":"ADMIN"}`))

		require.NoError(t, s.Restore(ctx))
		assert.True(t, s.IsAdmin())
		assert.Equal(t, uint(9), s.CurrentUser().ID)
	})

	t.Run("opaque token kept", func(t *testing.T) {
		s, st := newStore(t, &authMock{})
		require.NoError(t, st.Set(ctx, TokenKey, "opaque"))
		require.NoError(t, st.Set(ctx, UserKey, `{"id":9,"email":"x@y.co","name":"X","role":"CUSTOMER"}`))

		require.NoError(t, s.Restore(ctx))
		assert.True(t, s.IsCustomer())
	})

	clearedCases := map[string]struct {
		token string
		user  string
	}{
		"corrupt snapshot": {token: "opaque", user: `{"id":`},
		"unknown role":     {token: "opaque", user: `{"id":1,"email":"x@y.co","name":"X","role":"OWNER"}`},
		"missing token":    {user: `{"id":1,"email":"x@y.co","name":"X","role":"CUSTOMER"}`},
	}
	for name, tc := range clearedCases {
		t.Run(name, func(t *testing.T) {
			s, st := newStore(t, &authMock{})
			if tc.token != "" {
				require.NoError(t, st.Set(ctx, TokenKey, tc.token))
			}
			require.NoError(t, st.Set(ctx, UserKey, tc.user))

			require.NoError(t, s.Restore(ctx))
			assert.False(t, s.IsAuthenticated())
			assertCleared(t, st)
		})
	}

	t.Run("expired token", func(t *testing.T) {
		s, st := newStore(t, &authMock{})
		require.NoError(t, st.Set(ctx, TokenKey, signed(t, fixedNow.Add(-time.Minute))))
		require.NoError(t, st.Set(ctx, UserKey, `{"id":1,"email":"x@y.co","name":"X","role":"CUSTOMER"}`))

		require.NoError(t, s.Restore(ctx))
		assert.False(t, s.IsAuthenticated())
		assertCleared(t, st)
	})

	t.Run("nothing stored", func(t *testing.T) {
		s, _ := newStore(t, &authMock{})
		require.NoError(t, s.Restore(ctx))
		assert.False(t, s.IsAuthenticated())
		assert.Nil(t, s.CurrentUser())
	})
}

func assertCleared(t *testing.T, st storage.Store) {
	t.Helper()
	for _, key := range []string{TokenKey, UserKey} {
		_, ok, err := st.Get(context.Background(), key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}
}

func TestLogout_IdempotentAndLeavesNotifications(t *testing.T) {
	ctx := context.Background()
	auth := &authMock{}
	auth.On("Login", mock.Anything, mock.Anything).
		Return(&models.AuthResponse{Token: "tok", ID: 1, Email: "a@b.co", Name: "A", Role: models.RoleCustomer}, nil)

	s, st := newStore(t, auth)
	_, err := s.Login(ctx, models.LoginRequest{Email: "a@b.co", Password: "pw"})
	require.NoError(t, err)

	notes := notify.NewStore(notify.WithScheduler(func(time.Duration, func()) {}))
	for i := 0; i < 3; i++ {
		notes.AddNotification(notify.Info, "Reminder", "Tomorrow at 10:00")
	}

	require.NoError(t, s.Logout(ctx))
	require.NoError(t, s.Logout(ctx))

	assert.False(t, s.IsAuthenticated())
	assertCleared(t, st)
	tok, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	assert.Equal(t, 3, notes.UnreadCount())
	assert.Len(t, notes.Notifications(), 3)
}

func TestSubscribe_SeesLoginAndLogout(t *testing.T) {
	ctx := context.Background()
	auth := &authMock{}
	auth.On("Login", mock.Anything, mock.Anything).
		Return(&models.AuthResponse{Token: "tok", ID: 1, Email: "a@b.co", Name: "A", Role: models.RoleCustomer}, nil)

	s, _ := newStore(t, auth)
	var seen []*models.User
	unsubscribe := s.Subscribe(func(u *models.User) { seen = append(seen, u) })
	defer unsubscribe()

	_, err := s.Login(ctx, models.LoginRequest{Email: "a@b.co", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx))

	require.Len(t, seen, 2)
	assert.Equal(t, "a@b.co", seen[0].Email)
	assert.Nil(t, seen[1])
}

func TestGuards(t *testing.T) {
	ctx := context.Background()
	auth := &authMock{}
	auth.On("Login", mock.Anything, mock.Anything).
		Return(&models.AuthResponse{Token: "tok", ID: 1, Email: "a@b.co", Name: "A", Role: models.RoleCustomer}, nil)
	s, _ := newStore(t, auth)

	var redirect *RedirectError
	require.True(t, errors.As(s.RequireAuthenticated(), &redirect))
	assert.Equal(t, LoginPath, redirect.To)
	assert.NoError(t, s.RequireGuest())

	_, err := s.Login(ctx, models.LoginRequest{Email: "a@b.co", Password: "pw"})
	require.NoError(t, err)

	assert.NoError(t, s.RequireAuthenticated())
	assert.NoError(t, s.RequireCustomer())
	require.True(t, errors.As(s.RequireGuest(), &redirect))
	assert.Equal(t, HomePath, redirect.To)
	assert.ErrorIs(t, s.RequireBarber(), ErrRedirect)
}
