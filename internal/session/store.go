// Package session holds the signed-in identity. It is the only writer of the
// persisted token and user snapshot; everything else reads through the role
// predicates. Role checks here only shape what the client offers: the
// server authorizes every request on its own.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/observable"
	"github.com/BruksfildServices01/barber-booking/internal/storage"
)

const (
	TokenKey = "barber_token"
	UserKey  = "barber_user"
)

// Authenticator is the part of the API the session needs.
type Authenticator interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
}

type identity struct {
	token string
	user  *models.User
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

type Store struct {
	storage storage.Store
	auth    Authenticator
	state   *observable.Value[identity]
	now     func() time.Time
}

func New(st storage.Store, auth Authenticator, opts ...Option) *Store {
	s := &Store{
		storage: st,
		auth:    auth,
		state:   observable.New(identity{}),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore loads the persisted identity. A snapshot that does not parse, a
// missing token, or a token whose exp claim has passed clears both keys.
func (s *Store) Restore(ctx context.Context) error {
	rawUser, ok, err := s.storage.Get(ctx, UserKey)
	if err != nil {
		return fmt.Errorf("read user snapshot: %w", err)
	}
	if !ok {
		return nil
	}

	token, hasToken, err := s.storage.Get(ctx, TokenKey)
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil || !user.Role.Valid() || !hasToken || token == "" {
		zap.S().Warnw("discarding stored session", "reason", "unreadable snapshot")
		return s.clear(ctx)
	}

	if s.expired(token) {
		zap.S().Infow("discarding stored session", "reason", "token expired")
		return s.clear(ctx)
	}

	s.state.Set(identity{token: token, user: &user})
	return nil
}

// expired reads the exp claim without verifying the signature; tokens that
// are not JWTs are left to the server to judge.
func (s *Store) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(s.now())
}

func (s *Store) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	resp, err := s.auth.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.store(ctx, resp)
}

func (s *Store) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	resp, err := s.auth.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.store(ctx, resp)
}

func (s *Store) store(ctx context.Context, resp *models.AuthResponse) (*models.User, error) {
	user := resp.User()
	snapshot, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("encode user snapshot: %w", err)
	}

	if err := s.storage.Set(ctx, TokenKey, resp.Token); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	if err := s.storage.Set(ctx, UserKey, string(snapshot)); err != nil {
		return nil, fmt.Errorf("persist user snapshot: %w", err)
	}

	s.state.Set(identity{token: resp.Token, user: &user})
	zap.S().Infow("signed in", "user_id", user.ID, "role", user.Role)
	return &user, nil
}

// Logout clears the identity. Calling it when signed out is a no-op.
func (s *Store) Logout(ctx context.Context) error {
	return s.clear(ctx)
}

func (s *Store) clear(ctx context.Context) error {
	s.state.Set(identity{})
	if err := s.storage.Remove(ctx, TokenKey, UserKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Token implements api.TokenSource.
func (s *Store) Token(context.Context) (string, error) {
	return s.state.Get().token, nil
}

func (s *Store) IsAuthenticated() bool {
	return s.state.Get().user != nil
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (s *Store) CurrentUser() *models.User {
	u := s.state.Get().user
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}

func (s *Store) hasRole(r models.Role) bool {
	u := s.state.Get().user
	return u != nil && u.Role == r
}

func (s *Store) IsCustomer() bool { return s.hasRole(models.RoleCustomer) }
func (s *Store) IsBarber() bool   { return s.hasRole(models.RoleBarber) }
func (s *Store) IsAdmin() bool    { return s.hasRole(models.RoleAdmin) }

// Subscribe calls fn with the user (nil when signed out) on every change.
func (s *Store) Subscribe(fn func(*models.User)) func() {
	return s.state.Subscribe(func(id identity) {
		if id.user == nil {
			fn(nil)
			return
		}
		cp := *id.user
		fn(&cp)
	})
}
