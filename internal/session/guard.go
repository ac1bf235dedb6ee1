package session

import (
	"errors"
	"fmt"
)

var ErrRedirect = errors.New("redirect")

// RedirectError tells the caller to leave the current view. It is an
// authorization outcome, not something to show as an error toast.
type RedirectError struct {
	To     string
	Reason string
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("redirect to %s: %s", e.To, e.Reason)
}

func (e *RedirectError) Unwrap() error {
	return ErrRedirect
}

const (
	LoginPath = "/login"
	HomePath  = "/"
)

func (s *Store) RequireAuthenticated() error {
	if !s.IsAuthenticated() {
		return &RedirectError{To: LoginPath, Reason: "sign in required"}
	}
	return nil
}

func (s *Store) RequireCustomer() error {
	if err := s.RequireAuthenticated(); err != nil {
		return err
	}
	if !s.IsCustomer() {
		return &RedirectError{To: HomePath, Reason: "customers only"}
	}
	return nil
}

func (s *Store) RequireBarber() error {
	if !s.IsBarber() {
		return &RedirectError{To: HomePath, Reason: "barbers only"}
	}
	return nil
}

func (s *Store) RequireAdmin() error {
	if !s.IsAdmin() {
		return &RedirectError{To: HomePath, Reason: "administrators only"}
	}
	return nil
}

// RequireGuest keeps signed-in users away from the login and register views.
func (s *Store) RequireGuest() error {
	if s.IsAuthenticated() {
		return &RedirectError{To: HomePath, Reason: "already signed in"}
	}
	return nil
}
