package desk

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/atcdesk/pkg/core"
)

// Session guards the desk behind a bearer token checked by a remote
// service. It holds no credentials of its own.
type Session struct {
	mu        *sync.Mutex
	store     core.Store
	validator core.TokenValidator
	navigator core.Navigator
	loginURL  string
	logger    *slog.Logger
}

// Check validates the stored token. Any failure clears the token, sends the
// user to the login page and returns core.ErrUnauthenticated.
func (s *Session) Check(ctx context.Context) error {
	if s.validator == nil {
		return fmt.Errorf("session check: %w", core.ErrNotConfigured)
	}

	s.mu.Lock()
	token, ok, err := s.store.Get(ctx, core.KeyAuthToken)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	var reason error
	if !ok || token == "" {
		reason = fmt.Errorf("no token stored")
	} else if err := s.validator.Validate(ctx, token); err != nil {
		reason = err
	}
	if reason == nil {
		return nil
	}

	s.logger.Warn("session rejected", "reason", reason)
	if err := s.Clear(ctx); err != nil {
		s.logger.Error("failed to clear session", "error", err)
	}
	if s.loginURL != "" {
		if err := s.navigator.Redirect(s.loginURL); err != nil {
			s.logger.Error("failed to redirect to login", "url", s.loginURL, "error", err)
		}
	}
	return fmt.Errorf("%w: %v", core.ErrUnauthenticated, reason)
}

// SetToken stores a token obtained from the login page.
func (s *Session) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Set(ctx, core.KeyAuthToken, token)
}

// Clear removes the stored token.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Delete(ctx, core.KeyAuthToken)
}

// LoginURL returns where an unauthenticated user is sent.
func (s *Session) LoginURL() string { return s.loginURL }
