// Package auth implements sign-in, registration, and the persisted
// session against the backend users resource.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Service authenticates users and tracks the signed-in session. The
// session survives restarts through the credential store; only the user
// document is persisted, never the password. The session is read from
// the UI goroutine while the command loop signs in and out, so access
// to it goes through the mutex.
type Service struct {
	users domain.UserStore
	creds domain.CredentialStore
	log   *logger.Logger

	mu      sync.RWMutex
	current *domain.User
}

// NewService creates an auth service. The credential store is read once
// so a previously signed-in user resumes their session.
func NewService(users domain.UserStore, creds domain.CredentialStore, log *logger.Logger) *Service {
	s := &Service{users: users, creds: creds, log: log}
	if u, err := creds.Get(); err == nil && u != nil {
		s.current = u
		log.Info("auth: resumed session for %s", u.Email)
	}
	return s
}

// Current returns the signed-in user, or nil.
func (s *Service) Current() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SignedIn reports whether a user is signed in.
func (s *Service) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Login authenticates with email+password. Credential matching is the
// backend's query; a non-match surfaces as domain.ErrInvalidCredentials
// with no hint whether the email or the password was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	u, err := s.users.FindByCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = u
	s.mu.Unlock()
	if err := s.creds.Set(u); err != nil {
		s.log.Warn("auth: persisting session failed: %v", err)
	}
	s.log.Info("auth: signed in as %s", u.Email)
	return u, nil
}

// Register creates an account and signs it in. A duplicate email is
// rejected with domain.ErrEmailTaken before anything is written.
func (s *Service) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("auth: name, email, and password are all required")
	}

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailTaken
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	u, err := s.users.Create(ctx, &domain.User{Name: name, Email: email}, password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = u
	s.mu.Unlock()
	if err := s.creds.Set(u); err != nil {
		s.log.Warn("auth: persisting session failed: %v", err)
	}
	s.log.Info("auth: registered and signed in as %s", u.Email)
	return u, nil
}

// Logout clears the session, both in memory and in the credential store.
func (s *Service) Logout() error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return domain.ErrNotSignedIn
	}
	email := s.current.Email
	s.current = nil
	s.mu.Unlock()

	s.log.Info("auth: signed out %s", email)
	return s.creds.Clear()
}
