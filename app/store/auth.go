package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/freshko/app/models"
	"github.com/shashiranjanraj/freshko/pkg/auth"
	"github.com/shashiranjanraj/freshko/pkg/logger"
)

// Login authenticates by email and password. Federated accounts have no
// local credential and must go through LoginFederated.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	s.ensureHydrated(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUserByEmailLocked(email)
	if u == nil {
		return fail(CodeInvalidCredentials, "Invalid email or password")
	}
	if u.Federated {
		return fail(CodeInvalidCredentials, "This account signs in through its identity provider")
	}
	if !auth.CheckPassword(u.Password, password) {
		return fail(CodeInvalidCredentials, "Invalid email or password")
	}

	session := *u
	s.session = &session
	s.persistState(ctx)

	logger.Info("store: login", "user", u.ID)
	return ok("Welcome back, " + u.FirstName)
}

// LoginFederated signs in an identity already verified by the external
// provider. It only accepts an auth.VerifiedIdentity, which can only be
// produced from a token signed with the provider secret, so this path is
// unreachable without upstream verification. First-time identities are
// mapped into a new user record.
func (s *Store) LoginFederated(ctx context.Context, id auth.VerifiedIdentity) Result {
	s.ensureHydrated(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUserByEmailLocked(id.Email)
	if u == nil {
		first, last := splitDisplayName(id.Name)
		created := models.User{
			ID:        uuid.NewString(),
			FirstName: first,
			LastName:  last,
			Email:     models.NormalizeEmail(id.Email),
			Role:      models.RoleUser,
			Federated: true,
			CreatedAt: time.Now(),
		}
		s.users = append(s.users, created)
		s.persistUsers(ctx)
		u = &s.users[len(s.users)-1]
		logger.Info("store: federated user created", "user", created.ID)
	}

	session := *u
	s.session = &session
	s.persistState(ctx)

	return ok("Welcome, " + u.FirstName)
}

// Logout clears the session and persists the clearing.
func (s *Store) Logout(ctx context.Context) {
	s.ensureHydrated(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	s.persistState(ctx)
}

// CurrentUser returns the authenticated user, if any.
func (s *Store) CurrentUser(ctx context.Context) (models.User, bool) {
	s.ensureHydrated(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return models.User{}, false
	}
	return *s.session, true
}

// findUserByEmailLocked matches by case-folded email. Caller holds a lock.
func (s *Store) findUserByEmailLocked(email string) *models.User {
	folded := models.NormalizeEmail(email)
	for i := range s.users {
		if models.NormalizeEmail(s.users[i].Email) == folded {
			return &s.users[i]
		}
	}
	return nil
}

func splitDisplayName(name string) (first, last string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
