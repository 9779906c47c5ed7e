package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/freshko/app/models"
	"github.com/shashiranjanraj/freshko/pkg/auth"
	"github.com/shashiranjanraj/freshko/pkg/logger"
)

// NewUser is the input for self-registration or admin user creation.
type NewUser struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
	Role      models.Role
	Avatar    string
}

// UserPatch is a field-merge update; nil fields are left untouched.
type UserPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Password  *string
	Role      *models.Role
	Avatar    *string
}

// CreateUser registers a new account. Emails are unique case-insensitively.
func (s *Store) CreateUser(ctx context.Context, in NewUser) (models.User, Result) {
	s.ensureHydrated(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if in.Email == "" {
		return models.User{}, fail(CodeInvalidInput, "Email is required")
	}
	if s.findUserByEmailLocked(in.Email) != nil {
		return models.User{}, fail(CodeDuplicateEmail, "An account with this email already exists")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, fail(CodeInvalidInput, "Password could not be processed")
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}

	u := models.User{
		ID:        uuid.NewString(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     models.NormalizeEmail(in.Email),
		Phone:     in.Phone,
		Role:      role,
		Password:  hash,
		Avatar:    in.Avatar,
		CreatedAt: time.Now(),
	}

	s.users = append(s.users, u)
	s.persistUsers(ctx)

	logger.Info("store: user created", "user", u.ID)
	return u, ok("Account created")
}

// UpdateUser merges patch into the user with the given id.
func (s *Store) UpdateUser(ctx context.Context, id string, patch UserPatch) Result {
	s.ensureHydrated(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUserByIDLocked(id)
	if u == nil {
		return fail(CodeNotFound, "User not found")
	}

	if patch.Email != nil {
		if other := s.findUserByEmailLocked(*patch.Email); other != nil && other.ID != id {
			return fail(CodeDuplicateEmail, "An account with this email already exists")
		}
		u.Email = models.NormalizeEmail(*patch.Email)
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.Phone != nil {
		u.Phone = *patch.Phone
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.Password != nil {
		hash, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return fail(CodeInvalidInput, "Password could not be processed")
		}
		u.Password = hash
	}

	// Keep the session copy in sync when the user edits themselves.
	if s.session != nil && s.session.ID == id {
		session := *u
		s.session = &session
	}

	s.persistUsers(ctx)
	s.persistState(ctx)
	return ok("User updated")
}

// DeleteUser removes the account. Deleting the authenticated user also
// clears the session.
func (s *Store) DeleteUser(ctx context.Context, id string) Result {
	s.ensureHydrated(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.users {
		if s.users[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fail(CodeNotFound, "User not found")
	}

	s.users = append(s.users[:idx], s.users[idx+1:]...)
	if s.session != nil && s.session.ID == id {
		s.session = nil
	}

	s.persistUsers(ctx)
	s.persistState(ctx)

	logger.Info("store: user deleted", "user", id)
	return ok("User deleted")
}

// GetUserByEmail is a pure read over current in-memory state.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, bool) {
	s.ensureHydrated(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if u := s.findUserByEmailLocked(email); u != nil {
		return *u, true
	}
	return models.User{}, false
}

// GetAllUsers returns a copy of every account.
func (s *Store) GetAllUsers(ctx context.Context) []models.User {
	s.ensureHydrated(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

func (s *Store) findUserByIDLocked(id string) *models.User {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i]
		}
	}
	return nil
}
