package store_test

import (
	"context"
	"testing"

	"github.com/shashiranjanraj/freshko/app/models"
	"github.com/shashiranjanraj/freshko/app/store"
	"github.com/shashiranjanraj/freshko/pkg/auth"
)

func TestCreateUserDuplicateEmailIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	if _, res := s.CreateUser(ctx, store.NewUser{Email: "Asha@Example.com", Password: "pw"}); !res.Success {
		t.Fatal(res.Message)
	}

	_, res := s.CreateUser(ctx, store.NewUser{Email: "asha@example.COM", Password: "pw"})
	if res.Success {
		t.Fatal("duplicate email accepted")
	}
	if res.Code != store.CodeDuplicateEmail {
		t.Errorf("unexpected code: %s", res.Code)
	}
	if n := len(s.GetAllUsers(ctx)); n != 1 {
		t.Errorf("user count = %d, want 1", n)
	}
}

func TestCreateUserStoresFoldedEmailAndHashedPassword(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	u, res := s.CreateUser(ctx, store.NewUser{Email: "  Asha@Example.com ", Password: "secret123"})
	if !res.Success {
		t.Fatal(res.Message)
	}
	if u.Email != "asha@example.com" {
		t.Errorf("stored email = %q", u.Email)
	}
	if u.Password == "secret123" || u.Password == "" {
		t.Error("password stored in the clear")
	}
	if u.Role != models.RoleUser {
		t.Errorf("default role = %s", u.Role)
	}
}

func TestUpdateUserEmailCollision(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	if _, res := s.CreateUser(ctx, store.NewUser{Email: "first@example.com", Password: "pw"}); !res.Success {
		t.Fatal(res.Message)
	}
	second, res := s.CreateUser(ctx, store.NewUser{Email: "second@example.com", Password: "pw"})
	if !res.Success {
		t.Fatal(res.Message)
	}

	taken := "FIRST@example.com"
	if res := s.UpdateUser(ctx, second.ID, store.UserPatch{Email: &taken}); res.Success ||
		res.Code != store.CodeDuplicateEmail {
		t.Fatalf("expected DuplicateEmail, got %+v", res)
	}

	// Re-submitting your own email is not a collision.
	own := "Second@Example.com"
	if res := s.UpdateUser(ctx, second.ID, store.UserPatch{Email: &own}); !res.Success {
		t.Fatalf("own email rejected: %s", res.Message)
	}
}

func TestUpdateUserSyncsSession(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	u := registerAndLogin(t, s, "asha@example.com")

	name := "Ayesha"
	if res := s.UpdateUser(ctx, u.ID, store.UserPatch{FirstName: &name}); !res.Success {
		t.Fatal(res.Message)
	}

	current, ok := s.CurrentUser(ctx)
	if !ok || current.FirstName != "Ayesha" {
		t.Errorf("session not synced: %+v", current)
	}
}

func TestDeleteUserClearsOwnSession(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	u := registerAndLogin(t, s, "asha@example.com")

	if res := s.DeleteUser(ctx, u.ID); !res.Success {
		t.Fatal(res.Message)
	}
	if _, ok := s.CurrentUser(ctx); ok {
		t.Error("deleting the signed-in user must clear the session")
	}
	if _, ok := s.GetUserByEmail(ctx, "asha@example.com"); ok {
		t.Error("user still present after delete")
	}
}

func TestFederatedLoginCreatesAccountOnce(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	identity := auth.VerifiedIdentity{Name: "Priya Nair", Email: "priya@example.com"}
	if res := s.LoginFederated(ctx, identity); !res.Success {
		t.Fatal(res.Message)
	}

	first, ok := s.CurrentUser(ctx)
	if !ok {
		t.Fatal("no session after federated login")
	}
	if !first.Federated {
		t.Error("account not marked federated")
	}
	if first.FirstName != "Priya" || first.LastName != "Nair" {
		t.Errorf("name split: %q %q", first.FirstName, first.LastName)
	}

	s.Logout(ctx)

	identity.Email = "PRIYA@example.com"
	if res := s.LoginFederated(ctx, identity); !res.Success {
		t.Fatal(res.Message)
	}
	again, _ := s.CurrentUser(ctx)
	if again.ID != first.ID {
		t.Error("second federated login created a new account")
	}
	if n := len(s.GetAllUsers(ctx)); n != 1 {
		t.Errorf("user count = %d, want 1", n)
	}
}

func TestPasswordLoginRejectedForFederatedAccount(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	identity := auth.VerifiedIdentity{Name: "Priya Nair", Email: "priya@example.com"}
	if res := s.LoginFederated(ctx, identity); !res.Success {
		t.Fatal(res.Message)
	}
	s.Logout(ctx)

	res := s.Login(ctx, "priya@example.com", "")
	if res.Success {
		t.Fatal("federated account must not accept password login")
	}
	if res.Code != store.CodeInvalidCredentials {
		t.Errorf("unexpected code: %s", res.Code)
	}
}
