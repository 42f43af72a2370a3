package usecase

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/adapters/out/memory"
	"storefront/internal/domain/account"
)

func newMemoryAuth(t *testing.T) (*AuthUsecase, *memory.Store, *fakeTracker) {
	t.Helper()
	store := memory.NewStore()
	tr := &fakeTracker{}
	uc := NewAuthUsecase(AuthDeps{
		Identity: memory.NewIdentityWithCost(bcrypt.MinCost),
		Profiles: store,
		Admin:    account.NewAdminPolicy("admin-uid"),
		Tracker:  tr,
	})
	return uc, store, tr
}

func TestRegisterCreatesProfileAndSignsIn(t *testing.T) {
	uc, store, tr := newMemoryAuth(t)
	ctx := context.Background()

	var observed []*account.User
	uc.Observe(func(u *account.User) { observed = append(observed, u) })

	cred, err := uc.Register(ctx, "a@example.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}

	if email, ok := store.ProfileEmail(cred.User.UID); !ok || email != "a@example.com" {
		t.Fatalf("profile not mirrored: %q %v", email, ok)
	}
	if cur := uc.CurrentUser(); cur == nil || cur.UID != cred.User.UID {
		t.Fatalf("expected signed in as %s, got %+v", cred.User.UID, cur)
	}
	if len(observed) != 2 || observed[0] != nil || observed[1].UID != cred.User.UID {
		t.Fatalf("unexpected observer calls: %+v", observed)
	}
	if names := tr.names(); len(names) != 1 || names[0] != "sign_up" {
		t.Fatalf("expected sign_up event, got %v", names)
	}
}

func TestRegisterDuplicateEmailPropagates(t *testing.T) {
	uc, _, _ := newMemoryAuth(t)
	ctx := context.Background()

	if _, err := uc.Register(ctx, "a@example.com", "secret1"); err != nil {
		t.Fatal(err)
	}
	_, err := uc.Register(ctx, "a@example.com", "secret2")
	if !errors.Is(err, account.ErrEmailAlreadyInUse) {
		t.Fatalf("expected ErrEmailAlreadyInUse, got %v", err)
	}
}

func TestRegisterProfileFailureIsReturned(t *testing.T) {
	boom := errors.New("firestore down")
	uc := NewAuthUsecase(AuthDeps{
		Identity: &fakeIdentity{
			signUpFn: func(_ context.Context, email, _ string) (*account.Credential, error) {
				return &account.Credential{User: account.User{UID: "u1", Email: email}}, nil
			},
		},
		Profiles: &fakeProfiles{
			mergeFn: func(context.Context, string, string) error { return boom },
		},
	})

	_, err := uc.Register(context.Background(), "a@example.com", "secret1")
	if !errors.Is(err, boom) {
		t.Fatalf("expected profile error, got %v", err)
	}
	// identity 側は作成済みなのでセッションはサインイン状態のまま
	if uc.CurrentUser() == nil {
		t.Fatalf("expected identity to stay signed in")
	}
}

func TestRegisterWelcomeMailFailureIsIgnored(t *testing.T) {
	store := memory.NewStore()
	sent := ""
	uc := NewAuthUsecase(AuthDeps{
		Identity: memory.NewIdentityWithCost(bcrypt.MinCost),
		Profiles: store,
		Mailer: &fakeMailer{sendFn: func(_ context.Context, to string) error {
			sent = to
			return errors.New("sendgrid 500")
		}},
	})

	if _, err := uc.Register(context.Background(), "a@example.com", "secret1"); err != nil {
		t.Fatalf("mail failure must not fail register: %v", err)
	}
	if sent != "a@example.com" {
		t.Fatalf("expected welcome mail attempt, got %q", sent)
	}
}

func TestLoginAndLogout(t *testing.T) {
	uc, _, tr := newMemoryAuth(t)
	ctx := context.Background()

	if _, err := uc.Register(ctx, "a@example.com", "secret1"); err != nil {
		t.Fatal(err)
	}
	if err := uc.Logout(ctx); err != nil {
		t.Fatal(err)
	}
	if uc.CurrentUser() != nil {
		t.Fatalf("expected signed out")
	}

	if _, err := uc.Login(ctx, "a@example.com", "wrong-pw"); !errors.Is(err, account.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if uc.CurrentUser() != nil {
		t.Fatalf("failed login must not sign in")
	}

	cred, err := uc.Login(ctx, "a@example.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}
	if cur := uc.CurrentUser(); cur == nil || cur.UID != cred.User.UID {
		t.Fatalf("expected signed in, got %+v", cur)
	}

	want := []string{"sign_up", "logout", "login"}
	got := tr.names()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
}

func TestLogoutWhenSignedOutIsNoop(t *testing.T) {
	called := false
	uc := NewAuthUsecase(AuthDeps{
		Identity: &fakeIdentity{signOutFn: func(context.Context, string) error {
			called = true
			return nil
		}},
	})
	if err := uc.Logout(context.Background()); err != nil {
		t.Fatal(err)
	}
	if called {
		t.Fatalf("SignOut must not be called without a session")
	}
}

func TestLogoutKeepsOtherSessions(t *testing.T) {
	revoked := false
	uc := NewAuthUsecase(AuthDeps{
		Identity: &fakeIdentity{
			signInFn: func(_ context.Context, email, _ string) (*account.Credential, error) {
				return &account.Credential{User: account.User{UID: "u1", Email: email}}, nil
			},
			signOutFn: func(context.Context, string) error {
				revoked = true
				return nil
			},
		},
	})
	ctx := context.Background()

	if _, err := uc.Login(ctx, "a@example.com", "pw"); err != nil {
		t.Fatal(err)
	}
	if err := uc.Logout(ctx); err != nil {
		t.Fatal(err)
	}
	if uc.CurrentUser() != nil {
		t.Fatalf("local session must be cleared")
	}
	if revoked {
		t.Fatalf("Logout must not revoke refresh tokens")
	}
}

func TestRevokeSessionsRequiresUID(t *testing.T) {
	uc, _, _ := newMemoryAuth(t)
	if err := uc.RevokeSessions(context.Background(), " "); !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
}

func TestIsAdmin(t *testing.T) {
	uc, _, _ := newMemoryAuth(t)
	if uc.IsAdmin(nil) {
		t.Fatalf("nil user is never admin")
	}
	if uc.IsAdmin(&account.User{UID: "someone"}) {
		t.Fatalf("non-admin uid")
	}
	if !uc.IsAdmin(&account.User{UID: "admin-uid"}) {
		t.Fatalf("expected admin")
	}
}
