package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"eldercare/internal/model"
	kvrepo "eldercare/internal/repository/kv"
	"eldercare/internal/storage"
	"eldercare/internal/testutil"
)

// wired builds the full service stack over an in-memory store, the same way
// cmd/care does over sqlite.
func wired(seed model.Profile) (*AuthServiceImpl, *SessionManager) {
	mem := storage.NewMemory()
	clock := testutil.FixedClock()
	logger := zap.NewNop()

	profiles := kvrepo.NewProfileStore(mem, seed)
	users := kvrepo.NewUserDatabase(mem, clock)
	sessions := kvrepo.NewSessionStore(mem)

	return NewAuthService(profiles, users, sessions, clock, logger),
		NewSessionManager(sessions, logger)
}

func TestSignupLoginRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	auth, mgr := wired(model.Profile{})

	creds, err := auth.CreateUser(ctx, model.Profile{
		ElderName:     "João de Lima",
		BirthDate:     "2000-01-20",
		CaregiverName: "Julia",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if creds.Username != "joao.lima" || creds.Password != "20012000" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}

	sess, err := auth.Authenticate(ctx, creds.Username, creds.Password)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if sess.Role != model.RoleCaregiver {
		t.Fatalf("role = %q, want caregiver", sess.Role)
	}
	if !HasPermission(sess, model.PermContacts) {
		t.Fatal("caregiver session must grant contacts:read")
	}

	// hydration: a fresh read returns the persisted session
	stored, err := mgr.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if stored == nil || !stored.IsAuthenticated || stored.Username != "joao.lima" {
		t.Fatalf("unexpected stored session: %+v", stored)
	}

	if err := mgr.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	stored, err = mgr.Current(ctx)
	if err != nil || stored != nil {
		t.Fatalf("session survives logout: %+v, %v", stored, err)
	}
}

func TestDefaultUserScenario(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	auth, _ := wired(model.Profile{ElderName: "Maria da Silva", BirthDate: "1940-03-15"})

	if err := auth.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	sess, err := auth.Authenticate(ctx, "maria.silva", "15031940")
	if err != nil {
		t.Fatalf("Authenticate after bootstrap: %v", err)
	}
	if sess.Role != model.RoleCaregiver {
		t.Fatalf("role = %q, want caregiver", sess.Role)
	}
}

func TestFailedLoginLeavesNoSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	auth, mgr := wired(model.Profile{})

	if _, err := auth.CreateUser(ctx, model.Profile{ElderName: "Pedro Alves", BirthDate: "1998-10-10"}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if _, err := auth.Authenticate(ctx, "pedro.alves", "wrong-password"); err == nil {
		t.Fatal("want authentication failure")
	}
	sess, err := mgr.Current(ctx)
	if err != nil || sess != nil {
		t.Fatalf("failed login must not leave a session: %+v, %v", sess, err)
	}
}
