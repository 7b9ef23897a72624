package cli

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/stitchlog/internal/logging"
	"github.com/julianstephens/stitchlog/internal/models"
	"github.com/julianstephens/stitchlog/internal/storage"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stitchlog.json")
	return &Context{
		Store: storage.New(storage.NewJSONStore(path), logging.Discard()),
		Log:   logging.Discard(),
	}
}

func TestGoalResetRequiresConfirmation(t *testing.T) {
	ctx := newTestContext(t)

	mgr, err := ctx.OpenManager()
	if err != nil {
		t.Fatal(err)
	}
	user, ok := mgr.ActiveUser()
	if !ok {
		t.Fatal("expected an active user")
	}

	anchor := "2025-01-01T00:00:00.000Z"
	err = mgr.UpdateUser(user.ID, func(u *models.User) {
		u.EarningsGoal = 500
		u.EarningsStart = anchor
	})
	if err != nil {
		t.Fatal(err)
	}

	// Without --yes nothing moves.
	cmd := &GoalResetCmd{}
	if err := cmd.Run(ctx); err == nil {
		t.Fatal("expected an error without --yes")
	}

	mgr, err = ctx.OpenManager()
	if err != nil {
		t.Fatal(err)
	}
	unchanged, _ := mgr.ActiveUser()
	if unchanged.EarningsStart != anchor {
		t.Fatalf("anchor moved without confirmation: %q", unchanged.EarningsStart)
	}

	// With --yes the anchor advances and the goal amount stays.
	cmd = &GoalResetCmd{Yes: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatal(err)
	}

	mgr, err = ctx.OpenManager()
	if err != nil {
		t.Fatal(err)
	}
	reset, _ := mgr.ActiveUser()
	if reset.EarningsStart == anchor {
		t.Error("anchor did not move after confirmed reset")
	}
	if reset.EarningsGoal != 500 {
		t.Errorf("goal = %v, want 500 (reset must not touch the amount)", reset.EarningsGoal)
	}
}
