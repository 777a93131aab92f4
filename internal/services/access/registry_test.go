package access

import (
	"context"
	"errors"
	"testing"

	"github.com/KamalidenovRustem/KursivMedia/internal/domain/enums"
)

type fakeRolesRepo struct {
	moderators []int64
	admins     []int64
}

func (f *fakeRolesRepo) ListModerators(ctx context.Context) ([]int64, error) {
	return f.moderators, nil
}

func (f *fakeRolesRepo) ListAdmins(ctx context.Context) ([]int64, error) {
	return f.admins, nil
}

func (f *fakeRolesRepo) AddModerator(ctx context.Context, tgID, addedBy int64) error {
	f.moderators = append(f.moderators, tgID)
	return nil
}

func (f *fakeRolesRepo) AddAdmin(ctx context.Context, tgID, addedBy int64) error {
	f.admins = append(f.admins, tgID)
	return nil
}

func TestRegistryReloadAndLookup(t *testing.T) {
	repo := &fakeRolesRepo{moderators: []int64{10}, admins: []int64{20}}
	reg := NewRegistry(repo)

	if err := reg.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}

	if !reg.IsModerator(10) {
		t.Fatalf("expected 10 to be moderator")
	}
	if reg.IsAdmin(10) {
		t.Fatalf("moderator must not be admin")
	}
	if !reg.IsAdmin(20) {
		t.Fatalf("expected 20 to be admin")
	}
	if reg.IsModerator(30) || reg.IsAdmin(30) {
		t.Fatalf("unknown id must have no role")
	}
}

func TestAdminImpliesModerator(t *testing.T) {
	reg := NewRegistry(&fakeRolesRepo{admins: []int64{20}})
	if err := reg.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}

	if !reg.IsModerator(20) {
		t.Fatalf("admin must pass the moderator check")
	}
	if reg.RoleOf(20) != enums.RoleAdmin {
		t.Fatalf("unexpected role: %s", reg.RoleOf(20))
	}
}

func TestGrantIsVisibleWithoutReload(t *testing.T) {
	repo := &fakeRolesRepo{}
	reg := NewRegistry(repo)
	if err := reg.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}

	ctx := context.Background()
	if err := reg.AddModerator(ctx, 10, 99); err != nil {
		t.Fatalf("add moderator: %v", err)
	}
	if err := reg.AddAdmin(ctx, 20, 99); err != nil {
		t.Fatalf("add admin: %v", err)
	}

	if !reg.IsModerator(10) {
		t.Fatalf("grant must take effect immediately")
	}
	if !reg.IsAdmin(20) {
		t.Fatalf("admin grant must take effect immediately")
	}
	if len(repo.moderators) != 1 || len(repo.admins) != 1 {
		t.Fatalf("grants must be persisted")
	}
}

func TestRequireGuards(t *testing.T) {
	reg := NewRegistry(&fakeRolesRepo{moderators: []int64{10}, admins: []int64{20}})
	if err := reg.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}

	if err := reg.RequireModerator(10); err != nil {
		t.Fatalf("moderator must pass: %v", err)
	}
	if err := reg.RequireAdmin(10); !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("expected ErrNotAllowed for moderator on admin gate, got %v", err)
	}
	if err := reg.RequireModerator(20); err != nil {
		t.Fatalf("admin must pass the moderator gate: %v", err)
	}
	if err := reg.RequireModerator(30); !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("expected ErrNotAllowed for plain user, got %v", err)
	}
}

func TestGrantRejectsInvalidID(t *testing.T) {
	reg := NewRegistry(&fakeRolesRepo{})

	if err := reg.AddModerator(context.Background(), 0, 99); err == nil {
		t.Fatalf("expected error for zero tg id")
	}
	if err := reg.AddAdmin(context.Background(), -1, 99); err == nil {
		t.Fatalf("expected error for negative tg id")
	}
}
