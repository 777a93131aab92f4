package access

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/KamalidenovRustem/KursivMedia/internal/domain/enums"
)

// ErrNotAllowed is the authorization denial for role-gated operations.
var ErrNotAllowed = errors.New("operation not allowed for this role")

type Repo interface {
	ListModerators(ctx context.Context) ([]int64, error)
	ListAdmins(ctx context.Context) ([]int64, error)
	AddModerator(ctx context.Context, tgID, addedBy int64) error
	AddAdmin(ctx context.Context, tgID, addedBy int64) error
}

// Registry is the in-memory allow-list of privileged identifiers. Lookups
// run on every inbound update, so the sets live in process and are replaced
// atomically after each persisted change; no restart is ever required.
// There is no demotion operation: the workflow this was built for never
// revokes a role, only grants.
type Registry struct {
	repo Repo

	mu         sync.RWMutex
	moderators map[int64]struct{}
	admins     map[int64]struct{}
}

func NewRegistry(repo Repo) *Registry {
	return &Registry{
		repo:       repo,
		moderators: make(map[int64]struct{}),
		admins:     make(map[int64]struct{}),
	}
}

func (r *Registry) Reload(ctx context.Context) error {
	if r.repo == nil {
		return fmt.Errorf("access repo is not configured")
	}

	moderators, err := r.repo.ListModerators(ctx)
	if err != nil {
		return fmt.Errorf("load moderators: %w", err)
	}
	admins, err := r.repo.ListAdmins(ctx)
	if err != nil {
		return fmt.Errorf("load admins: %w", err)
	}

	moderatorSet := make(map[int64]struct{}, len(moderators))
	for _, id := range moderators {
		moderatorSet[id] = struct{}{}
	}
	adminSet := make(map[int64]struct{}, len(admins))
	for _, id := range admins {
		adminSet[id] = struct{}{}
	}

	r.mu.Lock()
	r.moderators = moderatorSet
	r.admins = adminSet
	r.mu.Unlock()

	return nil
}

// IsModerator reports moderator capability. Admin is a strict superset, so
// admins pass this check too.
func (r *Registry) IsModerator(tgID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.admins[tgID]; ok {
		return true
	}
	_, ok := r.moderators[tgID]
	return ok
}

func (r *Registry) IsAdmin(tgID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.admins[tgID]
	return ok
}

func (r *Registry) RequireModerator(tgID int64) error {
	if !r.IsModerator(tgID) {
		return ErrNotAllowed
	}
	return nil
}

func (r *Registry) RequireAdmin(tgID int64) error {
	if !r.IsAdmin(tgID) {
		return ErrNotAllowed
	}
	return nil
}

func (r *Registry) RoleOf(tgID int64) enums.Role {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.admins[tgID]; ok {
		return enums.RoleAdmin
	}
	if _, ok := r.moderators[tgID]; ok {
		return enums.RoleModerator
	}
	return enums.RolePlain
}

// AddModerator persists the grant first, then swaps in a copied set so a
// concurrent lookup never observes a partially built map.
func (r *Registry) AddModerator(ctx context.Context, tgID, addedBy int64) error {
	if r.repo == nil {
		return fmt.Errorf("access repo is not configured")
	}
	if tgID <= 0 {
		return fmt.Errorf("invalid moderator tg id")
	}

	if err := r.repo.AddModerator(ctx, tgID, addedBy); err != nil {
		return fmt.Errorf("persist moderator: %w", err)
	}

	r.mu.Lock()
	moderators := copySet(r.moderators)
	moderators[tgID] = struct{}{}
	r.moderators = moderators
	r.mu.Unlock()

	return nil
}

func (r *Registry) AddAdmin(ctx context.Context, tgID, addedBy int64) error {
	if r.repo == nil {
		return fmt.Errorf("access repo is not configured")
	}
	if tgID <= 0 {
		return fmt.Errorf("invalid admin tg id")
	}

	if err := r.repo.AddAdmin(ctx, tgID, addedBy); err != nil {
		return fmt.Errorf("persist admin: %w", err)
	}

	r.mu.Lock()
	admins := copySet(r.admins)
	admins[tgID] = struct{}{}
	r.admins = admins
	r.mu.Unlock()

	return nil
}

func copySet(src map[int64]struct{}) map[int64]struct{} {
	dst := make(map[int64]struct{}, len(src)+1)
	for id := range src {
		dst[id] = struct{}{}
	}
	return dst
}
