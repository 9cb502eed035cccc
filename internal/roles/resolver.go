package roles

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
	"github.com/osse101/ChatDispatch_Go/internal/logger"
)

// Resolver returns the roles a chat user currently holds
type Resolver interface {
	RolesFor(ctx context.Context, user domain.ChatUser) ([]domain.Role, error)
}

// ResolverFunc adapts a function to Resolver
type ResolverFunc func(ctx context.Context, user domain.ChatUser) ([]domain.Role, error)

// RolesFor calls f
func (f ResolverFunc) RolesFor(ctx context.Context, user domain.ChatUser) ([]domain.Role, error) {
	return f(ctx, user)
}

// PlatformResolver maps the raw role names reported by the chat platform
// onto built-in roles
type PlatformResolver struct{}

// RolesFor translates user.Roles; unknown names are ignored
func (PlatformResolver) RolesFor(_ context.Context, user domain.ChatUser) ([]domain.Role, error) {
	out := make([]domain.Role, 0, len(user.Roles))
	for _, raw := range user.Roles {
		if role, ok := domain.PlatformRoles[strings.ToLower(strings.TrimSpace(raw))]; ok {
			out = append(out, role)
		}
	}
	return out, nil
}

// TeamSource looks up the teams a user belongs to on the platform
type TeamSource interface {
	TeamRoles(ctx context.Context, platform, userID string) ([]domain.Role, error)
}

// TeamResolver caches team lookups per user since they are remote calls
type TeamResolver struct {
	source TeamSource
	cache  *expirable.LRU[string, []domain.Role]
}

// NewTeamResolver wraps source with an expiring cache of size entries
func NewTeamResolver(source TeamSource, size int, ttl time.Duration) *TeamResolver {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &TeamResolver{
		source: source,
		cache:  expirable.NewLRU[string, []domain.Role](size, nil, ttl),
	}
}

// RolesFor returns cached team roles, fetching on a miss
func (r *TeamResolver) RolesFor(ctx context.Context, user domain.ChatUser) ([]domain.Role, error) {
	key := user.Platform + cacheKeySeparator + user.UserID
	if cached, ok := r.cache.Get(key); ok {
		return cached, nil
	}

	teams, err := r.source.TeamRoles(ctx, user.Platform, user.UserID)
	if err != nil {
		return nil, err
	}
	r.cache.Add(key, teams)
	return teams, nil
}

// Purge empties the cache
func (r *TeamResolver) Purge() {
	r.cache.Purge()
}

// CustomRoleStore holds streamer-defined roles and their members
type CustomRoleStore interface {
	CustomRolesFor(ctx context.Context, platform, username string) ([]domain.Role, error)
}

// CustomResolver reads custom roles from a store
type CustomResolver struct {
	store CustomRoleStore
}

// NewCustomResolver creates a resolver over store
func NewCustomResolver(store CustomRoleStore) *CustomResolver {
	return &CustomResolver{store: store}
}

// RolesFor returns the custom roles naming the user
func (r *CustomResolver) RolesFor(ctx context.Context, user domain.ChatUser) ([]domain.Role, error) {
	return r.store.CustomRolesFor(ctx, user.Platform, user.Username)
}

// unionResolver merges several sources
type unionResolver struct {
	sources []Resolver
}

// Union combines resolvers into one, deduplicating roles by ID.
// A failing source contributes nothing; its error is joined into the result
// while the roles of the remaining sources are still returned.
func Union(sources ...Resolver) Resolver {
	return &unionResolver{sources: sources}
}

func (u *unionResolver) RolesFor(ctx context.Context, user domain.ChatUser) ([]domain.Role, error) {
	seen := make(map[string]struct{})
	var out []domain.Role
	var errs []error

	for _, src := range u.sources {
		found, err := src.RolesFor(ctx, user)
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgSourceFailed, "user_id", user.UserID, "error", err)
			errs = append(errs, err)
			continue
		}
		for _, role := range found {
			id := strings.ToLower(role.ID)
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, role)
		}
	}
	return out, errors.Join(errs...)
}

// HasAny reports whether any held role matches one of names, compared
// case-insensitively against both role name and ID
func HasAny(held []domain.Role, names []string) bool {
	for _, name := range names {
		for _, role := range held {
			if strings.EqualFold(role.Name, name) || strings.EqualFold(role.ID, name) {
				return true
			}
		}
	}
	return false
}
