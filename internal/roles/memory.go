package roles

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
)

// MemoryRoles is an in-process CustomRoleStore and TeamSource
type MemoryRoles struct {
	mu      sync.RWMutex
	members map[string]map[string]struct{} // role ID -> lowercased usernames
	roles   map[string]domain.Role
	teams   map[string][]domain.Role // platform:userID -> teams
}

// NewMemoryRoles creates an empty store
func NewMemoryRoles() *MemoryRoles {
	return &MemoryRoles{
		members: make(map[string]map[string]struct{}),
		roles:   make(map[string]domain.Role),
		teams:   make(map[string][]domain.Role),
	}
}

// AddMember puts username into role, creating the role if needed
func (m *MemoryRoles) AddMember(role domain.Role, username string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.roles[role.ID] = role
	if m.members[role.ID] == nil {
		m.members[role.ID] = make(map[string]struct{})
	}
	m.members[role.ID][strings.ToLower(username)] = struct{}{}
}

// RemoveMember takes username out of role
func (m *MemoryRoles) RemoveMember(roleID, username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.members[roleID], strings.ToLower(username))
}

// SetTeams replaces the team list of a user
func (m *MemoryRoles) SetTeams(platform, userID string, teams []domain.Role) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teams[platform+cacheKeySeparator+userID] = append([]domain.Role(nil), teams...)
}

// CustomRolesFor implements CustomRoleStore. Custom roles are platform-agnostic.
func (m *MemoryRoles) CustomRolesFor(_ context.Context, _ string, username string) ([]domain.Role, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name := strings.ToLower(username)
	var out []domain.Role
	for id, users := range m.members {
		if _, ok := users[name]; ok {
			out = append(out, m.roles[id])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// TeamRoles implements TeamSource
func (m *MemoryRoles) TeamRoles(_ context.Context, platform, userID string) ([]domain.Role, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Role(nil), m.teams[platform+cacheKeySeparator+userID]...), nil
}
