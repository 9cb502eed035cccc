package roles

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
)

func TestPlatformResolver(t *testing.T) {
	user := domain.ChatUser{UserID: "1", Username: "alice", Roles: []string{"Broadcaster", "sub", "unknown"}}

	got, err := PlatformResolver{}.RolesFor(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, []domain.Role{
		{ID: domain.RoleIDBroadcaster, Name: domain.GroupStreamer},
		{ID: domain.RoleIDSubscriber, Name: domain.GroupSubscribers},
	}, got)
}

type countingTeams struct {
	calls int
	teams []domain.Role
	err   error
}

func (c *countingTeams) TeamRoles(context.Context, string, string) ([]domain.Role, error) {
	c.calls++
	return c.teams, c.err
}

func TestTeamResolver_Caches(t *testing.T) {
	src := &countingTeams{teams: []domain.Role{{ID: "team-1", Name: "Raid Squad"}}}
	r := NewTeamResolver(src, 10, time.Minute)
	user := domain.ChatUser{Platform: domain.PlatformTwitch, UserID: "42"}

	for i := 0; i < 3; i++ {
		got, err := r.RolesFor(context.Background(), user)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	}
	assert.Equal(t, 1, src.calls)

	r.Purge()
	_, err := r.RolesFor(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestTeamResolver_ErrorNotCached(t *testing.T) {
	src := &countingTeams{err: errors.New("api down")}
	r := NewTeamResolver(src, 10, time.Minute)
	user := domain.ChatUser{Platform: domain.PlatformTwitch, UserID: "42"}

	_, err := r.RolesFor(context.Background(), user)
	require.Error(t, err)
	_, err = r.RolesFor(context.Background(), user)
	require.Error(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestUnion_DeduplicatesByID(t *testing.T) {
	store := NewMemoryRoles()
	store.AddMember(domain.Role{ID: "vip", Name: "VIP"}, "Alice")
	store.AddMember(domain.Role{ID: "regulars", Name: "Regulars"}, "alice")
	store.SetTeams(domain.PlatformTwitch, "1", []domain.Role{{ID: "regulars", Name: "Regulars"}})

	r := Union(PlatformResolver{}, NewTeamResolver(store, 0, 0), NewCustomResolver(store))
	user := domain.ChatUser{Platform: domain.PlatformTwitch, UserID: "1", Username: "alice", Roles: []string{"vip"}}

	got, err := r.RolesFor(context.Background(), user)
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, role := range got {
		ids = append(ids, role.ID)
	}
	assert.ElementsMatch(t, []string{"vip", "regulars"}, ids)
}

func TestUnion_FailingSourceKeepsOthers(t *testing.T) {
	failing := ResolverFunc(func(context.Context, domain.ChatUser) ([]domain.Role, error) {
		return nil, errors.New("boom")
	})
	r := Union(failing, PlatformResolver{})

	got, err := r.RolesFor(context.Background(), domain.ChatUser{Roles: []string{"mod"}})
	require.Error(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.RoleIDMod, got[0].ID)
}

func TestHasAny(t *testing.T) {
	held := []domain.Role{{ID: domain.RoleIDMod, Name: domain.GroupModerators}}

	assert.True(t, HasAny(held, []string{"moderators"}))
	assert.True(t, HasAny(held, []string{"Streamer", "mod"}))
	assert.False(t, HasAny(held, []string{domain.GroupStreamer}))
	assert.False(t, HasAny(nil, []string{domain.GroupStreamer}))
}

func TestMemoryRoles_RemoveMember(t *testing.T) {
	store := NewMemoryRoles()
	store.AddMember(domain.Role{ID: "vip", Name: "VIP"}, "bob")
	store.RemoveMember("vip", "BOB")

	got, err := store.CustomRolesFor(context.Background(), "", "bob")
	require.NoError(t, err)
	assert.Empty(t, got)
}
