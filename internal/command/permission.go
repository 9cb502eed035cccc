package command

import (
	"strings"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
)

// permissionTier maps restriction keywords onto the groups they admit.
// A nil group list admits everyone.
type permissionTier struct {
	names  []string
	groups []string
}

var permissionTiers = []permissionTier{
	{names: []string{"all", "everyone"}},
	{names: []string{"sub"}, groups: []string{
		domain.GroupSubscribers, domain.GroupModerators, domain.GroupChannelEditors, domain.GroupStreamer,
	}},
	{names: []string{"mod"}, groups: []string{
		domain.GroupModerators, domain.GroupChannelEditors, domain.GroupStreamer,
	}},
	{names: []string{"streamer"}, groups: []string{domain.GroupStreamer}},
}

// MapPermission turns a free-form restriction argument into a Permission.
// Keywords are matched case-insensitively; any other text names a single
// custom group. Empty input fails with domain.ErrInvalidPermission, which is
// never the same as unrestricted.
func MapPermission(arg string) (domain.Permission, error) {
	trimmed := strings.TrimSpace(arg)
	if trimmed == "" {
		return domain.Permission{}, domain.ErrInvalidPermission
	}

	normalized := strings.ToLower(trimmed)
	for _, tier := range permissionTiers {
		for _, name := range tier.names {
			if name != normalized {
				continue
			}
			if tier.groups == nil {
				return domain.Unrestricted(), nil
			}
			return domain.Permission{
				Type:   domain.PermissionGroup,
				Groups: append([]string(nil), tier.groups...),
			}, nil
		}
	}

	return domain.Permission{Type: domain.PermissionGroup, Groups: []string{trimmed}}, nil
}
