package domain

import (
	"regexp"
	"strings"
	"time"
)

// CommandPrefix marks a trigger that must start the message.
// Triggers without it are matched anywhere in the message.
const CommandPrefix = "!"

// PermissionType identifies the shape of a command restriction
type PermissionType string

const (
	PermissionNone   PermissionType = "none"
	PermissionGroup  PermissionType = "group"
	PermissionViewer PermissionType = "viewer"
)

// Permission restricts who can run a command. Exactly one shape is populated
// according to Type.
type Permission struct {
	Type     PermissionType `json:"type"`
	Groups   []string       `json:"groups,omitempty"`
	Username string         `json:"username,omitempty"`
}

// Unrestricted returns the permission that lets everyone run the command
func Unrestricted() Permission {
	return Permission{Type: PermissionNone}
}

// IsUnrestricted reports whether the permission skips role gating
func (p Permission) IsUnrestricted() bool {
	return p.Type == "" || p.Type == PermissionNone || (p.Type == PermissionGroup && p.Groups == nil)
}

// Cooldown holds per-user and global cooldown windows in seconds
type Cooldown struct {
	User   int `json:"user"`
	Global int `json:"global"`
}

// IsZero reports whether neither window is set
func (c Cooldown) IsZero() bool {
	return c.User <= 0 && c.Global <= 0
}

// UserDuration returns the per-user window
func (c Cooldown) UserDuration() time.Duration {
	return time.Duration(c.User) * time.Second
}

// GlobalDuration returns the global window
func (c Cooldown) GlobalDuration() time.Duration {
	return time.Duration(c.Global) * time.Second
}

// SubCommand is a secondary dispatch key under a trigger
type SubCommand struct {
	ID          string `json:"id,omitempty"`
	Arg         string `json:"arg"`
	Regex       bool   `json:"regex,omitempty"`
	Usage       string `json:"usage,omitempty"`
	Description string `json:"description,omitempty"`
}

// Matches reports whether the argument selects this subcommand.
// Patterns must match the whole argument.
func (s SubCommand) Matches(arg string) bool {
	if !s.Regex {
		return strings.EqualFold(s.Arg, arg)
	}
	re, err := regexp.Compile("^(?:" + s.Arg + ")$")
	if err != nil {
		return false
	}
	return re.MatchString(arg)
}

// EffectType identifies what an effect does
type EffectType string

// EffectTypeChat sends a chat reply
const EffectTypeChat EffectType = "chat"

// Effect is one side-effect action attached to a command
type Effect struct {
	ID      string     `json:"id,omitempty"`
	Type    EffectType `json:"type"`
	Message string     `json:"message,omitempty"`
}

// CommandDefinition describes a chat command and how it is gated
type CommandDefinition struct {
	ID               string       `json:"id"`
	Trigger          string       `json:"trigger"`
	Description      string       `json:"description,omitempty"`
	Active           bool         `json:"active"`
	ScanWholeMessage bool         `json:"scan_whole_message"`
	Cooldown         Cooldown     `json:"cooldown"`
	Permission       Permission   `json:"permission"`
	SubCommands      []SubCommand `json:"sub_commands,omitempty"`
	Effects          []Effect     `json:"effects,omitempty"`
	CreatedBy        string       `json:"created_by,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// ChatEffectCount returns how many chat reply effects the command carries
func (c *CommandDefinition) ChatEffectCount() int {
	n := 0
	for _, e := range c.Effects {
		if e.Type == EffectTypeChat {
			n++
		}
	}
	return n
}

// Clone returns a deep copy safe to mutate
func (c CommandDefinition) Clone() CommandDefinition {
	out := c
	if c.Permission.Groups != nil {
		out.Permission.Groups = append([]string(nil), c.Permission.Groups...)
	}
	if c.SubCommands != nil {
		out.SubCommands = make([]SubCommand, len(c.SubCommands))
		for i, sc := range c.SubCommands {
			out.SubCommands[i] = SubCommand{
				ID:          sc.ID,
				Arg:         sc.Arg,
				Regex:       sc.Regex,
				Usage:       sc.Usage,
				Description: sc.Description,
			}
		}
	}
	if c.Effects != nil {
		out.Effects = append([]Effect(nil), c.Effects...)
	}
	return out
}

// ParsedInvocation is the trigger and trailing data split out of a chat message
type ParsedInvocation struct {
	Trigger       string `json:"trigger"`
	RemainingData string `json:"remaining_data"`
}
