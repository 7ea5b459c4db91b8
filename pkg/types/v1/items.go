package v1

import (
	"fmt"
	"strings"
	"time"

	"github.com/byxorna/sieve/pkg/text"
)

type Contact struct {
	ID          string     `yaml:"id" validate:"required"`
	DisplayName string     `yaml:"displayName" validate:""`
	Emails      []string   `yaml:"emails,omitempty,flow" validate:"dive,email"`
	LastActive  *time.Time `yaml:"lastActive,omitempty" validate:""`
}

// Name is what a contact is listed and matched by.
func (c *Contact) Name() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.ID
}

func (c *Contact) Identifier() string { return c.ID }
func (c *Contact) Family() Family     { return FamilyContacts }
func (c *Contact) Title() string      { return c.Name() }
func (c *Contact) Icon() string       { return text.EmojiContact }

func (c *Contact) Summary() string {
	parts := []string{c.ID}
	if c.LastActive != nil {
		parts = append(parts, "active "+text.RelativeTime(*c.LastActive))
	}
	return strings.Join(parts, " · ")
}

func (c *Contact) AsMarkdown() string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "# %s\n\n`%s`\n", c.Name(), c.ID)
	for _, e := range c.Emails {
		fmt.Fprintf(&b, "\n* <%s>", e)
	}
	return b.String()
}

func CompareContacts(a, b *Contact) int { return byFold(a.Name(), b.Name()) }

type Room struct {
	ID           string     `yaml:"id" validate:"required"`
	Name         string     `yaml:"name,omitempty" validate:""`
	Alias        string     `yaml:"alias,omitempty" validate:""`
	Topic        string     `yaml:"topic,omitempty" validate:""`
	Membership   Membership `yaml:"membership,omitempty" validate:"omitempty,oneof=join invite"`
	Members      int        `yaml:"members,omitempty" validate:"gte=0"`
	LastActivity *time.Time `yaml:"lastActivity,omitempty" validate:""`
}

// DisplayName falls back from the name to the alias to the id.
func (r *Room) DisplayName() string {
	switch {
	case r.Name != "":
		return r.Name
	case r.Alias != "":
		return r.Alias
	}
	return r.ID
}

func (r *Room) Identifier() string { return r.ID }
func (r *Room) Family() Family     { return FamilyRooms }
func (r *Room) Title() string      { return r.DisplayName() }
func (r *Room) MatchFields() []string {
	return []string{r.Name, r.Alias, r.Topic, r.ID}
}

func (r *Room) Icon() string {
	if r.Membership == MembershipInvite {
		return text.EmojiInvite
	}
	return text.EmojiRoom
}

func (r *Room) Summary() string {
	parts := []string{plural(r.Members, "member")}
	if r.LastActivity != nil {
		parts = append(parts, text.RelativeTime(*r.LastActivity))
	}
	return strings.Join(parts, " · ")
}

func (r *Room) AsMarkdown() string {
	return roomMarkdown(r.DisplayName(), r.ID, r.Alias, r.Topic, r.Members)
}

// CompareRooms puts the most recently active rooms first.
func CompareRooms(a, b *Room) int {
	switch {
	case a.LastActivity != nil && b.LastActivity != nil && !a.LastActivity.Equal(*b.LastActivity):
		if a.LastActivity.After(*b.LastActivity) {
			return -1
		}
		return 1
	case a.LastActivity != nil && b.LastActivity == nil:
		return -1
	case a.LastActivity == nil && b.LastActivity != nil:
		return 1
	}
	return byFold(a.DisplayName(), b.DisplayName())
}

type Group struct {
	ID               string     `yaml:"id" validate:"required"`
	Name             string     `yaml:"name,omitempty" validate:""`
	ShortDescription string     `yaml:"shortDescription,omitempty" validate:""`
	Membership       Membership `yaml:"membership,omitempty" validate:"omitempty,oneof=join invite"`
	Members          int        `yaml:"members,omitempty" validate:"gte=0"`
}

func (g *Group) DisplayName() string {
	if g.Name != "" {
		return g.Name
	}
	return g.ID
}

func (g *Group) Identifier() string    { return g.ID }
func (g *Group) Family() Family        { return FamilyGroups }
func (g *Group) Title() string         { return g.DisplayName() }
func (g *Group) Summary() string       { return plural(g.Members, "member") }
func (g *Group) MatchFields() []string { return []string{g.Name, g.ID} }

func (g *Group) Icon() string {
	if g.Membership == MembershipInvite {
		return text.EmojiInvite
	}
	return text.EmojiGroup
}

func (g *Group) AsMarkdown() string {
	return fmt.Sprintf("# %s\n\n`%s`\n\n%s\n", g.DisplayName(), g.ID, g.ShortDescription)
}

func CompareGroups(a, b *Group) int { return byFold(a.DisplayName(), b.DisplayName()) }

type Presence string

const (
	PresenceOnline      Presence = "online"
	PresenceOffline     Presence = "offline"
	PresenceUnavailable Presence = "unavailable"
)

type GroupMember struct {
	UserID      string   `yaml:"userId" validate:"required"`
	DisplayName string   `yaml:"displayName,omitempty" validate:""`
	Presence    Presence `yaml:"presence,omitempty" validate:"omitempty,oneof=online offline unavailable"`
	Privileged  bool     `yaml:"privileged,omitempty" validate:""`
}

func (m *GroupMember) Name() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.UserID
}

func (m *GroupMember) Identifier() string    { return m.UserID }
func (m *GroupMember) Family() Family        { return FamilyGroupMembers }
func (m *GroupMember) Title() string         { return m.Name() }
func (m *GroupMember) Icon() string          { return text.EmojiMember }
func (m *GroupMember) MatchFields() []string { return []string{m.DisplayName, m.UserID} }

func (m *GroupMember) Summary() string {
	if m.Presence == "" {
		return m.UserID
	}
	return m.UserID + " · " + string(m.Presence)
}

func (m *GroupMember) AsMarkdown() string {
	role := "member"
	if m.Privileged {
		role = "admin"
	}
	return fmt.Sprintf("# %s\n\n`%s` (%s)\n", m.Name(), m.UserID, role)
}

// CompareGroupMembers lists admins first, then by name.
func CompareGroupMembers(a, b *GroupMember) int {
	if a.Privileged != b.Privileged {
		if a.Privileged {
			return -1
		}
		return 1
	}
	return byFold(a.Name(), b.Name())
}

type GroupRoom struct {
	RoomID  string `yaml:"roomId" validate:"required"`
	Name    string `yaml:"name,omitempty" validate:""`
	Alias   string `yaml:"alias,omitempty" validate:""`
	Topic   string `yaml:"topic,omitempty" validate:""`
	Members int    `yaml:"members,omitempty" validate:"gte=0"`
}

func (r *GroupRoom) DisplayName() string {
	switch {
	case r.Name != "":
		return r.Name
	case r.Alias != "":
		return r.Alias
	}
	return r.RoomID
}

func (r *GroupRoom) Identifier() string    { return r.RoomID }
func (r *GroupRoom) Family() Family        { return FamilyGroupRooms }
func (r *GroupRoom) Title() string         { return r.DisplayName() }
func (r *GroupRoom) Summary() string       { return plural(r.Members, "member") }
func (r *GroupRoom) Icon() string          { return text.EmojiRoom }
func (r *GroupRoom) MatchFields() []string { return []string{r.Name, r.Alias, r.Topic, r.RoomID} }
func (r *GroupRoom) AsMarkdown() string {
	return roomMarkdown(r.DisplayName(), r.RoomID, r.Alias, r.Topic, r.Members)
}

func CompareGroupRooms(a, b *GroupRoom) int { return byFold(a.DisplayName(), b.DisplayName()) }

type PublicRoom struct {
	RoomID        string `yaml:"roomId" validate:"required"`
	Name          string `yaml:"name,omitempty" validate:""`
	Alias         string `yaml:"alias,omitempty" validate:""`
	Topic         string `yaml:"topic,omitempty" validate:""`
	Members       int    `yaml:"members,omitempty" validate:"gte=0"`
	WorldReadable bool   `yaml:"worldReadable,omitempty" validate:""`
}

func (r *PublicRoom) DisplayName() string {
	switch {
	case r.Name != "":
		return r.Name
	case r.Alias != "":
		return r.Alias
	}
	return r.RoomID
}

func (r *PublicRoom) Identifier() string    { return r.RoomID }
func (r *PublicRoom) Family() Family        { return FamilyPublicRooms }
func (r *PublicRoom) Title() string         { return r.DisplayName() }
func (r *PublicRoom) Icon() string          { return text.EmojiPublicRoom }
func (r *PublicRoom) MatchFields() []string { return []string{r.Name, r.Alias, r.Topic, r.RoomID} }

func (r *PublicRoom) Summary() string {
	s := plural(r.Members, "member")
	if r.WorldReadable {
		s += " · world readable"
	}
	return s
}

func (r *PublicRoom) AsMarkdown() string {
	return roomMarkdown(r.DisplayName(), r.RoomID, r.Alias, r.Topic, r.Members)
}

// ComparePublicRooms puts the busiest rooms first, as the directory does.
func ComparePublicRooms(a, b *PublicRoom) int {
	if a.Members != b.Members {
		return b.Members - a.Members
	}
	return byFold(a.DisplayName(), b.DisplayName())
}

func roomMarkdown(name, id, alias, topic string, members int) string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "# %s\n\n", name)
	if alias != "" {
		fmt.Fprintf(&b, "`%s` ", alias)
	}
	fmt.Fprintf(&b, "`%s`\n\n%s\n", id, plural(members, "member"))
	if topic != "" {
		fmt.Fprintf(&b, "\n> %s\n", topic)
	}
	return b.String()
}
