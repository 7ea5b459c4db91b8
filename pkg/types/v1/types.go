package v1

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator"
)

// Family names one kind of list item. Each family is stored in its own file
// and matched with its own rules.
type Family string

const (
	FamilyContacts     Family = "contacts"
	FamilyRooms        Family = "rooms"
	FamilyGroups       Family = "groups"
	FamilyGroupMembers Family = "group_members"
	FamilyGroupRooms   Family = "group_rooms"
	FamilyPublicRooms  Family = "public_rooms"
)

var Families = []Family{
	FamilyContacts,
	FamilyRooms,
	FamilyGroups,
	FamilyGroupMembers,
	FamilyGroupRooms,
	FamilyPublicRooms,
}

func (f Family) Valid() bool {
	for _, x := range Families {
		if f == x {
			return true
		}
	}
	return false
}

// Membership of the local user in a room or group.
type Membership string

const (
	MembershipJoin   Membership = "join"
	MembershipInvite Membership = "invite"
)

// Item is what every family exposes for rendering. The filtering engine never
// looks at these; they are for the list and detail views.
type Item interface {
	Identifier() string
	Family() Family
	Title() string
	Summary() string // "1,204 members", or secondary context
	AsMarkdown() string
	Icon() string
}

// Meta is what the server told us about a listing beyond the items
// themselves.
type Meta struct {
	// Limited is set when the server returned fewer results than exist.
	Limited bool `yaml:"limited,omitempty" validate:""`
	// HasMoreResults is set when another page could be requested.
	HasMoreResults bool `yaml:"hasMoreResults,omitempty" validate:""`
	// EstimatedTotal is the server's estimate of the full result count.
	EstimatedTotal int `yaml:"estimatedTotal,omitempty" validate:"gte=0"`
}

// Listing is the on-disk shape of one family's file.
type Listing[T any] struct {
	Meta  Meta `yaml:"meta" validate:""`
	Items []T  `yaml:"items" validate:"dive,required"`
}

var validate = validator.New()

func (l *Listing[T]) Validate() error {
	return validate.Struct(l)
}

// byFold compares two strings case-insensitively, falling back to a byte
// comparison so the order is total.
func byFold(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%s %ss", humanize.Comma(int64(n)), word)
}
