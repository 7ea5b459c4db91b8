package config

import (
	"fmt"
	"io"
	"os"

	"github.com/byxorna/sieve/pkg/types/v1"
	"github.com/go-playground/validator"
	"github.com/mitchellh/go-homedir"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	XDGName = "sieve"
)

var (
	// Default is the default configuration that is used, along with ~/.sieve.yaml
	Default = Config{
		Directory: "~/.sieve.d",
		Locale:    "en",
		Sections: []Section{
			{Name: "Invites",
				Family:        v1.FamilyRooms,
				Membership:    v1.MembershipInvite,
				HideWhenEmpty: true},
			{Name: "Rooms",
				Family:              v1.FamilyRooms,
				Membership:          v1.MembershipJoin,
				EmptyPlaceholder:    "No rooms",
				NoResultPlaceholder: "No matching rooms"},
			{Name: "Contacts",
				Family:              v1.FamilyContacts,
				Policy:              "capped",
				EmptyPlaceholder:    "No known contacts",
				NoResultPlaceholder: "No matching contacts"},
			{Name: "Invited groups",
				Family:        v1.FamilyGroups,
				Membership:    v1.MembershipInvite,
				HideWhenEmpty: true},
			{Name: "Joined groups",
				Family:              v1.FamilyGroups,
				Membership:          v1.MembershipJoin,
				EmptyPlaceholder:    "No groups",
				NoResultPlaceholder: "No matching groups"},
			{Name: "Public Rooms",
				Family:              v1.FamilyPublicRooms,
				Policy:              "estimated",
				EmptyPlaceholder:    "No public rooms",
				NoResultPlaceholder: "No matching public rooms"},
		},
	}
)

type Config struct {
	Directory string    `yaml:"directory" validate:"required"`
	Locale    string    `yaml:"locale" validate:"required"`
	Sections  []Section `yaml:"sections" validate:"required,min=1,dive"`
}

// Section describes one titled group of the list: which family it shows and
// how its header counts results.
type Section struct {
	Name                string        `yaml:"name" validate:"required"`
	Family              v1.Family     `yaml:"family" validate:"required,oneof=contacts rooms groups group_members group_rooms public_rooms"`
	Policy              string        `yaml:"policy,omitempty" validate:"omitempty,oneof=default capped estimated"`
	Membership          v1.Membership `yaml:"membership,omitempty" validate:"omitempty,oneof=join invite"`
	HideWhenEmpty       bool          `yaml:"hideWhenEmpty,omitempty" validate:""`
	EmptyPlaceholder    string        `yaml:"emptyPlaceholder,omitempty" validate:""`
	NoResultPlaceholder string        `yaml:"noResultPlaceholder,omitempty" validate:""`
}

func NewFromReader(r io.Reader) (*Config, error) {
	c := Default

	bytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read Config: %w", err)
	}
	err = yaml.Unmarshal(bytes, &c)
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal Config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &c, nil
}

// NewFromFile loads path, falling back to Default when it does not exist.
func NewFromFile(path string) (*Config, error) {
	expandedPath, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(expandedPath)
	if os.IsNotExist(err) {
		c := Default
		return &c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", expandedPath, err)
	}
	defer f.Close()

	return NewFromReader(f)
}

func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}

	seen := map[string]bool{}
	for _, s := range c.Sections {
		if seen[s.Name] {
			return fmt.Errorf("duplicate section %q", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// Language is the parsed Locale, used for locale-aware matching.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und
	}
	return tag
}
