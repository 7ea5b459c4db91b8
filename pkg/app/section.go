package app

import (
	"fmt"
	"log"

	"github.com/byxorna/sieve/pkg/config"
	"github.com/byxorna/sieve/pkg/db"
	"github.com/byxorna/sieve/pkg/match"
	"github.com/byxorna/sieve/pkg/section"
	"github.com/byxorna/sieve/pkg/types/v1"
	"golang.org/x/text/language"
)

// binding ties a configured section to the family listing that feeds it.
type binding struct {
	config.Section
	group  section.Group
	reload func(db.Store) error
}

func newBinding(cs config.Section, tag language.Tag) (*binding, error) {
	policy, err := section.ParsePolicy(cs.Policy)
	if err != nil {
		return nil, fmt.Errorf("section %s: %w", cs.Name, err)
	}

	opts := []section.Option{
		section.WithPolicy(policy),
		section.WithPlaceholders(cs.EmptyPlaceholder, cs.NoResultPlaceholder),
		section.WithViewKinds(section.HeaderView, section.ViewKind(cs.Family)),
	}
	if cs.HideWhenEmpty {
		opts = append(opts, section.WithHideWhenEmpty())
	}

	b := &binding{Section: cs}
	switch cs.Family {
	case v1.FamilyContacts:
		s := section.New(cs.Name, v1.CompareContacts, match.Prefix((*v1.Contact).Name), nil, opts...)
		b.group, b.reload = s, reloader(cs, s, nil)

	case v1.FamilyRooms:
		s := section.New(cs.Name, v1.CompareRooms, match.Substring((*v1.Room).MatchFields), nil, opts...)
		b.group, b.reload = s, reloader(cs, s, func(r *v1.Room) bool {
			return hasMembership(cs.Membership, r.Membership)
		})

	case v1.FamilyGroups:
		s := section.New(cs.Name, v1.CompareGroups, match.Substring((*v1.Group).MatchFields), nil, opts...)
		b.group, b.reload = s, reloader(cs, s, func(g *v1.Group) bool {
			return hasMembership(cs.Membership, g.Membership)
		})

	case v1.FamilyGroupMembers:
		s := section.New(cs.Name, v1.CompareGroupMembers, match.LocalePrefix(tag, (*v1.GroupMember).MatchFields), nil, opts...)
		b.group, b.reload = s, reloader(cs, s, nil)

	case v1.FamilyGroupRooms:
		s := section.New(cs.Name, v1.CompareGroupRooms, match.Substring((*v1.GroupRoom).MatchFields), nil, opts...)
		b.group, b.reload = s, reloader(cs, s, nil)

	case v1.FamilyPublicRooms:
		s := section.New(cs.Name, v1.ComparePublicRooms, match.Substring((*v1.PublicRoom).MatchFields), nil, opts...)
		b.group, b.reload = s, reloader(cs, s, nil)

	default:
		return nil, fmt.Errorf("section %s: %w: %s", cs.Name, db.ErrUnknownFamily, cs.Family)
	}

	return b, nil
}

// hasMembership treats rooms and groups without a membership as joined. An
// empty want keeps everything.
func hasMembership(want, got v1.Membership) bool {
	if want == "" {
		return true
	}
	if got == "" {
		got = v1.MembershipJoin
	}
	return want == got
}

// reloader returns a func that loads the section's family listing, keeps the
// items accepted by keep, and installs them under the section's active query.
func reloader[T any](cs config.Section, s *section.Section[T], keep func(T) bool) func(db.Store) error {
	return func(store db.Store) error {
		l, err := db.Load[T](store, cs.Family)
		if err != nil {
			return err
		}

		items := l.Items
		if keep != nil {
			items = make([]T, 0, len(l.Items))
			for _, it := range l.Items {
				if keep(it) {
					items = append(items, it)
				}
			}
		}

		s.SetLimited(l.Meta.Limited)
		s.SetHasMoreResults(l.Meta.HasMoreResults)
		s.SetEstimatedTotal(l.Meta.EstimatedTotal)
		s.Reload(items)
		log.Printf("section %s: loaded %d %s", cs.Name, len(items), cs.Family)
		return nil
	}
}
