package section

import (
	"fmt"
	"strings"
)

// TitlePolicy selects how a section header communicates its result count.
type TitlePolicy int

const (
	// DefaultTitle shows an exact local count: "Rooms (3)".
	DefaultTitle TitlePolicy = iota
	// CappedTitle shows the filtered count only while filtering narrowed the
	// list, prefixed with ">" when the server said it truncated the results.
	CappedTitle
	// EstimatedTitle shows a server-reported total while unfiltered.
	EstimatedTitle
)

const countSeparator = "   "

var policyNames = map[TitlePolicy]string{
	DefaultTitle:   "default",
	CappedTitle:    "capped",
	EstimatedTitle: "estimated",
}

func (p TitlePolicy) String() string {
	if n, ok := policyNames[p]; ok {
		return n
	}
	return fmt.Sprintf("TitlePolicy(%d)", int(p))
}

// ParsePolicy maps a configuration name to a TitlePolicy. The empty string is
// DefaultTitle.
func ParsePolicy(name string) (TitlePolicy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultTitle, nil
	}
	for p, n := range policyNames {
		if n == name {
			return p, nil
		}
	}
	return DefaultTitle, fmt.Errorf("unknown title policy %q", name)
}

// titleState is everything a policy may read to format a header.
type titleState struct {
	title          string
	total          int // len(items)
	nb             int // len(filteredItems)
	filtering      bool
	limited        bool
	hasMoreResults bool
	estimatedTotal int
}

func (p TitlePolicy) format(s titleState) string {
	switch p {
	case CappedTitle:
		if s.total != s.nb && s.nb > 0 {
			if s.limited {
				return fmt.Sprintf("%s%s>%d", s.title, countSeparator, s.nb)
			}
			return fmt.Sprintf("%s%s%d", s.title, countSeparator, s.nb)
		}
		return s.title

	case EstimatedTitle:
		switch {
		case !s.filtering && s.estimatedTotal > 0:
			return fmt.Sprintf("%s%s%d", s.title, countSeparator, s.estimatedTotal)
		case s.filtering && s.nb > 0:
			if s.hasMoreResults {
				return fmt.Sprintf("%s%s%d", s.title, countSeparator, s.nb)
			}
			return fmt.Sprintf("%s%s>%d", s.title, countSeparator, s.nb)
		}
		return s.title

	default:
		if s.nb > 0 {
			return fmt.Sprintf("%s (%d)", s.title, s.nb)
		}
		return s.title
	}
}
