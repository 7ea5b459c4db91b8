// Package section composes one scrollable list out of independently titled,
// filtered and hideable groups of items.
//
// A Section owns one item family's backing list and the subset of it matching
// the current query. A Controller holds many sections of different item types
// and flattens them into a position-indexed list of header and item entries.
//
// Nothing in this package locks. Callers serialize every mutation onto one
// goroutine, typically the UI event loop.
package section

import (
	"slices"
	"strings"

	"github.com/byxorna/sieve/pkg/match"
)

// ViewKind is an opaque identifier a renderer uses to pick a template for a
// header or item row.
type ViewKind string

const (
	HeaderView ViewKind = "header"
	ItemView   ViewKind = "item"
)

// Group is the type-erased view of a Section the Controller works with.
type Group interface {
	BaseTitle() string
	Title() string
	NbItems() int
	EmptyViewPlaceholder() string
	HideWhenEmpty() bool
	HeaderKind() ViewKind
	ItemKind() ViewKind
	Policy() TitlePolicy

	// Filter installs the subset of items matching query. An empty query
	// resets the filter.
	Filter(query string)
	ResetFilter()

	appendEntries(dst []Entry) []Entry
}

// Option configures a Section at construction.
type Option func(*options)

type options struct {
	emptyPlaceholder    string
	noResultPlaceholder string
	hideWhenEmpty       bool
	headerKind          ViewKind
	itemKind            ViewKind
	policy              TitlePolicy
}

// WithPlaceholders sets the text shown when the section has no items at all
// and when a query leaves it with no matches. The two may be identical.
func WithPlaceholders(empty, noResult string) Option {
	return func(o *options) {
		o.emptyPlaceholder = empty
		o.noResultPlaceholder = noResult
	}
}

// WithHideWhenEmpty drops the whole section, header included, from the flat
// list whenever it has no filtered items.
func WithHideWhenEmpty() Option {
	return func(o *options) { o.hideWhenEmpty = true }
}

func WithViewKinds(header, item ViewKind) Option {
	return func(o *options) {
		o.headerKind = header
		o.itemKind = item
	}
}

func WithPolicy(p TitlePolicy) Option {
	return func(o *options) { o.policy = p }
}

// Section holds one family's full and filtered item lists plus the metadata
// needed to render its header.
type Section[T any] struct {
	options

	title      string
	comparator func(a, b T) int
	predicate  match.Predicate[T]

	items         []T
	filteredItems []T
	query         string

	limited        bool
	hasMoreResults bool
	estimatedTotal int

	formattedTitle string
}

// New creates a section titled title. cmp and pred may be nil: without a
// comparator items keep the order they are given in, without a predicate a
// query never narrows the section.
func New[T any](title string, cmp func(a, b T) int, pred match.Predicate[T], items []T, opts ...Option) *Section[T] {
	s := &Section[T]{
		options: options{
			headerKind: HeaderView,
			itemKind:   ItemView,
		},
		title:      title,
		comparator: cmp,
		predicate:  pred,
	}
	for _, o := range opts {
		o(&s.options)
	}
	s.items = s.sorted(items)
	s.filteredItems = slices.Clone(s.items)
	if s.filteredItems == nil {
		s.filteredItems = []T{}
	}
	s.updateTitle()
	return s
}

func (s *Section[T]) sorted(items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	if s.comparator != nil {
		slices.SortStableFunc(out, s.comparator)
	}
	return out
}

// SetItems replaces the backing list, sorting it with the section's
// comparator, and installs the new items as the filtered view for query.
// Callers whose family filters externally pass items already filtered
// against query; otherwise pass the full set with an empty query, or follow
// with Filter. A nil slice leaves the section unchanged; pass an empty slice
// to clear it.
func (s *Section[T]) SetItems(items []T, query string) {
	if items == nil {
		return
	}
	s.items = s.sorted(items)
	s.SetFilteredItems(s.items, query)
}

// Reload replaces the backing list and re-applies the active query with the
// section's own predicate.
func (s *Section[T]) Reload(items []T) {
	if items == nil {
		return
	}
	s.items = s.sorted(items)
	s.Filter(s.query)
}

// SetFilteredItems replaces only the filtered view.
func (s *Section[T]) SetFilteredItems(filtered []T, query string) {
	s.filteredItems = make([]T, len(filtered))
	copy(s.filteredItems, filtered)
	s.query = strings.TrimSpace(query)
	s.updateTitle()
}

// ResetFilter shows every item again and clears the query.
func (s *Section[T]) ResetFilter() {
	s.SetFilteredItems(s.items, "")
}

// Filter narrows the section to the items matching query using the section's
// predicate.
func (s *Section[T]) Filter(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		s.ResetFilter()
		return
	}
	s.SetFilteredItems(match.Filter(s.items, query, s.predicate), query)
}

// SetLimited records whether the server returned fewer results than exist.
func (s *Section[T]) SetLimited(limited bool) {
	s.limited = limited
	s.updateTitle()
}

// SetHasMoreResults records whether more results can be fetched.
func (s *Section[T]) SetHasMoreResults(more bool) {
	s.hasMoreResults = more
	s.updateTitle()
}

// SetEstimatedTotal records a server-reported total used while unfiltered.
func (s *Section[T]) SetEstimatedTotal(n int) {
	s.estimatedTotal = n
	s.updateTitle()
}

func (s *Section[T]) updateTitle() {
	s.formattedTitle = s.policy.format(titleState{
		title:          s.title,
		total:          len(s.items),
		nb:             len(s.filteredItems),
		filtering:      s.query != "",
		limited:        s.limited,
		hasMoreResults: s.hasMoreResults,
		estimatedTotal: s.estimatedTotal,
	})
}

func (s *Section[T]) BaseTitle() string     { return s.title }
func (s *Section[T]) Title() string         { return s.formattedTitle }
func (s *Section[T]) NbItems() int          { return len(s.filteredItems) }
func (s *Section[T]) Query() string         { return s.query }
func (s *Section[T]) HideWhenEmpty() bool   { return s.hideWhenEmpty }
func (s *Section[T]) HeaderKind() ViewKind  { return s.headerKind }
func (s *Section[T]) ItemKind() ViewKind    { return s.itemKind }
func (s *Section[T]) Policy() TitlePolicy   { return s.policy }
func (s *Section[T]) Items() []T            { return slices.Clone(s.items) }
func (s *Section[T]) FilteredItems() []T    { return slices.Clone(s.filteredItems) }
func (s *Section[T]) Limited() bool         { return s.limited }
func (s *Section[T]) HasMoreResults() bool  { return s.hasMoreResults }
func (s *Section[T]) EstimatedTotal() int   { return s.estimatedTotal }
func (s *Section[T]) IsEmpty() bool         { return len(s.items) == 0 }
func (s *Section[T]) visible() bool         { return !s.hideWhenEmpty || len(s.filteredItems) > 0 }
func (s *Section[T]) filtering() bool       { return s.query != "" }

// EmptyViewPlaceholder returns the no-result placeholder while a query is
// active and the empty placeholder otherwise.
func (s *Section[T]) EmptyViewPlaceholder() string {
	if s.filtering() {
		return s.noResultPlaceholder
	}
	return s.emptyPlaceholder
}

func (s *Section[T]) appendEntries(dst []Entry) []Entry {
	if !s.visible() {
		return dst
	}
	dst = append(dst, Entry{Kind: HeaderEntry, Section: s})
	for i, it := range s.filteredItems {
		dst = append(dst, Entry{Kind: ItemEntry, Section: s, Item: it, Index: i})
	}
	return dst
}
