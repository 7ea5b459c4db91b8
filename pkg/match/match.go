// Package match holds the per-family predicates that decide whether a single
// item matches a search query.
package match

import (
	"strings"

	"github.com/byxorna/sieve/pkg/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Predicate reports whether item matches query. The query handed to a
// predicate is already trimmed and never empty.
type Predicate[T any] func(item T, query string) bool

// Substring matches when the query appears anywhere, ignoring case and
// accents, in any one of the fields returned for the item. Rooms, groups and
// public rooms use this. The folded query is kept between calls, so a
// predicate must not be shared across goroutines.
func Substring[T any](fields func(T) []string) Predicate[T] {
	q := foldedQuery{}
	return func(item T, query string) bool {
		needle := q.fold(query)
		for _, f := range fields(item) {
			if f != "" && strings.Contains(text.Fold(f), needle) {
				return true
			}
		}
		return false
	}
}

// Prefix matches when the item's display representation starts with the
// query, ignoring case and accents. Contacts use this.
func Prefix[T any](field func(T) string) Predicate[T] {
	q := foldedQuery{}
	return func(item T, query string) bool {
		return strings.HasPrefix(text.Fold(field(item)), q.fold(query))
	}
}

// foldedQuery remembers the last query a predicate saw and its folded form,
// since Filter hands the same query to every item.
type foldedQuery struct {
	raw, folded string
	set         bool
}

func (q *foldedQuery) fold(query string) string {
	if !q.set || q.raw != query {
		q.raw, q.folded, q.set = query, text.Fold(query), true
	}
	return q.folded
}

// LocalePrefix matches when any of the item's fields starts with the query
// after lowercasing both with the casing rules of tag. User ids, member names
// and commands use this.
func LocalePrefix[T any](tag language.Tag, fields func(T) []string) Predicate[T] {
	return func(item T, query string) bool {
		lower := cases.Lower(tag)
		q := lower.String(strings.TrimSpace(query))
		for _, f := range fields(item) {
			if f != "" && strings.HasPrefix(lower.String(f), q) {
				return true
			}
		}
		return false
	}
}

// Filter returns the items matching query in the order they were given. An empty
// query, or a nil predicate, matches everything.
func Filter[T any](items []T, query string, pred Predicate[T]) []T {
	query = strings.TrimSpace(query)
	out := make([]T, 0, len(items))
	if query == "" || pred == nil {
		return append(out, items...)
	}
	for _, it := range items {
		if pred(it, query) {
			out = append(out, it)
		}
	}
	return out
}
