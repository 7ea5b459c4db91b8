package match

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

type room struct {
	id, name, alias, topic string
}

func roomFields(r room) []string { return []string{r.name, r.alias, r.topic, r.id} }

func TestSubstringMatchesAnyField(t *testing.T) {
	pred := Substring(roomFields)

	testcases := map[string]struct {
		r     room
		query string
		want  bool
	}{
		"name":            {room{id: "!a:hs", name: "Gamma"}, "amm", true},
		"case":            {room{id: "!a:hs", name: "Gamma"}, "GAM", true},
		"alias":           {room{id: "!a:hs", alias: "#dev:hs"}, "dev", true},
		"topic":           {room{id: "!a:hs", topic: "weekly chat"}, "chat", true},
		"id":              {room{id: "!xyz:hs"}, "xyz", true},
		"accent":          {room{id: "!a:hs", name: "Café"}, "cafe", true},
		"dot is literal":  {room{id: "!a:hs", name: "a.b"}, ".", true},
		"no wildcard":     {room{id: "!a:hs", name: "ab"}, "a.b", false},
		"plus is literal": {room{id: "!a:hs", name: "c++ chat"}, "C++", true},
		"no hit":          {room{id: "!a:hs", name: "Beta"}, "zz", false},
		"empty fields ok": {room{}, "x", false},
	}

	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, pred(tc.r, tc.query))
		})
	}
}

func TestPredicatesFollowQueryChanges(t *testing.T) {
	rooms := []room{{id: "!1", name: "Alpha"}, {id: "!2", name: "Beta"}, {id: "!3", name: "Gamma"}}
	sub := Substring(roomFields)
	pre := Prefix(func(r room) string { return r.name })

	for _, q := range []struct {
		query       string
		sub, prefix int
	}{
		{"a", 3, 1},
		{"MM", 1, 0},
		{"b", 1, 1},
		{"a", 3, 1},
		{"ÉT", 1, 0},
	} {
		assert.Len(t, Filter(rooms, q.query, sub), q.sub, "substring %q", q.query)
		assert.Len(t, Filter(rooms, q.query, pre), q.prefix, "prefix %q", q.query)
	}
}

func TestPrefixIsStricterThanSubstring(t *testing.T) {
	pred := Prefix(func(s string) string { return s })

	assert.True(t, pred("Bobby", "bob"))
	assert.True(t, pred("Élodie", "elo"))
	assert.False(t, pred("Jimbob", "bob"))
	assert.True(t, Substring(func(s string) []string { return []string{s} })("Jimbob", "bob"))
}

func TestLocalePrefix(t *testing.T) {
	fields := func(s string) []string { return []string{s} }

	assert.True(t, LocalePrefix(language.English, fields)("@alice:example.org", "@AL"))
	assert.False(t, LocalePrefix(language.English, fields)("@alice:example.org", "lice"))

	// Turkish dotted capital I lowercases to a plain i
	assert.True(t, LocalePrefix(language.Turkish, fields)("İstanbul", "ist"))
}

func TestFilterKeepsOrder(t *testing.T) {
	items := []string{"Gamma", "Alpha", "Beta", "Delta"}
	pred := Substring(func(s string) []string { return []string{s} })

	got := Filter(items, "ta", pred)
	if diff := cmp.Diff([]string{"Beta", "Delta"}, got); diff != "" {
		t.Fatalf("unexpected filter result (-want +got):\n%s", diff)
	}

	all := Filter(items, "  ", pred)
	if diff := cmp.Diff(items, all); diff != "" {
		t.Fatalf("blank query should keep everything (-want +got):\n%s", diff)
	}
	all[0] = "changed"
	assert.Equal(t, "Gamma", items[0], "Filter must not alias its input")
}
