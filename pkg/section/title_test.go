package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitlePolicyFormat(t *testing.T) {
	testcases := map[string]struct {
		policy TitlePolicy
		state  titleState
		want   string
	}{
		"default with items":    {DefaultTitle, titleState{title: "Groups", total: 4, nb: 4}, "Groups (4)"},
		"default empty":         {DefaultTitle, titleState{title: "Groups"}, "Groups"},
		"default filtered":      {DefaultTitle, titleState{title: "Groups", total: 4, nb: 1, filtering: true}, "Groups (1)"},
		"capped unfiltered":     {CappedTitle, titleState{title: "Users", total: 5, nb: 5}, "Users"},
		"capped narrowed":       {CappedTitle, titleState{title: "Users", total: 5, nb: 2, filtering: true}, "Users   2"},
		"capped limited":        {CappedTitle, titleState{title: "Users", total: 5, nb: 2, filtering: true, limited: true}, "Users   >2"},
		"capped no match":       {CappedTitle, titleState{title: "Users", total: 5, nb: 0, filtering: true, limited: true}, "Users"},
		"estimated unfiltered":  {EstimatedTitle, titleState{title: "Public Rooms", estimatedTotal: 500}, "Public Rooms   500"},
		"estimated unknown":     {EstimatedTitle, titleState{title: "Public Rooms", total: 3, nb: 3}, "Public Rooms"},
		"estimated more":        {EstimatedTitle, titleState{title: "Public Rooms", nb: 3, filtering: true, hasMoreResults: true, estimatedTotal: 500}, "Public Rooms   3"},
		"estimated final":       {EstimatedTitle, titleState{title: "Public Rooms", nb: 3, filtering: true, estimatedTotal: 500}, "Public Rooms   >3"},
		"estimated no match":    {EstimatedTitle, titleState{title: "Public Rooms", filtering: true, estimatedTotal: 500}, "Public Rooms"},
		"unknown policy":        {TitlePolicy(42), titleState{title: "X", nb: 1}, "X (1)"},
	}

	for name, tc := range testcases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.policy.format(tc.state))
		})
	}
}

func TestParsePolicy(t *testing.T) {
	for _, p := range []TitlePolicy{DefaultTitle, CappedTitle, EstimatedTitle} {
		got, err := ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	got, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTitle, got)

	got, err = ParsePolicy(" Capped ")
	require.NoError(t, err)
	assert.Equal(t, CappedTitle, got)

	_, err = ParsePolicy("fancy")
	assert.Error(t, err)
}

func TestSettersRecomputeTitle(t *testing.T) {
	s := New("Contacts", byName, prefix, []string{"Bob", "Bobby", "Carl"}, WithPolicy(CappedTitle))
	s.Filter("bob")
	assert.Equal(t, "Contacts   2", s.Title())

	s.SetLimited(true)
	assert.Equal(t, "Contacts   >2", s.Title())

	p := New[string]("Public Rooms", nil, contains, nil, WithPolicy(EstimatedTitle))
	assert.Equal(t, "Public Rooms", p.Title())
	p.SetEstimatedTotal(12)
	assert.Equal(t, "Public Rooms   12", p.Title())
}
