package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignGroup(t *testing.T) {
	groups := DefaultKeywordGroups()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "earlier group wins when several match",
			title: "Black women in aviation heritage",
			want:  "women",
		},
		{
			name:  "matching is case-insensitive",
			title: "TUSKEGEE Airmen ceremony",
			want:  "black",
		},
		{
			name:  "substring match inside a word",
			title: "Pridefest kickoff",
			want:  "lgbtq+",
		},
		{
			name:  "heritage alone falls to diversity",
			title: "Celebrating our heritage",
			want:  "diversity",
		},
		{
			name:  "unthemed title lands in the catch-all",
			title: "Runway resurfacing project",
			want:  NoClearTheme,
		},
		{
			name:  "empty title lands in the catch-all",
			title: "",
			want:  NoClearTheme,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssignGroup(tt.title, groups))
		})
	}
}

func TestMatchingKeywords(t *testing.T) {
	groups := DefaultKeywordGroups()

	matches := MatchingKeywords("MLK Day gospel brunch", "black", groups)
	assert.Equal(t, []string{"mlk", "gospel"}, matches)

	// The catch-all's empty keyword is never reported as a match.
	assert.Empty(t, MatchingKeywords("Runway resurfacing", NoClearTheme, groups))
}

func TestSummarizeGroups(t *testing.T) {
	groups := DefaultKeywordGroups()
	titles := []string{
		"Women's History Month kickoff",
		"Honoring women in service",
		"Juneteenth celebration",
		"Runway resurfacing project",
	}

	summary := SummarizeGroups(titles, groups)
	require.Len(t, summary, 3)

	assert.Equal(t, GroupCount{Group: "women", Count: 2, Share: 0.5}, summary[0])
	assert.Equal(t, "black", summary[1].Group)
	assert.Equal(t, 1, summary[1].Count)

	var total float64
	for _, row := range summary {
		total += row.Share
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestTopKeywordsByGroup(t *testing.T) {
	groups := []KeywordGroup{
		{Name: "women", Keywords: []string{"women", "female", "whm"}},
		{Name: NoClearTheme, Keywords: []string{""}},
	}
	titles := []string{
		"Women of the 8th",
		"Celebrating women aviators",
		"First female crew chief",
	}

	top := TopKeywordsByGroup(titles, groups, 2)
	require.Len(t, top, 2)
	assert.Equal(t, KeywordCount{Group: "women", Keyword: "women", Count: 2}, top[0])
	assert.Equal(t, KeywordCount{Group: "women", Keyword: "female", Count: 1}, top[1])
}

func TestCrossTab(t *testing.T) {
	groups := DefaultKeywordGroups()
	titles := []string{
		"Women's History Month kickoff",
		"Juneteenth celebration",
		"Runway resurfacing project",
	}
	assignments := []int{0, 0, 1}

	table := CrossTab(titles, assignments, 2, groups)
	require.Len(t, table, 2)

	assert.Equal(t, map[string]int{"women": 1, "black": 1}, table[0])
	assert.Equal(t, map[string]int{NoClearTheme: 1}, table[1])
}
