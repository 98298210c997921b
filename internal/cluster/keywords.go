package cluster

import (
	"sort"
	"strings"
)

// NoClearTheme is the catch-all group assigned when no themed keyword
// matches a title.
const NoClearTheme = "no clear theme"

// KeywordGroup names a theme and the substrings that signal it. Matching is
// case-insensitive substring containment against the whole title.
type KeywordGroup struct {
	Name     string
	Keywords []string
}

// DefaultKeywordGroups returns the themed lookup table in priority order.
// When a title matches several groups, the first declared group wins, so the
// ordering here is part of the contract. The final group carries an empty
// string so every title lands somewhere.
func DefaultKeywordGroups() []KeywordGroup {
	return []KeywordGroup{
		{
			Name: "women",
			Keywords: []string{
				"women",
				"woman",
				"women's history month",
				"women's history",
				"female",
				"celebrating women",
				"honor women",
				"whm",
				"her shoes",
				"contraceptive",
				"contraception",
				"honoring sixtripleeight",
				"wasp", // women airforce service pilots
				"wps",  // women, peace, and security
			},
		},
		{
			Name: "black",
			Keywords: []string{
				"black",
				"black history month",
				"african american",
				"african-american",
				"african american heritage",
				"african american history",
				"african american history month",
				"juneteenth",
				"tuskegee",
				"martin luther king",
				"martin luthor king",
				"mlk",
				"aahm",
				"aahc",
				"bhm",
				"gospel",
				"soul food",
				"slave",
				"vance marchbanks",
				"elayne arrington",
			},
		},
		{
			Name: "hispanic",
			Keywords: []string{
				"hispanic heritage month",
				"hispanic",
				"latin",
				"unidos",
				"latinx",
				"hahm",
				"latin american",
				"buen provecho",
				"fiesta",
			},
		},
		{
			Name: "asian/pacific islander",
			Keywords: []string{
				"asian",
				"asian american",
				"asian american heritage",
				"asian american heritage month",
				"pacific island",
				"luau",
				"aloha",
				"haka",
				"aapi",
				"apahm",  // asian pacific american heritage month
				"aanhpi", // asian american native hawaiian/pacific islander month
			},
		},
		{
			Name: "native american",
			Keywords: []string{
				"native",
				"indian",
				"powwow",
				"lumbee",
				"indigenous",
				"code talker",
				"navajo",
				"cherokee",
				"nahm",  // native american heritage month
				"naih",  // native american and indigenous heritage
				"naihm", // native american and indigenous heritage month
				"filipino",
			},
		},
		{
			Name: "lgbtq+",
			Keywords: []string{
				"lgbt",
				"lgbtq",
				"pride",
				"gay",
				"gender",
				"rainbow",
			},
		},
		{
			Name: "other ethnicities & religions",
			Keywords: []string{
				"jewish american heritage",
				"holocaust",
				"irish american heritage",
				"german american heritage",
				"eid",
				"french american heritage",
				"italian american heritage",
				"observance graphic",
			},
		},
		{
			Name: "diversity",
			Keywords: []string{
				"heritage",
				"diversity",
				"dei",
				"deia",
				"unconscious bias",
				"equal employment",
				"inclusive",
				"inclusion",
				"inclusivity",
				"sexual assault prevention",
				"barrier",
				"breaking barriers",
				"multicultural",
				"multi-cultural",
				"culture",
				"cultural",
				"cultural awareness",
				"immigrant",
				"refugee",
				"disability",
				"disabilities",
				"prosthetic",
				"included",
				"inspiring change",
				"remembers past",
				"mentoring moment",
				"out of the shadows",
				"celebrating culture",
				"celebrating diversity",
				"celebrating history",
				"celebrating heritage",
				"spreading awareness",
				"first",
				"remembrance",
				"next generation",
			},
		},
		{
			Name: NoClearTheme,
			Keywords: []string{
				"", // matches everything
				"medical care",
			},
		},
	}
}

// AssignGroup returns the name of the first group with a keyword contained
// in the title.
func AssignGroup(title string, groups []KeywordGroup) string {
	lower := strings.ToLower(title)
	for _, group := range groups {
		for _, keyword := range group.Keywords {
			if strings.Contains(lower, keyword) {
				return group.Name
			}
		}
	}
	return NoClearTheme
}

// MatchingKeywords lists every keyword of the named group found in the
// title, in the group's declared order.
func MatchingKeywords(title, groupName string, groups []KeywordGroup) []string {
	lower := strings.ToLower(title)
	var matches []string
	for _, group := range groups {
		if group.Name != groupName {
			continue
		}
		for _, keyword := range group.Keywords {
			if keyword != "" && strings.Contains(lower, keyword) {
				matches = append(matches, keyword)
			}
		}
	}
	return matches
}

// GroupCount is one row of a keyword group summary.
type GroupCount struct {
	Group string
	Count int
	Share float64
}

// SummarizeGroups assigns every title to its group and tabulates counts and
// shares, largest group first.
func SummarizeGroups(titles []string, groups []KeywordGroup) []GroupCount {
	counts := make(map[string]int)
	for _, title := range titles {
		counts[AssignGroup(title, groups)]++
	}

	summary := make([]GroupCount, 0, len(counts))
	for group, count := range counts {
		summary = append(summary, GroupCount{
			Group: group,
			Count: count,
			Share: float64(count) / float64(len(titles)),
		})
	}
	sort.Slice(summary, func(a, b int) bool {
		if summary[a].Count != summary[b].Count {
			return summary[a].Count > summary[b].Count
		}
		return summary[a].Group < summary[b].Group
	})
	return summary
}

// KeywordCount records how often one keyword appears across all titles.
type KeywordCount struct {
	Group   string
	Keyword string
	Count   int
}

// TopKeywordsByGroup counts every keyword's occurrences over all titles and
// keeps the perGroup most frequent per group, in declaration order of groups.
func TopKeywordsByGroup(titles []string, groups []KeywordGroup, perGroup int) []KeywordCount {
	lowered := make([]string, len(titles))
	for i, title := range titles {
		lowered[i] = strings.ToLower(title)
	}

	var result []KeywordCount
	for _, group := range groups {
		var groupCounts []KeywordCount
		for _, keyword := range group.Keywords {
			if keyword == "" {
				continue
			}
			count := 0
			for _, title := range lowered {
				if strings.Contains(title, keyword) {
					count++
				}
			}
			groupCounts = append(groupCounts, KeywordCount{
				Group:   group.Name,
				Keyword: keyword,
				Count:   count,
			})
		}
		sort.Slice(groupCounts, func(a, b int) bool {
			if groupCounts[a].Count != groupCounts[b].Count {
				return groupCounts[a].Count > groupCounts[b].Count
			}
			return groupCounts[a].Keyword < groupCounts[b].Keyword
		})
		if perGroup < len(groupCounts) {
			groupCounts = groupCounts[:perGroup]
		}
		result = append(result, groupCounts...)
	}
	return result
}

// CrossTab counts titles per (cluster, keyword group) pair. The outer index
// is the cluster; inner map keys are group names.
func CrossTab(titles []string, assignments []int, k int, groups []KeywordGroup) []map[string]int {
	table := make([]map[string]int, k)
	for i := range table {
		table[i] = make(map[string]int)
	}
	for i, title := range titles {
		if i >= len(assignments) {
			break
		}
		table[assignments[i]][AssignGroup(title, groups)]++
	}
	return table
}
