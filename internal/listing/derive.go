package listing

import (
	"fmt"
	"strings"

	"github.com/user/jobboard/internal/posting"
)

// Policy decides whether the others section repeats promoted postings.
type Policy int

const (
	// OthersIncludePromoted lists every filtered posting under others, so a
	// promoted posting shows up in both sections.
	OthersIncludePromoted Policy = iota
	// OthersExcludePromoted leaves promoted postings out of others.
	OthersExcludePromoted
)

func (p Policy) String() string {
	switch p {
	case OthersExcludePromoted:
		return "exclude"
	default:
		return "include"
	}
}

// ParsePolicy accepts "include" or "exclude" in any case. Empty means include.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "include":
		return OthersIncludePromoted, nil
	case "exclude":
		return OthersExcludePromoted, nil
	default:
		return OthersIncludePromoted, fmt.Errorf("unknown policy %q (want include or exclude)", s)
	}
}

// View is everything the presentation layer needs for one render.
type View struct {
	Filtered []posting.Posting
	Promoted []posting.Posting
	Others   []posting.Posting
}

// Empty reports the "no jobs found" state. Both sections hang off Filtered,
// so an empty view never has promoted postings either.
func (v View) Empty() bool {
	return len(v.Filtered) == 0
}

// Derive filters postings by case-insensitive title substring and splits out
// the promoted ones. Fetch order is kept in every section.
func Derive(postings []posting.Posting, term string, policy Policy) View {
	filtered := Filter(postings, term)

	v := View{
		Filtered: filtered,
		Promoted: make([]posting.Posting, 0),
		Others:   make([]posting.Posting, 0, len(filtered)),
	}
	for _, p := range filtered {
		if p.IsPromoted() {
			v.Promoted = append(v.Promoted, p)
			if policy == OthersExcludePromoted {
				continue
			}
		}
		v.Others = append(v.Others, p)
	}
	return v
}

// Filter returns the postings whose title contains term, ignoring case.
func Filter(postings []posting.Posting, term string) []posting.Posting {
	needle := strings.ToLower(term)
	filtered := make([]posting.Posting, 0, len(postings))
	for _, p := range postings {
		if strings.Contains(strings.ToLower(p.Title), needle) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
