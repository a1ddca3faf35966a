package pages

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"

	"top10animes.net/rank-web/internal/cards"
)

// Filter narrows a ranking without reordering it.
type Filter struct {
	Query    string
	MinScore float64
	Limit    int
}

// ParseFilter reads q, min_score and limit from query values. limit may only
// lower maxItems; maxItems of zero means no cap.
func ParseFilter(v url.Values, maxItems int) Filter {
	f := Filter{
		Query: strings.TrimSpace(v.Get("q")),
		Limit: maxItems,
	}
	if s, err := strconv.ParseFloat(strings.TrimSpace(v.Get("min_score")), 64); err == nil && s > 0 {
		f.MinScore = s
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v.Get("limit"))); err == nil && n > 0 {
		if maxItems == 0 || n < maxItems {
			f.Limit = n
		}
	}
	return f
}

// Apply keeps the first Limit cards in payload order, then drops those that
// miss the query or the score floor. Ranks are never reassigned.
//
// A query matches titles that contain it, ignoring case. When no title does,
// titles holding the query's letters in order are kept instead, so a typo
// still finds something.
func (f Filter) Apply(all []cards.CardView) []cards.CardView {
	top := all
	if f.Limit > 0 && len(top) > f.Limit {
		top = top[:f.Limit]
	}
	if f.Query == "" && f.MinScore <= 0 {
		return top
	}
	match := f.titleMatcher(top)
	out := make([]cards.CardView, 0, len(top))
	for _, c := range top {
		if !match(c.Title) {
			continue
		}
		if f.MinScore > 0 && c.MetricLabelKey == cards.LabelScore && c.Score < f.MinScore {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (f Filter) titleMatcher(top []cards.CardView) func(string) bool {
	if f.Query == "" {
		return func(string) bool { return true }
	}
	fold := cases.Fold()
	q := fold.String(f.Query)
	contains := func(title string) bool { return strings.Contains(fold.String(title), q) }
	for _, c := range top {
		if contains(c.Title) {
			return contains
		}
	}
	return func(title string) bool { return fuzzy.MatchNormalizedFold(f.Query, title) }
}

// Active reports whether the filter drops anything beyond the item cap.
func (f Filter) Active() bool {
	return f.Query != "" || f.MinScore > 0
}
