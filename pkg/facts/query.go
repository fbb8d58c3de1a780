package facts

import "sort"

// MaxListLimit caps how many facts a single read returns
const MaxListLimit = 1000

// Query selects facts from a store. Results are always ordered by
// votesInteresting descending, then id ascending
type Query struct {
	Category string `json:"category"`
	Limit    int    `json:"limit"`
}

// NewQuery creates a query for a category (or "all") with the default cap
func NewQuery(category string) Query {
	return Query{Category: category, Limit: MaxListLimit}.Normalize()
}

// Normalize fills in defaults and clamps the limit
func (q Query) Normalize() Query {
	if q.Category == "" {
		q.Category = AllCategories
	}
	if q.Limit <= 0 || q.Limit > MaxListLimit {
		q.Limit = MaxListLimit
	}
	return q
}

// Filtered reports whether the query restricts results to a single category
func (q Query) Filtered() bool {
	return q.Category != "" && q.Category != AllCategories
}

// Matches reports whether a fact falls inside the query's category
func (q Query) Matches(f Fact) bool {
	return !q.Filtered() || f.Category == q.Category
}

// SortFacts orders facts the way every read returns them
func SortFacts(list []Fact) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].VotesInteresting != list[j].VotesInteresting {
			return list[i].VotesInteresting > list[j].VotesInteresting
		}
		return list[i].ID < list[j].ID
	})
}
