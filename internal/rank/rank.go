// Package rank orders the endpoint display list: selected endpoints group
// first, fuzzy search scores decide relevance, document order breaks ties.
// It is a read-only projection; it never mutates the document or the
// selection.
package rank

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/apisnip/apisnip/internal/spec"
)

// Item is one display row, a projection of an operation.
type Item struct {
	Endpoint    spec.Endpoint
	Index       int // original document order, the final tie-break
	Summary     string
	Description string
}

// Weights control how path and description matches combine. Path relevance
// outranks description relevance.
type Weights struct {
	Path        float64
	Description float64
}

func DefaultWeights() Weights {
	return Weights{Path: 2, Description: 1}
}

type row struct {
	item  Item
	score float64
}

// Display computes the ordered list for the current selection and query.
//
// With an empty query (browse mode) the key is (selected first, document
// order). With a query (search mode) every item is fuzzy-scored against its
// path and description, non-matching items are excluded, and the key becomes
// (selected first, score descending, document order). Matching is
// case-insensitive.
func Display(items []Item, selected map[spec.Endpoint]bool, query string, w Weights) []Item {
	var rows []row
	if query == "" {
		rows = make([]row, 0, len(items))
		for _, item := range items {
			rows = append(rows, row{item: item})
		}
	} else {
		rows = match(items, strings.ToLower(query), w)
	}

	sort.SliceStable(rows, func(a, b int) bool {
		ra, rb := rows[a], rows[b]
		if selected[ra.item.Endpoint] != selected[rb.item.Endpoint] {
			return selected[ra.item.Endpoint]
		}
		if ra.score != rb.score {
			return ra.score > rb.score
		}
		return ra.item.Index < rb.item.Index
	})

	out := make([]Item, len(rows))
	for i, r := range rows {
		out[i] = r.item
	}
	return out
}

// match fuzzy-scores every item against the query and keeps the ones that
// match on path or description. Scores from both fields add up, with the
// path match weighted above the description match.
func match(items []Item, query string, w Weights) []row {
	paths := make([]string, len(items))
	descriptions := make([]string, len(items))
	for i, item := range items {
		paths[i] = strings.ToLower(item.Endpoint.Path)
		text := item.Summary
		if text == "" {
			text = item.Description
		}
		descriptions[i] = strings.ToLower(text)
	}

	scores := make(map[int]float64)
	for _, m := range fuzzy.Find(query, paths) {
		scores[m.Index] += w.Path * float64(m.Score)
	}
	for _, m := range fuzzy.Find(query, descriptions) {
		scores[m.Index] += w.Description * float64(m.Score)
	}

	rows := make([]row, 0, len(scores))
	for i, item := range items {
		if s, ok := scores[i]; ok {
			rows = append(rows, row{item: item, score: s})
		}
	}
	return rows
}
