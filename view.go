package bricks

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
)

// SortKey selects the order of a view. All orders are descending.
type SortKey string

const (
	// ByScore orders by total score, then current price. It is the default.
	ByScore SortKey = "score"
	// ByCurrentPrice orders by current price.
	ByCurrentPrice SortKey = "currentPrice"
	// ByROI orders by ROI, sets without ROI last.
	ByROI SortKey = "roi"
)

// SortKeys lists the known sort keys, the default first.
var SortKeys = []SortKey{ByScore, ByCurrentPrice, ByROI}

// ParseSortKey returns the SortKey named s, case insensitive. Empty is ByScore.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ByScore, nil
	}
	for _, k := range SortKeys {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q, want one of %v", s, SortKeys)
}

// Project returns the items matching query, in the order of key.
//
// The query is matched, trimmed and case insensitive, as a substring of the
// id, the name or the theme. A blank query matches everything. Any key other
// than ByCurrentPrice and ByROI orders by score.
//
// items is never modified; the result is a new slice.
func Project(items []Item, query string, key SortKey) []Item {
	q := strings.ToLower(strings.TrimSpace(query))

	view := make([]Item, 0, len(items))
	for _, it := range items {
		if q == "" || matches(it, q) {
			view = append(view, it)
		}
	}

	switch key {
	case ByCurrentPrice:
		slices.SortStableFunc(view, func(a, b Item) int {
			return cmp.Compare(b.CurrentPrice, a.CurrentPrice)
		})
	case ByROI:
		slices.SortStableFunc(view, func(a, b Item) int {
			return cmp.Compare(roiOrLowest(b), roiOrLowest(a))
		})
	default:
		slices.SortStableFunc(view, func(a, b Item) int {
			sa, sb := ComputeMetrics(a).TotalScore, ComputeMetrics(b).TotalScore
			if sa == sb {
				return cmp.Compare(b.CurrentPrice, a.CurrentPrice)
			}
			return cmp.Compare(sb, sa)
		})
	}
	return view
}

func matches(it Item, q string) bool {
	return strings.Contains(strings.ToLower(string(it.ID)), q) ||
		strings.Contains(strings.ToLower(it.Name), q) ||
		strings.Contains(strings.ToLower(it.Theme), q)
}

func roiOrLowest(it Item) float64 {
	if roi := ComputeMetrics(it).ROI; roi != nil {
		return *roi
	}
	return math.Inf(-1)
}

// NextSelection returns the set to select once removed is deleted from view.
//
// It is the set after removed in view, or the one before if removed was the
// last, or "" if view has nothing else. If removed is not in view, the first
// set of view is selected.
func NextSelection(view []Item, removed ID) ID {
	i := slices.IndexFunc(view, func(it Item) bool { return it.ID == removed })
	switch {
	case i < 0 && len(view) > 0:
		return view[0].ID
	case i < 0:
		return ""
	case i+1 < len(view):
		return view[i+1].ID
	case i > 0:
		return view[i-1].ID
	default:
		return ""
	}
}
