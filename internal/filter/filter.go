// Package filter derives the filterable columns of a cleaned dataset and
// recomputes the filtered view whenever the selection or the base data
// changes. The engine only produces derived views; it never mutates the
// base dataset.
package filter

import (
	"sort"

	"go-dashboard-wizard/internal/model"
	"go-dashboard-wizard/pkg/utils"
)

// maxDomainSize caps how many distinct values a column may have and still
// be offered as a filter.
const maxDomainSize = 50

// Columns returns the filterable columns of the dataset with their sorted
// distinct-value domains. A column qualifies when its value in the first
// record is a string and it has more than one but at most 50 distinct
// values. This is a deliberate approximation, not strict type inference:
// a column whose first row happens to hold a number is simply not offered.
func Columns(ds model.Dataset) []model.ColumnDomain {
	if len(ds) == 0 {
		return nil
	}

	first := ds[0]
	names := make([]string, 0, len(first))
	for name, val := range first {
		if _, ok := val.(string); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var out []model.ColumnDomain
	for _, name := range names {
		domain := distinctValues(ds, name)
		if len(domain) > 1 && len(domain) <= maxDomainSize {
			out = append(out, model.ColumnDomain{Name: name, Values: domain})
		}
	}
	return out
}

// distinctValues collects the distinct values of one column across the
// whole dataset, sorted ascending by the scalar's natural order. Values
// within one column are expected to be homogeneous in type.
func distinctValues(ds model.Dataset, column string) []interface{} {
	seen := make(map[string]interface{})
	for _, rec := range ds {
		val, ok := rec[column]
		if !ok || val == nil {
			continue // irregular upstream data: treat as "no value"
		}
		seen[utils.CanonicalValue(val)] = val
	}

	out := make([]interface{}, 0, len(seen))
	for _, v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return utils.LessValue(out[i], out[j]) })
	return out
}

// Apply computes the filtered view: rows whose value, for every column with
// a non-empty selection, is one of the selected values. Columns with no
// selection impose no constraint; an empty selection yields the dataset
// unchanged, same rows, same order.
func Apply(ds model.Dataset, sel model.FilterSelection) model.Dataset {
	if !sel.Active() {
		return ds.Clone()
	}

	// Canonicalize each selection once up front.
	wanted := make(map[string]map[string]bool, len(sel))
	for column, vals := range sel {
		if len(vals) == 0 {
			continue
		}
		set := make(map[string]bool, len(vals))
		for _, v := range vals {
			set[utils.CanonicalValue(v)] = true
		}
		wanted[column] = set
	}

	out := make(model.Dataset, 0, len(ds))
	for _, rec := range ds {
		if matches(rec, wanted) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(rec model.Record, wanted map[string]map[string]bool) bool {
	for column, set := range wanted {
		val, ok := rec[column]
		if !ok || !set[utils.CanonicalValue(val)] {
			return false
		}
	}
	return true
}
