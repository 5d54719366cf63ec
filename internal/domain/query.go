package domain

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SearchFields selects which record fields a search query is matched against.
type SearchFields uint8

const (
	FieldCompany SearchFields = 1 << iota
	FieldRole
	FieldLocation
)

// DefaultSearchFields is the search scope of the main board filter:
// company and role.
const DefaultSearchFields = FieldCompany | FieldRole

// SortKey names a supported collection ordering.
type SortKey string

const (
	SortByDate    SortKey = "date"    // most recently applied first
	SortByCompany SortKey = "company" // company name, A to Z
)

// companyCollator gives the same ordering the web UI got from
// String.localeCompare: locale-aware and case-insensitive.
var companyCollator = collate.New(language.Und, collate.Loose)

// Search returns the records whose selected fields contain query,
// case-insensitively. An empty or whitespace-only query returns the whole
// collection in its original order. A zero field set falls back to
// DefaultSearchFields. The input is never mutated.
func Search(jobs []JobRecord, query string, fields SearchFields) []JobRecord {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		out := make([]JobRecord, len(jobs))
		copy(out, jobs)
		return out
	}
	if fields == 0 {
		fields = DefaultSearchFields
	}

	out := make([]JobRecord, 0, len(jobs))
	for _, j := range jobs {
		if matches(j, query, fields) {
			out = append(out, j)
		}
	}
	return out
}

func matches(j JobRecord, query string, fields SearchFields) bool {
	if fields&FieldCompany != 0 && strings.Contains(strings.ToLower(j.Company), query) {
		return true
	}
	if fields&FieldRole != 0 && strings.Contains(strings.ToLower(j.Role), query) {
		return true
	}
	if fields&FieldLocation != 0 && strings.Contains(strings.ToLower(j.Location), query) {
		return true
	}
	return false
}

// SortBy returns a new, sorted copy of the collection. SortByDate orders by
// applied date descending; SortByCompany orders ascending with locale-aware
// comparison. Both sorts are stable, so ties keep their original relative
// order. An unknown key returns the collection unchanged.
func SortBy(jobs []JobRecord, key SortKey) []JobRecord {
	out := make([]JobRecord, len(jobs))
	copy(out, jobs)

	switch key {
	case SortByDate:
		sort.SliceStable(out, func(i, k int) bool {
			return out[i].AppliedDate.After(out[k].AppliedDate)
		})
	case SortByCompany:
		sort.SliceStable(out, func(i, k int) bool {
			return companyCollator.CompareString(out[i].Company, out[k].Company) < 0
		})
	}
	return out
}

// GroupByStatus partitions the collection into the five fixed status buckets,
// preserving relative order within each bucket. Every status is present in
// the result even when empty, so the board can render all columns
// deterministically. A record carrying an unrecognized status (which
// normalization should have prevented) is dropped rather than failing.
func GroupByStatus(jobs []JobRecord) map[Status][]JobRecord {
	groups := make(map[Status][]JobRecord, len(Statuses))
	for _, s := range Statuses {
		groups[s] = []JobRecord{}
	}
	for _, j := range jobs {
		if !j.Status.Valid() {
			continue
		}
		groups[j.Status] = append(groups[j.Status], j)
	}
	return groups
}
