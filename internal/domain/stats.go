package domain

// StatusCount is one slice of the dashboard distribution.
type StatusCount struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
}

// CountByStatus counts records per status. All five statuses are present in
// the result, zeros included.
func CountByStatus(jobs []JobRecord) map[Status]int {
	counts := make(map[Status]int, len(Statuses))
	for _, s := range Statuses {
		counts[s] = 0
	}
	for _, j := range jobs {
		if !j.Status.Valid() {
			continue
		}
		counts[j.Status]++
	}
	return counts
}

// TotalCount is the size of the collection.
func TotalCount(jobs []JobRecord) int {
	return len(jobs)
}

// Distribution is CountByStatus with zero-count entries removed, ordered by
// the fixed status sequence. Zero slices are meaningless on a pie chart, so
// they never appear here; an empty collection yields an empty (non-nil)
// distribution.
func Distribution(jobs []JobRecord) []StatusCount {
	counts := CountByStatus(jobs)
	out := make([]StatusCount, 0, len(Statuses))
	for _, s := range Statuses {
		if counts[s] == 0 {
			continue
		}
		out = append(out, StatusCount{Status: s, Count: counts[s]})
	}
	return out
}
