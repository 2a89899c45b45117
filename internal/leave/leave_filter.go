package leave

import (
	"sort"
	"strings"
	"time"
)

// FilterAll is the sentinel clients send to mean "no filter" on an
// enumerated field.
const FilterAll = "all"

// FilterCriteria holds optional conjunctive predicates. Zero-valued fields
// contribute no clause.
type FilterCriteria struct {
	Search       string
	Status       string
	LeaveType    string
	DepartmentID string
	UserID       string
	StartDate    *time.Time
	EndDate      *time.Time
}

// FilterLeaves applies the criteria over the full set in memory, sorts by
// creation time descending and returns the requested zero-indexed page. It
// holds no shared state and is safe to call concurrently.
func FilterLeaves(all []Leave, c FilterCriteria, page, size int) []Leave {
	matched := make([]Leave, 0, len(all))
	for _, l := range all {
		if matches(l, c) {
			matched = append(matched, l)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if size <= 0 {
		return []Leave{}
	}
	start := page * size
	if page < 0 || start >= len(matched) {
		return []Leave{}
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end]
}

// MatchCount reports how many leaves satisfy the criteria, for pagination
// metadata.
func MatchCount(all []Leave, c FilterCriteria) int {
	n := 0
	for _, l := range all {
		if matches(l, c) {
			n++
		}
	}
	return n
}

func matches(l Leave, c FilterCriteria) bool {
	if c.Search != "" && !matchesSearch(l, c.Search) {
		return false
	}
	if active(c.Status) && l.Status != c.Status {
		return false
	}
	if active(c.LeaveType) && l.LeaveType != c.LeaveType {
		return false
	}
	if active(c.DepartmentID) {
		// A leave without a department never matches a department filter.
		if l.DepartmentID == nil || l.DepartmentID.String() != c.DepartmentID {
			return false
		}
	}
	if c.UserID != "" && l.UserID.String() != c.UserID {
		return false
	}
	if c.StartDate != nil && l.StartDate.Before(*c.StartDate) {
		return false
	}
	if c.EndDate != nil && l.EndDate.After(*c.EndDate) {
		return false
	}
	return true
}

func matchesSearch(l Leave, search string) bool {
	needle := strings.ToLower(search)

	fullName := ""
	if l.User != nil {
		fullName = strings.ToLower(l.User.FullName())
	}
	reason := strings.ToLower(l.Reason)

	return strings.Contains(fullName, needle) || strings.Contains(reason, needle)
}

func active(v string) bool {
	return v != "" && !strings.EqualFold(v, FilterAll)
}
