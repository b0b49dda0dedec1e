// Package agenda arranges tasks for display: grouped by deadline date with a
// deterministic order inside each day, laid out on a Monday-first month grid,
// or windowed over recent completion dates.
//
// Everything here is a pure function of its arguments.
package agenda

import (
	"sort"
	"time"

	"github.com/phrazzld/taskal/internal/domain"
	"github.com/phrazzld/taskal/internal/i18n"
	"golang.org/x/text/language"
)

// DayGroup is the set of tasks due on one date.
type DayGroup struct {
	Date        string         `json:"date"`
	Weekday     string         `json:"weekday"`
	Tasks       []*domain.Task `json:"tasks"`
	TotalEffort float64        `json:"total_effort"`
}

var priorityWeights = map[domain.Priority]int{
	domain.PriorityNow:   0,
	domain.PriorityLater: 1,
}

// Estimation tasks sort after every other type.
var typeWeights = map[domain.TaskType]int{
	domain.TaskTypeQuarterHour: 0,
	domain.TaskTypeRequestPrep: 1,
	domain.TaskTypeGeneral:     2,
	domain.TaskTypeEstimation:  3,
}

// PriorityWeight returns the sort weight of p. Unknown values sort last.
func PriorityWeight(p domain.Priority) int {
	if w, ok := priorityWeights[p]; ok {
		return w
	}
	return len(priorityWeights)
}

// TypeWeight returns the sort weight of t. Unknown values sort last.
func TypeWeight(t domain.TaskType) int {
	if w, ok := typeWeights[t]; ok {
		return w
	}
	return len(typeWeights)
}

// Less orders tasks by priority weight, then type weight.
func Less(a, b *domain.Task) bool {
	if pa, pb := PriorityWeight(a.Priority), PriorityWeight(b.Priority); pa != pb {
		return pa < pb
	}
	return TypeWeight(a.Type) < TypeWeight(b.Type)
}

// SortTasks returns a copy of tasks ordered by Less. Ties keep input order.
func SortTasks(tasks []*domain.Task) []*domain.Task {
	sorted := make([]*domain.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Less(sorted[i], sorted[j])
	})
	return sorted
}

// SortByDeadline returns a copy of tasks ordered by deadline date, then by
// Less within a date. Ties keep input order.
func SortByDeadline(tasks []*domain.Task) []*domain.Task {
	sorted := make([]*domain.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Deadline != sorted[j].Deadline {
			return sorted[i].Deadline < sorted[j].Deadline
		}
		return Less(sorted[i], sorted[j])
	})
	return sorted
}

// GroupByDate buckets tasks by exact deadline string and returns the buckets
// in ascending date order. Each bucket's effort total is summed in input
// order before the bucket is sorted. Nil tasks are skipped.
func GroupByDate(tasks []*domain.Task, tag language.Tag) []DayGroup {
	buckets := make(map[string]*DayGroup)
	dates := make([]string, 0)

	for _, task := range tasks {
		if task == nil {
			continue
		}
		g, ok := buckets[task.Deadline]
		if !ok {
			g = &DayGroup{Date: task.Deadline, Weekday: WeekdayName(task.Deadline, tag)}
			buckets[task.Deadline] = g
			dates = append(dates, task.Deadline)
		}
		g.Tasks = append(g.Tasks, task)
		g.TotalEffort += float64(task.Effort)
	}

	sort.Strings(dates)

	groups := make([]DayGroup, 0, len(dates))
	for _, date := range dates {
		g := buckets[date]
		g.Tasks = SortTasks(g.Tasks)
		groups = append(groups, *g)
	}
	return groups
}

// TotalEffort sums the effort of tasks in order.
func TotalEffort(tasks []*domain.Task) float64 {
	var total float64
	for _, task := range tasks {
		if task != nil {
			total += float64(task.Effort)
		}
	}
	return total
}

// WeekdayName returns the localized weekday of a YYYY-MM-DD date, or "" when
// the date does not parse.
func WeekdayName(date string, tag language.Tag) string {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return ""
	}
	return i18n.Weekday(tag, t.Weekday())
}

// MondayIndex maps a weekday to its column in a Monday-first week.
func MondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
