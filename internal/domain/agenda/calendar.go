package agenda

import (
	"time"

	"github.com/phrazzld/taskal/internal/domain"
)

// CompletedWindowDays is the span of the completed-tasks view.
const CompletedWindowDays = 15

// CalendarDay is one cell of a month grid.
type CalendarDay struct {
	Date        string         `json:"date"`
	Day         int            `json:"day"`
	InMonth     bool           `json:"in_month"`
	Tasks       []*domain.Task `json:"tasks"`
	TotalEffort float64        `json:"total_effort"`
	DoneEffort  float64        `json:"done_effort"`
	OpenEffort  float64        `json:"open_effort"`
}

// MonthGrid lays out a month on Monday-first weeks. Leading cells come from
// the previous month and trailing cells from the next, so the length is
// always a multiple of seven.
func MonthGrid(year int, month time.Month) []CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	lead := MondayIndex(first.Weekday())
	cells := lead + last.Day()
	if rem := cells % 7; rem != 0 {
		cells += 7 - rem
	}

	days := make([]CalendarDay, 0, cells)
	for i := 0; i < cells; i++ {
		d := first.AddDate(0, 0, i-lead)
		days = append(days, CalendarDay{
			Date:    d.Format(domain.DateLayout),
			Day:     d.Day(),
			InMonth: d.Month() == month,
			Tasks:   []*domain.Task{},
		})
	}
	return days
}

// Calendar returns the month grid with each day's tasks attached in display
// order and its effort split into done and open work. Tasks outside the grid
// are ignored.
func Calendar(year int, month time.Month, tasks []*domain.Task) []CalendarDay {
	days := MonthGrid(year, month)

	index := make(map[string]int, len(days))
	for i, d := range days {
		index[d.Date] = i
	}

	for _, task := range tasks {
		if task == nil {
			continue
		}
		i, ok := index[task.Deadline]
		if !ok {
			continue
		}
		day := &days[i]
		day.Tasks = append(day.Tasks, task)
		effort := float64(task.Effort)
		day.TotalEffort += effort
		if task.Status == domain.TaskStatusDone {
			day.DoneEffort += effort
		} else {
			day.OpenEffort += effort
		}
	}

	for i := range days {
		days[i].Tasks = SortTasks(days[i].Tasks)
	}
	return days
}

// MonthRange returns the first and last date shown on the month grid.
func MonthRange(year int, month time.Month) (from, to string) {
	grid := MonthGrid(year, month)
	return grid[0].Date, grid[len(grid)-1].Date
}

// CompletedWindow returns the inclusive date range of the completed view.
// Offset 0 ends today; each step moves the window by CompletedWindowDays.
func CompletedWindow(today time.Time, offset int) (from, to string) {
	y, m, d := today.Date()
	end := time.Date(y, m, d+offset*CompletedWindowDays, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -(CompletedWindowDays - 1))
	return start.Format(domain.DateLayout), end.Format(domain.DateLayout)
}
