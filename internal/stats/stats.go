// Package stats computes dashboard aggregates over a user's todos.
// Everything here is pure: callers load the rows, these functions only
// count and partition.
package stats

import (
	"time"

	"github.com/eleven-am/tasknest/internal/store"
)

// DayCount is one bucket of the trailing 7-day histogram.
type DayCount struct {
	Date  string `json:"date"` // ISO date, e.g. 2026-08-29
	Count int    `json:"count"`
}

// Columns is the kanban partition of a todo list.
type Columns struct {
	Todo       []store.Todo
	InProgress []store.Todo
	Done       []store.Todo
}

// Summary carries every aggregate the dashboard renders.
type Summary struct {
	Total     int
	Completed int
	Pending   int

	ByCategory map[string]int
	ByPriority map[string]int

	// CompletedByDay buckets completed todos over the trailing 7 days
	// (today inclusive, oldest first) by their CREATION date. A todo
	// completed long after it was created counts under the day it was
	// created. That bucketing is load-bearing for the dashboard chart.
	CompletedByDay []DayCount

	Kanban Columns
}

// Compute builds the full dashboard summary. now anchors the 7-day
// window; dates are bucketed in UTC.
func Compute(todos []store.Todo, now time.Time) Summary {
	s := Summary{
		Total:      len(todos),
		ByCategory: make(map[string]int),
		ByPriority: make(map[string]int),
	}

	today := now.UTC().Truncate(24 * time.Hour)
	index := make(map[string]int, 7)
	s.CompletedByDay = make([]DayCount, 7)
	for i := 0; i < 7; i++ {
		date := today.AddDate(0, 0, i-6).Format("2006-01-02")
		s.CompletedByDay[i] = DayCount{Date: date}
		index[date] = i
	}

	for _, t := range todos {
		if t.Completed {
			s.Completed++
		}
		s.ByCategory[t.Category]++
		s.ByPriority[t.Priority]++

		if t.Completed {
			day := t.DateCreated.UTC().Format("2006-01-02")
			if i, ok := index[day]; ok {
				s.CompletedByDay[i].Count++
			}
		}

		switch t.Status {
		case store.StatusInProgress:
			s.Kanban.InProgress = append(s.Kanban.InProgress, t)
		case store.StatusDone:
			s.Kanban.Done = append(s.Kanban.Done, t)
		default:
			s.Kanban.Todo = append(s.Kanban.Todo, t)
		}
	}

	s.Pending = s.Total - s.Completed
	return s
}

// Completion is the done/todo split reported by the stats API.
type Completion struct {
	Done int `json:"done"`
	Todo int `json:"todo"`
}

// APIStats is the payload of GET /api/stats.
type APIStats struct {
	ByPriority map[string]int `json:"by_priority"`
	ByCategory map[string]int `json:"by_category"`
	Completion Completion     `json:"completion"`
}

// ComputeAPI builds the chart-consumption payload. The by_priority and
// by_category values each sum to the total todo count, as does
// completion.done + completion.todo.
func ComputeAPI(todos []store.Todo) APIStats {
	out := APIStats{
		ByPriority: make(map[string]int),
		ByCategory: make(map[string]int),
	}

	for _, t := range todos {
		out.ByPriority[t.Priority]++
		out.ByCategory[t.Category]++
		if t.Completed {
			out.Completion.Done++
		} else {
			out.Completion.Todo++
		}
	}
	return out
}
