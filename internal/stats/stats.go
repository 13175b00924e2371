package stats

import (
	"time"

	"github.com/fanzoftheone/taskdeck/internal/models"
)

// Summary aggregates a user's task snapshot. DoneToday counts tasks that are
// done AND were last updated on now's UTC calendar date; since every update
// bumps the timestamp, touching an already-done task counts it again.
type Summary struct {
	Total             int `json:"total"`
	Todo              int `json:"todo"`
	Doing             int `json:"doing"`
	Done              int `json:"done"`
	DoneToday         int `json:"done_today"`
	ProductivityScore int `json:"productivity_score"`
}

// Compute derives the summary from a task snapshot. Pure; no side effects.
// The score is clamp(done_today*10 + doing*2 - todo, 0, 100).
func Compute(tasks []models.Task, now time.Time) Summary {
	year, month, day := now.UTC().Date()

	var sum Summary
	sum.Total = len(tasks)

	for _, task := range tasks {
		switch task.Status {
		case models.StatusTodo:
			sum.Todo++
		case models.StatusDoing:
			sum.Doing++
		case models.StatusDone:
			sum.Done++

			y, m, d := task.UpdatedAt.UTC().Date()
			if y == year && m == month && d == day {
				sum.DoneToday++
			}
		}
	}

	score := sum.DoneToday*10 + sum.Doing*2 - sum.Todo

	if score < 0 {
		score = 0
	}

	if score > 100 {
		score = 100
	}

	sum.ProductivityScore = score

	return sum
}
