// Package lifecycle computes the derived state of projects and tasks:
// the initial status at creation time, the completion timestamp and hours
// figure when a task first reaches COMPLETED, and the project-level hours
// aggregate.
//
// All functions are pure; callers supply the relevant dates and persist the
// results themselves.
package lifecycle

import (
	"time"

	"github.com/mkarlin/project-tracker-api/internal/models"
)

// InitialStatus returns the status a project or task starts life with.
// An entity starting today goes straight to IN_PROGRESS; anything else,
// past or future, starts as CREATED. This is evaluated exactly once, at
// creation time; nothing later promotes CREATED to IN_PROGRESS when the
// start date arrives.
func InitialStatus(startDate, today time.Time) models.Status {
	if sameDate(startDate, today) {
		return models.StatusInProgress
	}
	return models.StatusCreated
}

// Completion holds the derived fields applied to a task on its first
// transition into COMPLETED.
type Completion struct {
	CompletedAt   time.Time
	HoursConsumed int64
}

// OnStatusChange reports the completion update for a status transition,
// if any. It fires only on a task's first transition into COMPLETED:
// completedAt is the previously persisted completion timestamp, and once
// it is set no later transition recomputes it, not even reopening the
// task and completing it again.
func OnStatusChange(prev, next models.Status, completedAt *time.Time, startDate, now time.Time) (Completion, bool) {
	if completedAt != nil || prev == models.StatusCompleted || next != models.StatusCompleted {
		return Completion{}, false
	}
	return Completion{
		CompletedAt:   now,
		HoursConsumed: HoursConsumed(startDate, now),
	}, true
}

// HoursConsumed converts the calendar span between a task's start date and
// its completion date into hours: whole days times 24. Completion before
// the start date yields a negative value; it is not clamped.
func HoursConsumed(startDate, completedAt time.Time) int64 {
	return int64(daysBetween(startDate, completedAt)) * 24
}

// SumTaskHours re-sums the hours of every task in a project. The aggregate
// is always a full recompute over fresh state, never an incremental delta,
// so it stays correct under task deletion and reassignment and running it
// twice with no intervening change yields the same value.
func SumTaskHours(tasks []models.Task) int64 {
	var total int64
	for _, t := range tasks {
		total += t.HoursConsumed
	}
	return total
}

// daysBetween counts whole calendar days from a to b, ignoring the time of
// day and location of either instant.
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
