// Package budget computes a subject's attendance standing and how many
// future classes can still be skipped, or must be attended, to stay at target.
package budget

import (
	"math"
	"time"

	"github.com/balkashynov/skipsmart/internal/models"
)

// eps absorbs binary floating point error at exact integer boundaries,
// e.g. 0.7*10 evaluating to 7.000000000000001
const eps = 1e-9

// Standing classifies a report against its target
type Standing string

const (
	StandingNoData Standing = "no data"
	StandingSafe   Standing = "safe"
	StandingBehind Standing = "behind"
)

// Report is a point-in-time snapshot of one subject's attendance.
// It must be recomputed on every read.
type Report struct {
	Held     int `json:"held"`
	Attended int `json:"attended"`
	Skipped  int `json:"skipped"`
	Future   int `json:"future"`

	// CurrentPercentage is nil until at least one class has been held
	CurrentPercentage *float64 `json:"current_percentage"`

	MaxSkippable        int     `json:"max_skippable"`
	RequiredAttendances int     `json:"required_attendances"`
	TargetPercentage    float64 `json:"target_percentage"`

	// Informational only, not part of the arithmetic above
	Overdue   int `json:"overdue"`   // PENDING sessions that have already started
	Cancelled int `json:"cancelled"` // excluded from every figure
}

// Standing reports whether the subject is at or above target
func (r Report) Standing() Standing {
	if r.CurrentPercentage == nil {
		return StandingNoData
	}
	if *r.CurrentPercentage+eps >= r.TargetPercentage {
		return StandingSafe
	}
	return StandingBehind
}

// Calculate builds the report for one subject's sessions, ordered by start time.
//
// Held sessions are the non-cancelled ones marked ATTENDED or SKIPPED, and
// future sessions are the non-cancelled PENDING ones, both regardless of time.
// With A attended, H held, P future and T = target/100:
//
//	maxSkippable        = clamp(floor(A + P - T*(H+P)), 0, P)
//	requiredAttendances = clamp(ceil((T*H - A) / (1-T)), 0, P)   for T < 1
//	requiredAttendances = 0 if A == H else P                     for T == 1
func Calculate(sessions []models.ClassSession, targetPercentage float64, now time.Time) Report {
	r := Report{TargetPercentage: targetPercentage}

	for _, s := range sessions {
		switch s.Status {
		case models.StatusCancelled:
			r.Cancelled++
		case models.StatusAttended:
			r.Held++
			r.Attended++
		case models.StatusSkipped:
			r.Held++
			r.Skipped++
		case models.StatusPending:
			r.Future++
			if !s.StartTime.After(now) {
				r.Overdue++
			}
		}
	}

	if r.Held > 0 {
		pct := 100 * float64(r.Attended) / float64(r.Held)
		r.CurrentPercentage = &pct
	}

	r.MaxSkippable = MaxSkippable(r.Attended, r.Held, r.Future, targetPercentage)
	r.RequiredAttendances = RequiredAttendances(r.Attended, r.Held, r.Future, targetPercentage)
	return r
}

// MaxSkippable is the largest number of the future classes that can be skipped
// while still finishing at or above target, assuming the rest are attended
func MaxSkippable(attended, held, future int, targetPercentage float64) int {
	t := targetPercentage / 100
	a, h, p := float64(attended), float64(held), float64(future)

	k := math.Floor(a + p - t*(h+p) + eps)
	return clamp(k, future)
}

// RequiredAttendances is the fewest future classes that must be attended for
// the ratio to reach target
func RequiredAttendances(attended, held, future int, targetPercentage float64) int {
	t := targetPercentage / 100
	if t >= 1 {
		if attended == held {
			return 0
		}
		return future
	}

	a, h := float64(attended), float64(held)
	n := math.Ceil((t*h-a)/(1-t) - eps)
	return clamp(n, future)
}

func clamp(v float64, upper int) int {
	if v < 0 {
		return 0
	}
	if v > float64(upper) {
		return upper
	}
	return int(v)
}
