// Package attendance owns the status lifecycle of a class session.
//
// A session is born PENDING. A student marks it ATTENDED, SKIPPED or
// CANCELLED, and may re-mark it at any time to correct a mistake. The only
// automatic transition is Reconcile, which presumes an elapsed, unmarked
// session was skipped.
package attendance

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/balkashynov/skipsmart/internal/models"
)

var ErrInvalidStatus = errors.New("invalid status")

// ParseStatus parses a status name or one of its command-line aliases
func ParseStatus(input string) (models.Status, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "pending", "p", "reset":
		return models.StatusPending, nil
	case "attended", "attend", "a":
		return models.StatusAttended, nil
	case "skipped", "skip", "s":
		return models.StatusSkipped, nil
	case "cancelled", "canceled", "cancel", "c":
		return models.StatusCancelled, nil
	}
	return "", fmt.Errorf("%w: %q (use attended, skipped, cancelled or pending)", ErrInvalidStatus, input)
}

// Mark sets the session's status unconditionally
func Mark(session *models.ClassSession, status models.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	session.Status = status
	return nil
}

// Reconcile marks every PENDING session whose end time is before now as
// SKIPPED and returns how many were changed. Marked sessions are never touched,
// so repeated calls only pick up sessions that have newly elapsed.
func Reconcile(sessions []models.ClassSession, now time.Time) int {
	changed := 0
	for i := range sessions {
		if sessions[i].Status == models.StatusPending && sessions[i].EndTime.Before(now) {
			sessions[i].Status = models.StatusSkipped
			changed++
		}
	}
	return changed
}
