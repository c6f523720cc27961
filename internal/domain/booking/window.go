package booking

import (
	"strings"
	"time"

	"github.com/DmitryMisevra/shareit/internal/domain"
)

// ValidateWindow checks a proposed reservation window against the given
// instant. All violations are collected and reported in a single
// validation error so the client gets the complete diagnostic in one round
// trip.
func ValidateWindow(start, end *time.Time, now time.Time) error {
	var violations []string

	if start == nil {
		violations = append(violations, "booking start time is required")
	}
	if end == nil {
		violations = append(violations, "booking end time is required")
	}
	if start != nil && end != nil {
		if start.After(*end) {
			violations = append(violations, "booking start time must not be after the end time")
		}
		if start.Equal(*end) {
			violations = append(violations, "booking start and end time must not be equal")
		}
		if start.Before(now) {
			violations = append(violations, "booking start time must not be in the past")
		}
		if end.Before(now) {
			violations = append(violations, "booking end time must not be in the past")
		}
	}

	if len(violations) > 0 {
		return domain.NewValidationError(strings.Join(violations, "; "))
	}
	return nil
}
