package event

import (
	"fmt"
	"strings"
)

// Wizard steps, in order. Extras and Review own no required fields, so
// their checklists are empty and Submit re-validation on the last step
// passes once the earlier steps have.
const (
	StepBasicInfo = 1
	StepSchedule  = 2
	StepLocation  = 3
	StepMedia     = 4
	StepExtras    = 5
	StepReview    = 6

	StepCount = 6
)

// StepTitle returns the display name for a step.
func StepTitle(step int) string {
	switch step {
	case StepBasicInfo:
		return "Basic Info"
	case StepSchedule:
		return "Date & Time"
	case StepLocation:
		return "Location"
	case StepMedia:
		return "Media & Pricing"
	case StepExtras:
		return "Extras"
	case StepReview:
		return "Review"
	default:
		return fmt.Sprintf("Step %d", step)
	}
}

// Validate checks the required fields owned by one step. It is pure and
// deterministic, and returns the first failing predicate's message, so
// the caller always surfaces at most one error per step.
//
// End time is deliberately not required to be after start time: the
// platform allows overnight events, so no ordering is enforced between
// the two.
func Validate(step int, d DraftEvent) error {
	switch step {
	case StepBasicInfo:
		if strings.TrimSpace(d.Title) == "" {
			return fmt.Errorf("Event name is required")
		}
		if d.Category == "" {
			return fmt.Errorf("Please select a category")
		}
	case StepSchedule:
		if d.ActivityType == ActivityNone {
			return fmt.Errorf("Please select activity type")
		}
		if len(d.EventDates) == 0 {
			return fmt.Errorf("Please select at least one date")
		}
		if d.StartTime == nil {
			return fmt.Errorf("Start time is required")
		}
		if d.EndTime == nil {
			return fmt.Errorf("End time is required")
		}
	case StepLocation:
		// Empty address is the "unset" marker; (0,0) coordinates with a
		// real address are a legal place.
		if !d.Location.IsSet() {
			return fmt.Errorf("Location is required")
		}
	case StepMedia:
		if !d.HasBanner() {
			return fmt.Errorf("Please upload a banner image")
		}
		if d.IsTicketed && len(d.Tickets) == 0 {
			return fmt.Errorf("Please add at least one ticket")
		}
	case StepExtras, StepReview:
		// No required fields.
	}
	return nil
}
