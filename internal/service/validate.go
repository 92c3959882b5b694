package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkordes/tripplanner/internal/domain"
)

// Validation messages. Handlers echo them to clients verbatim.
const (
	msgEndBeforeStart       = "End date must be on or after start date"
	msgPeopleCountMin       = "People count must be at least 1"
	msgPlanDetailsEmpty     = "Plan details cannot be empty"
	msgPlanNoDays           = "Plan must contain at least one day"
	msgSourceInvalid        = "Source must be either 'ai' or 'ai-edited'"
	msgNoUpdateFields       = "At least one field must be provided for update"
	msgDestinationEmpty     = "Destination cannot be empty"
	msgPeopleCountPositive  = "People count must be a positive integer (>= 1)"
	msgBudgetTypeEmpty      = "Budget type cannot be empty"
	msgPlanDetailsNoDays    = "Plan details must contain at least one day"
	msgDayWithoutActivities = "Day %d must have at least one activity"
	msgGenerationReference  = "The provided generation_id does not exist or does not belong to you"
)

// ValidateAccept checks an accept command and returns the first violated
// rule as a *domain.ValidationError. It never touches the store.
func ValidateAccept(cmd domain.AcceptPlanCommand) error {
	if cmd.EndDate.Before(cmd.StartDate) {
		return domain.NewValidationError("end_date", msgEndBeforeStart)
	}
	if cmd.PeopleCount < 1 {
		return domain.NewValidationError("people_count", msgPeopleCountMin)
	}
	if cmd.PlanDetails == nil || cmd.PlanDetails.IsEmpty() {
		return domain.NewValidationError("plan_details", msgPlanDetailsEmpty)
	}
	if len(cmd.PlanDetails.Days) == 0 {
		return domain.NewValidationError("plan_details", msgPlanNoDays)
	}
	if !cmd.Source.Valid() {
		return domain.NewValidationError("source", msgSourceInvalid)
	}
	return nil
}

// ValidateUpdate checks a partial update and returns the first violated rule.
//
// The date order is only compared when both dates arrive in the same
// request; a lone end_date is not checked against the stored start_date.
func ValidateUpdate(cmd domain.UpdatePlanCommand) error {
	if !cmd.HasChanges() {
		return domain.NewValidationError("general", msgNoUpdateFields)
	}
	if cmd.Destination != nil && strings.TrimSpace(*cmd.Destination) == "" {
		return domain.NewValidationError("destination", msgDestinationEmpty)
	}
	if cmd.StartDate != nil && cmd.EndDate != nil && cmd.EndDate.Before(*cmd.StartDate) {
		return domain.NewValidationError("end_date", msgEndBeforeStart)
	}
	if cmd.PeopleCount != nil && !wholePositive(*cmd.PeopleCount) {
		return domain.NewValidationError("people_count", msgPeopleCountPositive)
	}
	if cmd.BudgetType != nil && strings.TrimSpace(*cmd.BudgetType) == "" {
		return domain.NewValidationError("budget_type", msgBudgetTypeEmpty)
	}
	if cmd.PlanDetails != nil {
		if len(cmd.PlanDetails.Days) == 0 {
			return domain.NewValidationError("plan_details", msgPlanDetailsNoDays)
		}
		for _, day := range cmd.PlanDetails.Days {
			if len(day.Activities) == 0 {
				return domain.NewValidationError("plan_details", fmt.Sprintf(msgDayWithoutActivities, day.Day))
			}
		}
	}
	return nil
}

func wholePositive(v float64) bool {
	return v >= 1 && v <= math.MaxInt32 && v == math.Trunc(v)
}
