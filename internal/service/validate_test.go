package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripplanner/internal/domain"
	"github.com/pkordes/tripplanner/internal/service"
)

// requireValidation asserts err is a *domain.ValidationError for field and
// returns it for further checks.
func requireValidation(t *testing.T, err error, field string) *domain.ValidationError {
	t.Helper()
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "expected *domain.ValidationError, got %v", err)
	assert.Equal(t, field, ve.Field)
	return ve
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func validDetails() *domain.PlanDetails {
	return &domain.PlanDetails{Days: []domain.Day{{
		Day:  1,
		Date: "2025-06-01",
		Activities: []domain.Activity{{
			Time: "10:00", Title: "Louvre", Description: "Visit", Location: "Paris",
		}},
	}}}
}

func validAccept() domain.AcceptPlanCommand {
	return domain.AcceptPlanCommand{
		Destination: "Paris",
		StartDate:   date(2025, 6, 1),
		EndDate:     date(2025, 6, 3),
		PeopleCount: 2,
		BudgetType:  "medium",
		PlanDetails: validDetails(),
		Source:      domain.SourceAI,
	}
}

// ---- ValidateAccept --------------------------------------------------------

func TestValidateAccept_Valid(t *testing.T) {
	assert.NoError(t, service.ValidateAccept(validAccept()))

	sameDay := validAccept()
	sameDay.EndDate = sameDay.StartDate
	assert.NoError(t, service.ValidateAccept(sameDay), "one-day trips are valid")

	edited := validAccept()
	edited.Source = domain.SourceAIEdited
	assert.NoError(t, service.ValidateAccept(edited), "ai-edited may be set directly at accept")
}

func TestValidateAccept_Rules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.AcceptPlanCommand)
		field   string
		message string
	}{
		{
			name:    "end before start",
			mutate:  func(c *domain.AcceptPlanCommand) { c.EndDate = c.StartDate.AddDate(0, 0, -1) },
			field:   "end_date",
			message: "End date must be on or after start date",
		},
		{
			name:    "zero people",
			mutate:  func(c *domain.AcceptPlanCommand) { c.PeopleCount = 0 },
			field:   "people_count",
			message: "People count must be at least 1",
		},
		{
			name:    "negative people",
			mutate:  func(c *domain.AcceptPlanCommand) { c.PeopleCount = -3 },
			field:   "people_count",
			message: "People count must be at least 1",
		},
		{
			name:    "missing plan details",
			mutate:  func(c *domain.AcceptPlanCommand) { c.PlanDetails = nil },
			field:   "plan_details",
			message: "Plan details cannot be empty",
		},
		{
			name:    "plan details without keys",
			mutate:  func(c *domain.AcceptPlanCommand) { c.PlanDetails = &domain.PlanDetails{} },
			field:   "plan_details",
			message: "Plan details cannot be empty",
		},
		{
			name:    "empty days",
			mutate:  func(c *domain.AcceptPlanCommand) { c.PlanDetails = &domain.PlanDetails{Days: []domain.Day{}} },
			field:   "plan_details",
			message: "Plan must contain at least one day",
		},
		{
			name: "days absent but notes present",
			mutate: func(c *domain.AcceptPlanCommand) {
				c.PlanDetails = &domain.PlanDetails{Notes: ptr("just notes")}
			},
			field:   "plan_details",
			message: "Plan must contain at least one day",
		},
		{
			name:    "unknown source",
			mutate:  func(c *domain.AcceptPlanCommand) { c.Source = "manual" },
			field:   "source",
			message: "Source must be either 'ai' or 'ai-edited'",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := validAccept()
			tc.mutate(&cmd)

			err := service.ValidateAccept(cmd)

			assert.ErrorIs(t, err, domain.ErrValidation)
			ve := requireValidation(t, err, tc.field)
			assert.Equal(t, tc.message, ve.Message)
		})
	}
}

// Rules are checked in order and the first failure wins.
func TestValidateAccept_FailFastOrder(t *testing.T) {
	cmd := validAccept()
	cmd.EndDate = cmd.StartDate.AddDate(0, 0, -1)
	cmd.PeopleCount = 0
	cmd.Source = "bogus"

	requireValidation(t, service.ValidateAccept(cmd), "end_date")
}

// ---- ValidateUpdate --------------------------------------------------------

func TestValidateUpdate_NoFields(t *testing.T) {
	err := service.ValidateUpdate(domain.UpdatePlanCommand{})

	ve := requireValidation(t, err, "general")
	assert.Equal(t, "At least one field must be provided for update", ve.Message)
}

func TestValidateUpdate_Rules(t *testing.T) {
	tests := []struct {
		name    string
		cmd     domain.UpdatePlanCommand
		field   string
		message string
	}{
		{
			name:    "blank destination",
			cmd:     domain.UpdatePlanCommand{Destination: ptr("   ")},
			field:   "destination",
			message: "Destination cannot be empty",
		},
		{
			name:    "both dates reversed",
			cmd:     domain.UpdatePlanCommand{StartDate: ptr(date(2025, 6, 5)), EndDate: ptr(date(2025, 6, 1))},
			field:   "end_date",
			message: "End date must be on or after start date",
		},
		{
			name:    "zero people",
			cmd:     domain.UpdatePlanCommand{PeopleCount: ptr(0.0)},
			field:   "people_count",
			message: "People count must be a positive integer (>= 1)",
		},
		{
			name:    "blank budget",
			cmd:     domain.UpdatePlanCommand{BudgetType: ptr("\t")},
			field:   "budget_type",
			message: "Budget type cannot be empty",
		},
		{
			name:    "empty days",
			cmd:     domain.UpdatePlanCommand{PlanDetails: &domain.PlanDetails{Days: []domain.Day{}}},
			field:   "plan_details",
			message: "Plan details must contain at least one day",
		},
		{
			name: "second day without activities",
			cmd: domain.UpdatePlanCommand{PlanDetails: &domain.PlanDetails{Days: []domain.Day{
				validDetails().Days[0],
				{Day: 2, Date: "2025-06-02", Activities: []domain.Activity{}},
			}}},
			field:   "plan_details",
			message: "Day 2 must have at least one activity",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := service.ValidateUpdate(tc.cmd)

			ve := requireValidation(t, err, tc.field)
			assert.Equal(t, tc.message, ve.Message)
		})
	}
}

// A lone end_date is not compared with the stored start_date.
func TestValidateUpdate_SingleDateNotCrossChecked(t *testing.T) {
	err := service.ValidateUpdate(domain.UpdatePlanCommand{EndDate: ptr(date(1999, 1, 1))})

	assert.NoError(t, err)
}

func TestValidateUpdate_Valid(t *testing.T) {
	err := service.ValidateUpdate(domain.UpdatePlanCommand{
		Destination: ptr("Lyon"),
		StartDate:   ptr(date(2025, 6, 1)),
		EndDate:     ptr(date(2025, 6, 1)),
		PeopleCount: ptr(1.0),
		BudgetType:  ptr("low"),
		PlanDetails: validDetails(),
	})

	assert.NoError(t, err)
}

func TestValidateUpdate_FractionalPeopleCount(t *testing.T) {
	err := service.ValidateUpdate(domain.UpdatePlanCommand{PeopleCount: ptr(2.5)})

	ve := requireValidation(t, err, "people_count")
	assert.Equal(t, "People count must be a positive integer (>= 1)", ve.Message)
}

// A fractional count is rule 4, so earlier rules still win.
func TestValidateUpdate_FractionalPeopleCountKeepsRuleOrder(t *testing.T) {
	tests := []struct {
		name  string
		cmd   domain.UpdatePlanCommand
		field string
	}{
		{
			name:  "blank destination first",
			cmd:   domain.UpdatePlanCommand{Destination: ptr("  "), PeopleCount: ptr(1.5)},
			field: "destination",
		},
		{
			name:  "reversed dates first",
			cmd:   domain.UpdatePlanCommand{StartDate: ptr(date(2025, 6, 5)), EndDate: ptr(date(2025, 6, 1)), PeopleCount: ptr(2.5)},
			field: "end_date",
		},
		{
			name:  "fractional before blank budget",
			cmd:   domain.UpdatePlanCommand{PeopleCount: ptr(2.5), BudgetType: ptr("")},
			field: "people_count",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			requireValidation(t, service.ValidateUpdate(tc.cmd), tc.field)
		})
	}
}
