package domain

// ExportRow is a single row in the itinerary export.
// It is a flat, denormalized view: one row per activity, with plan and day
// fields repeated for every activity. A plan with no days yields one row with
// zero day and activity fields; a day with no activities yields one row with
// zero activity fields.
type ExportRow struct {
	// Plan fields, repeated for every activity of the plan.
	PlanID      string
	Destination string
	StartDate   string // "2006-01-02"
	EndDate     string // "2006-01-02"
	PeopleCount int
	BudgetType  string

	// Day fields. Day is 0 when the plan has no days.
	Day  int
	Date string

	// Activity fields. Empty when the day has no activities.
	Time          string
	Title         string
	Location      string
	Category      string
	EstimatedCost *float64
}
