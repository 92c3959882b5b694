package ai

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/tripplanner/internal/domain"
)

const systemPrompt = `You are a travel planner. Reply with a single JSON object and nothing else.
The object has the keys "days", "accommodation", "total_estimated_cost" and "notes".
"days" is a list of {"day": n, "date": "YYYY-MM-DD", "activities": [...]}, one per trip day.
Every activity has "time" (HH:MM), "title", "description", "location", and may have
"duration", "estimated_cost" and "category".
"accommodation" has "name", "address", "check_in", "check_out" and may have "estimated_cost".
Every day has at least one activity.`

// userPrompt renders the trip parameters the model plans around.
func userPrompt(cmd domain.GenerateCommand) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Destination: %s\n", cmd.Destination)
	fmt.Fprintf(&b, "Dates: %s to %s (%d days)\n",
		cmd.StartDate.Format(time.DateOnly), cmd.EndDate.Format(time.DateOnly), cmd.Days())
	fmt.Fprintf(&b, "Travellers: %d\n", cmd.PeopleCount)
	fmt.Fprintf(&b, "Budget: %s\n", cmd.BudgetType)
	if len(cmd.Preferences) > 0 {
		fmt.Fprintf(&b, "Preferences: %s\n", strings.Join(cmd.Preferences, ", "))
	}
	if notes := strings.TrimSpace(cmd.Notes); notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", notes)
	}
	return b.String()
}
