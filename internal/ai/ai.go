// Package ai produces draft itineraries. Client talks to an OpenAI-compatible
// chat completions endpoint; Mock returns a deterministic itinerary offline.
package ai

import (
	"context"

	"github.com/pkordes/tripplanner/internal/domain"
)

// Generator drafts an itinerary for a generation request.
type Generator interface {
	Generate(ctx context.Context, cmd domain.GenerateCommand) (domain.PlanDetails, error)

	// Model names the model recorded on the generation row.
	Model() string
}
