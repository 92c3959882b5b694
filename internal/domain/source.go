package domain

// PlanSource records whether a plan is still the generator's output or has
// since been edited by its owner.
type PlanSource string

// Plan sources.
const (
	SourceAI       PlanSource = "ai"
	SourceAIEdited PlanSource = "ai-edited"
)

// Valid reports whether s is one of the two known sources.
func (s PlanSource) Valid() bool {
	return s == SourceAI || s == SourceAIEdited
}

// AfterDetailsEdit returns the source a plan moves to when its itinerary is
// edited, and whether that is a change. The only edge is ai -> ai-edited;
// ai-edited is terminal.
func (s PlanSource) AfterDetailsEdit() (PlanSource, bool) {
	if s == SourceAI {
		return SourceAIEdited, true
	}
	return s, false
}
