package domain

// PlanDetails is the structured itinerary of a plan. It is stored as JSONB and
// echoed to clients as-is, so the JSON tags are the wire format.
type PlanDetails struct {
	Days               []Day          `json:"days,omitempty"`
	Accommodation      *Accommodation `json:"accommodation,omitempty"`
	TotalEstimatedCost *float64       `json:"total_estimated_cost,omitempty"`
	Notes              *string        `json:"notes,omitempty"`
}

// IsEmpty reports whether no itinerary key was supplied at all.
// An explicit empty days list ("days": []) is not empty in this sense.
func (d PlanDetails) IsEmpty() bool {
	return d.Days == nil &&
		d.Accommodation == nil &&
		d.TotalEstimatedCost == nil &&
		d.Notes == nil
}

// Renumber rewrites day ordinals so they run 1..n in list order.
func (d *PlanDetails) Renumber() {
	for i := range d.Days {
		d.Days[i].Day = i + 1
	}
}

// Day is one calendar day of the itinerary.
type Day struct {
	Day        int        `json:"day"`
	Date       string     `json:"date"` // "2006-01-02"
	Activities []Activity `json:"activities"`
}

// Activity is a single scheduled item within a day.
type Activity struct {
	Time          string   `json:"time"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Location      string   `json:"location"`
	Duration      *string  `json:"duration,omitempty"`
	EstimatedCost *float64 `json:"estimated_cost,omitempty"`
	Category      *string  `json:"category,omitempty"`
}

// Accommodation is the optional single place to stay for the trip.
type Accommodation struct {
	Name             string   `json:"name"`
	Address          string   `json:"address"`
	CheckIn          string   `json:"check_in"`
	CheckOut         string   `json:"check_out"`
	EstimatedCost    *float64 `json:"estimated_cost,omitempty"`
	BookingReference *string  `json:"booking_reference,omitempty"`
}
