package domain

// Participation defines how entrants take part in an event.
type Participation string

const (
	ParticipationSolo   Participation = "SOLO"
	ParticipationTeam   Participation = "TEAM"
	ParticipationHybrid Participation = "HYBRID"
)

// IsValid reports whether p is a declared participation mode.
func (p Participation) IsValid() bool {
	switch p {
	case ParticipationSolo, ParticipationTeam, ParticipationHybrid:
		return true
	}
	return false
}

// Category classifies an event for listing filters.
type Category string

const (
	CategoryTechnical     Category = "TECHNICAL"
	CategoryGeneral       Category = "GENERAL"
	CategoryCultural      Category = "CULTURAL"
	CategorySports        Category = "SPORTS"
	CategoryEsports       Category = "ESPORTS"
	CategoryMiscellaneous Category = "MISCELLANEOUS"
)

// IsValid reports whether c is a declared category.
func (c Category) IsValid() bool {
	switch c {
	case CategoryTechnical, CategoryGeneral, CategoryCultural,
		CategorySports, CategoryEsports, CategoryMiscellaneous:
		return true
	}
	return false
}

// Event represents a registerable event.
// Registered is a derived count maintained at registration time; it is kept at
// or below Limit by a conditional increment, not a database constraint.
type Event struct {
	EventID       string        `json:"eventID"`
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	Participation Participation `json:"participation"`
	Category      Category      `json:"category"`
	Limit         int           `json:"limit"`
	Registered    int           `json:"registered"`
	IsVisible     bool          `json:"isVisible"`
	Timestamps
}

// IsFull reports whether the event has reached its participant limit.
func (e *Event) IsFull() bool {
	return e.Limit > 0 && e.Registered >= e.Limit
}
