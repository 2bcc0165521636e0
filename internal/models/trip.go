package models

import "time"

// Participant is one member of a trip.
// The id is opaque and unique within the trip; the name is display-only
// and may be edited after expenses reference the participant.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Category is a spending tag. Icon and Color are presentation hints kept
// alongside the name so a trip carries its own registry.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// DefaultCategories returns the registry a new trip starts with.
func DefaultCategories() []Category {
	return []Category{
		{ID: "food", Name: "Food", Icon: "Utensils", Color: "#F59E0B"},
		{ID: "transport", Name: "Transport", Icon: "Car", Color: "#3B82F6"},
		{ID: "shopping", Name: "Shopping", Icon: "ShoppingBag", Color: "#EC4899"},
		{ID: "accommodation", Name: "Accommodation", Icon: "Bed", Color: "#8B5CF6"},
		{ID: "attractions", Name: "Attractions", Icon: "Ticket", Color: "#10B981"},
		{ID: "general", Name: "General", Icon: "Zap", Color: "#6B7280"},
	}
}

// Trip is the aggregate the engine operates on. Participant order is
// significant: allocation remainders and settlement tie-breaks follow it.
type Trip struct {
	ID           string        `json:"id"`
	Destination  string        `json:"destination"`
	BaseCurrency string        `json:"baseCurrency"`
	TripCurrency string        `json:"tripCurrency"`
	Participants []Participant `json:"participants"`
	Expenses     []Expense     `json:"expenses"`
	Categories   []Category    `json:"categories"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// Participant returns the participant with the given id, or nil.
func (t *Trip) Participant(id string) *Participant {
	for i := range t.Participants {
		if t.Participants[i].ID == id {
			return &t.Participants[i]
		}
	}
	return nil
}

// HasParticipant reports whether the id belongs to this trip.
func (t *Trip) HasParticipant(id string) bool {
	return t.Participant(id) != nil
}

// ParticipantIDs returns the participant ids in trip order.
func (t *Trip) ParticipantIDs() []string {
	ids := make([]string, len(t.Participants))
	for i, p := range t.Participants {
		ids[i] = p.ID
	}
	return ids
}

// ParticipantReferenced reports whether any expense names the participant
// as payer or beneficiary. Referenced participants cannot be removed.
func (t *Trip) ParticipantReferenced(id string) bool {
	for i := range t.Expenses {
		e := &t.Expenses[i]
		if e.PaidBy == id {
			return true
		}
		for _, p := range e.Payers {
			if p.ParticipantID == id {
				return true
			}
		}
		for _, s := range e.Splits {
			if s.ParticipantID == id {
				return true
			}
		}
	}
	return false
}

// Normalize applies expense-level normalization to every expense.
func (t *Trip) Normalize() {
	for i := range t.Expenses {
		t.Expenses[i].Normalize()
	}
}
