package domain

import (
	"slices"
	"sort"
	"time"
)

// ElementCard is a resolved mission element. Elements a game does not use
// are placeholders with a zero Card and empty Result.
type ElementCard struct {
	Element Element   `json:"element"`
	Card    Card      `json:"card"`
	Result  string    `json:"result"`
	ID      ElementID `json:"id"`
}

// IsPlaceholder reports whether the element was left out by the game.
func (ec ElementCard) IsPlaceholder() bool {
	return ec.Result == ""
}

// DrawRequirement asks for one extra card of Element.
type DrawRequirement struct {
	Element Element `json:"element" yaml:"element"`
	Reason  string  `json:"reason" yaml:"reason"`
	Label   string  `json:"label" yaml:"label"`
}

// AdditionalElement is an element drawn to satisfy a requirement. It may in
// turn demand nested draws.
type AdditionalElement struct {
	Card              ElementCard         `json:"card"`
	RequiresMoreDraws bool                `json:"requires_more_draws"`
	Requirements      []DrawRequirement   `json:"requirements"`
	Nested            []AdditionalElement `json:"nested,omitempty"`
}

// Pending reports whether nested draws are still owed.
func (ae AdditionalElement) Pending() bool {
	return ae.RequiresMoreDraws && len(ae.Nested) == 0
}

// Mission is a generated mission. Treat it as a value: mutations return a
// new Mission.
type Mission struct {
	Location ElementCard `json:"location"`
	Goal     ElementCard `json:"goal"`
	Object   ElementCard `json:"object"`
	Obstacle ElementCard `json:"obstacle"`
	Twist    ElementCard `json:"twist"`

	AdditionalLocations []AdditionalElement `json:"additional_locations,omitempty"`
	AdditionalGoals     []AdditionalElement `json:"additional_goals,omitempty"`
	AdditionalObjects   []AdditionalElement `json:"additional_objects,omitempty"`
	AdditionalObstacles []AdditionalElement `json:"additional_obstacles,omitempty"`
	AdditionalTwists    []AdditionalElement `json:"additional_twists,omitempty"`

	Requirements []DrawRequirement `json:"requirements"`
	CreatedAt    time.Time         `json:"created_at"`
}

// Primary returns the primary element for e.
func (m *Mission) Primary(e Element) *ElementCard {
	switch e {
	case Location:
		return &m.Location
	case Goal:
		return &m.Goal
	case Object:
		return &m.Object
	case Obstacle:
		return &m.Obstacle
	case Twist:
		return &m.Twist
	}
	return nil
}

// Primaries returns the five primary elements in fixed order.
func (m Mission) Primaries() []ElementCard {
	return []ElementCard{m.Location, m.Goal, m.Object, m.Obstacle, m.Twist}
}

func (m *Mission) group(e Element) *[]AdditionalElement {
	switch e {
	case Location:
		return &m.AdditionalLocations
	case Goal:
		return &m.AdditionalGoals
	case Object:
		return &m.AdditionalObjects
	case Obstacle:
		return &m.AdditionalObstacles
	case Twist:
		return &m.AdditionalTwists
	}
	return nil
}

// Additional returns every additional element grouped by element in
// location, goal, object, obstacle, twist order.
func (m Mission) Additional() []AdditionalElement {
	var out []AdditionalElement
	for _, e := range Elements {
		out = append(out, *m.group(e)...)
	}
	return out
}

// fulfilled returns additional elements ordered by requirement index.
func (m Mission) fulfilled() []AdditionalElement {
	out := m.Additional()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Card.ID.Requirement < out[j].Card.ID.Requirement
	})
	return out
}

// AdditionalCards returns the additional cards in requirement order, the
// order GenerateMission consumes them in.
func (m Mission) AdditionalCards() []Card {
	fulfilled := m.fulfilled()
	out := make([]Card, len(fulfilled))
	for i, ae := range fulfilled {
		out[i] = ae.Card.Card
	}
	return out
}

// UnfulfilledRequirements returns the requirements no card has been drawn for.
func (m Mission) UnfulfilledRequirements() []DrawRequirement {
	n := len(m.Additional())
	if n >= len(m.Requirements) {
		return nil
	}
	return append([]DrawRequirement(nil), m.Requirements[n:]...)
}

// Pending returns additional elements still owed nested draws.
func (m Mission) Pending() []AdditionalElement {
	var out []AdditionalElement
	for _, ae := range m.Additional() {
		if ae.Pending() {
			out = append(out, ae)
		}
	}
	return out
}

// Cards returns every card the mission holds: primaries, additional and nested.
func (m Mission) Cards() []Card {
	var out []Card
	for _, p := range m.Primaries() {
		if !p.IsPlaceholder() {
			out = append(out, p.Card)
		}
	}
	var walk func([]AdditionalElement)
	walk = func(list []AdditionalElement) {
		for _, ae := range list {
			out = append(out, ae.Card.Card)
			walk(ae.Nested)
		}
	}
	walk(m.Additional())
	return out
}

// Clone returns a deep copy.
func (m Mission) Clone() Mission {
	out := m
	out.Requirements = slices.Clone(m.Requirements)
	for _, e := range Elements {
		*out.group(e) = cloneAdditional(*m.group(e))
	}
	return out
}

// cloneAdditional deep-copies list, keeping nil slices nil.
func cloneAdditional(list []AdditionalElement) []AdditionalElement {
	out := slices.Clone(list)
	for i := range out {
		out[i].Requirements = slices.Clone(out[i].Requirements)
		out[i].Nested = cloneAdditional(out[i].Nested)
	}
	return out
}
