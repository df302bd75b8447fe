package domain

import (
	"errors"
	"fmt"
)

// Family selects which trigger card is inspected and which triggers apply.
type Family string

const (
	// FiveElement inspects the Twist card's suit and rank.
	FiveElement Family = "five-element"
	// ThreeElement inspects the Object card's rank only.
	ThreeElement Family = "three-element"
)

// Table holds the narrative text for one element.
// Object text is keyed by suit then rank (BySuit) and labelled per suit;
// every other element uses Ranks plus an optional SuitModifiers line.
type Table struct {
	Ranks         map[Rank]string          `yaml:"ranks"`
	SuitModifiers map[Suit]string          `yaml:"suit_modifiers"`
	BySuit        map[Suit]map[Rank]string `yaml:"by_suit"`
	SuitLabels    map[Suit]string          `yaml:"suit_labels"`
}

// Triggers maps trigger-card suits and ranks to the extra draws they demand.
type Triggers struct {
	Suits map[Suit][]DrawRequirement `yaml:"suits"`
	Ranks map[Rank][]DrawRequirement `yaml:"ranks"`
}

// Ruleset is the immutable lookup data for one game.
type Ruleset struct {
	Family   Family            `yaml:"family"`
	Tables   map[Element]Table `yaml:"tables"`
	Triggers Triggers          `yaml:"triggers"`
}

// TriggerElement is the element whose card drives additional-draw detection.
func (rs *Ruleset) TriggerElement() Element {
	if rs.Family == ThreeElement {
		return Object
	}
	return Twist
}

// HasElement reports whether the ruleset carries a table for e.
func (rs *Ruleset) HasElement(e Element) bool {
	_, ok := rs.Tables[e]
	return ok
}

// DefaultElements is used when a caller does not name the active elements:
// all five when the ruleset defines twists, otherwise location, goal, object.
func (rs *Ruleset) DefaultElements() []Element {
	if rs.HasElement(Twist) {
		return append([]Element(nil), Elements...)
	}
	return []Element{Location, Goal, Object}
}

func (rs *Ruleset) elementsOrDefault(kinds []Element) []Element {
	if len(kinds) == 0 {
		return rs.DefaultElements()
	}
	return kinds
}

// Validate checks that every active element has text for all 52 cards and
// that the triggers fit the family.
func (rs *Ruleset) Validate(kinds []Element) error {
	var errs []error
	switch rs.Family {
	case FiveElement, ThreeElement:
	default:
		errs = append(errs, fmt.Errorf("unknown family %q", rs.Family))
	}

	seen := make(map[Element]bool, len(kinds))
	for _, e := range rs.elementsOrDefault(kinds) {
		if !e.Valid() {
			errs = append(errs, fmt.Errorf("unknown element %q", e))
			continue
		}
		if seen[e] {
			errs = append(errs, fmt.Errorf("element %q listed twice", e))
		}
		seen[e] = true
		errs = append(errs, rs.validateTable(e)...)
	}
	if !seen[rs.TriggerElement()] && len(rs.Triggers.Suits)+len(rs.Triggers.Ranks) > 0 {
		errs = append(errs, fmt.Errorf("triggers defined but %s is not an active element", rs.TriggerElement()))
	}

	if rs.Family == ThreeElement && len(rs.Triggers.Suits) > 0 {
		errs = append(errs, errors.New("three-element rulesets take no suit triggers"))
	}
	for s, reqs := range rs.Triggers.Suits {
		if !(Card{Suit: s, Rank: Ace}).Valid() {
			errs = append(errs, fmt.Errorf("suit trigger on unknown suit %q", s))
		}
		if len(reqs) > 1 {
			errs = append(errs, fmt.Errorf("suit %s triggers %d draws, at most one allowed", s, len(reqs)))
		}
		errs = append(errs, validateRequirements(reqs)...)
	}
	for r, reqs := range rs.Triggers.Ranks {
		if !(Card{Suit: Hearts, Rank: r}).Valid() {
			errs = append(errs, fmt.Errorf("rank trigger on unknown rank %q", r))
		}
		errs = append(errs, validateRequirements(reqs)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRuleset, errors.Join(errs...))
	}
	return nil
}

func (rs *Ruleset) validateTable(e Element) []error {
	t, ok := rs.Tables[e]
	if !ok {
		return []error{fmt.Errorf("no table for %s", e)}
	}
	var errs []error
	for _, s := range Suits {
		for _, r := range Ranks {
			if e == Object {
				if t.BySuit[s][r] == "" {
					errs = append(errs, fmt.Errorf("%s: no text for %s of %s", e, r, s))
				}
				continue
			}
			if t.Ranks[r] == "" {
				errs = append(errs, fmt.Errorf("%s: no text for rank %s", e, r))
			}
		}
	}
	if e != Object {
		// rank text is shared across suits; report each missing rank once
		errs = dedupe(errs)
	}
	return errs
}

func validateRequirements(reqs []DrawRequirement) []error {
	var errs []error
	for _, req := range reqs {
		if !req.Element.Valid() {
			errs = append(errs, fmt.Errorf("trigger draws unknown element %q", req.Element))
		}
	}
	return errs
}

func dedupe(errs []error) []error {
	seen := make(map[string]bool, len(errs))
	out := errs[:0]
	for _, err := range errs {
		if seen[err.Error()] {
			continue
		}
		seen[err.Error()] = true
		out = append(out, err)
	}
	return out
}
