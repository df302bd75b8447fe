package domain

import (
	"fmt"
	"time"
)

// ResolveElement looks up the narrative text for card as element e. The suit
// modifier, when present, goes on its own line. A missing table entry yields
// an empty Result.
func ResolveElement(e Element, card Card, rs *Ruleset) ElementCard {
	t := rs.Tables[e]

	var text, modifier string
	if e == Object {
		text = t.BySuit[card.Suit][card.Rank]
		if label := t.SuitLabels[card.Suit]; label != "" {
			modifier = "(" + label + ")"
		}
	} else {
		text = t.Ranks[card.Rank]
		modifier = t.SuitModifiers[card.Suit]
	}

	if text != "" && modifier != "" {
		text += "\n" + modifier
	}
	return ElementCard{Element: e, Card: card, Result: text}
}

// DetectAdditionalDraws lists the extra draws a trigger card demands.
// Five-element rulesets check the suit first and then the rank; the two are
// additive. Three-element rulesets check the rank only.
func DetectAdditionalDraws(trigger Card, rs *Ruleset) []DrawRequirement {
	var reqs []DrawRequirement
	if rs.Family == FiveElement {
		reqs = append(reqs, rs.Triggers.Suits[trigger.Suit]...)
	}
	reqs = append(reqs, rs.Triggers.Ranks[trigger.Rank]...)
	return reqs
}

// GenerateMission resolves primary[i] as kinds[i] and replays additional
// cards against the detected requirements, one card per requirement in
// order. Running out of additional cards leaves the remaining requirements
// unfulfilled; surplus cards are ignored. An empty kinds falls back to the
// ruleset's default elements.
func GenerateMission(primary []Card, rs *Ruleset, kinds []Element, additional []Card) (Mission, error) {
	kinds = rs.elementsOrDefault(kinds)
	if len(primary) < len(kinds) {
		return Mission{}, fmt.Errorf("%w: need %d primary cards, got %d", ErrNotEnoughCards, len(kinds), len(primary))
	}

	byElement := make(map[Element]Card, len(kinds))
	for i, e := range kinds {
		if !e.Valid() {
			return Mission{}, fmt.Errorf("%w: %q", ErrUnknownElement, e)
		}
		byElement[e] = primary[i]
	}

	m := Mission{CreatedAt: time.Now().UTC()}
	for _, e := range Elements {
		slot := m.Primary(e)
		card, ok := byElement[e]
		if !ok {
			*slot = ElementCard{Element: e}
			continue
		}
		*slot = ResolveElement(e, card, rs)
		slot.ID = PrimaryID(e)
	}

	m.Requirements = []DrawRequirement{}
	if card, ok := byElement[rs.TriggerElement()]; ok {
		m.Requirements = append(m.Requirements, DetectAdditionalDraws(card, rs)...)
	}

	n := min(len(additional), len(m.Requirements))
	if err := checkCards(append(primary[:len(kinds):len(kinds)], additional[:n]...), nil); err != nil {
		return Mission{}, err
	}

	for i := 0; i < n; i++ {
		req := m.Requirements[i]
		card := additional[i]

		ec := ResolveElement(req.Element, card, rs)
		ec.ID = AdditionalID(req.Element, i, i)

		var nested []DrawRequirement
		if req.Element == Twist {
			nested = DetectAdditionalDraws(card, rs)
		}

		group := m.group(req.Element)
		*group = append(*group, AdditionalElement{
			Card:              ec,
			RequiresMoreDraws: len(nested) > 0,
			Requirements:      nested,
		})
	}

	return m, nil
}

// Redraw replaces the card behind id and returns the regenerated mission.
// Requirement detection is rerun from the primaries; additional cards are
// replayed in their original requirement order, and nested elements survive
// wherever their parent kept the same identifier and card.
func Redraw(m Mission, id ElementID, card Card, rs *Ruleset, kinds []Element) (Mission, error) {
	if err := checkCards([]Card{card}, m.Cards()); err != nil {
		return Mission{}, err
	}
	kinds = rs.elementsOrDefault(kinds)

	primary := make([]Card, len(kinds))
	for i, e := range kinds {
		p := m.Primary(e)
		if p == nil {
			return Mission{}, fmt.Errorf("%w: %q", ErrUnknownElement, e)
		}
		primary[i] = p.Card
	}
	fulfilled := m.fulfilled()
	additional := m.AdditionalCards()

	switch id.Role {
	case RolePrimary:
		idx := indexOf(kinds, id.Element)
		if idx < 0 {
			return Mission{}, fmt.Errorf("%w: %s", ErrUnknownElement, id)
		}
		primary[idx] = card
	case RoleAdditional:
		idx := -1
		for i, ae := range fulfilled {
			if ae.Card.ID.Equal(id) {
				idx = i
			}
		}
		if idx < 0 {
			return Mission{}, fmt.Errorf("%w: %s", ErrUnknownElement, id)
		}
		additional[idx] = card
	case RoleNested:
		return redrawNested(m, id, card, rs)
	default:
		return Mission{}, fmt.Errorf("%w: %s", ErrUnknownElement, id)
	}

	out, err := GenerateMission(primary, rs, kinds, additional)
	if err != nil {
		return Mission{}, err
	}
	out.CreatedAt = m.CreatedAt

	old := make(map[string]AdditionalElement, len(fulfilled))
	for _, ae := range fulfilled {
		old[ae.Card.ID.String()] = ae
	}
	for _, e := range Elements {
		group := *out.group(e)
		for i := range group {
			prev, ok := old[group[i].Card.ID.String()]
			if ok && prev.Card.Card == group[i].Card.Card && prev.Card.Element == group[i].Card.Element {
				group[i].Nested = cloneAdditional(prev.Nested)
			}
		}
	}
	return out, nil
}

func redrawNested(m Mission, id ElementID, card Card, rs *Ruleset) (Mission, error) {
	if id.Parent == nil {
		return Mission{}, fmt.Errorf("%w: %s", ErrUnknownElement, id)
	}
	out := m.Clone()
	parent := out.findAdditional(*id.Parent)
	if parent == nil || id.Card >= len(parent.Nested) {
		return Mission{}, fmt.Errorf("%w: %s", ErrUnknownElement, id)
	}
	ec := ResolveElement(parent.Card.Element, card, rs)
	ec.ID = id
	parent.Nested[id.Card] = AdditionalElement{Card: ec, Requirements: []DrawRequirement{}}
	return out, nil
}

// FulfillNested resolves one card per nested requirement of the additional
// element id, each as the parent's element with no further nesting.
func FulfillNested(m Mission, id ElementID, cards []Card, rs *Ruleset) (Mission, error) {
	out := m.Clone()
	parent := out.findAdditional(id)
	if parent == nil {
		return Mission{}, fmt.Errorf("%w: %s", ErrUnknownElement, id)
	}
	if !parent.Pending() {
		return Mission{}, fmt.Errorf("%w: %s", ErrNoNestedDraws, id)
	}
	need := len(parent.Requirements)
	if len(cards) < need {
		return Mission{}, fmt.Errorf("%w: need %d nested cards, got %d", ErrNotEnoughCards, need, len(cards))
	}
	cards = cards[:need]
	if err := checkCards(cards, m.Cards()); err != nil {
		return Mission{}, err
	}

	nested := make([]AdditionalElement, need)
	for i, c := range cards {
		ec := ResolveElement(parent.Card.Element, c, rs)
		ec.ID = NestedID(parent.Card.ID, i)
		nested[i] = AdditionalElement{Card: ec, Requirements: []DrawRequirement{}}
	}
	parent.Nested = nested
	return out, nil
}

func (m *Mission) findAdditional(id ElementID) *AdditionalElement {
	if id.Role != RoleAdditional {
		return nil
	}
	group := m.group(id.Element)
	if group == nil {
		return nil
	}
	for i := range *group {
		if (*group)[i].Card.ID.Equal(id) {
			return &(*group)[i]
		}
	}
	return nil
}

// checkCards rejects invalid cards, repeats within cards, and cards already in held.
func checkCards(cards, held []Card) error {
	seen := make(map[Card]struct{}, len(cards)+len(held))
	for _, c := range held {
		seen[c] = struct{}{}
	}
	for _, c := range cards {
		if !c.Valid() {
			return fmt.Errorf("%w: %+v", ErrInvalidCard, c)
		}
		if _, dup := seen[c]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

func indexOf(kinds []Element, e Element) int {
	for i, k := range kinds {
		if k == e {
			return i
		}
	}
	return -1
}
