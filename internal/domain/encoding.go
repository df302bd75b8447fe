package domain

import (
	"fmt"
	"strings"
)

const tokenSep = ","

var suitCodes = map[Suit]string{
	Hearts:   "H",
	Diamonds: "D",
	Clubs:    "C",
	Spades:   "S",
}

var codeSuits = map[string]Suit{
	"H": Hearts,
	"D": Diamonds,
	"C": Clubs,
	"S": Spades,
}

// EncodeCard renders a card as rank plus suit letter, e.g. "10H" or "QS".
func EncodeCard(c Card) string {
	return string(c.Rank) + suitCodes[c.Suit]
}

// DecodeCard parses a token produced by EncodeCard. The second result is
// false for anything that is not a valid card.
func DecodeCard(token string) (Card, bool) {
	if len(token) < 2 {
		return Card{}, false
	}
	suit, ok := codeSuits[token[len(token)-1:]]
	if !ok {
		return Card{}, false
	}
	c := Card{Suit: suit, Rank: Rank(token[:len(token)-1])}
	if !c.Valid() {
		return Card{}, false
	}
	return c, true
}

// EncodeMission serializes the mission as comma-separated card tokens:
// non-placeholder primaries in location, goal, object, obstacle, twist order,
// then additional elements grouped the same way. Nested elements are not
// encoded.
func EncodeMission(m Mission) string {
	var tokens []string
	for _, p := range m.Primaries() {
		if !p.IsPlaceholder() {
			tokens = append(tokens, EncodeCard(p.Card))
		}
	}
	for _, ae := range m.Additional() {
		tokens = append(tokens, EncodeCard(ae.Card.Card))
	}
	return strings.Join(tokens, tokenSep)
}

// DecodeMission rebuilds a mission from EncodeMission output. Unparseable
// tokens are skipped. ErrInvalidEncoding means there is nothing to restore.
func DecodeMission(encoded string, rs *Ruleset, kinds []Element) (Mission, error) {
	kinds = rs.elementsOrDefault(kinds)
	if encoded == "" {
		return Mission{}, ErrInvalidEncoding
	}

	raw := strings.Split(encoded, tokenSep)
	if len(raw) < len(kinds) {
		return Mission{}, fmt.Errorf("%w: %d tokens for %d elements", ErrInvalidEncoding, len(raw), len(kinds))
	}
	cards := make([]Card, 0, len(raw))
	for _, tok := range raw {
		if c, ok := DecodeCard(strings.TrimSpace(tok)); ok {
			cards = append(cards, c)
		}
	}
	if len(cards) < len(kinds) {
		return Mission{}, fmt.Errorf("%w: %d valid cards for %d elements", ErrInvalidEncoding, len(cards), len(kinds))
	}

	// Primaries arrive in fixed element order; GenerateMission wants them
	// in kinds order.
	primary := make([]Card, len(kinds))
	pos := 0
	for _, e := range Elements {
		if i := indexOf(kinds, e); i >= 0 {
			primary[i] = cards[pos]
			pos++
		}
	}

	base, err := GenerateMission(primary, rs, kinds, nil)
	if err != nil {
		return Mission{}, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}
	additional := replayOrder(base.Requirements, cards[len(kinds):])

	m, err := GenerateMission(primary, rs, kinds, additional)
	if err != nil {
		return Mission{}, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}
	return m, nil
}

// replayOrder maps cards from encoded (grouped by element) order back to
// requirement order. Requirements are always fulfilled as a prefix, so the
// first len(cards) requirements tell which group each card came from.
func replayOrder(reqs []DrawRequirement, cards []Card) []Card {
	n := min(len(cards), len(reqs))
	out := make([]Card, n)
	next := 0
	for _, e := range Elements {
		for i := 0; i < n; i++ {
			if reqs[i].Element == e {
				out[i] = cards[next]
				next++
			}
		}
	}
	return out
}
