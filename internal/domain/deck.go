package domain

var suitSymbols = map[Suit]string{
	Hearts:   "♥",
	Diamonds: "♦",
	Clubs:    "♣",
	Spades:   "♠",
}

const (
	colorRed  = "#c41e3a"
	colorDark = "#2a1810"
)

// Valid reports whether the card has a known suit and rank.
func (c Card) Valid() bool {
	if _, ok := suitSymbols[c.Suit]; !ok {
		return false
	}
	for _, r := range Ranks {
		if c.Rank == r {
			return true
		}
	}
	return false
}

// String renders the card as rank plus suit symbol, e.g. "10♥".
func (c Card) String() string {
	return string(c.Rank) + suitSymbols[c.Suit]
}

// Color is the display color: red for hearts and diamonds, dark otherwise.
func (c Card) Color() string {
	if c.Suit == Hearts || c.Suit == Diamonds {
		return colorRed
	}
	return colorDark
}

// IsFace reports whether the card is a Jack, Queen or King.
func (c Card) IsFace() bool {
	return c.Rank == Jack || c.Rank == Queen || c.Rank == King
}

// NewDeck returns all 52 cards, suit-major and rank-minor.
func NewDeck() []Card {
	deck := make([]Card, 0, len(Suits)*len(Ranks))
	for _, s := range Suits {
		for _, r := range Ranks {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle returns a uniformly permuted copy of cards. The input is not modified.
func Shuffle(cards []Card, rng RNG) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Draw splits off the first n cards. A short deck yields fewer than n drawn
// cards; callers check len(drawn) before relying on a full draw.
func Draw(cards []Card, n int) (drawn, remaining []Card) {
	if n < 0 {
		n = 0
	}
	if n > len(cards) {
		n = len(cards)
	}
	drawn = append([]Card(nil), cards[:n]...)
	remaining = append([]Card(nil), cards[n:]...)
	return drawn, remaining
}

// Without returns deck minus every card in used, keeping deck order.
func Without(deck, used []Card) []Card {
	skip := make(map[Card]struct{}, len(used))
	for _, c := range used {
		skip[c] = struct{}{}
	}
	out := make([]Card, 0, len(deck))
	for _, c := range deck {
		if _, ok := skip[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}
