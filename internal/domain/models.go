package domain

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// Suit is one of the four French suits.
type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

// Suits lists the suits in canonical deck order.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Rank is a card value as printed on the card face.
type Rank string

const (
	Ace   Rank = "A"
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
)

// Ranks lists the ranks in canonical deck order.
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// Card is an immutable playing card. Two cards are equal when suit and rank match.
type Card struct {
	Suit Suit `json:"suit" yaml:"suit"`
	Rank Rank `json:"rank" yaml:"rank"`
}

// Element is one of the five mission building blocks.
type Element string

const (
	Location Element = "location"
	Goal     Element = "goal"
	Object   Element = "object"
	Obstacle Element = "obstacle"
	Twist    Element = "twist"
)

// Elements lists every element in the fixed resolution order.
var Elements = []Element{Location, Goal, Object, Obstacle, Twist}

// Valid reports whether e is one of the five known elements.
func (e Element) Valid() bool {
	switch e {
	case Location, Goal, Object, Obstacle, Twist:
		return true
	}
	return false
}
