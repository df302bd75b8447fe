package domain

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// GameID identifies a supported game.
type GameID string

// Game ties a ruleset to its display metadata and active elements.
type Game struct {
	ID           GameID    `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	Logo         string    `json:"logo" yaml:"logo"`
	LogoAlt      string    `json:"logo_alt" yaml:"logo_alt"`
	Tagline      string    `json:"tagline" yaml:"tagline"`
	Copyright    string    `json:"copyright" yaml:"copyright"`
	StudioLogo   string    `json:"studio_logo" yaml:"studio_logo"`
	StudioURL    string    `json:"studio_url" yaml:"studio_url"`
	PrimaryColor string    `json:"primary_color" yaml:"primary_color"`
	AccentColor  string    `json:"accent_color" yaml:"accent_color"`
	Elements     []Element `json:"elements" yaml:"elements"`

	// ElementLabels renames elements for display, e.g. object → "Mission Profile".
	ElementLabels map[Element]string `json:"element_labels,omitempty" yaml:"element_labels"`
	Ruleset       Ruleset            `json:"-" yaml:"ruleset"`
}

// Label is the display name for e in this game.
func (g *Game) Label(e Element) string {
	if l := g.ElementLabels[e]; l != "" {
		return l
	}
	return cases.Title(language.English).String(string(e))
}

// Validate checks the ruleset against the game's elements.
func (g *Game) Validate() error {
	return g.Ruleset.Validate(g.Elements)
}
