package http

import (
	"time"

	"github.com/randomtoy/missiondeck/internal/domain"
)

// MissionResponse is the JSON shape returned by every /v1/missions endpoint.
type MissionResponse struct {
	Game          GameResponse          `json:"game"`
	Cards         string                `json:"cards"`
	ShareURL      string                `json:"share_url"`
	Primary       []ElementResponse     `json:"primary"`
	Additional    []AdditionalResponse  `json:"additional"`
	Requirements  []RequirementResponse `json:"requirements"`
	Unfulfilled   []RequirementResponse `json:"unfulfilled"`
	PendingNested []string              `json:"pending_nested"`
	DeckRemaining int                   `json:"deck_remaining"`
	CreatedAt     time.Time             `json:"created_at"`
	Meta          MetaResp              `json:"meta"`
}

type ElementResponse struct {
	ID      string       `json:"id"`
	Element string       `json:"element"`
	Label   string       `json:"label"`
	Card    CardResponse `json:"card"`
	Result  string       `json:"result"`
}

type CardResponse struct {
	Suit    domain.Suit `json:"suit"`
	Rank    domain.Rank `json:"rank"`
	Code    string      `json:"code"`
	Display string      `json:"display"`
	Color   string      `json:"color"`
}

type AdditionalResponse struct {
	ElementResponse
	RequiresMoreDraws bool                  `json:"requires_more_draws"`
	Requirements      []RequirementResponse `json:"requirements"`
	Nested            []ElementResponse     `json:"nested"`
}

type RequirementResponse struct {
	Element string `json:"element"`
	Reason  string `json:"reason"`
	Label   string `json:"label"`
}

type GameResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Tagline      string             `json:"tagline"`
	Logo         string             `json:"logo"`
	LogoAlt      string             `json:"logo_alt"`
	Copyright    string             `json:"copyright"`
	StudioLogo   string             `json:"studio_logo"`
	StudioURL    string             `json:"studio_url"`
	PrimaryColor string             `json:"primary_color"`
	AccentColor  string             `json:"accent_color"`
	Elements     []ElementLabelResp `json:"elements"`
}

type ElementLabelResp struct {
	Element string `json:"element"`
	Label   string `json:"label"`
}

type GamesResponse struct {
	Games []GameResponse `json:"games"`
}

// BriefingResponse is the JSON shape returned by POST /v1/missions/briefing.
type BriefingResponse struct {
	Mission    MissionResponse `json:"mission"`
	Title      string          `json:"title"`
	Text       string          `json:"text"`
	Disclaimer string          `json:"disclaimer"`
	Model      string          `json:"model"`
}

type MetaResp struct {
	RequestID string `json:"request_id"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
