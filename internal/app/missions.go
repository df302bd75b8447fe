package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/randomtoy/missiondeck/internal/domain"
	"github.com/randomtoy/missiondeck/internal/ports"
)

// MissionResult is the application-level output shared by every operation.
type MissionResult struct {
	Game          domain.Game
	Mission       domain.Mission
	Encoded       string
	ShareURL      string
	DeckRemaining int
}

// BriefingResult pairs a mission with its narrated briefing.
type BriefingResult struct {
	MissionResult
	Briefing ports.BriefingOutput
}

// MissionService drives the generator for stateless callers: every request
// carries the encoded mission and every response returns the new encoding.
type MissionService struct {
	games    ports.GameStore
	narrator ports.Narrator
	rng      domain.RNG
	baseURL  string
}

// NewMissionService wires the service. narrator may be nil, which disables briefings.
func NewMissionService(games ports.GameStore, narrator ports.Narrator, rng domain.RNG, baseURL string) *MissionService {
	return &MissionService{
		games:    games,
		narrator: narrator,
		rng:      rng,
		baseURL:  baseURL,
	}
}

// Games lists the supported games, default first.
func (s *MissionService) Games(ctx context.Context) ([]domain.Game, error) {
	return s.games.ListGames(ctx)
}

// NewMission shuffles a fresh deck and draws one card per active element.
func (s *MissionService) NewMission(ctx context.Context, gameID string) (MissionResult, error) {
	g, err := s.game(ctx, gameID)
	if err != nil {
		return MissionResult{}, err
	}

	deck := domain.Shuffle(domain.NewDeck(), s.rng)
	drawn, _ := domain.Draw(deck, len(g.Elements))

	m, err := domain.GenerateMission(drawn, &g.Ruleset, g.Elements, nil)
	if err != nil {
		return MissionResult{}, fmt.Errorf("generate mission: %w", err)
	}
	return s.result(g, m), nil
}

// Restore rebuilds the mission carried by an encoded card list.
func (s *MissionService) Restore(ctx context.Context, gameID, encoded string) (MissionResult, error) {
	g, m, err := s.decode(ctx, gameID, encoded)
	if err != nil {
		return MissionResult{}, err
	}
	return s.result(g, m), nil
}

// DrawAdditional draws one card per unfulfilled requirement. A short deck
// fulfills what it can; the rest stay unfulfilled.
func (s *MissionService) DrawAdditional(ctx context.Context, gameID, encoded string) (MissionResult, error) {
	g, m, err := s.decode(ctx, gameID, encoded)
	if err != nil {
		return MissionResult{}, err
	}

	missing := m.UnfulfilledRequirements()
	if len(missing) == 0 {
		return s.result(g, m), nil
	}

	drawn, _ := domain.Draw(s.remaining(m), len(missing))
	additional := append(m.AdditionalCards(), drawn...)

	primary := make([]domain.Card, len(g.Elements))
	for i, e := range g.Elements {
		primary[i] = m.Primary(e).Card
	}
	updated, err := domain.GenerateMission(primary, &g.Ruleset, g.Elements, additional)
	if err != nil {
		return MissionResult{}, fmt.Errorf("draw additional: %w", err)
	}
	updated.CreatedAt = m.CreatedAt
	return s.result(g, updated), nil
}

// Redraw swaps the card behind elementID for a fresh one from the deck.
func (s *MissionService) Redraw(ctx context.Context, gameID, encoded, elementID string) (MissionResult, error) {
	id, err := domain.ParseElementID(elementID)
	if err != nil {
		return MissionResult{}, err
	}
	g, m, err := s.decode(ctx, gameID, encoded)
	if err != nil {
		return MissionResult{}, err
	}

	drawn, _ := domain.Draw(s.remaining(m), 1)
	if len(drawn) == 0 {
		return MissionResult{}, fmt.Errorf("redraw %s: %w", id, domain.ErrNotEnoughCards)
	}

	updated, err := domain.Redraw(m, id, drawn[0], &g.Ruleset, g.Elements)
	if err != nil {
		return MissionResult{}, fmt.Errorf("redraw %s: %w", id, err)
	}
	return s.result(g, updated), nil
}

// DrawNested satisfies the nested requirements of one additional element.
// Nested elements are not part of the encoding, so the returned mission is
// the only place they live.
func (s *MissionService) DrawNested(ctx context.Context, gameID, encoded, elementID string) (MissionResult, error) {
	id, err := domain.ParseElementID(elementID)
	if err != nil {
		return MissionResult{}, err
	}
	g, m, err := s.decode(ctx, gameID, encoded)
	if err != nil {
		return MissionResult{}, err
	}

	need := -1
	for _, ae := range m.Pending() {
		if ae.Card.ID.Equal(id) {
			need = len(ae.Requirements)
		}
	}
	if need < 0 {
		return MissionResult{}, fmt.Errorf("draw nested %s: %w", id, domain.ErrNoNestedDraws)
	}

	drawn, _ := domain.Draw(s.remaining(m), need)
	updated, err := domain.FulfillNested(m, id, drawn, &g.Ruleset)
	if err != nil {
		return MissionResult{}, fmt.Errorf("draw nested %s: %w", id, err)
	}
	return s.result(g, updated), nil
}

// Brief asks the narrator for a read-aloud briefing of the mission.
func (s *MissionService) Brief(ctx context.Context, gameID, encoded string) (BriefingResult, error) {
	if s.narrator == nil {
		return BriefingResult{}, domain.ErrNarratorOff
	}
	g, m, err := s.decode(ctx, gameID, encoded)
	if err != nil {
		return BriefingResult{}, err
	}

	out, err := s.narrator.Brief(ctx, toBriefingInput(g, m))
	if err != nil {
		return BriefingResult{}, fmt.Errorf("brief: %w", err)
	}
	return BriefingResult{MissionResult: s.result(g, m), Briefing: out}, nil
}

// game resolves gameID, falling back to the default game when it is empty or unknown.
func (s *MissionService) game(ctx context.Context, gameID string) (domain.Game, error) {
	if gameID != "" {
		g, err := s.games.GetGame(ctx, domain.GameID(gameID))
		if err == nil {
			return g, nil
		}
		if !errors.Is(err, domain.ErrGameNotFound) {
			return domain.Game{}, fmt.Errorf("get game: %w", err)
		}
	}
	g, err := s.games.DefaultGame(ctx)
	if err != nil {
		return domain.Game{}, fmt.Errorf("get default game: %w", err)
	}
	return g, nil
}

func (s *MissionService) decode(ctx context.Context, gameID, encoded string) (domain.Game, domain.Mission, error) {
	g, err := s.game(ctx, gameID)
	if err != nil {
		return domain.Game{}, domain.Mission{}, err
	}
	m, err := domain.DecodeMission(encoded, &g.Ruleset, g.Elements)
	if err != nil {
		return domain.Game{}, domain.Mission{}, err
	}
	return g, m, nil
}

// remaining is a shuffled deck of every card the mission does not hold.
func (s *MissionService) remaining(m domain.Mission) []domain.Card {
	return domain.Shuffle(domain.Without(domain.NewDeck(), m.Cards()), s.rng)
}

func (s *MissionService) result(g domain.Game, m domain.Mission) MissionResult {
	encoded := domain.EncodeMission(m)
	return MissionResult{
		Game:          g,
		Mission:       m,
		Encoded:       encoded,
		ShareURL:      s.shareURL(g.ID, encoded),
		DeckRemaining: len(domain.NewDeck()) - len(m.Cards()),
	}
}

func (s *MissionService) shareURL(id domain.GameID, encoded string) string {
	q := url.Values{}
	q.Set("game", string(id))
	q.Set("cards", encoded)
	return s.baseURL + "?" + q.Encode()
}

func toBriefingInput(g domain.Game, m domain.Mission) ports.BriefingInput {
	in := ports.BriefingInput{Game: g.Name}
	for _, p := range m.Primaries() {
		if p.IsPlaceholder() {
			continue
		}
		in.Elements = append(in.Elements, ports.ElementInput{
			Label:  g.Label(p.Element),
			Card:   p.Card.String(),
			Result: p.Result,
			Role:   string(domain.RolePrimary),
		})
	}
	for _, ae := range m.Additional() {
		label := g.Label(ae.Card.Element)
		if i := ae.Card.ID.Requirement; i < len(m.Requirements) && m.Requirements[i].Label != "" {
			label = m.Requirements[i].Label
		}
		in.Elements = append(in.Elements, ports.ElementInput{
			Label:  label,
			Card:   ae.Card.Card.String(),
			Result: ae.Card.Result,
			Role:   string(domain.RoleAdditional),
		})
		for _, n := range ae.Nested {
			in.Elements = append(in.Elements, ports.ElementInput{
				Label:  g.Label(n.Card.Element),
				Card:   n.Card.Card.String(),
				Result: n.Card.Result,
				Role:   string(domain.RoleNested),
			})
		}
	}
	return in
}
