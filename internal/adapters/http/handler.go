package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/randomtoy/missiondeck/internal/app"
	"github.com/randomtoy/missiondeck/internal/domain"
)

const maxCardsParam = 256

type Handler struct {
	svc *app.MissionService
}

func NewHandler(svc *app.MissionService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/v1/games", h.ListGames)
	e.POST("/v1/missions", h.NewMission)
	e.GET("/v1/missions", h.RestoreMission)
	e.POST("/v1/missions/additional", h.DrawAdditional)
	e.POST("/v1/missions/redraw", h.Redraw)
	e.POST("/v1/missions/nested", h.DrawNested)
	e.POST("/v1/missions/briefing", h.Brief)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) ListGames(c echo.Context) error {
	games, err := h.svc.Games(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}
	resp := GamesResponse{Games: make([]GameResponse, len(games))}
	for i, g := range games {
		resp.Games[i] = toGame(g)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) NewMission(c echo.Context) error {
	res, err := h.svc.NewMission(c.Request().Context(), c.QueryParam("game"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusCreated, toResponse(res, requestID(c)))
}

func (h *Handler) RestoreMission(c echo.Context) error {
	cards, msg := cardsParam(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
	}
	res, err := h.svc.Restore(c.Request().Context(), c.QueryParam("game"), cards)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toResponse(res, requestID(c)))
}

func (h *Handler) DrawAdditional(c echo.Context) error {
	cards, msg := cardsParam(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
	}
	res, err := h.svc.DrawAdditional(c.Request().Context(), c.QueryParam("game"), cards)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toResponse(res, requestID(c)))
}

func (h *Handler) Redraw(c echo.Context) error {
	cards, msg := cardsParam(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
	}
	res, err := h.svc.Redraw(c.Request().Context(), c.QueryParam("game"), cards, c.QueryParam("element"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toResponse(res, requestID(c)))
}

func (h *Handler) DrawNested(c echo.Context) error {
	cards, msg := cardsParam(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
	}
	res, err := h.svc.DrawNested(c.Request().Context(), c.QueryParam("game"), cards, c.QueryParam("element"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toResponse(res, requestID(c)))
}

func (h *Handler) Brief(c echo.Context) error {
	cards, msg := cardsParam(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
	}
	res, err := h.svc.Brief(c.Request().Context(), c.QueryParam("game"), cards)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, BriefingResponse{
		Mission:    toResponse(res.MissionResult, requestID(c)),
		Title:      res.Briefing.Title,
		Text:       res.Briefing.Text,
		Disclaimer: res.Briefing.Disclaimer,
		Model:      res.Briefing.Model,
	})
}

// cardsParam reads the encoded mission; a non-empty msg explains why it was rejected.
func cardsParam(c echo.Context) (cards, msg string) {
	cards = c.QueryParam("cards")
	if cards == "" {
		return "", "cards is required"
	}
	if len(cards) > maxCardsParam {
		return "", "cards is too long"
	}
	return cards, ""
}

func requestID(c echo.Context) string {
	id, _ := c.Get("request_id").(string)
	return id
}

func toResponse(r app.MissionResult, requestID string) MissionResponse {
	g, m := r.Game, r.Mission

	resp := MissionResponse{
		Game:          toGame(g),
		Cards:         r.Encoded,
		ShareURL:      r.ShareURL,
		Primary:       []ElementResponse{},
		Additional:    []AdditionalResponse{},
		Requirements:  toRequirements(m.Requirements),
		Unfulfilled:   toRequirements(m.UnfulfilledRequirements()),
		PendingNested: []string{},
		DeckRemaining: r.DeckRemaining,
		CreatedAt:     m.CreatedAt,
		Meta:          MetaResp{RequestID: requestID},
	}

	for _, p := range m.Primaries() {
		if p.IsPlaceholder() {
			continue
		}
		resp.Primary = append(resp.Primary, toElement(p, g.Label(p.Element)))
	}

	for _, ae := range m.Additional() {
		label := g.Label(ae.Card.Element)
		if i := ae.Card.ID.Requirement; i < len(m.Requirements) && m.Requirements[i].Label != "" {
			label = m.Requirements[i].Label
		}
		add := AdditionalResponse{
			ElementResponse:   toElement(ae.Card, label),
			RequiresMoreDraws: ae.RequiresMoreDraws,
			Requirements:      toRequirements(ae.Requirements),
			Nested:            []ElementResponse{},
		}
		for _, n := range ae.Nested {
			add.Nested = append(add.Nested, toElement(n.Card, "Nested "+g.Label(n.Card.Element)))
		}
		resp.Additional = append(resp.Additional, add)
		if ae.Pending() {
			resp.PendingNested = append(resp.PendingNested, ae.Card.ID.String())
		}
	}
	return resp
}

func toElement(ec domain.ElementCard, label string) ElementResponse {
	return ElementResponse{
		ID:      ec.ID.String(),
		Element: string(ec.Element),
		Label:   label,
		Card: CardResponse{
			Suit:    ec.Card.Suit,
			Rank:    ec.Card.Rank,
			Code:    domain.EncodeCard(ec.Card),
			Display: ec.Card.String(),
			Color:   ec.Card.Color(),
		},
		Result: ec.Result,
	}
}

func toRequirements(reqs []domain.DrawRequirement) []RequirementResponse {
	out := make([]RequirementResponse, len(reqs))
	for i, r := range reqs {
		out[i] = RequirementResponse{Element: string(r.Element), Reason: r.Reason, Label: r.Label}
	}
	return out
}

func toGame(g domain.Game) GameResponse {
	resp := GameResponse{
		ID:           string(g.ID),
		Name:         g.Name,
		Tagline:      g.Tagline,
		Logo:         g.Logo,
		LogoAlt:      g.LogoAlt,
		Copyright:    g.Copyright,
		StudioLogo:   g.StudioLogo,
		StudioURL:    g.StudioURL,
		PrimaryColor: g.PrimaryColor,
		AccentColor:  g.AccentColor,
		Elements:     make([]ElementLabelResp, len(g.Elements)),
	}
	for i, e := range g.Elements {
		resp.Elements[i] = ElementLabelResp{Element: string(e), Label: g.Label(e)}
	}
	return resp
}

func mapError(c echo.Context, err error) error {
	requestID := requestID(c)

	switch {
	case errors.Is(err, domain.ErrInvalidEncoding),
		errors.Is(err, domain.ErrUnknownElement),
		errors.Is(err, domain.ErrNoNestedDraws),
		errors.Is(err, domain.ErrInvalidCard),
		errors.Is(err, domain.ErrDuplicateCard):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotEnoughCards):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNarratorOff):
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUpstreamLLM), errors.Is(err, domain.ErrInvalidLLMJSON):
		slog.Error("upstream LLM failure", "request_id", requestID, "error", err)
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "upstream LLM failure"})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
