package ports

import (
	"context"

	"github.com/randomtoy/missiondeck/internal/domain"
)

// GameStore provides access to game rulesets and display metadata.
type GameStore interface {
	GetGame(ctx context.Context, id domain.GameID) (domain.Game, error)
	DefaultGame(ctx context.Context) (domain.Game, error)
	ListGames(ctx context.Context) ([]domain.Game, error)
}
