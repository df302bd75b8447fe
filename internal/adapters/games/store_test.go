package games_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomtoy/missiondeck/internal/adapters/games"
	"github.com/randomtoy/missiondeck/internal/domain"
)

func TestEmbeddedStore_Load(t *testing.T) {
	s := games.NewEmbeddedStore("")
	require.NoError(t, s.Load())

	list, err := s.ListGames(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, games.DefaultGameID, list[0].ID)
	assert.Equal(t, domain.GameID("starbreaker"), list[1].ID)
}

func TestEmbeddedStore_SecretWorld(t *testing.T) {
	s := games.NewEmbeddedStore("")
	g, err := s.DefaultGame(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.FiveElement, g.Ruleset.Family)
	assert.Equal(t, domain.Elements, g.Elements)

	reqs := domain.DetectAdditionalDraws(domain.Card{Suit: domain.Hearts, Rank: domain.Jack}, &g.Ruleset)
	require.Len(t, reqs, 3)
	assert.Equal(t, "Additional Object", reqs[0].Label)
	assert.Equal(t, "Dragon Goal", reqs[1].Label)
	assert.Equal(t, "Dragon Object", reqs[2].Label)

	six := domain.DetectAdditionalDraws(domain.Card{Suit: domain.Clubs, Rank: domain.Six}, &g.Ruleset)
	require.Len(t, six, 2)
	assert.Equal(t, domain.Location, six[0].Element)
	assert.Equal(t, "Attached Object", six[1].Label)
}

func TestEmbeddedStore_Starbreaker(t *testing.T) {
	s := games.NewEmbeddedStore("")
	g, err := s.GetGame(context.Background(), "starbreaker")
	require.NoError(t, err)

	assert.Equal(t, domain.ThreeElement, g.Ruleset.Family)
	assert.Equal(t, []domain.Element{domain.Location, domain.Goal, domain.Object}, g.Elements)
	assert.Equal(t, "Mission Profile", g.Label(domain.Object))

	assert.Len(t, domain.DetectAdditionalDraws(domain.Card{Suit: domain.Hearts, Rank: domain.Queen}, &g.Ruleset), 1)
	assert.Empty(t, domain.DetectAdditionalDraws(domain.Card{Suit: domain.Hearts, Rank: domain.Two}, &g.Ruleset))
}

func TestStore_GameNotFound(t *testing.T) {
	_, err := games.NewEmbeddedStore("").GetGame(context.Background(), "chess")
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
}

func TestStore_DefaultOverride(t *testing.T) {
	s := games.NewEmbeddedStore("starbreaker")
	g, err := s.DefaultGame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.GameID("starbreaker"), g.ID)

	list, err := s.ListGames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.GameID("starbreaker"), list[0].ID)
}

func TestStore_MissingDefault(t *testing.T) {
	err := games.NewEmbeddedStore("chess").Load()
	assert.ErrorIs(t, err, domain.ErrGameNotFound)
}

func TestStore_InvalidFiles(t *testing.T) {
	cases := map[string]string{
		"bad yaml":   "id: [",
		"missing id": "name: Nameless\n",
		"bad ruleset": `id: broken
elements: [location, goal, object]
ruleset:
  family: three-element
  tables: {}
`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			fsys := fstest.MapFS{"games/broken.yaml": &fstest.MapFile{Data: []byte(body)}}
			err := games.NewStore(fsys, "games", "broken").Load()
			assert.Error(t, err)
		})
	}
}

func TestStore_InvalidRuleset(t *testing.T) {
	fsys := fstest.MapFS{"broken.yaml": &fstest.MapFile{Data: []byte(`id: broken
elements: [location, goal, object]
ruleset:
  family: three-element
  tables: {}
`)}}
	err := games.NewStore(fsys, ".", "broken").Load()
	assert.ErrorIs(t, err, domain.ErrInvalidRuleset)
}
