package games

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/randomtoy/missiondeck/internal/domain"
)

//go:embed data/*.yaml
var gameFS embed.FS

// DefaultGameID is served when a request names no game or an unknown one.
const DefaultGameID domain.GameID = "secret-world"

// Store loads game definitions from YAML files once and serves them read-only.
type Store struct {
	fsys      fs.FS
	dir       string
	defaultID domain.GameID

	once  sync.Once
	games map[domain.GameID]domain.Game
	err   error
}

// NewEmbeddedStore serves the games compiled into the binary.
func NewEmbeddedStore(defaultID domain.GameID) *Store {
	return NewStore(gameFS, "data", defaultID)
}

// NewStore serves every *.yaml file in dir of fsys. An empty defaultID
// means DefaultGameID.
func NewStore(fsys fs.FS, dir string, defaultID domain.GameID) *Store {
	if defaultID == "" {
		defaultID = DefaultGameID
	}
	return &Store{fsys: fsys, dir: dir, defaultID: defaultID}
}

func (s *Store) init() {
	names, err := fs.Glob(s.fsys, path.Join(s.dir, "*.yaml"))
	if err != nil {
		s.err = fmt.Errorf("list game files: %w", err)
		return
	}
	s.games = make(map[domain.GameID]domain.Game, len(names))
	for _, name := range names {
		raw, err := fs.ReadFile(s.fsys, name)
		if err != nil {
			s.err = fmt.Errorf("read game %s: %w", name, err)
			return
		}
		var g domain.Game
		if err := yaml.Unmarshal(raw, &g); err != nil {
			s.err = fmt.Errorf("parse game %s: %w", name, err)
			return
		}
		if g.ID == "" {
			s.err = fmt.Errorf("game %s: missing id", name)
			return
		}
		if err := g.Validate(); err != nil {
			s.err = fmt.Errorf("game %s: %w", g.ID, err)
			return
		}
		if _, dup := s.games[g.ID]; dup {
			s.err = fmt.Errorf("game %s defined twice", g.ID)
			return
		}
		s.games[g.ID] = g
	}
	if _, ok := s.games[s.defaultID]; !ok {
		s.err = fmt.Errorf("default game %q: %w", s.defaultID, domain.ErrGameNotFound)
	}
}

// Load forces the one-time load and reports any error.
func (s *Store) Load() error {
	s.once.Do(s.init)
	return s.err
}

func (s *Store) GetGame(_ context.Context, id domain.GameID) (domain.Game, error) {
	if err := s.Load(); err != nil {
		return domain.Game{}, err
	}
	g, ok := s.games[id]
	if !ok {
		return domain.Game{}, domain.ErrGameNotFound
	}
	return g, nil
}

func (s *Store) DefaultGame(ctx context.Context) (domain.Game, error) {
	return s.GetGame(ctx, s.defaultID)
}

// ListGames returns the default game first, then the rest by ID.
func (s *Store) ListGames(_ context.Context) ([]domain.Game, error) {
	if err := s.Load(); err != nil {
		return nil, err
	}
	out := make([]domain.Game, 0, len(s.games))
	for _, g := range s.games {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if (out[i].ID == s.defaultID) != (out[j].ID == s.defaultID) {
			return out[i].ID == s.defaultID
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
