package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"chessrules/internal/board"
	"chessrules/internal/game"
	"chessrules/internal/storage"

	"github.com/google/uuid"
)

var ErrGameNotFound = errors.New("game not found")

// Service owns every running game and serializes access to them. Moves are
// mirrored to storage when persistence is enabled.
type Service struct {
	games map[string]*game.Game
	mu    sync.RWMutex
	store *storage.Store // nil if persistence disabled
}

// New creates a new service instance with optional storage
func New(store *storage.Store) *Service {
	return &Service{
		games: make(map[string]*game.Game),
		store: store,
	}
}

// CreateGame starts a game under id, from fen when given or from the
// standard position otherwise.
func (s *Service) CreateGame(id, fen string) error {
	g := game.New()
	if fen != "" {
		var err error
		if g, err = game.FromFEN(fen); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[id]; exists {
		return fmt.Errorf("game %s already exists", id)
	}
	s.games[id] = g

	if s.store != nil {
		s.store.RecordNewGame(storage.GameRecord{
			GameID:       id,
			InitialFEN:   g.InitialFEN(),
			StartTimeUTC: time.Now().UTC(),
		})
	}

	return nil
}

// GenerateGameID creates a new unique game ID
func (s *Service) GenerateGameID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

// GetGame retrieves a game by ID. The caller must not use it concurrently
// with other service calls; use Inspect for that.
func (s *Service) GetGame(gameID string) (*game.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lookup(gameID)
}

func (s *Service) lookup(gameID string) (*game.Game, error) {
	g, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return g, nil
}

// Inspect runs fn with read access to a game.
func (s *Service) Inspect(gameID string, fn func(*game.Game)) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return err
	}
	fn(g)
	return nil
}

// MakeMove plays an algebraic move for the side to move
func (s *Service) MakeMove(gameID, move string) (*game.MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return nil, err
	}

	result, err := g.Move(move)
	if err != nil {
		return nil, err
	}
	s.recordMove(gameID, g, result)
	return result, nil
}

// Pass skips the current side's turn
func (s *Service) Pass(gameID string) (*game.MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return nil, err
	}

	result, err := g.Pass()
	if err != nil {
		return nil, err
	}
	s.recordMove(gameID, g, result)
	return result, nil
}

// Reverse flips the board orientation of a game
func (s *Service) Reverse(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return err
	}
	g.Reverse()
	return nil
}

// Reset rebuilds the standard starting position for a game
func (s *Service) Reset(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.lookup(gameID)
	if err != nil {
		return err
	}
	g.Reset()

	if s.store != nil {
		s.store.ResetGame(gameID, board.StartingFEN)
	}
	return nil
}

func (s *Service) recordMove(gameID string, g *game.Game, result *game.MoveResult) {
	if s.store == nil {
		return
	}
	s.store.RecordMove(storage.MoveRecord{
		GameID:       gameID,
		MoveNumber:   g.MoveCount(),
		MoveToken:    result.Move,
		FENAfterMove: g.FEN(),
		PlayerColor:  string(result.Player),
		InCheck:      result.Check,
		MoveTimeUTC:  time.Now().UTC(),
	})
}

// DeleteGame removes a game from memory and storage
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}

	delete(s.games, gameID)
	if s.store != nil {
		s.store.DeleteGame(gameID)
	}
	return nil
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// Close cleans up resources
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = make(map[string]*game.Game)

	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
