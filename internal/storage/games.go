package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/hailam/sidecore/internal/game"
)

// ErrGameNotFound is returned by LoadGame for an unknown id.
var ErrGameNotFound = fmt.Errorf("storage: game not found: %w", badger.ErrKeyNotFound)

// GameRecord is a finished game as stored in the archive.
type GameRecord struct {
	ID         string       `json:"id"`
	Mode       string       `json:"mode"`
	StartFEN   string       `json:"start_fen"`
	Moves      []string     `json:"moves"`
	Outcome    game.Outcome `json:"outcome"`
	Method     string       `json:"method"`
	CreatedAt  time.Time    `json:"created_at"`
	FinishedAt time.Time    `json:"finished_at"`
}

// NewGameRecord captures g with its current outcome.
func NewGameRecord(g *game.Game, outcome game.Outcome, method game.Method) *GameRecord {
	h := g.History()
	moves := make([]string, 0, h.Len())
	for _, m := range h.Moves() {
		// Castling is stored as king takes own rook. In Chess960 the king's
		// destination alone can read as a plain king move.
		if m.IsCastle() {
			moves = append(moves, m.BoardMove().RookNotation())
			continue
		}
		moves = append(moves, m.String())
	}
	return &GameRecord{
		ID:         g.ID,
		Mode:       g.Mode().String(),
		StartFEN:   g.StartFEN(),
		Moves:      moves,
		Outcome:    outcome,
		Method:     method.String(),
		CreatedAt:  g.CreatedAt,
		FinishedAt: time.Now(),
	}
}

// Result returns the statistics entry for the record.
func (r *GameRecord) Result() GameResult {
	mode, _ := game.ParseMode(r.Mode)
	method, _ := game.ParseMethod(r.Method)
	return GameResult{
		Outcome:  r.Outcome,
		Method:   method,
		Mode:     mode,
		Plies:    len(r.Moves),
		Duration: r.FinishedAt.Sub(r.CreatedAt),
	}
}

// Replay rebuilds the game by playing the recorded moves from the start
// position. The replayed game keeps the record's id.
func (r *GameRecord) Replay(opts game.Options) (*game.Game, error) {
	g, err := game.NewFromFEN(r.StartFEN, opts)
	if err != nil {
		return nil, err
	}
	g.ID = r.ID
	g.CreatedAt = r.CreatedAt
	for i, uci := range r.Moves {
		if _, err := g.MakeMove(uci); err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
	}
	return g, nil
}

func gameKey(id string) string {
	return prefixGame + id
}

// SaveGame stores r under its id.
func (s *Storage) SaveGame(r *GameRecord) error {
	if _, err := uuid.Parse(r.ID); err != nil {
		return fmt.Errorf("storage: game id %q: %w", r.ID, err)
	}
	return s.put(gameKey(r.ID), r)
}

// LoadGame returns the record stored under id.
func (s *Storage) LoadGame(id string) (*GameRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("storage: game id %q: %w", id, err)
	}
	r := &GameRecord{}
	if err := s.get(gameKey(id), r); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("%s: %w", id, ErrGameNotFound)
		}
		return nil, err
	}
	return r, nil
}

// DeleteGame removes the record stored under id.
func (s *Storage) DeleteGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(gameKey(id)))
	})
}

// ListGames returns every stored record, most recently finished first.
func (s *Storage) ListGames() ([]*GameRecord, error) {
	var records []*GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixGame)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			r := &GameRecord{}
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, r)
			}); err != nil {
				return err
			}
			records = append(records, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(records, func(a, b *GameRecord) int {
		return b.FinishedAt.Compare(a.FinishedAt)
	})
	return records, nil
}
