package storage

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"golang.org/x/exp/maps"

	"github.com/hailam/sidecore/internal/game"
	"github.com/hailam/sidecore/internal/hashtable"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	prefixGame     = "game/"
)

// Preferences stores the defaults for new games.
type Preferences struct {
	Mode         string    `json:"mode"`
	White        string    `json:"white"`
	Black        string    `json:"black"`
	CheckTableMB int       `json:"check_table_mb"`
	PawnTableMB  int       `json:"pawn_table_mb"`
	LastPlayed   time.Time `json:"last_played"`
}

// DefaultPreferences returns default preferences
func DefaultPreferences() *Preferences {
	return &Preferences{
		Mode:         game.Standard.String(),
		White:        game.Human.String(),
		Black:        game.Computer.String(),
		CheckTableMB: game.DefaultTableMB,
		PawnTableMB:  game.DefaultTableMB,
	}
}

// Options converts the preferences into game options with freshly sized
// cache tables.
func (p *Preferences) Options() (game.Options, error) {
	var opts game.Options
	var err error
	if opts.Mode, err = game.ParseMode(p.Mode); err != nil {
		return opts, err
	}
	if opts.White, err = game.ParseIntelligence(p.White); err != nil {
		return opts, err
	}
	if opts.Black, err = game.ParseIntelligence(p.Black); err != nil {
		return opts, err
	}
	opts.CheckTable = hashtable.NewCheckTable(p.CheckTableMB)
	opts.PawnTable = hashtable.NewPawnTable(p.PawnTableMB)
	return opts, nil
}

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed int            `json:"games_played"`
	WhiteWins   int            `json:"white_wins"`
	BlackWins   int            `json:"black_wins"`
	Draws       int            `json:"draws"`
	ByMethod    map[string]int `json:"by_method"`
	ByMode      map[string]int `json:"by_mode"`
	TotalPlies  int            `json:"total_plies"`
	LongestGame int            `json:"longest_game"`
	TotalTime   time.Duration  `json:"total_time"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{
		ByMethod: make(map[string]int),
		ByMode:   make(map[string]int),
	}
}

// Clone returns a copy that shares no maps with s.
func (s *GameStats) Clone() *GameStats {
	c := *s
	c.ByMethod = maps.Clone(s.ByMethod)
	c.ByMode = maps.Clone(s.ByMode)
	return &c
}

// DrawRate returns the share of drawn games as a percentage (0-100)
func (s *GameStats) DrawRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Draws) / float64(s.GamesPlayed) * 100
}

// GameResult represents the result of a completed game
type GameResult struct {
	Outcome  game.Outcome
	Method   game.Method
	Mode     game.Mode
	Plies    int
	Duration time.Duration
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens or creates the database in dir.
func Open(dir string) (*Storage, error) {
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a database that is discarded on Close.
func OpenInMemory() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Storage, error) {
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes the value under key into v. A missing key is reported as
// badger.ErrKeyNotFound.
func (s *Storage) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

// SavePreferences saves the preferences
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads the preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()
	if err := s.get(keyPreferences, prefs); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return nil, err
	}
	return prefs, nil
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.put(keyStats, stats)
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	if err := s.get(keyStats, stats); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return nil, err
	}
	if stats.ByMethod == nil {
		stats.ByMethod = make(map[string]int)
	}
	if stats.ByMode == nil {
		stats.ByMode = make(map[string]int)
	}
	return stats, nil
}

// RecordGame records a completed game and updates statistics. It returns
// the updated statistics.
func (s *Storage) RecordGame(result GameResult) (*GameStats, error) {
	stats, err := s.LoadStats()
	if err != nil {
		return nil, err
	}

	stats.GamesPlayed++
	stats.TotalPlies += result.Plies
	stats.TotalTime += result.Duration
	stats.LongestGame = max(stats.LongestGame, result.Plies)

	switch result.Outcome {
	case game.WhiteWon:
		stats.WhiteWins++
	case game.BlackWon:
		stats.BlackWins++
	case game.Draw:
		stats.Draws++
	}
	stats.ByMethod[result.Method.String()]++
	stats.ByMode[result.Mode.String()]++

	if err := s.SaveStats(stats); err != nil {
		return nil, err
	}
	return stats.Clone(), nil
}
