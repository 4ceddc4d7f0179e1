package game

import (
	"fmt"
	"strings"

	"github.com/hailam/sidecore/internal/board"
	"github.com/hailam/sidecore/internal/hashtable"
)

// Mode selects how the back rank is laid out.
type Mode uint8

const (
	Standard Mode = iota
	Chess960
)

func (m Mode) String() string {
	if m == Chess960 {
		return "chess960"
	}
	return "standard"
}

// ParseMode accepts "standard" or "chess960" (also "960"), case-insensitive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "classic":
		return Standard, nil
	case "chess960", "960", "fischer":
		return Chess960, nil
	}
	return Standard, fmt.Errorf("unknown game mode %q", s)
}

// Intelligence says who drives a side.
type Intelligence uint8

const (
	// DefaultIntelligence resolves to Human for white and Computer for black.
	DefaultIntelligence Intelligence = iota
	Human
	Computer
)

func (i Intelligence) String() string {
	switch i {
	case Human:
		return "human"
	case Computer:
		return "computer"
	}
	return "default"
}

// Default cache size in MB when the caller does not supply tables.
const DefaultTableMB = 1

// Options configures a new game. The zero value plays standard chess with
// a human white side, a computer black side and fresh cache tables.
type Options struct {
	Mode  Mode
	White Intelligence
	Black Intelligence

	// Seed drives Chess960 placement. Zero picks a random seed.
	Seed uint64

	// Tables may be shared between games.
	CheckTable *hashtable.CheckTable
	PawnTable  *hashtable.PawnTable

	// OnPawnStructureEval, if set, is called each time a side's pawn
	// structure score is computed rather than served from the cache.
	OnPawnStructureEval func(c board.Color)
}

func (o Options) intelligence(c board.Color) Intelligence {
	in := o.White
	if c == board.Black {
		in = o.Black
	}
	if in != DefaultIntelligence {
		return in
	}
	if c == board.White {
		return Human
	}
	return Computer
}

// ParseIntelligence accepts "human", "computer" or "default".
func ParseIntelligence(s string) (Intelligence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return DefaultIntelligence, nil
	case "human":
		return Human, nil
	case "computer", "cpu":
		return Computer, nil
	}
	return DefaultIntelligence, fmt.Errorf("unknown intelligence %q", s)
}
