package game

import "errors"

var (
	// ErrNoKing is returned when check status is needed for a side whose
	// king reference is unset. Every legality and evaluation result for
	// that side is meaningless, so callers must not recover from it.
	ErrNoKing = errors.New("game: king reference is unset")

	// ErrInvalidRepetitionCount is returned for a repetition count below 1.
	ErrInvalidRepetitionCount = errors.New("game: repetition count must be at least 1")

	// ErrSetupDone is returned when a side's pieces are placed twice.
	ErrSetupDone = errors.New("game: pieces already at starting positions")

	ErrIllegalMove  = errors.New("game: illegal move")
	ErrNoMoveToUndo = errors.New("game: no move to undo")
)
