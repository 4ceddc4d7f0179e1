package game

import (
	"fmt"

	"github.com/hailam/sidecore/internal/board"
)

// A Outcome is the result of a game.
type Outcome string

const (
	// NoOutcome indicates that a game is in progress.
	NoOutcome Outcome = "*"
	// WhiteWon indicates that white won the game.
	WhiteWon Outcome = "1-0"
	// BlackWon indicates that black won the game.
	BlackWon Outcome = "0-1"
	// Draw indicates that game was a draw.
	Draw Outcome = "1/2-1/2"
)

// String implements the fmt.Stringer interface.
func (o Outcome) String() string {
	return string(o)
}

// ParseOutcome parses a PGN result token.
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(s); o {
	case NoOutcome, WhiteWon, BlackWon, Draw:
		return o, nil
	}
	return NoOutcome, fmt.Errorf("unknown outcome %q", s)
}

// A Method is the method that generated the outcome.
type Method uint8

const (
	// NoMethod indicates that an outcome hasn't occurred.
	NoMethod Method = iota
	// Checkmate indicates that the game was won by checkmate.
	Checkmate
	// Stalemate indicates that the game was drawn by stalemate.
	Stalemate
	// ThreefoldRepetition indicates that the position occurred three times
	// since the last pawn move or capture.
	ThreefoldRepetition
	// FiftyMoveRule indicates that the half move clock reached one hundred.
	FiftyMoveRule
	// InsufficientMaterial indicates that neither side can mate.
	InsufficientMaterial
)

var methodNames = [...]string{
	"NoMethod", "Checkmate", "Stalemate", "ThreefoldRepetition",
	"FiftyMoveRule", "InsufficientMaterial",
}

func (m Method) String() string {
	if int(m) < len(methodNames) {
		return methodNames[m]
	}
	return fmt.Sprintf("Method(%d)", m)
}

// ParseMethod is the inverse of Method.String.
func ParseMethod(s string) (Method, error) {
	for i, name := range methodNames {
		if name == s {
			return Method(i), nil
		}
	}
	return NoMethod, fmt.Errorf("unknown method %q", s)
}

// Outcome resolves the game result from the side to move. Draw claims are
// taken as soon as they become available.
func (g *Game) Outcome() (Outcome, Method, error) {
	p := g.PlayerToPlay()
	status, err := p.Status()
	if err != nil {
		return NoOutcome, NoMethod, err
	}
	switch status {
	case InCheckMate:
		if p.color == board.White {
			return BlackWon, Checkmate, nil
		}
		return WhiteWon, Checkmate, nil
	case InStalemate:
		return Draw, Stalemate, nil
	}

	if p.CanClaimInsufficientMaterialDraw() {
		return Draw, InsufficientMaterial, nil
	}
	rep, err := p.CanClaimThreeMoveRepetitionDraw()
	if err != nil {
		return NoOutcome, NoMethod, err
	}
	if rep {
		return Draw, ThreefoldRepetition, nil
	}
	if p.CanClaimFiftyMoveDraw() {
		return Draw, FiftyMoveRule, nil
	}
	return NoOutcome, NoMethod, nil
}
