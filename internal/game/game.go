// Package game holds the two sides of a chess game, their pieces and the
// history of moves played. Each Player derives its legal moves, check
// status, evaluation and draw claims from the shared board, using the check
// and pawn tables of package hashtable as caches.
//
// A Game is not safe for concurrent use: legal move generation applies and
// undoes moves on the shared board. The cache tables may be shared.
package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/hailam/sidecore/internal/board"
	"github.com/hailam/sidecore/internal/hashtable"
)

// Game is the context both players act on.
type Game struct {
	ID        string
	CreatedAt time.Time

	mode    Mode
	board   *board.Position
	players [2]*Player
	history History

	// squares maps each board square to the piece standing on it.
	squares [64]*Piece

	start          position
	startFEN       string
	startHalfMoves int

	checks     *hashtable.CheckTable
	pawns      *hashtable.PawnTable
	onPawnEval func(board.Color)

	rng      *rand.Rand
	backRank *backRank
}

func newGame(pos *board.Position, opts Options) *Game {
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	g := &Game{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now(),
		mode:       opts.Mode,
		board:      pos,
		checks:     opts.CheckTable,
		pawns:      opts.PawnTable,
		onPawnEval: opts.OnPawnStructureEval,
		rng:        rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
	if g.checks == nil {
		g.checks = hashtable.NewCheckTable(DefaultTableMB)
	}
	if g.pawns == nil {
		g.pawns = hashtable.NewPawnTable(DefaultTableMB)
	}
	for c := board.White; c <= board.Black; c++ {
		g.players[c] = newPlayer(g, c, opts.intelligence(c))
	}
	return g
}

// New starts a game from the initial position of opts.Mode.
func New(opts Options) (*Game, error) {
	g := newGame(board.NewEmptyPosition(), opts)
	for _, p := range g.players {
		if err := p.SetPiecesAtStartingPositions(); err != nil {
			return nil, err
		}
	}
	g.markStart()
	return g, nil
}

// NewFromFEN starts a game from a FEN position. Pieces are given the role
// their square suggests; pieces on their start squares count as unmoved
// when castling rights allow it.
func NewFromFEN(fen string, opts Options) (*Game, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	if err := pos.Validate(); err != nil {
		return nil, fmt.Errorf("invalid position: %w", err)
	}
	opts.Mode = detectMode(pos, opts.Mode)

	g := newGame(pos, opts)
	for _, p := range g.players {
		p.loadPieces()
	}
	g.markStart()
	return g, nil
}

// detectMode switches to Chess960 when a castling rook is not on a corner.
func detectMode(pos *board.Position, m Mode) Mode {
	for c := board.White; c <= board.Black; c++ {
		for w := board.KingSide; w <= board.QueenSide; w++ {
			if !pos.CastlingRights.CanCastle(c, w) {
				continue
			}
			f := pos.CastleRook[c][w].File()
			if (f != 0 && f != 7) || pos.KingSquare[c].File() != 4 {
				return Chess960
			}
		}
	}
	return m
}

func (g *Game) markStart() {
	g.start = g.current()
	g.startFEN = g.board.ToFEN()
	g.startHalfMoves = g.board.HalfMoveClock
	g.players[board.White].setupDone = true
	g.players[board.Black].setupDone = true
}

func (g *Game) current() position {
	return position{a: g.board.HashA, b: g.board.HashB}
}

// loadPieces creates the side's pieces from the board.
func (p *Player) loadPieces() {
	pos := p.game.board
	c := p.color
	used := make(map[Identifier]bool)
	role := func(id Identifier) Identifier {
		if used[id] {
			return ExtraID
		}
		used[id] = true
		return id
	}

	p.materialCount, p.pawnCount = 0, 0
	for w := board.KingSide; w <= board.QueenSide; w++ {
		p.rookHomes[w] = pos.CastleRook[c][w]
		if p.rookHomes[w] == board.NoSquare {
			file := 7
			if w == board.QueenSide {
				file = 0
			}
			p.rookHomes[w] = board.NewSquare(file, p.HomeRank())
		}
	}

	kingFile := 4
	if k := pos.KingSquare[c]; k != board.NoSquare {
		kingFile = k.File()
	}
	canCastle := pos.CastlingRights.CanCastle(c, board.KingSide) || pos.CastlingRights.CanCastle(c, board.QueenSide)

	for sq := board.A1; sq <= board.H8; sq++ {
		bp := pos.PieceAt(sq)
		if bp == board.NoPiece || bp.Color() != c {
			continue
		}
		kind := bp.Type()
		queenSide := sq.File() < kingFile
		id := ExtraID
		moved := sq.Rank() != p.HomeRank()

		switch kind {
		case board.King:
			id = role(KingID)
			moved = moved || !canCastle
		case board.Queen:
			id = role(QueenID)
		case board.Rook:
			switch {
			case sq == pos.CastleRook[c][board.QueenSide]:
				id = role(QueensRookID)
				moved = !pos.CastlingRights.CanCastle(c, board.QueenSide)
			case sq == pos.CastleRook[c][board.KingSide]:
				id = role(KingsRookID)
				moved = !pos.CastlingRights.CanCastle(c, board.KingSide)
			case queenSide:
				id = role(QueensRookID)
				moved = true
			default:
				id = role(KingsRookID)
				moved = true
			}
		case board.Bishop:
			id = role(pick(queenSide, QueensBishopID, KingsBishopID))
		case board.Knight:
			id = role(pick(queenSide, QueensKnightID, KingsKnightID))
		case board.Pawn:
			id = role(Pawn1ID + Identifier(sq.File()))
			moved = sq.Rank() != p.PawnRank()
		}

		pc := newPiece(p, kind, id, sq)
		if moved {
			pc.MoveCount = 1
		}
		p.pieces = append(p.pieces, pc)
		p.game.squares[sq] = pc
		switch kind {
		case board.King:
			p.king = pc
		case board.Pawn:
			p.pawnCount++
		default:
			p.materialCount++
		}
	}
}

func pick(queenSide bool, q, k Identifier) Identifier {
	if queenSide {
		return q
	}
	return k
}

// Mode returns the placement mode the game started with.
func (g *Game) Mode() Mode {
	return g.mode
}

// Board returns the shared board. Callers must not modify it.
func (g *Game) Board() *board.Position {
	return g.board
}

// History returns the moves played so far.
func (g *Game) History() *History {
	return &g.history
}

// Player returns the side of color c.
func (g *Game) Player(c board.Color) *Player {
	return g.players[c]
}

// PlayerToPlay returns the side to move.
func (g *Game) PlayerToPlay() *Player {
	return g.players[g.board.SideToMove]
}

// StartFEN returns the position the game started from.
func (g *Game) StartFEN() string {
	return g.startFEN
}

// PieceAt returns the piece on sq, or nil.
func (g *Game) PieceAt(sq board.Square) *Piece {
	return g.squares[sq]
}

// MakeMove plays a legal move given in UCI notation. Castling may be given
// as the king's destination or as king takes own rook; where a plain king
// move reads the same, the plain move is played.
func (g *Game) MakeMove(uci string) (*Move, error) {
	moves, err := g.PlayerToPlay().GenerateLegalMoves(nil)
	if err != nil {
		return nil, err
	}

	var found, castle *Move
	for _, m := range moves {
		switch {
		case !m.IsCastle() && m.String() == uci:
			found = m
		case m.IsCastle() && castle == nil && (m.String() == uci || m.bm.RookNotation() == uci):
			castle = m
		}
	}
	if found == nil {
		found = castle
	}
	if found == nil {
		return nil, fmt.Errorf("%s: %w", uci, ErrIllegalMove)
	}
	if err := g.apply(found); err != nil {
		return nil, err
	}
	return found, nil
}

// Play applies a move generated for the side to move, after checking that
// it does not leave the mover's king attacked. A move generated in an
// earlier position is rejected unless it is still pseudo-legal and its
// captured piece and castling rook are the ones on the board now.
func (g *Game) Play(m *Move) error {
	if m == nil || m.Piece == nil || m.Piece.player != g.PlayerToPlay() || g.squares[m.From] != m.Piece {
		return ErrIllegalMove
	}
	if !g.isCurrent(m) {
		return fmt.Errorf("%v: stale move: %w", m, ErrIllegalMove)
	}
	ok, err := m.Piece.player.isLegal(m)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%v: %w", m, ErrIllegalMove)
	}
	return g.apply(m)
}

// isCurrent reports whether m matches the move the board would generate
// for it in the current position.
func (g *Game) isCurrent(m *Move) bool {
	ml := board.NewMoveList()
	g.board.GenerateMovesFrom(m.From, board.AllMoves, ml)
	if !ml.Contains(m.bm) {
		return false
	}
	fresh := g.newMove(m.bm)
	return fresh.Captured == m.Captured && fresh.rook == m.rook
}

// Undo takes back the last move.
func (g *Game) Undo() (*Move, error) {
	m := g.history.Last()
	if m == nil {
		return nil, ErrNoMoveToUndo
	}
	g.undo(m)
	return m, nil
}

// apply plays m on the board and updates both sides. The resulting hash
// pair, half-move clock and draw flags are stored on m before it is pushed
// onto the history.
func (g *Game) apply(m *Move) error {
	mover := m.Piece
	if mover == nil {
		return ErrIllegalMove
	}
	undo := g.board.MakeMove(m.bm)
	if !undo.Valid {
		return fmt.Errorf("%v: %w", m, ErrIllegalMove)
	}
	m.undo = undo
	g.squares[m.From] = nil

	if victim := m.Captured; victim != nil {
		owner := victim.player
		g.squares[victim.Square] = nil
		m.capturedIndex = owner.removePiece(victim)
		owner.countRemoved(victim)
		owner.opponent().captured = append(owner.opponent().captured, victim)
	}

	if m.IsCastle() {
		kingTo, rookTo := board.CastleTargets(mover.Color(), m.bm.CastleWing())
		g.squares[m.rook.Square] = nil
		m.rook.Square = rookTo
		mover.Square = kingTo
		g.squares[rookTo] = m.rook
		g.squares[kingTo] = mover
		m.rook.MoveCount++
		m.prevCastled = mover.player.HasCastled
		mover.player.HasCastled = true
	} else {
		mover.Square = m.To
		g.squares[m.To] = mover
	}
	mover.MoveCount++

	if promo := m.Promotion(); promo != board.NoPieceType {
		mover.promote(promo)
	}

	m.HashA, m.HashB = g.board.HashA, g.board.HashB
	m.HalfMoveClock = g.board.HalfMoveClock
	m.IsFiftyMoveDraw = m.HalfMoveClock >= 100
	g.history.push(m)
	m.IsThreeMoveRepetition, _ = canClaimMoveRepetitionDraw(&g.history, g.start, g.current(), 3)
	return nil
}

// undo reverses apply for the last move on the history.
func (g *Game) undo(m *Move) {
	g.history.pop()
	mover := m.Piece

	if m.Promotion() != board.NoPieceType && mover.promoted {
		mover.demote()
	}
	mover.MoveCount--

	if m.IsCastle() {
		g.squares[mover.Square] = nil
		g.squares[m.rook.Square] = nil
		m.rook.Square = m.bm.To()
		mover.Square = m.From
		g.squares[m.rook.Square] = m.rook
		g.squares[m.From] = mover
		m.rook.MoveCount--
		mover.player.HasCastled = m.prevCastled
	} else {
		g.squares[m.To] = nil
		mover.Square = m.From
		g.squares[m.From] = mover
	}

	if victim := m.Captured; victim != nil {
		owner := victim.player
		capturer := owner.opponent()
		capturer.captured = capturer.captured[:len(capturer.captured)-1]
		owner.restorePiece(victim, m.capturedIndex)
		owner.countRestored(victim)
		g.squares[victim.Square] = victim
	}

	g.board.UnmakeMove(m.bm, m.undo)
}
