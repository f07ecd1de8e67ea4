package game

import (
	"fmt"

	"chessrules/internal/board"
	"chessrules/internal/core"
	"chessrules/internal/engine"
)

// PassToken is logged in the move list for a skipped turn.
const PassToken = "pass"

// MoveResult tracks the outcome of a move
type MoveResult struct {
	Move      string
	Player    core.Color
	From      string
	To        string
	Castle    bool
	Pass      bool
	Check     bool // side now to move is in check
	GameState core.State
}

// Game is the turn state wrapped around a single board. It is not safe for
// concurrent use.
type Game struct {
	board      *board.Board
	initialFEN string
	turn       core.Color
	moveCount  int
	moves      []string
	state      core.State
	check      bool
	lastResult *MoveResult
}

// New starts a game from the standard position with white to move.
func New() *Game {
	g := &Game{
		board:      board.New(),
		initialFEN: board.StartingFEN,
		turn:       core.ColorWhite,
	}
	g.updateStatus()
	return g
}

// FromFEN starts a game from an arbitrary position.
func FromFEN(fen string) (*Game, error) {
	b, turn, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	g := &Game{
		board:      b,
		initialFEN: fen,
		turn:       turn,
	}
	g.updateStatus()
	return g, nil
}

// Move resolves and applies an algebraic move for the side to move. A token
// that cannot be resolved changes nothing, the turn included.
func (g *Game) Move(token string) (*MoveResult, error) {
	if g.state != core.StateOngoing {
		return nil, ErrGameOver
	}

	move := engine.Normalize(token)
	if move == "" {
		return nil, ErrEmptyMove
	}

	result := &MoveResult{Move: move, Player: g.turn}

	if castle, kingside := engine.IsCastle(move); castle {
		king := g.board.King(g.turn)
		if king != nil {
			result.From = g.board.LabelOf(king)
		}
		if !engine.TryCastle(g.board, g.turn, kingside) {
			return nil, fmt.Errorf("%w: %s cannot castle with %s", ErrIllegalMove, g.turn, move)
		}
		result.To = g.board.LabelOf(king)
		result.Castle = true
	} else {
		piece, ok := engine.Resolve(g.board, g.turn, move)
		if !ok {
			return nil, fmt.Errorf("%w: no %s piece can play %s", ErrIllegalMove, g.turn, move)
		}
		result.From = g.board.LabelOf(piece)
		result.To = engine.Target(move)
		engine.Apply(g.board, piece, result.To)
	}

	g.advance(move)
	result.Check = g.check
	result.GameState = g.state
	g.lastResult = result
	return result, nil
}

// Pass hands the turn to the opponent without touching the board. It still
// counts as a move.
func (g *Game) Pass() (*MoveResult, error) {
	if g.state != core.StateOngoing {
		return nil, ErrGameOver
	}
	result := &MoveResult{Move: PassToken, Player: g.turn, Pass: true}
	g.advance(PassToken)
	result.Check = g.check
	result.GameState = g.state
	g.lastResult = result
	return result, nil
}

// Reverse flips the board orientation. Turn and move count are unaffected.
func (g *Game) Reverse() {
	g.board.Flip()
}

// Reset discards the board and starts over from the standard position.
func (g *Game) Reset() {
	*g = *New()
}

func (g *Game) advance(move string) {
	g.moves = append(g.moves, move)
	g.moveCount++
	g.turn = core.OppositeColor(g.turn)
	g.updateStatus()
}

// updateStatus evaluates check and mate for the side to move.
func (g *Game) updateStatus() {
	check, mate := engine.InCheck(g.board, g.turn)
	g.check = check
	if check && mate {
		g.state = core.WinnerState(core.OppositeColor(g.turn))
	}
}

func (g *Game) Board() *board.Board {
	return g.board
}

func (g *Game) Turn() core.Color {
	return g.turn
}

// MoveCount is the number of half-moves played, passes included.
func (g *Game) MoveCount() int {
	return g.moveCount
}

func (g *Game) State() core.State {
	return g.state
}

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool {
	return g.check
}

func (g *Game) LastResult() *MoveResult {
	return g.lastResult
}

func (g *Game) InitialFEN() string {
	return g.initialFEN
}

func (g *Game) Moves() []string {
	moves := make([]string, len(g.moves))
	copy(moves, g.moves)
	return moves
}

// Winner returns the winning color once the game is over.
func (g *Game) Winner() core.Color {
	switch g.state {
	case core.StateWhiteWins:
		return core.ColorWhite
	case core.StateBlackWins:
		return core.ColorBlack
	}
	return core.ColorNone
}

// FEN describes the current position. En passant is never available and the
// halfmove clock is not tracked.
func (g *Game) FEN() string {
	return fmt.Sprintf("%s %c %s - 0 %d",
		g.board.Placement(), g.turn, g.board.CastlingField(), 1+g.moveCount/2)
}
