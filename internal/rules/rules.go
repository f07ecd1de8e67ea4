// Package rules computes where a single piece may move given the current
// board contents. It knows nothing about turns, check or castling.
package rules

import (
	"chessrules/internal/board"
	"chessrules/internal/core"
)

// Reachable returns every occupant p could end its move on, including the
// enemy piece that stops a sliding ray. Empty pieces yield nothing.
func Reachable(b *board.Board, p *board.Piece) []*board.Piece {
	switch p.Kind {
	case core.KindRook:
		return slide(b, p, board.Orthogonals)
	case core.KindBishop:
		return slide(b, p, board.Diagonals)
	case core.KindQueen:
		return slide(b, p, append(append([]board.Direction{}, board.Orthogonals...), board.Diagonals...))
	case core.KindKnight:
		return jump(b, p)
	case core.KindKing:
		return adjacent(b, p)
	case core.KindPawn:
		return pawn(b, p)
	default:
		return nil
	}
}

// Destinations converts Reachable into algebraic labels through the board's
// label grid.
func Destinations(b *board.Board, p *board.Piece) []string {
	reach := Reachable(b, p)
	labels := make([]string, 0, len(reach))
	for _, q := range reach {
		labels = append(labels, b.LabelOf(q))
	}
	return labels
}

// CanMoveTo reports whether label is among p's destinations.
func CanMoveTo(b *board.Board, p *board.Piece, label string) bool {
	for _, dest := range Destinations(b, p) {
		if dest == label {
			return true
		}
	}
	return false
}

// KingMoves returns the labels of the king's escape squares: adjacent cells
// that are empty or enemy-held. Castling is not included.
func KingMoves(b *board.Board, king *board.Piece) []string {
	return Destinations(b, king)
}

// KingCanMove reports whether the king has at least one escape square. It
// says nothing about other pieces.
func KingCanMove(b *board.Board, king *board.Piece) bool {
	return len(adjacent(b, king)) != 0
}

func slide(b *board.Board, p *board.Piece, dirs []board.Direction) []*board.Piece {
	var reach []*board.Piece
	for _, dir := range dirs {
		for _, q := range b.Ray(p.Square(), dir, board.MaxRay) {
			if q.IsEmpty() {
				reach = append(reach, q)
				continue
			}
			if q.Color != p.Color {
				reach = append(reach, q)
			}
			break
		}
	}
	return reach
}

func jump(b *board.Board, p *board.Piece) []*board.Piece {
	var reach []*board.Piece
	for _, q := range b.KnightTargets(p.Square()) {
		if q.IsEmpty() || q.Color != p.Color {
			reach = append(reach, q)
		}
	}
	return reach
}

var kingSteps = []board.Direction{
	board.NorthWest, board.North, board.NorthEast,
	board.West, board.East,
	board.SouthWest, board.South, board.SouthEast,
}

func adjacent(b *board.Board, p *board.Piece) []*board.Piece {
	var reach []*board.Piece
	for _, dir := range kingSteps {
		for _, q := range b.Ray(p.Square(), dir, 1) {
			if q.IsEmpty() || q.Color != p.Color {
				reach = append(reach, q)
			}
		}
	}
	return reach
}
