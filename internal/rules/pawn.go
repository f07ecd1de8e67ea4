package rules

import (
	"chessrules/internal/board"
	"chessrules/internal/core"
)

// Forward returns the row delta of one pawn step for color. White advances
// toward row 0 in standard orientation; reversing the board flips both sides.
func Forward(color core.Color, reversed bool) int {
	if (color == core.ColorWhite) != reversed {
		return -1
	}
	return 1
}

func pawn(b *board.Board, p *board.Piece) []*board.Piece {
	var reach []*board.Piece
	dir := Forward(p.Color, b.Reversed())
	up := p.Row + dir

	if board.InBounds(up, p.Col) {
		ahead := b.PieceAt(board.Square{Row: up, Col: p.Col})
		if ahead.IsEmpty() {
			reach = append(reach, ahead)

			twoUp := up + dir
			if !p.HasMoved && board.InBounds(twoUp, p.Col) {
				if q := b.PieceAt(board.Square{Row: twoUp, Col: p.Col}); q.IsEmpty() {
					reach = append(reach, q)
				}
			}
		}
	}

	// captures only; an empty diagonal is never a destination
	for _, col := range []int{p.Col - 1, p.Col + 1} {
		if !board.InBounds(up, col) {
			continue
		}
		if q := b.PieceAt(board.Square{Row: up, Col: col}); q.IsEnemyOf(p.Color) {
			reach = append(reach, q)
		}
	}
	return reach
}
