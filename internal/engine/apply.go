package engine

import (
	"chessrules/internal/board"
	"chessrules/internal/core"
)

// Apply moves p to the square named label. The origin is cleared first, then
// any occupant of the destination is replaced by a fresh empty marker before p
// is written there. An unknown label leaves the board untouched.
func Apply(b *board.Board, p *board.Piece, label string) {
	dest, ok := b.Square(label)
	if !ok {
		return
	}
	b.Clear(p.Square())
	b.Clear(dest)
	move(b, p, dest)
}

// move writes p into dest and records that it has moved.
func move(b *board.Board, p *board.Piece, dest board.Square) {
	switch p.Kind {
	case core.KindPawn, core.KindRook, core.KindKing:
		p.HasMoved = true
	}
	b.Place(dest, p)
}
