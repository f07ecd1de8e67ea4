package engine

import (
	"chessrules/internal/board"
	"chessrules/internal/core"
)

const (
	kingsideDistance  = 3
	queensideDistance = 4
)

// TryCastle castles color's king toward the king side or queen side rook and
// reports whether it did. It requires an unmoved king, an unmoved rook of the
// same color on the king's row at the side's distance, and only empty squares
// between them. Passing through check is not verified. On failure the board
// is unchanged.
func TryCastle(b *board.Board, color core.Color, kingside bool) bool {
	king := b.King(color)
	if king == nil || king.HasMoved {
		return false
	}

	distance := queensideDistance
	if kingside {
		distance = kingsideDistance
	}
	rook := castlingRook(b, king, distance)
	if rook == nil || !pathClear(b, king, rook) {
		return false
	}

	step := 1
	if rook.Col < king.Col {
		step = -1
	}
	kingTo := board.Square{Row: king.Row, Col: king.Col + 2*step}
	rookTo := board.Square{Row: king.Row, Col: kingTo.Col - step}

	b.Clear(king.Square())
	b.Clear(rook.Square())
	move(b, king, kingTo)
	move(b, rook, rookTo)
	return true
}

func castlingRook(b *board.Board, king *board.Piece, distance int) *board.Piece {
	for _, rook := range b.FindByKind(core.KindRook, king.Color) {
		if rook.HasMoved || rook.Row != king.Row {
			continue
		}
		if abs(rook.Col-king.Col) == distance {
			return rook
		}
	}
	return nil
}

// pathClear reports whether every square strictly between king and rook on
// their shared row is empty.
func pathClear(b *board.Board, king, rook *board.Piece) bool {
	lo, hi := king.Col, rook.Col
	if lo > hi {
		lo, hi = hi, lo
	}
	for col := lo + 1; col < hi; col++ {
		if !b.PieceAt(board.Square{Row: king.Row, Col: col}).IsEmpty() {
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
