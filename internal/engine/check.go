package engine

import (
	"chessrules/internal/board"
	"chessrules/internal/core"
	"chessrules/internal/rules"
)

// InCheck reports whether color's king is attacked and, if so, whether the
// first attacker found also covers every escape square.
//
// Attacker candidates are the nearest occupant along each diagonal,
// horizontal and vertical ray from the king plus every knight-jump target,
// kept only when enemy-colored. Mate means each escape square is reachable by
// that attacker or is the attacker's own square. A king with no escape
// squares is mated by any check: blocks and captures by other pieces are not
// considered.
func InCheck(b *board.Board, color core.Color) (check, mate bool) {
	king := b.King(color)
	if king == nil {
		return false, false
	}
	kingSquare := b.LabelOf(king)

	for _, enemy := range attackerCandidates(b, king) {
		if !rules.CanMoveTo(b, enemy, kingSquare) {
			continue
		}

		enemySquare := b.LabelOf(enemy)
		escapes := rules.KingMoves(b, king)
		covered := 0
		for _, sq := range escapes {
			if rules.CanMoveTo(b, enemy, sq) || sq == enemySquare {
				covered++
			}
		}
		return true, covered == len(escapes)
	}
	return false, false
}

func attackerCandidates(b *board.Board, king *board.Piece) []*board.Piece {
	var enemies []*board.Piece
	lines := make([]board.Direction, 0, 8)
	lines = append(lines, board.Diagonals...)
	lines = append(lines, board.Horizontals...)
	lines = append(lines, board.Verticals...)

	for _, dir := range lines {
		if p := nearest(b.Ray(king.Square(), dir, board.MaxRay)); p != nil && p.Color != king.Color {
			enemies = append(enemies, p)
		}
	}
	for _, p := range b.KnightTargets(king.Square()) {
		if p.IsEnemyOf(king.Color) {
			enemies = append(enemies, p)
		}
	}
	return enemies
}

// nearest returns the first occupied square of a ray, nil if the ray is clear.
func nearest(ray []*board.Piece) *board.Piece {
	for _, p := range ray {
		if !p.IsEmpty() {
			return p
		}
	}
	return nil
}
