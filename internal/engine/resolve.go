// Package engine turns algebraic move tokens into board mutations and
// answers check, checkmate and castling questions for one side.
package engine

import (
	"strings"

	"chessrules/internal/board"
	"chessrules/internal/core"
	"chessrules/internal/rules"
)

const (
	CastleKingside  = "O-O"
	CastleQueenside = "O-O-O"
)

// IsCastle reports whether token is a castling request and which side.
func IsCastle(token string) (castle, kingside bool) {
	switch token {
	case CastleKingside:
		return true, true
	case CastleQueenside:
		return true, false
	}
	return false, false
}

// Normalize trims whitespace and trailing check, mate and annotation marks.
func Normalize(token string) string {
	return strings.TrimRight(strings.TrimSpace(token), "+#!?")
}

// Resolve finds the piece of color the token refers to, provided that piece
// can legally reach the token's destination. When several pieces qualify the
// first one in board scan order wins.
func Resolve(b *board.Board, color core.Color, token string) (*board.Piece, bool) {
	token = Normalize(token)
	if len(token) < 2 {
		return nil, false
	}
	if castle, _ := IsCastle(token); castle {
		return nil, false
	}

	first := token[0]
	if first >= 'a' && first <= 'h' {
		return resolvePawn(b, color, token)
	}

	kind, ok := core.KindFromLetter(first)
	if !ok {
		return nil, false
	}
	move := strings.ReplaceAll(token, "x", "")

	// origin file disambiguation, e.g. Nbd2 or Nbxd2
	if kind == core.KindKnight && len(move) == 4 && isFile(move[1]) {
		return firstMatch(b, color, kind, move[2:], move[1])
	}
	return firstMatch(b, color, kind, move[1:], 0)
}

func resolvePawn(b *board.Board, color core.Color, token string) (*board.Piece, bool) {
	target := token[len(token)-2:]
	var file byte
	if strings.Contains(token, "x") {
		file = token[0]
	}
	return firstMatch(b, color, core.KindPawn, target, file)
}

// firstMatch returns the first piece of kind and color that can reach target.
// A non-zero file restricts candidates to that origin file.
func firstMatch(b *board.Board, color core.Color, kind core.Kind, target string, file byte) (*board.Piece, bool) {
	for _, p := range b.FindByKind(kind, color) {
		if file != 0 && b.File(p.Col) != file {
			continue
		}
		if rules.CanMoveTo(b, p, target) {
			return p, true
		}
	}
	return nil, false
}

func isFile(ch byte) bool {
	return ch >= 'a' && ch <= 'h'
}

// Target extracts the destination label from a move token.
func Target(token string) string {
	token = Normalize(token)
	if len(token) < 2 {
		return ""
	}
	return token[len(token)-2:]
}
