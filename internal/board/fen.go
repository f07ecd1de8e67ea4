package board

import (
	"fmt"
	"strings"

	"chessrules/internal/core"
)

const (
	StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

// home squares in standard orientation, used to derive HasMoved from FEN
type home struct {
	row, col int
	right    byte
}

var rookHomes = map[core.Color][]home{
	core.ColorWhite: {{7, 7, 'K'}, {7, 0, 'Q'}},
	core.ColorBlack: {{0, 7, 'k'}, {0, 0, 'q'}},
}

var kingHomes = map[core.Color]home{
	core.ColorWhite: {row: 7, col: 4},
	core.ColorBlack: {row: 0, col: 4},
}

var pawnRows = map[core.Color]int{
	core.ColorWhite: 6,
	core.ColorBlack: 1,
}

// ParseFEN builds a board in standard orientation from a six-field FEN and
// returns the side to move. En passant and the clocks are validated but not
// kept. HasMoved flags are reconstructed from the placement and the castling
// field.
func ParseFEN(fen string) (*Board, core.Color, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, core.ColorNone, fmt.Errorf("invalid FEN: expected 6 parts, got %d", len(parts))
	}

	b := NewEmpty()

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != Size {
		return nil, core.ColorNone, fmt.Errorf("invalid FEN: expected 8 ranks")
	}

	for r := 0; r < Size; r++ {
		file := 0
		for i := 0; i < len(ranks[r]); i++ {
			ch := ranks[r][i]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			if file >= Size {
				return nil, core.ColorNone, fmt.Errorf("invalid FEN: too many pieces in rank %d", Size-r)
			}
			p, ok := pieceFromLetter(ch)
			if !ok {
				return nil, core.ColorNone, fmt.Errorf("invalid FEN: unknown piece %q", ch)
			}
			b.squares[r][file] = p
			file++
		}
		if file != Size {
			return nil, core.ColorNone, fmt.Errorf("invalid FEN: rank %d has %d files", Size-r, file)
		}
	}
	b.stamp()

	var turn core.Color
	switch parts[1] {
	case "w":
		turn = core.ColorWhite
	case "b":
		turn = core.ColorBlack
	default:
		return nil, core.ColorNone, fmt.Errorf("invalid FEN: turn must be 'w' or 'b'")
	}

	castling := parts[2]
	if strings.Trim(castling, "KQkq") != "" && castling != "-" {
		return nil, core.ColorNone, fmt.Errorf("invalid FEN: castling field %q", castling)
	}

	var n int
	if _, err := fmt.Sscanf(parts[4], "%d", &n); err != nil {
		return nil, core.ColorNone, fmt.Errorf("invalid FEN: halfmove counter")
	}
	if _, err := fmt.Sscanf(parts[5], "%d", &n); err != nil {
		return nil, core.ColorNone, fmt.Errorf("invalid FEN: fullmove counter")
	}

	for _, c := range []core.Color{core.ColorWhite, core.ColorBlack} {
		if kings := b.FindByKind(core.KindKing, c); len(kings) != 1 {
			return nil, core.ColorNone, fmt.Errorf("invalid FEN: expected one %s king, got %d", c, len(kings))
		}
	}

	b.markMoved(castling)
	return b, turn, nil
}

// markMoved sets HasMoved on every piece that cannot be on its initial square
// with its initial rights. Only valid in standard orientation.
func (b *Board) markMoved(castling string) {
	for _, p := range b.FindByKind(core.KindPawn) {
		p.HasMoved = p.Row != pawnRows[p.Color]
	}
	for _, p := range b.FindByKind(core.KindRook) {
		p.HasMoved = true
		for _, h := range rookHomes[p.Color] {
			if p.Row == h.row && p.Col == h.col && strings.IndexByte(castling, h.right) >= 0 {
				p.HasMoved = false
			}
		}
	}
	for _, p := range b.FindByKind(core.KindKing) {
		h := kingHomes[p.Color]
		p.HasMoved = true
		if p.Row == h.row && p.Col == h.col {
			for _, rh := range rookHomes[p.Color] {
				if strings.IndexByte(castling, rh.right) >= 0 {
					p.HasMoved = false
				}
			}
		}
	}
}

// standard returns the occupant of (row, col) in standard orientation.
func (b *Board) standard(row, col int) *Piece {
	if b.reversed {
		return b.squares[Size-1-row][Size-1-col]
	}
	return b.squares[row][col]
}

// Placement returns the FEN piece-placement field, always written from
// white's side regardless of orientation.
func (b *Board) Placement() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		gap := 0
		for c := 0; c < Size; c++ {
			l := b.standard(r, c).Letter()
			if l == 0 {
				gap++
				continue
			}
			if gap > 0 {
				sb.WriteByte(byte('0' + gap))
				gap = 0
			}
			sb.WriteByte(l)
		}
		if gap > 0 {
			sb.WriteByte(byte('0' + gap))
		}
	}
	return sb.String()
}

// CastlingField returns the FEN castling availability implied by unmoved
// kings and rooks on their home squares.
func (b *Board) CastlingField() string {
	var sb strings.Builder
	for _, c := range []core.Color{core.ColorWhite, core.ColorBlack} {
		kh := kingHomes[c]
		king := b.standard(kh.row, kh.col)
		if king.Kind != core.KindKing || king.Color != c || king.HasMoved {
			continue
		}
		for _, h := range rookHomes[c] {
			rook := b.standard(h.row, h.col)
			if rook.Kind == core.KindRook && rook.Color == c && !rook.HasMoved {
				sb.WriteByte(h.right)
			}
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
