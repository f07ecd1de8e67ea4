package board

import (
	"chessrules/internal/core"
)

// Square is a (row, col) cell index as the board is currently oriented.
type Square struct {
	Row int
	Col int
}

// Piece occupies exactly one square. Vacant squares hold a piece of
// KindEmpty, so every grid slot is always non-nil.
type Piece struct {
	Kind     core.Kind
	Color    core.Color
	Row      int
	Col      int
	HasMoved bool
}

func NewPiece(kind core.Kind, color core.Color) *Piece {
	return &Piece{Kind: kind, Color: color}
}

// Empty returns a fresh vacant-square marker stamped with its coordinates.
func Empty(row, col int) *Piece {
	return &Piece{Kind: core.KindEmpty, Color: core.ColorNone, Row: row, Col: col}
}

func (p *Piece) IsEmpty() bool {
	return p.Kind == core.KindEmpty
}

// IsEnemyOf reports whether p is an occupied square of the opposing color.
func (p *Piece) IsEnemyOf(c core.Color) bool {
	return !p.IsEmpty() && p.Color != c
}

func (p *Piece) Square() Square {
	return Square{Row: p.Row, Col: p.Col}
}

var glyphs = map[core.Color]map[core.Kind]string{
	core.ColorWhite: {
		core.KindRook:   "♜",
		core.KindKnight: "♞",
		core.KindBishop: "♝",
		core.KindQueen:  "♛",
		core.KindKing:   "♚",
		core.KindPawn:   "♟",
	},
	core.ColorBlack: {
		core.KindRook:   "♖",
		core.KindKnight: "♘",
		core.KindBishop: "♗",
		core.KindQueen:  "♕",
		core.KindKing:   "♔",
		core.KindPawn:   "♙",
	},
}

// Glyph is the display character for the occupant, "~" for an empty square.
func (p *Piece) Glyph() string {
	if p.IsEmpty() {
		return "~"
	}
	return glyphs[p.Color][p.Kind]
}

var letters = map[core.Kind]byte{
	core.KindPawn:   'p',
	core.KindKnight: 'n',
	core.KindBishop: 'b',
	core.KindRook:   'r',
	core.KindQueen:  'q',
	core.KindKing:   'k',
}

// Letter returns the FEN letter, uppercase for white, 0 for an empty square.
func (p *Piece) Letter() byte {
	if p.IsEmpty() {
		return 0
	}
	l := letters[p.Kind]
	if p.Color == core.ColorWhite {
		l -= 'a' - 'A'
	}
	return l
}

func pieceFromLetter(ch byte) (*Piece, bool) {
	color := core.ColorBlack
	lower := ch
	if ch >= 'A' && ch <= 'Z' {
		color = core.ColorWhite
		lower = ch + ('a' - 'A')
	}
	for kind, l := range letters {
		if l == lower {
			return NewPiece(kind, color), true
		}
	}
	return nil, false
}
