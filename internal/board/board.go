package board

import (
	"fmt"
	"strings"

	"chessrules/internal/core"
)

const (
	Size = 8
	// MaxRay is the longest possible straight-line walk from any square.
	MaxRay = Size - 1
)

// Direction is a unit step in grid space (row, col), independent of
// orientation.
type Direction struct {
	DRow int
	DCol int
}

var (
	North     = Direction{-1, 0}
	South     = Direction{1, 0}
	East      = Direction{0, 1}
	West      = Direction{0, -1}
	NorthEast = Direction{-1, 1}
	NorthWest = Direction{-1, -1}
	SouthEast = Direction{1, 1}
	SouthWest = Direction{1, -1}
)

var (
	Diagonals   = []Direction{SouthEast, SouthWest, NorthEast, NorthWest}
	Horizontals = []Direction{West, East}
	Verticals   = []Direction{North, South}
	Orthogonals = []Direction{West, East, North, South}
)

var knightOffsets = [8]Direction{
	{2, 1}, {2, -1},
	{1, -2}, {1, 2},
	{-1, -2}, {-1, 2},
	{-2, 1}, {-2, -1},
}

var backRow = [Size]core.Kind{
	core.KindRook, core.KindKnight, core.KindBishop, core.KindQueen,
	core.KindKing, core.KindBishop, core.KindKnight, core.KindRook,
}

// Board owns the piece grid together with the algebraic label grid and the
// file letters. The three are always reversed together, so labels[r][c]
// names the square holding squares[r][c] in either orientation.
type Board struct {
	squares  [Size][Size]*Piece
	labels   [Size][Size]string
	files    [Size]byte
	reversed bool
}

// NewEmpty creates a board in standard orientation with every square vacant.
func NewEmpty() *Board {
	b := &Board{}
	for c := 0; c < Size; c++ {
		b.files[c] = byte('a' + c)
	}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			b.labels[r][c] = fmt.Sprintf("%c%c", 'a'+c, '8'-r)
			b.squares[r][c] = Empty(r, c)
		}
	}
	return b
}

// New creates a board with the standard starting layout, black on top.
func New() *Board {
	b := NewEmpty()
	for c := 0; c < Size; c++ {
		b.squares[0][c] = NewPiece(backRow[c], core.ColorBlack)
		b.squares[1][c] = NewPiece(core.KindPawn, core.ColorBlack)
		b.squares[6][c] = NewPiece(core.KindPawn, core.ColorWhite)
		b.squares[7][c] = NewPiece(backRow[c], core.ColorWhite)
	}
	b.stamp()
	return b
}

// stamp rewrites every piece's stored square to its grid position.
func (b *Board) stamp() {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			b.squares[r][c].Row = r
			b.squares[r][c].Col = c
		}
	}
}

func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// PieceAt returns the occupant of sq. Callers check InBounds first.
func (b *Board) PieceAt(sq Square) *Piece {
	return b.squares[sq.Row][sq.Col]
}

// Set writes p into sq without touching p's stored coordinates.
func (b *Board) Set(sq Square, p *Piece) {
	b.squares[sq.Row][sq.Col] = p
}

// Place writes p into sq and stamps p with that square.
func (b *Board) Place(sq Square, p *Piece) {
	p.Row, p.Col = sq.Row, sq.Col
	b.squares[sq.Row][sq.Col] = p
}

// Clear replaces the occupant of sq with a fresh empty marker.
func (b *Board) Clear(sq Square) {
	b.squares[sq.Row][sq.Col] = Empty(sq.Row, sq.Col)
}

// Ray walks from sq in dir for at most maxSteps squares or until the edge,
// returning the occupants nearest first. The origin is not included.
func (b *Board) Ray(sq Square, dir Direction, maxSteps int) []*Piece {
	var pieces []*Piece
	for i := 1; i <= maxSteps; i++ {
		r, c := sq.Row+dir.DRow*i, sq.Col+dir.DCol*i
		if !InBounds(r, c) {
			break
		}
		pieces = append(pieces, b.squares[r][c])
	}
	return pieces
}

// KnightTargets returns the occupants of the in-bounds L-shaped jumps from sq.
func (b *Board) KnightTargets(sq Square) []*Piece {
	pieces := make([]*Piece, 0, len(knightOffsets))
	for _, off := range knightOffsets {
		r, c := sq.Row+off.DRow, sq.Col+off.DCol
		if InBounds(r, c) {
			pieces = append(pieces, b.squares[r][c])
		}
	}
	return pieces
}

// FindByKind scans the grid top to bottom, left to right. With colors given,
// only pieces of those colors are returned.
func (b *Board) FindByKind(kind core.Kind, colors ...core.Color) []*Piece {
	var found []*Piece
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			p := b.squares[r][c]
			if p.Kind != kind {
				continue
			}
			if len(colors) > 0 && !hasColor(colors, p.Color) {
				continue
			}
			found = append(found, p)
		}
	}
	return found
}

func hasColor(colors []core.Color, c core.Color) bool {
	for _, want := range colors {
		if want == c {
			return true
		}
	}
	return false
}

// King returns the king of color c, or nil on a board that breaks the
// one-king-per-side invariant.
func (b *Board) King(c core.Color) *Piece {
	kings := b.FindByKind(core.KindKing, c)
	if len(kings) == 0 {
		return nil
	}
	return kings[0]
}

// Flip turns the board around. Rows, columns, labels and file letters are all
// reversed, and every piece is re-stamped with its new position.
func (b *Board) Flip() {
	var squares [Size][Size]*Piece
	var labels [Size][Size]string
	var files [Size]byte
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			squares[r][c] = b.squares[Size-1-r][Size-1-c]
			labels[r][c] = b.labels[Size-1-r][Size-1-c]
		}
		files[r] = b.files[Size-1-r]
	}
	b.squares, b.labels, b.files = squares, labels, files
	b.reversed = !b.reversed
	b.stamp()
}

func (b *Board) Reversed() bool {
	return b.reversed
}

// Label returns the algebraic name of the cell at (row, col).
func (b *Board) Label(row, col int) string {
	return b.labels[row][col]
}

// LabelOf returns the algebraic name of the square p stands on.
func (b *Board) LabelOf(p *Piece) string {
	return b.labels[p.Row][p.Col]
}

// Square looks up the cell currently carrying label.
func (b *Board) Square(label string) (Square, bool) {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.labels[r][c] == label {
				return Square{Row: r, Col: c}, true
			}
		}
	}
	return Square{}, false
}

// File returns the file letter of column col as currently oriented.
func (b *Board) File(col int) byte {
	return b.files[col]
}

// Render returns one display glyph per square as currently oriented.
func (b *Board) Render() [Size][Size]string {
	var grid [Size][Size]string
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			grid[r][c] = b.squares[r][c].Glyph()
		}
	}
	return grid
}

// ToASCII creates an ASCII representation of the board as currently oriented
func (b *Board) ToASCII() string {
	var sb strings.Builder
	header := b.fileHeader()
	sb.WriteString(header + "\n")

	for r := 0; r < Size; r++ {
		rank := b.labels[r][0][1]
		sb.WriteString(fmt.Sprintf("%c ", rank))
		for c := 0; c < Size; c++ {
			if l := b.squares[r][c].Letter(); l != 0 {
				sb.WriteString(fmt.Sprintf("%c ", l))
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteString(fmt.Sprintf(" %c\n", rank))
	}
	sb.WriteString(header)

	return sb.String()
}

func (b *Board) fileHeader() string {
	var sb strings.Builder
	sb.WriteString(" ")
	for _, f := range b.files {
		sb.WriteString(fmt.Sprintf(" %c", f))
	}
	return sb.String()
}
