package core

type State int

const (
	StateOngoing State = iota
	StateWhiteWins
	StateBlackWins
)

func (s State) String() string {
	switch s {
	case StateWhiteWins:
		return "white wins"
	case StateBlackWins:
		return "black wins"
	case StateOngoing:
		return "ongoing"
	default:
		return "unknown"
	}
}

// WinnerState returns the terminal state for a game won by c.
func WinnerState(c Color) State {
	if c == ColorWhite {
		return StateWhiteWins
	}
	return StateBlackWins
}

type Color byte

const (
	ColorNone  Color = '-'
	ColorWhite Color = 'w'
	ColorBlack Color = 'b'
)

func (c Color) String() string {
	switch c {
	case ColorWhite:
		return "white"
	case ColorBlack:
		return "black"
	default:
		return "none"
	}
}

func OppositeColor(c Color) Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}

// Kind is the closed set of occupants a square can hold. Empty is a kind,
// not the absence of a piece.
type Kind int

const (
	KindEmpty Kind = iota
	KindPawn
	KindKnight
	KindBishop
	KindRook
	KindQueen
	KindKing
)

func (k Kind) String() string {
	switch k {
	case KindPawn:
		return "pawn"
	case KindKnight:
		return "knight"
	case KindBishop:
		return "bishop"
	case KindRook:
		return "rook"
	case KindQueen:
		return "queen"
	case KindKing:
		return "king"
	default:
		return "empty"
	}
}

// KindFromLetter maps an algebraic piece letter (K, Q, B, R, N) to its kind.
func KindFromLetter(letter byte) (Kind, bool) {
	switch letter {
	case 'K':
		return KindKing, true
	case 'Q':
		return KindQueen, true
	case 'B':
		return KindBishop, true
	case 'R':
		return KindRook, true
	case 'N':
		return KindKnight, true
	}
	return KindEmpty, false
}
