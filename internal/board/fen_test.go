package board

import (
	"strings"
	"testing"

	"chessrules/internal/core"
)

func TestStartingPlacement(t *testing.T) {
	b := New()
	want := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

	if got := b.Placement(); got != want {
		t.Errorf("Placement() = %q, want %q", got, want)
	}
	if got := b.CastlingField(); got != "KQkq" {
		t.Errorf("CastlingField() = %q, want KQkq", got)
	}

	b.Flip()
	if got := b.Placement(); got != want {
		t.Errorf("Placement() after flip = %q, want %q", got, want)
	}
}

func TestParseFENRoundTrip(t *testing.T) {
	tests := []string{
		StartingFEN,
		"r3k2r/pppq1ppp/2n2n2/3p4/3P4/2N2N2/PPPQ1PPP/R3K2R b KQkq - 4 8",
		"6k1/8/8/8/8/8/5nPP/6RK w - - 0 1",
		"4r2k/8/8/8/8/8/8/4K3 w - - 0 1",
	}

	for _, fen := range tests {
		b, _, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q) error: %v", fen, err)
		}
		want := strings.Fields(fen)[0]
		if got := b.Placement(); got != want {
			t.Errorf("Placement() = %q, want %q", got, want)
		}
	}
}

func TestParseFENTurn(t *testing.T) {
	_, turn, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}
	if turn != core.ColorBlack {
		t.Errorf("turn = %s, want black", turn)
	}
}

func TestParseFENMovedFlags(t *testing.T) {
	b, _, err := ParseFEN("r3k2r/8/8/8/8/4P3/3P4/R3K2R w Kq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN error: %v", err)
	}

	tests := []struct {
		square string
		moved  bool
	}{
		{"h1", false}, // K right kept
		{"a1", true},  // Q right gone
		{"a8", false}, // q right kept
		{"h8", true},  // k right gone
		{"e1", false},
		{"e8", false},
		{"d2", false},
		{"e3", true},
	}

	for _, tt := range tests {
		sq, _ := b.Square(tt.square)
		if got := b.PieceAt(sq).HasMoved; got != tt.moved {
			t.Errorf("%s HasMoved = %v, want %v", tt.square, got, tt.moved)
		}
	}

	if got := b.CastlingField(); got != "Kq" {
		t.Errorf("CastlingField() = %q, want Kq", got)
	}
}

func TestParseFENErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"too few fields", "8/8/8/8/8/8/8/8 w"},
		{"seven ranks", "8/8/8/8/8/8/8 w - - 0 1"},
		{"short rank", "4k3/8/8/8/8/8/8/4K2 w - - 0 1"},
		{"long rank", "4k3/8/8/8/8/8/8/4K4 w - - 0 1"},
		{"unknown piece", "4k3/8/8/8/8/8/8/4K2X w - - 0 1"},
		{"bad turn", "4k3/8/8/8/8/8/8/4K3 x - - 0 1"},
		{"bad castling", "4k3/8/8/8/8/8/8/4K3 w XY - 0 1"},
		{"bad clock", "4k3/8/8/8/8/8/8/4K3 w - - a 1"},
		{"missing black king", "8/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"two white kings", "4k3/8/8/8/8/8/8/3KK3 w - - 0 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ParseFEN(tt.fen); err == nil {
				t.Errorf("ParseFEN(%q) succeeded, want error", tt.fen)
			}
		})
	}
}
