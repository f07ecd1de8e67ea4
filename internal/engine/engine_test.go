package engine

import (
	"testing"

	"chessrules/internal/board"
	"chessrules/internal/core"

	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, fen string) *board.Board {
	t.Helper()
	b, _, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func pieceAt(t *testing.T, b *board.Board, label string) *board.Piece {
	t.Helper()
	sq, ok := b.Square(label)
	if !ok {
		t.Fatalf("no square %q", label)
	}
	return b.PieceAt(sq)
}

func TestResolveAndApplyOpeningPawn(t *testing.T) {
	b := board.New()

	p, ok := Resolve(b, core.ColorWhite, "e4")
	if !ok {
		t.Fatalf("Resolve(e4) found no piece")
	}
	if got := b.LabelOf(p); got != "e2" {
		t.Fatalf("Resolve(e4) picked %s, want e2", got)
	}

	Apply(b, p, Target("e4"))

	if e2 := pieceAt(t, b, "e2"); !e2.IsEmpty() {
		t.Errorf("e2 holds %s after e4", e2.Kind)
	}
	e4 := pieceAt(t, b, "e4")
	if e4.Kind != core.KindPawn || e4.Color != core.ColorWhite {
		t.Errorf("e4 holds %s %s, want white pawn", e4.Color, e4.Kind)
	}
	if !e4.HasMoved {
		t.Errorf("pawn on e4 not marked as moved")
	}
	if e4.Square() != p.Square() || b.LabelOf(p) != "e4" {
		t.Errorf("moved pawn stamped at %+v", p.Square())
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		color core.Color
		token string
		from  string
	}{
		{"pawn push", board.StartingFEN, core.ColorWhite, "d4", "d2"},
		{"black pawn push", board.StartingFEN, core.ColorBlack, "e5", "e7"},
		{"knight", board.StartingFEN, core.ColorWhite, "Nf3", "g1"},
		{"knight queen side", board.StartingFEN, core.ColorWhite, "Nc3", "b1"},
		{"black knight", board.StartingFEN, core.ColorBlack, "Nf6", "g8"},
		{"annotated", board.StartingFEN, core.ColorWhite, "e4!?", "e2"},
		{"first pawn in scan order", "4k3/8/8/3p4/2P1P3/8/8/4K3 w - - 0 1", core.ColorWhite, "d5", "c4"},
		{"pawn capture left", "4k3/8/8/3p4/2P1P3/8/8/4K3 w - - 0 1", core.ColorWhite, "exd5", "e4"},
		{"pawn capture right", "4k3/8/8/3p4/2P1P3/8/8/4K3 w - - 0 1", core.ColorWhite, "cxd5", "c4"},
		{"black pawn capture", "4k3/8/8/3p4/2P1P3/8/8/4K3 b - - 0 1", core.ColorBlack, "dxe4", "d5"},
		{"knight first in scan order", "4k3/8/8/8/8/5N2/8/1N2K3 w - - 0 1", core.ColorWhite, "Nd2", "f3"},
		{"knight file b", "4k3/8/8/8/8/5N2/8/1N2K3 w - - 0 1", core.ColorWhite, "Nbd2", "b1"},
		{"knight file f", "4k3/8/8/8/8/5N2/8/1N2K3 w - - 0 1", core.ColorWhite, "Nfd2", "f3"},
		{"knight file with capture mark", "4k3/8/8/8/8/5N2/3p4/1N2K3 w - - 0 1", core.ColorWhite, "Nbxd2", "b1"},
		{"queen capture", "4k3/8/8/4p3/8/8/8/Q3K3 w - - 0 1", core.ColorWhite, "Qxe5+", "a1"},
		{"second queen", "4k3/8/8/4p3/8/8/Q7/Q3K3 w - - 0 1", core.ColorWhite, "Qc1", "a1"},
		{"rook", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", core.ColorWhite, "Rd1", "a1"},
		{"bishop", board.StartingFEN, core.ColorWhite, "Bc4", ""},
		{"king", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", core.ColorWhite, "Kd2", "e1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustParse(t, tt.fen)
			p, ok := Resolve(b, tt.color, tt.token)
			if tt.from == "" {
				if ok {
					t.Fatalf("Resolve(%s) picked %s, want no piece", tt.token, b.LabelOf(p))
				}
				return
			}
			if !ok {
				t.Fatalf("Resolve(%s) found no piece", tt.token)
			}
			if got := b.LabelOf(p); got != tt.from {
				t.Errorf("Resolve(%s) picked %s, want %s", tt.token, got, tt.from)
			}
		})
	}
}

func TestResolveRejects(t *testing.T) {
	b := board.New()
	tokens := []string{
		"",
		"e",
		"e5",   // too far for a pawn
		"Z4",   // unknown piece letter
		"Ke2",  // own pawn on e2
		"Qd4",  // queen is blocked
		"O-O",  // castling is routed elsewhere
		"dxe3", // e3 is empty
	}
	for _, token := range tokens {
		if p, ok := Resolve(b, core.ColorWhite, token); ok {
			t.Errorf("Resolve(%q) picked %s", token, b.LabelOf(p))
		}
	}
}

func TestResolveOnReversedBoard(t *testing.T) {
	b := board.New()
	b.Flip()

	p, ok := Resolve(b, core.ColorWhite, "e4")
	if !ok {
		t.Fatalf("Resolve(e4) found no piece on reversed board")
	}
	if got := b.LabelOf(p); got != "e2" {
		t.Fatalf("Resolve(e4) picked %s, want e2", got)
	}
	Apply(b, p, "e4")

	if e4 := pieceAt(t, b, "e4"); e4.Kind != core.KindPawn || e4.Color != core.ColorWhite {
		t.Errorf("e4 holds %s %s after move on reversed board", e4.Color, e4.Kind)
	}
	if want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR"; b.Placement() != want {
		t.Errorf("Placement() = %q, want %q", b.Placement(), want)
	}
}

func TestApplyCapture(t *testing.T) {
	b := mustParse(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	p, ok := Resolve(b, core.ColorWhite, "exd5")
	if !ok {
		t.Fatalf("Resolve(exd5) found no piece")
	}
	Apply(b, p, Target("exd5"))

	if got := len(b.FindByKind(core.KindPawn, core.ColorBlack)); got != 0 {
		t.Errorf("%d black pawns left after capture", got)
	}
	if want := "4k3/8/8/3P4/8/8/8/4K3"; b.Placement() != want {
		t.Errorf("Placement() = %q, want %q", b.Placement(), want)
	}
}

func TestNormalizeAndTarget(t *testing.T) {
	tests := []struct {
		token, normal, target string
	}{
		{" e4 ", "e4", "e4"},
		{"Qh4#", "Qh4", "h4"},
		{"Nbxd2+", "Nbxd2", "d2"},
		{"e8!!", "e8", "e8"},
		{"x", "x", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.token); got != tt.normal {
			t.Errorf("Normalize(%q) = %q, want %q", tt.token, got, tt.normal)
		}
		if got := Target(tt.token); got != tt.target {
			t.Errorf("Target(%q) = %q, want %q", tt.token, got, tt.target)
		}
	}
}

func TestIsCastle(t *testing.T) {
	tests := []struct {
		token            string
		castle, kingside bool
	}{
		{"O-O", true, true},
		{"O-O-O", true, false},
		{"0-0", false, false},
		{"e4", false, false},
	}
	for _, tt := range tests {
		castle, kingside := IsCastle(tt.token)
		if castle != tt.castle || kingside != tt.kingside {
			t.Errorf("IsCastle(%q) = (%v, %v), want (%v, %v)", tt.token, castle, kingside, tt.castle, tt.kingside)
		}
	}
}

const castleReady = "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1"

func TestTryCastle(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		color     core.Color
		kingside  bool
		reverse   bool
		ok        bool
		placement string
	}{
		{
			name:      "white king side",
			fen:       castleReady,
			color:     core.ColorWhite,
			kingside:  true,
			ok:        true,
			placement: "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R4RK1",
		},
		{
			name:      "white queen side",
			fen:       castleReady,
			color:     core.ColorWhite,
			ok:        true,
			placement: "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/2KR3R",
		},
		{
			name:      "black king side",
			fen:       castleReady,
			color:     core.ColorBlack,
			kingside:  true,
			ok:        true,
			placement: "r4rk1/pppppppp/8/8/8/8/PPPPPPPP/R3K2R",
		},
		{
			name:      "black queen side",
			fen:       castleReady,
			color:     core.ColorBlack,
			ok:        true,
			placement: "2kr3r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R",
		},
		{
			name:      "white king side on reversed board",
			fen:       castleReady,
			color:     core.ColorWhite,
			kingside:  true,
			reverse:   true,
			ok:        true,
			placement: "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R4RK1",
		},
		{
			name:      "black queen side on reversed board",
			fen:       castleReady,
			color:     core.ColorBlack,
			reverse:   true,
			ok:        true,
			placement: "2kr3r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R",
		},
		{
			name:      "path blocked",
			fen:       board.StartingFEN,
			color:     core.ColorWhite,
			kingside:  true,
			placement: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		},
		{
			name:      "queen side blocked by knight",
			fen:       "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/RN2K2R w KQkq - 0 1",
			color:     core.ColorWhite,
			placement: "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/RN2K2R",
		},
		{
			name:      "king side rook has moved",
			fen:       "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w Qkq - 0 1",
			color:     core.ColorWhite,
			kingside:  true,
			placement: "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R",
		},
		{
			name:      "king has moved",
			fen:       "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w kq - 0 1",
			color:     core.ColorWhite,
			placement: "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R",
		},
		{
			name:      "no rook",
			fen:       "4k3/8/8/8/8/8/8/4K3 w - - 0 1",
			color:     core.ColorWhite,
			kingside:  true,
			placement: "4k3/8/8/8/8/8/8/4K3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustParse(t, tt.fen)
			if tt.reverse {
				b.Flip()
			}
			if got := TryCastle(b, tt.color, tt.kingside); got != tt.ok {
				t.Fatalf("TryCastle() = %v, want %v", got, tt.ok)
			}
			if diff := cmp.Diff(tt.placement, b.Placement()); diff != "" {
				t.Errorf("placement mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCastleMarksPiecesMoved(t *testing.T) {
	b := mustParse(t, castleReady)
	if !TryCastle(b, core.ColorWhite, true) {
		t.Fatalf("TryCastle() = false")
	}
	if !pieceAt(t, b, "g1").HasMoved || !pieceAt(t, b, "f1").HasMoved {
		t.Errorf("castled king and rook not marked as moved")
	}
	if got := b.CastlingField(); got != "kq" {
		t.Errorf("CastlingField() = %q, want kq", got)
	}
	if TryCastle(b, core.ColorWhite, false) {
		t.Errorf("castled twice")
	}
}

func TestInCheck(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		color core.Color
		check bool
		mate  bool
	}{
		{"starting position", board.StartingFEN, core.ColorWhite, false, false},
		{"rook on open file", "4r2k/8/8/8/8/8/8/4K3 w - - 0 1", core.ColorWhite, true, false},
		{"rook file blocked", "4r2k/8/8/8/8/8/4P3/4K3 w - - 0 1", core.ColorWhite, false, false},
		{"adjacent queen", "4k3/8/8/8/8/8/3q4/4K3 w - - 0 1", core.ColorWhite, true, false},
		{"pawn attack", "4k3/8/8/8/8/8/3p4/4K3 w - - 0 1", core.ColorWhite, true, false},
		{"pawn straight ahead", "4k3/8/8/8/8/8/4p3/4K3 w - - 0 1", core.ColorWhite, false, false},
		{"knight check", "4k3/8/8/8/8/5n2/8/4K3 w - - 0 1", core.ColorWhite, true, false},
		{"bishop check on black", "4k3/8/8/1B6/8/8/8/4K3 b - - 0 1", core.ColorBlack, true, false},
		{"back rank mate", "6k1/8/8/8/8/8/6PP/r6K w - - 0 1", core.ColorWhite, true, true},
		{"smothered mate", "6k1/8/8/8/8/8/5nPP/6RK w - - 0 1", core.ColorWhite, true, true},
		{"fool's mate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", core.ColorWhite, true, true},
		{"other side not in check", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", core.ColorBlack, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustParse(t, tt.fen)
			check, mate := InCheck(b, tt.color)
			if check != tt.check || mate != tt.mate {
				t.Errorf("InCheck() = (%v, %v), want (%v, %v)", check, mate, tt.check, tt.mate)
			}

			b.Flip()
			check, mate = InCheck(b, tt.color)
			if check != tt.check || mate != tt.mate {
				t.Errorf("InCheck() on reversed board = (%v, %v), want (%v, %v)", check, mate, tt.check, tt.mate)
			}
		})
	}
}
