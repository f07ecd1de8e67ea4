package cli

import (
	"bytes"
	"strings"
	"testing"

	"chessrules/internal/board"
	"chessrules/internal/game"

	"github.com/google/go-cmp/cmp"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  *Command
	}{
		{"e4", &Command{Type: CmdMove, Args: []string{"e4"}, Raw: "e4"}},
		{"O-O-O", &Command{Type: CmdMove, Args: []string{"O-O-O"}, Raw: "O-O-O"}},
		{"Qh4#", &Command{Type: CmdMove, Args: []string{"Qh4#"}, Raw: "Qh4#"}},
		{"pass", &Command{Type: CmdPass}},
		{"reset", &Command{Type: CmdReset}},
		{"reverse", &Command{Type: CmdReverse}},
		{"history", &Command{Type: CmdHistory}},
		{"verbose", &Command{Type: CmdVerbose}},
		{"?", &Command{Type: CmdHelp}},
		{"help", &Command{Type: CmdHelp}},
		{"exit", &Command{Type: CmdQuit}},
		{"quit", &Command{Type: CmdQuit}},
		{"color green", &Command{Type: CmdColor, Args: []string{"green"}}},
		{
			"resume 4k3/8/8/8/8/8/8/4K3 w - - 0 1",
			&Command{
				Type: CmdResume,
				Args: []string{"4k3/8/8/8/8/8/8/4K3", "w", "-", "-", "0", "1"},
				Raw:  "resume 4k3/8/8/8/8/8/8/4K3 w - - 0 1",
			},
		},
		{"   ", &Command{Type: CmdNone}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ParseCommand(tt.input)); diff != "" {
				t.Errorf("ParseCommand(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestGetCommand(t *testing.T) {
	c := New(strings.NewReader("  Nf3  \n\n"), &bytes.Buffer{})

	want := []CommandType{CmdMove, CmdNone, CmdQuit, CmdQuit}
	for i, w := range want {
		cmd, err := c.GetCommand()
		if err != nil {
			t.Fatalf("GetCommand #%d: %v", i, err)
		}
		if cmd.Type != w {
			t.Errorf("GetCommand #%d type = %d, want %d", i, cmd.Type, w)
		}
	}
}

func TestDisplayBoard(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out)

	b := board.New()
	c.DisplayBoard(b)
	text := out.String()
	if !strings.Contains(text, "  a b c d e f g h") {
		t.Errorf("missing file header:\n%s", text)
	}
	if !strings.Contains(text, "1 ♜ ♞ ♝ ♛ ♚ ♝ ♞ ♜  1") {
		t.Errorf("missing white back row:\n%s", text)
	}
	if !strings.Contains(text, "5 ~ ~ ~ ~ ~ ~ ~ ~  5") {
		t.Errorf("missing empty row:\n%s", text)
	}

	out.Reset()
	b.Flip()
	c.DisplayBoard(b)
	text = out.String()
	if !strings.Contains(text, "  h g f e d c b a") {
		t.Errorf("missing reversed header:\n%s", text)
	}
	if !strings.Contains(text, "1 ♜ ♞ ♝ ♚ ♛ ♝ ♞ ♜  1") {
		t.Errorf("missing reversed white back row:\n%s", text)
	}
}

func TestSetTheme(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out)

	if err := c.SetTheme("purple"); err == nil {
		t.Errorf("SetTheme accepted an unknown theme")
	}
	if err := c.SetTheme(ThemeBrown); err != nil {
		t.Fatalf("SetTheme(brown): %v", err)
	}

	c.DisplayBoard(board.New())
	if !strings.Contains(out.String(), themes[ThemeBrown].darkBg) {
		t.Errorf("themed board has no background codes")
	}
	if strings.Contains(out.String(), "~") {
		t.Errorf("themed board still shows the empty marker")
	}
}

func TestShowGameHistoryAndMove(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out)

	g := game.New()
	for _, m := range []string{"e4", "e5", "Nf3"} {
		if _, err := g.Move(m); err != nil {
			t.Fatalf("Move(%s): %v", m, err)
		}
	}

	c.ShowGameHistory(g)
	text := out.String()
	for _, want := range []string{"1. e4 | e5", "2. Nf3 | ...", "Game state: ongoing"} {
		if !strings.Contains(text, want) {
			t.Errorf("history missing %q:\n%s", want, text)
		}
	}

	out.Reset()
	c.ShowMove(g.LastResult())
	if out.Len() != 0 {
		t.Errorf("ShowMove printed while not verbose: %q", out.String())
	}
	c.ToggleVerbose()
	c.ShowMove(g.LastResult())
	if got := out.String(); !strings.Contains(got, "White: Nf3 (g1-f3)") {
		t.Errorf("verbose move = %q", got)
	}
}
