package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chessrules/internal/storage"
)

func TestInitQueryDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chess.db")
	var out bytes.Buffer

	if err := run([]string{"init", "-path", path}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out.String(), "Database initialized at: "+path) {
		t.Errorf("init output = %q", out.String())
	}

	out.Reset()
	if err := run([]string{"query", "-path", path}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("query: %v", err)
	}
	if !strings.Contains(out.String(), "No games found") {
		t.Errorf("query on empty db = %q", out.String())
	}

	store, err := storage.NewStore(path, false)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	now := time.Now().UTC()
	store.RecordNewGame(storage.GameRecord{GameID: "g1", InitialFEN: "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", StartTimeUTC: now})
	store.RecordMove(storage.MoveRecord{
		GameID: "g1", MoveNumber: 1, MoveToken: "Ra8",
		FENAfterMove: "R3k3/8/8/8/8/8/8/4K3 b - - 0 1",
		PlayerColor:  "w", InCheck: true, MoveTimeUTC: now,
	})
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out.Reset()
	if err := run([]string{"query", "-path", path, "-gameId", "g1", "-moves"}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("query: %v", err)
	}
	for _, want := range []string{"g1", "w Ra8 (check)", "Found 1 game(s)"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("query output missing %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	if err := run([]string{"delete", "-path", path}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("database still present after delete: %v", err)
	}
}

func TestRunErrors(t *testing.T) {
	tests := [][]string{
		nil,
		{"bogus"},
		{"init"},
		{"query"},
		{"delete"},
		{"init", "-unknown"},
	}
	for _, args := range tests {
		if err := run(args, strings.NewReader(""), &bytes.Buffer{}); err == nil {
			t.Errorf("run(%v) succeeded, want error", args)
		}
	}
}
