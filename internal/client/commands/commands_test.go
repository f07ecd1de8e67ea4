package commands

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"testing"

	"chessrules/internal/client/api"
	chesshttp "chessrules/internal/http"
	"chessrules/internal/processor"
	"chessrules/internal/service"

	"github.com/gofiber/fiber/v2"
)

// fiberTransport serves client requests from an in-process app
type fiberTransport struct {
	app *fiber.App
}

func (t fiberTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.app.Test(req, -1)
}

func newTestSession(t *testing.T) (*Session, *bytes.Buffer) {
	t.Helper()
	svc := service.New(nil)
	t.Cleanup(func() { svc.Close() })
	app := chesshttp.NewFiberApp(processor.New(svc), svc, true)

	var out bytes.Buffer
	client := api.New("http://chess.test")
	client.HTTPClient = &http.Client{Transport: fiberTransport{app: app}}
	client.Out = &out

	return &Session{
		APIBaseURL: client.BaseURL,
		Client:     client,
		Out:        &out,
	}, &out
}

func TestGameFlow(t *testing.T) {
	s, out := newTestSession(t)
	r := NewRegistry(s)

	for _, line := range []string{"new", "move e4", "m e5", "pass", "show"} {
		if err := r.Execute(line); err != nil {
			t.Fatalf("Execute(%q): %v", line, err)
		}
	}

	if s.CurrentGame == "" || s.GameState == nil {
		t.Fatalf("session has no game after 'new'")
	}
	if s.GameState.MoveCount != 3 || s.GameState.Turn != "b" {
		t.Errorf("game state = %+v", s.GameState)
	}

	text := out.String()
	for _, want := range []string{
		"Game created: " + s.CurrentGame,
		"Move accepted (e2-e4)",
		"Move accepted (e7-e5)",
		"Turn passed",
		"History: 1.e4 e5 2.pass",
		"Last move: pass by White",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "Error:") {
		t.Errorf("unexpected error in output:\n%s", text)
	}
}

func TestIllegalMoveReported(t *testing.T) {
	s, out := newTestSession(t)
	r := NewRegistry(s)

	r.Execute("new")
	r.Execute("move Ke2")

	if !strings.Contains(out.String(), "INVALID_MOVE") {
		t.Errorf("illegal move not reported:\n%s", out.String())
	}
	if s.GameState.MoveCount != 0 {
		t.Errorf("illegal move changed the session state")
	}
}

func TestMateAnnounced(t *testing.T) {
	s, out := newTestSession(t)
	r := NewRegistry(s)

	r.Execute("new")
	for _, m := range []string{"f3", "e5", "g4", "Qh4#"} {
		r.Execute("move " + m)
	}

	if !strings.Contains(out.String(), "Game over: black wins after 4 moves") {
		t.Errorf("mate not announced:\n%s", out.String())
	}
}

func TestNewFromFENAndCheck(t *testing.T) {
	s, out := newTestSession(t)
	r := NewRegistry(s)

	r.Execute("new 4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	r.Execute("move Ra8+")

	if !strings.Contains(out.String(), "is in check") {
		t.Errorf("check not announced:\n%s", out.String())
	}
}

func TestDeleteClearsSession(t *testing.T) {
	s, _ := newTestSession(t)
	r := NewRegistry(s)

	r.Execute("new")
	id := s.CurrentGame
	r.Execute("delete")
	if s.CurrentGame != "" || s.GameState != nil {
		t.Errorf("session still points at deleted game")
	}

	var out bytes.Buffer
	s.Out = &out
	s.Client.Out = &out
	r.Execute("join " + id)
	if !strings.Contains(out.String(), "GAME_NOT_FOUND") {
		t.Errorf("join of deleted game did not fail:\n%s", out.String())
	}
}

func TestCommandsWithoutGame(t *testing.T) {
	s, out := newTestSession(t)
	r := NewRegistry(s)

	for _, line := range []string{"move e4", "pass", "show", "state", "reverse"} {
		r.Execute(line)
	}
	if got := strings.Count(out.String(), "no current game"); got != 5 {
		t.Errorf("got %d 'no current game' errors, want 5:\n%s", got, out.String())
	}
}

func TestUtilityCommands(t *testing.T) {
	s, out := newTestSession(t)
	r := NewRegistry(s)

	r.Execute("health")
	if !strings.Contains(out.String(), "Status:  healthy") {
		t.Errorf("health output:\n%s", out.String())
	}

	r.Execute("bogus")
	if !strings.Contains(out.String(), "Unknown command: bogus") {
		t.Errorf("unknown command not reported")
	}

	r.Execute("help")
	if !strings.Contains(out.String(), "Game Commands") {
		t.Errorf("help output missing game commands")
	}

	if err := r.Execute("x"); !errors.Is(err, ErrExit) {
		t.Errorf("Execute(x) = %v, want ErrExit", err)
	}

	r.Execute("url localhost:9090")
	if s.Client.BaseURL != "http://localhost:9090" || s.APIBaseURL != "http://localhost:9090" {
		t.Errorf("url not updated: %q", s.Client.BaseURL)
	}
}
