// Package main implements an interactive client for the chess rules server API.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"chessrules/internal/client/api"
	"chessrules/internal/client/commands"
	"chessrules/internal/client/display"

	"github.com/chzyer/readline"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "API base URL")
	historyFile := flag.String("history", ".chess_client_history", "Readline history file")
	flag.Parse()

	s := &commands.Session{
		APIBaseURL: *baseURL,
		Client:     api.New(*baseURL),
		Out:        os.Stdout,
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          display.Prompt("chess"),
		HistoryFile:     *historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("%s%s%s\n", display.Red, err.Error(), display.Reset)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Printf("%sChess Client%s\n", display.Cyan, display.Reset)
	fmt.Printf("%sAPI: %s%s\n", display.Cyan, s.APIBaseURL, display.Reset)
	fmt.Printf("Type 'help' for commands\n\n")

	registry := commands.NewRegistry(s)

	for {
		rl.SetPrompt(buildPrompt(s))

		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Check for verbose flag
		if strings.HasSuffix(line, " -v") {
			s.Verbose = true
			line = strings.TrimSuffix(line, " -v")
		} else {
			s.Verbose = false
		}

		if errors.Is(registry.Execute(line), commands.ErrExit) {
			break
		}
	}
}

func buildPrompt(s *commands.Session) string {
	promptStr := "chess"

	if s.CurrentGame != "" {
		id := s.CurrentGame
		if len(id) > 8 {
			id = id[:8]
		}
		promptStr += display.Yellow + " [" + display.White + id + display.Yellow + "]"
	}

	if s.GameState != nil {
		if s.GameState.State == "ongoing" {
			promptStr += " - Turn:" + display.ColorForTurn(s.GameState.Turn)
		} else {
			promptStr += " - " + display.Magenta + s.GameState.State + display.Reset
		}
	}

	return display.Prompt(promptStr)
}
