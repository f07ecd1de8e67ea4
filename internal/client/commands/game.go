package commands

import (
	"fmt"
	"strings"

	"chessrules/internal/client/api"
	"chessrules/internal/client/display"
)

var errNoGame = fmt.Errorf("no current game, use 'new' or 'join <gameId>'")

func (r *Registry) registerGameCommands() {
	r.Register(&Command{
		Name:        "new",
		ShortName:   "n",
		Description: "Create a new game",
		Usage:       "new [FEN]",
		Handler:     newGameHandler,
	})

	r.Register(&Command{
		Name:        "join",
		ShortName:   "j",
		Description: "Join/set current game ID",
		Usage:       "join <gameId>",
		Handler:     joinGameHandler,
	})

	r.Register(&Command{
		Name:        "move",
		ShortName:   "m",
		Description: "Make a move",
		Usage:       "move <algebraic-move>",
		Handler:     moveHandler,
	})

	r.Register(&Command{
		Name:        "pass",
		ShortName:   "p",
		Description: "Skip the side to move",
		Usage:       "pass",
		Handler:     actionHandler("Turn passed", (*api.Client).Pass),
	})

	r.Register(&Command{
		Name:        "reverse",
		ShortName:   "r",
		Description: "Turn the board around",
		Usage:       "reverse",
		Handler:     actionHandler("Board reversed", (*api.Client).Reverse),
	})

	r.Register(&Command{
		Name:        "reset",
		ShortName:   "z",
		Description: "Restart from the standard position",
		Usage:       "reset",
		Handler:     actionHandler("Game reset", (*api.Client).Reset),
	})

	r.Register(&Command{
		Name:        "show",
		ShortName:   "h",
		Description: "Show board and game state",
		Usage:       "show",
		Handler:     showBoardHandler,
	})

	r.Register(&Command{
		Name:        "state",
		ShortName:   "s",
		Description: "Show raw game JSON",
		Usage:       "state",
		Handler:     gameStateHandler,
	})

	r.Register(&Command{
		Name:        "delete",
		ShortName:   "d",
		Description: "Delete a game",
		Usage:       "delete [gameId]",
		Handler:     deleteGameHandler,
	})
}

func newGameHandler(s *Session, args []string) error {
	req := &api.CreateGameRequest{FEN: strings.Join(args, " ")}

	resp, err := s.Client.CreateGame(req)
	if err != nil {
		return err
	}

	s.CurrentGame = resp.GameID
	s.GameState = resp

	fmt.Fprintf(s.Out, "%sGame created: %s%s\n", display.Green, resp.GameID, display.Reset)
	reportStatus(s, resp)
	return nil
}

func joinGameHandler(s *Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: join <gameId>")
	}

	gameID := args[0]
	resp, err := s.Client.GetGame(gameID)
	if err != nil {
		return err
	}

	s.CurrentGame = gameID
	s.GameState = resp

	fmt.Fprintf(s.Out, "%sJoined game: %s%s\n", display.Green, gameID, display.Reset)
	fmt.Fprintf(s.Out, "Turn: %s | State: %s | Moves: %d\n", resp.Turn, resp.State, resp.MoveCount)
	return nil
}

func moveHandler(s *Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: move <algebraic-move>")
	}
	if s.CurrentGame == "" {
		return errNoGame
	}

	resp, err := s.Client.MakeMove(s.CurrentGame, args[0])
	if err != nil {
		return err
	}

	s.GameState = resp
	msg := "Move accepted"
	if resp.LastMove != nil && resp.LastMove.From != "" {
		msg += fmt.Sprintf(" (%s-%s)", resp.LastMove.From, resp.LastMove.To)
	}
	fmt.Fprintf(s.Out, "%s%s%s\n", display.Green, msg, display.Reset)
	reportStatus(s, resp)
	return nil
}

// actionHandler builds a handler for the body-less game endpoints
func actionHandler(done string, call func(*api.Client, string) (*api.GameResponse, error)) func(*Session, []string) error {
	return func(s *Session, args []string) error {
		if s.CurrentGame == "" {
			return errNoGame
		}
		resp, err := call(s.Client, s.CurrentGame)
		if err != nil {
			return err
		}
		s.GameState = resp
		fmt.Fprintf(s.Out, "%s%s%s\n", display.Green, done, display.Reset)
		reportStatus(s, resp)
		return nil
	}
}

// reportStatus announces check and game end after a state change
func reportStatus(s *Session, resp *api.GameResponse) {
	switch {
	case resp.State != "ongoing":
		fmt.Fprintf(s.Out, "%sGame over: %s after %d moves%s\n", display.Magenta, resp.State, resp.MoveCount, display.Reset)
	case resp.InCheck:
		fmt.Fprintf(s.Out, "%s%s is in check%s\n", display.Magenta, display.ColorForTurn(resp.Turn), display.Reset)
	}
}

func showBoardHandler(s *Session, args []string) error {
	if s.CurrentGame == "" {
		return errNoGame
	}

	game, err := s.Client.GetGame(s.CurrentGame)
	if err != nil {
		return err
	}

	board, err := s.Client.GetBoard(s.CurrentGame)
	if err != nil {
		return err
	}

	s.GameState = game

	fmt.Fprintln(s.Out)
	display.RenderBoard(s.Out, board.Board)

	fmt.Fprintf(s.Out, "\nFEN: %s\n", game.FEN)
	fmt.Fprintf(s.Out, "Turn: %s | State: %s | Moves: %d\n",
		display.ColorForTurn(game.Turn), game.State, game.MoveCount)

	if len(game.Moves) > 0 {
		fmt.Fprintf(s.Out, "\nHistory: ")
		for i, move := range game.Moves {
			if i > 0 {
				fmt.Fprint(s.Out, " ")
			}
			if i%2 == 0 {
				fmt.Fprintf(s.Out, "%d.%s", (i/2)+1, move)
			} else {
				fmt.Fprint(s.Out, move)
			}
		}
		fmt.Fprintln(s.Out)
	}

	if game.LastMove != nil {
		color := "White"
		if game.LastMove.PlayerColor == "b" {
			color = "Black"
		}
		fmt.Fprintf(s.Out, "Last move: %s by %s\n", game.LastMove.Move, color)
	}

	return nil
}

func gameStateHandler(s *Session, args []string) error {
	if s.CurrentGame == "" {
		return errNoGame
	}

	resp, err := s.Client.GetGame(s.CurrentGame)
	if err != nil {
		return err
	}
	s.GameState = resp

	fmt.Fprintf(s.Out, "%sGame State:%s\n", display.Cyan, display.Reset)
	display.PrettyPrintJSON(s.Out, resp)
	return nil
}

func deleteGameHandler(s *Session, args []string) error {
	gameID := s.CurrentGame
	if len(args) > 0 {
		gameID = args[0]
	}

	if gameID == "" {
		return fmt.Errorf("specify game ID or set current game")
	}

	if err := s.Client.DeleteGame(gameID); err != nil {
		return err
	}

	if gameID == s.CurrentGame {
		s.CurrentGame = ""
		s.GameState = nil
	}

	fmt.Fprintf(s.Out, "%sGame deleted: %s%s\n", display.Green, gameID, display.Reset)
	return nil
}
