package cli

import (
	"errors"
	"fmt"
	"strings"

	"chessrules/internal/cli"
	"chessrules/internal/core"
	"chessrules/internal/game"
	"chessrules/internal/service"
	"chessrules/internal/transport"
)

type CLIHandler struct {
	svc    *service.Service
	view   transport.View
	gameID string
}

func New(svc *service.Service, view transport.View) *CLIHandler {
	return &CLIHandler{
		svc:  svc,
		view: view,
	}
}

// Start opens a game from the standard position and shows the board
func (h *CLIHandler) Start() error {
	return h.startGame("")
}

// Run is the main game loop; it returns when the user quits or input ends
func (h *CLIHandler) Run() {
	for {
		h.view.ShowPrompt(h.getPrompt())

		cmd, err := h.view.GetCommand()
		if err != nil {
			break
		}

		if !h.ProcessCommand(cmd) {
			break
		}
	}
}

func (h *CLIHandler) getPrompt() string {
	g, err := h.svc.GetGame(h.gameID)
	if err != nil || g.State() != core.StateOngoing {
		return "> "
	}
	return fmt.Sprintf("%s what move would you like to play?\n[%c]> ", titleCase(g.Turn()), g.Turn())
}

// ProcessCommand handles one user command - returns false to exit
func (h *CLIHandler) ProcessCommand(cmd *cli.Command) bool {
	switch cmd.Type {
	case cli.CmdQuit:
		return false

	case cli.CmdNone:
		h.view.ShowMessage("That's definitely not a valid move!")

	case cli.CmdMove:
		result, err := h.svc.MakeMove(h.gameID, cmd.Args[0])
		if err != nil {
			h.showMoveError(err)
			return true
		}
		h.afterMove(result)

	case cli.CmdPass:
		result, err := h.svc.Pass(h.gameID)
		if err != nil {
			h.showMoveError(err)
			return true
		}
		h.afterMove(result)

	case cli.CmdReset:
		if err := h.svc.Reset(h.gameID); err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowMessage("Board reset, white to move.")
		h.showBoard()

	case cli.CmdReverse:
		if err := h.svc.Reverse(h.gameID); err != nil {
			h.view.ShowError(err)
			return true
		}
		h.showBoard()

	case cli.CmdResume:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: resume <FEN string>")
			return true
		}
		if err := h.startGame(strings.Join(cmd.Args, " ")); err != nil {
			h.view.ShowError(fmt.Errorf("could not resume: %v", err))
		}

	case cli.CmdHistory:
		if g, err := h.svc.GetGame(h.gameID); err == nil {
			h.view.ShowGameHistory(g)
		}

	case cli.CmdColor:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: color <off|brown|green|gray>")
			return true
		}
		theme := cli.ColorTheme(cmd.Args[0])
		if err := h.view.SetTheme(theme); err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowMessage(fmt.Sprintf("Color theme set to: %s", theme))
		h.showBoard()

	case cli.CmdVerbose:
		verbose := h.view.ToggleVerbose()
		h.view.ShowMessage(fmt.Sprintf("Verbose mode: %t", verbose))

	case cli.CmdHelp:
		h.view.ShowHelp()
	}

	return true
}

func (h *CLIHandler) showMoveError(err error) {
	switch {
	case errors.Is(err, game.ErrGameOver):
		h.view.ShowMessage("The game is over. Use 'reset' or 'resume <FEN>' to play again.")
	case errors.Is(err, game.ErrIllegalMove):
		h.view.ShowError(fmt.Errorf("invalid move: %v", err))
	default:
		h.view.ShowError(err)
	}
}

func (h *CLIHandler) afterMove(result *game.MoveResult) {
	h.view.ShowMove(result)
	h.view.ShowTurnSeparator()
	h.showBoard()

	g, err := h.svc.GetGame(h.gameID)
	if err != nil {
		return
	}
	switch {
	case g.State() != core.StateOngoing:
		h.view.ShowGameOver(g)
	case g.InCheck():
		h.view.ShowCheck()
	}
}

func (h *CLIHandler) showBoard() {
	if g, err := h.svc.GetGame(h.gameID); err == nil {
		h.view.DisplayBoard(g.Board())
	}
}

// startGame replaces the current game with a fresh one
func (h *CLIHandler) startGame(fen string) error {
	id := h.svc.GenerateGameID()
	if err := h.svc.CreateGame(id, fen); err != nil {
		return err
	}
	h.gameID = id

	h.showBoard()
	g, _ := h.svc.GetGame(id)
	switch {
	case g.State() != core.StateOngoing:
		h.view.ShowGameOver(g)
	case g.InCheck():
		h.view.ShowCheck()
	}
	return nil
}

func titleCase(c core.Color) string {
	s := c.String()
	return strings.ToUpper(s[:1]) + s[1:]
}
