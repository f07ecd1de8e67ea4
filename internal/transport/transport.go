package transport

import (
	"chessrules/internal/board"
	"chessrules/internal/cli"
	"chessrules/internal/game"
)

// View abstracts terminal input and display operations
type View interface {
	GetCommand() (*cli.Command, error)
	SetTheme(theme cli.ColorTheme) error
	ToggleVerbose() bool
	DisplayBoard(b *board.Board)
	ShowMessage(msg string)
	ShowError(err error)
	ShowPrompt(prompt string)
	ShowHelp()
	ShowGameHistory(g *game.Game)
	ShowMove(result *game.MoveResult)
	ShowCheck()
	ShowGameOver(g *game.Game)
	ShowTurnSeparator()
}
