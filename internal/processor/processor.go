package processor

import (
	"errors"
	"fmt"
	"regexp"
	"unicode"

	"chessrules/internal/core"
	"chessrules/internal/game"
	"chessrules/internal/service"
)

// FEN validation regex
var fenPattern = regexp.MustCompile(`^[rnbqkpRNBQKP1-8/]+ [wb] [KQkq-]+ [a-h1-8-]+ \d+ \d+$`)

// Algebraic move shape; legality is left to the engine
var movePattern = regexp.MustCompile(`^(O-O(-O)?|[KQBRN]?[a-h]?[1-8]?x?[a-h][1-8])[+#!?]*$`)

// Processor translates transport-neutral commands into service calls and
// shapes the responses.
type Processor struct {
	svc *service.Service
}

func New(svc *service.Service) *Processor {
	return &Processor{svc: svc}
}

func (p *Processor) Execute(cmd Command) ProcessorResponse {
	switch cmd.Type {
	case CmdCreateGame:
		return p.handleCreateGame(cmd)
	case CmdGetGame:
		return p.handleGetGame(cmd)
	case CmdDeleteGame:
		return p.handleDeleteGame(cmd)
	case CmdMakeMove:
		return p.handleMakeMove(cmd)
	case CmdPass:
		return p.handlePass(cmd)
	case CmdReverse:
		return p.handleReverse(cmd)
	case CmdReset:
		return p.handleReset(cmd)
	case CmdGetBoard:
		return p.handleGetBoard(cmd)
	default:
		return p.errorResponse("unknown command", core.ErrInvalidRequest)
	}
}

func hasControl(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}

func (p *Processor) isFENSafe(fen string) bool {
	return !hasControl(fen) && fenPattern.MatchString(fen)
}

func (p *Processor) isMoveSafe(move string) bool {
	return !hasControl(move) && movePattern.MatchString(move)
}

func (p *Processor) handleCreateGame(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.CreateGameRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	if args.FEN != "" && !p.isFENSafe(args.FEN) {
		return p.errorResponse("invalid FEN format or characters", core.ErrInvalidFEN)
	}

	gameID := p.svc.GenerateGameID()
	if err := p.svc.CreateGame(gameID, args.FEN); err != nil {
		return p.errorResponse(err.Error(), core.ErrInvalidFEN)
	}

	return p.gameResponse(gameID)
}

func (p *Processor) handleGetGame(cmd Command) ProcessorResponse {
	return p.gameResponse(cmd.GameID)
}

func (p *Processor) handleDeleteGame(cmd Command) ProcessorResponse {
	if err := p.svc.DeleteGame(cmd.GameID); err != nil {
		return p.serviceError(err)
	}
	return ProcessorResponse{Success: true}
}

func (p *Processor) handleMakeMove(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.MoveRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	if !p.isMoveSafe(args.Move) {
		return p.errorResponse(fmt.Sprintf("invalid move format: %q", args.Move), core.ErrInvalidMove)
	}

	if _, err := p.svc.MakeMove(cmd.GameID, args.Move); err != nil {
		return p.serviceError(err)
	}
	return p.gameResponse(cmd.GameID)
}

func (p *Processor) handlePass(cmd Command) ProcessorResponse {
	if _, err := p.svc.Pass(cmd.GameID); err != nil {
		return p.serviceError(err)
	}
	return p.gameResponse(cmd.GameID)
}

func (p *Processor) handleReverse(cmd Command) ProcessorResponse {
	if err := p.svc.Reverse(cmd.GameID); err != nil {
		return p.serviceError(err)
	}
	return p.gameResponse(cmd.GameID)
}

func (p *Processor) handleReset(cmd Command) ProcessorResponse {
	if err := p.svc.Reset(cmd.GameID); err != nil {
		return p.serviceError(err)
	}
	return p.gameResponse(cmd.GameID)
}

func (p *Processor) handleGetBoard(cmd Command) ProcessorResponse {
	var resp core.BoardResponse
	err := p.svc.Inspect(cmd.GameID, func(g *game.Game) {
		b := g.Board()
		grid := b.Render()
		glyphs := make([][]string, len(grid))
		for r := range grid {
			glyphs[r] = append([]string(nil), grid[r][:]...)
		}
		resp = core.BoardResponse{
			FEN:      g.FEN(),
			Board:    b.ToASCII(),
			Glyphs:   glyphs,
			Reversed: b.Reversed(),
		}
	})
	if err != nil {
		return p.serviceError(err)
	}
	return ProcessorResponse{Success: true, Data: resp}
}

func (p *Processor) gameResponse(gameID string) ProcessorResponse {
	var resp core.GameResponse
	err := p.svc.Inspect(gameID, func(g *game.Game) {
		resp = buildGameResponse(gameID, g)
	})
	if err != nil {
		return p.serviceError(err)
	}
	return ProcessorResponse{Success: true, Data: resp}
}

func buildGameResponse(gameID string, g *game.Game) core.GameResponse {
	resp := core.GameResponse{
		GameID:    gameID,
		FEN:       g.FEN(),
		Turn:      string(g.Turn()),
		State:     g.State().String(),
		InCheck:   g.InCheck(),
		MoveCount: g.MoveCount(),
		Reversed:  g.Board().Reversed(),
		Moves:     g.Moves(),
	}
	if last := g.LastResult(); last != nil {
		resp.LastMove = &core.MoveInfo{
			Move:        last.Move,
			PlayerColor: string(last.Player),
			From:        last.From,
			To:          last.To,
			Castle:      last.Castle,
		}
	}
	return resp
}

// serviceError maps service and game errors onto API error codes
func (p *Processor) serviceError(err error) ProcessorResponse {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return p.errorResponse(err.Error(), core.ErrGameNotFound)
	case errors.Is(err, game.ErrGameOver):
		return p.errorResponse(err.Error(), core.ErrGameOver)
	case errors.Is(err, game.ErrIllegalMove), errors.Is(err, game.ErrEmptyMove):
		return p.errorResponse(err.Error(), core.ErrInvalidMove)
	default:
		return p.errorResponse(err.Error(), core.ErrInternalError)
	}
}

func (p *Processor) errorResponse(message string, code string) ProcessorResponse {
	return ProcessorResponse{
		Success: false,
		Error: &core.ErrorResponse{
			Error: message,
			Code:  code,
		},
	}
}
