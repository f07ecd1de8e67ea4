package api

import "chessrules/internal/core"

// Wire types shared with the server
type (
	CreateGameRequest = core.CreateGameRequest
	MoveRequest       = core.MoveRequest
	GameResponse      = core.GameResponse
	BoardResponse     = core.BoardResponse
	ErrorResponse     = core.ErrorResponse
)

type HealthResponse struct {
	Status  string `json:"status"`
	Time    int64  `json:"time"`
	Storage string `json:"storage,omitempty"`
}
