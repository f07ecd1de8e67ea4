package core

// Request types

type CreateGameRequest struct {
	FEN string `json:"fen,omitempty" validate:"omitempty,max=100"`
}

type MoveRequest struct {
	Move string `json:"move" validate:"required,min=2,max=8"` // algebraic, e.g. "e4", "Nbd2", "Qxe5+", "O-O-O"
}

// Response types

type GameResponse struct {
	GameID    string    `json:"gameId"`
	FEN       string    `json:"fen"`
	Turn      string    `json:"turn"`  // "w" or "b"
	State     string    `json:"state"` // "ongoing", "white wins", "black wins"
	InCheck   bool      `json:"inCheck"`
	MoveCount int       `json:"moveCount"`
	Reversed  bool      `json:"reversed"`
	Moves     []string  `json:"moves"`
	LastMove  *MoveInfo `json:"lastMove,omitempty"`
}

type MoveInfo struct {
	Move        string `json:"move"`
	PlayerColor string `json:"playerColor"` // "w" or "b"
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
	Castle      bool   `json:"castle,omitempty"`
}

type BoardResponse struct {
	FEN      string     `json:"fen"`
	Board    string     `json:"board"`  // ASCII representation
	Glyphs   [][]string `json:"glyphs"` // one glyph per square, as currently oriented
	Reversed bool       `json:"reversed"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
