package core

// Request types

type MoveRequest struct {
	From string `json:"from" validate:"required,min=2,max=3"` // algebraic square, e.g. "e2"
	To   string `json:"to" validate:"required,min=2,max=3"`
}

// Response types

type GameResponse struct {
	GameID   string    `json:"gameId"`
	Turn     string    `json:"turn"`  // "w" or "b"
	State    string    `json:"state"` // "ongoing", "white wins", "black wins"
	Plies    int       `json:"plies"`
	Board    [8]string `json:"board"` // rank 8 first, '.' for empty squares
	LastMove *MoveInfo `json:"lastMove,omitempty"`
}

type MoveInfo struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Piece       string `json:"piece"`
	Captured    string `json:"captured,omitempty"`
	PlayerColor string `json:"playerColor"` // "w" or "b"
}

type BoardResponse struct {
	Board   string        `json:"board"`   // ASCII representation
	Squares [8][8]*Square `json:"squares"` // null for empty squares
}

// Square is the occupant of a single board square in API responses
type Square struct {
	Kind  string `json:"kind"`
	Color string `json:"color"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Time    int64  `json:"time"`
	Storage string `json:"storage"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
