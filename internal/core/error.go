package core

// Error codes
const (
	ErrGameNotFound       = "GAME_NOT_FOUND"
	ErrInvalidMove        = "INVALID_MOVE"
	ErrInvalidSquare      = "INVALID_SQUARE"
	ErrWrongTurn          = "WRONG_TURN"
	ErrGameOver           = "GAME_OVER"
	ErrRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	ErrInvalidContent     = "INVALID_CONTENT_TYPE"
	ErrInvalidRequest     = "INVALID_REQUEST"
	ErrInternalError      = "INTERNAL_ERROR"
	ErrServiceUnavailable = "SERVICE_UNAVAILABLE"
)
