package storage

import (
	"database/sql"
	"time"
)

// GameRecord represents a row in the games table
type GameRecord struct {
	GameID       string       `db:"game_id"`
	StartTimeUTC time.Time    `db:"start_time_utc"`
	Result       string       `db:"result"` // "ongoing", "white wins", "black wins"
	EndTimeUTC   sql.NullTime `db:"end_time_utc"`
}

// MoveRecord represents a row in the moves table
type MoveRecord struct {
	MoveID      int64     `db:"move_id"`
	GameID      string    `db:"game_id"`
	MoveNumber  int       `db:"move_number"`
	Origin      string    `db:"origin"`
	Destination string    `db:"destination"`
	Piece       string    `db:"piece"`
	Captured    string    `db:"captured"` // empty when nothing was taken
	PlayerColor string    `db:"player_color"` // "w" or "b"
	MoveTimeUTC time.Time `db:"move_time_utc"`
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id TEXT PRIMARY KEY,
	start_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	result TEXT NOT NULL DEFAULT 'ongoing',
	end_time_utc DATETIME
);

CREATE TABLE IF NOT EXISTS moves (
	move_id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id TEXT NOT NULL,
	move_number INTEGER NOT NULL,
	origin TEXT NOT NULL,
	destination TEXT NOT NULL,
	piece TEXT NOT NULL,
	captured TEXT NOT NULL DEFAULT '',
	player_color TEXT NOT NULL CHECK(player_color IN ('w', 'b')),
	move_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (game_id) REFERENCES games(game_id) ON DELETE CASCADE,
	UNIQUE(game_id, move_number)
);

CREATE INDEX IF NOT EXISTS idx_moves_game_id ON moves(game_id);
CREATE INDEX IF NOT EXISTS idx_games_result ON games(result);
`
