package dto

import "github.com/aretw0/goban/pkg/rules"

// Coordinates in requests and responses are SGF points ("dd"), so a client
// can copy them straight from a record.

// GameRequest selects the game a stateless request operates on: an SGF record
// (the cursor is placed at the end of its main line) or, when SGF is empty, a
// new empty board.
type GameRequest struct {
	SGF     string   `json:"sgf,omitempty" mapstructure:"sgf"`
	Size    int      `json:"size,omitempty" mapstructure:"size"`
	Ruleset string   `json:"ruleset,omitempty" mapstructure:"ruleset"`
	Komi    *float64 `json:"komi,omitempty" mapstructure:"komi"`
}

// ValidateRequest asks for an SGF collection to be parsed and replayed.
type ValidateRequest struct {
	SGF    string `json:"sgf" mapstructure:"sgf"`
	Strict bool   `json:"strict,omitempty" mapstructure:"strict"`
}

// GameSummary describes one game of a validated collection.
type GameSummary struct {
	Size      int     `json:"size"`
	Ruleset   string  `json:"ruleset"`
	Komi      float64 `json:"komi"`
	Nodes     int     `json:"nodes"`
	Moves     int     `json:"moves"`
	Branches  int     `json:"branches"`
	Result    string  `json:"result,omitempty"`
	ToMove    string  `json:"to_move"`
	Phase     string  `json:"phase"`
	Handicap  int     `json:"handicap,omitempty"`
	Comment   string  `json:"comment,omitempty"`
	BlackName string  `json:"black,omitempty"`
	WhiteName string  `json:"white,omitempty"`
}

// ValidateResponse reports whether a collection is valid. Line and Column
// locate syntax errors.
type ValidateResponse struct {
	Valid  bool          `json:"valid"`
	Error  string        `json:"error,omitempty"`
	Line   int           `json:"line,omitempty"`
	Column int           `json:"column,omitempty"`
	Games  []GameSummary `json:"games,omitempty"`
}

// PlayRequest submits one move. Move is an SGF point, "pass" or "resign";
// Player defaults to the player to move.
type PlayRequest struct {
	GameRequest `mapstructure:",squash"`
	Move        string `json:"move" mapstructure:"move"`
	Player      string `json:"player,omitempty" mapstructure:"player"`
}

// Position is the state at the cursor after an operation.
type Position struct {
	SGF        string   `json:"sgf"`
	Board      []string `json:"board"`
	ToMove     string   `json:"to_move"`
	Phase      string   `json:"phase"`
	MoveNumber int      `json:"move_number"`
	Captures   Captures `json:"captures"`
	Ko         string   `json:"ko,omitempty"`
}

// Captures counts the stones captured by each player.
type Captures struct {
	Black int `json:"black"`
	White int `json:"white"`
}

// PlayResponse is the position after an accepted move.
type PlayResponse struct {
	Position
	Move     string   `json:"move"`
	Captured []string `json:"captured,omitempty"`
	Reused   bool     `json:"reused,omitempty"`
}

// LegalResponse lists where the player to move may place a stone.
type LegalResponse struct {
	ToMove string   `json:"to_move"`
	Moves  []string `json:"moves"`
}

// ScoreRequest scores a game in the scoring phase. Dead lists one stone of
// each group to remove before counting.
type ScoreRequest struct {
	GameRequest `mapstructure:",squash"`
	Dead        []string `json:"dead,omitempty" mapstructure:"dead"`
}

// ScoreResponse is the count and the SGF result string.
type ScoreResponse struct {
	rules.Score
	Result string `json:"result"`
}
