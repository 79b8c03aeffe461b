package domain

import "errors"

// ErrOutOfBounds is returned when a coordinate lies outside the board.
var ErrOutOfBounds = errors.New("coordinate out of bounds")

// ErrOccupied is returned when a stone is played on a non-empty intersection.
var ErrOccupied = errors.New("intersection occupied")

// ErrSuicide is returned when a move would leave its own group without liberties
// and the ruleset forbids suicide.
var ErrSuicide = errors.New("suicide")

// ErrKoViolation is returned when a move recreates a forbidden earlier position.
var ErrKoViolation = errors.New("ko violation")

// ErrNodeNotFound is returned when a node ID is unknown or was truncated.
var ErrNodeNotFound = errors.New("node not found")

// ErrTruncateRoot is returned when asked to truncate the root of a tree.
var ErrTruncateRoot = errors.New("cannot truncate the root node")

// ErrInvalidBoardSize is returned for sizes outside 1..52.
var ErrInvalidBoardSize = errors.New("invalid board size")

// ErrNotInScoringPhase is returned when scoring is requested before the game reached the scoring phase.
var ErrNotInScoringPhase = errors.New("game is not in the scoring phase")

// ErrGameOver is returned when a move is submitted after a resignation.
var ErrGameOver = errors.New("game is over")

// ErrGameNotFound is returned when a game ID cannot be found in the store.
var ErrGameNotFound = errors.New("game not found")

// ErrUnsupportedGame is returned for SGF records of games other than Go (GM != 1).
var ErrUnsupportedGame = errors.New("unsupported game type")
