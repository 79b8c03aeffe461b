package domain

// Change describes one intersection whose state differs between two boards.
// It is designed to be serialized to JSON for partial updates on the client.
type Change struct {
	Coord Coord `json:"coord"`
	From  Point `json:"from"`
	To    Point `json:"to"`
}
