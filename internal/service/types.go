// Package service defines the backend-agnostic interface for board operations.
package service

// List represents one list on a board.
type List struct {
	ID   string
	Name string
}

// Card represents one card as observed in a single board read.
// Due carries the due date exactly as the server reported it (empty when
// absent); it is parsed only where a concrete instant is needed, so the raw
// observed value stays available for state comparison.
type Card struct {
	ID          string
	ListID      string
	Title       string
	Description string
	Due         string
	Position    float64
}

// Board is one read of a remote board: its lists and cards.
type Board struct {
	Lists []List
	Cards []Card
}
