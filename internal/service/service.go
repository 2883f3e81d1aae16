// Package service defines the backend-agnostic interface for board operations.
package service

import (
	"context"
	"time"
)

// Service defines the interface for board backend operations.
// All Planka API calls go through this interface.
// The engine and commands never import the HTTP backend directly.
type Service interface {
	// Board returns one read of the board: all lists and all cards.
	Board(ctx context.Context, boardID string) (Board, error)

	// SetCardDue sets a card's due date. The instant is normalized to UTC
	// with whole-second precision by the backend.
	SetCardDue(ctx context.Context, cardID string, due time.Time) error

	// MoveCard moves a card to the given list at the given position and
	// clears its due date in the same update, so the hold timer does not
	// survive the move.
	MoveCard(ctx context.Context, cardID, listID string, position float64) error
}
