// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"replanka/internal/service"
)

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

// DueSet records one SetCardDue call.
type DueSet struct {
	CardID string
	Due    time.Time
}

// Move records one MoveCard call.
type Move struct {
	CardID   string
	ListID   string
	Position float64
}

// FakeService is an in-memory implementation of service.Service for testing.
// Mutations are applied to the stored cards the way the real server would,
// so repeated board reads observe the result of earlier calls.
type FakeService struct {
	mu    sync.RWMutex
	lists []service.List
	cards []service.Card

	// Call recordings.
	DueSets []DueSet
	Moves   []Move

	// Error injection for testing.
	BoardErr      error
	SetCardDueErr error
	MoveCardErr   error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// AddList adds a list.
func (f *FakeService) AddList(id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.List{ID: id, Name: name})
}

// AddCard adds a card observation.
func (f *FakeService) AddCard(card service.Card) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cards = append(f.cards, card)
}

// Card returns the current state of a card by id.
func (f *FakeService) Card(id string) (service.Card, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, c := range f.cards {
		if c.ID == id {
			return c, true
		}
	}
	return service.Card{}, false
}

// PlaceCard simulates an out-of-band change, as when a user drags a card to
// another list or edits its due date in the board UI. Nothing is recorded.
func (f *FakeService) PlaceCard(cardID, listID, due string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.cards {
		if f.cards[i].ID == cardID {
			f.cards[i].ListID = listID
			f.cards[i].Due = due
			return
		}
	}
}

// Board implements service.Service.
func (f *FakeService) Board(ctx context.Context, boardID string) (service.Board, error) {
	if f.BoardErr != nil {
		return service.Board{}, f.BoardErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	board := service.Board{
		Lists: make([]service.List, len(f.lists)),
		Cards: make([]service.Card, len(f.cards)),
	}
	copy(board.Lists, f.lists)
	copy(board.Cards, f.cards)
	return board, nil
}

// SetCardDue implements service.Service.
func (f *FakeService) SetCardDue(ctx context.Context, cardID string, due time.Time) error {
	if f.SetCardDueErr != nil {
		return f.SetCardDueErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.cards {
		if f.cards[i].ID == cardID {
			f.cards[i].Due = due.UTC().Truncate(time.Second).Format("2006-01-02T15:04:05.000Z")
			f.DueSets = append(f.DueSets, DueSet{CardID: cardID, Due: due})
			return nil
		}
	}
	return ErrNotFound
}

// MoveCard implements service.Service.
func (f *FakeService) MoveCard(ctx context.Context, cardID, listID string, position float64) error {
	if f.MoveCardErr != nil {
		return f.MoveCardErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.cards {
		if f.cards[i].ID == cardID {
			f.cards[i].ListID = listID
			f.cards[i].Position = position
			f.cards[i].Due = ""
			f.Moves = append(f.Moves, Move{CardID: cardID, ListID: listID, Position: position})
			return nil
		}
	}
	return ErrNotFound
}
