package engine

import (
	"fmt"

	"replanka/internal/service"
)

// Snapshot is the read model built from one poll of the remote board:
// the resolved to-do/done list pair, every card observation, and the
// insertion cursor for cards returned to the to-do list this cycle.
type Snapshot struct {
	TodoListID string
	DoneListID string
	Cards      []service.Card

	// nextPos is the next ordering position to hand out in the to-do list.
	nextPos float64
}

// BuildSnapshot resolves the two tracked lists by exact name and seeds the
// insertion cursor at one past the highest position currently in the to-do
// list (1 when the list is empty). A missing list fails the whole cycle.
func BuildSnapshot(board service.Board, todoName, doneName string) (*Snapshot, error) {
	var todoID, doneID string
	for _, list := range board.Lists {
		switch list.Name {
		case todoName:
			todoID = list.ID
		case doneName:
			doneID = list.ID
		}
	}
	if todoID == "" {
		return nil, fmt.Errorf("list not found on board: %q", todoName)
	}
	if doneID == "" {
		return nil, fmt.Errorf("list not found on board: %q", doneName)
	}

	var maxPos float64
	for _, card := range board.Cards {
		if card.ListID == todoID && card.Position > maxPos {
			maxPos = card.Position
		}
	}

	return &Snapshot{
		TodoListID: todoID,
		DoneListID: doneID,
		Cards:      board.Cards,
		nextPos:    maxPos + 1,
	}, nil
}

// nextPosition allocates the next to-do insertion position. Successive calls
// within one cycle return increasing values so returned cards never collide.
func (s *Snapshot) nextPosition() float64 {
	pos := s.nextPos
	s.nextPos++
	return pos
}
