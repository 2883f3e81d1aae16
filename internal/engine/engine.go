// Package engine reconciles recurring cards against their hold timers.
//
// Each cycle observes the board once, then decides per recurring card in the
// done list whether to schedule a future return, execute the return, or wait.
// Decisions are idempotent: a fingerprint of the observed state is remembered
// per card, and a state that has already been acted on is skipped until it
// changes. The caller owns the memory and keeps it across cycles.
package engine

import (
	"context"
	"fmt"
	"time"

	"replanka/internal/logger"
	"replanka/internal/recur"
	"replanka/internal/service"
)

// Memory maps card id to the fingerprint of the last state acted upon.
// Entries are overwritten on every decision and never deleted; stale entries
// stop matching as soon as the card's observed state changes.
type Memory map[string]string

// NewMemory returns an empty reconciliation memory.
func NewMemory() Memory {
	return make(Memory)
}

// Stats summarizes one reconciliation pass.
type Stats struct {
	// Scheduled counts cards that received a new hold timer.
	Scheduled int

	// Returned counts cards moved back to the to-do list.
	Returned int

	// Waiting counts cards whose timer has not elapsed yet.
	Waiting int

	// Skipped counts cards whose state was already handled.
	Skipped int
}

// Mutations reports whether the pass changed anything on the board.
func (s Stats) Mutations() int {
	return s.Scheduled + s.Returned
}

// Reconciler applies recurrence decisions to a board through a service.
type Reconciler struct {
	svc service.Service
	mem Memory
	log *logger.Logger
}

// New creates a reconciler. The memory is owned by the caller so it can be
// primed in tests and preserved across failed cycles.
func New(svc service.Service, mem Memory, log *logger.Logger) *Reconciler {
	return &Reconciler{svc: svc, mem: mem, log: log}
}

// timer phases derived from a card's due date relative to now.
// The phase is part of the fingerprint: the stored due date does not change
// when the timer expires, so the pending-to-elapsed flip is the one state
// transition that must re-open an otherwise unchanged card.
const (
	phaseNone    = "none"
	phasePending = "pending"
	phaseElapsed = "elapsed"
)

// Reconcile processes every card in snapshot order and applies at most one
// mutation per card, synchronously. A mutation error abandons the cycle;
// the failed card's fingerprint is not recorded, so it is retried next cycle.
func (r *Reconciler) Reconcile(ctx context.Context, snap *Snapshot, now time.Time) (Stats, error) {
	var stats Stats
	now = now.UTC()

	for _, card := range snap.Cards {
		rule, ok := recur.Parse(card.Title + "\n" + card.Description)
		if !ok {
			continue
		}

		// Hold timers are only evaluated while the card sits in done.
		if card.ListID != snap.DoneListID {
			continue
		}

		due, hasDue := parseDue(card.Due)

		phase := phaseNone
		if hasDue {
			phase = phasePending
			if !due.After(now) {
				phase = phaseElapsed
			}
		}

		fp := fingerprint(card.ListID, card.Due, phase)
		if r.mem[card.ID] == fp {
			stats.Skipped++
			continue
		}

		switch phase {
		case phaseNone:
			next := recur.AddPeriod(now, rule)
			if err := r.svc.SetCardDue(ctx, card.ID, next); err != nil {
				return stats, fmt.Errorf("scheduling card %s: %w", card.ID, err)
			}
			r.log.Info("scheduled return for card %s (%s): due %s", card.ID, rule, next.Format(time.RFC3339))
			r.mem[card.ID] = fp
			stats.Scheduled++

		case phaseElapsed:
			pos := snap.nextPosition()
			if err := r.svc.MoveCard(ctx, card.ID, snap.TodoListID, pos); err != nil {
				return stats, fmt.Errorf("returning card %s: %w", card.ID, err)
			}
			r.log.Info("returned card %s (%s) to list %s at position %g", card.ID, rule, snap.TodoListID, pos)
			r.mem[card.ID] = fp
			stats.Returned++

		default:
			// Timer still pending. Recording the fingerprint keeps the next
			// unchanged poll quiet.
			r.log.Debug("waiting on card %s: due %s > now %s", card.ID, due.Format(time.RFC3339), now.Format(time.RFC3339))
			r.mem[card.ID] = fp
			stats.Waiting++
		}
	}

	return stats, nil
}

// fingerprint identifies one observed card state.
func fingerprint(listID, rawDue, phase string) string {
	return listID + ":" + rawDue + ":" + phase
}

// dueLayouts are the accepted due date forms, tried in order.
var dueLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDue parses a due date as observed on the wire. An absent or
// unparseable value is reported as no due date, never as an error.
func parseDue(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dueLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
