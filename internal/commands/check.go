package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"replanka/internal/config"
	"replanka/internal/engine"
	"replanka/internal/exitcode"
	"replanka/internal/recur"
	"replanka/internal/service"
)

func init() {
	Register(&CheckCmd{})
}

// CheckCmd implements the check command: a read-only probe that verifies the
// daemon could run (auth, board access, list resolution) and reports how many
// cards carry a recurrence tag. It never mutates the board.
type CheckCmd struct{}

func (c *CheckCmd) Name() string      { return "check" }
func (c *CheckCmd) Aliases() []string { return nil }
func (c *CheckCmd) Synopsis() string  { return "Verify config, auth, and list setup" }
func (c *CheckCmd) Usage() string     { return "replanka check [common flags]" }
func (c *CheckCmd) NeedsBoard() bool  { return true }

func (c *CheckCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CheckCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	board, err := svc.Board(ctx, cfg.BoardID)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
	fmt.Fprintf(out, "board %s: %d lists, %d cards\n", cfg.BoardID, len(board.Lists), len(board.Cards))

	snap, err := engine.BuildSnapshot(board, cfg.TodoListName, cfg.DoneListName)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	fmt.Fprintf(out, "tracked lists: %q -> %q\n", cfg.DoneListName, cfg.TodoListName)

	recurring, inDone := 0, 0
	for _, card := range board.Cards {
		if _, ok := recur.Parse(card.Title + "\n" + card.Description); !ok {
			continue
		}
		recurring++
		if card.ListID == snap.DoneListID {
			inDone++
		}
	}
	fmt.Fprintf(out, "recurring cards: %d (%d in %q)\n", recurring, inDone, cfg.DoneListName)

	return exitcode.Success
}
