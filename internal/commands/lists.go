package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"replanka/internal/config"
	"replanka/internal/exitcode"
	"replanka/internal/output"
	"replanka/internal/service"
)

func init() {
	Register(&ListsCmd{})
}

// ListsCmd implements the lists command.
type ListsCmd struct{}

func (c *ListsCmd) Name() string      { return "lists" }
func (c *ListsCmd) Aliases() []string { return nil }
func (c *ListsCmd) Synopsis() string  { return "Print the board's lists" }
func (c *ListsCmd) Usage() string     { return "replanka lists [common flags]" }
func (c *ListsCmd) NeedsBoard() bool  { return true }

func (c *ListsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	board, err := svc.Board(ctx, cfg.BoardID)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	for _, list := range board.Lists {
		role := ""
		switch list.Name {
		case cfg.TodoListName:
			role = "to-do"
		case cfg.DoneListName:
			role = "done"
		}
		output.FormatList(out, list, role)
	}

	return exitcode.Success
}
