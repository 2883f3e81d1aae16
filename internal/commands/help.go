package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"replanka/internal/config"
	"replanka/internal/exitcode"
	"replanka/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "replanka help" }
func (c *HelpCmd) NeedsBoard() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  replanka run [common flags] [--once]   Run the recurrence reconciliation loop
  replanka check [common flags]          Verify config, auth, and list setup
  replanka lists [common flags]          Print the board's lists
  replanka help
  replanka version

Common flags:
  --env-file <path>   Read configuration from this dotenv file (default .env)
  --quiet             Suppress everything below error level
  --debug             Print debug logs to stderr

Configuration (environment or .env):
  PLANKA_BASE_URL     Board server base URL (required)
  PLANKA_USERNAME     Login username or email (required)
  PLANKA_PASSWORD     Login password (required)
  BOARD_ID            Board to reconcile (required)
  TODO_LIST_NAME      Active list name (default "To Do")
  DONE_LIST_NAME      Completed list name (default "Done")
  POLL_SECONDS        Seconds between cycles (default 10)
  LOG_LEVEL           debug, info, warn, or error (default info)
`
