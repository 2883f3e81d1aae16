package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"replanka/internal/config"
	"replanka/internal/engine"
	"replanka/internal/exitcode"
	"replanka/internal/logger"
	"replanka/internal/output"
	"replanka/internal/service"
)

func init() {
	Register(&RunCmd{})
}

// RunCmd implements the run command: the recurrence reconciliation loop.
//
// Each cycle reads the board once, builds a snapshot, and reconciles every
// recurring card. A failed cycle is logged and abandoned; the loop continues
// at the next interval with the reconciliation memory intact. Shutdown lands
// between cycles, never mid-mutation.
type RunCmd struct {
	once bool

	// now is the clock used for reconciliation decisions. Tests override it.
	now func() time.Time

	// log is the cycle logger. Defaults to logger.Default.
	log *logger.Logger
}

// SetNow overrides the clock (for testing).
func (c *RunCmd) SetNow(now func() time.Time) { c.now = now }

// SetLogger overrides the logger (for testing).
func (c *RunCmd) SetLogger(l *logger.Logger) { c.log = l }

// SetOnce makes Run exit after a single cycle (for testing; mirrors --once).
func (c *RunCmd) SetOnce(once bool) { c.once = once }

func (c *RunCmd) Name() string      { return "run" }
func (c *RunCmd) Aliases() []string { return nil }
func (c *RunCmd) Synopsis() string  { return "Run the recurrence reconciliation loop" }
func (c *RunCmd) Usage() string     { return "replanka run [common flags] [--once]" }
func (c *RunCmd) NeedsBoard() bool  { return true }

func (c *RunCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.once, "once", false, "")
}

func (c *RunCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	log := c.log
	if log == nil {
		log = logger.Default
	}
	now := c.now
	if now == nil {
		now = time.Now
	}

	interval := time.Duration(cfg.PollSeconds) * time.Second
	mem := engine.NewMemory()
	reconciler := engine.New(svc, mem, log)

	log.Info("reconciling board %s every %s (%q -> %q)",
		cfg.BoardID, interval, cfg.DoneListName, cfg.TodoListName)

	for {
		stats, err := c.cycle(ctx, cfg, svc, reconciler, now())
		switch {
		case err != nil:
			// Recoverable: the board may be unreachable or misconfigured
			// this cycle. Memory is untouched, so nothing is lost.
			log.Error("cycle failed: %v", err)
		case stats.Mutations() > 0:
			log.Info("cycle complete: scheduled=%d returned=%d waiting=%d skipped=%d",
				stats.Scheduled, stats.Returned, stats.Waiting, stats.Skipped)
		default:
			log.Debug("cycle complete: waiting=%d skipped=%d", stats.Waiting, stats.Skipped)
		}

		if c.once {
			if err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
				return exitcode.BackendError
			}
			if !cfg.Quiet {
				output.FormatStats(out, stats)
			}
			return exitcode.Success
		}

		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return exitcode.Success
		case <-time.After(interval):
		}
	}
}

// cycle performs one snapshot-then-reconcile pass.
func (c *RunCmd) cycle(ctx context.Context, cfg *config.Config, svc service.Service, r *engine.Reconciler, now time.Time) (engine.Stats, error) {
	board, err := svc.Board(ctx, cfg.BoardID)
	if err != nil {
		return engine.Stats{}, fmt.Errorf("fetching board %s: %w", cfg.BoardID, err)
	}

	snap, err := engine.BuildSnapshot(board, cfg.TodoListName, cfg.DoneListName)
	if err != nil {
		return engine.Stats{}, err
	}

	return r.Reconcile(ctx, snap, now)
}
