package commands_test

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"replanka/internal/commands"
	"replanka/internal/exitcode"
	"replanka/internal/logger"
	"replanka/internal/service"
	"replanka/internal/testutil"
)

var runNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newRunCmd() *commands.RunCmd {
	cmd := &commands.RunCmd{}
	cmd.SetNow(func() time.Time { return runNow })
	l := logger.New(logger.LevelError)
	l.SetOutput(io.Discard)
	cmd.SetLogger(l)
	return cmd
}

func TestRunCommand_OnceSchedules(t *testing.T) {
	svc := newFakeBoard()
	svc.AddCard(service.Card{ID: "c1", ListID: "l3", Title: "Water plants [R-D]"})

	cmd := newRunCmd()
	cmd.SetOnce(true)

	var out, errOut bytes.Buffer
	code := cmd.Run(context.Background(), testConfig(false), svc, nil, &out, &errOut)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "scheduled=1 returned=0 waiting=0 skipped=0\n", out.String())
	require.Len(t, svc.DueSets, 1)
	assert.True(t, svc.DueSets[0].Due.Equal(runNow.AddDate(0, 0, 1)))
}

func TestRunCommand_OnceQuiet(t *testing.T) {
	svc := newFakeBoard()

	cmd := newRunCmd()
	cmd.SetOnce(true)

	var out, errOut bytes.Buffer
	code := cmd.Run(context.Background(), testConfig(true), svc, nil, &out, &errOut)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, out.String())
}

func TestRunCommand_OnceBackendError(t *testing.T) {
	svc := newFakeBoard()
	svc.BoardErr = testutil.ErrNotFound

	cmd := newRunCmd()
	cmd.SetOnce(true)

	var out, errOut bytes.Buffer
	code := cmd.Run(context.Background(), testConfig(false), svc, nil, &out, &errOut)

	assert.Equal(t, exitcode.BackendError, code)
	assert.Contains(t, errOut.String(), "error:")
}

func TestRunCommand_StopsOnCancelledContext(t *testing.T) {
	svc := newFakeBoard()
	svc.AddCard(service.Card{ID: "c1", ListID: "l3", Title: "[R-W]"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := newRunCmd()

	var out, errOut bytes.Buffer
	code := cmd.Run(ctx, testConfig(false), svc, nil, &out, &errOut)

	// The first cycle still runs; shutdown lands between cycles.
	assert.Equal(t, exitcode.Success, code)
	assert.Len(t, svc.DueSets, 1)
}

func TestRunCommand_FailedCycleKeepsLooping(t *testing.T) {
	// Board missing the done list: every cycle fails but the loop survives
	// until the context is cancelled.
	svc := testutil.NewFakeService()
	svc.AddList("l1", "To Do")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := newRunCmd()

	var out, errOut bytes.Buffer
	code := cmd.Run(ctx, testConfig(false), svc, nil, &out, &errOut)

	assert.Equal(t, exitcode.Success, code)
}
