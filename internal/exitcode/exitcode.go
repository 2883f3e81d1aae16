// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown command or flag).
	UserError = 1

	// ConfigError indicates missing or invalid configuration at startup.
	ConfigError = 2

	// AuthError indicates authentication against the board server failed.
	AuthError = 3

	// BackendError indicates a board server/API/network error.
	BackendError = 4
)
