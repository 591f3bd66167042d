package cmd

// Exit codes for the testglow CLI
const (
	// ExitSuccess indicates the command completed cleanly
	ExitSuccess = 0

	// ExitRunFailure indicates the replayed run recorded issues
	ExitRunFailure = 1

	// ExitLogError indicates an unreadable or invalid event log
	ExitLogError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
