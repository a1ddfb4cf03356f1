package cli

// Exit codes for shpatch.
const (
	// ExitSuccess indicates successful execution with every fix applied.
	ExitSuccess = 0

	// ExitFixesRejected indicates the run completed but some fixes were
	// rejected due to range conflicts or missing replacement data.
	ExitFixesRejected = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitBadInput indicates a malformed fix payload (e.g. an unrecognized
	// insertion point) that rendering cannot recover from.
	ExitBadInput = 66

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)
