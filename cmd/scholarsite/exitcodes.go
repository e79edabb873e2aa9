package main

// Exit codes shared by all subcommands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (not a site, invalid config)
	ExitDataError   = 3 // Data error (malformed publications file)
	ExitAPIError    = 4 // Scholar API error (rate limit, network, auth)
)
