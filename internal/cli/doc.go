// Package cli wires together the Cobra command tree for the dashreview binary.
//
// It defines the root command and its subcommands (review, describe, config,
// cache, version), binds flags, loads configuration and .env files, sets up
// logging, runs the review workflow and maps its outcome to an exit code.
//
// On a completed run the exit code is the number of components that needed
// review, capped at MaxReviewExit. Codes above that are reserved for usage,
// authentication and runtime errors.
package cli
